package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"income-tax/service"
)

func newWordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "words AMOUNT",
		Short: "Spell a rupee amount in the Indian numbering system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			if err := service.CheckAmount("amount", amount); err != nil {
				return err
			}
			words, err := service.AmountInWords(amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), words)
			return nil
		},
	}
}
