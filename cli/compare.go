package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"income-tax/domain"
	"income-tax/service"
)

func newCompareCommand(root *rootOptions) *cobra.Command {
	var input domain.ComparisonInput
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the old and new regimes for the same income",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newCalculators(root.cfg, root.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			cmp, err := a.comparison.CompareRegimes(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Old Regime: ₹%s\n", service.FormatRupees(cmp.Old.TotalTax))
			fmt.Fprintf(out, "New Regime: ₹%s\n", service.FormatRupees(cmp.New.TotalTax))
			switch cmp.Recommended {
			case domain.RegimeOld:
				fmt.Fprintf(out, "Recommendation: Choose Old Regime to save ₹%s\n", service.FormatRupees(cmp.Savings))
			case domain.RegimeNew:
				fmt.Fprintf(out, "Recommendation: Choose New Regime to save ₹%s\n", service.FormatRupees(cmp.Savings))
			default:
				fmt.Fprintln(out, "Both regimes result in the same tax amount.")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&input.RuleSet, "rule-set", "", "rule set name (default from config)")
	f.Float64VarP(&input.GrossIncome, "income", "i", 0, "annual gross income")
	f.Float64VarP(&input.Deductions, "deductions", "d", 0, "total deductions, old regime only")
	f.IntVarP(&input.Age, "age", "a", 25, "age of the taxpayer")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
