package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"income-tax/config"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
	logger     zerolog.Logger
}

// NewRootCommand builds the income-tax command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "income-tax",
		Short:         "Indian income tax calculators for the old and new regimes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = config.NewLogger(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(
		newServeCommand(opts),
		newCalcCommand(opts),
		newCompareCommand(opts),
		newWordsCommand(),
	)
	return root
}

func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}
