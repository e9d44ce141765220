package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"income-tax/domain"
	"income-tax/service"
)

type calcOptions struct {
	ruleSet             string
	regime              string
	income              float64
	age                 int
	deductions          []string
	rentPaid            float64
	housingLoanInterest float64
}

func newCalcCommand(root *rootOptions) *cobra.Command {
	opts := &calcOptions{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the tax for one regime and print the breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newCalculators(root.cfg, root.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			regime, err := service.ParseRegime(opts.regime)
			if err != nil {
				return err
			}
			deductions, err := parseDeductions(opts.deductions)
			if err != nil {
				return err
			}

			input := domain.TaxInput{
				RuleSet:             opts.ruleSet,
				GrossIncome:         opts.income,
				Age:                 opts.age,
				Regime:              regime,
				Deductions:          deductions,
				RentPaid:            opts.rentPaid,
				HousingLoanInterest: opts.housingLoanInterest,
			}
			result, err := a.tax.CalculateTax(cmd.Context(), input)
			if err != nil {
				return err
			}
			words, err := service.AmountInWords(result.TotalTax)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), service.FormatBreakdown(input, result))
			fmt.Fprintf(cmd.OutOrStdout(), "In words: Rupees %s only\n", words)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ruleSet, "rule-set", "", "rule set name (default from config)")
	f.StringVarP(&opts.regime, "regime", "r", "old", "tax regime: old or new")
	f.Float64VarP(&opts.income, "income", "i", 0, "annual gross income")
	f.IntVarP(&opts.age, "age", "a", 25, "age of the taxpayer")
	f.StringSliceVarP(&opts.deductions, "deduction", "d", nil, "deduction as category=amount, repeatable")
	f.Float64Var(&opts.rentPaid, "rent-paid", 0, "rent paid (80GG)")
	f.Float64Var(&opts.housingLoanInterest, "housing-loan-interest", 0, "housing loan interest, capped at 2,00,000")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

// parseDeductions reads "80C=150000" pairs; a bare number goes to "other".
func parseDeductions(raw []string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for _, item := range raw {
		category, value, found := strings.Cut(item, "=")
		if !found {
			category, value = "other", item
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid deduction %q: %w", item, err)
		}
		out[strings.TrimSpace(category)] += amount
	}
	return out, nil
}
