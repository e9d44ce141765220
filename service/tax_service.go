package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"income-tax/domain"
	"income-tax/repository"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidAmount  = errors.New("amount out of range")
)

type TaxService struct {
	rules  *RuleBook
	repo   repository.TaxRepository
	logger zerolog.Logger
}

// NewTaxService creates a new TaxService over the given rule book and history.
func NewTaxService(
	rules *RuleBook,
	repo repository.TaxRepository,
	logger zerolog.Logger,
) *TaxService {
	return &TaxService{rules: rules, repo: repo, logger: logger}
}

func (s *TaxService) Rules() *RuleBook {
	return s.rules
}

// Evaluate validates input and computes its tax without recording it.
func (s *TaxService) Evaluate(input domain.TaxInput) (domain.TaxResult, error) {
	if err := validateTaxInput(input); err != nil {
		return domain.TaxResult{}, err
	}

	ruleSet, err := s.rules.Get(input.RuleSet)
	if err != nil {
		return domain.TaxResult{}, err
	}
	rules, err := ruleSet.Regime(input.Regime)
	if err != nil {
		return domain.TaxResult{}, err
	}

	input.RuleSet = ruleSet.Name
	return ComputeTax(rules, input), nil
}

// CalculateTax computes the tax for input and stores it in the history.
func (s *TaxService) CalculateTax(
	ctx context.Context,
	input domain.TaxInput,
) (domain.TaxResult, error) {
	result, err := s.Evaluate(input)
	if err != nil {
		return domain.TaxResult{}, err
	}
	input.RuleSet = result.RuleSet

	// Guardar el resultado (no crítico si falla)
	if _, err := s.repo.Save(ctx, input, result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save tax calculation")
	}

	s.logger.Debug().
		Str("rule_set", result.RuleSet).
		Str("regime", string(result.Regime)).
		Float64("taxable_income", result.TaxableIncome).
		Float64("total_tax", result.TotalTax).
		Msg("tax calculated")

	return result, nil
}

// History lists the most recent calculations.
func (s *TaxService) History(ctx context.Context, limit int) ([]domain.Calculation, error) {
	return s.repo.List(ctx, limit)
}

func validateTaxInput(input domain.TaxInput) error {
	if err := CheckAmount("gross income", input.GrossIncome); err != nil {
		return err
	}
	if input.Age < 0 || input.Age > MaxAge {
		return fmt.Errorf("age must be between 0 and %d", MaxAge)
	}
	if err := CheckAmount("rent paid", input.RentPaid); err != nil {
		return err
	}
	if err := CheckAmount("housing loan interest", input.HousingLoanInterest); err != nil {
		return err
	}
	for category, amount := range input.Deductions {
		if err := CheckAmount("deduction "+category, amount); err != nil {
			return err
		}
	}
	return nil
}

// CheckAmount rejects negative, non-finite and oversized amounts.
func CheckAmount(field string, amount float64) error {
	if math.IsNaN(amount) {
		return fmt.Errorf("%s is not a number: %w", field, ErrInvalidAmount)
	}
	if amount < 0 {
		return fmt.Errorf("%s: %w", field, ErrNegativeAmount)
	}
	if amount > MaxIncome {
		return fmt.Errorf("%s excede el máximo permitido de %.2f: %w", field, MaxIncome, ErrInvalidAmount)
	}
	return nil
}
