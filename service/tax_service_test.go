package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"income-tax/domain"
	"income-tax/repository"
)

type mockTaxRepository struct {
	mock.Mock
}

func (m *mockTaxRepository) Save(
	ctx context.Context,
	input domain.TaxInput,
	result domain.TaxResult,
) (domain.Calculation, error) {
	args := m.Called(ctx, input, result)
	return args.Get(0).(domain.Calculation), args.Error(1)
}

func (m *mockTaxRepository) List(ctx context.Context, limit int) ([]domain.Calculation, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Calculation), args.Error(1)
}

func newTestTaxService(repo repository.TaxRepository) *TaxService {
	return NewTaxService(DefaultRuleBook(), repo, zerolog.Nop())
}

func TestCalculateTax_SavesResult(t *testing.T) {
	repo := &mockTaxRepository{}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(in domain.TaxInput) bool {
		return in.RuleSet == RuleSetCalculator
	}), mock.Anything).Return(domain.Calculation{ID: "1"}, nil)
	svc := newTestTaxService(repo)

	result, err := svc.CalculateTax(context.Background(), domain.TaxInput{
		GrossIncome: 1_200_000,
		Regime:      domain.RegimeNew,
	})

	require.NoError(t, err)
	assert.Equal(t, RuleSetCalculator, result.RuleSet)
	assert.Equal(t, domain.RegimeNew, result.Regime)
	assert.Equal(t, 119_600.0, result.TotalTax)
	repo.AssertExpectations(t)
}

func TestCalculateTax_SaveErrorIsNotFatal(t *testing.T) {
	repo := &mockTaxRepository{}
	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Calculation{}, errors.New("save error"))
	svc := newTestTaxService(repo)

	result, err := svc.CalculateTax(context.Background(), domain.TaxInput{
		GrossIncome: 500_000,
		Age:         25,
		Regime:      domain.RegimeOld,
	})

	require.NoError(t, err)
	assert.Equal(t, 450_000.0, result.TaxableIncome)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCalculateTax_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.TaxInput
		want  error
	}{
		{"negative income", domain.TaxInput{GrossIncome: -1, Regime: domain.RegimeOld}, ErrNegativeAmount},
		{"negative deduction", domain.TaxInput{GrossIncome: 1, Regime: domain.RegimeOld,
			Deductions: map[string]float64{"80C": -10}}, ErrNegativeAmount},
		{"negative rent", domain.TaxInput{Regime: domain.RegimeOld, RentPaid: -5}, ErrNegativeAmount},
		{"nan income", domain.TaxInput{GrossIncome: math.NaN(), Regime: domain.RegimeOld}, ErrInvalidAmount},
		{"infinite income", domain.TaxInput{GrossIncome: math.Inf(1), Regime: domain.RegimeOld}, ErrInvalidAmount},
		{"income above maximum", domain.TaxInput{GrossIncome: MaxIncome * 10, Regime: domain.RegimeOld}, ErrInvalidAmount},
		{"unknown regime", domain.TaxInput{GrossIncome: 1, Regime: "FLAT"}, ErrUnknownRegime},
		{"empty regime", domain.TaxInput{GrossIncome: 1}, ErrUnknownRegime},
		{"unknown rule set", domain.TaxInput{RuleSet: "fy1999", Regime: domain.RegimeOld}, ErrUnknownRuleSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaxRepository{}
			svc := newTestTaxService(repo)

			_, err := svc.CalculateTax(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCalculateTax_RejectsBadAge(t *testing.T) {
	svc := newTestTaxService(&mockTaxRepository{})

	_, err := svc.CalculateTax(context.Background(), domain.TaxInput{Age: -1, Regime: domain.RegimeOld})
	assert.Error(t, err)

	_, err = svc.CalculateTax(context.Background(), domain.TaxInput{Age: MaxAge + 1, Regime: domain.RegimeOld})
	assert.Error(t, err)
}

func TestTaxService_History(t *testing.T) {
	repo := repository.NewTaxRepositoryMemory(10)
	svc := newTestTaxService(repo)
	ctx := context.Background()

	for _, income := range []float64{100_000, 200_000, 300_000} {
		_, err := svc.CalculateTax(ctx, domain.TaxInput{GrossIncome: income, Regime: domain.RegimeNew})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 300_000.0, history[0].Input.GrossIncome)
	assert.Equal(t, 200_000.0, history[1].Input.GrossIncome)
}
