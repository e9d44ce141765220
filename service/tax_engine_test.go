package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"income-tax/domain"
)

func mustRules(t *testing.T, rs RuleSet, regime domain.Regime) RegimeRules {
	t.Helper()
	rules, err := rs.Regime(regime)
	require.NoError(t, err)
	return rules
}

func TestComputeTax_OldRegimeRebateWipesTax(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeOld)

	result := ComputeTax(rules, domain.TaxInput{
		GrossIncome: 500_000,
		Age:         25,
		Regime:      domain.RegimeOld,
	})

	assert.Equal(t, 50_000.0, result.StandardDeduction)
	assert.Equal(t, 450_000.0, result.TaxableIncome)
	assert.Equal(t, 10_000.0, result.SlabTax)
	assert.Equal(t, 10_000.0, result.Rebate)
	assert.Equal(t, 0.0, result.TaxAfterRebate)
	assert.Equal(t, 0.0, result.Cess)
	assert.Equal(t, 0.0, result.TotalTax)
}

func TestComputeTax_NewRegimeAcrossFiveBands(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeNew)

	result := ComputeTax(rules, domain.TaxInput{
		GrossIncome: 1_200_000,
		Age:         30,
		Regime:      domain.RegimeNew,
		Deductions:  map[string]float64{"80C": 150_000},
	})

	assert.Equal(t, 0.0, result.TotalDeductions, "new regime ignores deductions")
	assert.Equal(t, 1_200_000.0, result.TaxableIncome)
	require.Len(t, result.Bands, 5)
	assert.Equal(t, []float64{0, 12_500, 25_000, 37_500, 40_000}, bandAmounts(result.Bands))
	assert.Equal(t, 115_000.0, result.SlabTax)
	assert.Equal(t, 0.0, result.Rebate)
	assert.Equal(t, 4_600.0, result.Cess)
	assert.Equal(t, 119_600.0, result.TotalTax)
}

func TestComputeTax_FilingNewRegime(t *testing.T) {
	rules := mustRules(t, FilingFY2024Rules(), domain.RegimeNew)

	result := ComputeTax(rules, domain.TaxInput{GrossIncome: 1_200_000, Regime: domain.RegimeNew})

	assert.Equal(t, 80_000.0, result.SlabTax)
	assert.Equal(t, 3_200.0, result.Cess)
	assert.Equal(t, 83_200.0, result.TotalTax)
}

func TestComputeTax_ZeroIncome(t *testing.T) {
	for _, rs := range []RuleSet{CalculatorRules(), FilingFY2024Rules()} {
		for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
			result := ComputeTax(mustRules(t, rs, regime), domain.TaxInput{Regime: regime})
			assert.Equal(t, domain.TaxResult{Regime: regime}, result, "%s/%s", rs.Name, regime)
		}
	}
}

func TestComputeTax_DeductionsAboveIncomeFloorAtZero(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeOld)

	result := ComputeTax(rules, domain.TaxInput{
		GrossIncome: 100_000,
		Regime:      domain.RegimeOld,
		Deductions:  map[string]float64{"80C": 150_000, "80D": 350_000},
	})

	assert.Equal(t, 500_000.0, result.TotalDeductions)
	assert.Equal(t, 0.0, result.StandardDeduction)
	assert.Equal(t, 0.0, result.TaxableIncome)
	assert.Equal(t, 0.0, result.TotalTax)
}

func TestComputeTax_HousingLoanInterestIsCapped(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeOld)

	result := ComputeTax(rules, domain.TaxInput{
		GrossIncome:         1_000_000,
		Regime:              domain.RegimeOld,
		HousingLoanInterest: 300_000,
	})

	assert.Equal(t, 200_000.0, result.TotalDeductions)
	assert.Equal(t, 750_000.0, result.TaxableIncome)
	assert.Equal(t, 62_500.0, result.SlabTax)
}

func TestComputeTax_SeniorBracketsReplace(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeOld)

	tests := []struct {
		age  int
		want float64
	}{
		{age: 59, want: 112_500},
		{age: 60, want: 110_000},
		{age: 79, want: 110_000},
		{age: 80, want: 100_000},
		{age: 95, want: 100_000},
	}
	for _, tt := range tests {
		result := ComputeTax(rules, domain.TaxInput{GrossIncome: 1_050_000, Age: tt.age, Regime: domain.RegimeOld})
		assert.Equal(t, tt.want, result.SlabTax, "age %d", tt.age)
	}
}

func TestComputeTax_FilingSeniorShiftsTable(t *testing.T) {
	rules := mustRules(t, FilingFY2024Rules(), domain.RegimeOld)

	regular := ComputeTax(rules, domain.TaxInput{GrossIncome: 1_050_000, Age: 40, Regime: domain.RegimeOld})
	senior := ComputeTax(rules, domain.TaxInput{GrossIncome: 1_050_000, Age: 65, Regime: domain.RegimeOld})

	assert.Equal(t, 112_500.0, regular.SlabTax)
	assert.Equal(t, 102_500.0, senior.SlabTax)
}

func TestComputeTax_RebateCeilingIsInclusive(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeOld)

	at := ComputeTax(rules, domain.TaxInput{GrossIncome: 550_000, Regime: domain.RegimeOld})
	assert.Equal(t, 500_000.0, at.TaxableIncome)
	assert.Equal(t, 12_500.0, at.Rebate)
	assert.Equal(t, 0.0, at.TotalTax)

	above := ComputeTax(rules, domain.TaxInput{GrossIncome: 550_001, Regime: domain.RegimeOld})
	assert.Equal(t, 0.0, above.Rebate)
	assert.Equal(t, 12_500.2, above.TaxAfterRebate)
	assert.Equal(t, 500.01, above.Cess)
	assert.Equal(t, 13_000.21, above.TotalTax)
}

func TestComputeTax_PartialRebateNewRegime(t *testing.T) {
	rules := mustRules(t, CalculatorRules(), domain.RegimeNew)

	result := ComputeTax(rules, domain.TaxInput{GrossIncome: 700_000, Regime: domain.RegimeNew})

	assert.Equal(t, 32_500.0, result.SlabTax)
	assert.Equal(t, 25_000.0, result.Rebate)
	assert.Equal(t, 7_500.0, result.TaxAfterRebate)
	assert.Equal(t, 7_800.0, result.TotalTax)
}

func TestSlabTax_BoundaryDoesNotDoubleCount(t *testing.T) {
	slabs := CalculatorRules().New.AgeBrackets[0].Slabs
	for _, s := range slabs[:len(slabs)-1] {
		below := SlabTax(slabs, s.UpTo-0.01)
		at := SlabTax(slabs, s.UpTo)
		above := SlabTax(slabs, s.UpTo+0.01)
		assert.InDelta(t, at, below, 0.01, "jump below %v", s.UpTo)
		assert.InDelta(t, at, above, 0.01, "jump above %v", s.UpTo)
	}
}

func TestSlabTax_NonDecreasing(t *testing.T) {
	for _, rs := range []RuleSet{CalculatorRules(), FilingFY2024Rules()} {
		for _, rules := range []RegimeRules{rs.Old, rs.New} {
			for _, bracket := range rules.AgeBrackets {
				prev := 0.0
				for income := 0.0; income <= 3_000_000; income += 12_345 {
					tax := SlabTax(bracket.Slabs, income)
					require.GreaterOrEqual(t, tax, prev, "%s at %v", rs.Name, income)
					prev = tax
				}
			}
		}
	}
}

func TestComputeTax_Invariants(t *testing.T) {
	for _, rs := range []RuleSet{CalculatorRules(), FilingFY2024Rules()} {
		for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
			rules := mustRules(t, rs, regime)
			for income := 0.0; income <= 2_500_000; income += 25_000 {
				for _, age := range []int{30, 60, 80} {
					r := ComputeTax(rules, domain.TaxInput{GrossIncome: income, Age: age, Regime: regime})
					require.LessOrEqual(t, r.Rebate, r.SlabTax)
					require.GreaterOrEqual(t, r.TotalTax, 0.0)
					require.InDelta(t, r.TaxAfterRebate+r.Cess, r.TotalTax, 0.001)
				}
			}
		}
	}
}

func TestComputeTax_MoreDeductionsNeverRaiseTax(t *testing.T) {
	rules := mustRules(t, FilingFY2024Rules(), domain.RegimeOld)
	for income := 0.0; income <= 2_000_000; income += 50_000 {
		for _, ded := range []float64{0, 25_000, 100_000, 300_000} {
			base := ComputeTax(rules, domain.TaxInput{GrossIncome: income, Regime: domain.RegimeOld,
				Deductions: map[string]float64{"x": ded}})
			doubled := ComputeTax(rules, domain.TaxInput{GrossIncome: income, Regime: domain.RegimeOld,
				Deductions: map[string]float64{"x": 2 * ded}})
			require.LessOrEqual(t, doubled.TotalTax, base.TotalTax, "income %v deduction %v", income, ded)
		}
	}
}

func bandAmounts(bands []domain.BandTax) []float64 {
	out := make([]float64, len(bands))
	for i, b := range bands {
		out[i] = b.Amount
	}
	return out
}
