package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"income-tax/domain"
)

func TestFormatRupees(t *testing.T) {
	tests := map[float64]string{
		0:          "0.00",
		999:        "999.00",
		1000:       "1,000.00",
		100000:     "1,00,000.00",
		1234567.5:  "12,34,567.50",
		10000000:   "1,00,00,000.00",
		-1500:      "-1,500.00",
		119600.004: "1,19,600.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatRupees(in), "%v", in)
	}
}

func TestFormatBreakdown(t *testing.T) {
	rules := CalculatorRules().Old
	input := domain.TaxInput{
		RuleSet:     RuleSetCalculator,
		GrossIncome: 1_000_000,
		Regime:      domain.RegimeOld,
		Deductions:  map[string]float64{"80C": 150_000},
	}
	result := ComputeTax(rules, input)

	text := FormatBreakdown(input, result)

	assert.Contains(t, text, "Regime: OLD (calculator)")
	assert.Contains(t, text, "10,00,000.00")
	assert.Contains(t, text, "80C")
	assert.Contains(t, text, "Taxable Income")
	assert.Contains(t, text, "8,00,000.00")
	assert.Contains(t, text, "Total Tax")
	assert.True(t, strings.HasSuffix(text, "\n"))
}
