package service

import (
	"math"

	"income-tax/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// TotalDeductions sums the claimed deductions, the rent paid and the housing
// loan interest (capped at 2L).
func TotalDeductions(in domain.TaxInput) float64 {
	var total float64
	for _, amount := range in.Deductions {
		total += amount
	}
	total += in.RentPaid
	total += math.Min(in.HousingLoanInterest, MaxHousingLoanInterest)
	return total
}

// ComputeTax applies rules to in. It does no validation and never fails:
// taxable income is clamped at zero and the rebate never exceeds the slab tax.
func ComputeTax(rules RegimeRules, in domain.TaxInput) domain.TaxResult {
	var deductions float64
	if rules.AllowsDeductions {
		deductions = TotalDeductions(in)
	}

	afterDeductions := math.Max(0, in.GrossIncome-deductions)
	standard := math.Min(rules.StandardDeduction, afterDeductions)
	taxable := afterDeductions - standard

	rawTax, bands := walkSlabs(rules.SlabsFor(in.Age), taxable)
	slabTax := roundTo2Decimals(rawTax)

	var rebate float64
	if taxable <= rules.RebateCeiling {
		rebate = math.Min(slabTax, rules.RebateCap)
	}
	afterRebate := roundTo2Decimals(slabTax - rebate)
	cess := roundTo2Decimals(afterRebate * rules.CessRate)

	return domain.TaxResult{
		Regime:            in.Regime,
		RuleSet:           in.RuleSet,
		TotalDeductions:   roundTo2Decimals(deductions),
		StandardDeduction: roundTo2Decimals(standard),
		TaxableIncome:     roundTo2Decimals(taxable),
		SlabTax:           slabTax,
		Rebate:            roundTo2Decimals(rebate),
		TaxAfterRebate:    afterRebate,
		Cess:              cess,
		TotalTax:          roundTo2Decimals(afterRebate + cess),
		Bands:             bands,
	}
}

// SlabTax is the progressive tax on taxable under slabs.
func SlabTax(slabs []domain.SlabRule, taxable float64) float64 {
	tax, _ := walkSlabs(slabs, taxable)
	return tax
}

func walkSlabs(slabs []domain.SlabRule, taxable float64) (float64, []domain.BandTax) {
	var (
		tax   float64
		prev  float64
		bands []domain.BandTax
	)
	for _, s := range slabs {
		if taxable <= prev {
			break
		}
		upper := s.UpTo
		if upper == 0 {
			upper = math.Inf(1)
		}
		if upper <= prev {
			continue
		}

		amount := (math.Min(upper, taxable) - prev) * s.Rate
		tax += amount
		bands = append(bands, domain.BandTax{
			From:   prev,
			UpTo:   s.UpTo,
			Rate:   s.Rate,
			Amount: roundTo2Decimals(amount),
		})
		prev = upper
	}
	return tax, bands
}
