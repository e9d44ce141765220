package domain

import "time"

type Regime string

const (
	RegimeOld Regime = "OLD"
	RegimeNew Regime = "NEW"
)

// SeniorCitizenAge is the age from which a taxpayer counts as a senior citizen.
const SeniorCitizenAge = 60

type TaxInput struct {
	RuleSet             string             `json:"rule_set,omitempty"`
	GrossIncome         float64            `json:"gross_income"`
	Age                 int                `json:"age"`
	Regime              Regime             `json:"regime"`
	Deductions          map[string]float64 `json:"deductions,omitempty"`
	RentPaid            float64            `json:"rent_paid,omitempty"`
	HousingLoanInterest float64            `json:"housing_loan_interest,omitempty"`
}

// IsSeniorCitizen reports whether the taxpayer is 60 or older.
func (in TaxInput) IsSeniorCitizen() bool {
	return in.Age >= SeniorCitizenAge
}

// SlabRule is one band of a progressive table. UpTo == 0 marks the open-ended
// top band.
type SlabRule struct {
	UpTo float64 `json:"up_to" yaml:"up_to"`
	Rate float64 `json:"rate" yaml:"rate"`
}

type BandTax struct {
	From   float64 `json:"from"`
	UpTo   float64 `json:"up_to"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type TaxResult struct {
	Regime            Regime    `json:"regime"`
	RuleSet           string    `json:"rule_set"`
	TotalDeductions   float64   `json:"total_deductions"`
	StandardDeduction float64   `json:"standard_deduction"`
	TaxableIncome     float64   `json:"taxable_income"`
	SlabTax           float64   `json:"slab_tax"`
	Rebate            float64   `json:"rebate"`
	TaxAfterRebate    float64   `json:"tax_after_rebate"`
	Cess              float64   `json:"cess"`
	TotalTax          float64   `json:"total_tax"`
	Bands             []BandTax `json:"bands,omitempty"`
}

type ComparisonInput struct {
	RuleSet     string  `json:"rule_set,omitempty"`
	GrossIncome float64 `json:"gross_income"`
	Deductions  float64 `json:"deductions"`
	Age         int     `json:"age"`
}

type RegimeComparison struct {
	Old         TaxResult `json:"old"`
	New         TaxResult `json:"new"`
	Recommended Regime    `json:"recommended,omitempty"` // vacío si empatan
	Savings     float64   `json:"savings"`
}

// Calculation is a stored entry of the calculation history.
type Calculation struct {
	ID        string    `json:"id"`
	Input     TaxInput  `json:"input"`
	Result    TaxResult `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
