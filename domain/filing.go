package domain

// Deduction categories of the old regime schedule.
const (
	Deduction80C          = "80C"
	Deduction80CCD1B      = "80CCD(1B)"
	Deduction80D          = "80D"
	Deduction80E          = "80E"
	Deduction80EEA        = "80EEA"
	Deduction80EEB        = "80EEB"
	Deduction80G          = "80G"
	Deduction80TTA        = "80TTA"
	Deduction80TTB        = "80TTB"
	Deduction80U          = "80U"
	DeductionRentPaid80GG = "80GG"
	DeductionHRAExemption = "hra_exemption"
)

type Salary struct {
	Basic           float64 `json:"basic"`
	AGP             float64 `json:"agp"`
	DA              float64 `json:"da"`
	HRA             float64 `json:"hra"`
	CCA             float64 `json:"cca"`
	IR              float64 `json:"ir"`
	OtherAllowances float64 `json:"other_allowances"`
	Perquisites     float64 `json:"perquisites"`
	Pension         float64 `json:"pension"`
	OthersLabel     string  `json:"others_label,omitempty"`
	Others          float64 `json:"others"`
	Additional      float64 `json:"additional"`
}

// Total sums every salary component.
func (s Salary) Total() float64 {
	return s.Basic + s.AGP + s.DA + s.HRA + s.CCA + s.IR + s.OtherAllowances +
		s.Perquisites + s.Pension + s.Others + s.Additional
}

type HouseProperty struct {
	RentReceived        float64 `json:"rent_received"`
	PropertyTax         float64 `json:"property_tax"`
	HousingLoanInterest float64 `json:"housing_loan_interest"`
}

type OtherIncome struct {
	SavingsInterest  float64 `json:"savings_interest"`
	FDInterest       float64 `json:"fd_interest"`
	ExamRemuneration float64 `json:"exam_remuneration"`
	Other            float64 `json:"other"`
}

type FilingDeductions struct {
	Section80C            map[string]float64 `json:"section_80c,omitempty"`
	AdditionalNPS         float64            `json:"additional_nps"`
	Mediclaim             float64            `json:"mediclaim"`
	EducationLoanInterest float64            `json:"education_loan_interest"`
	AffordableHousing     float64            `json:"affordable_housing_interest"`
	EVLoanInterest        float64            `json:"ev_loan_interest"`
	Donations             float64            `json:"donations"`
	RentPaid80GG          float64            `json:"rent_paid_80gg"`
	Disabled              bool               `json:"disabled"`
}

type Taxpayer struct {
	Name        string `json:"name"`
	PAN         string `json:"pan"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Age         int    `json:"age"`
	Place       string `json:"place,omitempty"`
}

type FilingInput struct {
	RuleSet         string           `json:"rule_set,omitempty"`
	Regime          Regime           `json:"regime"`
	Taxpayer        Taxpayer         `json:"taxpayer"`
	Salary          Salary           `json:"salary"`
	EPFSubscription float64          `json:"epf_subscription"`
	ProfessionalTax float64          `json:"professional_tax"`
	RentPaid        float64          `json:"rent_paid"`
	HouseProperty   *HouseProperty   `json:"house_property,omitempty"`
	OtherIncome     OtherIncome      `json:"other_income"`
	Deductions      FilingDeductions `json:"deductions"`
	TDSDeducted     float64          `json:"tds_deducted"`
	RemainingMonths int              `json:"remaining_months"`
	// Fecha de la declaración, "02-01-2006". Vacío usa la fecha actual.
	Date string `json:"date,omitempty"`
}

type FilingResult struct {
	SalaryTotal       float64            `json:"salary_total"`
	HRAExemption      float64            `json:"hra_exemption"`
	StandardDeduction float64            `json:"standard_deduction"`
	NetSalary         float64            `json:"net_salary"`
	HouseIncome       float64            `json:"house_income"`
	OtherIncome       float64            `json:"other_income"`
	GrossTotalIncome  float64            `json:"gross_total_income"`
	Section80CTotal   float64            `json:"section_80c_total"`
	Deductions        map[string]float64 `json:"deductions"`
	TotalDeductions   float64            `json:"total_deductions"`
	Tax               TaxResult          `json:"tax"`
	RemainingTax      float64            `json:"remaining_tax"`
	MonthlyDeduction  float64            `json:"monthly_deduction"`
	Comparison        RegimeComparison   `json:"comparison"`
	AmountInWords     string             `json:"amount_in_words"`
	Declaration       string             `json:"declaration"`
}
