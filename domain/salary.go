package domain

type SalaryInput struct {
	FinancialYear   int     `json:"financial_year"` // año de inicio, p.ej. 2020
	BasePay         float64 `json:"base_pay"`
	DAPercent       float64 `json:"da_percent"`
	HRAPercent      float64 `json:"hra_percent"`
	CCA             float64 `json:"cca"`
	EPFPercent      float64 `json:"epf_percent"`
	AnnualIncomeTax float64 `json:"annual_income_tax"`
	ProfessionalTax float64 `json:"professional_tax"`
}

type SalaryMonth struct {
	Month           string  `json:"month"`
	BasePay         float64 `json:"base_pay"`
	DA              float64 `json:"da"`
	HRA             float64 `json:"hra"`
	CCA             float64 `json:"cca"`
	Gross           float64 `json:"gross"`
	EPF             float64 `json:"epf"`
	IncomeTax       float64 `json:"income_tax"`
	ProfessionalTax float64 `json:"professional_tax"`
	NetPay          float64 `json:"net_pay"`
}

type SalaryStatement struct {
	Title  string        `json:"title"`
	Months []SalaryMonth `json:"months"`
	Total  SalaryMonth   `json:"total"`
}
