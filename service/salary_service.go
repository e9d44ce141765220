package service

import (
	"errors"
	"fmt"
	"time"

	"income-tax/domain"
)

// financial year months, March to February as printed on the statement
var statementMonths = []time.Month{
	time.March, time.April, time.May, time.June, time.July, time.August,
	time.September, time.October, time.November, time.December,
	time.January, time.February,
}

type SalaryService struct {
	now func() time.Time
}

func NewSalaryService() *SalaryService {
	return &SalaryService{now: time.Now}
}

// Statement builds the twelve monthly rows of a salary statement and their
// totals. DA, HRA and EPF are percentages of the base pay; the annual income
// tax is spread evenly over the months.
func (s *SalaryService) Statement(input domain.SalaryInput) (domain.SalaryStatement, error) {
	if err := validateSalaryInput(input); err != nil {
		return domain.SalaryStatement{}, err
	}

	fy := input.FinancialYear
	if fy == 0 {
		fy = currentFinancialYear(s.now())
	}

	da := roundTo2Decimals(input.DAPercent / 100 * input.BasePay)
	hra := roundTo2Decimals(input.HRAPercent / 100 * input.BasePay)
	epf := roundTo2Decimals(input.EPFPercent / 100 * input.BasePay)
	incomeTax := roundTo2Decimals(input.AnnualIncomeTax / 12)
	gross := roundTo2Decimals(input.BasePay + da + hra + input.CCA)
	net := roundTo2Decimals(gross - (epf + incomeTax + input.ProfessionalTax))

	statement := domain.SalaryStatement{
		Title: fmt.Sprintf("Salary details for the Financial Year %d - %02d (Assessment Year %d - %02d)",
			fy, (fy+1)%100, fy+1, (fy+2)%100),
		Months: make([]domain.SalaryMonth, 0, len(statementMonths)),
		Total:  domain.SalaryMonth{Month: "Total"},
	}

	for _, m := range statementMonths {
		year := fy
		if m < time.March {
			year++
		}
		row := domain.SalaryMonth{
			Month:           fmt.Sprintf("%s - %d", m, year),
			BasePay:         input.BasePay,
			DA:              da,
			HRA:             hra,
			CCA:             input.CCA,
			Gross:           gross,
			EPF:             epf,
			IncomeTax:       incomeTax,
			ProfessionalTax: input.ProfessionalTax,
			NetPay:          net,
		}
		statement.Months = append(statement.Months, row)
		addSalaryMonth(&statement.Total, row)
	}
	return statement, nil
}

func addSalaryMonth(total *domain.SalaryMonth, row domain.SalaryMonth) {
	total.BasePay = roundTo2Decimals(total.BasePay + row.BasePay)
	total.DA = roundTo2Decimals(total.DA + row.DA)
	total.HRA = roundTo2Decimals(total.HRA + row.HRA)
	total.CCA = roundTo2Decimals(total.CCA + row.CCA)
	total.Gross = roundTo2Decimals(total.Gross + row.Gross)
	total.EPF = roundTo2Decimals(total.EPF + row.EPF)
	total.IncomeTax = roundTo2Decimals(total.IncomeTax + row.IncomeTax)
	total.ProfessionalTax = roundTo2Decimals(total.ProfessionalTax + row.ProfessionalTax)
	total.NetPay = roundTo2Decimals(total.NetPay + row.NetPay)
}

// currentFinancialYear returns the starting year of the April-March year
// containing t.
func currentFinancialYear(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

func validateSalaryInput(input domain.SalaryInput) error {
	if input.FinancialYear < 0 {
		return errors.New("financial year must not be negative")
	}
	for field, amount := range map[string]float64{
		"base pay":          input.BasePay,
		"da percent":        input.DAPercent,
		"hra percent":       input.HRAPercent,
		"cca":               input.CCA,
		"epf percent":       input.EPFPercent,
		"annual income tax": input.AnnualIncomeTax,
		"professional tax":  input.ProfessionalTax,
	} {
		if err := CheckAmount(field, amount); err != nil {
			return err
		}
	}
	return nil
}
