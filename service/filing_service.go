package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"income-tax/domain"
)

const declarationDateLayout = "02-01-2006"

// FilingService prepares the yearly income tax worksheet: salary, house
// property and other income, the old regime deductions schedule, the tax,
// the TDS balance and the declaration text.
type FilingService struct {
	taxService        *TaxService
	comparisonService *ComparisonService
	logger            zerolog.Logger
	now               func() time.Time
}

func NewFilingService(
	taxService *TaxService,
	comparisonService *ComparisonService,
	logger zerolog.Logger,
) *FilingService {
	return &FilingService{
		taxService:        taxService,
		comparisonService: comparisonService,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *FilingService) Prepare(
	ctx context.Context,
	input domain.FilingInput,
) (domain.FilingResult, error) {
	if err := validateFilingInput(input); err != nil {
		return domain.FilingResult{}, err
	}
	if input.RuleSet == "" {
		input.RuleSet = RuleSetFilingFY2024
	}
	ruleSet, err := s.taxService.Rules().Get(input.RuleSet)
	if err != nil {
		return domain.FilingResult{}, err
	}
	rules, err := ruleSet.Regime(input.Regime)
	if err != nil {
		return domain.FilingResult{}, err
	}

	months := input.RemainingMonths
	if months == 0 {
		months = MaxDeductionMonths
	}
	if months < MinDeductionMonths || months > MaxDeductionMonths {
		return domain.FilingResult{}, fmt.Errorf("remaining months must be between %d and %d", MinDeductionMonths, MaxDeductionMonths)
	}

	declDate := s.now()
	if input.Date != "" {
		declDate, err = time.Parse(declarationDateLayout, input.Date)
		if err != nil {
			return domain.FilingResult{}, fmt.Errorf("invalid date %q, expected DD-MM-YYYY", input.Date)
		}
	}

	senior := input.Taxpayer.Age >= domain.SeniorCitizenAge
	res := domain.FilingResult{
		SalaryTotal: roundTo2Decimals(input.Salary.Total()),
		HouseIncome: roundTo2Decimals(houseIncome(input.HouseProperty)),
		OtherIncome: roundTo2Decimals(input.OtherIncome.SavingsInterest + input.OtherIncome.FDInterest + input.OtherIncome.Other),
	}

	hraExemption := HRAExemption(input.Salary, input.RentPaid)
	schedule, total80C := deductionSchedule(input, senior)
	schedule[domain.DeductionHRAExemption] = hraExemption
	res.Section80CTotal = roundTo2Decimals(total80C)

	// La exención de HRA sólo existe en el régimen que admite deducciones.
	gross := res.SalaryTotal - input.ProfessionalTax + res.HouseIncome + res.OtherIncome
	res.NetSalary = roundTo2Decimals(res.SalaryTotal - input.ProfessionalTax)
	if rules.AllowsDeductions {
		res.HRAExemption = hraExemption
		res.NetSalary = roundTo2Decimals(res.NetSalary - hraExemption)
		res.Deductions = schedule
	} else {
		res.Deductions = map[string]float64{}
	}

	taxInput := domain.TaxInput{
		RuleSet:     ruleSet.Name,
		GrossIncome: math.Max(0, gross),
		Age:         input.Taxpayer.Age,
		Regime:      input.Regime,
		Deductions:  schedule,
	}
	tax, err := s.taxService.CalculateTax(ctx, taxInput)
	if err != nil {
		return domain.FilingResult{}, err
	}
	res.Tax = tax
	res.StandardDeduction = tax.StandardDeduction
	res.TotalDeductions = roundTo2Decimals(tax.TotalDeductions - res.HRAExemption)
	res.GrossTotalIncome = roundTo2Decimals(res.NetSalary - res.StandardDeduction + res.HouseIncome + res.OtherIncome)

	var scheduleTotal float64
	for _, amount := range schedule {
		scheduleTotal += amount
	}
	res.Comparison, err = s.comparisonService.CompareRegimes(ctx, domain.ComparisonInput{
		RuleSet:     ruleSet.Name,
		GrossIncome: math.Max(0, gross),
		Deductions:  roundTo2Decimals(scheduleTotal),
		Age:         input.Taxpayer.Age,
	})
	if err != nil {
		return domain.FilingResult{}, err
	}

	res.RemainingTax = roundTo2Decimals(math.Max(0, tax.TotalTax-input.TDSDeducted))
	res.MonthlyDeduction = roundTo2Decimals(res.RemainingTax / float64(months))
	res.AmountInWords, err = AmountInWords(res.RemainingTax)
	if err != nil {
		return domain.FilingResult{}, err
	}
	res.Declaration = Declaration(input.Taxpayer, res.RemainingTax, res.AmountInWords, declDate)

	s.logger.Info().
		Str("rule_set", ruleSet.Name).
		Str("regime", string(input.Regime)).
		Float64("remaining_tax", res.RemainingTax).
		Str("recommended", string(res.Comparison.Recommended)).
		Msg("filing prepared")

	return res, nil
}

// HRAExemption is the least of the HRA received, the rent above 10% of
// basic+AGP and 40% of basic+AGP (non-metro).
func HRAExemption(salary domain.Salary, rentPaid float64) float64 {
	base := salary.Basic + salary.AGP
	rentExcess := math.Max(0, rentPaid-base*HRARentExcessRate)
	return roundTo2Decimals(math.Min(salary.HRA, math.Min(rentExcess, base*HRANonMetroCapRate)))
}

// houseIncome is the net annual value less 30% for repairs and the capped
// housing loan interest. It may be negative.
func houseIncome(hp *domain.HouseProperty) float64 {
	if hp == nil {
		return 0
	}
	nav := hp.RentReceived - hp.PropertyTax
	repairs := nav * HouseRepairsRate
	return nav - repairs - math.Min(hp.HousingLoanInterest, MaxHousingLoanInterest)
}

func deductionSchedule(input domain.FilingInput, senior bool) (map[string]float64, float64) {
	d := input.Deductions
	other := input.OtherIncome

	total80C := input.EPFSubscription
	for _, amount := range d.Section80C {
		total80C += amount
	}

	mediclaimCap := Max80D
	if senior {
		mediclaimCap = Max80DSenior
	}

	schedule := map[string]float64{
		domain.Deduction80C:          math.Min(total80C, Max80C),
		domain.Deduction80CCD1B:      math.Min(d.AdditionalNPS, Max80CCD1B),
		domain.Deduction80D:          math.Min(d.Mediclaim, mediclaimCap),
		domain.Deduction80E:          d.EducationLoanInterest,
		domain.Deduction80EEA:        math.Min(d.AffordableHousing, Max80EEA),
		domain.Deduction80EEB:        d.EVLoanInterest,
		domain.Deduction80G:          d.Donations,
		domain.DeductionRentPaid80GG: d.RentPaid80GG,
		domain.Deduction80TTA:        math.Min(other.SavingsInterest, Max80TTA),
	}
	if senior {
		schedule[domain.Deduction80TTB] = math.Min(other.SavingsInterest+other.FDInterest, Max80TTB)
	}
	if d.Disabled {
		schedule[domain.Deduction80U] = Disability80U
	}

	for k, v := range schedule {
		if v == 0 {
			delete(schedule, k)
			continue
		}
		schedule[k] = roundTo2Decimals(v)
	}
	return schedule, total80C
}

// Declaration is the closing statement of the worksheet; words is amount
// as returned by AmountInWords.
func Declaration(taxpayer domain.Taxpayer, amount float64, words string, date time.Time) string {
	place := taxpayer.Place
	if place == "" {
		place = DefaultPlace
	}
	lines := []string{
		fmt.Sprintf("I, %s, do hereby declare that what is stated above is true to the best of my knowledge and belief.", taxpayer.Name),
		"Date: " + date.Format(declarationDateLayout),
		"Place: " + place,
		"Signature: __________________",
		fmt.Sprintf("Please deduct Rs. %s (Rupees %s only) from my salary from the month of %s.",
			FormatRupees(amount), words, date.Format("January")),
	}
	return strings.Join(lines, "\n")
}

func validateFilingInput(in domain.FilingInput) error {
	if in.Taxpayer.Age < 0 || in.Taxpayer.Age > MaxAge {
		return fmt.Errorf("age must be between 0 and %d", MaxAge)
	}
	s := in.Salary
	d := in.Deductions
	amounts := map[string]float64{
		"basic salary":                s.Basic,
		"agp":                         s.AGP,
		"da":                          s.DA,
		"hra":                         s.HRA,
		"cca":                         s.CCA,
		"ir":                          s.IR,
		"other allowances":            s.OtherAllowances,
		"perquisites":                 s.Perquisites,
		"pension":                     s.Pension,
		"others":                      s.Others,
		"additional income":           s.Additional,
		"epf subscription":            in.EPFSubscription,
		"professional tax":            in.ProfessionalTax,
		"rent paid":                   in.RentPaid,
		"savings interest":            in.OtherIncome.SavingsInterest,
		"fd interest":                 in.OtherIncome.FDInterest,
		"exam remuneration":           in.OtherIncome.ExamRemuneration,
		"other income":                in.OtherIncome.Other,
		"additional nps":              d.AdditionalNPS,
		"mediclaim":                   d.Mediclaim,
		"education loan interest":     d.EducationLoanInterest,
		"affordable housing interest": d.AffordableHousing,
		"ev loan interest":            d.EVLoanInterest,
		"donations":                   d.Donations,
		"rent paid 80gg":              d.RentPaid80GG,
		"tds deducted":                in.TDSDeducted,
	}
	if hp := in.HouseProperty; hp != nil {
		amounts["rent received"] = hp.RentReceived
		amounts["property tax"] = hp.PropertyTax
		amounts["housing loan interest"] = hp.HousingLoanInterest
	}
	for name, amount := range d.Section80C {
		amounts["80C "+name] = amount
	}
	for field, amount := range amounts {
		if err := CheckAmount(field, amount); err != nil {
			return err
		}
	}
	return nil
}
