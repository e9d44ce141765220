package service

const (
	MaxIncome = 1_000_000_000_000.0 // 1 lakh crore
	MaxAge    = 150

	// Topes de deducciones (sección entre paréntesis).
	MaxHousingLoanInterest = 200_000.0 // 24(b)
	Max80C                 = 150_000.0
	Max80CCD1B             = 50_000.0
	Max80D                 = 25_000.0
	Max80DSenior           = 50_000.0
	Max80EEA               = 150_000.0
	Max80TTA               = 10_000.0
	Max80TTB               = 50_000.0
	Disability80U          = 75_000.0

	HouseRepairsRate   = 0.30
	HRARentExcessRate  = 0.10
	HRANonMetroCapRate = 0.40

	MinDeductionMonths = 1
	MaxDeductionMonths = 12

	DefaultPlace = "Kavaraipettai"
)
