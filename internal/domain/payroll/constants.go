package payroll

const (
	StatusPreview   = "PREVIEW"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"

	// Flat deduction rates applied to gross pay.
	TaxRate             = 0.20
	OtherDeductionsRate = 0.05

	// Salary-to-hourly conversion assumptions.
	WeeksPerYear = 52
	HoursPerWeek = 40
)
