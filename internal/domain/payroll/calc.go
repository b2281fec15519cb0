package payroll

import "math"

// Breakdown is one employee's pay figures for a week, all rounded half-up
// to two decimal places.
type Breakdown struct {
	HourlyRate      float64
	GrossPay        float64
	TaxDeduction    float64
	OtherDeductions float64
	Bonus           float64
	NetPay          float64
}

// DeriveHourlyRate resolves the effective hourly rate from pay info. A
// positive explicit rate wins; otherwise the annual salary is converted in
// two rounding steps: divide by 52 and round to 4 decimals, then divide by
// 40 and round to 2. Returns ErrPayInfoMissing when neither is usable.
func DeriveHourlyRate(hourlyRate, salary *float64) (float64, error) {
	if hourlyRate != nil && *hourlyRate > 0 {
		return *hourlyRate, nil
	}
	if salary == nil {
		return 0, ErrPayInfoMissing
	}
	weekly := roundHalfUp(*salary/WeeksPerYear, 4)
	return roundHalfUp(weekly/HoursPerWeek, 2), nil
}

// Compute turns hours and an hourly rate into the full pay breakdown. Each
// intermediate figure is rounded before the next is derived, so preview and
// run agree digit for digit.
func Compute(totalHours, hourlyRate, bonus float64) Breakdown {
	gross := roundHalfUp(totalHours*hourlyRate, 2)
	tax := roundHalfUp(gross*TaxRate, 2)
	other := roundHalfUp(gross*OtherDeductionsRate, 2)
	net := roundHalfUp(gross+bonus-tax-other, 2)
	return Breakdown{
		HourlyRate:      hourlyRate,
		GrossPay:        gross,
		TaxDeduction:    tax,
		OtherDeductions: other,
		Bonus:           bonus,
		NetPay:          net,
	}
}

func roundHalfUp(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}

// roundTotals snaps the summary totals back to two decimals. The lines are
// already rounded, but summing them in float64 can reintroduce stray
// fractional cents.
func (s *PreviewSummary) roundTotals() {
	s.TotalGrossPay = roundHalfUp(s.TotalGrossPay, 2)
	s.TotalTaxDeduction = roundHalfUp(s.TotalTaxDeduction, 2)
	s.TotalOtherDeductions = roundHalfUp(s.TotalOtherDeductions, 2)
	s.TotalNetPay = roundHalfUp(s.TotalNetPay, 2)
}
