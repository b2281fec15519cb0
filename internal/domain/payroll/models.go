package payroll

import "time"

type Payroll struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	PayPeriodStart  time.Time  `json:"payPeriodStart"`
	PayPeriodEnd    time.Time  `json:"payPeriodEnd"`
	GrossPay        float64    `json:"grossPay"`
	TaxDeduction    float64    `json:"taxDeduction"`
	OtherDeductions float64    `json:"otherDeductions"`
	Bonus           float64    `json:"bonus"`
	NetPay          float64    `json:"netPay"`
	Status          string     `json:"status"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	ProcessedBy     *string    `json:"processedBy,omitempty"`
	PaymentDate     *time.Time `json:"paymentDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// PreviewLine is one employee's computed figures in a non-persisted preview.
type PreviewLine struct {
	EmployeeID      string  `json:"employeeId"`
	EmployeeName    string  `json:"employeeName"`
	Username        string  `json:"username"`
	TotalHours      float64 `json:"totalHours"`
	HourlyRate      float64 `json:"hourlyRate"`
	GrossPay        float64 `json:"grossPay"`
	TaxDeduction    float64 `json:"taxDeduction"`
	OtherDeductions float64 `json:"otherDeductions"`
	NetPay          float64 `json:"netPay"`
}

type PreviewSummary struct {
	WeekStartDate        time.Time     `json:"weekStartDate"`
	WeekEndDate          time.Time     `json:"weekEndDate"`
	EmployeeCount        int           `json:"employeeCount"`
	TotalGrossPay        float64       `json:"totalGrossPay"`
	TotalTaxDeduction    float64       `json:"totalTaxDeduction"`
	TotalOtherDeductions float64       `json:"totalOtherDeductions"`
	TotalNetPay          float64       `json:"totalNetPay"`
	Lines                []PreviewLine `json:"lines"`
}

type RunResult struct {
	ProcessedCount int       `json:"processedCount"`
	TotalNetPay    float64   `json:"totalNetPay"`
	ProcessedAt    time.Time `json:"processedAt"`
}
