package payroll

import "errors"

var (
	ErrNotFound             = errors.New("payroll record not found")
	ErrPayInfoMissing       = errors.New("pay information is missing or incomplete")
	ErrNoApprovedTimesheets = errors.New("no approved timesheets exist for the requested week")
	ErrAlreadyProcessed     = errors.New("payroll has already been processed for this period")
	ErrNotProcessed         = errors.New("only processed payrolls can be marked as paid")
)
