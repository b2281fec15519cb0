package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hrms/internal/domain/employee"
	"hrms/internal/domain/timesheet"
)

// Service turns approved timesheets for a week into payroll records. Preview
// computes without persisting; Run persists one PROCESSED record per
// timesheet inside a single transaction.
type Service struct {
	Store      *Store
	Timesheets *timesheet.Store
	Employees  *employee.Store
}

func NewService(store *Store, timesheets *timesheet.Store, employees *employee.Store) *Service {
	return &Service{Store: store, Timesheets: timesheets, Employees: employees}
}

// Preview computes the weekly payroll without touching storage. An empty week
// yields an empty summary, not an error. A missing pay info record aborts the
// whole preview, mirroring Run.
func (s *Service) Preview(ctx context.Context, weekStart time.Time) (PreviewSummary, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)
	summary := PreviewSummary{
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		Lines:         []PreviewLine{},
	}

	approved, err := s.Timesheets.ApprovedForWeek(ctx, weekStart)
	if err != nil {
		return PreviewSummary{}, err
	}

	for _, sheet := range approved {
		emp, breakdown, err := s.calculate(ctx, sheet)
		if err != nil {
			return PreviewSummary{}, err
		}
		summary.Lines = append(summary.Lines, PreviewLine{
			EmployeeID:      emp.ID,
			EmployeeName:    emp.FullName(),
			Username:        emp.Username,
			TotalHours:      sheet.TotalHours,
			HourlyRate:      breakdown.HourlyRate,
			GrossPay:        breakdown.GrossPay,
			TaxDeduction:    breakdown.TaxDeduction,
			OtherDeductions: breakdown.OtherDeductions,
			NetPay:          breakdown.NetPay,
		})
		summary.TotalGrossPay += breakdown.GrossPay
		summary.TotalTaxDeduction += breakdown.TaxDeduction
		summary.TotalOtherDeductions += breakdown.OtherDeductions
		summary.TotalNetPay += breakdown.NetPay
	}
	summary.EmployeeCount = len(summary.Lines)
	summary.roundTotals()
	return summary, nil
}

// Run processes payroll for the week: it requires at least one approved
// timesheet, refuses to double-process a period, and persists everything in
// one transaction. Any employee with missing pay info aborts the entire run.
func (s *Service) Run(ctx context.Context, weekStart, paymentDate time.Time, processorUsername string) (RunResult, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	processor, err := s.Employees.FindByUsername(ctx, processorUsername)
	if err != nil {
		return RunResult{}, err
	}

	approved, err := s.Timesheets.ApprovedForWeek(ctx, weekStart)
	if err != nil {
		return RunResult{}, err
	}
	if len(approved) == 0 {
		return RunResult{}, ErrNoApprovedTimesheets
	}

	var records []ProcessedRun
	var totalNet float64
	for _, sheet := range approved {
		_, breakdown, err := s.calculate(ctx, sheet)
		if err != nil {
			return RunResult{}, err
		}
		records = append(records, ProcessedRun{EmployeeID: sheet.EmployeeID, Breakdown: breakdown})
		totalNet += breakdown.NetPay
	}

	processedAt := time.Now()
	if err := s.Store.InsertProcessedRun(ctx, weekStart, weekEnd, records, processor.ID, paymentDate, processedAt); err != nil {
		return RunResult{}, err
	}

	slog.Info("payroll processed", "weekStart", weekStart.Format("2006-01-02"),
		"count", len(records), "totalNet", totalNet, "processor", processorUsername)

	return RunResult{
		ProcessedCount: len(records),
		TotalNetPay:    roundHalfUp(totalNet, 2),
		ProcessedAt:    processedAt,
	}, nil
}

func (s *Service) calculate(ctx context.Context, sheet timesheet.Timesheet) (employee.Employee, Breakdown, error) {
	emp, err := s.Employees.FindByID(ctx, sheet.EmployeeID)
	if err != nil {
		return employee.Employee{}, Breakdown{}, err
	}

	payInfo, err := s.Employees.FindPayInfo(ctx, sheet.EmployeeID)
	if err != nil {
		return employee.Employee{}, Breakdown{}, payInfoError(err, emp.Username)
	}

	rate, err := DeriveHourlyRate(payInfo.HourlyRate, payInfo.Salary)
	if err != nil {
		return employee.Employee{}, Breakdown{}, fmt.Errorf("%w: employee %s", err, emp.Username)
	}

	return emp, Compute(sheet.TotalHours, rate, 0), nil
}

// payInfoError maps an absent pay info record to ErrPayInfoMissing, which the
// transport layer treats as a caller error. Anything else, a cancelled context
// or a connection failure, passes through untouched.
func payInfoError(err error, username string) error {
	if errors.Is(err, employee.ErrPayInfoNotFound) {
		return fmt.Errorf("%w: employee %s", ErrPayInfoMissing, username)
	}
	return err
}

func (s *Service) MarkPaid(ctx context.Context, payrollID string) error {
	record, err := s.Store.FindByID(ctx, payrollID)
	if err != nil {
		return err
	}
	if record.Status != StatusProcessed {
		return ErrNotProcessed
	}

	changed, err := s.Store.MarkPaid(ctx, payrollID)
	if err != nil {
		return err
	}
	if !changed {
		return ErrNotProcessed
	}
	return nil
}

func (s *Service) History(ctx context.Context, username string) ([]Payroll, error) {
	emp, err := s.Employees.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Store.ListForEmployee(ctx, emp.ID)
}

func (s *Service) HistoryByDateRange(ctx context.Context, start, end time.Time) ([]Payroll, error) {
	return s.Store.ListProcessedByDateRange(ctx, start, end)
}

func (s *Service) GetByID(ctx context.Context, payrollID string) (Payroll, error) {
	return s.Store.FindByID(ctx, payrollID)
}
