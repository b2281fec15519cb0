package timesheet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hrms/internal/domain/employee"
)

type Service struct {
	Store     *Store
	Employees *employee.Store
}

func NewService(store *Store, employees *employee.Store) *Service {
	return &Service{Store: store, Employees: employees}
}

// GetCurrent returns the employee's timesheet for the server's current week,
// lazily creating an empty DRAFT one. The week anchor is the server-side
// Monday, never a client-supplied date.
func (s *Service) GetCurrent(ctx context.Context, username string) (Timesheet, error) {
	emp, err := s.Employees.FindByUsername(ctx, username)
	if err != nil {
		return Timesheet{}, err
	}

	weekStart := WeekStart(time.Now().UTC())
	sheet, err := s.Store.FindByEmployeeAndWeek(ctx, emp.ID, weekStart)
	if err == nil {
		return sheet, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Timesheet{}, err
	}

	sheet, err = s.Store.Create(ctx, emp.ID, weekStart)
	if errors.Is(err, ErrDuplicateWeek) {
		// Another request created it between our lookup and insert.
		return s.Store.FindByEmployeeAndWeek(ctx, emp.ID, weekStart)
	}
	return sheet, err
}

func (s *Service) GetByID(ctx context.Context, timesheetID string) (Timesheet, error) {
	return s.Store.FindByID(ctx, timesheetID)
}

func (s *Service) History(ctx context.Context, username string) ([]Timesheet, error) {
	emp, err := s.Employees.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Store.ListForEmployee(ctx, emp.ID)
}

// UpdateEntries replaces the full entry set of an editable timesheet. Every
// work date must fall inside the timesheet's week; totals are recomputed from
// the replacement set.
func (s *Service) UpdateEntries(ctx context.Context, timesheetID, username string, entries []EntryInput) (Timesheet, error) {
	sheet, err := s.Store.FindByID(ctx, timesheetID)
	if err != nil {
		return Timesheet{}, err
	}

	emp, err := s.Employees.FindByUsername(ctx, username)
	if err != nil {
		return Timesheet{}, err
	}
	if sheet.EmployeeID != emp.ID {
		return Timesheet{}, ErrNotOwner
	}
	if !sheet.Status.CanBeEdited() {
		return Timesheet{}, ErrNotEditable
	}

	for _, entry := range entries {
		if entry.WorkDate.Before(sheet.WeekStartDate) || entry.WorkDate.After(sheet.WeekEndDate) {
			return Timesheet{}, ErrInvalidEntryDate
		}
	}

	if err := s.Store.ReplaceEntries(ctx, timesheetID, entries, SumHours(entries)); err != nil {
		return Timesheet{}, err
	}
	return s.Store.FindByID(ctx, timesheetID)
}

func (s *Service) Submit(ctx context.Context, timesheetID, username string) error {
	sheet, err := s.Store.FindByID(ctx, timesheetID)
	if err != nil {
		return err
	}

	emp, err := s.Employees.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if sheet.EmployeeID != emp.ID {
		return ErrNotOwner
	}
	if !sheet.Status.CanBeSubmitted() {
		return ErrNotSubmittable
	}
	if len(sheet.Entries) == 0 {
		return ErrEmptyTimesheet
	}

	changed, err := s.Store.MarkSubmitted(ctx, timesheetID, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return ErrNotSubmittable
	}

	slog.Info("timesheet submitted", "timesheetId", timesheetID, "username", username)
	return nil
}

func (s *Service) Approve(ctx context.Context, timesheetID, reviewerUsername string) error {
	reviewerID, err := s.checkReviewable(ctx, timesheetID, reviewerUsername)
	if err != nil {
		return err
	}

	changed, err := s.Store.MarkApproved(ctx, timesheetID, reviewerID, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return ErrNotReviewable
	}

	slog.Info("timesheet approved", "timesheetId", timesheetID, "reviewer", reviewerUsername)
	return nil
}

func (s *Service) Deny(ctx context.Context, timesheetID, reviewerUsername, reason string) error {
	reviewerID, err := s.checkReviewable(ctx, timesheetID, reviewerUsername)
	if err != nil {
		return err
	}

	changed, err := s.Store.MarkDenied(ctx, timesheetID, reviewerID, reason, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return ErrNotReviewable
	}

	slog.Info("timesheet denied", "timesheetId", timesheetID, "reviewer", reviewerUsername)
	return nil
}

// checkReviewable verifies the timesheet is in a reviewable state and the
// reviewer is the owning employee's manager of record. The final state check
// is repeated atomically in the conditional UPDATE.
func (s *Service) checkReviewable(ctx context.Context, timesheetID, reviewerUsername string) (string, error) {
	sheet, err := s.Store.FindByID(ctx, timesheetID)
	if err != nil {
		return "", err
	}
	if !sheet.Status.CanBeReviewed() {
		return "", ErrNotReviewable
	}

	reviewer, err := s.Employees.FindByUsername(ctx, reviewerUsername)
	if err != nil {
		return "", err
	}
	owner, err := s.Employees.FindByID(ctx, sheet.EmployeeID)
	if err != nil {
		return "", err
	}
	if owner.ManagerID == nil || *owner.ManagerID != reviewer.ID {
		return "", ErrNotManagerOfRecord
	}
	return reviewer.ID, nil
}

func (s *Service) ListForManager(ctx context.Context, managerUsername string, status Status, limit, offset int) ([]ListItem, error) {
	manager, err := s.Employees.FindByUsername(ctx, managerUsername)
	if err != nil {
		return nil, err
	}
	return s.Store.ListForManager(ctx, manager.ID, status, limit, offset)
}

func (s *Service) PendingCount(ctx context.Context, managerUsername string) (int64, error) {
	manager, err := s.Employees.FindByUsername(ctx, managerUsername)
	if err != nil {
		return 0, err
	}
	return s.Store.PendingCountForManager(ctx, manager.ID)
}

func (s *Service) ApprovedForWeek(ctx context.Context, weekStart time.Time) ([]Timesheet, error) {
	return s.Store.ApprovedForWeek(ctx, weekStart)
}
