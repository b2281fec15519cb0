package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const timesheetColumns = `
  id, employee_id, week_start_date, week_end_date, total_hours, status,
  submitted_at, reviewed_at, reviewed_by, denial_reason, created_at
`

func scanTimesheet(row pgx.Row) (Timesheet, error) {
	var t Timesheet
	var status string
	err := row.Scan(&t.ID, &t.EmployeeID, &t.WeekStartDate, &t.WeekEndDate, &t.TotalHours, &status,
		&t.SubmittedAt, &t.ReviewedAt, &t.ReviewedBy, &t.DenialReason, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Timesheet{}, ErrNotFound
	}
	if err != nil {
		return Timesheet{}, err
	}
	parsed, ok := ParseStatus(status)
	if !ok {
		return Timesheet{}, errors.New("timesheet has unknown status: " + status)
	}
	t.Status = parsed
	return t, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (Timesheet, error) {
	t, err := scanTimesheet(s.DB.QueryRow(ctx, "SELECT "+timesheetColumns+" FROM timesheets WHERE id = $1", id))
	if err != nil {
		return Timesheet{}, err
	}
	t.Entries, err = s.ListEntries(ctx, t.ID)
	return t, err
}

func (s *Store) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (Timesheet, error) {
	t, err := scanTimesheet(s.DB.QueryRow(ctx,
		"SELECT "+timesheetColumns+" FROM timesheets WHERE employee_id = $1 AND week_start_date = $2",
		employeeID, weekStart))
	if err != nil {
		return Timesheet{}, err
	}
	t.Entries, err = s.ListEntries(ctx, t.ID)
	return t, err
}

// Create inserts an empty DRAFT timesheet for the week. The unique
// (employee_id, week_start_date) constraint turns a duplicate attempt into
// ErrDuplicateWeek rather than silently reusing the existing row.
func (s *Store) Create(ctx context.Context, employeeID string, weekStart time.Time) (Timesheet, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)
	t, err := scanTimesheet(s.DB.QueryRow(ctx, `
    INSERT INTO timesheets (employee_id, week_start_date, week_end_date)
    VALUES ($1, $2, $3)
    RETURNING `+timesheetColumns, employeeID, weekStart, weekEnd))
	if isUniqueViolation(err) {
		return Timesheet{}, ErrDuplicateWeek
	}
	if err != nil {
		return Timesheet{}, err
	}
	t.Entries = []Entry{}
	return t, nil
}

func (s *Store) ListEntries(ctx context.Context, timesheetID string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, timesheet_id, work_date, hours_worked, COALESCE(description, '')
    FROM timesheet_entries
    WHERE timesheet_id = $1
    ORDER BY work_date
  `, timesheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TimesheetID, &e.WorkDate, &e.HoursWorked, &e.Description); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceEntries swaps the full entry set and the derived total in one
// transaction, guarded by the editable-status check inside the same
// transaction so a concurrent submit cannot interleave.
func (s *Store) ReplaceEntries(ctx context.Context, timesheetID string, entries []EntryInput, totalHours float64) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, "SELECT status FROM timesheets WHERE id = $1 FOR UPDATE", timesheetID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	parsed, ok := ParseStatus(status)
	if !ok || !parsed.CanBeEdited() {
		return ErrNotEditable
	}

	if _, err := tx.Exec(ctx, "DELETE FROM timesheet_entries WHERE timesheet_id = $1", timesheetID); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := tx.Exec(ctx, `
      INSERT INTO timesheet_entries (timesheet_id, work_date, hours_worked, description)
      VALUES ($1, $2, $3, $4)
    `, timesheetID, entry.WorkDate, entry.HoursWorked, entry.Description); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEntryDate
			}
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
    UPDATE timesheets SET total_hours = $1, updated_at = now() WHERE id = $2
  `, totalHours, timesheetID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) CountEntries(ctx context.Context, timesheetID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM timesheet_entries WHERE timesheet_id = $1", timesheetID).Scan(&count)
	return count, err
}

// MarkSubmitted flips DRAFT/DENIED to SUBMITTED. The status guard in the
// WHERE clause makes the transition atomic under concurrency.
func (s *Store) MarkSubmitted(ctx context.Context, timesheetID string, now time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets
    SET status = $1, submitted_at = $2, updated_at = now()
    WHERE id = $3 AND status IN ($4, $5)
  `, string(StatusSubmitted), now, timesheetID, string(StatusDraft), string(StatusDenied))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkApproved flips SUBMITTED to APPROVED; of two concurrent reviews exactly
// one sees a row change.
func (s *Store) MarkApproved(ctx context.Context, timesheetID, reviewerID string, now time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets
    SET status = $1, reviewed_by = $2, reviewed_at = $3, denial_reason = NULL, updated_at = now()
    WHERE id = $4 AND status = $5
  `, string(StatusApproved), reviewerID, now, timesheetID, string(StatusSubmitted))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkDenied(ctx context.Context, timesheetID, reviewerID, reason string, now time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets
    SET status = $1, reviewed_by = $2, reviewed_at = $3, denial_reason = $4, updated_at = now()
    WHERE id = $5 AND status = $6
  `, string(StatusDenied), reviewerID, now, reason, timesheetID, string(StatusSubmitted))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+timesheetColumns+" FROM timesheets WHERE employee_id = $1 ORDER BY week_start_date DESC",
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	return sheets, rows.Err()
}

func (s *Store) ListForManager(ctx context.Context, managerID string, status Status, limit, offset int) ([]ListItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.employee_id, e.first_name || ' ' || e.last_name,
           t.week_start_date, t.week_end_date, t.total_hours, t.status, t.submitted_at
    FROM timesheets t
    JOIN employees e ON t.employee_id = e.id
    WHERE e.manager_id = $1 AND t.status = $2
    ORDER BY t.submitted_at ASC NULLS LAST
    LIMIT $3 OFFSET $4
  `, managerID, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var item ListItem
		var rawStatus string
		if err := rows.Scan(&item.ID, &item.EmployeeID, &item.EmployeeName, &item.WeekStartDate,
			&item.WeekEndDate, &item.TotalHours, &rawStatus, &item.SubmittedAt); err != nil {
			return nil, err
		}
		item.Status = Status(rawStatus)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) PendingCountForManager(ctx context.Context, managerID string) (int64, error) {
	var count int64
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM timesheets t
    JOIN employees e ON t.employee_id = e.id
    WHERE e.manager_id = $1 AND t.status = $2
  `, managerID, string(StatusSubmitted)).Scan(&count)
	return count, err
}

// ApprovedForWeek feeds the payroll calculator.
func (s *Store) ApprovedForWeek(ctx context.Context, weekStart time.Time) ([]Timesheet, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+timesheetColumns+" FROM timesheets WHERE status = $1 AND week_start_date = $2",
		string(StatusApproved), weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	return sheets, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
