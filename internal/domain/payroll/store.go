package payroll

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

const payrollColumns = `
  id, employee_id, pay_period_start, pay_period_end, gross_pay, tax_deduction,
  other_deductions, bonus, net_pay, status, processed_at, processed_by, payment_date, created_at
`

func scanPayroll(row pgx.Row) (Payroll, error) {
	var p Payroll
	err := row.Scan(&p.ID, &p.EmployeeID, &p.PayPeriodStart, &p.PayPeriodEnd, &p.GrossPay, &p.TaxDeduction,
		&p.OtherDeductions, &p.Bonus, &p.NetPay, &p.Status, &p.ProcessedAt, &p.ProcessedBy, &p.PaymentDate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, ErrNotFound
	}
	if err != nil {
		return Payroll{}, err
	}
	return p, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (Payroll, error) {
	return scanPayroll(s.DB.QueryRow(ctx, "SELECT "+payrollColumns+" FROM payrolls WHERE id = $1", id))
}

// ProcessedRun is one record to persist during a payroll run.
type ProcessedRun struct {
	EmployeeID string
	Breakdown  Breakdown
}

// InsertProcessedRun persists the full weekly run atomically: it re-checks
// that no PROCESSED record exists for the period, clears stale PREVIEW rows,
// then inserts every record with status PROCESSED. A concurrent run for the
// same week either fails the re-check or trips the partial unique index;
// either way exactly one caller commits.
func (s *Store) InsertProcessedRun(ctx context.Context, periodStart, periodEnd time.Time, records []ProcessedRun, processorID string, paymentDate, processedAt time.Time) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existing int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1) FROM payrolls
    WHERE pay_period_start = $1 AND pay_period_end = $2 AND status = $3
  `, periodStart, periodEnd, StatusProcessed).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return ErrAlreadyProcessed
	}

	if _, err := tx.Exec(ctx, "DELETE FROM payrolls WHERE status = $1", StatusPreview); err != nil {
		return err
	}

	for _, record := range records {
		b := record.Breakdown
		if _, err := tx.Exec(ctx, `
      INSERT INTO payrolls (employee_id, pay_period_start, pay_period_end, gross_pay, tax_deduction,
                            other_deductions, bonus, net_pay, status, processed_at, processed_by, payment_date)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, record.EmployeeID, periodStart, periodEnd, b.GrossPay, b.TaxDeduction, b.OtherDeductions,
			b.Bonus, b.NetPay, StatusProcessed, processedAt, processorID, paymentDate); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyProcessed
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// MarkPaid transitions PROCESSED to PAID; the status guard keeps the
// transition atomic and PAID terminal.
func (s *Store) MarkPaid(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payrolls SET status = $1 WHERE id = $2 AND status = $3
  `, StatusPaid, id, StatusProcessed)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+payrollColumns+" FROM payrolls WHERE employee_id = $1 ORDER BY pay_period_start DESC",
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayrolls(rows)
}

// ListProcessedByDateRange returns processed and paid records whose period
// falls fully inside [start, end].
func (s *Store) ListProcessedByDateRange(ctx context.Context, start, end time.Time) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payrollColumns+`
    FROM payrolls
    WHERE status <> $1 AND pay_period_start >= $2 AND pay_period_end <= $3
    ORDER BY pay_period_start DESC, employee_id
  `, StatusPreview, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayrolls(rows)
}

func collectPayrolls(rows pgx.Rows) ([]Payroll, error) {
	var payrolls []Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
