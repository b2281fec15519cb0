package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, employee_code, username, email, first_name, last_name,
  date_of_birth, hire_date, role, manager_id, is_active, is_first_login, created_at
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	var role string
	err := row.Scan(&e.ID, &e.EmployeeCode, &e.Username, &e.Email, &e.FirstName, &e.LastName,
		&e.DateOfBirth, &e.HireDate, &role, &e.ManagerID, &e.IsActive, &e.IsFirstLogin, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	parsed, ok := auth.ParseRole(role)
	if !ok {
		return Employee{}, errors.New("employee has unknown role: " + role)
	}
	e.Role = parsed
	return e, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE username = $1", username)
	return scanEmployee(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY last_name, first_name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Create inserts a new employee. The manager-role invariant is enforced here:
// a manager reference may only point at a MANAGER or ADMIN.
func (s *Store) Create(ctx context.Context, e Employee, passwordHash string) (string, error) {
	if e.ManagerID != nil {
		manager, err := s.FindByID(ctx, *e.ManagerID)
		if errors.Is(err, ErrNotFound) {
			return "", ErrManagerNotFound
		}
		if err != nil {
			return "", err
		}
		if !manager.Role.CanManage() {
			return "", ErrManagerRole
		}
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, username, email, password_hash, first_name, last_name, date_of_birth, hire_date, role, manager_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, e.EmployeeCode, e.Username, e.Email, passwordHash, e.FirstName, e.LastName, e.DateOfBirth, e.HireDate, string(e.Role), e.ManagerID).Scan(&id)
	if isUniqueViolation(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) FindPayInfo(ctx context.Context, employeeID string) (PayInfo, error) {
	var p PayInfo
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, salary, hourly_rate, pay_frequency, payment_method,
           COALESCE(bank_name, ''), COALESCE(account_number, ''), COALESCE(routing_number, '')
    FROM pay_info
    WHERE employee_id = $1
  `, employeeID).Scan(&p.ID, &p.EmployeeID, &p.Salary, &p.HourlyRate, &p.PayFrequency, &p.PaymentMethod, &p.BankName, &p.AccountNumber, &p.RoutingNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayInfo{}, ErrPayInfoNotFound
	}
	if err != nil {
		return PayInfo{}, err
	}
	return p, nil
}

func (s *Store) UpsertPayInfo(ctx context.Context, p PayInfo) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO pay_info (employee_id, salary, hourly_rate, pay_frequency, payment_method, bank_name, account_number, routing_number)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (employee_id) DO UPDATE SET
      salary = EXCLUDED.salary,
      hourly_rate = EXCLUDED.hourly_rate,
      pay_frequency = EXCLUDED.pay_frequency,
      payment_method = EXCLUDED.payment_method,
      bank_name = EXCLUDED.bank_name,
      account_number = EXCLUDED.account_number,
      routing_number = EXCLUDED.routing_number,
      updated_at = now()
  `, p.EmployeeID, p.Salary, p.HourlyRate, p.PayFrequency, p.PaymentMethod, p.BankName, p.AccountNumber, p.RoutingNumber)
	return err
}

func (s *Store) FindContactInfo(ctx context.Context, employeeID string) (ContactInfo, error) {
	var c ContactInfo
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(phone, ''), COALESCE(address_line1, ''), COALESCE(address_line2, ''),
           COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, ''), COALESCE(country, ''),
           COALESCE(emergency_contact_name, ''), COALESCE(emergency_contact_phone, '')
    FROM contact_info
    WHERE employee_id = $1
  `, employeeID).Scan(&c.ID, &c.EmployeeID, &c.Phone, &c.AddressLine1, &c.AddressLine2, &c.City, &c.State,
		&c.PostalCode, &c.Country, &c.EmergencyContactName, &c.EmergencyContactPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return ContactInfo{}, ErrContactNotFound
	}
	if err != nil {
		return ContactInfo{}, err
	}
	return c, nil
}

func (s *Store) UpsertContactInfo(ctx context.Context, c ContactInfo) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO contact_info (employee_id, phone, address_line1, address_line2, city, state, postal_code, country, emergency_contact_name, emergency_contact_phone)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    ON CONFLICT (employee_id) DO UPDATE SET
      phone = EXCLUDED.phone,
      address_line1 = EXCLUDED.address_line1,
      address_line2 = EXCLUDED.address_line2,
      city = EXCLUDED.city,
      state = EXCLUDED.state,
      postal_code = EXCLUDED.postal_code,
      country = EXCLUDED.country,
      emergency_contact_name = EXCLUDED.emergency_contact_name,
      emergency_contact_phone = EXCLUDED.emergency_contact_phone,
      updated_at = now()
  `, c.EmployeeID, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode, c.Country,
		c.EmergencyContactName, c.EmergencyContactPhone)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
