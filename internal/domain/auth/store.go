package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Credentials is the slice of the employee record the token issuer needs.
type Credentials struct {
	EmployeeID   string
	Username     string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsFirstLogin bool
}

func (s *Store) FindCredentials(ctx context.Context, username string) (Credentials, error) {
	var c Credentials
	var role string
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role, is_active, is_first_login
    FROM employees
    WHERE username = $1
  `, username).Scan(&c.EmployeeID, &c.Username, &c.PasswordHash, &role, &c.IsActive, &c.IsFirstLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrAuthenticationFailed
	}
	if err != nil {
		return Credentials{}, err
	}
	parsed, ok := ParseRole(role)
	if !ok {
		return Credentials{}, errors.New("employee has unknown role: " + role)
	}
	c.Role = parsed
	return c, nil
}

func (s *Store) CreateRefreshToken(ctx context.Context, employeeID, token string, expiry time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO refresh_tokens (employee_id, token, expiry_date)
    VALUES ($1, $2, $3)
  `, employeeID, token, expiry)
	return err
}

func (s *Store) FindRefreshToken(ctx context.Context, token string) (RefreshToken, error) {
	var t RefreshToken
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, token, expiry_date, revoked, created_at
    FROM refresh_tokens
    WHERE token = $1
  `, token).Scan(&t.ID, &t.EmployeeID, &t.Token, &t.ExpiryDate, &t.Revoked, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RefreshToken{}, ErrTokenNotFound
	}
	if err != nil {
		return RefreshToken{}, err
	}
	return t, nil
}

func (s *Store) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM refresh_tokens WHERE token = $1", token)
	return err
}

// RevokeRefreshToken marks one token revoked. The revoked = FALSE guard makes
// the revocation an atomic claim: of two concurrent callers only one sees a
// row change.
func (s *Store) RevokeRefreshToken(ctx context.Context, token string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE refresh_tokens SET revoked = TRUE
    WHERE token = $1 AND revoked = FALSE
  `, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) RevokeAllForEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE refresh_tokens SET revoked = TRUE
    WHERE employee_id = $1 AND revoked = FALSE
  `, employeeID)
	return err
}

func (s *Store) CountValid(ctx context.Context, employeeID string, now time.Time) (int64, error) {
	var count int64
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM refresh_tokens
    WHERE employee_id = $1 AND revoked = FALSE AND expiry_date > $2
  `, employeeID, now).Scan(&count)
	return count, err
}

func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM refresh_tokens WHERE expiry_date < $1", now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) PurgeRevoked(ctx context.Context) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM refresh_tokens WHERE revoked = TRUE")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) EmployeeRole(ctx context.Context, employeeID string) (string, Role, error) {
	var username, roleRaw string
	err := s.DB.QueryRow(ctx, "SELECT username, role FROM employees WHERE id = $1", employeeID).Scan(&username, &roleRaw)
	if err != nil {
		return "", "", err
	}
	role, ok := ParseRole(roleRaw)
	if !ok {
		return "", "", errors.New("employee has unknown role: " + roleRaw)
	}
	return username, role, nil
}
