package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

// Seed ensures a bootstrap admin account exists so the API is reachable on a
// fresh database. It never overwrites an existing account.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	username := strings.TrimSpace(cfg.SeedAdminUsername)
	if username == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE username = $1", username).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = "ChangeMe123!"
		slog.Warn("seeding admin with default password, change it immediately", "username", username)
	}
	email := cfg.SeedAdminEmail
	if email == "" {
		email = username + "@example.com"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (employee_code, username, email, password_hash, first_name, last_name, role, is_active, is_first_login)
    VALUES ('EMP-0001', $1, $2, $3, 'System', 'Administrator', $4, TRUE, TRUE)
  `, username, email, hash, auth.RoleAdmin)
	return err
}
