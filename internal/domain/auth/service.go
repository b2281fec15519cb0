package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service is the token issuer: it authenticates credentials, mints signed
// access tokens, and owns the refresh-token lifecycle. Refresh tokens are
// opaque random strings looked up in storage, never parsed.
type Service struct {
	Store           *Store
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func NewService(store *Store, secret, issuer string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		Store:           store,
		Secret:          secret,
		Issuer:          issuer,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

// LoginResult carries the token pair plus the identity facts the client
// needs immediately after login.
type LoginResult struct {
	TokenPair
	EmployeeID   string
	Username     string
	Role         Role
	IsFirstLogin bool
}

func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	creds, err := s.Store.FindCredentials(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return LoginResult{}, ErrAuthenticationFailed
	}
	if !creds.IsActive {
		return LoginResult{}, ErrAccountInactive
	}

	accessToken, err := GenerateToken(s.Secret, s.Issuer, creds.Username, []Role{creds.Role}, s.AccessTokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	refreshToken := uuid.NewString()
	if err := s.Store.CreateRefreshToken(ctx, creds.EmployeeID, refreshToken, time.Now().Add(s.RefreshTokenTTL)); err != nil {
		return LoginResult{}, err
	}

	slog.Info("login succeeded", "username", creds.Username)
	return LoginResult{
		TokenPair: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(s.AccessTokenTTL.Seconds()),
		},
		EmployeeID:   creds.EmployeeID,
		Username:     creds.Username,
		Role:         creds.Role,
		IsFirstLogin: creds.IsFirstLogin,
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. Rotation
// is enabled: the old refresh token is revoked and a new one issued in its
// place. The revocation is a conditional UPDATE, so of two concurrent calls
// with the same token exactly one wins; the loser observes the token as
// revoked. An expired token is deleted before the error is surfaced.
func (s *Service) Refresh(ctx context.Context, token string) (TokenPair, error) {
	stored, err := s.Store.FindRefreshToken(ctx, token)
	if err != nil {
		return TokenPair{}, err
	}

	now := time.Now()
	if stored.Expired(now) {
		if err := s.Store.DeleteRefreshToken(ctx, token); err != nil {
			slog.Warn("expired refresh token cleanup failed", "err", err)
		}
		return TokenPair{}, ErrTokenExpired
	}
	if stored.Revoked {
		return TokenPair{}, ErrTokenRevoked
	}

	revoked, err := s.Store.RevokeRefreshToken(ctx, token)
	if err != nil {
		return TokenPair{}, err
	}
	if !revoked {
		// Lost the race against a concurrent refresh of the same token.
		return TokenPair{}, ErrTokenRevoked
	}

	username, role, err := s.Store.EmployeeRole(ctx, stored.EmployeeID)
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := GenerateToken(s.Secret, s.Issuer, username, []Role{role}, s.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	newRefresh := uuid.NewString()
	if err := s.Store.CreateRefreshToken(ctx, stored.EmployeeID, newRefresh, now.Add(s.RefreshTokenTTL)); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(s.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if _, err := s.Store.FindRefreshToken(ctx, token); err != nil {
		return err
	}
	_, err := s.Store.RevokeRefreshToken(ctx, token)
	return err
}

func (s *Service) RevokeAll(ctx context.Context, employeeID string) error {
	return s.Store.RevokeAllForEmployee(ctx, employeeID)
}

func (s *Service) CountValid(ctx context.Context, employeeID string) (int64, error) {
	return s.Store.CountValid(ctx, employeeID, time.Now())
}

// PurgeExpired and PurgeRevoked are maintenance sweeps, safe to run
// concurrently with live refresh traffic.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Store.PurgeExpired(ctx, time.Now())
}

func (s *Service) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.Store.PurgeRevoked(ctx)
}
