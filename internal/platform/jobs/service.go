package jobs

import (
	"context"
	"log/slog"
	"time"

	"hrms/internal/domain/auth"
)

// Service sweeps dead refresh tokens on a fixed interval so the token table
// does not grow without bound. Sweeps are safe to run concurrently with live
// refresh traffic.
type Service struct {
	Auth     *auth.Service
	Interval time.Duration
}

func New(authService *auth.Service, interval time.Duration) *Service {
	return &Service{Auth: authService, Interval: interval}
}

func (s *Service) Start(ctx context.Context) {
	if s.Interval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	expired, err := s.Auth.PurgeExpired(ctx)
	if err != nil {
		slog.Warn("expired token sweep failed", "err", err)
	}
	revoked, err := s.Auth.PurgeRevoked(ctx)
	if err != nil {
		slog.Warn("revoked token sweep failed", "err", err)
	}
	if expired > 0 || revoked > 0 {
		slog.Info("refresh token sweep", "expired", expired, "revoked", revoked)
	}
}
