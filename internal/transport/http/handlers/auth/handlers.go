package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/requestctx"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Auth      *auth.Service
	Employees *employee.Store
}

func NewHandler(authService *auth.Service, employees *employee.Store) *Handler {
	return &Handler{Auth: authService, Employees: employees}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterRoutes mounts the auth endpoints. credentialLimit is applied to the
// two endpoints that accept credentials or tokens from unauthenticated
// callers.
func (h *Handler) RegisterRoutes(r chi.Router, credentialLimit func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(credentialLimit).Post("/login", h.handleLogin)
		r.With(credentialLimit).Post("/refresh", h.handleRefresh)
		r.With(middleware.RequireAuth).Post("/logout", h.handleLogout)
		r.With(middleware.RequireAuth).Post("/logout-all", h.handleLogoutAll)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Auth.Login(r.Context(), payload.Username, payload.Password)
	switch {
	case errors.Is(err, auth.ErrAuthenticationFailed):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	case errors.Is(err, auth.ErrAccountInactive):
		api.Fail(w, http.StatusUnauthorized, "account_inactive", "account is inactive", reqID)
		return
	case err != nil:
		slog.Error("login failed", "username", payload.Username, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"expiresIn":    result.ExpiresIn,
		"user": map[string]any{
			"id":           result.EmployeeID,
			"username":     result.Username,
			"role":         result.Role,
			"isFirstLogin": result.IsFirstLogin,
		},
	}, reqID)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.RefreshToken == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "refreshToken is required", reqID)
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), payload.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrTokenNotFound):
		api.Fail(w, http.StatusUnauthorized, "invalid_token", "refresh token not found", reqID)
		return
	case errors.Is(err, auth.ErrTokenExpired):
		api.Fail(w, http.StatusUnauthorized, "token_expired", "refresh token has expired", reqID)
		return
	case errors.Is(err, auth.ErrTokenRevoked):
		api.Fail(w, http.StatusUnauthorized, "token_revoked", "refresh token has been revoked", reqID)
		return
	case err != nil:
		slog.Error("refresh failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "token refresh failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    pair.ExpiresIn,
	}, reqID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.RefreshToken == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "refreshToken is required", reqID)
		return
	}

	err := h.Auth.Revoke(r.Context(), payload.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrTokenNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "refresh token not found", reqID)
		return
	case err != nil:
		slog.Error("logout failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "logout failed", reqID)
		return
	}

	api.Success(w, map[string]string{"status": "logged_out"}, reqID)
}

func (h *Handler) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	record, err := h.Employees.FindByUsername(r.Context(), user.Username)
	if err != nil {
		slog.Error("logout-all lookup failed", "username", user.Username, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "logout failed", reqID)
		return
	}

	if err := h.Auth.RevokeAll(r.Context(), record.ID); err != nil {
		slog.Error("logout-all revoke failed", "username", user.Username, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "logout failed", reqID)
		return
	}

	api.Success(w, map[string]string{"status": "logged_out_everywhere"}, reqID)
}
