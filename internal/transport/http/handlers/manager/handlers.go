package managerhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/timesheet"
	"hrms/internal/requestctx"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Timesheets *timesheet.Service
}

func NewHandler(timesheets *timesheet.Service) *Handler {
	return &Handler{Timesheets: timesheets}
}

type denyPayload struct {
	Reason string `json:"reason"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/manager/timesheets", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin))
		r.Get("/", h.handleList)
		r.Get("/pending/count", h.handlePendingCount)
		r.Post("/{timesheetID}/approve", h.handleApprove)
		r.Post("/{timesheetID}/deny", h.handleDeny)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	status := timesheet.StatusSubmitted
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := timesheet.ParseStatus(raw)
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown timesheet status", reqID)
			return
		}
		status = parsed
	}

	page := shared.ParsePagination(r)
	items, err := h.Timesheets.ListForManager(r.Context(), user.Username, status, page.Limit, page.Offset)
	if err != nil {
		writeReviewError(w, err, reqID)
		return
	}
	api.Success(w, items, reqID)
}

func (h *Handler) handlePendingCount(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	count, err := h.Timesheets.PendingCount(r.Context(), user.Username)
	if err != nil {
		writeReviewError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int64{"pendingCount": count}, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Timesheets.Approve(r.Context(), chi.URLParam(r, "timesheetID"), user.Username); err != nil {
		writeReviewError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "approved"}, reqID)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload denyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.DenialReason("reason", payload.Reason)
	if v.Reject(w, reqID) {
		return
	}

	if err := h.Timesheets.Deny(r.Context(), chi.URLParam(r, "timesheetID"), user.Username, payload.Reason); err != nil {
		writeReviewError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "denied"}, reqID)
}

func writeReviewError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, timesheet.ErrNotFound), errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "timesheet not found", reqID)
	case errors.Is(err, timesheet.ErrNotManagerOfRecord):
		api.Fail(w, http.StatusForbidden, "forbidden", "only the employee's assigned manager may review this timesheet", reqID)
	case errors.Is(err, timesheet.ErrNotReviewable):
		api.Fail(w, http.StatusConflict, "state_conflict", "timesheet cannot be reviewed in its current status", reqID)
	default:
		slog.Error("timesheet review failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
