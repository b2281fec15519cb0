package timesheethandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/employee"
	"hrms/internal/domain/timesheet"
	"hrms/internal/requestctx"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Timesheets *timesheet.Service
	Employees  *employee.Store
}

func NewHandler(timesheets *timesheet.Service, employees *employee.Store) *Handler {
	return &Handler{Timesheets: timesheets, Employees: employees}
}

type entryPayload struct {
	WorkDate    string  `json:"workDate"`
	HoursWorked float64 `json:"hoursWorked"`
	Description string  `json:"description"`
}

type updatePayload struct {
	Entries []entryPayload `json:"entries"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employee/timesheet", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/current", h.handleGetCurrent)
		r.Put("/current", h.handleUpdateCurrent)
		r.Get("/history", h.handleHistory)
		r.Get("/{timesheetID}", h.handleGetByID)
		r.Put("/{timesheetID}", h.handleUpdateByID)
		r.Post("/{timesheetID}/submit", h.handleSubmit)
	})
}

func (h *Handler) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	sheet, err := h.Timesheets.GetCurrent(r.Context(), user.Username)
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

func (h *Handler) handleUpdateCurrent(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	sheet, err := h.Timesheets.GetCurrent(r.Context(), user.Username)
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}
	h.updateEntries(w, r, sheet.ID, user.Username, reqID)
}

func (h *Handler) handleUpdateByID(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	h.updateEntries(w, r, chi.URLParam(r, "timesheetID"), user.Username, reqID)
}

func (h *Handler) updateEntries(w http.ResponseWriter, r *http.Request, timesheetID, username, reqID string) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	inputs := make([]timesheet.EntryInput, 0, len(payload.Entries))
	seenDates := make(map[string]bool, len(payload.Entries))
	for i, entry := range payload.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		workDate, ok := v.Date(field+".workDate", entry.WorkDate)
		v.Hours(field+".hoursWorked", entry.HoursWorked)
		if !ok {
			continue
		}
		day := workDate.Format("2006-01-02")
		if seenDates[day] {
			v.Add(field+".workDate", "duplicate work date")
			continue
		}
		seenDates[day] = true
		inputs = append(inputs, timesheet.EntryInput{
			WorkDate:    workDate,
			HoursWorked: entry.HoursWorked,
			Description: entry.Description,
		})
	}
	if v.Reject(w, reqID) {
		return
	}

	sheet, err := h.Timesheets.UpdateEntries(r.Context(), timesheetID, username, inputs)
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	sheets, err := h.Timesheets.History(r.Context(), user.Username)
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}
	api.Success(w, sheets, reqID)
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	sheet, err := h.Timesheets.GetByID(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}

	allowed, err := h.canView(r, user.Username, sheet.EmployeeID)
	if err != nil {
		slog.Error("timesheet access check failed", "timesheetId", sheet.ID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
		return
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "timesheet belongs to another employee", reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

// canView admits the owner, the owner's assigned manager, and admins.
func (h *Handler) canView(r *http.Request, callerUsername, ownerID string) (bool, error) {
	owner, err := h.Employees.FindByID(r.Context(), ownerID)
	if err != nil {
		return false, err
	}
	if owner.Username == callerUsername {
		return true, nil
	}

	caller, err := h.Employees.FindByUsername(r.Context(), callerUsername)
	if err != nil {
		return false, err
	}
	if caller.Role.IsAdmin() {
		return true, nil
	}
	return caller.Role.CanManage() && owner.ManagerID != nil && *owner.ManagerID == caller.ID, nil
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	timesheetID := chi.URLParam(r, "timesheetID")
	if err := h.Timesheets.Submit(r.Context(), timesheetID, user.Username); err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}

	sheet, err := h.Timesheets.GetByID(r.Context(), timesheetID)
	if err != nil {
		writeTimesheetError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

func writeTimesheetError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, timesheet.ErrNotFound), errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "timesheet not found", reqID)
	case errors.Is(err, timesheet.ErrNotOwner):
		api.Fail(w, http.StatusForbidden, "forbidden", "timesheet belongs to another employee", reqID)
	case errors.Is(err, timesheet.ErrNotEditable):
		api.Fail(w, http.StatusConflict, "state_conflict", "timesheet cannot be edited in its current status", reqID)
	case errors.Is(err, timesheet.ErrNotSubmittable):
		api.Fail(w, http.StatusConflict, "state_conflict", "timesheet cannot be submitted in its current status", reqID)
	case errors.Is(err, timesheet.ErrEmptyTimesheet):
		api.Fail(w, http.StatusBadRequest, "empty_timesheet", "cannot submit a timesheet with no entries", reqID)
	case errors.Is(err, timesheet.ErrInvalidEntryDate):
		api.Fail(w, http.StatusBadRequest, "invalid_entry_date", "entry work date falls outside the timesheet week", reqID)
	case errors.Is(err, timesheet.ErrDuplicateEntryDate):
		api.Fail(w, http.StatusBadRequest, "duplicate_entry_date", "two entries share the same work date", reqID)
	default:
		slog.Error("timesheet request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
