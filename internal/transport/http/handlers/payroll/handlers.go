package payrollhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/payroll"
	"hrms/internal/requestctx"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Payrolls   *payroll.Service
	Employees  *employee.Store
	PayslipDir string
}

func NewHandler(payrolls *payroll.Service, employees *employee.Store, payslipDir string) *Handler {
	return &Handler{Payrolls: payrolls, Employees: employees, PayslipDir: payslipDir}
}

type runPayload struct {
	WeekStartDate string `json:"weekStartDate"`
	PaymentDate   string `json:"paymentDate"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/payroll", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/preview", h.handlePreview)
		r.Post("/run", h.handleRun)
		r.Patch("/{payrollID}/mark-paid", h.handleMarkPaid)
		r.Get("/history", h.handleAdminHistory)
	})
	r.Route("/employee/payroll", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/history", h.handleEmployeeHistory)
		r.Get("/{payrollID}", h.handleGetByID)
		r.Get("/{payrollID}/payslip", h.handleDownloadPayslip)
	})
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	v := shared.NewValidator()
	weekStart, _ := v.WeekStartDate("weekStartDate", r.URL.Query().Get("weekStartDate"))
	if v.Reject(w, reqID) {
		return
	}

	summary, err := h.Payrolls.Preview(r.Context(), weekStart)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	weekStart, _ := v.WeekStartDate("weekStartDate", payload.WeekStartDate)
	paymentDate, ok := v.Date("paymentDate", payload.PaymentDate)
	if ok {
		v.DateNotPast("paymentDate", paymentDate, time.Now().UTC())
	}
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Payrolls.Run(r.Context(), weekStart, paymentDate, user.Username)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	api.Created(w, result, reqID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	payrollID := chi.URLParam(r, "payrollID")
	if err := h.Payrolls.MarkPaid(r.Context(), payrollID); err != nil {
		writePayrollError(w, err, reqID)
		return
	}

	record, err := h.Payrolls.GetByID(r.Context(), payrollID)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleAdminHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	v := shared.NewValidator()
	start, _ := v.Date("start", r.URL.Query().Get("start"))
	end, _ := v.Date("end", r.URL.Query().Get("end"))
	v.DateOrder("start", start, "end", end)
	if v.Reject(w, reqID) {
		return
	}

	records, err := h.Payrolls.HistoryByDateRange(r.Context(), start, end)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	records, err := h.Payrolls.History(r.Context(), user.Username)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	record, allowed, err := h.findAccessible(r, chi.URLParam(r, "payrollID"), user)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "payroll record belongs to another employee", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	record, allowed, err := h.findAccessible(r, chi.URLParam(r, "payrollID"), user)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "payroll record belongs to another employee", reqID)
		return
	}

	path, err := h.Payrolls.GeneratePayslipPDF(r.Context(), record.ID, h.PayslipDir)
	if err != nil {
		writePayrollError(w, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

// findAccessible loads the payroll record and reports whether the caller may
// see it: the owning employee or an admin.
func (h *Handler) findAccessible(r *http.Request, payrollID string, user middleware.UserContext) (payroll.Payroll, bool, error) {
	record, err := h.Payrolls.GetByID(r.Context(), payrollID)
	if err != nil {
		return payroll.Payroll{}, false, err
	}
	if user.HasRole(auth.RoleAdmin) {
		return record, true, nil
	}
	caller, err := h.Employees.FindByUsername(r.Context(), user.Username)
	if err != nil {
		return payroll.Payroll{}, false, err
	}
	return record, record.EmployeeID == caller.ID, nil
}

func writePayrollError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", reqID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, payroll.ErrPayInfoMissing):
		api.Fail(w, http.StatusBadRequest, "pay_info_missing", err.Error(), reqID)
	case errors.Is(err, payroll.ErrNoApprovedTimesheets):
		api.Fail(w, http.StatusBadRequest, "no_approved_timesheets", "no approved timesheets exist for the requested week", reqID)
	case errors.Is(err, payroll.ErrAlreadyProcessed):
		api.Fail(w, http.StatusConflict, "already_processed", "payroll has already been processed for this period", reqID)
	case errors.Is(err, payroll.ErrNotProcessed):
		api.Fail(w, http.StatusConflict, "state_conflict", "only processed payrolls can be marked as paid", reqID)
	default:
		slog.Error("payroll request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
