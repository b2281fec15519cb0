package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/requestctx"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
}

func NewHandler(employees *employee.Store) *Handler {
	return &Handler{Employees: employees}
}

type createPayload struct {
	EmployeeCode string `json:"employeeCode"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	ManagerID    string `json:"managerId"`
	HireDate     string `json:"hireDate"`
	DateOfBirth  string `json:"dateOfBirth"`
}

type payInfoPayload struct {
	Salary        *float64 `json:"salary"`
	HourlyRate    *float64 `json:"hourlyRate"`
	PayFrequency  string   `json:"payFrequency"`
	PaymentMethod string   `json:"paymentMethod"`
	BankName      string   `json:"bankName"`
	AccountNumber string   `json:"accountNumber"`
	RoutingNumber string   `json:"routingNumber"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Get("/{employeeID}/pay-info", h.handleGetPayInfo)
		r.Put("/{employeeID}/pay-info", h.handlePutPayInfo)
		r.Get("/{employeeID}/contact-info", h.handleGetContactInfo)
		r.Put("/{employeeID}/contact-info", h.handlePutContactInfo)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeCode", payload.EmployeeCode, "is required")
	v.Required("username", payload.Username, "is required")
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	v.Required("firstName", payload.FirstName, "is required")
	v.Required("lastName", payload.LastName, "is required")

	role, roleOK := auth.ParseRole(payload.Role)
	if !roleOK {
		v.Add("role", "must be one of EMPLOYEE, MANAGER, ADMIN")
	}
	hireDate, _ := v.Date("hireDate", payload.HireDate)

	var dateOfBirth *time.Time
	if payload.DateOfBirth != "" {
		if parsed, ok := v.Date("dateOfBirth", payload.DateOfBirth); ok {
			dateOfBirth = &parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		slog.Error("password hash failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "employee creation failed", reqID)
		return
	}

	record := employee.Employee{
		EmployeeCode: payload.EmployeeCode,
		Username:     payload.Username,
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		DateOfBirth:  dateOfBirth,
		HireDate:     hireDate,
		Role:         role,
		IsActive:     true,
		IsFirstLogin: true,
	}
	if payload.ManagerID != "" {
		record.ManagerID = &payload.ManagerID
	}

	id, err := h.Employees.Create(r.Context(), record, hash)
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}

	created, err := h.Employees.FindByID(r.Context(), id)
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	page := shared.ParsePagination(r)
	records, err := h.Employees.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	record, err := h.Employees.FindByID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleGetPayInfo(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	info, err := h.Employees.FindPayInfo(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, info, reqID)
}

func (h *Handler) handlePutPayInfo(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if _, err := h.Employees.FindByID(r.Context(), employeeID); err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}

	var payload payInfoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	if payload.Salary != nil && *payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	if payload.HourlyRate != nil && *payload.HourlyRate < 0 {
		v.Add("hourlyRate", "must not be negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	info := employee.PayInfo{
		EmployeeID:    employeeID,
		Salary:        payload.Salary,
		HourlyRate:    payload.HourlyRate,
		PayFrequency:  payload.PayFrequency,
		PaymentMethod: payload.PaymentMethod,
		BankName:      payload.BankName,
		AccountNumber: payload.AccountNumber,
		RoutingNumber: payload.RoutingNumber,
	}
	if err := h.Employees.UpsertPayInfo(r.Context(), info); err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}

	saved, err := h.Employees.FindPayInfo(r.Context(), employeeID)
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, saved, reqID)
}

func (h *Handler) handleGetContactInfo(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	info, err := h.Employees.FindContactInfo(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, info, reqID)
}

func (h *Handler) handlePutContactInfo(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if _, err := h.Employees.FindByID(r.Context(), employeeID); err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}

	var info employee.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	info.EmployeeID = employeeID

	if err := h.Employees.UpsertContactInfo(r.Context(), info); err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}

	saved, err := h.Employees.FindContactInfo(r.Context(), employeeID)
	if err != nil {
		writeEmployeeError(w, err, reqID)
		return
	}
	api.Success(w, saved, reqID)
}

func writeEmployeeError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrPayInfoNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "pay information not found", reqID)
	case errors.Is(err, employee.ErrContactNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "contact information not found", reqID)
	case errors.Is(err, employee.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "duplicate", "employee with the same username, email or code already exists", reqID)
	case errors.Is(err, employee.ErrManagerNotFound):
		api.Fail(w, http.StatusBadRequest, "invalid_manager", "manager not found", reqID)
	case errors.Is(err, employee.ErrManagerRole):
		api.Fail(w, http.StatusBadRequest, "invalid_manager", "assigned manager must hold the MANAGER or ADMIN role", reqID)
	default:
		slog.Error("employee request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
