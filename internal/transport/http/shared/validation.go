package shared

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"hrms/internal/transport/http/api"
)

const (
	denialReasonMinLen = 10
	denialReasonMaxLen = 500
	maxDailyHours      = 24
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

// WeekStartDate parses the field and requires it to fall on a Monday.
func (v *Validator) WeekStartDate(field, raw string) (time.Time, bool) {
	parsed, ok := v.Date(field, raw)
	if !ok {
		return time.Time{}, false
	}
	if parsed.Weekday() != time.Monday {
		v.Add(field, "must be a Monday")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateNotPast(field string, value time.Time, today time.Time) {
	if value.IsZero() {
		return
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if value.Before(day) {
		v.Add(field, "must not be in the past")
	}
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

// Hours checks a single day's worked hours.
func (v *Validator) Hours(field string, hours float64) {
	if hours <= 0 {
		v.Add(field, "must be greater than zero")
		return
	}
	if hours > maxDailyHours {
		v.Add(field, "must not exceed 24")
	}
}

// DenialReason enforces the review-comment length bounds.
func (v *Validator) DenialReason(field, reason string) {
	trimmed := strings.TrimSpace(reason)
	if len(trimmed) < denialReasonMinLen {
		v.Add(field, "must be at least 10 characters")
		return
	}
	if len(trimmed) > denialReasonMaxLen {
		v.Add(field, "must be at most 500 characters")
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}
