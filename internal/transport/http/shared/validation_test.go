package shared

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	if _, err := ParseDate("2026-08-24"); err != nil {
		t.Fatalf("plain date: %v", err)
	}
	if _, err := ParseDate("2026-08-24T00:00:00Z"); err != nil {
		t.Fatalf("rfc3339 date: %v", err)
	}
	if _, err := ParseDate("24/08/2026"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseDateDropsTimeOfDay(t *testing.T) {
	got, err := ParseDate("2026-08-24T23:30:00+02:00")
	if err != nil {
		t.Fatalf("rfc3339 with offset: %v", err)
	}
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeekStartDateRequiresMonday(t *testing.T) {
	v := NewValidator()
	if _, ok := v.WeekStartDate("weekStartDate", "2026-08-26"); ok {
		t.Fatal("expected Wednesday to be rejected")
	}
	if !v.HasIssues() {
		t.Fatal("expected validation issue")
	}

	v = NewValidator()
	parsed, ok := v.WeekStartDate("weekStartDate", "2026-08-24")
	if !ok || v.HasIssues() {
		t.Fatalf("expected Monday to pass, issues: %+v", v.Issues())
	}
	if parsed.Weekday() != time.Monday {
		t.Fatalf("unexpected weekday: %v", parsed.Weekday())
	}
}

func TestDenialReasonBounds(t *testing.T) {
	v := NewValidator()
	v.DenialReason("reason", "too short")
	if !v.HasIssues() {
		t.Fatal("expected short reason to be rejected")
	}

	v = NewValidator()
	v.DenialReason("reason", strings.Repeat("x", 501))
	if !v.HasIssues() {
		t.Fatal("expected long reason to be rejected")
	}

	v = NewValidator()
	v.DenialReason("reason", "hours on Friday do not match the project log")
	if v.HasIssues() {
		t.Fatalf("expected valid reason to pass, issues: %+v", v.Issues())
	}
}

func TestHoursBounds(t *testing.T) {
	cases := []struct {
		hours float64
		valid bool
	}{
		{0, false},
		{-1, false},
		{0.5, true},
		{24, true},
		{24.5, false},
	}
	for _, tc := range cases {
		v := NewValidator()
		v.Hours("hours", tc.hours)
		if v.HasIssues() == tc.valid {
			t.Fatalf("hours %.1f: expected valid=%v, issues: %+v", tc.hours, tc.valid, v.Issues())
		}
	}
}

func TestDateNotPast(t *testing.T) {
	today := time.Date(2026, time.August, 28, 15, 0, 0, 0, time.UTC)

	v := NewValidator()
	v.DateNotPast("paymentDate", time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC), today)
	if !v.HasIssues() {
		t.Fatal("expected yesterday to be rejected")
	}

	v = NewValidator()
	v.DateNotPast("paymentDate", time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), today)
	if v.HasIssues() {
		t.Fatalf("expected today to pass, issues: %+v", v.Issues())
	}
}

func TestRejectWritesValidationEnvelope(t *testing.T) {
	v := NewValidator()
	v.Add("username", "is required")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "validation_error") || !strings.Contains(body, "username") {
		t.Fatalf("unexpected body: %s", body)
	}

	clean := NewValidator()
	rec = httptest.NewRecorder()
	if clean.Reject(rec, "req-2") {
		t.Fatal("expected no rejection for clean validator")
	}
}
