package timesheet

import (
	"testing"
	"time"
)

func TestStatusTransitionGuards(t *testing.T) {
	cases := []struct {
		status      Status
		editable    bool
		submittable bool
		reviewable  bool
	}{
		{StatusDraft, true, true, false},
		{StatusSubmitted, false, false, true},
		{StatusApproved, false, false, false},
		{StatusDenied, true, true, false},
	}

	for _, tc := range cases {
		if got := tc.status.CanBeEdited(); got != tc.editable {
			t.Errorf("%s CanBeEdited = %v, want %v", tc.status, got, tc.editable)
		}
		if got := tc.status.CanBeSubmitted(); got != tc.submittable {
			t.Errorf("%s CanBeSubmitted = %v, want %v", tc.status, got, tc.submittable)
		}
		if got := tc.status.CanBeReviewed(); got != tc.reviewable {
			t.Errorf("%s CanBeReviewed = %v, want %v", tc.status, got, tc.reviewable)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	if _, ok := ParseStatus("PENDING"); ok {
		t.Fatal("expected PENDING to be rejected")
	}
	if status, ok := ParseStatus("SUBMITTED"); !ok || status != StatusSubmitted {
		t.Fatalf("expected SUBMITTED, got %s ok=%v", status, ok)
	}
}

func TestWeekStartAnchorsToMonday(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-08-24", "2026-08-24"}, // Monday maps to itself
		{"2026-08-26", "2026-08-24"}, // Wednesday
		{"2026-08-30", "2026-08-24"}, // Sunday stays in the preceding Monday's week
		{"2026-08-31", "2026-08-31"}, // next Monday
	}
	for _, tc := range cases {
		date, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekStart(date).Format("2006-01-02"); got != tc.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tc.date, got, tc.want)
		}
	}
}

func TestSumHours(t *testing.T) {
	entries := []EntryInput{
		{HoursWorked: 8},
		{HoursWorked: 7.5},
		{HoursWorked: 8.25},
	}
	if got := SumHours(entries); got != 23.75 {
		t.Fatalf("expected 23.75, got %v", got)
	}
	if got := SumHours(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
}
