package timesheet

import "time"

type Timesheet struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	WeekStartDate time.Time  `json:"weekStartDate"`
	WeekEndDate   time.Time  `json:"weekEndDate"`
	TotalHours    float64    `json:"totalHours"`
	Status        Status     `json:"status"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy    *string    `json:"reviewedBy,omitempty"`
	DenialReason  *string    `json:"denialReason,omitempty"`
	Entries       []Entry    `json:"entries"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Entry struct {
	ID          string    `json:"id"`
	TimesheetID string    `json:"timesheetId"`
	WorkDate    time.Time `json:"workDate"`
	HoursWorked float64   `json:"hoursWorked"`
	Description string    `json:"description,omitempty"`
}

// EntryInput is the caller-supplied replacement set for a timesheet's entries.
type EntryInput struct {
	WorkDate    time.Time
	HoursWorked float64
	Description string
}

// ListItem is the flattened row managers see when reviewing queues.
type ListItem struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	WeekStartDate time.Time  `json:"weekStartDate"`
	WeekEndDate   time.Time  `json:"weekEndDate"`
	TotalHours    float64    `json:"totalHours"`
	Status        Status     `json:"status"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
}

// WeekStart returns the Monday of the week containing the given date,
// normalized to a bare UTC date.
func WeekStart(date time.Time) time.Time {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// SumHours recomputes the derived total from an entry set.
func SumHours(entries []EntryInput) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.HoursWorked
	}
	return total
}
