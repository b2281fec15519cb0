package timesheet

import "errors"

var (
	ErrNotFound           = errors.New("timesheet not found")
	ErrNotEditable        = errors.New("timesheet cannot be edited in its current status")
	ErrNotSubmittable     = errors.New("timesheet cannot be submitted in its current status")
	ErrNotReviewable      = errors.New("timesheet cannot be reviewed in its current status")
	ErrNotOwner           = errors.New("timesheet belongs to another employee")
	ErrNotManagerOfRecord = errors.New("only the employee's assigned manager may review this timesheet")
	ErrEmptyTimesheet     = errors.New("cannot submit a timesheet with no entries")
	ErrInvalidEntryDate   = errors.New("entry work date falls outside the timesheet week")
	ErrDuplicateWeek      = errors.New("a timesheet already exists for this employee and week")
	ErrDuplicateEntryDate = errors.New("two entries share the same work date")
)
