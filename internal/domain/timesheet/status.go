package timesheet

// Status is the timesheet workflow state. Legal transitions:
// DRAFT -> SUBMITTED -> APPROVED | DENIED, and DENIED -> SUBMITTED after
// re-editing. APPROVED is terminal for the week.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusDenied    Status = "DENIED"
)

func (s Status) CanBeEdited() bool {
	return s == StatusDraft || s == StatusDenied
}

func (s Status) CanBeSubmitted() bool {
	return s == StatusDraft || s == StatusDenied
}

func (s Status) CanBeReviewed() bool {
	return s == StatusSubmitted
}

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusDenied:
		return Status(value), true
	}
	return "", false
}
