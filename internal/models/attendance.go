package models

import "time"

// AttendanceEventType distinguishes check-in from check-out events.
type AttendanceEventType string

const (
	AttendanceCheckIn  AttendanceEventType = "CHECK_IN"
	AttendanceCheckOut AttendanceEventType = "CHECK_OUT"
)

// Valid returns true when the event type is supported.
func (t AttendanceEventType) Valid() bool {
	return t == AttendanceCheckIn || t == AttendanceCheckOut
}

// AttendanceEvent is one check-in or check-out record for an advisor account.
type AttendanceEvent struct {
	ID         string              `db:"id" json:"id"`
	AccountID  string              `db:"account_id" json:"account_id"`
	Type       AttendanceEventType `db:"event_type" json:"type"`
	OccurredAt time.Time           `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
}

// AttendanceFilter scopes attendance history queries.
type AttendanceFilter struct {
	AccountID string
	Date      *time.Time
	Page      int
	PageSize  int
}
