package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Shift is one persisted advisor-schedule cell: a single half-hour slot on a
// single day. Cells placed together share a booking id, which is the grouping
// identity for whole-block removal and run merging.
type Shift struct {
	ID        string         `db:"id" json:"id"`
	BookingID string         `db:"booking_id" json:"booking_id"`
	AdvisorID string         `db:"advisor_id" json:"advisor_id"`
	Room      string         `db:"room" json:"room"`
	DayOfWeek string         `db:"day_of_week" json:"day_of_week"`
	SlotLabel string         `db:"slot_label" json:"slot_label"`
	Metadata  types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// ShiftFilter scopes shift listing queries.
type ShiftFilter struct {
	Room      string
	DayOfWeek string
	AdvisorID string
	BookingID string
}
