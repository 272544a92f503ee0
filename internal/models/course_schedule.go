package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// CourseSchedule is one persisted course block: a contiguous run of half-hour
// slots repeated on one or more weekdays in a room. Unlike advisor shifts,
// course blocks are stored one row per run with an explicit time range.
type CourseSchedule struct {
	ID        string         `db:"id" json:"id"`
	TermID    string         `db:"term_id" json:"term_id"`
	Course    string         `db:"course" json:"course"`
	Room      string         `db:"room" json:"room"`
	Days      pq.StringArray `db:"days" json:"days"`
	StartTime string         `db:"start_time" json:"start_time"`
	EndTime   string         `db:"end_time" json:"end_time"`
	Metadata  types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// CourseScheduleFilter scopes course block listings.
type CourseScheduleFilter struct {
	TermID string
	Room   string
	Course string
}

// WeekCell is a rendered cell-run of the weekly grid view.
type WeekCell struct {
	Day       string            `json:"day"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	SlotCount int               `json:"slot_count"`
	BookingID string            `json:"booking_id"`
	OwnerID   string            `json:"owner_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
