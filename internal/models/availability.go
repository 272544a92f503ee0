package models

// AvailabilityEntry is one advisor matched by an availability query, annotated
// with a presence flag from the attendance log. Derived per query, never
// persisted.
type AvailabilityEntry struct {
	AdvisorID   string            `json:"advisor_id"`
	AdvisorName string            `json:"advisor_name,omitempty"`
	Room        string            `json:"room"`
	DayOfWeek   string            `json:"day_of_week"`
	SlotLabel   string            `json:"slot_label"`
	Present     bool              `json:"present"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
