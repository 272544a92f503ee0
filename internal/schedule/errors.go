package schedule

import "fmt"

// ConflictError reports an attempt to place a booking into an occupied cell.
// No cell is mutated when it is returned.
type ConflictError struct {
	Cell     CellKey
	Occupant *Booking
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	owner := ""
	if e.Occupant != nil {
		owner = e.Occupant.OwnerID
	}
	return fmt.Sprintf("cell %s %s already occupied by %s", e.Cell.Day, FormatClock(e.Cell.Start), owner)
}

// InvalidRangeError reports a malformed clock value or an empty/inverted range.
type InvalidRangeError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid time range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid time value %q: %s", e.Value, e.Reason)
}
