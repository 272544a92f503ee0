package schedule

import "strings"

// Slot is a half-open interval [Start, End) expressed in minutes of day.
type Slot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Label renders the slot in the stored "HH:MM-HH:MM" form.
func (s Slot) Label() string {
	return FormatClock(s.Start) + "-" + FormatClock(s.End)
}

// ParseSlot parses a stored "HH:MM-HH:MM" label into a Slot.
func ParseSlot(label string) (Slot, error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return Slot{}, &InvalidRangeError{Value: label, Reason: "expected HH:MM-HH:MM"}
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return Slot{}, err
	}
	return NewSlot(start, end)
}

// NewSlot builds a slot from minute offsets, rejecting empty or inverted ranges.
func NewSlot(start, end int) (Slot, error) {
	if start >= end {
		return Slot{}, &InvalidRangeError{
			Value:  FormatClock(start) + "-" + FormatClock(end),
			Reason: "start must be before end",
		}
	}
	return Slot{Start: start, End: end}, nil
}

// Contains reports whether outer fully covers inner.
func Contains(outer, inner Slot) bool {
	return outer.Start <= inner.Start && outer.End >= inner.End
}

// Overlaps reports whether the two half-open intervals share any time.
// Boundary-touching ranges (end of one equals start of the other) do not overlap.
func Overlaps(a, b Slot) bool {
	return a.Start < b.End && b.Start < a.End
}
