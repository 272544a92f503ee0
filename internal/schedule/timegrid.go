package schedule

// Slots returns the canonical ordered sequence of half-hour slots covering
// opening hours: 28 slots from 07:00-07:30 through 20:30-21:00. The sequence
// is strictly increasing and contiguous.
func Slots() []Slot {
	count := (DayCloseMinute - DayOpenMinute) / SlotMinutes
	slots := make([]Slot, 0, count)
	for start := DayOpenMinute; start < DayCloseMinute; start += SlotMinutes {
		slots = append(slots, Slot{Start: start, End: start + SlotMinutes})
	}
	return slots
}

// SlotAt returns the canonical slot starting at the given minute offset.
func SlotAt(start int) (Slot, bool) {
	if start < DayOpenMinute || start >= DayCloseMinute || start%SlotMinutes != 0 {
		return Slot{}, false
	}
	return Slot{Start: start, End: start + SlotMinutes}, true
}
