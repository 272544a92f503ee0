package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Lab opening hours. All slots live on a 30-minute grid between open and close.
const (
	DayOpenMinute  = 7 * 60
	DayCloseMinute = 21 * 60
	SlotMinutes    = 30
)

// Weekday identifies a schedulable lab day. Weekends are not part of the grid.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
)

var weekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Weekdays returns the schedulable days in calendar order.
func Weekdays() []Weekday {
	days := make([]Weekday, len(weekdayOrder))
	copy(days, weekdayOrder)
	return days
}

// Valid reports whether the weekday is one of the five schedulable days.
func (d Weekday) Valid() bool {
	for _, day := range weekdayOrder {
		if d == day {
			return true
		}
	}
	return false
}

// ParseWeekday normalises a day name ("mon", "MONDAY", "Fri") to a Weekday.
func ParseWeekday(raw string) (Weekday, bool) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if len(upper) > 3 {
		upper = upper[:3]
	}
	day := Weekday(upper)
	if !day.Valid() {
		return "", false
	}
	return day, true
}

// ParseClock converts a strict "HH:MM" string into a minute-of-day offset.
// The value must sit on the half-hour grid within opening hours.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, &InvalidRangeError{Value: raw, Reason: "expected HH:MM"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &InvalidRangeError{Value: raw, Reason: "expected HH:MM"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &InvalidRangeError{Value: raw, Reason: "expected HH:MM"}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &InvalidRangeError{Value: raw, Reason: "out of clock range"}
	}
	offset := hour*60 + minute
	if offset < DayOpenMinute || offset > DayCloseMinute {
		return 0, &InvalidRangeError{Value: raw, Reason: fmt.Sprintf("outside opening hours %s-%s", FormatClock(DayOpenMinute), FormatClock(DayCloseMinute))}
	}
	if offset%SlotMinutes != 0 {
		return 0, &InvalidRangeError{Value: raw, Reason: "not on the half-hour grid"}
	}
	return offset, nil
}

// FormatClock renders a minute-of-day offset back to "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
