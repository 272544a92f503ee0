package schedule

// MatchSlot selects stored intervals that fully contain the queried slot,
// returning their indexes in input order. Used by the day+slot lookup: the
// stored shift is the outer range, the queried slot the inner one.
func MatchSlot(stored []Slot, queried Slot) []int {
	var matched []int
	for i, s := range stored {
		if Contains(s, queried) {
			matched = append(matched, i)
		}
	}
	return matched
}

// MatchRange selects stored intervals that strictly overlap [from, to),
// returning their indexes in input order. An empty or inverted range is an
// *InvalidRangeError; an empty result is not an error.
func MatchRange(stored []Slot, from, to int) ([]int, error) {
	queried, err := NewSlot(from, to)
	if err != nil {
		return nil, err
	}
	var matched []int
	for i, s := range stored {
		if Overlaps(s, queried) {
			matched = append(matched, i)
		}
	}
	return matched, nil
}
