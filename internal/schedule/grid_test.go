package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(day Weekday, labels ...string) []CellKey {
	keys := make([]CellKey, 0, len(labels))
	for _, label := range labels {
		start, err := ParseClock(label)
		if err != nil {
			panic(err)
		}
		keys = append(keys, CellKey{Day: day, Start: start})
	}
	return keys
}

func TestGridPlaceAndConflict(t *testing.T) {
	g := NewGrid()
	first := &Booking{ID: "b1", OwnerID: "algorithms"}
	require.NoError(t, g.Place(cells(Monday, "09:00", "09:30"), first))
	require.Equal(t, 2, g.Len())

	second := &Booking{ID: "b2", OwnerID: "databases"}
	err := g.Place(cells(Monday, "09:30", "10:00"), second)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, CellKey{Day: Monday, Start: 9*60 + 30}, conflict.Cell)
	assert.Equal(t, "algorithms", conflict.Occupant.OwnerID)

	// Rejected placement must be all-or-nothing: the free 10:00 cell stays
	// empty and the occupied cells keep their original booking.
	_, ok := g.At(CellKey{Day: Monday, Start: 10 * 60})
	assert.False(t, ok)
	got, ok := g.At(CellKey{Day: Monday, Start: 9 * 60})
	require.True(t, ok)
	assert.Equal(t, "b1", got.ID)
	assert.Equal(t, 2, g.Len())
}

func TestGridPlaceAcrossDays(t *testing.T) {
	g := NewGrid()
	b := &Booking{ID: "b1", OwnerID: "networks"}
	keys := append(cells(Monday, "09:00"), cells(Wednesday, "09:00")...)
	require.NoError(t, g.Place(keys, b))
	assert.Equal(t, 2, g.Len())
}

func TestGridRemoveWholeBooking(t *testing.T) {
	g := NewGrid()
	b := &Booking{ID: "b1", OwnerID: "algorithms"}
	require.NoError(t, g.Place(cells(Monday, "09:00", "09:30", "10:00"), b))

	// Removing by the middle cell clears the whole booking.
	removed := g.Remove(CellKey{Day: Monday, Start: 9*60 + 30})
	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, g.Len())

	// Removing an already-empty cell is a no-op, not an error.
	assert.Equal(t, 0, g.Remove(CellKey{Day: Monday, Start: 9 * 60}))
}

func TestGridRemoveLeavesOtherBookings(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Place(cells(Monday, "09:00"), &Booking{ID: "b1", OwnerID: "a"}))
	require.NoError(t, g.Place(cells(Monday, "10:00"), &Booking{ID: "b2", OwnerID: "a"}))

	// Same owner, different booking identity: only the addressed booking goes.
	assert.Equal(t, 1, g.Remove(CellKey{Day: Monday, Start: 9 * 60}))
	_, ok := g.At(CellKey{Day: Monday, Start: 10 * 60})
	assert.True(t, ok)
}

func TestMergeRunsGroupsConsecutiveCells(t *testing.T) {
	g := NewGrid()
	b := &Booking{ID: "b1", OwnerID: "algorithms"}
	require.NoError(t, g.Place(cells(Monday, "09:00", "09:30", "10:00"), b))

	runs := g.MergeRuns(Monday)
	require.Len(t, runs, 1)
	assert.Equal(t, 9*60, runs[0].Start)
	assert.Equal(t, 3, runs[0].Length)
	assert.Equal(t, "09:00-10:30", runs[0].Slot().Label())
	assert.Equal(t, "b1", runs[0].Booking.ID)
}

func TestMergeRunsSplitsNonAdjacentCells(t *testing.T) {
	g := NewGrid()
	b := &Booking{ID: "b1", OwnerID: "algorithms"}
	require.NoError(t, g.Place(cells(Monday, "09:00", "14:00"), b))

	runs := g.MergeRuns(Monday)
	require.Len(t, runs, 2)
	assert.Equal(t, 1, runs[0].Length)
	assert.Equal(t, 1, runs[1].Length)
	assert.Equal(t, 9*60, runs[0].Start)
	assert.Equal(t, 14*60, runs[1].Start)
}

func TestMergeRunsSplitsAdjacentDistinctBookings(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Place(cells(Monday, "09:00", "09:30"), &Booking{ID: "b1", OwnerID: "a"}))
	require.NoError(t, g.Place(cells(Monday, "10:00", "10:30"), &Booking{ID: "b2", OwnerID: "b"}))
	require.NoError(t, g.Place(cells(Tuesday, "09:00"), &Booking{ID: "b3", OwnerID: "c"}))

	runs := g.MergeRuns(Monday)
	require.Len(t, runs, 2)
	assert.Equal(t, "b1", runs[0].Booking.ID)
	assert.Equal(t, "b2", runs[1].Booking.ID)

	assert.Empty(t, g.MergeRuns(Friday))
}

func TestGridsDoNotShareState(t *testing.T) {
	a, b := NewGrid(), NewGrid()
	require.NoError(t, a.Place(cells(Monday, "09:00"), &Booking{ID: "b1", OwnerID: "x"}))
	assert.Equal(t, 0, b.Len())
	b.Clear()
	assert.Equal(t, 1, a.Len())
}
