package schedule

// Booking is one assignment of an owner (a course or an advisor) to one or
// more grid cells. Every cell of a multi-cell booking references the same
// Booking value; the generated ID is the grouping identity used for removal
// and run merging.
type Booking struct {
	ID       string            `json:"id"`
	OwnerID  string            `json:"owner_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CellKey addresses one half-hour cell of the weekly grid.
type CellKey struct {
	Day   Weekday `json:"day"`
	Start int     `json:"start"`
}

// Grid is the authoritative mapping from cell to occupying booking for one
// schedule view. A Grid is a plain value owned by its caller; independent
// grids never share state.
type Grid struct {
	cells map[CellKey]*Booking
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[CellKey]*Booking)}
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// At returns the booking occupying the cell, if any.
func (g *Grid) At(cell CellKey) (*Booking, bool) {
	b, ok := g.cells[cell]
	return b, ok
}

// Place writes the booking into every requested cell. The write is
// all-or-nothing: if any cell is already occupied a *ConflictError naming the
// first occupied cell is returned and no cell changes.
func (g *Grid) Place(cells []CellKey, booking *Booking) error {
	for _, cell := range cells {
		if occupant, ok := g.cells[cell]; ok {
			return &ConflictError{Cell: cell, Occupant: occupant}
		}
	}
	for _, cell := range cells {
		g.cells[cell] = booking
	}
	return nil
}

// Remove deletes the booking occupying the given cell from every cell it
// occupies, across all days. It returns the number of cells cleared; removing
// an empty cell is a no-op returning zero.
func (g *Grid) Remove(cell CellKey) int {
	occupant, ok := g.cells[cell]
	if !ok {
		return 0
	}
	removed := 0
	for key, b := range g.cells {
		if b.ID == occupant.ID {
			delete(g.cells, key)
			removed++
		}
	}
	return removed
}

// Clear empties the whole grid.
func (g *Grid) Clear() {
	g.cells = make(map[CellKey]*Booking)
}

// Run is a rendering projection: one or more consecutive cells of a day
// occupied by the same booking.
type Run struct {
	Day     Weekday  `json:"day"`
	Start   int      `json:"start"`
	Length  int      `json:"length"`
	Booking *Booking `json:"booking"`
}

// Slot returns the merged interval the run spans.
func (r Run) Slot() Slot {
	return Slot{Start: r.Start, End: r.Start + r.Length*SlotMinutes}
}

// MergeRuns walks the day's slots in grid order and groups consecutive cells
// occupied by the same booking into runs. This is read-side only; storage
// stays per-cell.
func (g *Grid) MergeRuns(day Weekday) []Run {
	var runs []Run
	var current *Run
	for _, slot := range Slots() {
		booking, ok := g.cells[CellKey{Day: day, Start: slot.Start}]
		if !ok {
			current = nil
			continue
		}
		if current != nil && current.Booking.ID == booking.ID {
			current.Length++
			continue
		}
		runs = append(runs, Run{Day: day, Start: slot.Start, Length: 1, Booking: booking})
		current = &runs[len(runs)-1]
	}
	return runs
}
