package timetable

import "sort"

// Cell is one entry of the weekly timetable grid, keyed uniquely by
// (day-of-week index, slot index).
type Cell struct {
	Day  int // 0-based day-of-week index within the configured week
	Slot int // 0-based slot index within the day

	Title string
	// Attend marks whether attendance is required for this cell.
	Attend bool
	// WorkAllowed marks whether other work may be scheduled over this
	// cell.
	WorkAllowed bool
}

type cellKey struct {
	day  int
	slot int
}

// Grid holds the timetable cells of one week. Setting a cell for an
// occupied (day, slot) position replaces the previous cell.
type Grid struct {
	cells map[cellKey]Cell
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[cellKey]Cell)}
}

// Set stores the cell at its (Day, Slot) position.
func (g *Grid) Set(cell Cell) {
	g.cells[cellKey{day: cell.Day, slot: cell.Slot}] = cell
}

// Get returns the cell at (day, slot), if any.
func (g *Grid) Get(day, slot int) (Cell, bool) {
	cell, ok := g.cells[cellKey{day: day, slot: slot}]
	return cell, ok
}

// Remove deletes the cell at (day, slot).
func (g *Grid) Remove(day, slot int) {
	delete(g.cells, cellKey{day: day, slot: slot})
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns all cells ordered by day, then slot.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, cell := range g.cells {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}
