// Package layout packs possibly-overlapping time-ranged items into
// non-overlapping display lanes. Two policies share one principle:
// process items in a deterministic order and greedily take the
// lowest-numbered lane with no conflicting occupant.
//
// The package operates on plain start/end data and has no dependency on
// the rest of the engine.
package layout

import (
	"sort"
	"time"
)

// Item is the minimal event shape the packer needs.
type Item struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
	// AllDay marks items whose clock times are not meaningful; the
	// column policy gives each of them a dedicated lane.
	AllDay bool
}

// AssignRows packs items into month-grid rows at day granularity:
// two items conflict when their date ranges intersect, both ends
// inclusive. Items are processed by start date ascending, longer items
// first on ties, so multi-day bars win the lower rows. All-day and
// timed items share the same row space.
//
// The returned map assigns each item ID its zero-based row index.
func AssignRows(items []Item) map[string]int {
	ordered := make([]Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := dateOf(ordered[i].Start), dateOf(ordered[j].Start)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return ordered[i].End.Sub(ordered[i].Start) > ordered[j].End.Sub(ordered[j].Start)
	})

	rows := make(map[string]int, len(ordered))
	var occupants [][]Item

	for _, item := range ordered {
		row := -1
		for r := range occupants {
			if !rowConflicts(occupants[r], item) {
				row = r
				break
			}
		}
		if row == -1 {
			occupants = append(occupants, nil)
			row = len(occupants) - 1
		}
		occupants[row] = append(occupants[row], item)
		rows[item.ID] = row
	}
	return rows
}

func rowConflicts(occupants []Item, item Item) bool {
	for _, other := range occupants {
		if datesOverlap(item, other) {
			return true
		}
	}
	return false
}

// datesOverlap checks day-granularity intersection, inclusive on both
// ends: startDate1 <= endDate2 && endDate1 >= startDate2.
func datesOverlap(a, b Item) bool {
	aStart, aEnd := dateOf(a.Start), dateOf(a.End)
	bStart, bEnd := dateOf(b.Start), dateOf(b.End)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// dateOf strips the clock part, keeping the calendar date in t's own
// location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
