package layout

import "sort"

// AssignColumns packs one day's items into timeline columns at minute
// granularity. All-day items each get a dedicated column, placed ahead
// of every timed column so callers render them in a fixed lane order.
// Timed items are processed by start ascending and join the first
// column whose most recently placed item has ended; because input is
// start-sorted, the last occupant is the only possible conflict.
func AssignColumns(items []Item) [][]Item {
	var allDayColumns [][]Item
	var timed []Item
	for _, item := range items {
		if item.AllDay {
			allDayColumns = append(allDayColumns, []Item{item})
		} else {
			timed = append(timed, item)
		}
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start.Before(timed[j].Start)
	})

	var timedColumns [][]Item
	for _, item := range timed {
		placed := false
		for c := range timedColumns {
			last := timedColumns[c][len(timedColumns[c])-1]
			// Overlap at minute granularity: start1 < end2.
			if !item.Start.Before(last.End) {
				timedColumns[c] = append(timedColumns[c], item)
				placed = true
				break
			}
		}
		if !placed {
			timedColumns = append(timedColumns, []Item{item})
		}
	}

	return append(allDayColumns, timedColumns...)
}
