package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

func TestAssignRows_NonOverlappingShareRow(t *testing.T) {
	rows := AssignRows([]Item{
		{ID: "a", Start: day(1), End: day(2)},
		{ID: "b", Start: day(5), End: day(6)},
	})

	assert.Equal(t, 0, rows["a"])
	assert.Equal(t, 0, rows["b"], "disjoint date ranges reuse the lowest row")
}

func TestAssignRows_InclusiveDateOverlap(t *testing.T) {
	// a ends on the 2nd, b starts on the 2nd: day granularity is
	// inclusive on both ends, so they conflict even though the clock
	// times are hours apart.
	rows := AssignRows([]Item{
		{ID: "a", Start: at(1, 9), End: at(2, 10)},
		{ID: "b", Start: at(2, 15), End: at(3, 16)},
	})

	assert.NotEqual(t, rows["a"], rows["b"])
}

func TestAssignRows_LongerEventWinsTie(t *testing.T) {
	rows := AssignRows([]Item{
		{ID: "short", Start: day(1), End: day(1)},
		{ID: "long", Start: day(1), End: day(4)},
	})

	assert.Equal(t, 0, rows["long"], "on equal start dates the longer event takes the lower row")
	assert.Equal(t, 1, rows["short"])
}

func TestAssignRows_AllDayAndTimedShareRowSpace(t *testing.T) {
	rows := AssignRows([]Item{
		{ID: "allday", Start: day(1), End: day(1), AllDay: true},
		{ID: "timed", Start: at(1, 9), End: at(1, 10)},
		{ID: "other", Start: at(3, 9), End: at(3, 10)},
	})

	assert.NotEqual(t, rows["allday"], rows["timed"])
	assert.Equal(t, 0, rows["other"])
}

func TestAssignRows_NoDoubleBooking(t *testing.T) {
	items := []Item{
		{ID: "a", Start: day(1), End: day(3)},
		{ID: "b", Start: day(2), End: day(2)},
		{ID: "c", Start: day(3), End: day(5)},
		{ID: "d", Start: day(4), End: day(4)},
		{ID: "e", Start: day(1), End: day(7)},
		{ID: "f", Start: day(6), End: day(6)},
	}

	rows := AssignRows(items)
	require.Len(t, rows, len(items))

	byID := make(map[string]Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, a := range items {
		for _, b := range items {
			if a.ID == b.ID || rows[a.ID] != rows[b.ID] {
				continue
			}
			assert.False(t, datesOverlap(byID[a.ID], byID[b.ID]),
				"%s and %s share row %d but overlap", a.ID, b.ID, rows[a.ID])
		}
	}
}

func TestAssignRows_Deterministic(t *testing.T) {
	items := []Item{
		{ID: "a", Start: day(1), End: day(2)},
		{ID: "b", Start: day(1), End: day(2)},
		{ID: "c", Start: day(2), End: day(3)},
	}

	first := AssignRows(items)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AssignRows(items))
	}
}
