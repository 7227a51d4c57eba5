package calendar

import (
	"fmt"
	"time"
)

// Occurrence is one concrete instance of an event, materialized for
// display within a window. Occurrences are derived data: they are
// recomputed on every window change and never persisted.
type Occurrence struct {
	// ID uniquely identifies this instance; it is distinct from the
	// master event's identity.
	ID string
	// EventID references the master event this instance belongs to.
	EventID string

	Start time.Time
	End   time.Time

	// Display fields copied from the master event.
	Title      string
	Color      string
	Importance Importance
	Label      TimeLabel

	// IsForever is set when the instance comes from a recurrence with
	// no end date.
	IsForever bool
}

// OccurrenceID derives a stable per-instance identity from the master
// event id and the occurrence start, so recomputing a window yields the
// same ids.
func OccurrenceID(eventID string, start time.Time) string {
	return fmt.Sprintf("%s#%s", eventID, start.Format(time.RFC3339))
}
