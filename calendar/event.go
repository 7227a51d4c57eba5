// Package calendar defines the core data model shared by the
// recurrence, layout, timetable and storage packages: master events,
// expanded occurrences, visible windows and exclusion sets.
package calendar

import (
	"time"

	"github.com/samber/mo"
)

// TimeLabel describes whether an event's start/end carry clock-time
// meaning.
type TimeLabel string

const (
	// LabelAllDay marks an event spanning whole calendar days; the
	// clock parts of Start/End are not meaningful.
	LabelAllDay TimeLabel = "all-day"
	// LabelSomeTiming marks an event with a date and a rough time of
	// day but no exact interval.
	LabelSomeTiming TimeLabel = "some-timing"
	// LabelTimed marks an event with exact start and end instants.
	LabelTimed TimeLabel = "timed"
)

// Importance is the user-assigned priority of an event.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Event is a master calendar event as persisted by the surrounding
// application. The engine reads it as an immutable input; it never
// mutates or stores events itself.
type Event struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	Label      TimeLabel
	Importance Importance
	Address    string
	Color      string

	// Recurrence holds the recurrence rule string when the event
	// repeats. None means the event occurs exactly once.
	Recurrence mo.Option[string]
}

// Span returns the start-to-end offset of the master event. Events with
// an end before their start span zero time.
func (e Event) Span() time.Duration {
	if e.End.Before(e.Start) {
		return 0
	}
	return e.End.Sub(e.Start)
}

// IsRecurring reports whether the event carries a recurrence rule.
func (e Event) IsRecurring() bool {
	return e.Recurrence.IsPresent()
}
