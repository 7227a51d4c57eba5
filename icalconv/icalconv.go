// Package icalconv converts between the engine's event model and
// iCalendar VEVENT components. Persisted calendar data in the
// surrounding ecosystem is iCalendar, so the recurrence rule string and
// the exclusion set must survive a round trip through RRULE and EXDATE.
package icalconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"

	"github.com/seojin-dev/daygrid/calendar"
)

var (
	// ErrNotEvent is returned when the component is not a VEVENT.
	ErrNotEvent = errors.New("component is not a VEVENT")
	// ErrNoStart is returned when the component has no usable DTSTART.
	ErrNoStart = errors.New("component has no DTSTART")
)

// EventFromComponent extracts an event and its exclusion set from an
// iCal VEVENT component.
func EventFromComponent(comp *ical.Component) (calendar.Event, calendar.ExclusionSet, error) {
	if comp == nil || comp.Name != ical.CompEvent {
		return calendar.Event{}, nil, ErrNotEvent
	}

	// Props.DateTime returns the zero time without an error for an
	// absent property, so presence is checked on the prop itself.
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return calendar.Event{}, nil, ErrNoStart
	}
	start, err := comp.Props.DateTime(ical.PropDateTimeStart, nil)
	if err != nil {
		return calendar.Event{}, nil, fmt.Errorf("%w: %v", ErrNoStart, err)
	}

	allDay := isDateOnlyProp(startProp) || isMidnight(start)

	var end time.Time
	if comp.Props.Get(ical.PropDateTimeEnd) == nil {
		// No DTEND: all-day events default to one day, timed events to
		// an instantaneous end.
		if allDay {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	} else {
		end, err = comp.Props.DateTime(ical.PropDateTimeEnd, nil)
		if err != nil {
			return calendar.Event{}, nil, fmt.Errorf("parse DTEND: %w", err)
		}
		if allDay && sameDate(start, end) {
			// A same-date all-day event spans until the start of the
			// next day.
			end = start.AddDate(0, 0, 1)
		}
	}

	ev := calendar.Event{
		Start:      start,
		End:        end,
		Importance: calendar.ImportanceMedium,
		Label:      calendar.LabelTimed,
	}
	if allDay {
		ev.Label = calendar.LabelAllDay
	}

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		ev.ID = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		ev.Title = prop.Value
	}
	if prop := comp.Props.Get(ical.PropLocation); prop != nil {
		ev.Address = prop.Value
	}
	if prop := comp.Props.Get(ical.PropColor); prop != nil {
		ev.Color = prop.Value
	}
	if prop := comp.Props.Get(ical.PropPriority); prop != nil {
		ev.Importance = importanceFromPriority(prop.Value)
	}
	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		ev.Recurrence = mo.Some(prop.Value)
	}

	exclusions := calendar.NewExclusionSet()
	if prop := comp.Props.Get(ical.PropExceptionDates); prop != nil && prop.Value != "" {
		for _, t := range parseExceptionDates(prop.Value, prop.Params) {
			exclusions.Add(calendar.DateKeyOf(t))
		}
	}

	return ev, exclusions, nil
}

// EventToComponent builds an iCal VEVENT component from an event and
// its exclusion set.
func EventToComponent(ev calendar.Event, exclusions calendar.ExclusionSet) *ical.Component {
	comp := ical.NewComponent(ical.CompEvent)

	comp.Props.SetText(ical.PropUID, ev.ID)
	comp.Props.SetText(ical.PropSummary, ev.Title)
	if ev.Address != "" {
		comp.Props.SetText(ical.PropLocation, ev.Address)
	}
	if ev.Color != "" {
		comp.Props.SetText(ical.PropColor, ev.Color)
	}
	comp.Props.SetText(ical.PropPriority, strconv.Itoa(priorityOf(ev.Importance)))

	allDay := ev.Label == calendar.LabelAllDay
	comp.Props.Set(dateTimeProp(ical.PropDateTimeStart, ev.Start, allDay))
	comp.Props.Set(dateTimeProp(ical.PropDateTimeEnd, ev.End, allDay))

	if rule, ok := ev.Recurrence.Get(); ok && rule != "" {
		comp.Props.Set(&ical.Prop{
			Name:   ical.PropRecurrenceRule,
			Params: make(ical.Params),
			Value:  rule,
		})
	}

	if len(exclusions) > 0 {
		values := make([]string, 0, len(exclusions))
		for _, key := range exclusions.Keys() {
			values = append(values, strings.ReplaceAll(string(key), "-", ""))
		}
		prop := &ical.Prop{
			Name:   ical.PropExceptionDates,
			Params: make(ical.Params),
			Value:  strings.Join(values, ","),
		}
		prop.Params["VALUE"] = []string{"DATE"}
		comp.Props.Set(prop)
	}

	return comp
}

// dateTimeProp builds a DTSTART/DTEND property, date-only for all-day
// events and UTC date-time otherwise.
func dateTimeProp(name string, t time.Time, allDay bool) *ical.Prop {
	prop := &ical.Prop{Name: name, Params: make(ical.Params)}
	if allDay {
		prop.Value = t.Format("20060102")
		prop.Params["VALUE"] = []string{"DATE"}
	} else {
		prop.Value = t.UTC().Format("20060102T150405Z")
	}
	return prop
}

// parseExceptionDates parses an EXDATE property value, handling both
// date-only (VALUE=DATE) and date-time forms.
func parseExceptionDates(value string, params map[string][]string) []time.Time {
	isDateOnly := false
	if params != nil {
		if valueParam := params["VALUE"]; len(valueParam) > 0 && strings.ToUpper(valueParam[0]) == "DATE" {
			isDateOnly = true
		}
	}

	var exdates []time.Time
	for _, exdateStr := range strings.Split(value, ",") {
		exdateStr = strings.TrimSpace(exdateStr)
		if exdateStr == "" {
			continue
		}

		var exdate time.Time
		var err error
		if isDateOnly {
			exdate, err = time.Parse("20060102", exdateStr)
		} else {
			exdate, err = time.Parse("20060102T150405Z", exdateStr)
			if err != nil {
				exdate, err = time.Parse("20060102", exdateStr)
			}
		}
		if err == nil {
			exdates = append(exdates, exdate)
		}
	}
	return exdates
}

func isDateOnlyProp(prop *ical.Prop) bool {
	if prop == nil {
		return false
	}
	valueParam := prop.Params["VALUE"]
	return len(valueParam) > 0 && strings.ToUpper(valueParam[0]) == "DATE"
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func importanceFromPriority(value string) calendar.Importance {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return calendar.ImportanceMedium
	}
	switch {
	case n >= 1 && n <= 4:
		return calendar.ImportanceHigh
	case n >= 6 && n <= 9:
		return calendar.ImportanceLow
	default:
		return calendar.ImportanceMedium
	}
}

func priorityOf(imp calendar.Importance) int {
	switch imp {
	case calendar.ImportanceHigh:
		return 1
	case calendar.ImportanceLow:
		return 9
	default:
		return 5
	}
}
