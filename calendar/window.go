package calendar

import (
	"sort"
	"time"
)

// Window is the visible time range occurrences are materialized for.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end] intersects the window. Both
// bounds are inclusive: an event ending exactly at Window.Start is
// still visible.
func (w Window) Overlaps(start, end time.Time) bool {
	return !start.After(w.End) && !end.Before(w.Start)
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DateKey identifies a calendar date (YYYY-MM-DD) independent of clock
// time. It is the unit of the exclusion mechanism: deleting a single
// occurrence of a series records that occurrence's date key.
type DateKey string

// DateKeyOf returns the date key of t in t's own location.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format("2006-01-02"))
}

// ExclusionSet names occurrence dates suppressed during expansion.
type ExclusionSet map[DateKey]struct{}

// NewExclusionSet builds a set from the given keys.
func NewExclusionSet(keys ...DateKey) ExclusionSet {
	s := make(ExclusionSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key into the set.
func (s ExclusionSet) Add(key DateKey) {
	s[key] = struct{}{}
}

// Contains reports whether key is in the set. A nil set contains
// nothing.
func (s ExclusionSet) Contains(key DateKey) bool {
	_, ok := s[key]
	return ok
}

// Clone returns an independent copy of the set.
func (s ExclusionSet) Clone() ExclusionSet {
	out := make(ExclusionSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Keys returns the set's keys in sorted order.
func (s ExclusionSet) Keys() []DateKey {
	out := make([]DateKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
