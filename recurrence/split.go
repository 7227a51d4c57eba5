package recurrence

import (
	"time"

	"github.com/samber/mo"

	"github.com/seojin-dev/daygrid/calendar"
)

// ExcludeDate marks the occurrence on t's calendar date as deleted from
// its series ("delete this occurrence"). A nil set is allocated.
func ExcludeDate(set calendar.ExclusionSet, t time.Time) calendar.ExclusionSet {
	if set == nil {
		set = calendar.NewExclusionSet()
	}
	set.Add(calendar.DateKeyOf(t))
	return set
}

// TruncateBefore rewrites rule so the series ends on the calendar day
// immediately before occStart ("delete this and future occurrences").
// eventStart anchors the re-encoded monthly selectors. A malformed rule
// is returned unchanged.
func TruncateBefore(rule string, eventStart, occStart time.Time) string {
	pattern, ok := Decode(rule).Get()
	if !ok {
		return rule
	}
	cutoff := occStart.AddDate(0, 0, -1)
	pattern.Until = mo.Some(time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 23, 59, 59, 0, time.UTC))
	return Encode(pattern, eventStart)
}
