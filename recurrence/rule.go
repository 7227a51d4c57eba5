// Package recurrence implements the recurrence rule codec and the
// occurrence expander: the rule string is the persisted wire format
// describing how an event repeats, and expansion materializes concrete
// occurrences of a master event inside a visible window.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Frequency is the repeat unit of a recurrence rule.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

// MonthlyMode selects how a monthly rule picks its day.
type MonthlyMode int

const (
	// MonthlyOnDay repeats on the same day-of-month as the start date
	// (BYMONTHDAY).
	MonthlyOnDay MonthlyMode = iota
	// MonthlyOnWeekday repeats on the same ordinal weekday, e.g. "2nd
	// Tuesday" (BYDAY=2TU).
	MonthlyOnWeekday
)

// dayCodes is the canonical Sunday-first weekday code order used on the
// wire.
var dayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Pattern is the structured form of a recurrence rule string.
type Pattern struct {
	Freq Frequency
	// Interval is the repeat step; 1 is the default and is omitted from
	// the encoded string.
	Interval int

	// ByDay selects weekdays for weekly rules, Sunday-first. An empty
	// set means no explicit day was chosen; expansion then implicitly
	// uses the start date's weekday.
	ByDay [7]bool

	MonthlyMode MonthlyMode
	// MonthDay is the day-of-month for MonthlyOnDay rules. Zero means
	// "derive from the event start".
	MonthDay int
	// Ordinal and OrdinalWeekday describe the <ordinal><weekday>
	// selector for MonthlyOnWeekday rules; -1 means "last". An Ordinal
	// of zero means "derive from the event start".
	Ordinal        int
	OrdinalWeekday int // 0 = Sunday … 6 = Saturday

	// Until is the inclusive end of the schedule. None means the rule
	// repeats forever.
	Until mo.Option[time.Time]
}

// IsForever reports whether the pattern has no end date.
func (p Pattern) IsForever() bool {
	return p.Until.IsAbsent()
}

// EffectiveByDay resolves the weekday set a weekly rule expands on.
// When no day is explicitly selected the start date's weekday is
// implied, so a bare FREQ=WEEKLY still repeats on its own weekday.
func (p Pattern) EffectiveByDay(start time.Time) [7]bool {
	if p.Freq != FreqWeekly {
		return p.ByDay
	}
	for _, selected := range p.ByDay {
		if selected {
			return p.ByDay
		}
	}
	var days [7]bool
	days[int(start.Weekday())] = true
	return days
}

// Encode serializes p into its canonical rule string. Monthly selectors
// not set explicitly are derived from the event start date, matching
// how the form layer builds rules. The interval is omitted when 1, and
// an end date is emitted as an end-of-day UTC UNTIL.
func Encode(p Pattern, start time.Time) string {
	freq := canonicalFreq(p.Freq)
	parts := []string{"FREQ=" + string(freq)}

	if p.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", p.Interval))
	}

	switch freq {
	case FreqWeekly:
		if codes := selectedDayCodes(p.ByDay); len(codes) > 0 {
			parts = append(parts, "BYDAY="+strings.Join(codes, ","))
		}
	case FreqMonthly:
		if p.MonthlyMode == MonthlyOnDay {
			day := p.MonthDay
			if day < 1 || day > 31 {
				day = start.Day()
			}
			parts = append(parts, fmt.Sprintf("BYMONTHDAY=%d", day))
		} else {
			ord, weekday := p.Ordinal, p.OrdinalWeekday
			if ord == 0 {
				ord, weekday = ordinalOf(start)
			}
			parts = append(parts, fmt.Sprintf("BYDAY=%d%s", ord, dayCodes[weekday]))
		}
	}

	if until, ok := p.Until.Get(); ok {
		parts = append(parts, "UNTIL="+until.Format("20060102")+"T235959Z")
	}

	return strings.Join(parts, ";")
}

// Decode parses a rule string into its structured form. Decoding is
// total: a string without a recognizable FREQ yields None, and any
// malformed or absent field falls back to its default (interval 1,
// empty weekday set, no end date). Unknown fields are ignored.
func Decode(rule string) mo.Option[Pattern] {
	rule = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
	if rule == "" {
		return mo.None[Pattern]()
	}

	p := Pattern{Interval: 1}
	freqSeen := false
	monthDaySeen := false
	byDayValue := ""

	for _, field := range strings.Split(rule, ";") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FREQ":
			switch Frequency(strings.ToUpper(value)) {
			case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
				p.Freq = Frequency(strings.ToUpper(value))
				freqSeen = true
			}
		case "INTERVAL":
			if n, err := strconv.Atoi(value); err == nil && n >= 1 {
				p.Interval = n
			}
		case "UNTIL":
			if t, ok := parseUntil(value); ok {
				p.Until = mo.Some(t)
			}
		case "BYMONTHDAY":
			if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 31 {
				p.MonthDay = n
				monthDaySeen = true
			}
		case "BYDAY":
			// Classified after the loop; FREQ may come later in the
			// string.
			byDayValue = value
		}
	}

	if !freqSeen {
		return mo.None[Pattern]()
	}

	switch p.Freq {
	case FreqWeekly:
		for _, code := range strings.Split(byDayValue, ",") {
			if idx, ok := parseDayCode(strings.TrimSpace(code)); ok {
				p.ByDay[idx] = true
			}
		}
	case FreqMonthly:
		// BYMONTHDAY present means day-of-month style; everything else
		// is ordinal-weekday style.
		if monthDaySeen {
			p.MonthlyMode = MonthlyOnDay
		} else {
			p.MonthlyMode = MonthlyOnWeekday
			if ord, weekday, ok := parseOrdinalDay(byDayValue); ok {
				p.Ordinal = ord
				p.OrdinalWeekday = weekday
			}
		}
	}

	return mo.Some(p)
}

// canonicalFreq maps unknown frequencies to DAILY so encoding stays
// total.
func canonicalFreq(f Frequency) Frequency {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		return f
	}
	return FreqDaily
}

func selectedDayCodes(days [7]bool) []string {
	var codes []string
	for i, selected := range days {
		if selected {
			codes = append(codes, dayCodes[i])
		}
	}
	return codes
}

// ordinalOf computes the <n>th-weekday-of-month selector for the given
// date. The real month length decides whether the date is the last such
// weekday (encoded as -1): a 4th occurrence with no room for a 5th is
// already the last one.
func ordinalOf(start time.Time) (ordinal, weekday int) {
	if start.Day()+7 > daysInMonth(start) {
		return -1, int(start.Weekday())
	}
	return (start.Day() + 6) / 7, int(start.Weekday())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// parseUntil reads an UNTIL value of the form YYYYMMDDT235959Z. Only
// the date part is significant; the result is pinned to end-of-day UTC.
func parseUntil(value string) (time.Time, bool) {
	if len(value) < 8 {
		return time.Time{}, false
	}
	d, err := time.Parse("20060102", value[:8])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC), true
}

func parseDayCode(code string) (int, bool) {
	for i, c := range dayCodes {
		if c == code {
			return i, true
		}
	}
	return 0, false
}

// parseOrdinalDay reads a monthly BYDAY selector like "2SA" or "-1SU".
// Ordinals beyond 4 are normalized to -1 ("last").
func parseOrdinalDay(value string) (ordinal, weekday int, ok bool) {
	value = strings.TrimSpace(value)
	if len(value) < 3 {
		return 0, 0, false
	}
	weekday, ok = parseDayCode(value[len(value)-2:])
	if !ok {
		return 0, 0, false
	}
	ordinal, err := strconv.Atoi(value[:len(value)-2])
	if err != nil || ordinal == 0 || ordinal < -1 {
		return 0, 0, false
	}
	if ordinal > 4 {
		ordinal = -1
	}
	return ordinal, weekday, true
}
