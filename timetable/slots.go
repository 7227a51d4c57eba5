package timetable

import (
	"strconv"
	"strings"
)

// SlotTimes computes the absolute start and end of the given slot, in
// minutes from midnight. Walking from the day start, each step adds one
// cell plus one break; whenever a slot would begin inside the lunch
// window, or end strictly inside it, the slot shifts to the lunch end.
// The shift applies both while stepping through prior slots and for the
// target slot itself.
func (c *Config) SlotTimes(slot int) (start, end int) {
	dayStart, _ := clockToMinutes(c.DayStart)
	lunchStart, _ := clockToMinutes(c.LunchStart)
	lunchEnd, _ := clockToMinutes(c.LunchEnd)

	if slot < 0 {
		slot = 0
	}

	offset := dayStart
	for i := 0; ; i++ {
		if offset >= lunchStart && offset < lunchEnd {
			offset = lunchEnd
		} else if slotEnd := offset + c.CellDuration; slotEnd > lunchStart && slotEnd < lunchEnd {
			offset = lunchEnd
		}
		if i == slot {
			return offset, offset + c.CellDuration
		}
		offset += c.CellDuration + c.BreakDuration
	}
}

// IsException reports whether the given calendar date (YYYY-MM-DD)
// falls inside any configured exception range, bounds inclusive. The
// date form orders lexicographically, so plain string comparison is
// exact.
func (c *Config) IsException(date string) bool {
	for _, r := range c.Exceptions {
		if r.Start <= date && date <= r.End {
			return true
		}
	}
	return false
}

// clockToMinutes parses an "HH:mm" clock string into minutes from
// midnight.
func clockToMinutes(clock string) (int, bool) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// MinutesToClock formats minutes from midnight as "HH:mm".
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return pad(minutes/60) + ":" + pad(minutes%60)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
