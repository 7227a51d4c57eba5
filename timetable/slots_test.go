package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classConfig() *Config {
	return &Config{
		DayStart:      "09:00",
		LunchStart:    "12:00",
		LunchEnd:      "13:00",
		CellDuration:  50,
		BreakDuration: 10,
		DaysPerWeek:   5,
		SlotsPerDay:   6,
	}
}

func TestSlotTimes(t *testing.T) {
	cfg := classConfig()

	tests := []struct {
		name      string
		slot      int
		wantStart string
		wantEnd   string
	}{
		{"first slot starts at day start", 0, "09:00", "09:50"},
		{"second slot follows cell plus break", 1, "10:00", "10:50"},
		{"third slot", 2, "11:00", "11:50"},
		{"slot landing on lunch start shifts past lunch", 3, "13:00", "13:50"},
		{"slot after lunch keeps stepping", 4, "14:00", "14:50"},
		{"negative index is treated as the first slot", -1, "09:00", "09:50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := cfg.SlotTimes(tt.slot)
			assert.Equal(t, tt.wantStart, MinutesToClock(start))
			assert.Equal(t, tt.wantEnd, MinutesToClock(end))
		})
	}
}

func TestSlotTimes_EndInsideLunchShiftsSlot(t *testing.T) {
	cfg := classConfig()
	cfg.DayStart = "09:30"

	// Slots would run 09:30, 10:30, 11:30-12:20 — the third slot would
	// end mid-lunch, so it shifts to the lunch end instead.
	start, end := cfg.SlotTimes(2)
	assert.Equal(t, "13:00", MinutesToClock(start))
	assert.Equal(t, "13:50", MinutesToClock(end))
}

func TestSlotTimes_NeverInsideLunch(t *testing.T) {
	configs := []*Config{
		classConfig(),
		{DayStart: "08:15", LunchStart: "11:30", LunchEnd: "12:45", CellDuration: 45, BreakDuration: 5},
		{DayStart: "09:30", LunchStart: "12:00", LunchEnd: "13:00", CellDuration: 50, BreakDuration: 10},
		{DayStart: "10:00", LunchStart: "12:00", LunchEnd: "12:00", CellDuration: 60, BreakDuration: 0},
	}

	for _, cfg := range configs {
		lunchStart, _ := clockToMinutes(cfg.LunchStart)
		lunchEnd, _ := clockToMinutes(cfg.LunchEnd)
		for slot := 0; slot < 10; slot++ {
			start, end := cfg.SlotTimes(slot)
			assert.False(t, start > lunchStart && start < lunchEnd,
				"slot %d start %s is inside lunch", slot, MinutesToClock(start))
			assert.False(t, start == lunchStart && lunchEnd > lunchStart,
				"slot %d starts exactly at lunch start", slot)
			assert.False(t, end > lunchStart && end < lunchEnd,
				"slot %d end %s is inside lunch", slot, MinutesToClock(end))
		}
	}
}

func TestIsException(t *testing.T) {
	cfg := classConfig()
	cfg.Exceptions = []DateRange{
		{Start: "2024-07-01", End: "2024-07-31"},
		{Start: "2024-12-24", End: "2025-01-02"},
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-06-30", false},
		{"2024-07-01", true},  // inclusive start
		{"2024-07-15", true},
		{"2024-07-31", true},  // inclusive end
		{"2024-08-01", false},
		{"2024-12-31", true},  // range crossing a year boundary
		{"2025-01-03", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.IsException(tt.date), "date %s", tt.date)
	}
}

func TestClockConversions(t *testing.T) {
	assert.Equal(t, "09:05", MinutesToClock(545))
	assert.Equal(t, "00:00", MinutesToClock(0))

	m, ok := clockToMinutes("13:45")
	assert.True(t, ok)
	assert.Equal(t, 825, m)

	for _, bad := range []string{"", "25:00", "12:60", "noon", "12"} {
		_, ok := clockToMinutes(bad)
		assert.False(t, ok, "clock %q should not parse", bad)
	}
}
