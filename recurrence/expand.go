package recurrence

import (
	"io"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/seojin-dev/daygrid/calendar"
)

// rruleWeekdays maps Sunday-first weekday indexes to rrule constants.
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Expander materializes concrete occurrences of master events inside a
// visible window. Expansion is a pure function of its inputs; the
// optional cache only memoizes results.
type Expander struct {
	cache  *Cache
	config Config
	logger *slog.Logger
}

// NewExpander creates an expander with the default configuration and a
// discarded log output.
func NewExpander() *Expander {
	return NewExpanderWithConfig(DefaultConfig, nil)
}

// NewExpanderWithConfig creates an expander with custom tuning. A nil
// logger discards all output.
func NewExpanderWithConfig(config Config, logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.MaxOccurrencesPerEvent <= 0 {
		config.MaxOccurrencesPerEvent = DefaultConfig.MaxOccurrencesPerEvent
	}
	var cache *Cache
	if config.CacheEnabled {
		cache = NewCache(config.Cache)
	}
	return &Expander{cache: cache, config: config, logger: logger}
}

// Close releases the expansion cache, if any.
func (e *Expander) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// CacheStats reports statistics of the expansion cache. It returns the
// zero value when caching is disabled.
func (e *Expander) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.Stats()
}

// Expand returns the occurrences of ev that fall inside window, minus
// any whose date key appears in exclusions. Exclusions apply only to
// occurrences of a recurring rule; a non-recurring event always yields
// its single occurrence. Expansion never fails: a malformed rule
// degrades to the master event alone, and stepped dates that do not
// exist on the calendar are skipped for that period.
//
// Rules without an end date are expanded through a sliding window: only
// candidates inside the window (plus a lead-in of one event span, to
// catch an occurrence already in progress at the window start) are
// enumerated, and every resulting occurrence is flagged IsForever.
func (e *Expander) Expand(ev calendar.Event, window calendar.Window, exclusions calendar.ExclusionSet) []calendar.Occurrence {
	if e.cache != nil {
		if occurrences, ok := e.cache.Get(ev, window, exclusions); ok {
			return occurrences
		}
	}
	occurrences := e.expand(ev, window, exclusions)
	if e.cache != nil {
		e.cache.Set(ev, window, exclusions, occurrences)
	}
	return occurrences
}

func (e *Expander) expand(ev calendar.Event, window calendar.Window, exclusions calendar.ExclusionSet) []calendar.Occurrence {
	ruleStr, recurring := ev.Recurrence.Get()
	if !recurring {
		return e.expandSingle(ev, window)
	}

	pattern, ok := Decode(ruleStr).Get()
	if !ok {
		e.logger.Debug("malformed recurrence rule, treating event as non-recurring",
			"event", ev.ID, "rule", ruleStr)
		return e.expandSingle(ev, window)
	}

	rule, err := rrule.NewRRule(pattern.ROption(ev.Start))
	if err != nil {
		e.logger.Debug("recurrence rule rejected, treating event as non-recurring",
			"event", ev.ID, "rule", ruleStr, "error", err)
		return e.expandSingle(ev, window)
	}

	span := ev.Span()
	starts := rule.Between(window.Start.Add(-span), window.End, true)
	if len(starts) > e.config.MaxOccurrencesPerEvent {
		e.logger.Debug("occurrence cap hit",
			"event", ev.ID, "cap", e.config.MaxOccurrencesPerEvent)
		starts = starts[:e.config.MaxOccurrencesPerEvent]
	}

	forever := pattern.IsForever()
	out := make([]calendar.Occurrence, 0, len(starts))
	for _, start := range starts {
		if exclusions.Contains(calendar.DateKeyOf(start)) {
			continue
		}
		out = append(out, occurrenceOf(ev, start, start.Add(span), forever))
	}
	return out
}

// expandSingle handles events without a usable rule: zero or one
// occurrence, clipped to the window. Exclusions do not apply here; they
// are defined per series occurrence.
func (e *Expander) expandSingle(ev calendar.Event, window calendar.Window) []calendar.Occurrence {
	if !window.Overlaps(ev.Start, ev.End) {
		return nil
	}
	return []calendar.Occurrence{occurrenceOf(ev, ev.Start, ev.End, false)}
}

func occurrenceOf(ev calendar.Event, start, end time.Time, forever bool) calendar.Occurrence {
	return calendar.Occurrence{
		ID:         calendar.OccurrenceID(ev.ID, start),
		EventID:    ev.ID,
		Start:      start,
		End:        end,
		Title:      ev.Title,
		Color:      ev.Color,
		Importance: ev.Importance,
		Label:      ev.Label,
		IsForever:  forever,
	}
}

// ROption compiles the pattern into rrule-go options anchored at the
// event start. The rrule engine shares this codec's edge policy for
// stepped dates that do not exist (e.g. day 31 in a 30-day month): the
// period is skipped, never clamped.
func (p Pattern) ROption(start time.Time) rrule.ROption {
	opt := rrule.ROption{Dtstart: start, Interval: p.Interval}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch canonicalFreq(p.Freq) {
	case FreqDaily:
		opt.Freq = rrule.DAILY
	case FreqWeekly:
		opt.Freq = rrule.WEEKLY
		for i, selected := range p.EffectiveByDay(start) {
			if selected {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[i])
			}
		}
	case FreqMonthly:
		opt.Freq = rrule.MONTHLY
		if p.MonthlyMode == MonthlyOnDay {
			day := p.MonthDay
			if day < 1 || day > 31 {
				day = start.Day()
			}
			opt.Bymonthday = []int{day}
		} else {
			ord, weekday := p.Ordinal, p.OrdinalWeekday
			if ord == 0 {
				ord, weekday = ordinalOf(start)
			}
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[weekday].Nth(ord)}
		}
	case FreqYearly:
		// Month and day are implicit from the start date.
		opt.Freq = rrule.YEARLY
	}

	if until, ok := p.Until.Get(); ok {
		opt.Until = until
	}
	return opt
}
