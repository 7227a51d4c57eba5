// Package engine glues the storage collaborator to the pure computation
// packages: it fetches the events relevant to a window, expands them
// into occurrences and packs occurrences into display lanes. It holds
// no state of its own beyond its collaborators, so a stale result can
// simply be discarded by the caller.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/mo"

	"github.com/seojin-dev/daygrid/calendar"
	"github.com/seojin-dev/daygrid/layout"
	"github.com/seojin-dev/daygrid/recurrence"
	"github.com/seojin-dev/daygrid/storage"
)

// Engine computes display-ready occurrences and lane assignments for a
// visible window.
type Engine struct {
	store    storage.Storage
	expander *recurrence.Expander
	logger   *slog.Logger
}

// New creates an engine over the given store. A nil expander gets the
// default configuration; a nil logger discards all output.
func New(store storage.Storage, expander *recurrence.Expander, logger *slog.Logger) *Engine {
	if expander == nil {
		expander = recurrence.NewExpander()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{store: store, expander: expander, logger: logger}
}

// Close releases the expander's resources.
func (e *Engine) Close() {
	e.expander.Close()
}

// Occurrences materializes every occurrence visible in window, sorted
// by start time.
func (e *Engine) Occurrences(ctx context.Context, window calendar.Window) ([]calendar.Occurrence, error) {
	events, err := e.store.FetchEvents(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	var out []calendar.Occurrence
	for _, ev := range events {
		exclusions, err := e.store.Exclusions(ctx, ev.ID)
		if err != nil {
			return nil, fmt.Errorf("load exclusions for %s: %w", ev.ID, err)
		}
		out = append(out, e.expander.Expand(ev, window, exclusions)...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	e.logger.Debug("window expanded", "events", len(events), "occurrences", len(out))
	return out, nil
}

// Rows assigns month-grid row indexes to the given occurrences, keyed
// by occurrence id.
func (e *Engine) Rows(occurrences []calendar.Occurrence) map[string]int {
	return layout.AssignRows(itemsOf(occurrences))
}

// Columns packs one day's occurrences into timeline columns: all-day
// lanes first, then timed lanes.
func (e *Engine) Columns(occurrences []calendar.Occurrence) [][]layout.Item {
	return layout.AssignColumns(itemsOf(occurrences))
}

// DeleteOccurrence suppresses a single occurrence of a recurring event
// by recording its date key as an exclusion.
func (e *Engine) DeleteOccurrence(ctx context.Context, eventID string, occStart time.Time) error {
	return e.store.AddExclusion(ctx, eventID, calendar.DateKeyOf(occStart))
}

// DeleteFromOccurrence truncates a recurring series so that occStart
// and every later occurrence disappear, by rewriting the rule's end
// date to the day before.
func (e *Engine) DeleteFromOccurrence(ctx context.Context, eventID string, occStart time.Time) error {
	ev, err := e.store.GetEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	rule, recurring := ev.Recurrence.Get()
	if !recurring {
		return fmt.Errorf("%w: event %s is not recurring", storage.ErrInvalidInput, eventID)
	}
	ev.Recurrence = mo.Some(recurrence.TruncateBefore(rule, ev.Start, occStart))
	return e.store.UpdateEvent(ctx, ev)
}

func itemsOf(occurrences []calendar.Occurrence) []layout.Item {
	items := make([]layout.Item, len(occurrences))
	for i, occ := range occurrences {
		items[i] = layout.Item{
			ID:     occ.ID,
			Title:  occ.Title,
			Start:  occ.Start,
			End:    occ.End,
			AllDay: occ.Label == calendar.LabelAllDay,
		}
	}
	return items
}
