// memory based implementation for testing and single-user setups
package memory

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/seojin-dev/daygrid/calendar"
	"github.com/seojin-dev/daygrid/recurrence"
	"github.com/seojin-dev/daygrid/storage"
)

// Store implements storage.Storage using in-memory maps
type Store struct {
	mu         sync.RWMutex
	events     map[string]calendar.Event
	exclusions map[string]calendar.ExclusionSet
	logger     *slog.Logger
}

// New creates a new in-memory store. A nil logger discards all output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		events:     make(map[string]calendar.Event),
		exclusions: make(map[string]calendar.ExclusionSet),
		logger:     logger,
	}
}

// CreateEvent stores a new event, allocating a uuid when ev.ID is
// empty.
func (s *Store) CreateEvent(_ context.Context, ev *calendar.Event) (string, error) {
	if ev == nil {
		return "", storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := s.events[id]; exists {
		return "", storage.ErrConflict
	}

	stored := *ev
	stored.ID = id
	s.events[id] = stored
	s.logger.Debug("event created", "id", id, "title", stored.Title)
	return id, nil
}

func (s *Store) GetEvent(_ context.Context, id string) (*calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := ev
	return &out, nil
}

func (s *Store) UpdateEvent(_ context.Context, ev *calendar.Event) error {
	if ev == nil || ev.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; !ok {
		return storage.ErrNotFound
	}
	s.events[ev.ID] = *ev
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	delete(s.exclusions, id)
	return nil
}

// FetchEvents returns a coarse prefilter of events for the window: the
// expander makes the final per-occurrence decision.
func (s *Store) FetchEvents(_ context.Context, window calendar.Window) ([]calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []calendar.Event
	for _, ev := range s.events {
		if mayReachWindow(ev, window) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Exclusions(_ context.Context, eventID string) (calendar.ExclusionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.exclusions[eventID]
	if !ok {
		return calendar.NewExclusionSet(), nil
	}
	return set.Clone(), nil
}

func (s *Store) AddExclusion(_ context.Context, eventID string, key calendar.DateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return storage.ErrNotFound
	}
	set, ok := s.exclusions[eventID]
	if !ok {
		set = calendar.NewExclusionSet()
		s.exclusions[eventID] = set
	}
	set.Add(key)
	return nil
}

// mayReachWindow is the fetch prefilter. Non-recurring events must
// overlap the window; recurring events are kept unless their UNTIL
// bound (plus the event's own span) already lies before the window.
func mayReachWindow(ev calendar.Event, window calendar.Window) bool {
	rule, recurring := ev.Recurrence.Get()
	if !recurring {
		return window.Overlaps(ev.Start, ev.End)
	}
	pattern, ok := recurrence.Decode(rule).Get()
	if !ok {
		// Malformed rules degrade to the master event alone.
		return window.Overlaps(ev.Start, ev.End)
	}
	if ev.Start.After(window.End) {
		return false
	}
	if until, bounded := pattern.Until.Get(); bounded && until.Add(ev.Span()).Before(window.Start) {
		return false
	}
	return true
}
