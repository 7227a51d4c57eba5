package memory

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin-dev/daygrid/calendar"
	"github.com/seojin-dev/daygrid/storage"
)

func newEvent(title string, start time.Time, duration time.Duration) *calendar.Event {
	return &calendar.Event{
		Title:      title,
		Start:      start,
		End:        start.Add(duration),
		Label:      calendar.LabelTimed,
		Importance: calendar.ImportanceMedium,
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("Standup", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	id, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)
	assert.NotEmpty(t, id, "an id is allocated when none is given")
	assert.Empty(t, ev.ID, "the caller's event is not mutated")

	got, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Standup", got.Title)
}

func TestCreateEvent_ExplicitID(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("Standup", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	ev.ID = "fixed-id"

	id, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = s.CreateEvent(ctx, ev)
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestCreateEvent_NilInput(t *testing.T) {
	s := New(nil)
	_, err := s.CreateEvent(context.Background(), nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestUpdateEvent(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("Standup", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	id, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)

	updated := *ev
	updated.ID = id
	updated.Title = "Daily sync"
	require.NoError(t, s.UpdateEvent(ctx, &updated))

	got, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Daily sync", got.Title)

	missing := *ev
	missing.ID = "no-such-id"
	assert.ErrorIs(t, s.UpdateEvent(ctx, &missing), storage.ErrNotFound)
	assert.ErrorIs(t, s.UpdateEvent(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, s.UpdateEvent(ctx, &calendar.Event{}), storage.ErrInvalidInput)
}

func TestDeleteEvent(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("Standup", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	id, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)
	require.NoError(t, s.AddExclusion(ctx, id, "2024-01-02"))

	require.NoError(t, s.DeleteEvent(ctx, id))

	_, err = s.GetEvent(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEvent(ctx, id), storage.ErrNotFound)

	// Exclusions are dropped with the event.
	set, err := s.Exclusions(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestFetchEvents_WindowPrefilter(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	window := calendar.Window{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
	}

	inside := newEvent("inside", time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC), time.Hour)
	before := newEvent("before", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), time.Hour)
	after := newEvent("after", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), time.Hour)

	// A forever rule started long before the window still reaches it.
	forever := newEvent("forever", time.Date(2023, 6, 5, 9, 0, 0, 0, time.UTC), time.Hour)
	forever.Recurrence = mo.Some("FREQ=WEEKLY;BYDAY=MO")

	// A bounded rule whose UNTIL passed before the window is filtered.
	expired := newEvent("expired", time.Date(2023, 6, 5, 9, 0, 0, 0, time.UTC), time.Hour)
	expired.Recurrence = mo.Some("FREQ=DAILY;UNTIL=20231231T235959Z")

	// A rule starting after the window cannot produce occurrences yet.
	future := newEvent("future", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	future.Recurrence = mo.Some("FREQ=DAILY")

	for _, ev := range []*calendar.Event{inside, before, after, forever, expired, future} {
		_, err := s.CreateEvent(ctx, ev)
		require.NoError(t, err)
	}

	events, err := s.FetchEvents(ctx, window)
	require.NoError(t, err)

	titles := make([]string, len(events))
	for i, ev := range events {
		titles[i] = ev.Title
	}
	assert.Equal(t, []string{"forever", "inside"}, titles, "sorted by start time")
}

func TestFetchEvents_MalformedRuleKeepsMasterOnly(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("broken", time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC), time.Hour)
	ev.Recurrence = mo.Some("FREQ=NONSENSE")
	_, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)

	inWindow := calendar.Window{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	events, err := s.FetchEvents(ctx, inWindow)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	later := calendar.Window{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	events, err = s.FetchEvents(ctx, later)
	require.NoError(t, err)
	assert.Empty(t, events, "a malformed rule does not repeat past its own dates")
}

func TestExclusions(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ev := newEvent("Standup", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	id, err := s.CreateEvent(ctx, ev)
	require.NoError(t, err)

	set, err := s.Exclusions(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, set, "an event without exclusions yields an empty set, not nil")
	assert.Empty(t, set)

	require.NoError(t, s.AddExclusion(ctx, id, "2024-01-08"))
	require.NoError(t, s.AddExclusion(ctx, id, "2024-01-15"))

	set, err = s.Exclusions(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []calendar.DateKey{"2024-01-08", "2024-01-15"}, set.Keys())

	// The returned set is a copy.
	set.Add("2024-01-22")
	again, err := s.Exclusions(ctx, id)
	require.NoError(t, err)
	assert.False(t, again.Contains("2024-01-22"))

	assert.ErrorIs(t, s.AddExclusion(ctx, "no-such-id", "2024-01-08"), storage.ErrNotFound)
}
