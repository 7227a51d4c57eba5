// Package storage defines the boundary between the engine and the
// surrounding application's event persistence. The engine only ever
// reads events and exclusion sets through this interface; all writes
// originate from the form layer's create/update/delete operations.
package storage

import (
	"context"
	"errors"

	"github.com/seojin-dev/daygrid/calendar"
)

// Storage connects the engine with the backing event store. Please use
// the error types provided.
type Storage interface {
	// CreateEvent persists a new event and returns its assigned id.
	// An empty ev.ID asks the store to allocate one.
	CreateEvent(ctx context.Context, ev *calendar.Event) (string, error)
	// GetEvent retrieves a single event by id.
	GetEvent(ctx context.Context, id string) (*calendar.Event, error)
	// UpdateEvent replaces an existing event.
	UpdateEvent(ctx context.Context, ev *calendar.Event) error
	// DeleteEvent removes an event and its exclusion bookkeeping.
	DeleteEvent(ctx context.Context, id string) error
	// FetchEvents retrieves the events that may contribute occurrences
	// to the given window: non-recurring events overlapping it, and
	// recurring events whose rule could still reach it.
	FetchEvents(ctx context.Context, window calendar.Window) ([]calendar.Event, error)
	// Exclusions returns the suppressed occurrence dates of an event.
	// The result is never nil.
	Exclusions(ctx context.Context, eventID string) (calendar.ExclusionSet, error)
	// AddExclusion records a suppressed occurrence date for an event.
	AddExclusion(ctx context.Context, eventID string, key calendar.DateKey) error
}

var (
	// ErrNotFound is returned when a requested event doesn't exist.
	ErrNotFound = errors.New("event not found")
	// ErrInvalidInput is returned when the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input parameters")
	// ErrConflict is returned when there's a conflict with an existing event.
	ErrConflict = errors.New("event conflict")
)
