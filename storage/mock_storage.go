package storage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/seojin-dev/daygrid/calendar"
)

// MockStorage implements the Storage interface for testing
type MockStorage struct {
	mock.Mock
}

// CreateEvent implements the Storage interface
func (m *MockStorage) CreateEvent(ctx context.Context, ev *calendar.Event) (string, error) {
	args := m.Called(ctx, ev)
	return args.String(0), args.Error(1)
}

// GetEvent implements the Storage interface
func (m *MockStorage) GetEvent(ctx context.Context, id string) (*calendar.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

// UpdateEvent implements the Storage interface
func (m *MockStorage) UpdateEvent(ctx context.Context, ev *calendar.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// DeleteEvent implements the Storage interface
func (m *MockStorage) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FetchEvents implements the Storage interface
func (m *MockStorage) FetchEvents(ctx context.Context, window calendar.Window) ([]calendar.Event, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Event), args.Error(1)
}

// Exclusions implements the Storage interface
func (m *MockStorage) Exclusions(ctx context.Context, eventID string) (calendar.ExclusionSet, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(calendar.ExclusionSet), args.Error(1)
}

// AddExclusion implements the Storage interface
func (m *MockStorage) AddExclusion(ctx context.Context, eventID string, key calendar.DateKey) error {
	args := m.Called(ctx, eventID, key)
	return args.Error(0)
}
