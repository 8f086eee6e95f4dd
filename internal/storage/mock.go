package storage

import (
	"context"
	"sync"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// MockStore is an in-memory SnapshotStore for testing
type MockStore struct {
	SaveSnapshotFunc   func(ctx context.Context, snap *state.SavedSnapshot) error
	LoadSnapshotFunc   func(ctx context.Context) (*state.SavedSnapshot, error)
	DeleteSnapshotFunc func(ctx context.Context) error

	// Track calls for testing
	SaveCalls   []*state.SavedSnapshot
	LoadCalls   int
	DeleteCalls int

	snap *state.SavedSnapshot
	mu   sync.Mutex
}

var _ SnapshotStore = (*MockStore)(nil)

// NewMockStore creates a new in-memory snapshot store
func NewMockStore() *MockStore {
	return &MockStore{
		SaveCalls: make([]*state.SavedSnapshot, 0),
	}
}

func (m *MockStore) SaveSnapshot(ctx context.Context, snap *state.SavedSnapshot) error {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, snap)
	fn := m.SaveSnapshotFunc
	if fn == nil {
		m.snap = snap
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, snap)
	}
	return nil
}

func (m *MockStore) LoadSnapshot(ctx context.Context) (*state.SavedSnapshot, error) {
	m.mu.Lock()
	m.LoadCalls++
	fn := m.LoadSnapshotFunc
	snap := m.snap
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return snap, nil
}

func (m *MockStore) DeleteSnapshot(ctx context.Context) error {
	m.mu.Lock()
	m.DeleteCalls++
	fn := m.DeleteSnapshotFunc
	if fn == nil {
		m.snap = nil
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error { return nil }
func (m *MockStore) Close() error                   { return nil }

// SaveCount returns how many saves were requested.
func (m *MockStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}

// LastSaved returns the most recently saved snapshot, or nil.
func (m *MockStore) LastSaved() *state.SavedSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SaveCalls) == 0 {
		return nil
	}
	return m.SaveCalls[len(m.SaveCalls)-1]
}
