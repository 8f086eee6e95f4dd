// Package storage persists the single adventure save slot.
package storage

import (
	"context"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// SnapshotStore defines the interface for save-slot persistence. The game
// keeps exactly one slot, written atomically as a full snapshot.
type SnapshotStore interface {
	// SaveSnapshot overwrites the save slot
	SaveSnapshot(ctx context.Context, snap *state.SavedSnapshot) error

	// LoadSnapshot retrieves the save slot.
	// Returns nil if no save exists.
	LoadSnapshot(ctx context.Context) (*state.SavedSnapshot, error)

	// DeleteSnapshot removes the save slot
	DeleteSnapshot(ctx context.Context) error

	// Ping tests the store connection
	Ping(ctx context.Context) error

	// Close closes the store connection
	Close() error
}
