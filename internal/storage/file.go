package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// FileStore implements SnapshotStore using a single JSON file. It is the
// zero-infrastructure backend for local play.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a file-backed snapshot store at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (f *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save directory not writable: %w", err)
	}
	return nil
}

func (f *FileStore) SaveSnapshot(ctx context.Context, snap *state.SavedSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	// Write-then-rename keeps the slot intact if the process dies mid-save.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	f.logger.Debug("Snapshot saved", "path", f.path, "bytes", len(data))
	return nil
}

func (f *FileStore) LoadSnapshot(ctx context.Context) (*state.SavedSnapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap state.SavedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		f.logger.Warn("Corrupt snapshot file, treating as absent", "path", f.path, "error", err)
		return nil, nil
	}
	return &snap, nil
}

func (f *FileStore) DeleteSnapshot(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
