package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const snapshotKey = "adventure:snapshot"

// RedisStore implements SnapshotStore using Redis
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ SnapshotStore = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed snapshot store
func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) SaveSnapshot(ctx context.Context, snap *state.SavedSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", snapshotKey, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	r.logger.Debug("Snapshot saved", "key", snapshotKey, "bytes", len(data))
	return nil
}

func (r *RedisStore) LoadSnapshot(ctx context.Context) (*state.SavedSnapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Redis GET failed", "key", snapshotKey, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap state.SavedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt slot is treated as no save rather than a hard failure,
		// so a new adventure can still start.
		r.logger.Warn("Corrupt snapshot in redis, treating as absent", "key", snapshotKey, "error", err)
		return nil, nil
	}
	return &snap, nil
}

func (r *RedisStore) DeleteSnapshot(ctx context.Context) error {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		r.logger.Error("Redis DEL failed", "key", snapshotKey, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
