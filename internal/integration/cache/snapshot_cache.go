// Package cache implements the snapshot read-through cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

const defaultSnapshotTTL = 5 * time.Minute

// snapshotCache implements the adapter.SnapshotCache interface. Entries are
// JSON documents keyed by profile id; every ledger write invalidates, so the
// TTL is only a backstop.
type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache instance. A zero TTL falls
// back to the default.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) adapter.SnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &snapshotCache{client: client, ttl: ttl}
}

// Get retrieves the cached snapshot for a profile. A miss returns nil with
// no error.
func (c *snapshotCache) Get(ctx context.Context, profileID uuid.UUID) (*entity.Snapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey(profileID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot cache: %w", err)
	}

	var snapshot entity.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return &snapshot, nil
}

// Set stores the snapshot for its profile.
func (c *snapshotCache) Set(ctx context.Context, snapshot *entity.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(snapshot.ProfileID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a profile.
func (c *snapshotCache) Invalidate(ctx context.Context, profileID uuid.UUID) error {
	if err := c.client.Del(ctx, snapshotKey(profileID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
	}
	return nil
}

func snapshotKey(profileID uuid.UUID) string {
	return "snapshot:" + profileID.String()
}
