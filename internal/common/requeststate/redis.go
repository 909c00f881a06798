// internal/common/requeststate/redis.go
package requeststate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotPrefix = "console:state:"
	lockPrefix     = "console:lock:"
)

// DefaultLockTTL bounds an in-flight lock when no lock ttl is given.
const DefaultLockTTL = 2 * time.Minute

// RedisStore shares snapshots and in-flight locks across server instances.
type RedisStore struct {
	client  redis.Cmdable
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisStore keeps snapshots for ttl. lockTTL only matters when a process dies
// mid-call and should cover the longest model call; zero means DefaultLockTTL.
func NewRedisStore(client redis.Cmdable, ttl, lockTTL time.Duration) *RedisStore {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisStore{client: client, ttl: ttl, lockTTL: lockTTL}
}

func (s *RedisStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockPrefix+key, 1, s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, lockPrefix+key).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, snapshotPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return &snap, nil
}

func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.Key, err)
	}
	if err := s.client.Set(ctx, snapshotPrefix+snap.Key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.Key, err)
	}
	return nil
}
