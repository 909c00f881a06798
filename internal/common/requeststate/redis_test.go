// internal/common/requeststate/redis_test.go
package requeststate

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_TrackerLifecycle(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	tr := NewTracker(NewRedisStore(client, 10*time.Minute, time.Minute), logger.NewTestLogger(t))

	_, err := tr.Begin(ctx, "s:audit")
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockPrefix+"s:audit"))
	assert.Equal(t, time.Minute, mr.TTL(lockPrefix+"s:audit"))

	// A second server instance sharing Redis sees the same lock.
	other := NewTracker(NewRedisStore(client, 10*time.Minute, time.Minute), logger.NewTestLogger(t))
	_, err = other.Begin(ctx, "s:audit")
	assert.True(t, errors.Is(err, apperrors.ErrRequestInFlight))

	_, err = tr.Succeed(ctx, "s:audit", map[string]float64{"overallScore": 82})
	require.NoError(t, err)
	assert.False(t, mr.Exists(lockPrefix+"s:audit"))

	snap, err := other.Status(ctx, "s:audit")
	require.NoError(t, err)
	assert.Equal(t, Succeeded, snap.State)
	assert.JSONEq(t, `{"overallScore":82}`, string(snap.Output))

	ttl := mr.TTL(snapshotPrefix + "s:audit")
	assert.Equal(t, 10*time.Minute, ttl)

	mr.FastForward(11 * time.Minute)
	snap, err = other.Status(ctx, "s:audit")
	require.NoError(t, err)
	assert.Equal(t, Idle, snap.State)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Minute, 0)

	mock.ExpectGet(snapshotPrefix + "s:k").RedisNil()

	snap, err := store.Load(context.Background(), "s:k")
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LoadCorrupt(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Minute, 0)

	mock.ExpectGet(snapshotPrefix + "s:k").SetVal("not-json")

	_, err := store.Load(context.Background(), "s:k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_BackendErrorsSurfaceAsStateStoreError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	tr := NewTracker(NewRedisStore(client, time.Minute, 0), logger.NewTestLogger(t))

	mock.ExpectSetNX(lockPrefix+"s:k", 1, DefaultLockTTL).SetErr(errors.New("connection refused"))

	_, err := tr.Begin(context.Background(), "s:k")
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStateStore, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LockHeld(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Minute, 0)

	mock.ExpectSetNX(lockPrefix+"s:k", 1, DefaultLockTTL).SetVal(false)

	ok, err := store.Acquire(context.Background(), "s:k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_AbandonedLockExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, time.Hour, 90*time.Second)

	ok, err := store.Acquire(ctx, "s:audit")
	require.NoError(t, err)
	require.True(t, ok)

	// The holder never releases; a later caller is blocked only until the lock ttl.
	ok, err = store.Acquire(ctx, "s:audit")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(91 * time.Second)
	ok, err = store.Acquire(ctx, "s:audit")
	require.NoError(t, err)
	assert.True(t, ok)
}
