// internal/common/requeststate/tracker_test.go
package requeststate

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Idle, InFlight, true},
		{Failed, InFlight, true},
		{Succeeded, InFlight, true},
		{InFlight, Succeeded, true},
		{InFlight, Failed, true},
		{InFlight, InFlight, false},
		{InFlight, Idle, false},
		{Idle, Succeeded, false},
		{Idle, Failed, false},
		{Succeeded, Failed, false},
		{Failed, Idle, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func newTracker(t *testing.T) *Tracker {
	return NewTracker(NewMemoryStore(time.Hour), logger.NewTestLogger(t))
}

func TestTracker_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)
	key := Key("session-1", "translate")

	snap, err := tr.Status(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Idle, snap.State)

	snap, err = tr.Begin(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, InFlight, snap.State)

	_, err = tr.Begin(ctx, key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRequestInFlight))

	snap, err = tr.Succeed(ctx, key, map[string]string{"result": "Hola"})
	require.NoError(t, err)
	assert.Equal(t, Succeeded, snap.State)
	assert.JSONEq(t, `{"result":"Hola"}`, string(snap.Output))

	status, err := tr.Status(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, status.State)
	assert.False(t, status.StartedAt.IsZero())

	// Resubmission after success replaces the previous result.
	_, err = tr.Begin(ctx, key)
	require.NoError(t, err)
	status, err = tr.Status(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, InFlight, status.State)
	assert.Empty(t, status.Output)

	failure := apperrors.NewOperationFailedError("process-text", "Failed to process text.", errors.New("boom"))
	snap, err = tr.Fail(ctx, key, failure)
	require.NoError(t, err)
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "OPERATION_FAILED", snap.ErrorCode)
	assert.Equal(t, "Failed to process text.", snap.Error)
	assert.NotContains(t, snap.Error, "boom")

	// Failed may re-enter IN_FLIGHT.
	_, err = tr.Begin(ctx, key)
	require.NoError(t, err)
}

func TestTracker_SettleWithoutBeginRejected(t *testing.T) {
	tr := newTracker(t)
	_, err := tr.Succeed(context.Background(), "s:k", "x")
	require.Error(t, err)
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	_, err := tr.Begin(ctx, Key("s", "vision"))
	require.NoError(t, err)
	_, err = tr.Begin(ctx, Key("s", "translate"))
	require.NoError(t, err)
	_, err = tr.Begin(ctx, Key("other", "vision"))
	require.NoError(t, err)
}

func TestTracker_Run(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	out, err := tr.Run(ctx, "s:k", func(context.Context) (interface{}, error) {
		return map[string]int{"n": 12}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"n": 12}, out)

	snap, err := tr.Status(ctx, "s:k")
	require.NoError(t, err)
	assert.Equal(t, Succeeded, snap.State)
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(snap.Output, &decoded))
	assert.Equal(t, 12, decoded["n"])

	runErr := apperrors.NewOperationFailedError("site-audit", "Failed to audit website.", nil)
	out, err = tr.Run(ctx, "s:k", func(context.Context) (interface{}, error) {
		return nil, runErr
	})
	assert.Nil(t, out)
	assert.Same(t, runErr, err)

	snap, err = tr.Status(ctx, "s:k")
	require.NoError(t, err)
	assert.Equal(t, Failed, snap.State)
	assert.Empty(t, snap.Output)
}

func TestTracker_RunRejectsConcurrentAction(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = tr.Run(ctx, "s:k", func(context.Context) (interface{}, error) {
			close(started)
			<-release
			return "done", nil
		})
	}()

	<-started
	_, err := tr.Run(ctx, "s:k", func(context.Context) (interface{}, error) {
		t.Fatal("second action must not run")
		return nil, nil
	})
	assert.True(t, errors.Is(err, apperrors.ErrRequestInFlight))

	close(release)
	wg.Wait()

	snap, err := tr.Status(ctx, "s:k")
	require.NoError(t, err)
	assert.Equal(t, Succeeded, snap.State)
}

func TestMemoryStore_ExpiresSettledSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Snapshot{Key: "k", State: Succeeded, UpdatedAt: now}))
	snap, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, snap)

	now = now.Add(2 * time.Minute)
	snap, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMemoryStore_ExpiryKeepsSnapshotSavedDuringLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	later := start.Add(2 * time.Hour)

	require.NoError(t, store.Save(ctx, &Snapshot{Key: "k", State: Failed, UpdatedAt: start}))

	// The first clock read happens between the read and write locks; a fresh
	// result lands right then.
	saved := false
	store.now = func() time.Time {
		if !saved {
			saved = true
			require.NoError(t, store.Save(ctx, &Snapshot{Key: "k", State: Succeeded, UpdatedAt: later}))
		}
		return later
	}

	snap, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, Succeeded, snap.State)

	snap, err = store.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, Succeeded, snap.State)
}
