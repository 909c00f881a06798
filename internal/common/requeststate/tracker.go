// internal/common/requeststate/tracker.go
package requeststate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"
)

// Tracker drives snapshots through the state machine. At most one action per key
// is in flight; a second Begin is rejected until the first settles.
type Tracker struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

func NewTracker(store Store, log logger.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "requeststate"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Begin moves key to IN_FLIGHT.
func (t *Tracker) Begin(ctx context.Context, key string) (*Snapshot, error) {
	ok, err := t.store.Acquire(ctx, key)
	if err != nil {
		return nil, apperrors.NewStateStoreError(err)
	}
	if !ok {
		return nil, apperrors.NewRequestInFlightError(key)
	}

	// Holding the lock makes any stored IN_FLIGHT snapshot stale (left by a dead
	// process), so it is overwritten like a settled one.
	now := t.now()
	snap := &Snapshot{Key: key, State: InFlight, StartedAt: now, UpdatedAt: now}
	if err := t.store.Save(ctx, snap); err != nil {
		_ = t.store.Release(ctx, key)
		return nil, apperrors.NewStateStoreError(err)
	}
	return snap, nil
}

// Succeed settles key with output, replacing any previous result.
func (t *Tracker) Succeed(ctx context.Context, key string, output interface{}) (*Snapshot, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		encodeErr := apperrors.NewInternalError(fmt.Errorf("encode output: %w", err))
		if _, failErr := t.Fail(ctx, key, encodeErr); failErr != nil {
			return nil, failErr
		}
		return nil, encodeErr
	}
	snap := &Snapshot{State: Succeeded, Output: raw}
	if err := t.settle(ctx, key, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Fail settles key with the caller-facing code and message of cause.
func (t *Tracker) Fail(ctx context.Context, key string, cause error) (*Snapshot, error) {
	snap := &Snapshot{State: Failed, ErrorCode: string(apperrors.ErrCodeInternal), Error: "Unexpected error"}
	if stdErr, ok := apperrors.AsStandardError(cause); ok {
		snap.ErrorCode = string(stdErr.Code)
		snap.Error = stdErr.Message
	}
	if err := t.settle(ctx, key, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (t *Tracker) settle(ctx context.Context, key string, snap *Snapshot) error {
	defer func() {
		if err := t.store.Release(ctx, key); err != nil {
			t.logger.Error("failed to release in-flight lock", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}()

	prev, err := t.store.Load(ctx, key)
	if err != nil {
		return apperrors.NewStateStoreError(err)
	}
	from := Idle
	if prev != nil {
		from = prev.State
		snap.StartedAt = prev.StartedAt
	}
	if !from.CanTransition(snap.State) {
		return apperrors.NewInternalError(fmt.Errorf("illegal transition %s -> %s", from, snap.State))
	}

	snap.Key = key
	snap.UpdatedAt = t.now()
	if err := t.store.Save(ctx, snap); err != nil {
		return apperrors.NewStateStoreError(err)
	}
	return nil
}

// Status returns the snapshot for key, IDLE when nothing ran.
func (t *Tracker) Status(ctx context.Context, key string) (*Snapshot, error) {
	snap, err := t.store.Load(ctx, key)
	if err != nil {
		return nil, apperrors.NewStateStoreError(err)
	}
	if snap == nil {
		return IdleSnapshot(key), nil
	}
	return snap, nil
}

// Run executes fn as one tracked action. fn's own result and error are returned
// unchanged; state bookkeeping failures are logged, not returned, once fn ran.
func (t *Tracker) Run(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if _, err := t.Begin(ctx, key); err != nil {
		return nil, err
	}

	output, runErr := fn(ctx)

	// Settle even when the caller went away.
	settleCtx := context.WithoutCancel(ctx)
	var settleErr error
	if runErr != nil {
		_, settleErr = t.Fail(settleCtx, key, runErr)
	} else {
		_, settleErr = t.Succeed(settleCtx, key, output)
	}
	if settleErr != nil {
		t.logger.Error("failed to record request state", map[string]interface{}{
			"key":   key,
			"error": settleErr.Error(),
		})
	}
	return output, runErr
}
