// internal/common/requeststate/state.go

// Package requeststate tracks the lifecycle of one action per (session, target),
// where the target is a task type or card id. States are IDLE, IN_FLIGHT,
// SUCCEEDED or FAILED; the last result is kept until the next action replaces it.
package requeststate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// State is a request lifecycle state.
type State string

const (
	Idle      State = "IDLE"
	InFlight  State = "IN_FLIGHT"
	Succeeded State = "SUCCEEDED"
	Failed    State = "FAILED"
)

// CanTransition reports whether s may move to next. A settled state may only
// move to IN_FLIGHT; IN_FLIGHT may only settle. There is no cancel edge.
func (s State) CanTransition(next State) bool {
	switch s {
	case Idle, Succeeded, Failed:
		return next == InFlight
	case InFlight:
		return next == Succeeded || next == Failed
	default:
		return false
	}
}

// Settled reports whether no call is outstanding.
func (s State) Settled() bool {
	return s != InFlight
}

// Snapshot is the observable state of one key.
type Snapshot struct {
	Key       string          `json:"key"`
	State     State           `json:"state"`
	Output    json.RawMessage `json:"output,omitempty"`
	ErrorCode string          `json:"errorCode,omitempty"`
	Error     string          `json:"error,omitempty"`
	StartedAt time.Time       `json:"startedAt,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IdleSnapshot is reported for keys that never ran.
func IdleSnapshot(key string) *Snapshot {
	return &Snapshot{Key: key, State: Idle}
}

// Store persists snapshots and the per-key in-flight lock.
type Store interface {
	// Acquire takes the in-flight lock for key. It returns false when already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
	// Load returns nil, nil when nothing is stored for key.
	Load(ctx context.Context, key string) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Key builds the tracker key for a session and a card or task.
func Key(session, target string) string {
	return fmt.Sprintf("%s:%s", session, target)
}
