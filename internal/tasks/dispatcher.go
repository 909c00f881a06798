// internal/tasks/dispatcher.go

// Package tasks registers the model-access task handlers and runs them with
// metrics, tracing and logging around each call.
package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/metrics"
	"cloud-api-console/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Handler decodes raw JSON variables, runs one task and returns its output.
type Handler interface {
	Handle(ctx context.Context, variables []byte) (interface{}, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, variables []byte) (interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, variables []byte) (interface{}, error) {
	return f(ctx, variables)
}

// Dispatcher maps task types to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	disabled map[string]struct{}
	obs      *observability.Observability
	logger   logger.Logger
}

func NewDispatcher(obs *observability.Observability, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		disabled: make(map[string]struct{}),
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Register adds a handler. Disabled tasks stay known so callers get TASK_DISABLED
// instead of TASK_NOT_FOUND.
func (d *Dispatcher) Register(taskType string, h Handler, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[taskType] = h
	if enabled {
		delete(d.disabled, taskType)
	} else {
		d.disabled[taskType] = struct{}{}
	}
	d.logger.Info("task registered", map[string]interface{}{
		"taskType": taskType,
		"enabled":  enabled,
	})
}

// TaskTypes lists registered and enabled task types, sorted.
func (d *Dispatcher) TaskTypes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.handlers))
	for taskType := range d.handlers {
		if _, off := d.disabled[taskType]; !off {
			out = append(out, taskType)
		}
	}
	sort.Strings(out)
	return out
}

// Check reports TASK_NOT_FOUND or TASK_DISABLED without running anything.
func (d *Dispatcher) Check(taskType string) error {
	_, err := d.lookup(taskType)
	return err
}

func (d *Dispatcher) lookup(taskType string) (Handler, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[taskType]
	if !ok {
		return nil, apperrors.NewTaskNotFoundError(taskType)
	}
	if _, off := d.disabled[taskType]; off {
		return nil, apperrors.NewTaskDisabledError(taskType)
	}
	return h, nil
}

// Dispatch runs taskType once. There is no retry and no deadline beyond ctx.
func (d *Dispatcher) Dispatch(ctx context.Context, taskType string, variables []byte) (interface{}, error) {
	h, err := d.lookup(taskType)
	if err != nil {
		return nil, err
	}

	ctx, span := d.obs.StartSpan(ctx, "task."+taskType, attribute.String("task_type", taskType))
	defer span.End()

	gauge := metrics.TasksInFlight.WithLabelValues(taskType)
	gauge.Inc()
	defer gauge.Dec()

	start := time.Now()
	output, err := h.Handle(ctx, variables)
	elapsed := time.Since(start)
	metrics.TaskDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

	if err != nil {
		code := string(apperrors.ErrCodeInternal)
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			code = string(stdErr.Code)
		}
		metrics.TaskRequestsFailed.WithLabelValues(taskType, code).Inc()
		d.obs.RecordTask(ctx, taskType, "failed", elapsed)
		span.SetStatus(codes.Error, code)
		return nil, err
	}

	metrics.TaskRequestsCompleted.WithLabelValues(taskType).Inc()
	d.obs.RecordTask(ctx, taskType, "success", elapsed)
	d.logger.Info("task completed", map[string]interface{}{
		"taskType": taskType,
		"duration": elapsed.String(),
	})
	return output, nil
}
