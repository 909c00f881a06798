// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRequestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_task_requests_completed_total",
			Help: "Total number of task requests completed successfully",
		},
		[]string{"task_type"},
	)

	TaskRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_task_requests_failed_total",
			Help: "Total number of task requests that failed",
		},
		[]string{"task_type", "error_code"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_task_duration_seconds",
			Help:    "Duration of task execution in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"task_type"},
	)

	TasksInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "console_tasks_in_flight",
			Help: "Number of task requests currently awaiting the model",
		},
		[]string{"task_type"},
	)

	ModelCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_model_calls_total",
			Help: "Total number of generate calls by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	ModelCitations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_model_citations_total",
			Help: "Total number of grounding citations returned by model",
		},
		[]string{"model"},
	)

	OutboundRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_outbound_http_requests_total",
			Help: "Outbound HTTP requests by host and status class",
		},
		[]string{"host", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Inbound API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)
