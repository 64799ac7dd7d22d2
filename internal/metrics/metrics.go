package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guvi_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guvi_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// WorkflowTransitions counts entity status transitions
	// (client APPROVED, po PROCESSED, invoice PAID, ...).
	WorkflowTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guvi_workflow_transitions_total",
			Help: "Workflow status transitions by entity and new status",
		},
		[]string{"entity", "status"},
	)
)
