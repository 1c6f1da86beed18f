// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_submissions_total",
			Help: "Total number of form submissions handled per tool",
		},
		[]string{"tool", "status"},
	)

	ToolSubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_submissions_failed_total",
			Help: "Total number of failed submissions per tool",
		},
		[]string{"tool", "error_code"},
	)

	ToolSubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tool_submission_duration_seconds",
			Help:    "Duration of a submission including its external call",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	ToolSubmissionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tool_submissions_active",
			Help: "Number of in-flight submissions per tool",
		},
		[]string{"tool"},
	)

	AuditWritesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_writes_failed_total",
			Help: "Total number of audit records a sink failed to store",
		},
		[]string{"sink"},
	)
)
