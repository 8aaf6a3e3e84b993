// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_workflow_decisions_total",
			Help: "Total number of workflow decisions processed",
		},
		[]string{"level", "action", "outcome"},
	)

	WorkflowDecisionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_workflow_decisions_rejected_total",
			Help: "Total number of workflow decisions rejected before transition",
		},
		[]string{"level", "error_code"},
	)

	DecisionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portal_decision_duration_seconds",
			Help: "Duration of workflow decision processing in seconds",
		},
		[]string{"level"},
	)

	DraftNudges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_draft_nudges_total",
			Help: "Total number of draft nudge attempts",
		},
		[]string{"outcome"},
	)

	LowQualityMarks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_low_quality_marks_total",
			Help: "Total number of applications marked low quality",
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_sent_total",
			Help: "Total number of outbound notifications by kind and status",
		},
		[]string{"kind", "status"},
	)
)
