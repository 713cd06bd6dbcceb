// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolInvocationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_completed_total",
			Help: "Total number of tool invocations completed",
		},
		[]string{"tool"},
	)

	ToolInvocationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_failed_total",
			Help: "Total number of tool invocations failed",
		},
		[]string{"tool", "error_code"},
	)

	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tool_invocation_duration_seconds",
			Help: "Duration of tool invocation in seconds",
		},
		[]string{"tool"},
	)

	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of chat turns handled by the gateway",
		},
		[]string{"status"},
	)

	ChatTurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "chat_turn_duration_seconds",
			Help: "Duration of a chat turn including the orchestrator round trip",
		},
	)
)
