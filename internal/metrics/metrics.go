// ABOUTME: Prometheus collectors for turn resolution and action outcomes
// ABOUTME: Registered on the default registry and exposed by the serve command
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vegra_turns_resolved_total",
			Help: "Turns resolved, by cascade stage and intent tag",
		},
		[]string{"stage", "tag"},
	)

	TurnsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vegra_turns_failed_total",
			Help: "Turns that could not be resolved to a catalog intent",
		},
		[]string{"reason"},
	)

	ActionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vegra_action_failures_total",
			Help: "Launcher calls that reported failure",
		},
		[]string{"action"},
	)

	Replies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vegra_replies_total",
			Help: "Conversational replies by source (generative or template)",
		},
		[]string{"source"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vegra_turn_duration_seconds",
			Help:    "Duration of a full turn (resolution plus dispatch)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vegra_active_sessions",
			Help: "Sessions with a turn currently in flight",
		},
	)
)
