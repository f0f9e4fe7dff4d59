package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ConnectAttempts counts wallet connection attempts by outcome
	// ("success", "failure").
	ConnectAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_connect_attempts_total",
			Help: "Number of wallet connection attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// TransfersSubmitted counts transfer submissions by outcome
	// ("success", "failure", "rejected").
	TransfersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transfers_submitted_total",
			Help: "Number of transfer submissions by outcome.",
		},
		[]string{"outcome"},
	)

	// InclusionWaitSeconds observes how long submitted transfers waited for
	// on-chain inclusion.
	InclusionWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_transfer_inclusion_wait_seconds",
			Help:    "Time spent waiting for on-chain inclusion of a transfer.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
	)

	// HistoryAppendFailures counts best-effort history appends that failed.
	HistoryAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_history_append_failures_total",
			Help: "Number of failed history append attempts.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		ConnectAttempts,
		TransfersSubmitted,
		InclusionWaitSeconds,
		HistoryAppendFailures,
	)
}
