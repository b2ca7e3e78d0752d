// Package metrics exposes Prometheus instruments for the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerOperations counts ledger mutations by operation and outcome.
var LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "orgledger",
	Subsystem: "ledger",
	Name:      "operations_total",
	Help:      "Ledger mutations by operation (add, update, delete) and result (ok, invalid, not_found, rolled_back).",
}, []string{"op", "result"})

// LedgerRollbacks counts optimistic updates undone after a failed durable write.
var LedgerRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "orgledger",
	Subsystem: "ledger",
	Name:      "rollbacks_total",
	Help:      "Optimistic in-memory updates reverted after a persistence failure.",
}, []string{"op"})

// LedgerRebuilds counts full rescans of the aggregate.
var LedgerRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "orgledger",
	Subsystem: "ledger",
	Name:      "rebuilds_total",
	Help:      "Full aggregate recomputations by reason (rollover, reload, refresh).",
}, []string{"reason"})

// GatewayLatency tracks durable write latency.
var GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "orgledger",
	Subsystem: "gateway",
	Name:      "call_duration_seconds",
	Help:      "Persistence gateway call latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"op"})

// LedgerBalance is the current net balance of the ledger.
var LedgerBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "orgledger",
	Subsystem: "ledger",
	Name:      "balance",
	Help:      "Current ledger balance (total income minus total expense).",
})
