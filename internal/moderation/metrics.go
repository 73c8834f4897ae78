package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pendingDeletions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "groupwarden_pending_deletions",
		Help: "Number of deletion timers currently waiting to fire.",
	})

	deletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupwarden_deletions_total",
		Help: "Deferred deletion outcomes.",
	}, []string{"outcome"})

	broadcastSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupwarden_broadcast_sends_total",
		Help: "Per-recipient broadcast send outcomes.",
	}, []string{"outcome"})
)
