package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cleanupSweeps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "session_cleanup_sweeps_total",
		Help: "Cleanup sweep runs, labeled by result.",
	}, []string{"result"})

	cleanupDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_cleanup_deleted_total",
		Help: "Sessions hard-deleted by cleanup sweeps.",
	})
)
