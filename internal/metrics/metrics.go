package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_console_backend_requests_total",
		Help: "Total number of calls made to the platform API, by operation and outcome.",
	},
		[]string{"operation", "outcome"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_console_backend_request_duration_seconds",
		Help:    "Latency of calls made to the platform API.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"operation"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_console_events_published_total",
		Help: "Total number of admin events published, by type.",
	},
		[]string{"type"},
	)

	StaleResponsesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_console_stale_responses_dropped_total",
		Help: "User list responses discarded because a newer one was already applied.",
	})

	ConnectedConsoles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "admin_console_connected_consoles",
		Help: "Current number of open user-management websocket consoles.",
	})
)
