// Package metrics provides Prometheus metrics for the threads backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LiveSessions tracks the number of registered live sessions.
	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "threads",
			Name:      "live_sessions",
			Help:      "Number of live WebSocket sessions in the connection registry",
		},
	)

	// ConnectedUsers tracks the number of users with at least one live session.
	ConnectedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "threads",
			Name:      "connected_users",
			Help:      "Number of users with at least one live session",
		},
	)

	// SessionRejections counts refused session establishments.
	SessionRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "session_rejections_total",
			Help:      "Total number of sessions closed at connect time for failed authentication",
		},
	)

	// Deliveries counts per-session delivery attempts by outcome.
	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "deliveries_total",
			Help:      "Total number of per-session push attempts",
		},
		[]string{"result"},
	)

	// Notifications counts notify calls by kind, persistence mode and status.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "notifications_total",
			Help:      "Total number of notify calls",
		},
		[]string{"kind", "persisted", "status"},
	)

	// CacheLookups counts read-through cache lookups by result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache-aside lookups",
		},
		[]string{"result"},
	)

	// CacheFetchDuration measures the backing fetch executed on a cache miss.
	CacheFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "threads",
			Name:      "cache_fetch_duration_seconds",
			Help:      "Duration of fetches executed on cache misses",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Cache lookup results.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheReadError  = "read_error"
	CacheWriteError = "write_error"
	CacheCorrupt    = "corrupt"
)

// Delivery results.
const (
	DeliverySent    = "sent"
	DeliverySkipped = "skipped"
)
