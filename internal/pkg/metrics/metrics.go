package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ActionExecutionsTotal counts executed actions by outcome.
	// status: succeeded/failed
	ActionExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandhub_action_executions_total",
			Help: "Total number of command bar actions executed.",
		},
		[]string{"action", "category", "status"},
	)

	// ActionDuration records how long effects take, backend calls included.
	ActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "commandhub_action_duration_seconds",
			Help:    "Duration of command bar action effects.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// BatchItemsTotal counts items processed by fan-out actions.
	// result: succeeded/failed
	BatchItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandhub_batch_items_total",
			Help: "Total number of items processed by batch actions.",
		},
		[]string{"action", "result"},
	)

	// ModalTransitionsTotal counts modal state machine transitions by event.
	ModalTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandhub_modal_transitions_total",
			Help: "Total number of modal workflow transitions.",
		},
		[]string{"event"},
	)

	// ActiveSessions is the number of operator sessions held in memory.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "commandhub_active_sessions",
			Help: "Number of operator sessions currently held.",
		},
	)

	// NotificationsTotal counts delivered notifications per sink and level.
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandhub_notifications_total",
			Help: "Total number of notifications emitted.",
		},
		[]string{"sink", "level", "status"},
	)

	// HTTPRequestsTotal counts API requests by route template and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandhub_http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"method", "route", "code"},
	)

	// HTTPRequestDuration records API latency by route template.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "commandhub_http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// init registers the collectors with the default registry served on /metrics.
func init() {
	prometheus.MustRegister(
		ActionExecutionsTotal,
		ActionDuration,
		BatchItemsTotal,
		ModalTransitionsTotal,
		ActiveSessions,
		NotificationsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
