// Package metrics defines the custom Prometheus metrics for the admin
// console. It is the single source of truth for metric names, labels, and
// help strings; everything registers with the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// RequestsTotal counts outbound API calls by result.
// Labels:
//   - method: HTTP method of the call
//   - outcome: "ok", "validation", "auth", "not_found", "conflict", "server",
//     or "network_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of outbound API requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures the wall time of one outbound call.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of outbound API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionEventsTotal counts session lifecycle transitions.
// Label:
//   - event: "restore", "set", or "clear"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session store mutations, by event.",
	},
	[]string{"event"},
)

// PushMessagesTotal counts foreground push messages handed to the display
// handler.
var PushMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_messages_total",
		Help:      "Total number of foreground push messages displayed.",
	},
)
