package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lpx_http_requests_total",
			Help: "Total number of API requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lpx_http_request_duration_seconds",
			Help: "Duration of API requests in seconds",
		},
		[]string{"method", "route"},
	)

	ApplicationStatusFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lpx_application_status_fetches_total",
			Help: "Role application status loads performed by the client cache",
		},
		[]string{"result"},
	)

	ApplicationLoadsCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lpx_application_loads_coalesced_total",
			Help: "EnsureLoaded calls answered without a new fetch",
		},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lpx_applications_submitted_total",
			Help: "Role applications submitted",
		},
		[]string{"result"},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lpx_realtime_connections",
			Help: "Number of open realtime websocket connections",
		},
	)
)
