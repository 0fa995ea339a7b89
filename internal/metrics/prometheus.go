package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route template.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	AlertsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_resolved_total",
			Help: "Total number of alerts resolved by operators",
		},
		[]string{"severity"},
	)

	InsightsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_generated_total",
			Help: "Total number of live insights generated",
		},
		[]string{"type"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Total number of report exports",
		},
		[]string{"format", "status"},
	)

	// LivePower is the latest simulated site load in kW.
	LivePower = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_power_kw",
			Help: "Current simulated site load in kW",
		},
	)

	UnresolvedAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "unresolved_alerts",
			Help: "Number of unresolved alerts across the fleet",
		},
	)

	FeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_clients",
			Help: "Number of connected live feed websocket clients",
		},
	)
)
