package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts how many requests have been sent to the upstream posts API.
var UpstreamRequests = promauto.NewCounter(prometheus.CounterOpts{
	Name: "postwatch_upstream_requests_total",
	Help: "Total number of requests sent to the upstream posts API",
})

// Counts how many upstream requests failed (transport errors, timeouts, non-2xx).
var UpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "postwatch_upstream_errors_total",
	Help: "Total number of failed requests to the upstream posts API",
})

// Measures how long upstream fetches take.
var UpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "postwatch_upstream_latency_seconds",
	Help:    "Time taken to fetch posts from the upstream API",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // From 50ms to ~50s
})

// Counts how many posts have been run through the anomaly detector.
var PostsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "postwatch_posts_analyzed_total",
	Help: "Total number of posts run through the anomaly detector",
})

// Counts detected anomalies, partitioned by reason.
var AnomaliesDetected = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "postwatch_anomalies_detected_total",
		Help: "Total number of anomalies detected, by reason",
	},
	[]string{"reason"},
)

// Counts HTTP requests served, partitioned by route.
var RequestsServed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "postwatch_http_requests_total",
		Help: "Total number of HTTP requests served, by route",
	},
	[]string{"route"},
)

var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "postwatch_circuit_breaker_state",
		Help: "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
	},
	[]string{"service"},
)
