// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

var (
	// Engine
	RespondTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_respond_total",
			Help: "Total number of Respond calls by intent and outcome",
		},
		[]string{"intent", "outcome"}, // outcome: "ok" or a failure kind
	)

	RespondDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mira_respond_duration_seconds",
			Help:    "End-to-end duration of Respond calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"intent"},
	)

	EvidenceTracks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mira_evidence_tracks",
			Help:    "Number of tracks handed to the generator per recommendation",
			Buckets: []float64{0, 1, 3, 5, 10, 15},
		},
	)

	// Catalog
	CatalogTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mira_catalog_tracks",
			Help: "Number of tracks in the current catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_catalog_reloads_total",
			Help: "Catalog reload attempts by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	// Completion providers
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mira_provider_request_duration_seconds",
			Help:    "Duration of completion provider calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"provider", "result"},
	)

	ProviderRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_provider_retries_total",
			Help: "Retried completion provider calls",
		},
		[]string{"provider"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_circuit_breaker_rejections_total",
			Help: "Calls rejected while the breaker was open",
		},
		[]string{"name"},
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mira_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Worker
	ReloadQueueDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mira_reload_jobs_dropped_total",
			Help: "Reload jobs dropped because the queue was full",
		},
	)
)

// RecordReply records the outcome of one Respond call.
func RecordReply(reply domain.Reply, elapsed time.Duration) {
	outcome := "ok"
	if reply.Failure != nil {
		outcome = reply.Failure.KindName()
	}
	intent := reply.Intent.String()
	RespondTotal.WithLabelValues(intent, outcome).Inc()
	RespondDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
	if reply.Intent == domain.IntentRecommendation {
		EvidenceTracks.Observe(float64(len(reply.Evidence)))
	}
}

// RecordReload records a catalog reload and, on success, the new size.
func RecordReload(trigger string, tracks int, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues(trigger, "error").Inc()
		return
	}
	CatalogReloads.WithLabelValues(trigger, "ok").Inc()
	CatalogTracks.Set(float64(tracks))
}

// RecordProviderCall records one completion provider call.
func RecordProviderCall(provider string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProviderRequestDuration.WithLabelValues(provider, result).Observe(duration.Seconds())
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
