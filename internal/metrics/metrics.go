// Package metrics exposes Prometheus metrics for the collection pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReadingsCollected counts normalized readings returned by adapters.
	ReadingsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trafficdetector",
		Name:      "readings_collected_total",
		Help:      "Canonical readings successfully collected, by provider.",
	}, []string{"source"})

	// ProviderFailures counts adapter calls that produced no reading.
	// kind is one of: no_data, missing_credential, credential_rejected, transient.
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trafficdetector",
		Name:      "provider_failures_total",
		Help:      "Adapter calls that yielded no reading, by provider and kind.",
	}, []string{"source", "kind"})

	// ProviderRequestDuration times adapter fetches, successful or not.
	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trafficdetector",
		Name:      "provider_request_seconds",
		Help:      "Adapter fetch duration in seconds, by provider.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	// ReadingsSaved counts readings appended to the store.
	ReadingsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trafficdetector",
		Name:      "readings_saved_total",
		Help:      "Readings appended to the persistence layer.",
	})
)
