// Package metrics provides Prometheus collectors for the journal service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	augmentationTotal    *prometheus.CounterVec
	augmentationDuration prometheus.Histogram
	crisisTotal          prometheus.Counter

	moodResultsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aura_http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.augmentationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_generative_augmentations_total",
			Help: "Generative augmentation runs by outcome",
		},
		[]string{"outcome"}, // merged, disabled, rejected, malformed, rate_limited, timeout, failed
	)
	m.augmentationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aura_generative_augmentation_duration_seconds",
			Help:    "Time taken by generative augmentation including retries",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
	m.crisisTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aura_crisis_detections_total",
			Help: "Submissions that triggered the safety shield",
		},
	)
	m.moodResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_mood_results_total",
			Help: "Perceptual mood results by endpoint and mood",
		},
		[]string{"endpoint", "mood"},
	)
}

func (m *Metrics) getCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.augmentationTotal,
		m.augmentationDuration,
		m.crisisTotal,
		m.moodResultsTotal,
	}
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.getCollectors() {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.getCollectors() {
		collector.Collect(ch)
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveAugmentation records one generative augmentation run.
func (m *Metrics) ObserveAugmentation(outcome string, elapsed time.Duration) {
	m.augmentationTotal.WithLabelValues(outcome).Inc()
	m.augmentationDuration.Observe(elapsed.Seconds())
}

// ObserveCrisis counts a safety shield activation.
func (m *Metrics) ObserveCrisis() {
	m.crisisTotal.Inc()
}

// RecordMood counts a perceptual mood result.
func (m *Metrics) RecordMood(endpoint, mood string) {
	m.moodResultsTotal.WithLabelValues(endpoint, mood).Inc()
}
