package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for submissions and validation failures,
// a gauge for the number of stored employees, and a histogram and counter
// for operations against the storage backend.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	StoredEmployees    prometheus.Gauge
	StorageDuration    *prometheus.HistogramVec
	StorageFailures    *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hrnet_submissions_total",
			Help: "Total employee submissions, by outcome.",
		}, []string{"status"}),
		ValidationFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hrnet_validation_failures_total",
			Help: "Total rejected submissions, by validation error kind.",
		}, []string{"kind"}),
		StoredEmployees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hrnet_stored_employees",
			Help: "Number of employees currently held in the store.",
		}),
		StorageDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrnet_storage_operation_duration_seconds",
			Help:    "Duration of persisted state reads and writes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: 'load', 'save'
		StorageFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hrnet_storage_failures_total",
			Help: "Total failed persisted state reads and writes.",
		}, []string{"operation"}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hrnet_http_requests_total",
			Help: "Total HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
	}

	metrics.Submissions.WithLabelValues("success")
	metrics.Submissions.WithLabelValues("rejected")

	return metrics
}
