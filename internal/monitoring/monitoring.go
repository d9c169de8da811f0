// Package monitoring holds the Prometheus collectors shared by the admin service.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_admin_http_requests_total",
			Help: "Total number of HTTP requests served by the admin",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seminar_admin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	storeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_store_requests_total",
			Help: "Requests sent to the remote seminar store",
		},
		[]string{"operation", "status"},
	)

	storeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seminar_store_request_duration_seconds",
			Help:    "Remote seminar store request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	bulkDeleteItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_bulk_delete_items_total",
			Help: "Seminars processed by bulk delete, by outcome",
		},
		[]string{"outcome"},
	)
)

// TrackHTTPRequest records one served request.
func TrackHTTPRequest(method, path, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// TrackStoreRequest records one call to the remote store. status is "ok" or "error".
func TrackStoreRequest(operation, status string, d time.Duration) {
	storeRequests.WithLabelValues(operation, status).Inc()
	storeDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// TrackBulkDelete records the outcome counts of one bulk delete.
func TrackBulkDelete(deleted, failed int) {
	bulkDeleteItems.WithLabelValues("deleted").Add(float64(deleted))
	bulkDeleteItems.WithLabelValues("failed").Add(float64(failed))
}
