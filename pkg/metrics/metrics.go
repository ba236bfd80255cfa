package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Login metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"method", "result"},
	)

	// Upload metrics
	UploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total number of successfully stored profile images",
		},
	)

	UploadRejectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_upload_rejects_total",
			Help: "Total number of rejected uploads by reason",
		},
		[]string{"reason"},
	)

	StaleFilesSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_stale_files_swept_total",
			Help: "Total number of stale profile images removed by the sweep",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_errors_total",
			Help: "Total number of application errors by code",
		},
		[]string{"code", "status"},
	)
)

// RecordError increments the error counter for the given code/status pair.
func RecordError(code, status string) {
	ErrorsTotal.WithLabelValues(code, status).Inc()
}

// RecordLogin increments the login counter for a method ("password" or
// "oauth") and result ("success" or "failure").
func RecordLogin(method, result string) {
	LoginAttemptsTotal.WithLabelValues(method, result).Inc()
}
