package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "findie"

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"limiter"}, // local, redis
	)

	// Business metrics
	PostsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_expired_total",
			Help:      "Total number of expired posts removed by the sweeper",
		},
	)

	SweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_sweeps_total",
			Help:      "Total number of expiry sweeps",
		},
		[]string{"status"}, // success, error
	)

	OCRExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_extractions_total",
			Help:      "Total number of OCR extractions",
		},
		[]string{"status"}, // success, error
	)

	IdentityVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_verifications_total",
			Help:      "Total number of identity verifications by outcome",
		},
		[]string{"result"}, // approved, rejected, error
	)
)

func RecordSweep(deleted int, err error) {
	if err != nil {
		SweepsTotal.WithLabelValues("error").Inc()
		return
	}
	SweepsTotal.WithLabelValues("success").Inc()
	PostsExpiredTotal.Add(float64(deleted))
}

func RecordExtraction(err error) {
	if err != nil {
		OCRExtractionsTotal.WithLabelValues("error").Inc()
		return
	}
	OCRExtractionsTotal.WithLabelValues("success").Inc()
}

func RecordVerification(verified bool, err error) {
	switch {
	case err != nil:
		IdentityVerificationsTotal.WithLabelValues("error").Inc()
	case verified:
		IdentityVerificationsTotal.WithLabelValues("approved").Inc()
	default:
		IdentityVerificationsTotal.WithLabelValues("rejected").Inc()
	}
}
