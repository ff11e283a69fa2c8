package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtb_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	BookingsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtb_bookings_confirmed_total",
			Help: "Total bookings confirmed",
		},
	)

	BookingWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtb_booking_write_failures_total",
			Help: "Total failed booking writes",
		},
	)

	VersionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtb_version_conflicts_total",
			Help: "Total optimistic concurrency conflicts on booking documents",
		},
	)

	CatalogRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mtb_catalog_request_seconds",
			Help:    "Duration of catalog API requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtb_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
