// Package metrics holds the Prometheus collectors for the Bike Logbook API.
// Collectors register with the default registry on import; cmd/api exposes
// them on /metrics via promhttp.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pkordes/bike-logbook/internal/domain"
)

// Route lookup sources.
const (
	SourceProvider = "provider"
	SourceCache    = "cache"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bikelog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bikelog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RouteLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bikelog_route_lookups_total",
			Help: "Route distance lookups by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	RouteLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bikelog_route_lookup_duration_seconds",
			Help:    "Latency of calls to the directions provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	TripsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bikelog_trips_created_total",
			Help: "Trips successfully stored",
		},
	)
)

// RecordHTTP records one served request. route should be the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordProviderLookup records a call to the directions provider.
func RecordProviderLookup(err error, d time.Duration) {
	RouteLookupsTotal.WithLabelValues(SourceProvider, Outcome(err)).Inc()
	RouteLookupDuration.Observe(d.Seconds())
}

// RecordCacheHit records a lookup answered from the route cache.
func RecordCacheHit() {
	RouteLookupsTotal.WithLabelValues(SourceCache, Outcome(nil)).Inc()
}

// Outcome maps a lookup error onto a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrRouteNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
