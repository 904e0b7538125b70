// Package observability exposes the Prometheus metrics recorded by the
// HTTP middleware, the search engine, the page cache and the submission
// handler.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "thearchives"

var (
	// HTTPRequests counts served requests by chi route pattern, method and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	// HTTPLatency records request duration by route pattern and method.
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	// SearchQueries counts catalog searches by outcome.
	SearchQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "search_queries_total", Help: "Search queries by outcome."},
		[]string{"outcome"}, // outcome: hit|miss|empty
	)
	// CacheEvents counts page cache operations.
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "page_cache_events_total", Help: "Page cache hits/misses/sets/errors."},
		[]string{"event"}, // event: hit|miss|set|error
	)
	// Submissions counts hidden-gem form posts by result.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "gem_submissions_total", Help: "Hidden gem submissions."},
		[]string{"result"}, // result: accepted|invalid|limited
	)
)

// InitRegistry returns a registry with every collector of this package
// registered, plus the Go runtime and process collectors.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, SearchQueries, CacheEvents, Submissions)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveSearch counts a search with outcome hit, miss or empty.
func ObserveSearch(outcome string) {
	SearchQueries.WithLabelValues(outcome).Inc()
}

// ObserveCache counts a page cache event.
func ObserveCache(event string) {
	CacheEvents.WithLabelValues(event).Inc()
}

// ObserveSubmission counts a submission as accepted, invalid or limited.
func ObserveSubmission(result string) {
	Submissions.WithLabelValues(result).Inc()
}
