package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Open-Meteo call rate per endpoint. Watch for: error vs success ratio.
	UpstreamRequestsTotal *prometheus.CounterVec

	// Upstream latency per request. Watch for: p95 > 2s (degradation), p99 near the 15s timeout.
	UpstreamRequestDuration *prometheus.HistogramVec

	// Cache hits/misses per key namespace (weather, airquality, geocode).
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Stale entries served when the forecast upstream failed.
	CacheFallbacksTotal *prometheus.CounterVec

	// Cache backend failures by operation (get, put, sweep, clear). These never
	// surface to callers; a rising rate means the backend needs attention.
	CacheErrorsTotal *prometheus.CounterVec

	// Entries removed by the periodic sweep.
	CacheSweepRemovedTotal prometheus.Counter

	// Entries removed by administrative clear.
	CacheClearedTotal prometheus.Counter

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// Concurrent misses coalesced into one upstream call.
	CoalescingHitsTotal *prometheus.CounterVec

	// Concurrent misses observed for the same key (stampede signal).
	StampedeDetectedTotal *prometheus.CounterVec

	// Cache warming runs and per-coordinate failures.
	CacheWarmingTotal    prometheus.Counter
	CacheWarmingFailures prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstreamRequestsTotal",
			Help: "Total number of Open-Meteo API calls",
		},
		[]string{"endpoint", "status"},
	)
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstreamRequestDurationSeconds",
			Help:    "Open-Meteo API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheHitsTotal",
			Help: "Total number of fresh cache hits",
		},
		[]string{"namespace"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheMissesTotal",
			Help: "Total number of cache misses (including backend errors treated as misses)",
		},
		[]string{"namespace"},
	)
	CacheFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheFallbacksTotal",
			Help: "Stale cache entries served after upstream failure",
		},
		[]string{"namespace"},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheErrorsTotal",
			Help: "Cache backend errors by operation",
		},
		[]string{"operation"},
	)
	CacheSweepRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheSweepRemovedTotal",
			Help: "Expired entries removed by the periodic sweep",
		},
	)
	CacheClearedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheClearedTotal",
			Help: "Entries removed by administrative cache clears",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)
	CoalescingHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requestCoalescingHitsTotal",
			Help: "Requests that waited on an in-flight upstream call instead of issuing their own",
		},
		[]string{"namespace"},
	)
	StampedeDetectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheStampedeDetectedTotal",
			Help: "Concurrent misses observed for the same cache key",
		},
		[]string{"namespace"},
	)
	CacheWarmingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingTotal",
			Help: "Cache warming runs",
		},
	)
	CacheWarmingFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingFailuresTotal",
			Help: "Coordinates that failed during cache warming",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		UpstreamRequestsTotal, UpstreamRequestDuration,
		CacheHitsTotal, CacheMissesTotal, CacheFallbacksTotal, CacheErrorsTotal,
		CacheSweepRemovedTotal, CacheClearedTotal,
		RateLimitDeniedTotal,
		CoalescingHitsTotal, StampedeDetectedTotal,
		CacheWarmingTotal, CacheWarmingFailures,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
