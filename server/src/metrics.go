// server/src/metrics.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	upstreamTotal   *prometheus.CounterVec
	fallbackTotal   *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
}

// NewMetricsCollector registers the collectors on reg. Tests pass a private
// registry so repeated construction does not collide.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	m := &MetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "Time spent processing API requests",
			},
			[]string{"route"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "Total number of API requests",
			},
			[]string{"route", "status"},
		),
		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Upstream NASA/JPL requests by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		fallbackTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ephemeris_fallback_total",
				Help: "Position series served by the offline Kepler engine",
			},
			[]string{"kind"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "response_cache_events_total",
				Help: "Response cache hits and misses",
			},
			[]string{"event"},
		),
	}

	reg.MustRegister(m.requestDuration)
	reg.MustRegister(m.requestsTotal)
	reg.MustRegister(m.upstreamTotal)
	reg.MustRegister(m.fallbackTotal)
	reg.MustRegister(m.cacheEvents)

	return m
}

func (m *MetricsCollector) RecordRequest(route string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *MetricsCollector) RecordUpstream(source, outcome string) {
	m.upstreamTotal.WithLabelValues(source, outcome).Inc()
}

func (m *MetricsCollector) RecordFallback(kind string) {
	m.fallbackTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsCollector) RecordCache(event string) {
	m.cacheEvents.WithLabelValues(event).Inc()
}

// ServeMetrics exposes /metrics on its own listener.
func (m *MetricsCollector) ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
