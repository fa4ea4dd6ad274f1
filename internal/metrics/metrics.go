// Package metrics exposes Prometheus counters for the upstream proxy layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers and the CMS client record through.
type Recorder interface {
	RecordUpstreamCall(resource string, statusCode int, duration time.Duration)
	RecordUpstreamFailure(resource string)
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	upstreamCalls    *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
}

// NewCollector registers the proxy metrics on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pattaya1_upstream_requests_total",
			Help: "Upstream CMS/vendor calls by resource and HTTP status.",
		}, []string{"resource", "status_code"}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pattaya1_upstream_failures_total",
			Help: "Upstream calls that failed before a status was received.",
		}, []string{"resource"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pattaya1_upstream_latency_seconds",
			Help:    "Latency of upstream calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.upstreamCalls, c.upstreamFailures, c.upstreamLatency)
	return c
}

func (c *Collector) RecordUpstreamCall(resource string, statusCode int, duration time.Duration) {
	c.upstreamCalls.WithLabelValues(resource, strconv.Itoa(statusCode)).Inc()
	c.upstreamLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordUpstreamFailure(resource string) {
	c.upstreamFailures.WithLabelValues(resource).Inc()
}

// Handler returns the scrape endpoint for the given gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything. Used in tests.
type Noop struct{}

func (Noop) RecordUpstreamCall(string, int, time.Duration) {}
func (Noop) RecordUpstreamFailure(string)                  {}
