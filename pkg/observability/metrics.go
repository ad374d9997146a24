package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dragonfly_display"

// Metrics implements every hook interface with Prometheus collectors.
type Metrics struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	layers        *prometheus.HistogramVec
	writes        *prometheus.CounterVec
	writeBytes    *prometheus.CounterVec
	cache         *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "builds_total",
			Help: "Visualization sets built, by kind and status.",
		}, []string{"kind", "status"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "build_duration_seconds",
			Help: "Time spent building visualization sets.", Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		layers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "build_layers",
			Help: "Layers per visualization set.", Buckets: prometheus.LinearBuckets(0, 4, 8),
		}, []string{"kind"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "writes_total",
			Help: "Serialized outputs, by format and status.",
		}, []string{"format", "status"}),
		writeBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "write_bytes_total",
			Help: "Bytes of serialized output, by format.",
		}, []string{"format"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_events_total",
			Help: "Cache hits, misses and sets, by key type.",
		}, []string{"key_type", "event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help: "HTTP request latency.", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.builds, m.buildDuration, m.layers, m.writes, m.writeBytes, m.cache, m.requests, m.reqDuration)
	return m
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnBuildStart(context.Context, string) {}

func (m *Metrics) OnBuildComplete(_ context.Context, kind string, layers int, d time.Duration, err error) {
	m.builds.WithLabelValues(kind, status(err)).Inc()
	if err == nil {
		m.buildDuration.WithLabelValues(kind).Observe(d.Seconds())
		m.layers.WithLabelValues(kind).Observe(float64(layers))
	}
}

func (m *Metrics) OnWriteStart(context.Context, string) {}

func (m *Metrics) OnWriteComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	m.writes.WithLabelValues(format, status(err)).Inc()
	if err == nil {
		m.writeBytes.WithLabelValues(format).Add(float64(size))
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cache.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
