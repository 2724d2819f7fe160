package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Collector
// ============================================================

// Collector owns a private registry, so several collectors (one per test)
// never clash on registration.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Constraints    *prometheus.CounterVec
	RendersStored  *prometheus.CounterVec
	FramesRecorded prometheus.Counter
	ActiveScenes   prometheus.Gauge
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Constraints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "constraints_resolved_total",
				Help:      "Constraint resolutions by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		RendersStored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_stored_total",
				Help:      "Renders persisted by source",
			},
			[]string{"source"},
		),
		FramesRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_recorded_total",
				Help:      "Keyframes written to the render store",
			},
		),
		ActiveScenes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_scenes",
				Help:      "Scenes currently held in memory",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Constraints,
		c.RendersStored,
		c.FramesRecorded,
		c.ActiveScenes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ConstraintResolved counts one resolution attempt.
func (c *Collector) ConstraintResolved(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.Constraints.WithLabelValues(kind, outcome).Inc()
}

func (c *Collector) RenderStored(source string, frames int) {
	c.RendersStored.WithLabelValues(source).Inc()
	c.FramesRecorded.Add(float64(frames))
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
