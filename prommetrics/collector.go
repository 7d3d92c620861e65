// Package prommetrics exports geovec metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, err := prommetrics.New(reg)
//	...
//	ctx, err := geovec.Init(eng, geovec.WithMetricsCollector(mc))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/geovec"
)

const namespace = "geovec"

// Collector implements geovec.MetricsCollector on top of Prometheus
// collectors.
type Collector struct {
	latency  *prometheus.HistogramVec
	elements *prometheus.CounterVec
	notices  *prometheus.CounterVec
	handles  *prometheus.CounterVec
	live     prometheus.Gauge
}

var _ geovec.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers it with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Latency of ufunc calls",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_elements_total",
			Help:      "Output positions processed by ufunc calls",
		}, []string{"op"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_notices_total",
			Help:      "Engine notices received",
		}, []string{"op"}),
		handles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geometry_handles_total",
			Help:      "Geometry handle lifecycle events",
		}, []string{"event"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geometry_handles_live",
			Help:      "Geometry handles currently owning an engine pointer",
		}),
	}

	for _, col := range []prometheus.Collector{c.latency, c.elements, c.notices, c.handles, c.live} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) RecordDispatch(op string, elements int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.latency.WithLabelValues(op, status).Observe(duration.Seconds())
	c.elements.WithLabelValues(op).Add(float64(elements))
}

func (c *Collector) RecordNotice(op string) {
	c.notices.WithLabelValues(op).Inc()
}

func (c *Collector) RecordHandle(event geovec.HandleEvent) {
	c.handles.WithLabelValues(event.String()).Inc()
	switch event {
	case geovec.HandleCreated:
		c.live.Inc()
	case geovec.HandleReleased, geovec.HandleCollected:
		c.live.Dec()
	}
}
