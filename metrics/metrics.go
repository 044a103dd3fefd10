package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records simulation loop and interaction metrics.
// A nil *Collector is valid and records nothing.
type Collector struct {
	tickDuration *prometheus.HistogramVec
	ticksTotal   *prometheus.CounterVec
	eventsTotal  *prometheus.CounterVec
	zoom         prometheus.Gauge
	focused      prometheus.Gauge
	speed        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewCollector registers the orrery metrics on reg
func NewCollector(reg *prometheus.Registry) *Collector {
	m := &Collector{
		tickDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orrery_tick_duration_seconds",
				Help:    "Time spent in one loop tick",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"loop"},
		),
		ticksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_ticks_total",
				Help: "Total number of loop ticks",
			},
			[]string{"loop"},
		),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_events_total",
				Help: "User intents processed, by outcome",
			},
			[]string{"event", "result"},
		),
		zoom: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_camera_zoom",
			Help: "Current interpolated camera zoom",
		}),
		focused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_camera_focused",
			Help: "1 while a body is focused",
		}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_speed_multiplier",
			Help: "Simulation speed multiplier",
		}),
		gatherer: reg,
	}

	reg.MustRegister(m.tickDuration, m.ticksTotal, m.eventsTotal, m.zoom, m.focused, m.speed)
	return m
}

// RecordTick counts one tick of loop and observes its duration
func (m *Collector) RecordTick(loop string, d time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.WithLabelValues(loop).Observe(d.Seconds())
	m.ticksTotal.WithLabelValues(loop).Inc()
}

// RecordEvent counts an intent as ok or rejected
func (m *Collector) RecordEvent(event string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.eventsTotal.WithLabelValues(event, result).Inc()
}

// ObserveCamera sets the zoom and focus gauges
func (m *Collector) ObserveCamera(zoom float64, focused bool) {
	if m == nil {
		return
	}
	m.zoom.Set(zoom)
	if focused {
		m.focused.Set(1)
	} else {
		m.focused.Set(0)
	}
}

// ObserveSpeed sets the speed multiplier gauge
func (m *Collector) ObserveSpeed(multiplier float64) {
	if m == nil {
		return
	}
	m.speed.Set(multiplier)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
