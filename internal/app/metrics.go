package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks event loop activity.
type Metrics struct {
	events *prometheus.CounterVec
	frames prometheus.Histogram
	wakes  prometheus.Counter
}

// NewMetrics creates the event loop collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockstorm_terminal_events_total",
				Help: "Terminal events handled by the event loop, by kind.",
			},
			[]string{"kind"},
		),
		frames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blockstorm_render_duration_seconds",
			Help:    "Time spent rendering one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		wakes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockstorm_timer_wakeups_total",
			Help: "Event loop wakeups for timed tasks.",
		}),
	}
	for _, c := range []prometheus.Collector{m.events, m.frames, m.wakes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordEvent counts one handled event.
func (m *Metrics) RecordEvent(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

// RecordFrame records the duration of one render.
func (m *Metrics) RecordFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Observe(d.Seconds())
}

// RecordWake counts one timer wakeup.
func (m *Metrics) RecordWake() {
	if m == nil {
		return
	}
	m.wakes.Inc()
}
