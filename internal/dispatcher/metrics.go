package dispatcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/blockstorm/internal/menu"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	listeners  prometheus.GaugeFunc
}

// NewMetrics creates the dispatch collectors and registers them with reg.
// The listener gauge reports the live size of listeners.
func NewMetrics(reg prometheus.Registerer, listeners *menu.Listeners) (*Metrics, error) {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockstorm_dispatch_total",
				Help: "Total number of dispatched intents by outcome.",
			},
			[]string{"intent", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blockstorm_dispatch_duration_seconds",
				Help:    "Time spent handling an intent.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"intent"},
		),
		listeners: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "blockstorm_dismiss_listeners",
				Help: "Number of registered menu dismiss listeners.",
			},
			func() float64 { return float64(listeners.Len()) },
		),
	}
	for _, c := range []prometheus.Collector{m.dispatches, m.duration, m.listeners} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordDispatch records one handled intent.
func (m *Metrics) RecordDispatch(intent Intent, status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(string(intent), status.String()).Inc()
	m.duration.WithLabelValues(string(intent)).Observe(d.Seconds())
}
