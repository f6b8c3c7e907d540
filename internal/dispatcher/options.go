package dispatcher

import (
	"github.com/dshills/blockstorm/internal/focus"
	"github.com/dshills/blockstorm/internal/logging"
	"github.com/dshills/blockstorm/internal/menu"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSurface attaches the caret and selection source.
func WithSurface(s Surface) Option {
	return func(d *Dispatcher) {
		d.surface = s
	}
}

// WithCoordinator attaches the caret placement target.
func WithCoordinator(c focus.Coordinator) Option {
	return func(d *Dispatcher) {
		d.coordinator = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics enables metric collection.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithListeners shares a dismiss-listener registry.
func WithListeners(l *menu.Listeners) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.listeners = l
		}
	}
}
