// Package app wires the document core, the terminal front-end, logging and
// metrics together and runs the editor's event loop.
package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/logging"
	"github.com/dshills/blockstorm/internal/terminal"
	"github.com/dshills/blockstorm/internal/turn"
)

// Application owns every component of a running editor.
type Application struct {
	config *config.Config
	logger *logging.Logger
	logOut io.Closer

	store      *document.Store
	queue      *turn.Queue
	dispatcher *dispatcher.Dispatcher

	registry      *prometheus.Registry
	metrics       *Metrics
	metricsServer *http.Server
	metricsAddr   string

	screen tcell.Screen
	view   *terminal.View

	wakeMu sync.Mutex
	wakers map[*time.Timer]struct{}

	// loopMu is held by Run for as long as the event loop runs. Shutdown
	// takes it so teardown never overlaps a turn.
	loopMu  sync.Mutex
	running atomic.Bool
	closed  atomic.Bool
	once    sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is a YAML configuration file. Empty uses the defaults.
	ConfigPath string

	// Environ supplies BLOCKSTORM_* overrides in os.Environ form.
	Environ []string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// MetricsAddr overrides the configured metrics address when set.
	MetricsAddr string

	// Screen replaces the terminal screen. Tests pass a simulation screen.
	Screen tcell.Screen
}

// New creates an application with all components initialized. Shutdown
// must be called to release the terminal.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		wakers: make(map[*time.Timer]struct{}),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Store returns the document store.
func (app *Application) Store() *document.Store {
	return app.store
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// View returns the terminal view.
func (app *Application) View() *terminal.View {
	return app.view
}

// Registry returns the Prometheus registry all collectors live in.
func (app *Application) Registry() *prometheus.Registry {
	return app.registry
}

// MetricsAddr returns the address /metrics is served on, or "" when the
// endpoint is disabled.
func (app *Application) MetricsAddr() string {
	return app.metricsAddr
}

// IsRunning returns true while the event loop runs.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Import appends plain-text paragraphs to the document, one block each.
func (app *Application) Import(paragraphs ...string) dispatcher.Result {
	items := make([]block.Block, len(paragraphs))
	for i, p := range paragraphs {
		items[i] = block.Block{Content: p, Tag: app.store.DefaultTag()}
	}
	return app.dispatcher.Import(items...)
}

// stopRequest is the interrupt payload that makes the event loop return.
type stopRequest struct{}

// Stop asks a running event loop to return after the current turn. It may
// be called from any goroutine.
func (app *Application) Stop() {
	for app.running.Load() && app.screen != nil {
		if app.screen.PostEvent(tcell.NewEventInterrupt(stopRequest{})) == nil {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// Shutdown stops a running event loop and waits for it to return, then
// stops timers and the metrics endpoint, releases the terminal and closes
// the log. It is safe to call more than once and from any goroutine other
// than the loop's.
func (app *Application) Shutdown() {
	app.closed.Store(true)
	app.Stop()
	app.loopMu.Lock()
	defer app.loopMu.Unlock()

	app.once.Do(func() {
		app.stopWakers()
		if app.dispatcher != nil {
			app.dispatcher.Close()
		}
		if app.metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := app.metricsServer.Shutdown(ctx); err != nil {
				app.logger.Warn("metrics server shutdown: %v", err)
			}
			cancel()
		}
		if app.screen != nil {
			app.screen.Fini()
		}
		app.logger.Info("shutdown complete")
		if app.logOut != nil {
			app.logOut.Close()
		}
	})
}

// serveMetrics starts the /metrics endpoint on addr.
func (app *Application) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))
	app.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	app.metricsAddr = ln.Addr().String()
	go func() {
		if err := app.metricsServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			app.logger.Error("metrics server: %v", err)
		}
	}()
	app.logger.Info("serving metrics on %s", app.metricsAddr)
	return nil
}
