package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/menu"
	"github.com/dshills/blockstorm/internal/terminal"
	"github.com/dshills/blockstorm/internal/turn"
)

// bootstrapper initializes components in dependency order and undoes
// the completed steps when a later one fails.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		initOrder: make([]string, 0, 6),
	}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"metrics", b.initMetrics},
		{"document", b.initDocument},
		{"screen", b.initScreen},
		{"view", b.initView},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	b.app.logger.Info("editor ready")
	return nil
}

func (b *bootstrapper) initConfig() error {
	opts := b.app.opts
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(opts.Environ); err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.MetricsAddr != "" {
		cfg.Metrics.Addr = opts.MetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging() error {
	logger, out, err := openLog(b.app.config.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	b.app.logger = logger
	b.app.logOut = out
	return nil
}

func (b *bootstrapper) initMetrics() error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	m, err := NewMetrics(reg)
	if err != nil {
		return err
	}
	b.app.registry = reg
	b.app.metrics = m
	if addr := b.app.config.Metrics.Addr; addr != "" {
		return b.app.serveMetrics(addr)
	}
	return nil
}

func (b *bootstrapper) initDocument() error {
	app := b.app
	app.store = document.New(
		document.WithDefaultTag(block.Tag(app.config.Editor.DefaultTag)),
		document.WithLogger(app.logger),
	)
	app.queue = turn.New(turn.WithWakeup(app.wakeAt))

	listeners := menu.NewListeners()
	dm, err := dispatcher.NewMetrics(app.registry, listeners)
	if err != nil {
		return err
	}
	app.dispatcher = dispatcher.New(app.store, app.queue, dispatcherConfig(app.config),
		dispatcher.WithListeners(listeners),
		dispatcher.WithMetrics(dm),
		dispatcher.WithLogger(app.logger),
	)
	return nil
}

func (b *bootstrapper) initScreen() error {
	screen := b.app.opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	b.app.screen = screen
	return nil
}

func (b *bootstrapper) initView() error {
	app := b.app
	palette, err := app.config.Theme.Palette()
	if err != nil {
		return err
	}
	app.view = terminal.New(app.screen, app.dispatcher,
		terminal.WithTheme(terminal.NewTheme(palette)),
		terminal.WithTags(menuTags(app.config)),
		terminal.WithMouseConfig(mouseConfig(app.config)),
		terminal.WithLogger(app.logger),
	)
	return nil
}

// cleanup releases completed steps in reverse order.
func (b *bootstrapper) cleanup() {
	app := b.app
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "screen":
			app.screen.Fini()
		case "document":
			app.dispatcher.Close()
		case "metrics":
			if app.metricsServer != nil {
				app.metricsServer.Close()
			}
		case "logging":
			if app.logOut != nil {
				app.logOut.Close()
			}
		}
	}
	app.stopWakers()
}

// wakeAt schedules an interrupt event for due so a loop blocked in
// PollEvent runs the timed task.
func (app *Application) wakeAt(due time.Time) {
	app.wakeMu.Lock()
	defer app.wakeMu.Unlock()
	if app.closed.Load() {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(time.Until(due), func() {
		app.wakeMu.Lock()
		delete(app.wakers, t)
		app.wakeMu.Unlock()
		if app.closed.Load() || app.screen == nil {
			return
		}
		app.metrics.RecordWake()
		_ = app.screen.PostEvent(tcell.NewEventInterrupt(due))
	})
	app.wakers[t] = struct{}{}
}

func (app *Application) stopWakers() {
	app.wakeMu.Lock()
	defer app.wakeMu.Unlock()
	for t := range app.wakers {
		t.Stop()
		delete(app.wakers, t)
	}
}
