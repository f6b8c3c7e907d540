package app

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/dispatcher"
)

func newTestApp(t *testing.T, opts Options) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	opts.Screen = screen
	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app, screen
}

func runAsync(app *Application) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- app.Run()
	}()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not stop")
		return nil
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockstorm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	assert.Equal(t, config.Default().Editor, app.Config().Editor)
	assert.Equal(t, 1, app.Store().Snapshot().Len())
	assert.NotNil(t, app.View())
	assert.NotNil(t, app.Dispatcher())
	assert.Empty(t, app.MetricsAddr())
	assert.False(t, app.IsRunning())
}

func TestNewAppliesOverrides(t *testing.T) {
	path := writeConfig(t, "editor:\n  command_key: \"#\"\nlog:\n  level: warn\n")
	app, _ := newTestApp(t, Options{
		ConfigPath: path,
		Environ:    []string{"BLOCKSTORM_EDITOR_FOCUS_AFTER_SPLIT=end"},
		LogLevel:   "debug",
	})

	cfg := app.Config()
	assert.Equal(t, "#", cfg.Editor.CommandKey)
	assert.Equal(t, "end", cfg.Editor.FocusAfterSplit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, '#', app.Dispatcher().Config().CommandKey)
	assert.Equal(t, dispatcher.PlaceEnd, app.Dispatcher().Config().FocusAfterSplit)
}

func TestNewRejectsBadConfig(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	path := writeConfig(t, "editor:\n  focus_after_split: middle\n")

	_, err := New(Options{ConfigPath: path, Screen: screen})
	require.Error(t, err)
	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "config", initErr.Component)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "editor.log")
	app, _ := newTestApp(t, Options{Environ: []string{"BLOCKSTORM_LOG_FILE=" + logPath}})
	app.Shutdown()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "editor ready")
	assert.Contains(t, string(data), "shutdown complete")
}

func TestRunTypesIntoDocument(t *testing.T) {
	app, screen := newTestApp(t, Options{})
	done := runAsync(app)

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	require.NoError(t, wait(t, done))

	snap := app.Store().Snapshot()
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "hi", snap.At(0).Content)
	assert.Equal(t, "x", snap.At(1).Content)
	assert.False(t, app.IsRunning())
}

func TestRunStopsOnShutdown(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	done := runAsync(app)

	require.Eventually(t, app.IsRunning, time.Second, time.Millisecond)
	app.Shutdown()
	require.NoError(t, wait(t, done))
	assert.ErrorIs(t, app.Run(), ErrClosed)
}

func TestShutdownWhileTyping(t *testing.T) {
	app, screen := newTestApp(t, Options{})
	done := runAsync(app)
	require.Eventually(t, app.IsRunning, time.Second, time.Millisecond)

	typing := make(chan struct{})
	go func() {
		defer close(typing)
		for i := 0; i < 200; i++ {
			screen.InjectKey(tcell.KeyRune, '/', tcell.ModNone)
			screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
		}
	}()

	app.Shutdown()
	require.NoError(t, wait(t, done))
	select {
	case <-typing:
	case <-time.After(5 * time.Second):
		t.Fatal("typing did not stop after shutdown")
	}
	assert.False(t, app.IsRunning())
	assert.Zero(t, app.Dispatcher().Listeners().Len())
}

func TestStopEndsRun(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	done := runAsync(app)
	require.Eventually(t, app.IsRunning, time.Second, time.Millisecond)

	app.Stop()
	require.NoError(t, wait(t, done))
	assert.False(t, app.IsRunning())

	// The application stays usable until Shutdown.
	res := app.Import("after stop")
	assert.True(t, res.IsOK())
}

func TestStopWithoutRunIsNoop(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.Stop()
	app.Shutdown()
	assert.ErrorIs(t, app.Run(), ErrClosed)
}

func TestWakeAtPostsInterrupt(t *testing.T) {
	app, screen := newTestApp(t, Options{})

	app.wakeAt(time.Now())
	ev := screen.PollEvent()
	_, ok := ev.(*tcell.EventInterrupt)
	assert.True(t, ok)
}

func TestImportAppendsParagraphs(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	res := app.Import("one", "two")
	require.True(t, res.IsOK())
	snap := app.Store().Snapshot()
	require.Equal(t, 3, snap.Len())
	assert.Equal(t, "one", snap.At(1).Content)
	assert.Equal(t, block.TagParagraph, snap.At(2).Tag)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, Options{MetricsAddr: "127.0.0.1:0"})
	require.NotEmpty(t, app.MetricsAddr())
	app.Import("scraped")

	resp, err := http.Get("http://" + app.MetricsAddr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `blockstorm_dispatch_total{intent="import",status="ok"} 1`)
	assert.Contains(t, string(body), "blockstorm_dismiss_listeners 0")
}
