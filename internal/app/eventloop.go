package app

import (
	"errors"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Run renders the document and processes terminal events until the user
// quits, Stop is called or Shutdown begins. Each turn handles one event,
// renders the committed snapshot, then runs the turn queue and renders
// again if any deferred work ran. All document, dispatcher and view state
// is touched from the goroutine calling Run only.
func (app *Application) Run() (err error) {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	app.loopMu.Lock()
	defer func() {
		app.running.Store(false)
		app.loopMu.Unlock()
		var panicErr *RecoveredPanicError
		if errors.As(err, &panicErr) {
			app.Shutdown()
		}
	}()
	if app.closed.Load() {
		return ErrClosed
	}

	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			app.logger.Error("event loop panic: %v", r)
			err = &RecoveredPanicError{Value: r, Stack: string(buf[:n])}
		}
	}()

	app.render()
	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !app.handle(ev) {
			app.logger.Info("quit requested")
			return nil
		}
		app.render()
		if app.queue.RunPending() > 0 {
			app.render()
		}
	}
}

// handle dispatches one event. It returns false when the editor should
// quit.
func (app *Application) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		app.metrics.RecordEvent("interrupt")
		_, stop := e.Data().(stopRequest)
		return !stop
	case *tcell.EventKey:
		app.metrics.RecordEvent("key")
	case *tcell.EventMouse:
		app.metrics.RecordEvent("mouse")
	case *tcell.EventPaste:
		app.metrics.RecordEvent("paste")
	case *tcell.EventResize:
		app.metrics.RecordEvent("resize")
	default:
		app.metrics.RecordEvent("other")
	}
	return app.view.HandleEvent(ev)
}

func (app *Application) render() {
	start := time.Now()
	app.view.Render()
	app.metrics.RecordFrame(time.Since(start))
}
