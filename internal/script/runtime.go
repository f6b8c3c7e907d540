package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/logging"
)

// DefaultTimeout bounds a script run unless WithTimeout says otherwise.
const DefaultTimeout = 5 * time.Second

// Runtime runs Lua scripts against a document store.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes runs; a
// Runtime should still be owned by one goroutine.
type Runtime struct {
	L *lua.LState

	mu      sync.Mutex
	store   *document.Store
	timeout time.Duration
	output  io.Writer
	logger  *logging.Logger
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout bounds each run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		if w != nil {
			r.output = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a sandboxed runtime bound to store. The global doc table
// exposes the store operations.
func New(store *document.Store, opts ...Option) *Runtime {
	r := &Runtime{
		store:   store,
		timeout: DefaultTimeout,
		output:  io.Discard,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	r.L.SetGlobal("doc", r.L.SetFuncs(r.L.NewTable(), newDocModule(store).funcs()))
	return r
}

// openSafeLibraries opens base, table, string and math, then removes the
// base functions that load code from outside the script.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Run executes code. name labels the chunk in error messages.
func (r *Runtime) Run(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	fn, err := r.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	start := time.Now()
	r.L.Push(fn)
	err = r.doWithRecovery(func() error {
		return r.L.PCall(0, lua.MultRet, nil)
	})
	r.L.SetTop(0)

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.logger.Warn("%s stopped after %s: %v", name, time.Since(start), ctxErr)
		return fmt.Errorf("%w: %s: %w", ErrExecutionTimeout, name, ctxErr)
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	r.logger.Debug("%s finished in %s", name, time.Since(start))
	return nil
}

// RunFile reads and executes a script file.
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, path, string(code))
}

// doWithRecovery executes a function with panic recovery.
func (r *Runtime) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// print writes its arguments tab separated, like the stock Lua print.
func (r *Runtime) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.output, strings.Join(parts, "\t"))
	return 0
}

// Store returns the document store scripts operate on.
func (r *Runtime) Store() *document.Store {
	return r.store
}

// IsClosed returns true if the runtime has been closed.
func (r *Runtime) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close releases the Lua state. Further runs return ErrRuntimeClosed.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}

// IsTimeout reports whether err came from a cancelled or expired run.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrExecutionTimeout)
}
