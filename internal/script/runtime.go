package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// DefaultTimeout bounds a single Run or RunFile call.
const DefaultTimeout = 5 * time.Second

// Runtime executes Lua code bound to a single buffer.
//
// gopher-lua's LState is not goroutine-safe, and neither is the buffer, so a
// Runtime must be used from one goroutine.
type Runtime struct {
	L   *lua.LState
	buf *buffer.Buffer

	timeout time.Duration
	out     io.Writer
	logger  *slog.Logger

	closed bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout sets the time limit per execution. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithOutput redirects Lua print output.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets the runtime's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a runtime bound to buf.
func New(buf *buffer.Buffer, opts ...Option) *Runtime {
	r := &Runtime{
		buf:     buf,
		timeout: DefaultTimeout,
		out:     os.Stdout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	openSafeLibraries(r.L)
	r.installPrint()
	newBufferModule(buf).register(r.L)

	return r
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	// Open safe libraries
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.
	// File access goes through buf.load and buf.save only.
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installPrint replaces print so output goes to the configured writer.
func (r *Runtime) installPrint() {
	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(r.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Run executes a Lua chunk.
// Execution is synchronous - the call blocks until completion or error.
func (r *Runtime) Run(code string) error {
	return r.do("<string>", func() error {
		return r.L.DoString(code)
	})
}

// RunFile executes a Lua file.
func (r *Runtime) RunFile(path string) error {
	return r.do(path, func() error {
		return r.L.DoFile(path)
	})
}

// do executes fn under the time limit with panic recovery.
func (r *Runtime) do(source string, fn func() error) (err error) {
	if r.closed {
		return ErrClosed
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic in %s: %v", source, p)
		}
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, r.timeout, err)
		}
		if err != nil {
			r.logger.Warn("script failed", slog.String("source", source), slog.Any("error", err))
		}
	}()

	start := time.Now()
	err = fn()
	r.logger.Debug("script finished", slog.String("source", source), slog.Duration("elapsed", time.Since(start)))
	return err
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}
