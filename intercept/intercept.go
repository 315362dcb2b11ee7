package intercept

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/chazu/interpose/proxy"
)

// Middleware decorates a handler.
type Middleware func(next proxy.Handler) proxy.Handler

// Chain wraps h in mws. The first middleware sees each call first.
func Chain(h proxy.Handler, mws ...Middleware) proxy.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Delegate returns a handler that forwards every call to real.
func Delegate(real any) proxy.Handler {
	return proxy.HandlerFunc(func(_ any, pipe proxy.Pipe, _ *proxy.Method, _ []any) (any, error) {
		return pipe.InvokeOn(real)
	})
}

// Default returns a handler that runs the base portion's own implementation.
func Default() proxy.Handler {
	return proxy.HandlerFunc(func(_ any, pipe proxy.Pipe, _ *proxy.Method, _ []any) (any, error) {
		return pipe.InvokeDefault()
	})
}

// methodName renders m as Declarer.Name for logs, labels and span names.
func methodName(m *proxy.Method) string {
	if m.Declarer == nil {
		return m.Name
	}
	decl := m.Declarer.Name()
	if decl == "" {
		decl = m.Declarer.String()
	}
	return decl + "." + m.Name
}

// Answer produces the result of a stubbed method.
type Answer func(args []any) (any, error)

// Returns is an Answer that always yields v.
func Returns(v any) Answer {
	return func([]any) (any, error) { return v, nil }
}

// Fails is an Answer that always yields err.
func Fails(err error) Answer {
	return func([]any) (any, error) { return nil, err }
}

// Stub answers the methods named in answers and passes every other call on.
func Stub(answers map[string]Answer) Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			if a, ok := answers[m.Name]; ok {
				return a(args)
			}
			return next.Invoke(self, pipe, m, args)
		})
	}
}

// Call is one call observed by a Recorder.
type Call struct {
	Method string // Declarer.Name
	Args   []any
	Result any
	Err    error
}

// Recorder keeps a log of the calls passing through its middleware. The zero
// value is ready to use and safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Middleware returns the recording middleware.
func (r *Recorder) Middleware() Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			res, err := next.Invoke(self, pipe, m, args)
			r.mu.Lock()
			r.calls = append(r.calls, Call{
				Method: methodName(m),
				Args:   slices.Clone(args),
				Result: res,
				Err:    err,
			})
			r.mu.Unlock()
			return res, err
		})
	}
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Count returns how many recorded calls were made to the method with the given
// name, matched against either the bare name or Declarer.Name.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Method == name || bareName(c.Method) == name {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func bareName(s string) string {
	return s[strings.LastIndexByte(s, '.')+1:]
}

// PanicError is returned by Recover when a handler panics during a method that
// has an error result.
type PanicError struct {
	Method string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("intercept: panic in %s: %v", e.Method, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recover turns a panic raised further down the chain into a *PanicError for
// methods that can report one. Panics in other methods propagate unchanged.
func Recover() Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (res any, err error) {
			if m.ReturnsError() {
				defer func() {
					if v := recover(); v != nil {
						res, err = nil, &PanicError{Method: methodName(m), Value: v}
					}
				}()
			}
			return next.Invoke(self, pipe, m, args)
		})
	}
}
