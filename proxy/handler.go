package proxy

// Handler answers every call made on a proxy.
//
// self is the proxy instance the call was made on, pipe gives access to the real
// behaviour of the method being dispatched, m describes that method and args holds
// the call's arguments (a variadic parameter arrives as a single slice).
//
// The returned value follows the package result convention: nil for a method without
// non-error results, the value itself for one result, a Tuple for several. The
// returned error lands in the method's trailing error result; for a method without
// one the error is raised as a panic on the calling goroutine.
type Handler interface {
	Invoke(self any, pipe Pipe, m *Method, args []any) (any, error)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(self any, pipe Pipe, m *Method, args []any) (any, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(self any, pipe Pipe, m *Method, args []any) (any, error) {
	return f(self, pipe, m, args)
}

// Pipe forwards the call currently being dispatched to a real implementation.
// Passing no arguments reuses the arguments of the current call.
type Pipe interface {
	// InvokeDefault runs the base portion's own implementation of the method,
	// without re-entering the handler.
	InvokeDefault(args ...any) (any, error)

	// InvokeOn runs the same method on real. When real is the proxy itself the
	// call is served by InvokeDefault instead.
	InvokeOn(real any, args ...any) (any, error)
}

// Tuple carries the non-error results of a method that declares more than one.
type Tuple []any
