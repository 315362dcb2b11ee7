package proxytest

import (
	"fmt"
	"reflect"

	"github.com/chazu/interpose/proxy"
)

// InvocationError wraps a failure raised by a reflectively invoked method.
type InvocationError struct {
	Method string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking %s: %v", e.Method, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ReflectingHandler invokes every method on target by reflection, without using the
// pipe. Errors returned by target, and failures to reach the method at all, come
// back wrapped in an *InvocationError.
func ReflectingHandler(target any) proxy.Handler {
	rv := reflect.ValueOf(target)
	return proxy.HandlerFunc(func(self any, _ proxy.Pipe, m *proxy.Method, args []any) (any, error) {
		fn := rv.MethodByName(m.Name)
		if !fn.IsValid() {
			return nil, &InvocationError{Method: m.String(), Err: fmt.Errorf("%T has no method %s", target, m.Name)}
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			if a == nil {
				in[i] = reflect.Zero(m.Params[i])
			} else {
				in[i] = reflect.ValueOf(a)
			}
		}

		var out []reflect.Value
		if m.Variadic {
			out = fn.CallSlice(in)
		} else {
			out = fn.Call(in)
		}

		var err error
		if m.ReturnsError() {
			last := out[len(out)-1]
			out = out[:len(out)-1]
			if !last.IsNil() {
				err = &InvocationError{Method: m.String(), Err: last.Interface().(error)}
			}
		}
		switch len(out) {
		case 0:
			return nil, err
		case 1:
			return out[0].Interface(), err
		}
		t := make(proxy.Tuple, len(out))
		for i, v := range out {
			t[i] = v.Interface()
		}
		return t, err
	})
}
