package intercept

import (
	"reflect"

	"github.com/chazu/interpose/proxy"
)

// method describes a method with fn's signature for driving handlers directly.
func method(name string, fn any) *proxy.Method {
	t := reflect.TypeOf(fn)
	m := &proxy.Method{Name: name, Type: t, Variadic: t.IsVariadic()}
	for i := range t.NumIn() {
		m.Params = append(m.Params, t.In(i))
	}
	for i := range t.NumOut() {
		m.Results = append(m.Results, t.Out(i))
	}
	return m
}

// recordingPipe captures the arguments it is piped with.
type recordingPipe struct {
	args []any
	real any
}

func (p *recordingPipe) InvokeDefault(args ...any) (any, error) {
	p.args = args
	return "default", nil
}

func (p *recordingPipe) InvokeOn(real any, args ...any) (any, error) {
	p.real, p.args = real, args
	return "on", nil
}

// echo answers every call with its arguments.
var echo = proxy.HandlerFunc(func(_ any, _ proxy.Pipe, _ *proxy.Method, args []any) (any, error) {
	return args, nil
})

func failing(err error) proxy.Handler {
	return proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
		return nil, err
	})
}
