package proxy

import (
	"fmt"
	"reflect"
)

// binding is the per-instance state a proxy carries. It is created once by
// CreateProxy and never modified afterwards.
type binding struct {
	handler Handler
	methods map[string]*Method
	base    reflect.Value // invalid when the proxy has no base portion
	shell   *Shell
}

// Core is embedded in every synthesized proxy type. It marks the type as a proxy and
// holds the handler binding. A zero Core is not usable; cores are only handed out by
// CreateProxy through a Shell's constructor.
type Core struct {
	b *binding
}

func (c Core) proxyBinding() *binding { return c.b }

// Dispatch routes a call made on a synthesized proxy to its handler. self is the
// proxy, name the method name and args the call's arguments. The returned slice has
// one entry per declared result, already converted to the declared result types.
func Dispatch(c Core, self any, name string, args ...any) []any {
	if c.b == nil {
		panic(fmt.Sprintf("proxy: %T was not created by CreateProxy", self))
	}
	m, ok := c.b.methods[name]
	if !ok {
		panic(fmt.Sprintf("proxy: %T has no dispatch entry for %s; regenerate its shell", self, name))
	}
	p := &pipe{b: c.b, self: self, m: m, args: args}
	return m.coerce(c.b.handler.Invoke(self, p, m, args))
}

type pipe struct {
	b    *binding
	self any
	m    *Method
	args []any
}

func (p *pipe) arguments(override []any) []any {
	if len(override) == 0 {
		return p.args
	}
	return override
}

func (p *pipe) InvokeDefault(args ...any) (any, error) {
	args = p.arguments(args)
	if p.b.base.IsValid() {
		if fn := p.b.base.MethodByName(p.m.Name); fn.IsValid() && sameSignature(fn.Type(), p.m.Type) {
			return p.m.call(fn, args)
		}
	}
	if p.m.universal() {
		return identityDefault(p.self, p.m, args)
	}
	return nil, fmt.Errorf("%w for %s", ErrNoDefault, p.m)
}

func (p *pipe) InvokeOn(real any, args ...any) (any, error) {
	if real == nil {
		return nil, &IncompatibleTargetError{Method: p.m, Reason: "nil target"}
	}
	if bindingOf(real) == p.b {
		return p.InvokeDefault(args...)
	}
	args = p.arguments(args)

	rv := reflect.ValueOf(real)
	fn := rv.MethodByName(p.m.Name)
	if !fn.IsValid() && rv.Kind() != reflect.Pointer {
		// Pointer-receiver methods are only reachable through an addressable copy.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		fn = ptr.MethodByName(p.m.Name)
	}
	if !fn.IsValid() {
		if p.m.universal() {
			return valueDefault(real, p.m, args)
		}
		return nil, &IncompatibleTargetError{Method: p.m, Target: rv.Type(), Reason: "method not implemented"}
	}
	if !sameSignature(fn.Type(), p.m.Type) {
		return nil, &IncompatibleTargetError{Method: p.m, Target: rv.Type(), Reason: "signature " + fn.Type().String()}
	}
	return p.m.call(fn, args)
}

// identityDefault serves the Object methods for a proxy whose base portion does not
// implement them: identity equality, an address hash and a Type@hash string.
func identityDefault(self any, m *Method, args []any) (any, error) {
	switch m.Name {
	case "Equal":
		return len(args) == 1 && safeEqual(self, args[0]), nil
	case "Hash":
		return hashOf(self), nil
	case "String":
		return fmt.Sprintf("%s@%x", reflect.TypeOf(self), hashOf(self)), nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNoDefault, m)
}

// valueDefault serves the Object methods for a plain value that lacks them.
func valueDefault(v any, m *Method, args []any) (any, error) {
	switch m.Name {
	case "Equal":
		return len(args) == 1 && safeEqual(v, args[0]), nil
	case "Hash":
		return hashOf(v), nil
	case "String":
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNoDefault, m)
}
