package proxy

import (
	"fmt"
	"reflect"
)

// Builder describes a proxy to create. Builders are values: every With method
// returns a new Builder and leaves the receiver untouched, so partially configured
// builders can be shared and extended independently.
//
//	p, err := proxy.For[Store](handler).
//		WithInterface(proxy.Interface[io.Closer]()).
//		WithConstructor(NewStore, "memory").
//		CreateProxy()
type Builder struct {
	base       reflect.Type
	interfaces *typeList
	construct  *construction
	handler    Handler
}

// typeList is a persistent list of interface types, newest first.
type typeList struct {
	t    reflect.Type
	next *typeList
}

// New starts a builder for proxies of base, a struct type (or pointer to one) or an
// interface type, whose calls are answered by h.
func New(base reflect.Type, h Handler) Builder {
	return Builder{base: base, handler: h}
}

// For is New for the static type T.
func For[T any](h Handler) Builder {
	return New(reflect.TypeFor[T](), h)
}

// Interface returns the reflect.Type of interface I, for use with WithInterface.
func Interface[I any]() reflect.Type {
	return reflect.TypeFor[I]()
}

// WithInterface adds an interface the proxy must implement. The type is only
// checked by CreateProxy.
func (b Builder) WithInterface(iface reflect.Type) Builder {
	b.interfaces = &typeList{t: iface, next: b.interfaces}
	return b
}

// WithConstructor replaces the construction strategy of the base portion. ctor is a
// function returning the base struct, a pointer to it or, for interface bases, an
// implementation of the interface, optionally followed by an error. args are bound
// now and matched against ctor's parameters by CreateProxy.
func (b Builder) WithConstructor(ctor any, args ...any) Builder {
	b.construct = &construction{ctor: ctor, args: append([]any(nil), args...)}
	return b
}

// WithProxyNeverEqualsTarget answers Equal and Hash from witness such that a proxy
// only ever equals another proxy whose witness is equal, never a plain value. The
// hash is 31 times the witness hash.
func (b Builder) WithProxyNeverEqualsTarget(witness any) Builder {
	b.handler = &identityPolicy{witness: witness, next: b.handler}
	return b
}

// WithProxyCanEqualTarget answers Equal and Hash by delegating to witness, so a proxy
// and a plain value are equal exactly when the witness says so. A proxy always
// equals itself, and two proxies are equal when their witnesses are.
func (b Builder) WithProxyCanEqualTarget(witness any) Builder {
	b.handler = &identityPolicy{witness: witness, canEqualTarget: true, next: b.handler}
	return b
}

// Base returns the base type the builder was started with.
func (b Builder) Base() reflect.Type {
	return b.base
}

// Interfaces returns the added interfaces in the order they were added.
func (b Builder) Interfaces() []reflect.Type {
	var out []reflect.Type
	for l := b.interfaces; l != nil; l = l.next {
		out = append(out, l.t)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// CreateProxy synthesizes the proxy. It fails with an *IllegalTargetError,
// *InaccessibleTargetError or *MissingConstructorError, or with the error returned
// by the constructor, and never returns a partially built proxy.
func (b Builder) CreateProxy() (any, error) {
	return synthesize(b)
}

// Create builds the proxy described by b and returns it as V.
func Create[V any](b Builder) (V, error) {
	var zero V
	p, err := b.CreateProxy()
	if err != nil {
		return zero, err
	}
	v, ok := p.(V)
	if !ok {
		return zero, fmt.Errorf("proxy: %T does not implement %s", p, reflect.TypeFor[V]())
	}
	return v, nil
}
