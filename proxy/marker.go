package proxy

import "reflect"

type marked interface {
	proxyBinding() *binding
}

var markedType = reflect.TypeFor[marked]()

// IsProxy reports whether v was created by CreateProxy. It never fails: nil, typed
// nil pointers and unrelated values all report false.
func IsProxy(v any) bool {
	return bindingOf(v) != nil
}

func bindingOf(v any) *binding {
	m, ok := v.(marked)
	if !ok {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return m.proxyBinding()
}

// Base returns the base portion of a proxy: the value built by the construction
// strategy, whose methods InvokeDefault runs. It reports false for non-proxies and
// for interface proxies built without a constructor.
func Base(v any) (any, bool) {
	b := bindingOf(v)
	if b == nil || !b.base.IsValid() {
		return nil, false
	}
	return b.base.Interface(), true
}

// Unwrap follows base portions until it reaches a value that is not a proxy.
func Unwrap(v any) any {
	for {
		base, ok := Base(v)
		if !ok {
			return v
		}
		v = base
	}
}

// Final marks a struct type as non-extensible: embedding it makes CreateProxy and
// proxygen reject the type.
type Final struct{}

func (Final) finalTarget() {}

type finalMarker interface {
	finalTarget()
}

var finalType = reflect.TypeFor[finalMarker]()
