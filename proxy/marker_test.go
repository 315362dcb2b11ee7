package proxy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/interpose/intercept"
	"github.com/chazu/interpose/proxy"
	"github.com/chazu/interpose/proxy/proxytest"
)

func TestIsProxyNeverFails(t *testing.T) {
	var typedNil proxytest.TargetMethods = (*proxytest.Target)(nil)
	for _, v := range []any{nil, typedNil, 0, "x", &proxytest.Target{}, proxytest.English{}, struct{}{}} {
		assert.False(t, proxy.IsProxy(v), "%#v", v)
	}
}

func TestBaseAndUnwrap(t *testing.T) {
	inner, err := proxy.For[proxytest.Greeter](intercept.Default()).
		WithConstructor(func() proxytest.Greeter { return proxytest.English{} }).
		CreateProxy()
	require.NoError(t, err)

	outer, err := proxy.Create[proxytest.Greeter](proxy.For[proxytest.Greeter](intercept.Default()).
		WithConstructor(func() proxytest.Greeter { return inner.(proxytest.Greeter) }))
	require.NoError(t, err)

	base, ok := proxy.Base(outer)
	require.True(t, ok)
	assert.Same(t, inner, base)
	assert.Equal(t, proxytest.English{}, proxy.Unwrap(outer))
	assert.Equal(t, "hello ann", outer.Greet("ann"))

	_, ok = proxy.Base(proxytest.English{})
	assert.False(t, ok)
	assert.Equal(t, 7, proxy.Unwrap(7))
}

func TestStructBasePortion(t *testing.T) {
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](intercept.Default()))
	require.NoError(t, err)

	p.VoidMethod()
	base, ok := proxy.Base(p)
	require.True(t, ok)
	require.IsType(t, &proxytest.Target{}, base)
	assert.True(t, base.(*proxytest.Target).VoidCalled)
}

func TestRegisteredShells(t *testing.T) {
	var names []string
	for _, s := range proxy.Registered() {
		if s.Base.PkgPath() == "github.com/chazu/interpose/proxy/proxytest" {
			names = append(names, s.Base.Name())
		}
	}
	assert.Equal(t, []string{"Adder", "Empty", "Greeter", "Point", "Target", "Value", "counter"}, names)
}
