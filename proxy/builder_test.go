package proxy_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/interpose/intercept"
	"github.com/chazu/interpose/proxy"
	"github.com/chazu/interpose/proxy/proxytest"
)

type handlerKind int

const (
	reflecting handlerKind = iota
	delegating
)

type targetCase struct {
	name   string
	kind   handlerKind
	proxy  proxytest.TargetMethods
	target *proxytest.Target
}

// targetCases builds one proxy per canonical handler, each with its own target.
func targetCases(t *testing.T) []targetCase {
	t.Helper()
	var cases []targetCase
	for _, tc := range []struct {
		name string
		kind handlerKind
		h    func(any) proxy.Handler
	}{
		{"reflecting proxy", reflecting, proxytest.ReflectingHandler},
		{"delegating proxy", delegating, intercept.Delegate},
	} {
		target := &proxytest.Target{}
		p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](tc.h(target)))
		require.NoError(t, err)
		cases = append(cases, targetCase{name: tc.name, kind: tc.kind, proxy: p, target: target})
	}
	return cases
}

func TestProxyCalls(t *testing.T) {
	for _, tc := range targetCases(t) {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 3, tc.proxy.Add(1, 2))
			assert.Equal(t, "noArg", tc.proxy.NoArgMethod())

			tc.proxy.VoidMethod()
			assert.True(t, tc.target.VoidCalled)

			err := tc.proxy.Exception()
			require.Error(t, err)
			switch tc.kind {
			case reflecting:
				var inv *proxytest.InvocationError
				require.ErrorAs(t, err, &inv)
				assert.Same(t, proxytest.ErrTarget, inv.Err)
			case delegating:
				assert.Same(t, proxytest.ErrTarget, err)
			}

			assert.Equal(t, uint64(42), tc.proxy.Hash())
			assert.Equal(t, "four two", tc.proxy.String())
			assert.Equal(t, "four two", fmt.Sprint(tc.proxy))
		})
	}
}

func TestProxyResultShapes(t *testing.T) {
	for _, tc := range targetCases(t) {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 6, tc.proxy.Sum(1, 2, 3))
			assert.Equal(t, 0, tc.proxy.Sum())

			q, err := tc.proxy.Divide(7, 2)
			require.NoError(t, err)
			assert.Equal(t, 3, q)

			_, err = tc.proxy.Divide(1, 0)
			assert.Error(t, err)

			q, r := tc.proxy.DivMod(7, 2)
			assert.Equal(t, 3, q)
			assert.Equal(t, 1, r)
		})
	}
}

func TestIsProxy(t *testing.T) {
	for _, tc := range targetCases(t) {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, proxy.IsProxy(tc.proxy))
			assert.False(t, proxy.IsProxy(tc.target))
		})
	}
	assert.False(t, proxy.IsProxy(nil))
	assert.False(t, proxy.IsProxy(42))
}

func TestHandlerReceivesProxy(t *testing.T) {
	h := proxy.HandlerFunc(func(self any, _ proxy.Pipe, _ *proxy.Method, args []any) (any, error) {
		return len(args) == 1 && self == args[0], nil
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	assert.True(t, p.IsSameProxy(p))
	assert.False(t, p.IsSameProxy(&proxytest.Target{}))
}

func TestHandlerSeesMethod(t *testing.T) {
	var seen []*proxy.Method
	h := proxy.HandlerFunc(func(_ any, pipe proxy.Pipe, m *proxy.Method, _ []any) (any, error) {
		seen = append(seen, m)
		return pipe.InvokeDefault()
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	assert.Equal(t, 5, p.Add(2, 3))
	require.Len(t, seen, 1)
	m := seen[0]
	assert.Equal(t, "Add", m.Name)
	assert.Equal(t, reflect.TypeFor[proxytest.Target](), m.Declarer)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[int](), reflect.TypeFor[int]()}, m.Params)
	assert.Equal(t, "Target.Add(int, int) int", m.String())
	assert.False(t, m.ReturnsError())
}

func TestCustomError(t *testing.T) {
	custom := errors.New("custom")
	h := proxy.HandlerFunc(func(_ any, pipe proxy.Pipe, m *proxy.Method, _ []any) (any, error) {
		if m.Name == "Exception" {
			return nil, custom
		}
		return pipe.InvokeDefault()
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	assert.Same(t, custom, p.Exception())
	assert.Equal(t, 3, p.Add(1, 2))
}

func TestErrorWithoutErrorResultPanics(t *testing.T) {
	custom := errors.New("custom")
	h := proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
		return nil, custom
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	defer func() {
		assert.Same(t, custom, recover())
	}()
	p.NoArgMethod()
	t.Fatal("NoArgMethod returned")
}

func TestResultTypeMismatch(t *testing.T) {
	h := proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
		return "not a number", nil
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	_, err = p.Divide(1, 1)
	var rerr *proxy.ResultError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, proxy.ErrResultType)
	assert.Equal(t, 0, rerr.Index)

	defer func() {
		err, _ := recover().(error)
		assert.ErrorIs(t, err, proxy.ErrResultType, "Add has no error result")
	}()
	p.Add(1, 1)
	t.Fatal("Add returned")
}

func TestLossyResultIsMismatch(t *testing.T) {
	for _, res := range []any{3.7, uint64(1 << 63), "3"} {
		h := proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
			return res, nil
		})
		p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
		require.NoError(t, err)

		q, err := p.Divide(1, 1)
		assert.ErrorIs(t, err, proxy.ErrResultType, "%T", res)
		assert.Zero(t, q)
	}

	widened := proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
		return int16(-7), nil
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](widened))
	require.NoError(t, err)
	assert.Equal(t, -7, p.Add(0, 0))
}

func TestNilResultIsZero(t *testing.T) {
	h := proxy.HandlerFunc(func(any, proxy.Pipe, *proxy.Method, []any) (any, error) {
		return nil, nil
	})
	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	require.NoError(t, err)

	assert.Equal(t, 0, p.Add(1, 2))
	assert.Equal(t, "", p.NoArgMethod())
	q, r := p.DivMod(1, 1)
	assert.Zero(t, q)
	assert.Zero(t, r)
}

func TestBuilderIsImmutable(t *testing.T) {
	h := intercept.Default()
	b := proxy.For[proxytest.Empty](h)
	b1 := b.WithInterface(proxy.Interface[proxytest.I1]())
	b2 := b.WithInterface(proxy.Interface[proxytest.I2]())
	b12 := b1.WithInterface(proxy.Interface[proxytest.I2]())

	assert.Empty(t, b.Interfaces())
	assert.Equal(t, []reflect.Type{proxy.Interface[proxytest.I1]()}, b1.Interfaces())
	assert.Equal(t, []reflect.Type{proxy.Interface[proxytest.I2]()}, b2.Interfaces())
	assert.Equal(t, []reflect.Type{proxy.Interface[proxytest.I1](), proxy.Interface[proxytest.I2]()}, b12.Interfaces())
	assert.Equal(t, reflect.TypeFor[proxytest.Empty](), b12.Base())

	withCtor := proxy.For[proxytest.Adder](h).WithConstructor(proxytest.NewAdder, 1)
	_, err := proxy.For[proxytest.Adder](h).WithConstructor(proxytest.NewAdder).CreateProxy()
	require.ErrorIs(t, err, proxy.ErrMissingConstructor)
	_, err = withCtor.CreateProxy()
	require.NoError(t, err)
}

func TestConstructorArgsAreCopied(t *testing.T) {
	args := []any{1}
	b := proxy.For[proxytest.Adder](intercept.Default()).WithConstructor(proxytest.NewAdder, args...)
	args[0] = "changed"

	p, err := proxy.Create[interface{ Add(int) int }](b)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Add(2))
}

func TestWithArgConstructor(t *testing.T) {
	for _, tc := range []struct {
		name string
		h    func(any) proxy.Handler
	}{
		{"reflecting proxy", proxytest.ReflectingHandler},
		{"delegating proxy", intercept.Delegate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			target := proxytest.NewAdder(1)
			p, err := proxy.Create[interface {
				Add(int) int
				NoArgMethod() string
			}](proxy.For[proxytest.Adder](tc.h(target)).WithConstructor(proxytest.NewAdder, 0))
			require.NoError(t, err)

			assert.Equal(t, 3, p.Add(2))
			assert.Equal(t, "noArg", p.NoArgMethod())
		})
	}
}

func TestCreateRejectsWrongView(t *testing.T) {
	_, err := proxy.Create[interface{ Missing() }](proxy.For[proxytest.Target](intercept.Default()))
	assert.Error(t, err)
}
