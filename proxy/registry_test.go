package proxy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{}

func (*widget) Spin(n int) int { return n }

type widgetShell struct {
	*widget
	Core
}

func (p *widgetShell) Spin(a0 int) int {
	return Result[int](Dispatch(p.Core, p, "Spin", a0), 0)
}

func (p *widgetShell) Equal(a0 any) bool {
	return Result[bool](Dispatch(p.Core, p, "Equal", a0), 0)
}

func (p *widgetShell) Hash() uint64 {
	return Result[uint64](Dispatch(p.Core, p, "Hash"), 0)
}

func (p *widgetShell) String() string {
	return Result[string](Dispatch(p.Core, p, "String"), 0)
}

// staleShell lacks the Object methods.
type staleShell struct {
	*widget
	Core
}

func (p *staleShell) Spin(a0 int) int {
	return Result[int](Dispatch(p.Core, p, "Spin", a0), 0)
}

type unmarked struct{}

func newWidgetShell(core Core, base any) any {
	w, _ := base.(*widget)
	return &widgetShell{widget: w, Core: core}
}

func TestRegistryLookup(t *testing.T) {
	r := newShellRegistry()
	base := reflect.TypeFor[widget]()
	surface, err := surfaceOf(base, nil)
	require.NoError(t, err)

	_, err = r.lookup(base, nil, surface)
	assert.ErrorIs(t, err, ErrInaccessibleTarget)

	require.NoError(t, r.register(Shell{
		Base: reflect.TypeFor[*widget](),
		Type: reflect.TypeFor[*staleShell](),
		New:  func(core Core, _ any) any { return &staleShell{Core: core} },
	}))
	_, err = r.lookup(base, nil, surface)
	var ierr *InaccessibleTargetError
	require.ErrorAs(t, err, &ierr)
	assert.Contains(t, ierr.Reason, "stale")

	require.NoError(t, r.register(Shell{Base: base, Type: reflect.TypeFor[*widgetShell](), New: newWidgetShell}))
	s, err := r.lookup(base, nil, surface)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*widgetShell](), s.Type)
	assert.Len(t, r.all(), 2)
}

func TestRegistryRejectsBrokenShells(t *testing.T) {
	r := newShellRegistry()
	base := reflect.TypeFor[widget]()

	assert.Error(t, r.register(Shell{Base: base}))
	assert.Error(t, r.register(Shell{Base: base, Type: reflect.TypeFor[*unmarked](), New: newWidgetShell}))

	s := Shell{Base: base, Type: reflect.TypeFor[*widgetShell](), New: newWidgetShell}
	require.NoError(t, r.register(s))
	assert.Error(t, r.register(s))
}

func TestDispatchRequiresBinding(t *testing.T) {
	assert.Panics(t, func() { (&widgetShell{}).Spin(1) })
}

func TestDispatchThroughBinding(t *testing.T) {
	base := reflect.TypeFor[widget]()
	surface, err := surfaceOf(base, nil)
	require.NoError(t, err)

	b := &binding{
		handler: HandlerFunc(func(_ any, pipe Pipe, _ *Method, _ []any) (any, error) {
			return pipe.InvokeDefault()
		}),
		methods: make(map[string]*Method),
		base:    reflect.ValueOf(&widget{}),
	}
	for _, m := range surface {
		b.methods[m.Name] = m
	}
	p := newWidgetShell(Core{b: b}, &widget{}).(*widgetShell)

	assert.Equal(t, 4, p.Spin(4))
	assert.True(t, p.Equal(p))
	assert.False(t, p.Equal(&widgetShell{}))
	assert.Equal(t, hashOf(any(p)), p.Hash())
}

func TestSurfaceOrderAndObjectMethods(t *testing.T) {
	surface, err := surfaceOf(reflect.TypeFor[widget](), []reflect.Type{reflect.TypeFor[interface{ Close() error }]()})
	require.NoError(t, err)

	var names []string
	for _, m := range surface {
		names = append(names, m.Name)
		if m.Name == "Equal" {
			assert.True(t, m.universal())
		}
	}
	assert.Equal(t, []string{"Spin", "Close", "Equal", "Hash", "String"}, names)
}

func TestCoerceMultipleResults(t *testing.T) {
	m := newMethod("Pair", reflect.TypeFor[func() (int, string, error)](), reflect.TypeFor[widget]())

	out := m.coerce(Tuple{1, "one"}, nil)
	assert.Equal(t, []any{1, "one", nil}, out)

	out = m.coerce([]any{int32(2), "two"}, nil)
	assert.Equal(t, []any{2, "two", nil}, out)

	out = m.coerce(Tuple{1}, nil)
	assert.ErrorIs(t, out[2].(error), ErrResultType)

	boom := errors.New("boom")
	out = m.coerce(nil, boom)
	assert.Equal(t, []any{0, "", boom}, out)
}

func TestConvertWidensOnly(t *testing.T) {
	for _, tc := range []struct {
		v    any
		t    reflect.Type
		want any
		ok   bool
	}{
		{int8(-1), reflect.TypeFor[int](), -1, true},
		{uint32(7), reflect.TypeFor[int64](), int64(7), true},
		{uint8(200), reflect.TypeFor[uint16](), uint16(200), true},
		{float32(1.5), reflect.TypeFor[float64](), 1.5, true},
		{int32(5), reflect.TypeFor[float64](), 5.0, true},
		{int16(3), reflect.TypeFor[float32](), float32(3), true},
		{3.7, reflect.TypeFor[int](), nil, false},
		{300, reflect.TypeFor[uint8](), nil, false},
		{-1, reflect.TypeFor[uint64](), nil, false},
		{uint64(1 << 63), reflect.TypeFor[int](), nil, false},
		{int64(1 << 40), reflect.TypeFor[float32](), nil, false},
		{1.5, reflect.TypeFor[float32](), nil, false},
		{"7", reflect.TypeFor[int](), nil, false},
	} {
		got, ok := convert(tc.v, tc.t)
		assert.Equal(t, tc.ok, ok, "convert(%T(%v), %s)", tc.v, tc.v, tc.t)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}
