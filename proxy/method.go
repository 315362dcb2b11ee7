package proxy

import (
	"fmt"
	"reflect"
	"strings"
)

var errorType = reflect.TypeFor[error]()

// Method describes an operation reachable on a proxy.
type Method struct {
	Name     string
	Params   []reflect.Type // variadic parameters appear as their slice type
	Results  []reflect.Type
	Variadic bool

	// Declarer is the base type or interface the method was resolved from. The
	// universal methods of Object report the Object interface.
	Declarer reflect.Type

	// Type is the method's signature without a receiver.
	Type reflect.Type
}

func newMethod(name string, fn, declarer reflect.Type) *Method {
	m := &Method{
		Name:     name,
		Variadic: fn.IsVariadic(),
		Declarer: declarer,
		Type:     fn,
	}
	for i := 0; i < fn.NumIn(); i++ {
		m.Params = append(m.Params, fn.In(i))
	}
	for i := 0; i < fn.NumOut(); i++ {
		m.Results = append(m.Results, fn.Out(i))
	}
	return m
}

// String renders the method as Declarer.Name(params) results.
func (m *Method) String() string {
	decl := "?"
	if m.Declarer != nil {
		decl = m.Declarer.Name()
		if decl == "" {
			decl = m.Declarer.String()
		}
	}
	return decl + "." + m.Name + strings.TrimPrefix(m.Type.String(), "func")
}

// ReturnsError reports whether the method's last result is an error.
func (m *Method) ReturnsError() bool {
	n := len(m.Results)
	return n > 0 && m.Results[n-1] == errorType
}

// values returns the number of non-error results.
func (m *Method) values() int {
	if m.ReturnsError() {
		return len(m.Results) - 1
	}
	return len(m.Results)
}

func (m *Method) universal() bool {
	return m.Declarer == objectType
}

// stripReceiver turns a method expression type into the method's signature.
func stripReceiver(ft reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn())
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}

func sameSignature(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.NumOut() != b.NumOut() || a.IsVariadic() != b.IsVariadic() {
		return false
	}
	for i := 0; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}
	for i := 0; i < a.NumOut(); i++ {
		if a.Out(i) != b.Out(i) {
			return false
		}
	}
	return true
}

// pack folds the results of a reflective call into the handler convention.
func (m *Method) pack(out []reflect.Value) (any, error) {
	var err error
	if m.ReturnsError() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			err = last.Interface().(error)
		}
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	t := make(Tuple, len(out))
	for i, v := range out {
		t[i] = v.Interface()
	}
	return t, err
}

// coerce converts a handler result into one value per declared result.
func (m *Method) coerce(res any, err error) []any {
	if err != nil && !m.ReturnsError() {
		panic(err)
	}
	out := make([]any, len(m.Results))
	n := m.values()

	var bad error
	switch {
	case n == 0:
	case n == 1:
		v, ok := convert(res, m.Results[0])
		if !ok {
			bad = &ResultError{Method: m, Index: 0, Got: reflect.TypeOf(res)}
		}
		out[0] = v
	default:
		vals, ok := res.(Tuple)
		if !ok && res != nil {
			if plain, isSlice := res.([]any); isSlice {
				vals, ok = plain, true
			}
		}
		if res != nil && (!ok || len(vals) != n) {
			bad = &ResultError{Method: m, Index: 0, Got: reflect.TypeOf(res)}
			break
		}
		for i := 0; i < n; i++ {
			var raw any
			if vals != nil {
				raw = vals[i]
			}
			v, ok := convert(raw, m.Results[i])
			if !ok && bad == nil {
				bad = &ResultError{Method: m, Index: i, Got: reflect.TypeOf(raw)}
			}
			out[i] = v
		}
	}

	if m.ReturnsError() {
		switch {
		case err != nil:
			out[len(out)-1] = err
		case bad != nil:
			out[len(out)-1] = bad
		}
		return out
	}
	if bad != nil {
		panic(bad)
	}
	return out
}

// in converts handler-supplied arguments into call arguments for m.
func (m *Method) in(args []any) ([]reflect.Value, error) {
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("%s: want %d arguments, got %d", m, len(m.Params), len(args))
	}
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		v, ok := assign(a, m.Params[i])
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: cannot use %s as %s", m, i, typeName(reflect.TypeOf(a)), m.Params[i])
		}
		vals[i] = v
	}
	return vals, nil
}

// call invokes fn, a bound method value, with args.
func (m *Method) call(fn reflect.Value, args []any) (any, error) {
	in, err := m.in(args)
	if err != nil {
		return nil, err
	}
	if m.Variadic {
		return m.pack(fn.CallSlice(in))
	}
	return m.pack(fn.Call(in))
}

// assign produces a value of type t from v: nil becomes the zero value, assignable
// values are stored as t and numeric values are widened when no value of their type
// can lose range, sign or precision in t.
func assign(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		return reflect.Zero(t), nillable(t) || t.Kind() == reflect.Interface
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		dst := reflect.New(t).Elem()
		dst.Set(rv)
		return dst, true
	}
	if widens(rv.Type(), t) {
		return rv.Convert(t), true
	}
	return reflect.Zero(t), false
}

type numClass int

const (
	notNumeric numClass = iota
	signed
	unsigned
	float
)

func classOf(k reflect.Kind) numClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned
	case reflect.Float32, reflect.Float64:
		return float
	}
	return notNumeric
}

// widens reports whether every value of from converts exactly to to.
func widens(from, to reflect.Type) bool {
	fc, tc := classOf(from.Kind()), classOf(to.Kind())
	if fc == notNumeric || tc == notNumeric {
		return false
	}
	fbits, tbits := from.Size()*8, to.Size()*8
	switch {
	case fc == tc:
		return fbits <= tbits
	case fc == unsigned && tc == signed:
		return fbits < tbits
	case tc == float:
		// integers up to half the mantissa width are exact
		return fbits <= tbits/2
	}
	return false
}

func convert(v any, t reflect.Type) (any, bool) {
	rv, ok := assign(v, t)
	if v == nil {
		// A nil result is the zero value of any result type.
		ok = true
	}
	return rv.Interface(), ok
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// Result extracts result i of a dispatched call as T. Generated shells use it to
// return the router's output; a nil entry yields the zero value of T.
func Result[T any](out []any, i int) T {
	v, _ := out[i].(T)
	return v
}
