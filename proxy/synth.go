package proxy

import (
	"fmt"
	"reflect"
	"strings"
)

// normalizeBase checks that base can be extended and returns the type shells are
// registered under: the struct type itself for *T, the type unchanged otherwise.
func normalizeBase(base reflect.Type) (reflect.Type, error) {
	if base == nil {
		return nil, &IllegalTargetError{Reason: "nil base type"}
	}
	if base.Kind() == reflect.Pointer && base.Elem().Kind() == reflect.Struct {
		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Struct:
		if reflect.PointerTo(base).Implements(finalType) {
			return nil, &IllegalTargetError{Type: base, Reason: "type is final"}
		}
		if reflect.PointerTo(base).Implements(markedType) {
			return nil, &IllegalTargetError{Type: base, Reason: "proxy types are final"}
		}
	case reflect.Interface:
		if err := checkInterface(base); err != nil {
			return nil, err
		}
	case reflect.Array, reflect.Slice:
		return nil, &IllegalTargetError{Type: base, Reason: "array and slice types cannot be proxied"}
	case reflect.Map, reflect.Chan, reflect.Func, reflect.Pointer, reflect.UnsafePointer:
		return nil, &IllegalTargetError{Type: base, Reason: base.Kind().String() + " types cannot be proxied"}
	default:
		return nil, &IllegalTargetError{Type: base, Reason: "basic types cannot be proxied"}
	}

	if base.Name() == "" {
		return nil, &IllegalTargetError{Type: base, Reason: "unnamed types cannot be proxied"}
	}
	return base, nil
}

// checkInterface rejects non-interfaces and sealed interfaces, i.e. interfaces with
// unexported methods that no other package can implement.
func checkInterface(t reflect.Type) error {
	if t == nil {
		return &IllegalTargetError{Reason: "nil interface type"}
	}
	if t.Kind() != reflect.Interface {
		return &IllegalTargetError{Type: t, Reason: "not an interface type"}
	}
	for i := 0; i < t.NumMethod(); i++ {
		if !t.Method(i).IsExported() {
			return &IllegalTargetError{Type: t, Reason: "interface is sealed by unexported method " + t.Method(i).Name}
		}
	}
	return nil
}

// surfaceOf resolves every exported method reachable from base and ifaces plus the
// Object methods they do not already declare. Methods are de-duplicated by name;
// two declarations of one name with different signatures are an illegal target.
func surfaceOf(base reflect.Type, ifaces []reflect.Type) ([]*Method, error) {
	var (
		methods []*Method
		byName  = make(map[string]*Method)
	)
	add := func(name string, fn, declarer reflect.Type) error {
		if prev, ok := byName[name]; ok {
			if !sameSignature(prev.Type, fn) {
				return &IllegalTargetError{
					Type:   declarer,
					Reason: fmt.Sprintf("method %s%s conflicts with %s", name, strings.TrimPrefix(fn.String(), "func"), prev),
				}
			}
			return nil
		}
		m := newMethod(name, fn, declarer)
		byName[name] = m
		methods = append(methods, m)
		return nil
	}

	if base.Kind() == reflect.Struct {
		pt := reflect.PointerTo(base)
		for i := 0; i < pt.NumMethod(); i++ {
			mt := pt.Method(i)
			if err := add(mt.Name, stripReceiver(mt.Type), base); err != nil {
				return nil, err
			}
		}
	} else {
		for i := 0; i < base.NumMethod(); i++ {
			mt := base.Method(i)
			if err := add(mt.Name, mt.Type, base); err != nil {
				return nil, err
			}
		}
	}

	for _, iface := range ifaces {
		for i := 0; i < iface.NumMethod(); i++ {
			mt := iface.Method(i)
			if err := add(mt.Name, mt.Type, iface); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i < objectType.NumMethod(); i++ {
		mt := objectType.Method(i)
		if _, ok := byName[mt.Name]; !ok {
			_ = add(mt.Name, mt.Type, objectType)
		}
	}
	return methods, nil
}

// construction is an explicit constructor plus its bound arguments.
type construction struct {
	ctor any
	args []any
}

// build produces the base portion of a new proxy. The zero construction yields a
// new zero struct for struct bases and no base portion for interface bases.
func (c *construction) build(base reflect.Type) (reflect.Value, error) {
	if c == nil {
		if base.Kind() == reflect.Struct {
			return reflect.New(base), nil
		}
		return reflect.Value{}, nil
	}

	fn := reflect.ValueOf(c.ctor)
	if c.ctor == nil || fn.Kind() != reflect.Func {
		return reflect.Value{}, &MissingConstructorError{Type: base, Reason: fmt.Sprintf("%T is not a function", c.ctor)}
	}
	ft := fn.Type()
	missing := func(format string, args ...any) error {
		return &MissingConstructorError{Type: base, Constructor: ft, Reason: fmt.Sprintf(format, args...)}
	}

	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return reflect.Value{}, missing("want results (T) or (T, error)")
	}
	out := ft.Out(0)
	if base.Kind() == reflect.Struct {
		if out != base && out != reflect.PointerTo(base) {
			return reflect.Value{}, missing("returns %s", out)
		}
	} else if !out.Implements(base) {
		return reflect.Value{}, missing("returns %s, which does not implement %s", out, base)
	}

	in, err := constructorArgs(ft, c.args)
	if err != nil {
		return reflect.Value{}, missing("%v", err)
	}

	res := fn.Call(in)
	if len(res) == 2 && !res[1].IsNil() {
		return reflect.Value{}, res[1].Interface().(error)
	}

	v := res[0]
	switch {
	case base.Kind() == reflect.Struct && out == base:
		ptr := reflect.New(base)
		ptr.Elem().Set(v)
		return ptr, nil
	case nillable(out) && v.IsNil():
		return reflect.Value{}, missing("constructor returned nil")
	case out.Kind() == reflect.Interface:
		return v.Elem(), nil
	}
	return v, nil
}

// constructorArgs matches bound arguments against the constructor's parameters.
// Variadic constructors take their trailing arguments one by one.
func constructorArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("want at least %d arguments, got %d", fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("want %d arguments, got %d", fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := ft.In(min(i, ft.NumIn()-1))
		if i >= fixed {
			pt = pt.Elem()
		}
		v, ok := assign(a, pt)
		if !ok {
			return nil, fmt.Errorf("argument %d: cannot use %s as %s", i, typeName(reflect.TypeOf(a)), pt)
		}
		in[i] = v
	}
	return in, nil
}

// synthesize resolves, checks and instantiates the proxy described by b. Nothing is
// instantiated unless every check passes.
func synthesize(b Builder) (any, error) {
	if unwrapHandler(b.handler) == nil {
		return nil, ErrNilHandler
	}
	base, err := normalizeBase(b.base)
	if err != nil {
		return nil, err
	}
	ifaces := b.Interfaces()
	for _, iface := range ifaces {
		if err := checkInterface(iface); err != nil {
			return nil, err
		}
	}

	surface, err := surfaceOf(base, ifaces)
	if err != nil {
		return nil, err
	}
	shell, err := shells.lookup(base, ifaces, surface)
	if err != nil {
		return nil, err
	}
	baseValue, err := b.construct.build(base)
	if err != nil {
		return nil, err
	}

	bound := &binding{
		handler: b.handler,
		methods: make(map[string]*Method, len(surface)),
		base:    baseValue,
		shell:   shell,
	}
	for _, m := range surface {
		bound.methods[m.Name] = m
	}
	// A covering shell may implement more than was asked for; those calls reach the
	// handler too.
	for i := 0; i < shell.Type.NumMethod(); i++ {
		mt := shell.Type.Method(i)
		if _, ok := bound.methods[mt.Name]; !ok {
			bound.methods[mt.Name] = newMethod(mt.Name, stripReceiver(mt.Type), shell.Type)
		}
	}

	var basePortion any
	if baseValue.IsValid() {
		basePortion = baseValue.Interface()
	}
	return shell.New(Core{b: bound}, basePortion), nil
}

// unwrapHandler returns the innermost handler below any identity policies.
func unwrapHandler(h Handler) Handler {
	for {
		if f, ok := h.(HandlerFunc); ok && f == nil {
			return nil
		}
		p, ok := h.(*identityPolicy)
		if !ok {
			return h
		}
		h = p.next
	}
}
