package proxy

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Shell describes a proxy type generated by proxygen into the package that defines
// its base type. Generated code registers shells from init; CreateProxy picks the
// shell that covers the requested base type and interfaces.
type Shell struct {
	// Base is the proxied struct or interface type.
	Base reflect.Type
	// Type is the pointer type of the generated proxy struct.
	Type reflect.Type
	// New builds a proxy around core. base is the base portion produced by the
	// construction strategy: a pointer to the base struct, the value returned by an
	// interface constructor, or nil.
	New func(core Core, base any) any
}

// shellRegistry maps base types to the shells generated for them.
// Thread-safe for concurrent registration and lookup.
type shellRegistry struct {
	mu     sync.RWMutex
	byBase map[reflect.Type][]*Shell
	byType map[reflect.Type]*Shell
}

func newShellRegistry() *shellRegistry {
	return &shellRegistry{
		byBase: make(map[reflect.Type][]*Shell),
		byType: make(map[reflect.Type]*Shell),
	}
}

var shells = newShellRegistry()

// Register adds a generated shell. It panics on an invalid shell or on a shell type
// registered twice, since both mean the generated code is broken.
func Register(s Shell) {
	if err := shells.register(s); err != nil {
		panic(err)
	}
}

// Registered returns the registered shells ordered by base type name.
func Registered() []Shell {
	return shells.all()
}

func (r *shellRegistry) register(s Shell) error {
	if s.Base == nil || s.Type == nil || s.New == nil {
		return fmt.Errorf("proxy: incomplete shell for %s", typeName(s.Base))
	}
	if s.Base.Kind() == reflect.Pointer {
		s.Base = s.Base.Elem()
	}
	if !s.Type.Implements(markedType) {
		return fmt.Errorf("proxy: shell %s does not embed proxy.Core", s.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[s.Type]; ok {
		return fmt.Errorf("proxy: shell %s registered twice", s.Type)
	}
	shell := &s
	r.byType[s.Type] = shell
	r.byBase[s.Base] = append(r.byBase[s.Base], shell)
	return nil
}

func (r *shellRegistry) forBase(base reflect.Type) []*Shell {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byBase[base]
}

func (r *shellRegistry) all() []Shell {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Shell, 0, len(r.byType))
	for _, s := range r.byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base.String() != out[j].Base.String() {
			return out[i].Base.String() < out[j].Base.String()
		}
		return out[i].Type.String() < out[j].Type.String()
	})
	return out
}

// lookup selects the smallest registered shell for base that implements every
// interface and every method of the surface.
func (r *shellRegistry) lookup(base reflect.Type, ifaces []reflect.Type, surface []*Method) (*Shell, error) {
	candidates := r.forBase(base)
	if len(candidates) == 0 {
		return nil, &InaccessibleTargetError{
			Type:   base,
			Reason: fmt.Sprintf("no proxy type has been generated in package %q; run proxygen for %s", base.PkgPath(), base.Name()),
		}
	}

	var (
		best   *Shell
		reason string
	)
	for _, s := range candidates {
		if why := covers(s.Type, ifaces, surface); why != "" {
			reason = why
			continue
		}
		if best == nil || s.Type.NumMethod() < best.Type.NumMethod() {
			best = s
		}
	}
	if best == nil {
		return nil, &InaccessibleTargetError{Type: base, Reason: reason}
	}
	return best, nil
}

func covers(shell reflect.Type, ifaces []reflect.Type, surface []*Method) string {
	for _, iface := range ifaces {
		if !shell.Implements(iface) {
			return fmt.Sprintf("generated type %s does not implement %s", shell, iface)
		}
	}
	for _, m := range surface {
		sm, ok := shell.MethodByName(m.Name)
		if !ok || !sameSignature(stripReceiver(sm.Type), m.Type) {
			return fmt.Sprintf("generated type %s is stale: missing %s", shell, m)
		}
	}
	return ""
}
