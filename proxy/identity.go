package proxy

import (
	"hash/maphash"
	"reflect"
)

// Object is the method set every synthesized proxy carries in addition to its base
// type and interfaces, unless the base type already declares a method of that name.
type Object interface {
	Equal(other any) bool
	Hash() uint64
	String() string
}

var objectType = reflect.TypeFor[Object]()

// Equaler is implemented by witnesses with their own equality.
type Equaler interface {
	Equal(other any) bool
}

// Hasher is implemented by witnesses with their own hash.
type Hasher interface {
	Hash() uint64
}

// neverEqualsFactor scales the witness hash of a never-equals-target proxy.
const neverEqualsFactor = 31

// identityPolicy decorates a handler to answer Equal and Hash from a witness. Every
// other call, including Equal or Hash with an unexpected arity, goes to next.
type identityPolicy struct {
	witness        any
	canEqualTarget bool
	next           Handler
}

// witnessToken is what a never-equals-target proxy hands to another proxy's Equal so
// that the other side can compare witnesses.
type witnessToken struct {
	witness any
}

func (p *identityPolicy) Invoke(self any, pipe Pipe, m *Method, args []any) (any, error) {
	switch {
	case m.Name == "Equal" && len(args) == 1:
		return p.equal(self, args[0]), nil
	case m.Name == "Hash" && len(args) == 0:
		if p.canEqualTarget {
			return witnessHash(p.witness), nil
		}
		return neverEqualsFactor * witnessHash(p.witness), nil
	}
	return p.next.Invoke(self, pipe, m, args)
}

// equal compares self with other. Proxies are compared through their witnesses
// under both policies; only a can-equal-target proxy consults its witness about a
// plain value.
func (p *identityPolicy) equal(self, other any) bool {
	if tok, ok := other.(witnessToken); ok {
		return witnessEqual(p.witness, tok.witness)
	}
	if ob := bindingOf(other); ob != nil {
		if ob == bindingOf(self) {
			return true
		}
		eq, ok := other.(Equaler)
		return ok && eq.Equal(witnessToken{witness: p.witness})
	}
	if p.canEqualTarget {
		return witnessEqual(p.witness, other)
	}
	return false
}

func witnessEqual(w, other any) bool {
	if eq, ok := w.(Equaler); ok {
		return eq.Equal(other)
	}
	return safeEqual(w, other)
}

func witnessHash(w any) uint64 {
	if h, ok := w.(Hasher); ok {
		return h.Hash()
	}
	return hashOf(w)
}

// safeEqual compares with == when both values share a comparable dynamic type.
func safeEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

var hashSeed = maphash.MakeSeed()

// hashOf hashes comparable values consistently with safeEqual; incomparable values
// hash to zero.
func hashOf(v any) uint64 {
	if v == nil || !reflect.ValueOf(v).Comparable() {
		return 0
	}
	return maphash.Comparable(hashSeed, v)
}
