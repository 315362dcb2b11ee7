// Package proxytest provides proxy fixtures with generated shells, and the two
// canonical handlers used to exercise them.
package proxytest

//go:generate go run github.com/chazu/interpose/cmd/proxygen gen

import (
	"errors"
	"fmt"

	"github.com/chazu/interpose/proxy"
)

// ErrTarget is returned by Target.Exception.
var ErrTarget = errors.New("proxytest: target failure")

// Target is a struct base with methods of every result shape.
type Target struct {
	VoidCalled bool
}

func (t *Target) Add(a, b int) int { return a + b }

func (t *Target) NoArgMethod() string { return "noArg" }

func (t *Target) VoidMethod() { t.VoidCalled = true }

func (t *Target) Exception() error { return ErrTarget }

func (t *Target) Sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (t *Target) Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("proxytest: division by zero")
	}
	return a / b, nil
}

func (t *Target) DivMod(a, b int) (int, int) { return a / b, a % b }

// IsSameProxy is answered by handlers that compare self with the argument.
func (t *Target) IsSameProxy(other any) bool { return false }

func (t *Target) Hash() uint64 { return 42 }

func (t *Target) String() string { return "four two" }

// TargetMethods is the method set of *Target, through which tests call a proxy of it.
type TargetMethods interface {
	Add(a, b int) int
	NoArgMethod() string
	VoidMethod()
	Exception() error
	Sum(xs ...int) int
	Divide(a, b int) (int, error)
	DivMod(a, b int) (int, int)
	IsSameProxy(other any) bool
	Hash() uint64
	String() string
}

var _ TargetMethods = (*Target)(nil)

// Adder only has a constructor with an argument.
type Adder struct {
	a int
}

func NewAdder(a int) *Adder { return &Adder{a: a} }

func (x *Adder) Add(b int) int { return x.a + b }

func (x *Adder) NoArgMethod() string { return "noArg" }

// Value equals anything that reports the same Get.
type Value struct {
	v int
}

func NewValue(v int) *Value { return &Value{v: v} }

func (x *Value) Get() int { return x.v }

func (x *Value) Equal(other any) bool {
	o, ok := other.(interface{ Get() int })
	return ok && o.Get() == x.v
}

func (x *Value) Hash() uint64 { return uint64(x.v) }

// Point only equals another *Point.
type Point struct {
	X, Y int
}

func (p *Point) Equal(other any) bool {
	o, ok := other.(*Point)
	return ok && *o == *p
}

func (p *Point) Hash() uint64 { return uint64(p.X)*31 + uint64(p.Y) }

func (p *Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Empty has no methods of its own; its shell implements I1, I2 and I3.
type Empty struct{}

type I1 interface{ M1() int }

type I2 interface{ M2() int }

type I3 interface{ M3() int }

// Greeter is an interface base.
type Greeter interface {
	Greet(name string) string
}

// English is a plain Greeter.
type English struct{}

func (English) Greet(name string) string { return "hello " + name }

// Frozen cannot be proxied.
type Frozen struct {
	proxy.Final
}

func (Frozen) Thaw() {}

// Sealed cannot be implemented outside this package.
type Sealed interface {
	Open()
	seal()
}

// Ungenerated has no shell.
type Ungenerated struct{}

func (Ungenerated) Do() {}
