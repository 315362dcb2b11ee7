package proxy

import (
	"errors"
	"fmt"
	"reflect"
)

// Error kinds. Every typed error below unwraps to one of these, so callers can use
// either errors.Is with the sentinel or errors.As with the concrete type.
var (
	ErrInaccessibleTarget = errors.New("proxy: inaccessible target")
	ErrIllegalTarget      = errors.New("proxy: illegal target")
	ErrMissingConstructor = errors.New("proxy: missing constructor")
	ErrResultType         = errors.New("proxy: result type mismatch")
	ErrIncompatibleTarget = errors.New("proxy: incompatible pipe target")

	// ErrNoDefault is returned by Pipe.InvokeDefault when the base portion of the
	// proxy has no implementation of the method being dispatched.
	ErrNoDefault = errors.New("proxy: no default implementation")

	// ErrNilHandler is returned by CreateProxy when the builder has no handler.
	ErrNilHandler = errors.New("proxy: nil handler")
)

// InaccessibleTargetError reports that no synthesized type is available in the
// defining package of the base type.
type InaccessibleTargetError struct {
	Type   reflect.Type
	Reason string
}

func (e *InaccessibleTargetError) Error() string {
	return fmt.Sprintf("proxy: cannot synthesize proxy for %s: %s", typeName(e.Type), e.Reason)
}

func (e *InaccessibleTargetError) Unwrap() error { return ErrInaccessibleTarget }

// IllegalTargetError reports a base type or interface that cannot be proxied.
type IllegalTargetError struct {
	Type   reflect.Type
	Reason string
}

func (e *IllegalTargetError) Error() string {
	return fmt.Sprintf("proxy: illegal target %s: %s", typeName(e.Type), e.Reason)
}

func (e *IllegalTargetError) Unwrap() error { return ErrIllegalTarget }

// MissingConstructorError reports a construction strategy that does not match the
// base type.
type MissingConstructorError struct {
	Type        reflect.Type
	Constructor reflect.Type
	Reason      string
}

func (e *MissingConstructorError) Error() string {
	if e.Constructor == nil {
		return fmt.Sprintf("proxy: no constructor for %s: %s", typeName(e.Type), e.Reason)
	}
	return fmt.Sprintf("proxy: constructor %s does not build %s: %s", e.Constructor, typeName(e.Type), e.Reason)
}

func (e *MissingConstructorError) Unwrap() error { return ErrMissingConstructor }

// ResultError reports a handler result that cannot be coerced to the declared
// result type of the dispatched method.
type ResultError struct {
	Method *Method
	Index  int
	Got    reflect.Type
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("proxy: %s: result %d: cannot use %s as %s",
		e.Method, e.Index, typeName(e.Got), e.Method.Results[e.Index])
}

func (e *ResultError) Unwrap() error { return ErrResultType }

// IncompatibleTargetError reports a value passed to Pipe.InvokeOn that does not
// implement the dispatched method.
type IncompatibleTargetError struct {
	Method *Method
	Target reflect.Type
	Reason string
}

func (e *IncompatibleTargetError) Error() string {
	return fmt.Sprintf("proxy: cannot invoke %s on %s: %s", e.Method, typeName(e.Target), e.Reason)
}

func (e *IncompatibleTargetError) Unwrap() error { return ErrIncompatibleTarget }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
