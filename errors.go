package statebox

import (
	"errors"
	"fmt"
)

// ErrPending is returned (or panicked, from Must-style accessors) when a
// synchronous accessor is called on a Box that hasn't settled yet.
// It signals caller misuse: check IsReady first, or wait on Future.
var ErrPending = errors.New("statebox: box accessed before settlement")

// panic messages
const (
	nilTaskPanicMsg     = "statebox: the provided task is nil"
	nilGetterPanicMsg   = "statebox: the provided getter is nil"
	nilCallbackPanicMsg = "statebox: the provided callback is nil"
	nilErrorPanicMsg    = "statebox: the provided error is nil"
)

// PanicError wraps a panic value recovered from a chained callback or a
// runner task, so the panic propagates as a rejection instead of crashing
// the chain.
type PanicError struct {
	// V is the original value the callback panicked with.
	V any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("statebox: callback panicked: %v", e.V)
}

// TypeMismatchError reports a settlement value that's not assignable to the
// box's (or future's) value type.
type TypeMismatchError struct {
	// Value is the offending settlement value.
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("statebox: settlement value of type %T doesn't match the box's value type", e.Value)
}

// protect invokes call, converting a panic into an error return.
// A panic with an error value is kept as that error; any other panic value
// is wrapped in a PanicError.
func protect(call func() any) (out any, err error) {
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = e
			} else {
				err = PanicError{V: v}
			}
		}
	}()
	out = call()
	return
}
