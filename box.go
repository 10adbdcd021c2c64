// Copyright 2025 Osama Salah (osalah)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statebox

import (
	"fmt"
	"sync"
)

// Box is a synchronous view over an asynchronous computation: a value of
// type T that may not be available yet, or that may have failed with an
// error.
//
// A Box is in exactly one of three states (Pending, Resolved, Rejected) and
// settles at most once. While Pending it tracks a Future that settles
// exactly when the Box does; once settled, the tracked future is dropped and
// exactly one of the value or the error is meaningful.
//
// The zero value is not usable; boxes come from Of, FromError, From, Build,
// and All.
type Box[T any] struct {
	mu    sync.Mutex
	state State
	val   T
	err   error

	// the future tracking eventual settlement.
	// non-nil exactly while state == Pending (for boxes built from an async
	// source), cleared on settlement.
	fut *Future[T]
}

// AnyBox is the value-type-independent view of a Box. Every Box[T]
// implements it, whatever its T; it's the runtime type tag behind IsStateBox
// and the adoption machinery.
type AnyBox interface {
	State() State
	Wait()

	// settledAny returns the terminal value or error, and ok = false while
	// the box is still pending.
	settledAny() (val any, err error, ok bool)

	// subscribeAny registers continuations for the box's eventual terminal
	// state, dispatching immediately if it already settled.
	subscribeAny(onResolve func(val any), onReject func(err error))
}

// IsStateBox returns true if x is a Box, whatever its value type.
func IsStateBox(x any) bool {
	b, ok := x.(AnyBox)
	return ok && b != nil
}

// Of returns a Box that's already Resolved to val.
func Of[T any](val T) *Box[T] {
	return &Box[T]{state: Resolved, val: val}
}

// FromError returns a Box that's already Rejected with err.
//
// The rejection error is always the argument itself; there is no separate
// value/override pair. It panics if err is nil, since a nil error would make
// the box indistinguishable from a resolved one.
func FromError[T any](err error) *Box[T] {
	if err == nil {
		panic(nilErrorPanicMsg)
	}
	return &Box[T]{state: Rejected, err: err}
}

// From returns a Box for thing, whatever thing is:
//
// A *Box[T] is returned unchanged (From is idempotent). Any other Box is
// adopted: the new box copies its current state and tracks its eventual
// settlement. A Thenable starts the box Pending, with continuations
// registered so the box adopts the eventual settlement value, recursively
// unwrapping values that are themselves boxes or futures. A nil thing
// resolves to the zero value. Anything else must be a T and resolves
// immediately; a value of the wrong type is a caller bug and panics.
func From[T any](thing any) *Box[T] {
	if thing == nil {
		return Of(zero[T]())
	}
	switch v := thing.(type) {
	case *Box[T]:
		return v
	case AnyBox:
		b := newPendingBox[T]()
		b.become(v)
		return b
	case Thenable:
		b := newPendingBox[T]()
		v.Then(b.resolveAny, b.rejectAny)
		return b
	}
	val, ok := thing.(T)
	if !ok {
		panic(fmt.Sprintf("statebox: From got a value of type %T, not assignable to the box's value type", thing))
	}
	return Of(val)
}

// Build returns a Box from one of the two getters, based on ready: the value
// getter when ready is true, the future getter otherwise.
//
// Exactly one getter is invoked, so getters with side effects (a fetch
// triggered only when needed) stay untriggered on the other path.
func Build[T any](ready bool, value func() T, future func() Thenable) *Box[T] {
	if ready {
		if value == nil {
			panic(nilGetterPanicMsg)
		}
		return Of(value())
	}
	if future == nil {
		panic(nilGetterPanicMsg)
	}
	return From[T](future())
}

// newPendingBox returns a Pending box whose tracked future is pre-observed,
// so internal settlement never reports an uncaught rejection; propagation
// continues through the box itself.
func newPendingBox[T any]() *Box[T] {
	f := newFuture[T]()
	f.markObserved()
	return &Box[T]{state: Pending, fut: f}
}

func zero[T any]() (v T) { return v }

// State returns the current settlement state of the box.
func (b *Box[T]) State() State {
	b.mu.Lock()
	s := b.state
	b.mu.Unlock()
	return s
}

// IsReady returns true once the box has settled, to either state.
func (b *Box[T]) IsReady() bool {
	return b.State() != Pending
}

// IsPending returns true while the box hasn't settled.
func (b *Box[T]) IsPending() bool {
	return b.State() == Pending
}

// IsResolved returns true only if the box settled with a value.
func (b *Box[T]) IsResolved() bool {
	return b.State() == Resolved
}

// IsRejected returns true only if the box settled with an error.
func (b *Box[T]) IsRejected() bool {
	return b.State() == Rejected
}

// Value returns the settled value or error.
//
// While the box is Pending it returns ErrPending; that's the only case where
// the returned error is not the box's own settlement error.
func (b *Box[T]) Value() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Resolved:
		return b.val, nil
	case Rejected:
		return zero[T](), b.err
	default:
		return zero[T](), ErrPending
	}
}

// MustValue returns the resolved value, or panics: with the stored error if
// the box is Rejected, or with ErrPending if it hasn't settled yet.
func (b *Box[T]) MustValue() T {
	val, err := b.Value()
	if err != nil {
		panic(err)
	}
	return val
}

// Err returns the settlement error: nil when Resolved, the stored error when
// Rejected, and ErrPending while Pending.
func (b *Box[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Resolved:
		return nil
	case Rejected:
		return b.err
	default:
		return ErrPending
	}
}

// Future returns a future for the box's settlement.
//
// On a settled box it returns a fresh, already-settled future. On a pending
// box it returns the box's own tracked future, not a fresh derivation: the
// tracked future settles strictly after the box's state flips, so a waiter
// always observes a ready box afterwards.
func (b *Box[T]) Future() *Future[T] {
	b.mu.Lock()
	state, val, err, fut := b.state, b.val, b.err, b.fut
	b.mu.Unlock()

	switch state {
	case Resolved:
		return fulfilledFuture(val)
	case Rejected:
		return rejectedFuture[T](err)
	default:
		return fut
	}
}

// Wait blocks until the box settles.
func (b *Box[T]) Wait() {
	b.mu.Lock()
	fut := b.fut
	pending := b.state == Pending
	b.mu.Unlock()

	if !pending || fut == nil {
		return
	}
	fut.Wait()
}

// Suspend returns the resolved value, or panics: with the stored error if
// the box is Rejected, and with the tracked *Future[T] itself if the box is
// still Pending.
//
// Panicking with the future, not an error, is the suspension contract:
// a consumer that recovers a Thenable knows to defer and retry once it
// settles, while a recovered error is a real failure.
func (b *Box[T]) Suspend() T {
	b.mu.Lock()
	state, val, err, fut := b.state, b.val, b.err, b.fut
	b.mu.Unlock()

	switch state {
	case Resolved:
		return val
	case Rejected:
		panic(err)
	default:
		panic(fut)
	}
}

// become adopts other's terminal state: synchronously if other already
// settled, otherwise by registering continuations that funnel back into this
// box's own settlement handlers. Those handlers unwrap box-valued (and
// future-valued) settlements recursively, so arbitrary nesting collapses to
// the innermost terminal value with a single settlement of this box.
func (b *Box[T]) become(other AnyBox) {
	if val, err, ok := other.settledAny(); ok {
		if err != nil {
			b.rejectAny(err)
		} else {
			b.resolveAny(val)
		}
		return
	}
	other.subscribeAny(b.resolveAny, b.rejectAny)
}

// resolveAny is the resolution half of the settlement choke point: every
// eventual resolution of this box flows through here exactly once per
// nesting level.
func (b *Box[T]) resolveAny(val any) {
	if ab, ok := val.(AnyBox); ok && ab != nil {
		b.become(ab)
		return
	}
	if th, ok := val.(Thenable); ok && th != nil {
		// a bare future as a settlement value; there's no implicit
		// flattening here, so chain it explicitly.
		th.Then(b.resolveAny, b.rejectAny)
		return
	}
	if val == nil {
		b.settle(Resolved, zero[T](), nil)
		return
	}
	v, ok := val.(T)
	if !ok {
		// this runs on some settlement goroutine; reject instead of
		// panicking so the mismatch surfaces where the box is read.
		b.rejectAny(&TypeMismatchError{Value: val})
		return
	}
	b.settle(Resolved, v, nil)
}

// rejectAny is the rejection half of the settlement choke point.
// Rejection reasons are errors and are adopted as-is, with no unwrapping.
func (b *Box[T]) rejectAny(err error) {
	b.settle(Rejected, zero[T](), err)
}

// settle performs the box's single terminal transition, then settles the
// tracked future. The order matters: the future settles strictly after the
// box's state flips, so anything waiting on the future observes a ready box.
func (b *Box[T]) settle(state State, val T, err error) {
	b.mu.Lock()
	if b.state != Pending {
		// already settled; late settlements are dropped.
		b.mu.Unlock()
		return
	}
	b.state = state
	b.val = val
	b.err = err
	fut := b.fut
	b.fut = nil
	b.mu.Unlock()

	if fut == nil {
		return
	}
	if state == Rejected {
		fut.settleTo(Err[T](err))
	} else {
		fut.settleTo(Val(val))
	}
}

func (b *Box[T]) settledAny() (val any, err error, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Resolved:
		return any(b.val), nil, true
	case Rejected:
		return nil, b.err, true
	default:
		return nil, nil, false
	}
}

func (b *Box[T]) subscribeAny(onResolve func(val any), onReject func(err error)) {
	b.mu.Lock()
	if b.state == Pending {
		fut := b.fut
		b.mu.Unlock()
		fut.subscribe(func(res Result[T]) {
			if err := res.Err(); err != nil {
				onReject(err)
				return
			}
			onResolve(any(res.Val()))
		})
		return
	}
	state, val, err := b.state, b.val, b.err
	b.mu.Unlock()

	if state == Rejected {
		onReject(err)
		return
	}
	onResolve(any(val))
}
