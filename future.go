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
	"sync"

	"github.com/osalah/statebox/internal/status"
)

// Thenable is the duck-typed view of an asynchronous handle: anything that
// can report its eventual settlement by invoking continuations.
//
// Future implements it. Third-party async handles qualify by implementing it
// too; nothing here depends on the concrete Future type. A Box deliberately
// does not implement Thenable.
//
// On settlement exactly one of the two continuations is invoked, at most
// once. A nil continuation is skipped.
type Thenable interface {
	Then(onResolve func(val any), onReject func(err error))
}

// IsFutureLike returns true if x is a non-nil Thenable.
//
// It's used once per Box construction to distinguish async handles from raw
// values, and is usable by callers for the same purpose.
func IsFutureLike(x any) bool {
	th, ok := x.(Thenable)
	return ok && th != nil
}

// Future is an asynchronous settlement handle.
//
// The zero value is not usable; futures come from NewDeferred, from the
// helper constructors (Delay, Until, Series), from Runner.Perform, or from
// Box.Future.
type Future[T any] struct {
	status status.FutStatus

	// closed when this future settles.
	// it has one writer (the settling call) and any number of waiters.
	done chan struct{}

	// mu guards subs, and orders res writes against subscribe.
	mu   sync.Mutex
	subs []func(Result[T])

	// holds the result of the future.
	// written once, before the status word reports Settled.
	res Result[T]
}

// NewDeferred returns a pending future together with its external settle
// functions. Both functions are valid the moment NewDeferred returns.
//
// The first settle call wins; later calls to either function are no-ops.
// Calling reject with a nil error counts as resolving with the zero value.
func NewDeferred[T any]() (fut *Future[T], resolve func(T), reject func(error)) {
	f := newFuture[T]()
	resolve = func(val T) {
		f.settleTo(Val(val))
	}
	reject = func(err error) {
		if err == nil {
			// a nil rejection reason is a resolution, same as a reject call
			// with no error at all.
			f.settleTo(Empty[T]())
			return
		}
		f.settleTo(Err[T](err))
	}
	return f, resolve, reject
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

var closedChan = make(chan struct{})

func init() {
	close(closedChan)
}

// fulfilledFuture returns a future that's already settled to val.
// It's pre-observed: it never reports an uncaught rejection.
func fulfilledFuture[T any](val T) *Future[T] {
	return &Future[T]{
		status: status.NewSettled(false, true),
		done:   closedChan,
		res:    Val(val),
	}
}

// rejectedFuture returns a future that's already settled to err.
// It's pre-observed: the caller asked for the failure explicitly.
func rejectedFuture[T any](err error) *Future[T] {
	return &Future[T]{
		status: status.NewSettled(true, true),
		done:   closedChan,
		res:    Err[T](err),
	}
}

// settleTo settles the future to res, if it hasn't settled yet, and reports
// whether this call was the settling one.
// Registered continuations run synchronously on the settling goroutine, in
// registration order.
func (f *Future[T]) settleTo(res Result[T]) bool {
	if set, _ := f.status.SetSettling(); !set {
		return false
	}

	res = getFinalRes(res)

	// the status word must report Settled inside the lock: a concurrent
	// subscribe decides between "append" and "run now" under the same lock,
	// so no continuation can fall between the snapshot and the flip.
	f.mu.Lock()
	f.res = res
	if res.Err() != nil {
		f.status.SetRejectedSettled()
	} else {
		f.status.SetResolvedSettled()
	}
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	close(f.done)

	for _, fn := range subs {
		fn(res)
	}

	if res.Err() != nil && len(subs) == 0 && !status.IsObserved(f.status.Load()) {
		uncaughtRejection(res.Err())
	}
	return true
}

// subscribe registers fn to run with the future's result.
// If the future already settled, fn runs asynchronously on its own goroutine;
// continuation delivery is never synchronous with the registering call.
func (f *Future[T]) subscribe(fn func(Result[T])) {
	f.status.SetObserved()

	f.mu.Lock()
	if status.IsFateSettled(f.status.Load()) {
		res := f.res
		f.mu.Unlock()
		go fn(res)
		return
	}
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

// markObserved suppresses the uncaught-rejection report for this future.
// Intermediate futures derived by a box are marked on creation.
func (f *Future[T]) markObserved() {
	f.status.SetObserved()
}

// Then implements Thenable.
//
// The registered continuation runs at most once, on some other goroutine,
// with the settlement value or error.
func (f *Future[T]) Then(onResolve func(val any), onReject func(err error)) {
	f.subscribe(func(res Result[T]) {
		if err := res.Err(); err != nil {
			if onReject != nil {
				onReject(err)
			}
			return
		}
		if onResolve != nil {
			onResolve(any(res.Val()))
		}
	})
}

// Done returns a channel that's closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	f.status.SetObserved()
	return f.done
}

// Wait blocks until the future settles.
func (f *Future[T]) Wait() {
	f.status.SetObserved()
	<-f.done
}

// Res blocks until the future settles, then returns its result.
func (f *Future[T]) Res() Result[T] {
	f.status.SetObserved()
	<-f.done
	return f.res
}

// State returns the settlement state of the future, without blocking.
func (f *Future[T]) State() State {
	s := f.status.Load()
	switch {
	case !status.IsFateSettled(s):
		return Pending
	case status.IsStateRejected(s):
		return Rejected
	default:
		return Resolved
	}
}
