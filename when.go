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

// When is the central chaining operator. It's semantically a then call,
// deliberately not named Then so a Box is never mistaken for a Thenable.
//
// On a Resolved box, onResolve runs with the value; on a Rejected box,
// onReject runs with the error. The handler's return value may be a raw
// value, a Thenable, or another Box, and is wrapped into the returned Box
// with the same unwrapping as From. A nil handler for the box's path returns
// the receiver unchanged. On a Pending box the same dispatch is deferred to
// the box's tracked future.
//
// When never panics synchronously: a handler panic becomes a rejected Box,
// observable only where the result is read or awaited.
func (b *Box[T]) When(onResolve func(val T) any, onReject func(err error) any) *Box[T] {
	b.mu.Lock()
	state, val, err, fut := b.state, b.val, b.err, b.fut
	b.mu.Unlock()

	switch state {
	case Resolved:
		if onResolve == nil {
			return b
		}
		out, herr := protect(func() any { return onResolve(val) })
		if herr != nil {
			return FromError[T](herr)
		}
		return fromOutcome[T](out)

	case Rejected:
		if onReject == nil {
			return b
		}
		out, herr := protect(func() any { return onReject(err) })
		if herr != nil {
			return FromError[T](herr)
		}
		return fromOutcome[T](out)
	}

	// pending: defer the same dispatch to the tracked future, then wrap the
	// derived future so box-valued settlements still unwrap.
	d := newFuture[any]()
	d.markObserved()
	fut.subscribe(func(res Result[T]) {
		if rerr := res.Err(); rerr != nil {
			if onReject == nil {
				d.settleTo(Err[any](rerr))
				return
			}
			out, herr := protect(func() any { return onReject(rerr) })
			if herr != nil {
				d.settleTo(Err[any](herr))
				return
			}
			d.settleTo(Val[any](out))
			return
		}
		if onResolve == nil {
			d.settleTo(Val[any](any(res.Val())))
			return
		}
		out, herr := protect(func() any { return onResolve(res.Val()) })
		if herr != nil {
			d.settleTo(Err[any](herr))
			return
		}
		d.settleTo(Val[any](out))
	})
	return From[T](d)
}

// Catch registers a rejection handler; it's When with no resolve handler.
func (b *Box[T]) Catch(onReject func(err error) any) *Box[T] {
	return b.When(nil, onReject)
}

// Finally runs onFinally once the box settles, on either path, and returns a
// Box that preserves the original outcome rather than onFinally's return
// value. If onFinally returns a Thenable, settlement of the returned box
// waits for it. An onFinally panic, or a rejection of its Thenable, replaces
// the outcome with that failure.
//
// It panics if onFinally is nil.
func (b *Box[T]) Finally(onFinally func() any) *Box[T] {
	if onFinally == nil {
		panic(nilCallbackPanicMsg)
	}

	// replay rebuilds the original outcome after onFinally's own, possibly
	// asynchronous, completion.
	after := func(replay func() any) any {
		out := onFinally()
		th, ok := out.(Thenable)
		if !ok || th == nil {
			return replay()
		}
		d := newFuture[any]()
		d.markObserved()
		th.Then(
			func(any) { d.settleTo(Val[any](replay())) },
			func(err error) { d.settleTo(Err[any](err)) },
		)
		return d
	}

	return b.When(
		func(val T) any {
			return after(func() any { return Of(val) })
		},
		func(err error) any {
			return after(func() any { return FromError[T](err) })
		},
	)
}

// fromOutcome wraps a handler's return value like From, but never panics:
// a value that's not assignable to T rejects with a TypeMismatchError, since
// this runs inside chaining where a synchronous panic is off the table.
func fromOutcome[T any](out any) *Box[T] {
	if out == nil {
		return Of(zero[T]())
	}
	if v, ok := out.(*Box[T]); ok {
		return v
	}
	if IsStateBox(out) || IsFutureLike(out) {
		b := newPendingBox[T]()
		b.resolveAny(out)
		return b
	}
	val, ok := out.(T)
	if !ok {
		return FromError[T](&TypeMismatchError{Value: out})
	}
	return Of(val)
}
