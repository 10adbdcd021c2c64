package statebox

import "sync"

// Runner executes task thunks with a fixed concurrency cap and a strictly
// FIFO backlog.
//
// At most maxConcurrency tasks run at a time. A task submitted while every
// slot is busy waits in the backlog and starts, in submission order, when a
// running task settles. Each submission gets a Future for the task's
// eventual result, whether it started immediately or was queued.
//
// Runner shares the deferred-pair primitive with the Box machinery but none
// of its chaining logic. It does not retry, time out, or cancel tasks.
type Runner[T any] struct {
	mu      sync.Mutex
	max     int
	running int
	backlog []func()
}

// NewRunner returns a Runner that runs at most maxConcurrency tasks at a
// time. Values below 1 mean 1.
func NewRunner[T any](maxConcurrency int) *Runner[T] {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Runner[T]{max: maxConcurrency}
}

// Len returns the current backlog size: submitted tasks that haven't
// started yet.
func (r *Runner[T]) Len() int {
	r.mu.Lock()
	n := len(r.backlog)
	r.mu.Unlock()
	return n
}

// Running returns the number of currently running tasks.
func (r *Runner[T]) Running() int {
	r.mu.Lock()
	n := r.running
	r.mu.Unlock()
	return n
}

// Perform submits a task thunk and returns a Future for its result.
//
// If a slot is free the thunk is invoked synchronously, within this call;
// otherwise a starter for it joins the backlog tail. The returned future is
// the same either way: the caller can't tell queued from running.
//
// The thunk's return value is coerced into settlement: a Thenable is chained
// and its outcome adopted; any other value must be a T and fulfills the
// future immediately (nil fulfills with the zero value, a value of the wrong
// type rejects with a TypeMismatchError). A thunk panic rejects the future.
// Failures propagate verbatim to whoever holds the future; they're never
// retried or swallowed.
//
// It panics if task is nil.
func (r *Runner[T]) Perform(task func() any) *Future[T] {
	if task == nil {
		panic(nilTaskPanicMsg)
	}
	fut, resolve, reject := NewDeferred[T]()
	start := func() { r.run(task, resolve, reject) }

	r.mu.Lock()
	if r.running < r.max {
		r.running++
		r.mu.Unlock()
		start()
	} else {
		r.backlog = append(r.backlog, start)
		r.mu.Unlock()
	}
	return fut
}

// run invokes the task on an occupied slot, routes its outcome into the
// deferred pair, and hands the slot over once the outcome settles.
func (r *Runner[T]) run(task func() any, resolve func(T), reject func(error)) {
	out, err := protect(func() any { return task() })
	if err != nil {
		reject(err)
		r.settled()
		return
	}
	if th, ok := out.(Thenable); ok && th != nil {
		th.Then(
			func(val any) {
				settleDeferred(val, resolve, reject)
				r.settled()
			},
			func(err error) {
				reject(err)
				r.settled()
			},
		)
		return
	}
	settleDeferred(out, resolve, reject)
	r.settled()
}

// settled runs when a task's outcome settles: the backlog head, if any,
// takes over the freed slot directly, so the running count never dips and
// FIFO order holds; only an empty backlog releases the slot.
func (r *Runner[T]) settled() {
	r.mu.Lock()
	if len(r.backlog) > 0 {
		next := r.backlog[0]
		r.backlog = r.backlog[1:]
		r.mu.Unlock()
		next()
		return
	}
	r.running--
	r.mu.Unlock()
}

func settleDeferred[T any](val any, resolve func(T), reject func(error)) {
	if val == nil {
		resolve(zero[T]())
		return
	}
	v, ok := val.(T)
	if !ok {
		reject(&TypeMismatchError{Value: val})
		return
	}
	resolve(v)
}
