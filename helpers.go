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

import "time"

// Delay returns a future that settles to res after at least duration d.
// A nil res settles to the empty (zero-valued, resolved) result.
func Delay[T any](res Result[T], d time.Duration) *Future[T] {
	f := newFuture[T]()
	go func() {
		time.Sleep(d)
		f.settleTo(res)
	}()
	return f
}

// Until returns a future that resolves once cond reports true, polling it
// every interval 'every' (values <= 0 mean 1ms). cond runs on the polling
// goroutine; it must be safe to call from there.
//
// It panics if cond is nil.
func Until(cond func() bool, every time.Duration) *Future[struct{}] {
	if cond == nil {
		panic(nilCallbackPanicMsg)
	}
	if every <= 0 {
		every = time.Millisecond
	}
	f := newFuture[struct{}]()
	go func() {
		for !cond() {
			time.Sleep(every)
		}
		f.settleTo(Val(struct{}{}))
	}()
	return f
}

// Series runs the task thunks one at a time, in order, and returns a future
// for the ordered results. It stops at the first failure: that task's error
// rejects the returned future and the remaining thunks never run.
//
// Thunk results are coerced the same way Runner.Perform coerces them.
func Series[T any](tasks ...func() any) *Future[[]T] {
	f := newFuture[[]T]()
	r := NewRunner[T](1)
	go func() {
		vals := make([]T, len(tasks))
		for i, task := range tasks {
			res := r.Perform(task).Res()
			if err := res.Err(); err != nil {
				f.settleTo(Err[[]T](err))
				return
			}
			vals[i] = res.Val()
		}
		f.settleTo(Val(vals))
	}()
	return f
}

// WaitAll blocks until all the provided boxes settle, then returns true, or
// returns false if no boxes are provided.
func WaitAll(boxes ...AnyBox) (waited bool) {
	if len(boxes) == 0 {
		return false
	}
	for _, b := range boxes {
		b.Wait()
	}
	return true
}
