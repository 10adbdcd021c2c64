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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhenSyncChain(t *testing.T) {
	b := Of(10).
		When(func(v int) any { return v * 2 }, nil).
		When(func(v int) any { return v + 5 }, nil)

	// an all-resolved chain settles with zero asynchronous delay.
	require.True(t, b.IsResolved())
	assert.Equal(t, 25, b.MustValue())
}

func TestWhenNilHandlerIdentity(t *testing.T) {
	b := Of(1)
	assert.Same(t, b, b.When(nil, func(error) any { return 2 }),
		"a resolved box with no resolve handler passes through unchanged")

	rb := FromError[int](newStrError())
	assert.Same(t, rb, rb.When(func(int) any { return 2 }, nil),
		"a rejected box with no reject handler passes through unchanged")
}

func TestWhenHandlerOutcomes(t *testing.T) {
	t.Run("raw value", func(t *testing.T) {
		b := Of(1).When(func(v int) any { return v + 1 }, nil)
		assert.Equal(t, 2, b.MustValue())
	})

	t.Run("nil resolves to the zero value", func(t *testing.T) {
		b := Of(1).When(func(int) any { return nil }, nil)
		require.True(t, b.IsResolved())
		assert.Equal(t, 0, b.MustValue())
	})

	t.Run("box outcome is adopted", func(t *testing.T) {
		b := Of(1).When(func(int) any { return Of(7) }, nil)
		b.Wait()
		assert.Equal(t, 7, b.MustValue())
	})

	t.Run("rejected box outcome rejects the chain", func(t *testing.T) {
		wantErr := newStrError()
		b := Of(1).When(func(int) any { return FromError[int](wantErr) }, nil)
		b.Wait()
		assert.True(t, errors.Is(b.Err(), wantErr))
	})

	t.Run("future outcome is awaited", func(t *testing.T) {
		fut, resolve, _ := NewDeferred[int]()
		b := Of(1).When(func(int) any { return fut }, nil)
		assert.True(t, b.IsPending())

		resolve(9)
		b.Wait()
		assert.Equal(t, 9, b.MustValue())
	})

	t.Run("wrong outcome type rejects, not panics", func(t *testing.T) {
		b := Of(1).When(func(int) any { return "nine" }, nil)
		b.Wait()
		var terr *TypeMismatchError
		require.True(t, errors.As(b.Err(), &terr))
		assert.Equal(t, "nine", terr.Value)
	})
}

func TestWhenHandlerPanic(t *testing.T) {
	t.Run("error panic rejects with that error", func(t *testing.T) {
		wantErr := newStrError()
		b := Of(1).When(func(int) any { panic(wantErr) }, nil)
		require.True(t, b.IsRejected())
		assert.True(t, errors.Is(b.Err(), wantErr))
	})

	t.Run("non-error panic rejects with a PanicError", func(t *testing.T) {
		b := Of(1).When(func(int) any { panic("boom") }, nil)
		require.True(t, b.IsRejected())
		var perr PanicError
		require.True(t, errors.As(b.Err(), &perr))
		assert.Equal(t, "boom", perr.V)
	})
}

func TestCatch(t *testing.T) {
	t.Run("recovers a rejection", func(t *testing.T) {
		b := FromError[int](newStrError()).Catch(func(error) any { return -1 })
		require.True(t, b.IsResolved())
		assert.Equal(t, -1, b.MustValue())
	})

	t.Run("skipped on a resolved box", func(t *testing.T) {
		src := Of(5)
		b := src.Catch(func(error) any { return -1 })
		assert.Same(t, src, b)
	})

	t.Run("can re-reject", func(t *testing.T) {
		next := newStrError()
		b := FromError[int](errors.New("first")).Catch(func(error) any {
			return FromError[int](next)
		})
		b.Wait()
		assert.True(t, errors.Is(b.Err(), next))
	})
}

func TestWhenPendingChain(t *testing.T) {
	fut, resolve, _ := NewDeferred[int]()
	src := From[int](fut)

	doubled := src.When(func(v int) any { return v * 2 }, nil)
	assert.True(t, doubled.IsPending())

	resolve(21)
	doubled.Wait()
	assert.Equal(t, 42, doubled.MustValue())
	assert.Equal(t, 21, src.MustValue())
}

func TestWhenPendingRejection(t *testing.T) {
	wantErr := newStrError()
	fut, _, reject := NewDeferred[int]()

	caught := From[int](fut).When(
		func(int) any { t.Error("resolve handler ran on a rejection"); return nil },
		func(err error) any { return Of(-1) },
	)

	reject(wantErr)
	caught.Wait()
	assert.Equal(t, -1, caught.MustValue())
}

func TestFinally(t *testing.T) {
	t.Run("preserves a resolution", func(t *testing.T) {
		ran := false
		b := Of(8).Finally(func() any { ran = true; return "ignored" })
		b.Wait()
		assert.True(t, ran)
		assert.Equal(t, 8, b.MustValue())
	})

	t.Run("preserves a rejection", func(t *testing.T) {
		wantErr := newStrError()
		ran := false
		b := FromError[int](wantErr).Finally(func() any { ran = true; return nil })
		b.Wait()
		assert.True(t, ran)
		assert.True(t, errors.Is(b.Err(), wantErr))
	})

	t.Run("runs once the box settles", func(t *testing.T) {
		fut, resolve, _ := NewDeferred[int]()
		ran := make(chan struct{})
		b := From[int](fut).Finally(func() any { close(ran); return nil })

		select {
		case <-ran:
			t.Fatal("finally ran before settlement")
		default:
		}

		resolve(1)
		b.Wait()
		<-ran
		assert.Equal(t, 1, b.MustValue())
	})

	t.Run("waits for a future-valued cleanup", func(t *testing.T) {
		cleanup, finish, _ := NewDeferred[struct{}]()
		b := Of(2).Finally(func() any { return cleanup })
		assert.True(t, b.IsPending(), "outcome must wait for the cleanup future")

		finish(struct{}{})
		b.Wait()
		assert.Equal(t, 2, b.MustValue())
	})

	t.Run("cleanup failure replaces the outcome", func(t *testing.T) {
		wantErr := newStrError()
		cleanup, _, fail := NewDeferred[struct{}]()
		b := Of(2).Finally(func() any { return cleanup })

		fail(wantErr)
		b.Wait()
		assert.True(t, errors.Is(b.Err(), wantErr))
	})

	t.Run("panic replaces the outcome", func(t *testing.T) {
		wantErr := newStrError()
		b := Of(2).Finally(func() any { panic(wantErr) })
		b.Wait()
		assert.True(t, errors.Is(b.Err(), wantErr))
	})

	t.Run("nil callback panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Of(1).Finally(nil)
		})
	})
}
