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

func TestAllResolvedInputs(t *testing.T) {
	b := All[int](1, Of(2), 3)

	// nothing to wait on, so the aggregate is ready immediately.
	require.True(t, b.IsResolved())
	assert.Equal(t, []int{1, 2, 3}, b.MustValue())
}

func TestAllEmpty(t *testing.T) {
	b := All[int]()
	require.True(t, b.IsResolved())
	assert.Empty(t, b.MustValue())
}

func TestAllHeterogeneousInputs(t *testing.T) {
	fut, resolve, _ := NewDeferred[int]()
	b := All[int](1, fut, Of(3), manualThenable{val: 4})
	assert.True(t, b.IsPending())

	resolve(2)
	b.Wait()
	require.True(t, b.IsResolved())
	assert.Equal(t, []int{1, 2, 3, 4}, b.MustValue())
}

func TestAllOrderIndependentOfSettlement(t *testing.T) {
	f1, r1, _ := NewDeferred[int]()
	f2, r2, _ := NewDeferred[int]()
	f3, r3, _ := NewDeferred[int]()
	b := All[int](f1, f2, f3)

	// settle out of order; results keep input order.
	r3(3)
	r1(1)
	r2(2)

	b.Wait()
	assert.Equal(t, []int{1, 2, 3}, b.MustValue())
}

func TestAllImmediateRejection(t *testing.T) {
	wantErr := newStrError()
	never, _, _ := NewDeferred[int]()
	b := All[int](Of(1), FromError[int](wantErr), never)

	// a rejection already in hand wins without waiting on pending entries.
	require.True(t, b.IsRejected())
	assert.True(t, errors.Is(b.Err(), wantErr))
}

func TestAllFirstRejectionWins(t *testing.T) {
	first := testStrError("first")
	second := testStrError("second")
	b := All[int](FromError[int](first), FromError[int](second))

	require.True(t, b.IsRejected())
	assert.True(t, errors.Is(b.Err(), first))
}

func TestAllEventualRejection(t *testing.T) {
	wantErr := newStrError()
	f1, r1, _ := NewDeferred[int]()
	f2, _, j2 := NewDeferred[int]()
	b := All[int](f1, f2)

	j2(wantErr)
	r1(1)

	b.Wait()
	require.True(t, b.IsRejected())
	assert.True(t, errors.Is(b.Err(), wantErr))
}

func TestAllLeavesOthersSettling(t *testing.T) {
	wantErr := newStrError()
	slow, resolve, _ := NewDeferred[int]()
	b := All[int](FromError[int](wantErr), slow)

	require.True(t, b.IsRejected())

	// the muffled entry still settles on its own.
	resolve(5)
	slow.Wait()
	assert.Equal(t, 5, slow.Res().Val())
}
