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

package status

import "sync/atomic"

var (
	cas  = atomic.CompareAndSwapUint32
	load = atomic.LoadUint32
)

// FutStatus holds the settlement status of a future.
// It's read and written/updated atomically.
type FutStatus uint32

// the fate's related values and constants, using 2 bits(the [1st : 2nd] bits)
const (
	// fate modes, using 2 bits
	fateUnsettled uint32 = iota
	fateSettling
	fateSettled

	// fateBitsSetMask and fateBitsClrMask are &-ed with the status to get
	// the fate value and clear the fate value, respectively.
	fateBitsSetMask uint32 = 3
	fateBitsClrMask        = ^fateBitsSetMask
)

// the state's related values and constants, using 2 bits(the [3rd : 4th] bits)
const (
	// starting with a shift amount of 2, which is the number of bits used by
	// the previous section.

	// state modes, using 2 bits
	statePending  uint32 = iota << 2
	stateResolved uint32 = iota << 2
	stateRejected uint32 = iota << 2

	// stateBitsSetMask and stateBitsClrMask are &-ed with the status to get
	// the state value and clear the state value, respectively.
	stateBitsSetMask uint32 = 3 << 2
	stateBitsClrMask        = ^stateBitsSetMask
)

// the flags' related values and constants, using 1 bit(the 5th bit)
const (
	// FlagObserved records that some call has registered interest in the
	// future's result, so an eventual rejection is not uncaught.
	flagObserved uint32 = 1 << 4
)

// Load returns the current status value.
func (s *FutStatus) Load() uint32 {
	return load((*uint32)(s))
}

// SetSettling moves the fate from Unsettled to Settling.
// It returns false if the fate already left Unsettled, which makes it the
// settle-once guard: exactly one caller ever gets set = true.
func (s *FutStatus) SetSettling() (set bool, status uint32) {
	for {
		curr := load((*uint32)(s))
		if curr&fateBitsSetMask != fateUnsettled {
			return false, curr
		}
		next := (curr & fateBitsClrMask) | fateSettling
		if cas((*uint32)(s), curr, next) {
			return true, next
		}
	}
}

// SetResolvedSettled moves the fate to Settled with the Resolved state.
// It must be called only by the caller that won SetSettling.
func (s *FutStatus) SetResolvedSettled() (status uint32) {
	return s.setSettled(stateResolved)
}

// SetRejectedSettled moves the fate to Settled with the Rejected state.
// It must be called only by the caller that won SetSettling.
func (s *FutStatus) SetRejectedSettled() (status uint32) {
	return s.setSettled(stateRejected)
}

func (s *FutStatus) setSettled(state uint32) (status uint32) {
	for {
		curr := load((*uint32)(s))
		next := (curr & fateBitsClrMask & stateBitsClrMask) | fateSettled | state
		if cas((*uint32)(s), curr, next) {
			return next
		}
	}
}

// SetObserved sets the Observed flag, keeping the fate and state untouched.
func (s *FutStatus) SetObserved() (status uint32) {
	for {
		curr := load((*uint32)(s))
		if curr&flagObserved != 0 {
			return curr
		}
		next := curr | flagObserved
		if cas((*uint32)(s), curr, next) {
			return next
		}
	}
}

// NewSettled returns a status value that's already Settled, for futures
// created in their terminal state.
func NewSettled(rejected bool, observed bool) FutStatus {
	status := fateSettled | stateResolved
	if rejected {
		status = fateSettled | stateRejected
	}
	if observed {
		status |= flagObserved
	}
	return FutStatus(status)
}
