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

// IsFateUnsettled returns true if the fate of the status is Unsettled.
func IsFateUnsettled(status uint32) bool {
	return status&fateBitsSetMask == fateUnsettled
}

// IsFateSettled returns true if the fate of the status is Settled.
// Only then the state value is final, and the result is safe to read.
func IsFateSettled(status uint32) bool {
	return status&fateBitsSetMask == fateSettled
}

// IsStatePending returns true if the state of the status is Pending.
func IsStatePending(status uint32) bool {
	return status&stateBitsSetMask == statePending
}

// IsStateResolved returns true if the state of the status is Resolved.
func IsStateResolved(status uint32) bool {
	return status&stateBitsSetMask == stateResolved
}

// IsStateRejected returns true if the state of the status is Rejected.
func IsStateRejected(status uint32) bool {
	return status&stateBitsSetMask == stateRejected
}

// IsObserved returns true if the Observed flag is set.
func IsObserved(status uint32) bool {
	return status&flagObserved != 0
}
