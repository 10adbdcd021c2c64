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

// All combines a heterogeneous sequence of values, futures, and boxes into a
// single Box of the ordered values.
//
// Every entry is mapped through From first. If every mapped box is already
// Resolved, the returned box is Resolved to the ordered values with zero
// asynchronous delay; this is the one observation point with no settlement
// lag. Otherwise, if any mapped box is already Rejected, the first such
// rejection (in input order) wins immediately: the returned box is Rejected
// with that error, without waiting on any pending entry, and the pending
// entries are left to settle independently and silently. Otherwise the
// returned box is Pending and settles once every entry's future has been
// awaited in order, rejecting at the first failure (again leaving the rest
// to settle silently) or resolving to the ordered values.
func All[T any](things ...any) *Box[[]T] {
	boxes := make([]*Box[T], len(things))
	for i, thing := range things {
		boxes[i] = From[T](thing)
	}

	allResolved := true
	for _, bx := range boxes {
		switch bx.State() {
		case Resolved:
			continue
		case Rejected:
			// first-encountered rejection wins, later entries are ignored.
			return FromError[[]T](bx.Err())
		default:
			allResolved = false
		}
	}

	if allResolved {
		vals := make([]T, len(boxes))
		for i, bx := range boxes {
			vals[i], _ = bx.Value()
		}
		return Of(vals)
	}

	agg := newPendingBox[[]T]()
	go func() {
		vals := make([]T, len(boxes))
		for i, bx := range boxes {
			res := bx.Future().Res()
			if err := res.Err(); err != nil {
				agg.rejectAny(err)
				return
			}
			vals[i] = res.Val()
		}
		agg.settle(Resolved, vals, nil)
	}()
	return agg
}
