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

// Package status implements the atomic status word of a future.
//
// The word packs three sections:
//
// The fate section tracks how far settlement has progressed: Unsettled (the
// future may still be settled), Settling (some call won the settle race and is
// writing the result), and Settled (the result is written and final). The
// Unsettled -> Settling transition is a CAS, which gives settle-once semantics
// without a lock.
//
// The state section mirrors the public settlement state: Pending, Resolved,
// or Rejected. It's only meaningful once the fate is Settled.
//
// The flags section currently holds a single flag, Observed, recording that
// some call has registered interest in the result. A rejection that settles
// unobserved is reported as uncaught.
package status
