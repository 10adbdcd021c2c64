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

// Package statebox provides a synchronous view over asynchronous computations,
// plus a small bounded-concurrency task runner built on the same plumbing.
//
// The core type, Box, wraps a value that may not be available yet, or that may
// have failed to be produced. Unlike a bare Future, a Box can be inspected
// synchronously at any time, without blocking and without callbacks.
//
// A Box is in exactly one of three states, at any time:
// Pending: the computation that corresponds to this Box has not settled yet.
// Resolved: the computation has finished and produced a value.
// Rejected: the computation has finished with an error.
//
// A Box settles at most once. A Pending Box transitions to either Resolved or
// Rejected, and never transitions again.
//
// Boxes are built from raw values (Of), errors (FromError), futures or other
// boxes (From), and combined with All. Chained transformations (When, Catch,
// Finally) return new boxes and never panic synchronously; a callback panic
// becomes a rejected Box instead.
//
// General Notes:-
//
// * Once a Box settles, its value and error never change.
//
// * While a Box is Pending, it tracks a Future that settles exactly when the
// Box does. Code that needs to observe settlement must wait on the Box's own
// Future method, never on the original source future: settlement propagates
// through a derived future, so a Box may briefly report Pending after its
// source has settled.
//
// * A Box built from another Box adopts the source's eventual terminal state,
// unwrapping recursively: a future that resolves to a Box that wraps a future
// that resolves to a value collapses to that innermost value, with a single
// settlement, however deep the nesting.
//
// * A Box deliberately does not implement Thenable, so IsFutureLike never
// mistakes a Box for a future.
//
// * Synchronous accessors (Value, MustValue, Err) fail with ErrPending when
// called before settlement. That always signals a caller bug: check IsReady
// first, or wait on Future. Suspend is the exception: on a Pending Box it
// panics with the tracked Future itself, so a recovering consumer can wait and
// retry.
//
// * A rejected Future that settles with no observer is reported through the
// package's uncaught-rejection hook (see OnUncaughtRejection). The
// intermediate futures a Box derives internally are pre-observed and never
// trip that hook; real propagation continues through the Box itself.
//
// The Runner type executes task thunks with a fixed concurrency cap and a
// strictly FIFO backlog, handing each caller a Future for the task's eventual
// result. It shares the deferred-pair primitive (NewDeferred) with the Box
// machinery but none of its chaining logic.
package statebox
