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

import "fmt"

// Result is a container for generic settlement values.
type Result[T any] interface {
	Val() T
	Err() error
	State() State
}

// Empty returns a Resolved Result holding the zero value of T.
func Empty[T any]() Result[T] {
	return emptyResult[T]{}
}

// Val returns a Resolved Result holding val.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err returns a Rejected Result holding err.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

type emptyResult[T any] struct{}
type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }

func (r emptyResult[T]) Val() (v T) { return v }
func (r valResult[T]) Val() (v T)   { return r.val }
func (r errResult[T]) Val() (v T)   { return v }

func (r emptyResult[T]) Err() error { return nil }
func (r valResult[T]) Err() error   { return nil }
func (r errResult[T]) Err() error   { return r.err }

func (r emptyResult[T]) State() State { return Resolved }
func (r valResult[T]) State() State   { return Resolved }
func (r errResult[T]) State() State   { return Rejected }

func (r emptyResult[T]) String() string {
	return "resolved: <nil>"
}
func (r valResult[T]) String() string {
	return fmt.Sprintf("resolved: %v", r.val)
}
func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}

// getFinalRes returns the result to be used when returned outside the scope
// of the internal functions here.
func getFinalRes[T any](res Result[T]) Result[T] {
	// if no result was set, then it's implicitly the empty result
	if res == nil {
		return emptyResult[T]{}
	}
	return res
}
