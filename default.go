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
	"log"
	"sync/atomic"
)

// uncaughtHook holds the process-wide uncaught-rejection handler, as a
// func(error). It's stored atomically so it can be swapped while futures
// are settling.
var uncaughtHook atomic.Value

func defUncaughtRejectionHandler(err error) {
	log.Printf("statebox: uncaught rejection: %v", err)
}

// OnUncaughtRejection replaces the handler that runs when a rejected future
// settles with no observer: nothing subscribed to it, waited on it, or asked
// for its result by then.
//
// The default handler logs the error through the standard logger. Passing nil
// restores the default. The futures a Box derives internally are pre-observed
// and never reach this handler; it only ever sees futures handed out to
// callers and then dropped.
func OnUncaughtRejection(handler func(err error)) {
	if handler == nil {
		handler = defUncaughtRejectionHandler
	}
	uncaughtHook.Store(handler)
}

func uncaughtRejection(err error) {
	if h, ok := uncaughtHook.Load().(func(error)); ok {
		h(err)
		return
	}
	defUncaughtRejectionHandler(err)
}
