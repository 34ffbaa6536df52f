/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// installSignalHandler arms SIGINT/SIGTERM handling and returns a poll
// function the line loop checks at line granularity, so a follow-mode run
// can be interrupted cleanly without losing in-flight output.
func installSignalHandler() func() bool {
	var flagged int32
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		atomic.StoreInt32(&flagged, 1)
	}()
	return func() bool { return atomic.LoadInt32(&flagged) == 1 }
}
