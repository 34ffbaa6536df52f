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

// Package pcapfilter reassembles TCP segments from a packet capture stream
// into an ordered FIX byte stream, dropping retransmits, bounding
// out-of-order buffering, and flushing idle flows.
package pcapfilter

import "time"

// segment is one out-of-order TCP payload waiting for its predecessor.
type segment struct {
	seq     uint32
	payload []byte
}

// flow is the per-5-tuple reassembly state. It is mutated only by the
// reader handling packets for that flow.
type flow struct {
	nextExpected uint32
	haveNext     bool
	pending      []segment // out-of-order segments, sequence-ordered
	pendingBytes int
	emission     []byte
	lastSeen     time.Time
}

func newFlow(isn uint32) *flow {
	return &flow{nextExpected: isn, haveNext: true, lastSeen: time.Now()}
}

// insert applies one TCP payload to the flow, dropping retransmits
// (segments entirely at or below nextExpected) and buffering future
// segments. maxBufferedBytes caps the emission and out-of-order buffers
// together. It returns accepted=false for a dropped segment, and
// overflow=true when the payload would exceed the cap and the flow should
// be reset.
func (f *flow) insert(seq uint32, payload []byte, maxBufferedBytes int) (accepted, overflow bool) {
	f.lastSeen = time.Now()
	if len(payload) == 0 {
		return false, false
	}

	if !f.haveNext {
		f.nextExpected = seq
		f.haveNext = true
	}

	if seqLE(seq+uint32(len(payload)), f.nextExpected) {
		return false, false // fully-retransmitted segment
	}
	if seqLT(seq, f.nextExpected) {
		overlap := f.nextExpected - seq
		seq = f.nextExpected
		payload = payload[overlap:]
	}

	if len(f.emission)+f.pendingBytes+len(payload) > maxBufferedBytes {
		return false, true
	}

	if seq == f.nextExpected {
		f.emission = append(f.emission, payload...)
		f.nextExpected += uint32(len(payload))
		f.drainPending()
		return true, false
	}

	if f.pendingBytes+len(payload) > maxBufferedBytes {
		return false, true
	}
	f.pending = append(f.pending, segment{seq: seq, payload: payload})
	f.pendingBytes += len(payload)
	return true, false
}

// drainPending appends any buffered segments that have become contiguous
// with nextExpected, in sequence order, repeating until no more can be
// applied.
func (f *flow) drainPending() {
	for {
		progressed := false
		remaining := f.pending[:0]
		for _, s := range f.pending {
			switch {
			case seqLE(s.seq+uint32(len(s.payload)), f.nextExpected):
				f.pendingBytes -= len(s.payload)
				progressed = true
			case s.seq == f.nextExpected:
				f.emission = append(f.emission, s.payload...)
				f.nextExpected += uint32(len(s.payload))
				f.pendingBytes -= len(s.payload)
				progressed = true
			default:
				remaining = append(remaining, s)
			}
		}
		f.pending = remaining
		if !progressed {
			return
		}
	}
}

func seqLT(a, b uint32) bool { return int32(a-b) < 0 }
func seqLE(a, b uint32) bool { return int32(a-b) <= 0 }
