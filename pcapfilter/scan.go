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

package pcapfilter

import "bytes"

// scanMessages extracts every complete FIX message from buf: a run
// starting at "8=FIX" and ending at the first "10=" checksum field
// followed by delim. It returns the extracted messages (each including its
// trailing delimiter) and the unconsumed tail to keep buffering.
func scanMessages(buf []byte, delim byte) (messages [][]byte, tail []byte) {
	start := 0
	for {
		begin := bytes.Index(buf[start:], []byte("8=FIX"))
		if begin < 0 {
			return messages, buf[start:]
		}
		begin += start

		checksumTag := []byte{delim, '1', '0', '='}
		csIdx := bytes.Index(buf[begin:], checksumTag)
		if csIdx < 0 {
			return messages, buf[begin:]
		}
		csIdx += begin

		end := bytes.IndexByte(buf[csIdx+len(checksumTag):], delim)
		if end < 0 {
			return messages, buf[begin:]
		}
		msgEnd := csIdx + len(checksumTag) + end + 1

		messages = append(messages, buf[begin:msgEnd])
		start = msgEnd
	}
}
