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

// Package decoder locates, tokenises, schema-selects and prettifies FIX
// messages embedded in arbitrary log lines.
package decoder

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultDelimiter is the standard FIX field separator, SOH (0x01).
const DefaultDelimiter byte = 0x01

// ParseDelimiter accepts a single character, the case-insensitive literal
// "SOH", or a "\xNN"/"0xNN" hex escape, and returns the corresponding byte.
// Any other shape, including empty or multi-rune input, is an error.
func ParseDelimiter(spec string) (byte, error) {
	if spec == "" {
		return 0, fmt.Errorf("delimiter: empty value")
	}
	if strings.EqualFold(spec, "SOH") {
		return DefaultDelimiter, nil
	}
	lower := strings.ToLower(spec)
	if strings.HasPrefix(lower, "\\x") || strings.HasPrefix(lower, "0x") {
		hex := lower[2:]
		n, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("delimiter: invalid hex escape %q: %w", spec, err)
		}
		return byte(n), nil
	}
	if len([]rune(spec)) != 1 {
		return 0, fmt.Errorf("delimiter: %q must be one character, SOH, or a \\xNN/0xNN escape", spec)
	}
	return spec[0], nil
}
