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

package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quickfixgo/quickfix"
)

// Token is one tag=value pair from a tokenised FIX run, in observed order.
type Token struct {
	Tag   quickfix.Tag
	Raw   string // the decimal tag as it appeared on the wire
	Value string
}

// Tokenize splits a raw FIX byte run on delim into an ordered token list.
// Non-numeric tags are reported as an error rather than silently dropped,
// since a malformed tag corrupts every downstream positional assumption.
func Tokenize(run string, delim byte) ([]Token, error) {
	fields := strings.Split(run, string(delim))
	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		eq := strings.IndexByte(field, '=')
		if eq == -1 {
			return nil, fmt.Errorf("tokenize: field %q has no '=' separator", field)
		}
		rawTag := field[:eq]
		value := field[eq+1:]
		num, err := strconv.Atoi(rawTag)
		if err != nil || num < 0 {
			return nil, fmt.Errorf("tokenize: invalid tag %q", rawTag)
		}
		tokens = append(tokens, Token{Tag: quickfix.Tag(num), Raw: rawTag, Value: value})
	}
	return tokens, nil
}

// Join reassembles tokens with delim, reproducing the original byte run
// when tokens came from Tokenize unmodified (the round-trip property the
// tokeniser is required to hold).
func Join(tokens []Token, delim byte) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Raw)
		b.WriteByte('=')
		b.WriteString(t.Value)
		b.WriteByte(delim)
	}
	return b.String()
}

// FindRun locates a single FIX message run within line: a "8=FIX" (or
// "8=FIXT") prefix followed eventually by "10=" and three digits and a
// trailing delimiter. It returns the byte offsets [start, end) of the run,
// including the trailing delimiter, or ok=false if no complete run exists.
func FindRun(line string, delim byte) (start, end int, ok bool) {
	start = strings.Index(line, "8=FIX")
	if start == -1 {
		return 0, 0, false
	}

	checksumTag := "10="
	from := start
	for {
		idx := strings.Index(line[from:], checksumTag)
		if idx == -1 {
			return 0, 0, false
		}
		csStart := from + idx
		digitsStart := csStart + len(checksumTag)
		if digitsStart+3 > len(line) {
			return 0, 0, false
		}
		digits := line[digitsStart : digitsStart+3]
		if !isThreeDigits(digits) {
			from = csStart + len(checksumTag)
			continue
		}
		delimPos := digitsStart + 3
		if delimPos >= len(line) || line[delimPos] != delim {
			from = csStart + len(checksumTag)
			continue
		}
		return start, delimPos + 1, true
	}
}

func isThreeDigits(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
