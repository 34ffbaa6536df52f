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
	"strings"

	"fixdecoder/constants"
	"fixdecoder/dictionary"

	"github.com/quickfixgo/quickfix"
)

// defaultFallbackKey is used when BeginString-derived detection fails
// outright.
const defaultFallbackKey = "FIX44"

// fixtFallbackKey is used when a FIXT.1.1 wrapper carries neither
// ApplVerID nor DefaultApplVerID.
const fixtFallbackKey = "FIX50SP2"

// PickSchema chooses the dictionary that should render tokens, following a
// three-rule cascade: a forced --fix key wins outright; otherwise a
// FIXT.1.1 wrapper is resolved via ApplVerID/DefaultApplVerID; otherwise
// the key is derived from BeginString. warn is called once per detection
// fallback with a one-line message suitable for standard error; it may be
// nil.
func PickSchema(reg *dictionary.Registry, tokens []Token, forcedKey string, warn func(string)) (*dictionary.Dictionary, string) {
	if warn == nil {
		warn = func(string) {}
	}

	beginString := findValue(tokens, constants.TagBeginString)

	if forcedKey != "" {
		d, ok := reg.Get(forcedKey)
		if !ok {
			warn(fmt.Sprintf("unknown --fix key %q, falling back to auto-detection", forcedKey))
		} else {
			if beginString != "" && dictionary.KeyFromBeginString(beginString) != forcedKey {
				warn(fmt.Sprintf("forced dictionary %s disagrees with BeginString %s", forcedKey, beginString))
			}
			return d, forcedKey
		}
	}

	if strings.HasPrefix(beginString, "FIXT.1.1") {
		code := findValue(tokens, constants.TagDefaultApplVerID)
		if code == "" {
			code = findValue(tokens, constants.TagApplVerID)
		}
		if key, ok := dictionary.ApplVerIDToKey[code]; ok {
			if d, ok := reg.Get(key); ok {
				return d, key
			}
		}
		warn(fmt.Sprintf("FIXT.1.1 message without a resolvable ApplVerID, falling back to %s", fixtFallbackKey))
		if d, ok := reg.Get(fixtFallbackKey); ok {
			return d, fixtFallbackKey
		}
	}

	if beginString != "" {
		key := dictionary.KeyFromBeginString(beginString)
		if d, ok := reg.Get(key); ok {
			return d, key
		}
		warn(fmt.Sprintf("unrecognised BeginString %q, falling back to %s", beginString, defaultFallbackKey))
	}

	d, _ := reg.Get(defaultFallbackKey)
	return d, defaultFallbackKey
}

func findValue(tokens []Token, tag quickfix.Tag) string {
	for _, t := range tokens {
		if t.Tag == tag {
			return t.Value
		}
	}
	return ""
}
