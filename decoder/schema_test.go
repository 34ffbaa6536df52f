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
	"testing"

	"fixdecoder/dictionary"
)

func testRegistry(t *testing.T) *dictionary.Registry {
	t.Helper()
	reg, err := dictionary.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func mustTokenize(t *testing.T, run string) []Token {
	t.Helper()
	tokens, err := Tokenize(run, 0x01)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return tokens
}

func TestPickSchema_DerivesKeyFromBeginString(t *testing.T) {
	reg := testRegistry(t)
	tokens := mustTokenize(t, "8=FIX.4.4\x0135=D\x01")

	_, key := PickSchema(reg, tokens, "", nil)
	if key != "FIX44" {
		t.Fatalf("expected FIX44, got %s", key)
	}
}

func TestPickSchema_ForcedKeyWinsOverBeginString(t *testing.T) {
	reg := testRegistry(t)
	tokens := mustTokenize(t, "8=FIX.4.2\x0135=D\x01")

	var warned string
	_, key := PickSchema(reg, tokens, "FIX44", func(msg string) { warned = msg })
	if key != "FIX44" {
		t.Fatalf("expected forced key to win, got %s", key)
	}
	if warned == "" {
		t.Fatalf("expected a disagreement warning")
	}
}

func TestPickSchema_FIXTWrapperResolvesViaDefaultApplVerID(t *testing.T) {
	reg := testRegistry(t)
	tokens := mustTokenize(t, "8=FIXT.1.1\x0135=D\x011137=9\x01")

	_, key := PickSchema(reg, tokens, "", nil)
	if key != "FIX50SP2" {
		t.Fatalf("expected FIX50SP2 via DefaultApplVerID=9, got %s", key)
	}
}

func TestPickSchema_FIXTWithoutApplVerIDFallsBack(t *testing.T) {
	reg := testRegistry(t)
	tokens := mustTokenize(t, "8=FIXT.1.1\x0135=D\x01")

	var warned string
	_, key := PickSchema(reg, tokens, "", func(msg string) { warned = msg })
	if key != fixtFallbackKey {
		t.Fatalf("expected fallback key %s, got %s", fixtFallbackKey, key)
	}
	if warned == "" {
		t.Fatalf("expected a fallback warning")
	}
}

func TestPickSchema_UnrecognisedBeginStringFallsBack(t *testing.T) {
	reg := testRegistry(t)
	tokens := mustTokenize(t, "8=FIX.9.9\x0135=D\x01")

	_, key := PickSchema(reg, tokens, "", nil)
	if key != defaultFallbackKey {
		t.Fatalf("expected fallback key %s, got %s", defaultFallbackKey, key)
	}
}
