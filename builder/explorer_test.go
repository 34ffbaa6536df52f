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

package builder

import (
	"strings"
	"testing"

	"fixdecoder/dictionary"
)

func loadTestDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	reg, err := dictionary.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	dict, ok := reg.Get("FIX44")
	if !ok {
		t.Fatalf("expected built-in FIX44 dictionary")
	}
	return dict
}

func TestRenderMessage_UnknownNameErrors(t *testing.T) {
	dict := loadTestDict(t)
	if _, err := RenderMessage(dict, "NotAMessage", Options{}); err == nil {
		t.Fatalf("expected error for unknown message name")
	}
}

func TestRenderMessage_NewOrderSingleListsRequiredFields(t *testing.T) {
	dict := loadTestDict(t)
	lines, err := RenderMessage(dict, "NewOrderSingle", Options{})
	if err != nil {
		t.Fatalf("RenderMessage: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected non-empty structural rendering")
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "ClOrdID") {
		t.Fatalf("expected ClOrdID in rendered structure, got:\n%s", joined)
	}
}

func TestRenderMessage_VerboseIncludesEnumLabels(t *testing.T) {
	dict := loadTestDict(t)
	lines, err := RenderMessage(dict, "NewOrderSingle", Options{Verbose: true})
	if err != nil {
		t.Fatalf("RenderMessage: %v", err)
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "=") {
		t.Fatalf("expected verbose enum hints of the form code=label, got:\n%s", joined)
	}
}

func TestListMessages_SortedAlphabetically(t *testing.T) {
	dict := loadTestDict(t)
	names := ListMessages(dict, false)
	if len(names) == 0 {
		t.Fatalf("expected at least one message name")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("expected sorted names, got %q before %q", names[i-1], names[i])
		}
	}
}

func TestRenderTag_UnknownTagErrors(t *testing.T) {
	dict := loadTestDict(t)
	if _, err := RenderTag(dict, 999999); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

func TestRenderTag_KnownFieldReportsKind(t *testing.T) {
	dict := loadTestDict(t)
	lines, err := RenderTag(dict, 54) // Side
	if err != nil {
		t.Fatalf("RenderTag: %v", err)
	}
	if !strings.Contains(lines[0], "Side") {
		t.Fatalf("expected field name Side in output, got %q", lines[0])
	}
}
