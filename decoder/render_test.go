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
	"strings"
	"testing"

	"fixdecoder/obfuscator"
)

func TestRenderMessage_PlainPaletteProducesOneLinePerRow(t *testing.T) {
	reg := testRegistry(t)
	dict, _ := reg.Get("FIX44")
	tokens := mustTokenize(t, canonicalNewOrderSingle)
	r := Prettify(dict, "FIX44", tokens)

	lines := RenderMessage(dict, r, RenderOptions{Palette: NewPalette(false)})
	if len(lines) != len(r.Rows) {
		t.Fatalf("expected %d lines, got %d", len(r.Rows), len(lines))
	}
	if !strings.Contains(lines[0], "8") {
		t.Fatalf("expected first row to reference BeginString's tag, got %q", lines[0])
	}
}

func TestRenderMessage_SecretModeAliasesSensitiveField(t *testing.T) {
	reg := testRegistry(t)
	dict, _ := reg.Get("FIX44")
	tokens := mustTokenize(t, canonicalNewOrderSingle)
	r := Prettify(dict, "FIX44", tokens)

	obf := obfuscator.New()
	lines := RenderMessage(dict, r, RenderOptions{Palette: NewPalette(false), Secret: true, Obf: obf})

	joined := strings.Join(lines, "\n")
	if strings.Contains(joined, "order-1") {
		t.Fatalf("expected ClOrdID value to be aliased under --secret, got:\n%s", joined)
	}
	if !strings.Contains(joined, "ClOrdID0001") {
		t.Fatalf("expected deterministic alias ClOrdID0001, got:\n%s", joined)
	}
}

func TestRenderRawLine_HighlightsFixSubstring(t *testing.T) {
	p := NewPalette(false)
	line := "prefix 8=FIX.4.4\x0110=000\x01 suffix"
	start, end, ok := FindRun(line, 0x01)
	if !ok {
		t.Fatalf("expected a run to be found")
	}
	out := RenderRawLine(p, line, start, end)
	if out != line {
		t.Fatalf("expected identical text with colour disabled, got %q", out)
	}
}
