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

import "testing"

const canonicalNewOrderSingle = "8=FIX.4.4\x019=0\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=000\x01"

func TestPrettify_CanonicalReorderStability(t *testing.T) {
	reg := testRegistry(t)
	dict, ok := reg.Get("FIX44")
	if !ok {
		t.Fatalf("expected built-in FIX44 dictionary")
	}
	tokens := mustTokenize(t, canonicalNewOrderSingle)

	r := Prettify(dict, "FIX44", tokens)

	var gotOrder []int
	for _, row := range r.Rows {
		if !row.Missing {
			gotOrder = append(gotOrder, int(row.Tag))
		}
	}
	var wantOrder []int
	for _, tok := range tokens {
		wantOrder = append(wantOrder, int(tok.Tag))
	}
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(gotOrder))
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("reorder not stable at index %d: got %d want %d", i, gotOrder[i], wantOrder[i])
		}
	}
}

func TestPrettify_AnnotatesMissingRequiredField(t *testing.T) {
	reg := testRegistry(t)
	dict, _ := reg.Get("FIX44")

	withoutOrdType := "8=FIX.4.4\x019=0\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0110=000\x01"
	tokens := mustTokenize(t, withoutOrdType)

	r := Prettify(dict, "FIX44", tokens)

	found := false
	for _, row := range r.Rows {
		if row.Missing && row.Tag == 40 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing-required annotation for OrdType (40)")
	}
}

func TestPrettify_UnexpectedTokenAppendedAfterCanonicalRows(t *testing.T) {
	reg := testRegistry(t)
	dict, _ := reg.Get("FIX44")

	withExtra := "8=FIX.4.4\x019=0\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x019999=weird\x0110=000\x01"
	tokens := mustTokenize(t, withExtra)

	r := Prettify(dict, "FIX44", tokens)

	last := r.Rows[len(r.Rows)-1]
	if !last.Unexpected || last.Tag != 9999 {
		t.Fatalf("expected the unrecognised tag 9999 to be the trailing row, got %+v", last)
	}
}
