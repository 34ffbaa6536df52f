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

package validator

import (
	"testing"

	"fixdecoder/decoder"
	"fixdecoder/dictionary"
)

const wellFormedNewOrderSingle = "8=FIX.4.4\x019=104\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=042\x01"

func testDict(t *testing.T) *dictionary.Dictionary {
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

func tokenizeOrFail(t *testing.T, raw string) []decoder.Token {
	t.Helper()
	tokens, err := decoder.Tokenize(raw, 0x01)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return tokens
}

func TestValidate_WellFormedMessageHasNoErrors(t *testing.T) {
	dict := testDict(t)
	tokens := tokenizeOrFail(t, wellFormedNewOrderSingle)

	findings := Validate(dict, tokens, wellFormedNewOrderSingle, 0x01)
	for _, f := range findings {
		if f.Severity == SeverityError {
			t.Errorf("unexpected error finding: %s", f.Message)
		}
	}
}

func TestValidate_MissingRequiredFieldReportsExactlyOneFinding(t *testing.T) {
	dict := testDict(t)
	withoutOrdType := "8=FIX.4.4\x019=90\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0110=000\x01"
	tokens := tokenizeOrFail(t, withoutOrdType)

	findings := Validate(dict, tokens, withoutOrdType, 0x01)

	count := 0
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 40 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one finding for missing OrdType, got %d", count)
	}
}

func TestValidate_BodyLengthMismatchReported(t *testing.T) {
	dict := testDict(t)
	tampered := "8=FIX.4.4\x019=999\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=042\x01"
	tokens := tokenizeOrFail(t, tampered)

	findings := Validate(dict, tokens, tampered, 0x01)
	found := false
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 9 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a BodyLength mismatch finding")
	}
}

func TestValidate_CheckSumMismatchReported(t *testing.T) {
	dict := testDict(t)
	tampered := "8=FIX.4.4\x019=104\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=999\x01"
	tokens := tokenizeOrFail(t, tampered)

	findings := Validate(dict, tokens, tampered, 0x01)
	found := false
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 10 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CheckSum mismatch finding")
	}
}

func TestValidate_UnrecognisedEnumValueReported(t *testing.T) {
	dict := testDict(t)
	badSide := "8=FIX.4.4\x019=104\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=9\x0160=20260806-12:00:00\x0140=2\x0110=000\x01"
	tokens := tokenizeOrFail(t, badSide)

	findings := Validate(dict, tokens, badSide, 0x01)
	found := false
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 54 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unknown enum finding for Side=9")
	}
}

func TestValidate_DuplicateNonRepeatableFieldReported(t *testing.T) {
	dict := testDict(t)
	duplicated := "8=FIX.4.4\x019=104\x0135=D\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=000\x01"
	tokens := tokenizeOrFail(t, duplicated)

	findings := Validate(dict, tokens, duplicated, 0x01)
	found := false
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 11 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-field finding for ClOrdID")
	}
}

func TestValidate_UnrecognisedMsgTypeSkipsStructuralChecksButStillChecksFraming(t *testing.T) {
	dict := testDict(t)
	unknown := "8=FIX.4.4\x019=104\x0135=ZZ\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20260806-12:00:00\x0111=order-1\x0155=BTC-USD\x0154=1\x0160=20260806-12:00:00\x0140=2\x0110=999\x01"
	tokens := tokenizeOrFail(t, unknown)

	findings := Validate(dict, tokens, unknown, 0x01)

	sawUnknownMsgType, sawChecksum := false, false
	for _, f := range findings {
		if f.Tag != nil && *f.Tag == 35 {
			sawUnknownMsgType = true
		}
		if f.Tag != nil && *f.Tag == 10 {
			sawChecksum = true
		}
	}
	if !sawUnknownMsgType {
		t.Errorf("expected an unrecognised-MsgType finding")
	}
	if !sawChecksum {
		t.Errorf("expected checksum framing check to still run")
	}
}
