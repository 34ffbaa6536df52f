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

package summary

import (
	"strings"
	"testing"

	"fixdecoder/decoder"
)

func TestRender_HeaderLineCarriesKeyAndFlowLabel(t *testing.T) {
	dict := testDict(t)
	p := decoder.NewPalette(false)
	s := New()

	s.Update(dict, tokensOf(t, "8=FIX.4.4\x019=0\x0135=8\x0111=order-1\x0139=0\x0150=0\x0155=BTC-USD\x0154=1\x0110=000\x01"))
	rec := s.Records()[0]

	lines := Render(dict, p, rec)
	if !strings.Contains(lines[0], "order-1") {
		t.Fatalf("expected the header line to carry the record key, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "symbol=BTC-USD") {
		t.Fatalf("expected the summary line to carry symbol=BTC-USD, got %q", lines[1])
	}
}

func TestRender_EmptyFieldsRenderAsDash(t *testing.T) {
	dict := testDict(t)
	p := decoder.NewPalette(false)
	s := New()

	s.Update(dict, tokensOf(t, "8=FIX.4.4\x019=0\x0135=D\x0111=order-1\x0154=1\x0140=2\x0110=000\x01"))
	rec := s.Records()[0]

	lines := Render(dict, p, rec)
	if !strings.Contains(lines[1], "symbol=-") {
		t.Fatalf("expected an absent symbol to render as a dash, got %q", lines[1])
	}
}

func TestRender_TimelineTableOmittedWithoutExecutionReports(t *testing.T) {
	dict := testDict(t)
	p := decoder.NewPalette(false)
	s := New()

	s.Update(dict, tokensOf(t, "8=FIX.4.4\x019=0\x0135=D\x0111=order-1\x0154=1\x0140=2\x0110=000\x01"))
	rec := s.Records()[0]

	lines := Render(dict, p, rec)
	for _, l := range lines {
		if strings.Contains(l, "cum/leaves") {
			t.Fatalf("did not expect a timeline header without any timeline events, got %q", l)
		}
	}
}

func TestRender_TimelineRowIncludesClOrdIDAlongsideMessageLabel(t *testing.T) {
	dict := testDict(t)
	p := decoder.NewPalette(false)
	s := New()

	s.Update(dict, tokensOf(t, "8=FIX.4.4\x019=0\x0135=8\x0111=order-1\x0139=0\x0150=0\x0110=000\x01"))
	rec := s.Records()[0]

	lines := Render(dict, p, rec)
	found := false
	for _, l := range lines {
		if strings.Contains(l, "order-1") && strings.Contains(l, "ExecutionReport") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a timeline row combining the message label and ClOrdID, got:\n%s", strings.Join(lines, "\n"))
	}
}

func TestRender_BlockNoticeExecFieldsRendered(t *testing.T) {
	dict := testDict(t)
	p := decoder.NewPalette(false)
	s := New()

	s.Update(dict, tokensOf(t, "8=FIX.4.4\x019=0\x0135=BN\x0111=order-1\x011036=A\x0144=50000\x0110=000\x01"))
	rec := s.Records()[0]

	lines := Render(dict, p, rec)
	found := false
	for _, l := range lines {
		if strings.Contains(l, "execAckStatus=A") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an execAckStatus line for a block notice, got:\n%s", strings.Join(lines, "\n"))
	}
}
