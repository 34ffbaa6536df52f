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

package obfuscator

import (
	"testing"

	"fixdecoder/constants"
)

func TestAlias_SameValueReusesAlias(t *testing.T) {
	o := New()
	first := o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	second := o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	if first != second {
		t.Fatalf("expected repeated value to reuse alias: %q vs %q", first, second)
	}
	if first != "ClOrdID0001" {
		t.Fatalf("expected first alias ClOrdID0001, got %q", first)
	}
}

func TestAlias_DistinctValuesGetDistinctCounters(t *testing.T) {
	o := New()
	a := o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	b := o.Alias(constants.TagClOrdID, "ClOrdID", "order-2")
	if a == b {
		t.Fatalf("expected distinct values to get distinct aliases")
	}
	if b != "ClOrdID0002" {
		t.Fatalf("expected second alias ClOrdID0002, got %q", b)
	}
}

func TestAlias_CountersAreIndependentPerTag(t *testing.T) {
	o := New()
	o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	first := o.Alias(constants.TagOrderID, "OrderID", "cb-order-1")
	if first != "OrderID0001" {
		t.Fatalf("expected independent per-tag counters, got %q", first)
	}
}

func TestReset_ClearsAllState(t *testing.T) {
	o := New()
	o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	o.Reset()
	got := o.Alias(constants.TagClOrdID, "ClOrdID", "order-1")
	if got != "ClOrdID0001" {
		t.Fatalf("expected counters restarted after Reset, got %q", got)
	}
}

func TestIsSensitive(t *testing.T) {
	if !IsSensitive(constants.TagClOrdID) {
		t.Errorf("expected ClOrdID to be sensitive")
	}
	if IsSensitive(constants.TagSymbol) {
		t.Errorf("expected Symbol to not be sensitive")
	}
}
