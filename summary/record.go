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

// Package summary folds a stream of order-related FIX messages into
// per-order records with a state-transition timeline, instead of
// per-message output.
package summary

// StateTuple is one distinct point on an order's observed state path.
type StateTuple struct {
	OrdStatus     string
	ExecType      string
	ExecAckStatus string // empty unless a BN message set it
}

func (s StateTuple) equal(o StateTuple) bool {
	return s.OrdStatus == o.OrdStatus && s.ExecType == o.ExecType && s.ExecAckStatus == o.ExecAckStatus
}

// Event is one timeline entry for a record.
type Event struct {
	Time          string
	MsgType       string
	MsgLabel      string
	ClOrdID       string
	OrigClOrdID   string
	ExecAckStatus string
	ExecType      string
	OrdStatus     string
	CumQty        string
	LeavesQty     string
	LastPx        string
	AvgPx         string
	Text          string
}

// Record is one order's accumulated state, keyed by priority-ordered
// candidate resolution (OrderID, then ClOrdID, then OrigClOrdID).
type Record struct {
	Key      string
	AliasIDs map[string]bool

	Side     string
	Symbol   string
	Qty      string
	Price    string
	Currency string
	TIF      string
	OrdType  string

	TradeDate string
	SettlDate string
	Tenor     string

	ExecAckStatus string
	SpotPrice     string
	ExecAmt       string

	StatePath []StateTuple
	Timeline  []Event

	dirty bool
}

// FlowLabel joins StatePath's OrdStatus labels with "→", skipping any
// leading entries whose OrdStatus is unknown/empty (a message updated
// other fields on the record before the first ExecutionReport arrived).
func (r *Record) FlowLabel(labelFor func(ordStatus string) string) string {
	var labels []string
	skippingLeading := true
	for _, st := range r.StatePath {
		if skippingLeading && st.OrdStatus == "" {
			continue
		}
		skippingLeading = false
		labels = append(labels, labelFor(st.OrdStatus))
	}
	out := ""
	for i, l := range labels {
		if i > 0 {
			out += " → "
		}
		out += l
	}
	return out
}

func (r *Record) appendState(t StateTuple) {
	if len(r.StatePath) > 0 && r.StatePath[len(r.StatePath)-1].equal(t) {
		return
	}
	r.StatePath = append(r.StatePath, t)
}
