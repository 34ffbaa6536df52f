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
	"fixdecoder/constants"
	"fixdecoder/decoder"
	"fixdecoder/dictionary"

	"github.com/quickfixgo/quickfix"
)

// candidateTags is the priority order for order-key resolution: OrderID,
// then ClOrdID, then OrigClOrdID.
var candidateTags = []quickfix.Tag{constants.TagOrderID, constants.TagClOrdID, constants.TagOrigClOrdID}

// Summariser owns the per-order table for one input unit. It is the sole
// writer of that table and is never shared across inputs without an
// explicit Reset.
type Summariser struct {
	records []*Record
	byAlias map[string]*Record
}

// New returns an empty Summariser.
func New() *Summariser {
	s := &Summariser{}
	s.Reset()
	return s
}

// Reset discards every accumulated record, for the boundary between inputs.
func (s *Summariser) Reset() {
	s.records = nil
	s.byAlias = map[string]*Record{}
}

// Records returns every accumulated record, in first-seen order.
func (s *Summariser) Records() []*Record {
	return s.records
}

func tokenValue(tokens []decoder.Token, tag quickfix.Tag) string {
	for _, t := range tokens {
		if t.Tag == tag {
			return t.Value
		}
	}
	return ""
}

// resolve implements the key-resolution rule: the first candidate ID
// already known to an existing record reuses it; otherwise the first
// present candidate creates a new record. Every other observed ID becomes
// an alias.
func (s *Summariser) resolve(tokens []decoder.Token) *Record {
	var present []string
	for _, tag := range candidateTags {
		if v := tokenValue(tokens, tag); v != "" {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil
	}

	for _, v := range present {
		if rec, ok := s.byAlias[v]; ok {
			for _, v2 := range present {
				s.addAlias(rec, v2)
			}
			return rec
		}
	}

	rec := &Record{Key: present[0], AliasIDs: map[string]bool{}}
	for _, v := range present {
		s.addAlias(rec, v)
	}
	s.records = append(s.records, rec)
	return rec
}

func (s *Summariser) addAlias(rec *Record, id string) {
	rec.AliasIDs[id] = true
	s.byAlias[id] = rec
}

// Update folds one message's tokens into its order record, applying
// latest-wins field updates and appending timeline events. Messages that
// carry none of the candidate key tags are ignored.
func (s *Summariser) Update(dict *dictionary.Dictionary, tokens []decoder.Token) *Record {
	rec := s.resolve(tokens)
	if rec == nil {
		return nil
	}

	set := func(dst *string, tag quickfix.Tag) {
		if v := tokenValue(tokens, tag); v != "" {
			*dst = v
		}
	}
	set(&rec.Side, constants.TagSide)
	set(&rec.Symbol, constants.TagSymbol)
	set(&rec.Qty, constants.TagOrderQty)
	set(&rec.Price, constants.TagPrice)
	set(&rec.Currency, constants.TagCurrency)
	set(&rec.TIF, constants.TagTimeInForce)
	set(&rec.OrdType, constants.TagOrdType)
	set(&rec.TradeDate, constants.TagTradeDate)

	settlDate2 := tokenValue(tokens, constants.TagSettlDate2)
	settlDate := tokenValue(tokens, constants.TagSettlDate)
	if settlDate2 != "" || settlDate != "" {
		rec.SettlDate = preferredSettlDate(settlDate2, settlDate)
	}
	if rec.TradeDate != "" && rec.SettlDate != "" {
		rec.Tenor = Tenor(rec.TradeDate, rec.SettlDate)
	}

	msgType := tokenValue(tokens, constants.TagMsgType)

	if msgType == "8" {
		s.absorbExecutionReport(dict, rec, tokens)
	}
	if msgType == "BN" {
		s.absorbBlockNotice(rec, tokens)
	}

	rec.dirty = true
	return rec
}

func eventTimestamp(tokens []decoder.Token) string {
	if v := tokenValue(tokens, constants.TagTransactTime); v != "" {
		return v
	}
	return tokenValue(tokens, constants.TagSendingTime)
}

func (s *Summariser) absorbExecutionReport(dict *dictionary.Dictionary, rec *Record, tokens []decoder.Token) {
	msgType := tokenValue(tokens, constants.TagMsgType)
	ev := Event{
		Time:        eventTimestamp(tokens),
		MsgType:     msgType,
		MsgLabel:    msgLabel(dict, msgType),
		ClOrdID:     tokenValue(tokens, constants.TagClOrdID),
		OrigClOrdID: tokenValue(tokens, constants.TagOrigClOrdID),
		ExecType:    tokenValue(tokens, constants.TagExecType),
		OrdStatus:   tokenValue(tokens, constants.TagOrdStatus),
		CumQty:      tokenValue(tokens, constants.TagCumQty),
		LeavesQty:   tokenValue(tokens, constants.TagLeavesQty),
		LastPx:      tokenValue(tokens, constants.TagLastPx),
		AvgPx:       tokenValue(tokens, constants.TagAvgPx),
		Text:        tokenValue(tokens, constants.TagText),
	}
	rec.Timeline = append(rec.Timeline, ev)
	rec.appendState(StateTuple{OrdStatus: ev.OrdStatus, ExecType: ev.ExecType})
}

// absorbBlockNotice handles the "BN" installation-specific extension: it
// is triggered purely by MsgType == "BN", without schema validation, and
// sets ExecAckStatus plus the two additional summary columns it carries.
func (s *Summariser) absorbBlockNotice(rec *Record, tokens []decoder.Token) {
	rec.ExecAckStatus = tokenValue(tokens, constants.TagExecAckStatus)
	rec.SpotPrice = tokenValue(tokens, constants.TagLastPx)
	rec.ExecAmt = tokenValue(tokens, constants.TagOrderQty)

	last := StateTuple{ExecAckStatus: rec.ExecAckStatus}
	if len(rec.StatePath) > 0 {
		last.OrdStatus = rec.StatePath[len(rec.StatePath)-1].OrdStatus
		last.ExecType = rec.StatePath[len(rec.StatePath)-1].ExecType
	}
	rec.appendState(last)
}

func msgLabel(dict *dictionary.Dictionary, msgType string) string {
	if msg, ok := dict.MessageByType(msgType); ok {
		return msg.Name
	}
	return msgType
}

// Dirty reports whether rec has updates since the last ClearDirty, for
// follow-mode periodic flushing.
func (r *Record) Dirty() bool { return r.dirty }

// ClearDirty resets the dirty flag after a follow-mode flush.
func (r *Record) ClearDirty() { r.dirty = false }
