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

// Package dictionary models QuickFIX-style XML schemas as an in-memory tree
// of fields, components, messages, header and trailer, with the indexes the
// rest of the decoder needs to render and validate a message.
package dictionary

import (
	"strconv"

	"github.com/quickfixgo/quickfix"
)

// FieldKind is the wire type of a field's value, taken verbatim from the
// schema's type attribute (upper-cased). It is left open rather than a
// closed Go enum because QuickFIX schemas across versions carry types this
// package has never seen; unrecognised kinds fall through to permissive
// handling everywhere they're consulted.
type FieldKind string

const (
	KindChar                FieldKind = "CHAR"
	KindInt                 FieldKind = "INT"
	KindString              FieldKind = "STRING"
	KindPrice               FieldKind = "PRICE"
	KindQty                 FieldKind = "QTY"
	KindAmt                 FieldKind = "AMT"
	KindLength              FieldKind = "LENGTH"
	KindNumInGroup          FieldKind = "NUMINGROUP"
	KindSeqNum              FieldKind = "SEQNUM"
	KindDayOfMonth          FieldKind = "DAYOFMONTH"
	KindFloat               FieldKind = "FLOAT"
	KindPriceOffset         FieldKind = "PRICEOFFSET"
	KindPercentage          FieldKind = "PERCENTAGE"
	KindBoolean             FieldKind = "BOOLEAN"
	KindUTCTimestamp        FieldKind = "UTCTIMESTAMP"
	KindUTCDateOnly         FieldKind = "UTCDATEONLY"
	KindUTCTimeOnly         FieldKind = "UTCTIMEONLY"
	KindLocalMktDate        FieldKind = "LOCALMKTDATE"
	KindMonthYear           FieldKind = "MONTHYEAR"
	KindMultipleStringValue FieldKind = "MULTIPLESTRINGVALUE"
	KindMultipleValueString FieldKind = "MULTIPLEVALUESTRING"
	KindMultipleCharValue   FieldKind = "MULTIPLECHARVALUE"
	KindCurrency            FieldKind = "CURRENCY"
	KindCountry             FieldKind = "COUNTRY"
	KindExchange            FieldKind = "EXCHANGE"
	KindData                FieldKind = "DATA"
	KindXMLData             FieldKind = "XMLDATA"
	KindLanguage            FieldKind = "LANGUAGE"
	KindPattern             FieldKind = "PATTERN"
	KindTenor               FieldKind = "TENOR"
)

// EnumValue is one declared wire-code for a field, in schema declaration order.
type EnumValue struct {
	Enum        string
	Description string
}

// Field is a single tag definition: its number, name, wire type and,
// optionally, an ordered set of legal wire-code values.
type Field struct {
	Number quickfix.Tag
	Name   string
	Kind   FieldKind
	Enums  []EnumValue
}

// EnumDescription looks up the human label for a wire code, preserving the
// schema's original casing.
func (f *Field) EnumDescription(value string) (string, bool) {
	for _, e := range f.Enums {
		if e.Enum == value {
			return e.Description, true
		}
	}
	return "", false
}

// MemberKind discriminates the tagged-variant Member union.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberComponent
	MemberGroup
)

// Member is one entry in a Component's or Message's ordered member list.
// Exactly one of FieldNumber, ComponentName or Group is meaningful,
// selected by Kind.
type Member struct {
	Kind          MemberKind
	Required      bool
	FieldNumber   quickfix.Tag
	FieldName     string
	ComponentName string
	Group         *Group
}

// Group is a repeating group: CounterTag announces how many entries follow,
// DelimiterTag is the first non-reference field member in declaration order
// (the tag that marks the start of each entry), and Members repeats per entry.
type Group struct {
	Name         string
	CounterTag   quickfix.Tag
	DelimiterTag quickfix.Tag
	Required     bool
	Members      []Member
}

// Component is a named, reusable ordered list of members.
type Component struct {
	Name    string
	Members []Member
}

// Message is one wire message definition: its msgtype code, category and
// member tree, plus the transitive set of tags reachable through it.
type Message struct {
	Name        string
	MsgType     string
	Category    string
	Members     []Member
	DefinedTags map[quickfix.Tag]bool
}

// Dictionary is a fully-resolved FIX schema: every index the rest of the
// decoder needs to render, validate and explore messages without re-walking
// the member tree.
type Dictionary struct {
	Key     string
	Major   int
	Minor   int
	SP      string
	Header  *Component
	Trailer *Component

	Fields       map[quickfix.Tag]*Field
	FieldsByName map[string]*Field
	Components   map[string]*Component
	Messages     map[string]*Message // by msgtype
	MessagesByName map[string]*Message

	// RepeatableTags is the union of member tags of every group reachable
	// from any message in this dictionary.
	RepeatableTags map[quickfix.Tag]bool

	// CounterToGroup indexes a group's schema by its counter tag, searched
	// across every message that declares that group.
	CounterToGroup map[quickfix.Tag]*Group
}

// FieldName resolves a tag to its schema name, falling back to the decimal
// tag number when the tag is unknown to this dictionary.
func (d *Dictionary) FieldName(tag quickfix.Tag) string {
	if f, ok := d.Fields[tag]; ok {
		return f.Name
	}
	return strconv.Itoa(int(tag))
}

// FieldKindOf returns the declared wire type for a tag, if known.
func (d *Dictionary) FieldKindOf(tag quickfix.Tag) (FieldKind, bool) {
	f, ok := d.Fields[tag]
	if !ok {
		return "", false
	}
	return f.Kind, true
}

// EnumDescription resolves the human label for a tag/value pair, if the
// dictionary declares that value.
func (d *Dictionary) EnumDescription(tag quickfix.Tag, value string) (string, bool) {
	f, ok := d.Fields[tag]
	if !ok {
		return "", false
	}
	return f.EnumDescription(value)
}

// IsRepeatable reports whether tag is a member of some group in this
// dictionary (including the counter tag itself).
func (d *Dictionary) IsRepeatable(tag quickfix.Tag) bool {
	return d.RepeatableTags[tag]
}

// MessageByType resolves a msgtype wire code (tag 35 value) to its Message
// definition.
func (d *Dictionary) MessageByType(msgType string) (*Message, bool) {
	m, ok := d.Messages[msgType]
	return m, ok
}
