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
	"strconv"

	"fixdecoder/constants"
	"fixdecoder/dictionary"

	"github.com/quickfixgo/quickfix"
)

// Row is one rendered line of a prettified message: a known or unexpected
// tag, its resolved name/value/enum label, and whether it is missing or
// out of schema.
type Row struct {
	Tag        quickfix.Tag
	Name       string
	Value      string
	EnumLabel  string
	HasEnum    bool
	Depth      int // nesting depth inside repeating groups, for indentation
	Missing    bool
	Unexpected bool
}

// Rendered is a fully reordered message ready for column layout.
type Rendered struct {
	SchemaKey string
	MsgType   string
	MsgName   string
	Rows      []Row
}

// Prettify reorders one message's tokens into canonical schema order:
// build the canonical tag order for the message (header, body, trailer,
// expanding groups per observed entry count), reorder the observed tokens
// into that order, and insert one annotation row per missing required tag.
// Tokens the schema does not recognise for this message are appended after
// the canonical rows, in their original relative order (see DESIGN.md for
// why this diverges from strict positional interleaving).
func Prettify(dict *dictionary.Dictionary, schemaKey string, tokens []Token) Rendered {
	msgType := findValue(tokens, constants.TagMsgType)
	msg, known := dict.MessageByType(msgType)

	out := Rendered{SchemaKey: schemaKey, MsgType: msgType}
	if known {
		out.MsgName = msg.Name
	}

	consumed := make([]bool, len(tokens))
	byTag := map[quickfix.Tag][]int{}
	for i, t := range tokens {
		byTag[t.Tag] = append(byTag[t.Tag], i)
	}

	w := &walker{dict: dict, tokens: tokens, byTag: byTag, consumed: consumed}

	w.walkMembers(dict.Header.Members, 0)
	if known {
		w.walkMembers(msg.Members, 0)
	}
	w.walkMembers(dict.Trailer.Members, 0)

	for i, t := range tokens {
		if consumed[i] {
			continue
		}
		w.rows = append(w.rows, w.renderRow(t, 0, true, false))
	}

	out.Rows = w.rows
	return out
}

type walker struct {
	dict     *dictionary.Dictionary
	tokens   []Token
	byTag    map[quickfix.Tag][]int
	consumed []bool
	rows     []Row
}

// nextUnconsumed returns the earliest not-yet-consumed observed index for
// tag, or -1.
func (w *walker) nextUnconsumed(tag quickfix.Tag) int {
	for _, idx := range w.byTag[tag] {
		if !w.consumed[idx] {
			return idx
		}
	}
	return -1
}

func (w *walker) renderRow(t Token, depth int, unexpected, missing bool) Row {
	r := Row{Tag: t.Tag, Value: t.Value, Depth: depth, Unexpected: unexpected, Missing: missing}
	r.Name = w.dict.FieldName(t.Tag)
	if label, ok := w.dict.EnumDescription(t.Tag, t.Value); ok {
		r.EnumLabel = label
		r.HasEnum = true
	}
	return r
}

func (w *walker) walkMembers(members []dictionary.Member, depth int) {
	for _, m := range members {
		switch m.Kind {
		case dictionary.MemberField:
			idx := w.nextUnconsumed(m.FieldNumber)
			if idx == -1 {
				if m.Required {
					w.rows = append(w.rows, Row{Tag: m.FieldNumber, Name: m.FieldName, Depth: depth, Missing: true})
				}
				continue
			}
			w.consumed[idx] = true
			w.rows = append(w.rows, w.renderRow(w.tokens[idx], depth, false, false))

		case dictionary.MemberComponent:
			comp, ok := w.dict.Components[m.ComponentName]
			if !ok || comp == nil {
				continue
			}
			w.walkMembers(comp.Members, depth)

		case dictionary.MemberGroup:
			w.walkGroup(m.Group, depth)
		}
	}
}

// walkGroup consumes the counter tag, then repeats the group's member block
// once per entry. The observed entry count is taken from the counter's
// value when it parses as a non-negative integer; otherwise entries are
// counted by how many times the delimiter tag recurs among the remaining
// unconsumed tokens.
func (w *walker) walkGroup(g *dictionary.Group, depth int) {
	idx := w.nextUnconsumed(g.CounterTag)
	if idx == -1 {
		return
	}
	w.consumed[idx] = true
	w.rows = append(w.rows, w.renderRow(w.tokens[idx], depth, false, false))

	count, err := strconv.Atoi(w.tokens[idx].Value)
	if err != nil || count < 0 {
		count = w.countRemainingDelimiters(g.DelimiterTag)
	}

	for i := 0; i < count; i++ {
		if g.DelimiterTag != g.CounterTag && w.nextUnconsumed(g.DelimiterTag) == -1 {
			break
		}
		w.walkMembers(g.Members, depth+1)
	}
}

func (w *walker) countRemainingDelimiters(delimiterTag quickfix.Tag) int {
	n := 0
	for _, idx := range w.byTag[delimiterTag] {
		if !w.consumed[idx] {
			n++
		}
	}
	return n
}
