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

// Package builder renders a dictionary's structure directly, without a
// message stream: message/component/tag lookups for the explorer modes of
// the command line, and the plain listings shown when no name is given.
package builder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fixdecoder/decoder"
	"fixdecoder/dictionary"

	"github.com/quickfixgo/quickfix"
)

// RowSetter abstracts appending one rendered structural row, the same role
// FieldSetter once played for outbound field assignment: a single visitor
// interface the walker below drives regardless of whether the destination
// is a message, a component, or a group entry.
type RowSetter interface {
	AddRow(depth int, tag string, name string, required bool, enumHint string)
}

// tableRows accumulates rows for later column-aligned rendering.
type tableRows struct {
	rows []structRow
}

type structRow struct {
	depth    int
	tag      string
	name     string
	required bool
	enumHint string
}

func (t *tableRows) AddRow(depth int, tag, name string, required bool, enumHint string) {
	t.rows = append(t.rows, structRow{depth: depth, tag: tag, name: name, required: required, enumHint: enumHint})
}

// Options controls how much detail RenderMessage/RenderComponent emit.
type Options struct {
	Verbose       bool // include enum value lists
	Columns       bool // render as a column table vs. an indented tree
	IncludeHeader bool
	IncludeTrailer bool
}

func requiredMark(required bool) string {
	if required {
		return "Y"
	}
	return "."
}

func enumHint(dict *dictionary.Dictionary, tag quickfix.Tag, verbose bool) string {
	f, ok := dict.Fields[tag]
	if !ok || len(f.Enums) == 0 {
		return ""
	}
	if !verbose {
		return "(enum)"
	}
	parts := make([]string, 0, len(f.Enums))
	for _, e := range f.Enums {
		parts = append(parts, fmt.Sprintf("%s=%s", e.Enum, e.Description))
	}
	return strings.Join(parts, ", ")
}

func walkMembers(dict *dictionary.Dictionary, members []dictionary.Member, depth int, opts Options, out RowSetter) {
	for _, m := range members {
		switch m.Kind {
		case dictionary.MemberField:
			out.AddRow(depth, strconv.Itoa(int(m.FieldNumber)), dict.FieldName(m.FieldNumber), m.Required, enumHint(dict, m.FieldNumber, opts.Verbose))
		case dictionary.MemberComponent:
			out.AddRow(depth, "", m.ComponentName, m.Required, "")
			if comp, ok := dict.Components[m.ComponentName]; ok {
				walkMembers(dict, comp.Members, depth+1, opts, out)
			}
		case dictionary.MemberGroup:
			out.AddRow(depth, strconv.Itoa(int(m.Group.CounterTag)), m.Group.Name, m.Group.Required, "(group)")
			walkMembers(dict, m.Group.Members, depth+1, opts, out)
		}
	}
}

// RenderMessage produces the structural rendering of a named message, per
// the dictionary explorer's --message=M mode.
func RenderMessage(dict *dictionary.Dictionary, name string, opts Options) ([]string, error) {
	msg, ok := dict.MessagesByName[name]
	if !ok {
		return nil, fmt.Errorf("builder: unknown message %q", name)
	}

	t := &tableRows{}
	if opts.IncludeHeader && dict.Header != nil {
		t.AddRow(0, "", "Header", false, "")
		walkMembers(dict, dict.Header.Members, 1, opts, t)
	}
	t.AddRow(0, msg.MsgType, msg.Name, false, "")
	walkMembers(dict, msg.Members, 1, opts, t)
	if opts.IncludeTrailer && dict.Trailer != nil {
		t.AddRow(0, "", "Trailer", false, "")
		walkMembers(dict, dict.Trailer.Members, 1, opts, t)
	}

	return renderRows(t.rows, opts.Columns), nil
}

// RenderComponent produces the structural rendering of a named component,
// per the dictionary explorer's --component=N mode.
func RenderComponent(dict *dictionary.Dictionary, name string, opts Options) ([]string, error) {
	comp, ok := dict.Components[name]
	if !ok {
		return nil, fmt.Errorf("builder: unknown component %q", name)
	}
	t := &tableRows{}
	walkMembers(dict, comp.Members, 0, opts, t)
	return renderRows(t.rows, opts.Columns), nil
}

// RenderTag produces the field detail for a single tag, per the dictionary
// explorer's --tag=T mode.
func RenderTag(dict *dictionary.Dictionary, tag quickfix.Tag) ([]string, error) {
	f, ok := dict.Fields[tag]
	if !ok {
		return nil, fmt.Errorf("builder: unknown tag %d", tag)
	}
	lines := []string{
		fmt.Sprintf("%d  %s  (%s)", f.Number, f.Name, f.Kind),
	}
	if len(f.Enums) > 0 {
		lines = append(lines, fmt.Sprintf("  repeatable: %v", dict.IsRepeatable(tag)))
		for _, e := range f.Enums {
			lines = append(lines, fmt.Sprintf("  %-10s %s", e.Enum, e.Description))
		}
	}
	return lines, nil
}

// ListMessages returns every message name known to dict, alphabetised,
// or (with columns) a two-column msgtype/name table.
func ListMessages(dict *dictionary.Dictionary, columns bool) []string {
	names := make([]string, 0, len(dict.MessagesByName))
	for name := range dict.MessagesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	if !columns {
		return names
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		msg := dict.MessagesByName[name]
		out = append(out, fmt.Sprintf("%-4s %s", msg.MsgType, name))
	}
	return out
}

// ListComponents returns every component name known to dict, alphabetised.
func ListComponents(dict *dictionary.Dictionary) []string {
	names := make([]string, 0, len(dict.Components))
	for name := range dict.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderRows(rows []structRow, columns bool) []string {
	if columns {
		return renderRowsColumns(rows)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		indent := strings.Repeat("  ", r.depth)
		line := fmt.Sprintf("%s%-4s %-3s %s", indent, r.tag, requiredMark(r.required), r.name)
		if r.enumHint != "" {
			line += "  " + r.enumHint
		}
		out = append(out, line)
	}
	return out
}

func renderRowsColumns(rows []structRow) []string {
	tagW, reqW, nameW := len("tag"), 1, len("name")
	for _, r := range rows {
		if w := len(r.tag); w > tagW {
			tagW = w
		}
		indented := strings.Repeat("  ", r.depth) + r.name
		if w := len(indented); w > nameW {
			nameW = w
		}
	}
	out := []string{fmt.Sprintf("%-*s %-*s %-*s %s", tagW, "tag", reqW, "R", nameW, "name", "enum")}
	for _, r := range rows {
		indented := strings.Repeat("  ", r.depth) + r.name
		out = append(out, fmt.Sprintf("%-*s %-*s %-*s %s", tagW, r.tag, reqW, requiredMark(r.required), nameW, indented, r.enumHint))
	}
	return out
}

// Colourise applies p to the leading tag column of pre-rendered explorer
// lines, matching the prettifier's colour treatment without re-deriving it.
func Colourise(p *decoder.Palette, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		fields := strings.SplitN(l, " ", 2)
		if len(fields) == 2 {
			out[i] = p.Tag.Sprint(fields[0]) + " " + fields[1]
		} else {
			out[i] = l
		}
	}
	return out
}
