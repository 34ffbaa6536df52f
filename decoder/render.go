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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fixdecoder/dictionary"
	"fixdecoder/obfuscator"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visibleWidth returns the rune width of s with ANSI SGR escapes stripped,
// so column alignment isn't thrown off by colour codes.
func visibleWidth(s string) int {
	return len([]rune(ansiEscape.ReplaceAllString(s, "")))
}

func padRight(s string, width int) string {
	pad := width - visibleWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// RenderOptions controls the message-rendering pass.
type RenderOptions struct {
	Palette *Palette
	Secret  bool
	Obf     *obfuscator.Obfuscator
}

// RenderMessage renders one prettified message as aligned, coloured lines:
// column widths are the observed maxima across tag/name/value/enum-label,
// and colour policy differs for missing, unexpected, secret and
// enum-carrying rows.
func RenderMessage(dict *dictionary.Dictionary, r Rendered, opts RenderOptions) []string {
	p := opts.Palette

	tagW, nameW, valW, enumW := 0, 0, 0, 0
	cells := make([][4]string, len(r.Rows))
	for i, row := range r.Rows {
		tagStr := strconv.Itoa(int(row.Tag))
		valueStr := row.Value
		if opts.Secret && opts.Obf != nil && !row.Missing && obfuscator.IsSensitive(row.Tag) {
			valueStr = opts.Obf.Alias(row.Tag, dict.FieldName(row.Tag), valueStr)
		}
		enumStr := ""
		if row.HasEnum {
			enumStr = row.EnumLabel
		} else if row.Value != "" {
			if f, ok := dict.Fields[row.Tag]; ok && len(f.Enums) > 0 {
				enumStr = "?"
			}
		}
		cells[i] = [4]string{tagStr, row.Name, valueStr, enumStr}
		tagW = max(tagW, len(tagStr))
		nameW = max(nameW, len(row.Name))
		valW = max(valW, len(valueStr))
		enumW = max(enumW, len(enumStr))
	}

	lines := make([]string, 0, len(r.Rows))
	for i, row := range r.Rows {
		indent := strings.Repeat("  ", row.Depth)
		tagCell := padRight(cells[i][0], tagW)
		nameCell := padRight(cells[i][1], nameW)
		valueCell := cells[i][2]
		enumCell := cells[i][3]

		var valueColoured, enumColoured string
		switch {
		case row.Missing:
			valueColoured = p.Missing.Sprint("<missing>")
		case row.Unexpected:
			valueColoured = p.Value.Sprint(valueCell) + p.Warn.Sprint(" (unexpected)")
		case opts.Secret && obfuscator.IsSensitive(row.Tag):
			valueColoured = p.Secret.Sprint(valueCell)
		default:
			valueColoured = p.Value.Sprint(valueCell)
		}
		if row.HasEnum {
			enumColoured = p.Enum.Sprint(padRight(enumCell, enumW))
		} else if enumCell == "?" {
			enumColoured = p.UnknownEnum.Sprint(padRight(enumCell, enumW))
		} else {
			enumColoured = padRight(enumCell, enumW)
		}

		var line string
		if row.Missing {
			line = fmt.Sprintf("%s%s  %s  %s", indent, p.Tag.Sprint(tagCell), p.Missing.Sprint(nameCell), valueColoured)
		} else {
			line = fmt.Sprintf("%s%s  %s  %-*s  %s", indent, p.Tag.Sprint(tagCell), p.Name.Sprint(nameCell), valW, valueColoured, enumColoured)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RenderRawLine echoes the original log line dimmed, with the located FIX
// substring highlighted.
func RenderRawLine(p *Palette, line string, fixStart, fixEnd int) string {
	if fixStart < 0 || fixEnd > len(line) || fixStart >= fixEnd {
		return p.Line.Sprint(line)
	}
	before := p.Line.Sprint(line[:fixStart])
	middle := p.Highlight.Sprint(line[fixStart:fixEnd])
	after := p.Line.Sprint(line[fixEnd:])
	return before + middle + after
}
