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

import "github.com/fatih/color"

// Palette holds one *color.Color per rendering role. It is built once from
// a plain boolean by NewPalette and never queries terminal state itself,
// per the "colour auto-detection is a single pure function" design note:
// callers decide the boolean from (flag, isatty(stdout)) and hand it in.
type Palette struct {
	Line        *color.Color // the raw echoed log line
	Tag         *color.Color // tag numbers
	Name        *color.Color // field names
	Value       *color.Color // plain field values
	Enum        *color.Color // known enum labels
	UnknownEnum *color.Color // enum codes with no known label
	Missing     *color.Color // required-and-missing annotations
	Secret      *color.Color // obfuscated alias values
	Highlight   *color.Color // the FIX substring inside an echoed raw line
	Error       *color.Color // validator error findings
	Warn        *color.Color // validator warning findings
	Title       *color.Color // section titles (message/component headers)
}

// NewPalette builds either the coloured or the plain (no-op) palette.
func NewPalette(enabled bool) *Palette {
	if !enabled {
		off := color.New()
		off.DisableColor()
		return &Palette{
			Line: off, Tag: off, Name: off, Value: off, Enum: off,
			UnknownEnum: off, Missing: off, Secret: off, Highlight: off,
			Error: off, Warn: off, Title: off,
		}
	}
	return &Palette{
		Line:        color.New(color.FgHiBlack),
		Tag:         color.New(color.FgCyan),
		Name:        color.New(color.FgGreen),
		Value:       color.New(color.FgYellow),
		Enum:        color.New(color.FgHiYellow),
		UnknownEnum: color.New(color.FgRed),
		Missing:     color.New(color.FgMagenta),
		Secret:      color.New(color.FgHiMagenta, color.Bold),
		Highlight:   color.New(color.FgHiWhite, color.Bold),
		Error:       color.New(color.FgRed, color.Bold),
		Warn:        color.New(color.FgYellow),
		Title:       color.New(color.FgRed, color.Bold),
	}
}

// EffectiveColour computes whether colour output should be enabled from the
// --colour flag value ("", "yes" or "no") and whether stdout is a terminal,
// isolating the one policy decision the rest of the renderer must not make
// itself.
func EffectiveColour(flag string, isTTY bool) bool {
	switch flag {
	case "yes":
		return true
	case "no":
		return false
	default:
		return isTTY
	}
}
