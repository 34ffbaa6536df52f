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
	"strconv"
	"strings"

	"fixdecoder/constants"
	"fixdecoder/decoder"
	"fixdecoder/dictionary"

	"github.com/quickfixgo/quickfix"
)

// Validate runs every check, in order, against a single tokenised message.
// raw/delim are needed for the byte-exact framing checks; tokens drive
// every structural and semantic check. Validation never panics or aborts
// early: every applicable check always runs and contributes its own
// findings.
func Validate(dict *dictionary.Dictionary, tokens []decoder.Token, raw string, delim byte) []Finding {
	var findings []Finding

	msgType := ""
	for _, t := range tokens {
		if t.Tag == constants.TagMsgType {
			msgType = t.Value
			break
		}
	}
	msg, known := dict.MessageByType(msgType)
	if msgType == "" {
		findings = append(findings, errorNoTag("MsgType (35) is missing"))
	} else if !known {
		findings = append(findings, errorf(constants.TagMsgType, "MsgType %q is not recognised by dictionary %s", msgType, dict.Key))
	}

	findings = append(findings, checkFraming(raw, delim)...)

	if !known {
		return findings
	}

	byTag := map[quickfix.Tag][]string{}
	var order []quickfix.Tag
	for _, t := range tokens {
		if _, seen := byTag[t.Tag]; !seen {
			order = append(order, t.Tag)
		}
		byTag[t.Tag] = append(byTag[t.Tag], t.Value)
	}

	v := &checker{dict: dict, byTag: byTag, seenCount: map[quickfix.Tag]int{}}
	v.walkRequired(dict.Header.Members)
	v.walkRequired(msg.Members)
	v.walkRequired(dict.Trailer.Members)
	findings = append(findings, v.findings...)

	for _, tag := range order {
		field, ok := dict.Fields[tag]
		if !ok {
			continue
		}
		for _, val := range byTag[tag] {
			if val == "" {
				continue
			}
			if !conforms(field.Kind, val) {
				findings = append(findings, errorf(tag, "value %q is not a valid %s", val, field.Kind))
			}
			if len(field.Enums) > 0 {
				findings = append(findings, checkEnum(field, tag, val)...)
			}
		}
	}

	findings = append(findings, checkGroupStructure(dict, msg, byTag)...)
	findings = append(findings, checkFieldOrder(dict, msg, tokens)...)

	return findings
}

func checkEnum(field *dictionary.Field, tag quickfix.Tag, val string) []Finding {
	var findings []Finding
	values := []string{val}
	if field.Kind == dictionary.KindMultipleStringValue || field.Kind == dictionary.KindMultipleValueString {
		values = strings.Split(val, " ")
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := field.EnumDescription(v); !ok {
			findings = append(findings, errorf(tag, "value %q is not a known enum code for %s", v, field.Name))
		}
	}
	return findings
}

// checker walks a message's required members, reporting one finding per
// missing required field, including inside required groups.
type checker struct {
	dict      *dictionary.Dictionary
	byTag     map[quickfix.Tag][]string
	seenCount map[quickfix.Tag]int
	findings  []Finding
}

func (v *checker) walkRequired(members []dictionary.Member) {
	for _, m := range members {
		switch m.Kind {
		case dictionary.MemberField:
			if !m.Required {
				continue
			}
			if _, ok := v.byTag[m.FieldNumber]; !ok {
				v.findings = append(v.findings, errorf(m.FieldNumber, "required field %s (%d) is missing", m.FieldName, m.FieldNumber))
			}
		case dictionary.MemberComponent:
			comp, ok := v.dict.Components[m.ComponentName]
			if !ok || comp == nil {
				continue
			}
			if m.Required {
				v.walkRequired(comp.Members)
			} else {
				v.walkOptionalIfPresent(comp.Members)
			}
		case dictionary.MemberGroup:
			if !m.Required {
				continue
			}
			if _, ok := v.byTag[m.Group.CounterTag]; !ok {
				v.findings = append(v.findings, errorf(m.Group.CounterTag, "required group %s is missing", m.Group.Name))
				continue
			}
			v.walkRequired(m.Group.Members)
		}
	}
}

// walkOptionalIfPresent recurses into an optional component's members only
// when at least one of them was observed, so a component that is entirely
// absent isn't reported for its own required sub-members.
func (v *checker) walkOptionalIfPresent(members []dictionary.Member) {
	if !v.anyPresent(members) {
		return
	}
	v.walkRequired(members)
}

func (v *checker) anyPresent(members []dictionary.Member) bool {
	for _, m := range members {
		switch m.Kind {
		case dictionary.MemberField:
			if _, ok := v.byTag[m.FieldNumber]; ok {
				return true
			}
		case dictionary.MemberComponent:
			if comp, ok := v.dict.Components[m.ComponentName]; ok && comp != nil && v.anyPresent(comp.Members) {
				return true
			}
		case dictionary.MemberGroup:
			if _, ok := v.byTag[m.Group.CounterTag]; ok {
				return true
			}
		}
	}
	return false
}

// checkGroupStructure validates every group present in the message: the
// counter's declared value equals the observed entry count, which is the
// number of times the group's delimiter tag occurs in the message. A group
// whose delimiter is its own counter tag is not count-checked.
func checkGroupStructure(dict *dictionary.Dictionary, msg *dictionary.Message, byTag map[quickfix.Tag][]string) []Finding {
	var findings []Finding
	var walk func(members []dictionary.Member)
	walk = func(members []dictionary.Member) {
		for _, m := range members {
			switch m.Kind {
			case dictionary.MemberComponent:
				if comp, ok := dict.Components[m.ComponentName]; ok && comp != nil {
					walk(comp.Members)
				}
			case dictionary.MemberGroup:
				g := m.Group
				declared, ok := byTag[g.CounterTag]
				if !ok {
					walk(g.Members)
					continue
				}
				n, err := strconv.Atoi(declared[0])
				if err != nil {
					findings = append(findings, errorf(g.CounterTag, "group counter %s is not an integer", g.Name))
				} else {
					observed := len(byTag[g.DelimiterTag])
					if g.DelimiterTag == g.CounterTag {
						observed = n
					}
					if n != observed {
						findings = append(findings, errorf(g.CounterTag, "group %s declares %d entries, observed %d", g.Name, n, observed))
					}
				}
				walk(g.Members)
			}
		}
	}
	walk(msg.Members)
	return findings
}

// checkFieldOrder validates that any tag outside a group appears in the
// message's canonical order, and flags duplicates of a non-repeatable tag
// as errors.
func checkFieldOrder(dict *dictionary.Dictionary, msg *dictionary.Message, tokens []decoder.Token) []Finding {
	var findings []Finding

	canonicalRank := map[quickfix.Tag]int{}
	rank := 0
	var index func(members []dictionary.Member)
	index = func(members []dictionary.Member) {
		for _, m := range members {
			switch m.Kind {
			case dictionary.MemberField:
				if _, ok := canonicalRank[m.FieldNumber]; !ok {
					canonicalRank[m.FieldNumber] = rank
					rank++
				}
			case dictionary.MemberComponent:
				if comp, ok := dict.Components[m.ComponentName]; ok && comp != nil {
					index(comp.Members)
				}
			case dictionary.MemberGroup:
				canonicalRank[m.Group.CounterTag] = rank
				rank++
			}
		}
	}
	index(dict.Header.Members)
	index(msg.Members)
	index(dict.Trailer.Members)

	seen := map[quickfix.Tag]int{}
	lastRank := -1
	for _, t := range tokens {
		if dict.IsRepeatable(t.Tag) {
			continue
		}
		seen[t.Tag]++
		if seen[t.Tag] > 1 {
			findings = append(findings, errorf(t.Tag, "duplicate non-repeatable field %s (%d)", dict.FieldName(t.Tag), t.Tag))
			continue
		}
		r, ok := canonicalRank[t.Tag]
		if !ok {
			continue
		}
		if r < lastRank {
			findings = append(findings, errorf(t.Tag, "field %s (%d) is out of canonical order", dict.FieldName(t.Tag), t.Tag))
		}
		lastRank = r
	}
	return findings
}
