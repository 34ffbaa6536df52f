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

package dictionary

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/quickfixgo/quickfix"
)

// The xml* types below mirror the QuickFIX data dictionary schema closely
// enough for encoding/xml to unmarshal it directly; they are an
// intermediate representation only, never exposed outside this file.

type xmlFix struct {
	XMLName     xml.Name       `xml:"fix"`
	Type        string         `xml:"type,attr"`
	Major       string         `xml:"major,attr"`
	Minor       string         `xml:"minor,attr"`
	ServicePack string         `xml:"servicepack,attr"`
	Header      xmlComponent   `xml:"header"`
	Trailer     xmlComponent   `xml:"trailer"`
	Messages    []xmlMessage   `xml:"messages>message"`
	Components  []xmlComponent `xml:"components>component"`
	Fields      []xmlField     `xml:"fields>field"`
}

type xmlField struct {
	Number string     `xml:"number,attr"`
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Values []xmlValue `xml:"value"`
}

type xmlValue struct {
	Enum        string `xml:"enum,attr"`
	Description string `xml:"description,attr"`
}

type xmlFieldRef struct {
	Name     string `xml:"name,attr"`
	Required string `xml:"required,attr"`
}

type xmlComponentRef struct {
	Name     string `xml:"name,attr"`
	Required string `xml:"required,attr"`
}

type xmlGroup struct {
	Name       string            `xml:"name,attr"`
	Required   string            `xml:"required,attr"`
	Fields     []xmlFieldRef     `xml:"field"`
	Components []xmlComponentRef `xml:"component"`
	Groups     []xmlGroup        `xml:"group"`
}

type xmlComponent struct {
	Name       string            `xml:"name,attr"`
	Fields     []xmlFieldRef     `xml:"field"`
	Components []xmlComponentRef `xml:"component"`
	Groups     []xmlGroup        `xml:"group"`
}

type xmlMessage struct {
	Name       string            `xml:"name,attr"`
	MsgType    string            `xml:"msgtype,attr"`
	MsgCat     string            `xml:"msgcat,attr"`
	Fields     []xmlFieldRef     `xml:"field"`
	Components []xmlComponentRef `xml:"component"`
	Groups     []xmlGroup        `xml:"group"`
}

func isRequired(v string) bool {
	return strings.EqualFold(v, "Y")
}

// Load parses a QuickFIX-style XML schema into a fully resolved Dictionary.
// key is the caller-normalised registry key (e.g. "FIX44", "FIXT11") this
// dictionary will be stored under.
func Load(key string, data []byte) (*Dictionary, error) {
	var raw xmlFix
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("dictionary %s: parse XML: %w", key, err)
	}

	major, _ := strconv.Atoi(raw.Major)
	minor, _ := strconv.Atoi(raw.Minor)

	d := &Dictionary{
		Key:            key,
		Major:          major,
		Minor:          minor,
		SP:             raw.ServicePack,
		Fields:         map[quickfix.Tag]*Field{},
		FieldsByName:   map[string]*Field{},
		Components:     map[string]*Component{},
		Messages:       map[string]*Message{},
		MessagesByName: map[string]*Message{},
		RepeatableTags: map[quickfix.Tag]bool{},
		CounterToGroup: map[quickfix.Tag]*Group{},
	}

	for _, xf := range raw.Fields {
		num, err := strconv.Atoi(xf.Number)
		if err != nil {
			return nil, fmt.Errorf("dictionary %s: field %q: invalid number %q: %w", key, xf.Name, xf.Number, err)
		}
		tag := quickfix.Tag(num)
		if _, dup := d.Fields[tag]; dup {
			return nil, fmt.Errorf("dictionary %s: duplicate field number %d", key, num)
		}
		if _, dup := d.FieldsByName[xf.Name]; dup {
			return nil, fmt.Errorf("dictionary %s: duplicate field name %q", key, xf.Name)
		}
		f := &Field{
			Number: tag,
			Name:   xf.Name,
			Kind:   FieldKind(strings.ToUpper(xf.Type)),
		}
		for _, v := range xf.Values {
			f.Enums = append(f.Enums, EnumValue{Enum: v.Enum, Description: v.Description})
		}
		d.Fields[tag] = f
		d.FieldsByName[xf.Name] = f
	}

	// Components must be indexed by name before resolving any member trees,
	// since components may reference each other.
	for _, xc := range raw.Components {
		if _, dup := d.Components[xc.Name]; dup {
			return nil, fmt.Errorf("dictionary %s: duplicate component name %q", key, xc.Name)
		}
		d.Components[xc.Name] = nil // placeholder to detect duplicates below
	}

	resolver := &resolveCtx{dict: d, key: key}

	for _, xc := range raw.Components {
		comp, err := resolver.resolveComponent(xc.Name, xc.Fields, xc.Components, xc.Groups)
		if err != nil {
			return nil, err
		}
		d.Components[xc.Name] = comp
	}

	header, err := resolver.resolveComponent("Header", raw.Header.Fields, raw.Header.Components, raw.Header.Groups)
	if err != nil {
		return nil, err
	}
	d.Header = header

	trailer, err := resolver.resolveComponent("Trailer", raw.Trailer.Fields, raw.Trailer.Components, raw.Trailer.Groups)
	if err != nil {
		return nil, err
	}
	d.Trailer = trailer

	for _, xm := range raw.Messages {
		if _, dup := d.MessagesByName[xm.Name]; dup {
			return nil, fmt.Errorf("dictionary %s: duplicate message name %q", key, xm.Name)
		}
		if _, dup := d.Messages[xm.MsgType]; dup {
			return nil, fmt.Errorf("dictionary %s: duplicate msgtype %q", key, xm.MsgType)
		}
		members, err := resolver.resolveMembers(xm.Fields, xm.Components, xm.Groups, []string{"$message:" + xm.Name})
		if err != nil {
			return nil, err
		}
		msg := &Message{
			Name:        xm.Name,
			MsgType:     xm.MsgType,
			Category:    xm.MsgCat,
			Members:     members,
			DefinedTags: map[quickfix.Tag]bool{},
		}
		collectDefinedTags(msg.Members, d.Components, msg.DefinedTags, nil)
		collectDefinedTags(header.Members, d.Components, msg.DefinedTags, nil)
		collectDefinedTags(trailer.Members, d.Components, msg.DefinedTags, nil)
		d.Messages[xm.MsgType] = msg
		d.MessagesByName[xm.Name] = msg
	}

	collectRepeatable(header.Members, d.Components, d.RepeatableTags, d.CounterToGroup, nil)
	collectRepeatable(trailer.Members, d.Components, d.RepeatableTags, d.CounterToGroup, nil)
	for _, msg := range d.Messages {
		collectRepeatable(msg.Members, d.Components, d.RepeatableTags, d.CounterToGroup, nil)
	}

	return d, nil
}

// resolveCtx carries the field/component tables while turning the raw XML
// tree into resolved Member lists, warning-and-skipping recursive component
// references the way the original decoder's schema loader does.
type resolveCtx struct {
	dict *Dictionary
	key  string
}

func (r *resolveCtx) resolveComponent(name string, fields []xmlFieldRef, comps []xmlComponentRef, groups []xmlGroup) (*Component, error) {
	members, err := r.resolveMembers(fields, comps, groups, []string{name})
	if err != nil {
		return nil, err
	}
	return &Component{Name: name, Members: members}, nil
}

func (r *resolveCtx) resolveMembers(fields []xmlFieldRef, comps []xmlComponentRef, groups []xmlGroup, stack []string) ([]Member, error) {
	var members []Member

	for _, fr := range fields {
		field, ok := r.dict.FieldsByName[fr.Name]
		if !ok {
			return nil, fmt.Errorf("dictionary %s: unknown field reference %q", r.key, fr.Name)
		}
		members = append(members, Member{
			Kind:        MemberField,
			Required:    isRequired(fr.Required),
			FieldNumber: field.Number,
			FieldName:   field.Name,
		})
	}

	for _, cr := range comps {
		if contains(stack, cr.Name) {
			fmt.Fprintf(warnWriter, "warning: recursive component detected at %s, skipping\n", cr.Name)
			continue
		}
		if _, ok := r.dict.Components[cr.Name]; !ok {
			return nil, fmt.Errorf("dictionary %s: unknown component reference %q", r.key, cr.Name)
		}
		members = append(members, Member{
			Kind:          MemberComponent,
			Required:      isRequired(cr.Required),
			ComponentName: cr.Name,
		})
	}

	for _, g := range groups {
		group, err := r.resolveGroup(g, stack)
		if err != nil {
			return nil, err
		}
		if group == nil {
			continue
		}
		members = append(members, Member{
			Kind:     MemberGroup,
			Required: isRequired(g.Required),
			Group:    group,
		})
	}

	return members, nil
}

func (r *resolveCtx) resolveGroup(g xmlGroup, stack []string) (*Group, error) {
	counter, ok := r.dict.FieldsByName[g.Name]
	if !ok {
		return nil, fmt.Errorf("dictionary %s: unknown group counter field %q", r.key, g.Name)
	}

	members, err := r.resolveMembers(g.Fields, g.Components, g.Groups, append(append([]string{}, stack...), g.Name))
	if err != nil {
		return nil, err
	}

	var delimiter quickfix.Tag
	if len(g.Fields) > 0 {
		if f, ok := r.dict.FieldsByName[g.Fields[0].Name]; ok {
			delimiter = f.Number
		}
	}
	if delimiter == 0 {
		delimiter = counter.Number
	}

	return &Group{
		Name:         g.Name,
		CounterTag:   counter.Number,
		DelimiterTag: delimiter,
		Required:     isRequired(g.Required),
		Members:      members,
	}, nil
}

func contains(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}

// collectDefinedTags walks resolved members, expanding component references
// against the dictionary's component table, and records every tag reachable
// transitively, matching Message.defined-tags in the data model. seen guards
// against a component-ref cycle escaping the loader's own warn-and-skip
// handling (resolveMembers already breaks the cycle, but a component can
// still be reached twice through two different paths without being
// recursive, so seen is scoped per top-level collectDefinedTags call site.)
func collectDefinedTags(members []Member, components map[string]*Component, into map[quickfix.Tag]bool, seen []string) {
	for _, m := range members {
		switch m.Kind {
		case MemberField:
			into[m.FieldNumber] = true
		case MemberGroup:
			into[m.Group.CounterTag] = true
			collectDefinedTags(m.Group.Members, components, into, seen)
		case MemberComponent:
			if contains(seen, m.ComponentName) {
				continue
			}
			comp, ok := components[m.ComponentName]
			if !ok || comp == nil {
				continue
			}
			collectDefinedTags(comp.Members, components, into, append(seen, m.ComponentName))
		}
	}
}

// collectRepeatable walks a member tree, expanding component references,
// and records every group's counter tag plus its transitive member tags as
// repeatable, and indexes each group's schema by its counter tag.
func collectRepeatable(members []Member, components map[string]*Component, repeatable map[quickfix.Tag]bool, byCounter map[quickfix.Tag]*Group, seen []string) {
	for _, m := range members {
		switch m.Kind {
		case MemberComponent:
			if comp := components[m.ComponentName]; comp != nil && !contains(seen, m.ComponentName) {
				collectRepeatable(comp.Members, components, repeatable, byCounter, append(seen, m.ComponentName))
			}
		case MemberGroup:
			g := m.Group
			repeatable[g.CounterTag] = true
			byCounter[g.CounterTag] = g
			markGroupMembers(g.Members, components, repeatable, seen)
			collectRepeatable(g.Members, components, repeatable, byCounter, seen)
		}
	}
}

func markGroupMembers(members []Member, components map[string]*Component, repeatable map[quickfix.Tag]bool, seen []string) {
	for _, m := range members {
		switch m.Kind {
		case MemberField:
			repeatable[m.FieldNumber] = true
		case MemberGroup:
			repeatable[m.Group.CounterTag] = true
			markGroupMembers(m.Group.Members, components, repeatable, seen)
		case MemberComponent:
			if comp := components[m.ComponentName]; comp != nil && !contains(seen, m.ComponentName) {
				markGroupMembers(comp.Members, components, repeatable, append(seen, m.ComponentName))
			}
		}
	}
}
