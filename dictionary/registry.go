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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/quickfixgo/quickfix"
)

// warnWriter receives loader warnings (recursive components, override
// replacements). Tests substitute it to capture output instead of polluting
// stderr.
var warnWriter io.Writer = os.Stderr

// BuiltinKeys is the fixed set of dictionary keys compiled into the binary.
var BuiltinKeys = []string{
	"FIX27", "FIX30", "FIX40", "FIX41", "FIX42", "FIX43", "FIX44",
	"FIX50", "FIX50SP1", "FIX50SP2", "FIXT11",
}

// SessionKey is the dictionary whose header/trailer (with the field
// definitions they reference) are injected into every 5.0+ application
// dictionary that lacks its own; its admin messages are not merged.
const SessionKey = "FIXT11"

// ApplVerIDToKey maps ApplVerID/DefaultApplVerID (tag 1128/1137) wire codes
// to the registry key selecting the corresponding application dictionary.
var ApplVerIDToKey = map[string]string{
	"0": "FIX27",
	"1": "FIX30",
	"2": "FIX40",
	"3": "FIX41",
	"4": "FIX42",
	"5": "FIX43",
	"6": "FIX44",
	"7": "FIX50",
	"8": "FIX50SP1",
	"9": "FIX50SP2",
}

// Registry holds the built-in dictionaries plus any user-supplied overrides,
// and is read-only once Load-time construction finishes; per §5 of the
// design it may be shared freely across the pipeline afterwards.
type Registry struct {
	mu        sync.RWMutex
	builtins  map[string]*Dictionary
	overrides map[string]*Dictionary
}

// NewRegistry builds a Registry with every built-in dictionary parsed from
// its embedded XML, injecting the FIXT11 header/trailer into every 5.0+
// dictionary that doesn't declare its own.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		builtins:  map[string]*Dictionary{},
		overrides: map[string]*Dictionary{},
	}

	for _, key := range BuiltinKeys {
		data, err := embeddedXML(key)
		if err != nil {
			return nil, err
		}
		d, err := Load(key, data)
		if err != nil {
			return nil, fmt.Errorf("built-in dictionary %s: %w", key, err)
		}
		r.builtins[key] = d
	}

	session := r.builtins[SessionKey]
	for _, key := range []string{"FIX50", "FIX50SP1", "FIX50SP2"} {
		injectSession(r.builtins[key], session)
	}

	return r, nil
}

// injectSession fills in whichever of d's header and trailer is absent with
// a copy of the session dictionary's, and adds the session field
// definitions those blocks reference that d lacks, so their tags resolve to
// names in d. Absent is detected as an empty member list, since the raw XML
// always yields a non-nil *Component even for a missing <header>/<trailer>
// element.
func injectSession(d, session *Dictionary) {
	if d == nil || session == nil {
		return
	}
	if d.Header == nil || len(d.Header.Members) == 0 {
		h := *session.Header
		d.Header = &h
	}
	if d.Trailer == nil || len(d.Trailer.Members) == 0 {
		t := *session.Trailer
		d.Trailer = &t
	}
	tags := map[quickfix.Tag]bool{}
	collectDefinedTags(d.Header.Members, session.Components, tags, nil)
	collectDefinedTags(d.Trailer.Members, session.Components, tags, nil)
	for tag := range tags {
		if f, ok := session.Fields[tag]; ok && d.Fields[tag] == nil && d.FieldsByName[f.Name] == nil {
			d.Fields[tag] = f
			d.FieldsByName[f.Name] = f
		}
	}
}

// Normalize canonicalises a user-supplied --fix string: strip dots,
// uppercase, prepend FIX if absent.
func Normalize(v string) string {
	v = strings.ToUpper(strings.ReplaceAll(v, ".", ""))
	if v == "T11" || v == "FIXT11" {
		return "FIXT11"
	}
	if !strings.HasPrefix(v, "FIX") {
		v = "FIX" + v
	}
	return v
}

// KeyFromBeginString derives a registry key from a raw BeginString value
// (tag 8), e.g. "FIX.4.4" -> "FIX44".
func KeyFromBeginString(beginString string) string {
	return strings.ReplaceAll(beginString, ".", "")
}

// Get resolves a key, preferring an override over the matching built-in.
func (r *Registry) Get(key string) (*Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.overrides[key]; ok {
		return d, true
	}
	d, ok := r.builtins[key]
	return d, ok
}

// LoadOverride parses an XML document and installs it as key's override.
// If key already has an override, the replacement is announced on
// warnWriter and the new content wins.
func (r *Registry) LoadOverride(key string, data []byte) error {
	d, err := Load(key, data)
	if err != nil {
		return err
	}
	if d.Header == nil || len(d.Header.Members) == 0 || d.Trailer == nil || len(d.Trailer.Members) == 0 {
		if session, ok := r.builtins[SessionKey]; ok {
			injectSession(d, session)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.overrides[key]; exists {
		fmt.Fprintf(warnWriter, "warning: dictionary key %s already overridden, replacing with new definition\n", key)
	}
	r.overrides[key] = d
	return nil
}

// Info returns one summary line per known key (builtins plus overrides),
// counting msgtypes/fields/components, for --info.
type Info struct {
	Key        string
	MsgTypes   int
	FieldCount int
	Components int
}

// InfoTable lists every known dictionary key with its counts, builtins
// first in BuiltinKeys order followed by any additional override keys.
func (r *Registry) InfoTable() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	var out []Info
	for _, key := range BuiltinKeys {
		d, ok := r.Get(key)
		if !ok {
			continue
		}
		out = append(out, summarize(key, d))
		seen[key] = true
	}
	for key, d := range r.overrides {
		if seen[key] {
			continue
		}
		out = append(out, summarize(key, d))
	}
	return out
}

func summarize(key string, d *Dictionary) Info {
	return Info{
		Key:        key,
		MsgTypes:   len(d.Messages),
		FieldCount: len(d.Fields),
		Components: len(d.Components),
	}
}

// ParseSchemaKeyToXMLVersion reverses Normalize's FIX<major><minor> shape
// back to the dotted number used in a version banner ("FIX44" -> "4.4",
// "FIXT11" -> "T.1.1"). Other FIX-prefixed keys such as "FIX50SP2" come back
// with the prefix stripped; keys without the prefix are returned unchanged.
func ParseSchemaKeyToXMLVersion(key string) string {
	if !strings.HasPrefix(key, "FIX") {
		return key
	}
	rest := strings.TrimPrefix(key, "FIX")
	if rest == "T11" {
		return "T.1.1"
	}
	if _, err := strconv.Atoi(rest); err == nil && len(rest) == 2 {
		return rest[:1] + "." + rest[1:]
	}
	return rest
}
