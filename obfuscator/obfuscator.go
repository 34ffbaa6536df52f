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

package obfuscator

import (
	"fmt"

	"github.com/quickfixgo/quickfix"
)

// Obfuscator holds the mutable state for one input unit: a per-tag counter
// and an alias table keyed by (tag, raw value). It is owned by the pipeline
// and reset explicitly at input boundaries; there is no process-wide
// static, per the "global mutable state" design note.
type Obfuscator struct {
	counters map[quickfix.Tag]int
	aliases  map[quickfix.Tag]map[string]string
}

// New returns an Obfuscator with empty state, equivalent to a freshly
// Reset one.
func New() *Obfuscator {
	o := &Obfuscator{}
	o.Reset()
	return o
}

// Reset clears all counters and aliases, as happens at the boundary
// between two input files or stdin streams.
func (o *Obfuscator) Reset() {
	o.counters = map[quickfix.Tag]int{}
	o.aliases = map[quickfix.Tag]map[string]string{}
}

// Alias returns the alias for value under tag/name, assigning a fresh one
// on first sight and reusing it for repeats within the same input:
// "<name>NNNN" where NNNN is the tag's next zero-padded counter.
func (o *Obfuscator) Alias(tag quickfix.Tag, name, value string) string {
	byValue, ok := o.aliases[tag]
	if !ok {
		byValue = map[string]string{}
		o.aliases[tag] = byValue
	}
	if alias, ok := byValue[value]; ok {
		return alias
	}
	o.counters[tag]++
	alias := fmt.Sprintf("%s%04d", name, o.counters[tag])
	byValue[value] = alias
	return alias
}
