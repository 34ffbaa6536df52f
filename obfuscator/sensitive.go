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

// Package obfuscator assigns deterministic, per-input aliases to sensitive
// FIX field values so a decoded log can be shared without leaking
// counterparty or order identifiers.
package obfuscator

import (
	"fixdecoder/constants"

	"github.com/quickfixgo/quickfix"
)

// sensitiveTags is the fixed set of tags whose values identify a
// counterparty, account or order rather than describing the trade itself.
// The generator that would normally derive this list from an XML
// dictionary is explicitly out of scope; this set is baked in by hand
// against the tags actually reachable from the built-in dictionaries.
var sensitiveTags = map[quickfix.Tag]bool{
	constants.TagSenderCompID:     true,
	constants.TagTargetCompID:     true,
	constants.TagSenderSubID:      true,
	constants.TagTargetSubID:      true,
	constants.TagOnBehalfOfCompID: true,
	constants.TagOnBehalfOfSubID:  true,
	constants.TagDeliverToCompID:  true,
	constants.TagDeliverToSubID:   true,
	constants.TagClOrdID:          true,
	constants.TagOrigClOrdID:      true,
	constants.TagOrderID:          true,
	constants.TagExecID:           true,
	constants.TagAccount:          true,
	constants.TagUsername:         true,
}

// IsSensitive reports whether tag's value should be aliased under --secret.
func IsSensitive(tag quickfix.Tag) bool {
	return sensitiveTags[tag]
}
