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

// Package validator checks a single tokenised FIX message for structural
// and semantic correctness against its chosen dictionary.
package validator

import (
	"fmt"

	"github.com/quickfixgo/quickfix"
)

// Severity classifies a Finding.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// Finding is one validator observation. Tag is nil when the finding isn't
// tied to a specific field (e.g. a missing MsgType or no 10= field at all).
type Finding struct {
	Severity Severity
	Tag      *quickfix.Tag
	Message  string
}

func errorf(tag quickfix.Tag, format string, args ...interface{}) Finding {
	t := tag
	return Finding{Severity: SeverityError, Tag: &t, Message: fmt.Sprintf(format, args...)}
}

func errorNoTag(format string, args ...interface{}) Finding {
	return Finding{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warnNoTag(format string, args ...interface{}) Finding {
	return Finding{Severity: SeverityWarn, Message: fmt.Sprintf(format, args...)}
}
