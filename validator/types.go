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
	"regexp"
	"strconv"

	"fixdecoder/dictionary"

	"github.com/shopspring/decimal"
)

var monthYearPattern = regexp.MustCompile(`^\d{6}(w[1-5]|d\d{2})?$`)

// conforms reports whether value is a syntactically valid instance of kind.
// Kinds this dictionary set never declares (or that are inherently
// unconstrained strings) are always considered valid.
func conforms(kind dictionary.FieldKind, value string) bool {
	switch kind {
	case dictionary.KindInt, dictionary.KindLength, dictionary.KindNumInGroup, dictionary.KindSeqNum, dictionary.KindDayOfMonth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		if kind == dictionary.KindLength || kind == dictionary.KindNumInGroup || kind == dictionary.KindSeqNum {
			return n >= 0
		}
		return true

	case dictionary.KindFloat, dictionary.KindQty, dictionary.KindPrice, dictionary.KindPriceOffset, dictionary.KindAmt, dictionary.KindPercentage:
		_, err := decimal.NewFromString(value)
		return err == nil

	case dictionary.KindBoolean:
		return value == "Y" || value == "N"

	case dictionary.KindChar:
		return len(value) == 1

	case dictionary.KindUTCTimestamp:
		return matchesTimestamp(value)

	case dictionary.KindUTCDateOnly, dictionary.KindLocalMktDate:
		return matchesDateOnly(value)

	case dictionary.KindUTCTimeOnly:
		return matchesTimeOnly(value)

	case dictionary.KindMonthYear:
		return monthYearPattern.MatchString(value)

	default:
		return true
	}
}

func matchesDateOnly(v string) bool {
	if len(v) != 8 {
		return false
	}
	_, err := strconv.Atoi(v)
	return err == nil
}

func matchesTimestamp(v string) bool {
	// YYYYMMDD-HH:MM:SS[.sss]
	if len(v) < 17 {
		return false
	}
	if v[8] != '-' {
		return false
	}
	return matchesDateOnly(v[:8]) && matchesTimeOnly(v[9:])
}

func matchesTimeOnly(v string) bool {
	// HH:MM:SS[.sss]
	switch len(v) {
	case 8, 12:
	default:
		return false
	}
	if v[2] != ':' || v[5] != ':' {
		return false
	}
	if len(v) == 12 && v[8] != '.' {
		return false
	}
	digits := v[:2] + v[3:5] + v[6:8]
	if len(v) == 12 {
		digits += v[9:12]
	}
	_, err := strconv.Atoi(digits)
	return err == nil
}
