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

package summary

import "time"

const dateOnlyLayout = "20060102"

// Tenor derives the settlement horizon label from a TradeDate/SettlDate
// pair, counting business days (Saturday/Sunday excluded, no holiday
// calendar): T+0 -> TOD, T+1 -> TOM, T+2 -> SPOT, otherwise FWD. Either
// date failing to parse as YYYYMMDD yields "".
func Tenor(tradeDate, settlDate string) string {
	t, err := time.Parse(dateOnlyLayout, tradeDate)
	if err != nil {
		return ""
	}
	s, err := time.Parse(dateOnlyLayout, settlDate)
	if err != nil {
		return ""
	}
	if s.Before(t) {
		return ""
	}

	days := businessDaysBetween(t, s)
	switch days {
	case 0:
		return "TOD"
	case 1:
		return "TOM"
	case 2:
		return "SPOT"
	default:
		return "FWD"
	}
}

func businessDaysBetween(from, to time.Time) int {
	n := 0
	d := from
	for d.Before(to) {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			n++
		}
	}
	return n
}

// preferredSettlDate picks SettlDate2 (193) over SettlDate (64) when both
// are present, matching the original decoder's preference.
func preferredSettlDate(settlDate2, settlDate string) string {
	if settlDate2 != "" {
		return settlDate2
	}
	return settlDate
}
