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

import (
	"fmt"
	"strings"

	"fixdecoder/constants"
	"fixdecoder/decoder"
	"fixdecoder/dictionary"
)

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// ordStatusLabel resolves tag 39's enum label from dict, falling back to
// the raw code (used both for timeline rows and the flow label).
func ordStatusLabel(dict *dictionary.Dictionary, code string) string {
	if code == "" {
		return ""
	}
	if label, ok := dict.EnumDescription(constants.TagOrdStatus, code); ok {
		return label
	}
	return code
}

// Render produces the header block and timeline table for one record.
func Render(dict *dictionary.Dictionary, p *decoder.Palette, r *Record) []string {
	var lines []string

	flow := r.FlowLabel(func(code string) string { return ordStatusLabel(dict, code) })
	lines = append(lines, fmt.Sprintf("%s  %s", p.Title.Sprint(r.Key), flow))
	lines = append(lines, fmt.Sprintf("  side=%s symbol=%s qty=%s price=%s ccy=%s tif=%s type=%s tenor=%s",
		dash(r.Side), dash(r.Symbol), dash(r.Qty), dash(r.Price), dash(r.Currency), dash(r.TIF), dash(r.OrdType), dash(r.Tenor)))
	if r.ExecAckStatus != "" || r.SpotPrice != "" || r.ExecAmt != "" {
		lines = append(lines, fmt.Sprintf("  execAckStatus=%s spot=%s execAmt=%s",
			dash(r.ExecAckStatus), dash(r.SpotPrice), dash(r.ExecAmt)))
	}

	if len(r.Timeline) == 0 {
		return lines
	}

	header := []string{"time", "msg", "ExAck", "Exec", "Ord", "cum/leaves", "last@px", "avgPx", "text"}
	lines = append(lines, "  "+strings.Join(header, "  "))

	for _, ev := range r.Timeline {
		msgCell := ev.MsgLabel
		if id := ev.ClOrdID; id != "" {
			msgCell += " " + id
		} else if id := ev.OrigClOrdID; id != "" {
			msgCell += " " + id
		}
		ordLabel := ordStatusLabel(dict, ev.OrdStatus)
		execLabel := ev.ExecType
		if label, ok := dict.EnumDescription(constants.TagExecType, ev.ExecType); ok {
			execLabel = label
		}
		cumLeaves := fmt.Sprintf("%s/%s", dash(ev.CumQty), dash(ev.LeavesQty))
		row := []string{
			dash(ev.Time), dash(msgCell), dash(ev.ExecAckStatus), dash(execLabel),
			dash(ordLabel), cumLeaves, dash(ev.LastPx), dash(ev.AvgPx), dash(ev.Text),
		}
		lines = append(lines, "  "+strings.Join(row, "  "))
	}

	return lines
}
