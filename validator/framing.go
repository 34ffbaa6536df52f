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
	"fmt"
	"strconv"
	"strings"

	"fixdecoder/constants"
)

// checkFraming validates BodyLength (9) and CheckSum (10) against the raw
// byte run. raw is the full run including the leading "8=" and the
// trailing checksum field; delim is the active field separator.
func checkFraming(raw string, delim byte) []Finding {
	var findings []Finding

	tenPos := strings.LastIndex(raw, string(delim)+"10=")
	if tenPos == -1 {
		return append(findings, errorNoTag("checksum: no 10= field found"))
	}
	bodyEnd := tenPos + 1 // position right after the delimiter, start of "10="

	bodyStart := -1
	if idx := strings.Index(raw, "9="); idx != -1 {
		valStart := idx + 2
		delimIdx := strings.IndexByte(raw[valStart:], delim)
		if delimIdx != -1 {
			bodyStart = valStart + delimIdx + 1
		}
	}

	if bodyStart != -1 && bodyStart <= bodyEnd {
		declared := fieldValue(raw, "9=", delim)
		actualLen := bodyEnd - bodyStart
		if declared != "" {
			n, err := strconv.Atoi(declared)
			if err != nil || n != actualLen {
				findings = append(findings, errorf(constants.TagBodyLength, "BodyLength declares %s, actual body is %d bytes", declared, actualLen))
			}
		}
	}

	sum := 0
	for i := 0; i < bodyEnd; i++ {
		sum += int(raw[i])
	}
	sum %= 256
	want := fmt.Sprintf("%03d", sum)
	got := fieldValue(raw, "10=", delim)
	if got != "" && got != want {
		findings = append(findings, errorf(constants.TagCheckSum, "CheckSum declares %s, computed %s", got, want))
	}

	return findings
}

// fieldValue extracts the value of the first "tag=" occurrence up to the
// next delimiter or end of string.
func fieldValue(raw, tagPrefix string, delim byte) string {
	idx := strings.Index(raw, tagPrefix)
	if idx == -1 {
		return ""
	}
	// Guard against matching inside a value: require the prefix to start
	// either at position 0 or right after a delimiter.
	if idx != 0 && raw[idx-1] != delim {
		rest := raw[idx+1:]
		return fieldValue(rest, tagPrefix, delim)
	}
	start := idx + len(tagPrefix)
	end := strings.IndexByte(raw[start:], delim)
	if end == -1 {
		return raw[start:]
	}
	return raw[start : start+end]
}
