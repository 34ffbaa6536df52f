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

package decoder

import "testing"

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    byte
		wantErr bool
	}{
		{name: "SOH literal", spec: "SOH", want: 0x01},
		{name: "SOH case-insensitive", spec: "soh", want: 0x01},
		{name: "hex escape backslash", spec: "\\x01", want: 0x01},
		{name: "hex escape 0x", spec: "0x7c", want: '|'},
		{name: "single char", spec: "|", want: '|'},
		{name: "empty is an error", spec: "", wantErr: true},
		{name: "multi-char is an error", spec: "ab", wantErr: true},
		{name: "bad hex escape", spec: "\\xzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelimiter(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDelimiter(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Fatalf("ParseDelimiter(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
