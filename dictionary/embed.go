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
	"embed"
	"fmt"
)

//go:embed resources/*.xml
var resourceFS embed.FS

// resourceFile maps each built-in key to the XML file that supplies its
// content. FIX27 and FIX30 predate the message set this project models in
// any richer detail than FIX40, so they share FIX40's resource, matching
// the shared base content the built-in set uses upstream.
var resourceFile = map[string]string{
	"FIX27":    "FIX40.xml",
	"FIX30":    "FIX40.xml",
	"FIX40":    "FIX40.xml",
	"FIX41":    "FIX41.xml",
	"FIX42":    "FIX42.xml",
	"FIX43":    "FIX43.xml",
	"FIX44":    "FIX44.xml",
	"FIX50":    "FIX50.xml",
	"FIX50SP1": "FIX50SP1.xml",
	"FIX50SP2": "FIX50SP2.xml",
	"FIXT11":   "FIXT11.xml",
}

func embeddedXML(key string) ([]byte, error) {
	name, ok := resourceFile[key]
	if !ok {
		return nil, fmt.Errorf("dictionary: no embedded resource for key %s", key)
	}
	return resourceFS.ReadFile("resources/" + name)
}
