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

package main

import (
	"flag"
	"os"
)

// newFlagSet builds the standard flag.FlagSet used to parse os.Args[1:],
// exiting with status 1 on a bad flag rather than flag's default of 2, to
// match the documented exit code for configuration errors.
func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("fixdecoder", flag.ExitOnError)
	fs.Usage = func() {
		fs.PrintDefaults()
		os.Exit(1)
	}
	return fs
}
