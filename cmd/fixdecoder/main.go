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

// Command fixdecoder prettifies, validates, obfuscates and summarises FIX
// protocol log lines, and doubles as a dictionary explorer.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fixdecoder/builder"
	"fixdecoder/decoder"
	"fixdecoder/dictionary"
	"fixdecoder/obfuscator"
	"fixdecoder/summary"
	"fixdecoder/validator"

	"github.com/mattn/go-isatty"
	"github.com/quickfixgo/quickfix"
)

// optionalStringFlag records whether a flag with an optional value
// (--message, --component, --tag) was set at all, distinguishing "list mode"
// (flag given without a value) from "unset" the way the standard flag
// package's Value interface allows.
type optionalStringFlag struct {
	set   bool
	value string
}

func (f *optionalStringFlag) String() string { return f.value }
func (f *optionalStringFlag) Set(s string) error {
	f.set = true
	// IsBoolFlag makes the flag package pass "true" for a bare flag.
	if s == "true" {
		s = ""
	}
	f.value = s
	return nil
}
func (f *optionalStringFlag) IsBoolFlag() bool { return true }

func main() {
	log.SetFlags(0)
	log.SetPrefix("fixdecoder: ")

	opts, showVersion := parseFlags(os.Args[1:])
	if showVersion {
		fmt.Println(decoder.FullVersion())
		os.Exit(0)
	}

	reg, err := dictionary.NewRegistry()
	if err != nil {
		log.Fatalf("building dictionary registry: %v", err)
	}
	for _, path := range opts.XMLFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading override %s: %v", path, err)
		}
		key := overrideKeyFromFilename(path)
		if err := reg.LoadOverride(key, data); err != nil {
			log.Fatalf("loading override %s: %v", path, err)
		}
	}

	if opts.FixKey != "" {
		opts.FixKey = dictionary.Normalize(opts.FixKey)
		if _, ok := reg.Get(opts.FixKey); !ok {
			log.Fatalf("unknown --fix key %q", opts.FixKey)
		}
	}

	delim := decoder.DefaultDelimiter
	if opts.Delimiter != "" {
		d, err := decoder.ParseDelimiter(opts.Delimiter)
		if err != nil {
			log.Fatalf("%v", err)
		}
		delim = d
	}

	colourOn := decoder.EffectiveColour(opts.ColourFlag, isatty.IsTerminal(os.Stdout.Fd()))
	palette := decoder.NewPalette(colourOn)

	switch {
	case opts.Info:
		runInfo(reg, palette, opts.FixKey)
		return
	case opts.MessageSet, opts.ComponentSet, opts.TagSet:
		if err := runExplorer(reg, palette, opts); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	exitCode := runDecode(reg, palette, opts, delim)
	os.Exit(exitCode)
}

func parseFlags(args []string) (decoder.Options, bool) {
	fs := newFlagSet()
	var opts decoder.Options
	var version bool

	fs.BoolVar(&version, "version", false, "print the version banner and exit")
	fs.StringVar(&opts.FixKey, "fix", "", "force a dictionary key (e.g. 44, 4.4, FIX44, T11)")
	fs.Var(stringSliceFlag{&opts.XMLFiles}, "xml", "load an override dictionary from a file (repeatable)")
	fs.BoolVar(&opts.Info, "info", false, "list dictionary keys and exit")

	message := &optionalStringFlag{}
	fs.Var(message, "message", "render a message's canonical structure, or list message names")
	component := &optionalStringFlag{}
	fs.Var(component, "component", "render a component's structure, or list component names")
	tag := &optionalStringFlag{}
	fs.Var(tag, "tag", "render a single field's detail")

	fs.BoolVar(&opts.Columns, "column", false, "render explorer output as a column table")
	fs.BoolVar(&opts.Verbose, "verbose", false, "include enum value lists in explorer output")
	fs.BoolVar(&opts.Header, "header", false, "include the session header in explorer output")
	fs.BoolVar(&opts.Trailer, "trailer", false, "include the session trailer in explorer output")

	fs.StringVar(&opts.ColourFlag, "colour", "", "yes|no, overriding terminal auto-detection")
	fs.StringVar(&opts.Delimiter, "delimiter", "", "field delimiter: a character, SOH, or \\xNN/0xNN")

	fs.BoolVar(&opts.Validate, "validate", false, "append validator findings to each rendered message")
	fs.BoolVar(&opts.Secret, "secret", false, "alias sensitive tag values instead of printing them")
	fs.BoolVar(&opts.Summary, "summary", false, "fold the stream into per-order summaries instead of per-message output")
	fs.BoolVar(&opts.Follow, "follow", false, "keep reading after EOF, like tail -f")
	fs.BoolVar(&opts.Follow, "f", false, "shorthand for --follow")

	_ = fs.Parse(args)

	opts.MessageSet, opts.Message = message.set, message.value
	opts.ComponentSet, opts.Component = component.set, component.value
	opts.TagSet, opts.Tag = tag.set, tag.value
	opts.Files = fs.Args()

	return opts, version
}

// stringSliceFlag implements flag.Value for a repeatable string flag.
type stringSliceFlag struct{ target *[]string }

func (f stringSliceFlag) String() string {
	if f.target == nil {
		return ""
	}
	return strings.Join(*f.target, ",")
}
func (f stringSliceFlag) Set(s string) error {
	*f.target = append(*f.target, s)
	return nil
}

func overrideKeyFromFilename(path string) string {
	base := path[strings.LastIndexByte(path, '/')+1:]
	base = strings.TrimSuffix(base, ".xml")
	return dictionary.Normalize(base)
}

func runInfo(reg *dictionary.Registry, p *decoder.Palette, defaultKey string) {
	if defaultKey == "" {
		defaultKey = "FIX44"
	}
	for _, info := range reg.InfoTable() {
		marker := " "
		if info.Key == defaultKey {
			marker = "*"
		}
		fmt.Printf("%s %-9s msgtypes=%-4d fields=%-4d components=%-4d\n",
			marker, info.Key, info.MsgTypes, info.FieldCount, info.Components)
	}
}

func runExplorer(reg *dictionary.Registry, p *decoder.Palette, opts decoder.Options) error {
	key := opts.FixKey
	if key == "" {
		key = "FIX44"
	}
	dict, ok := reg.Get(key)
	if !ok {
		return fmt.Errorf("unknown dictionary key %q", key)
	}

	bopts := builder.Options{
		Verbose:        opts.Verbose,
		Columns:        opts.Columns,
		IncludeHeader:  opts.Header,
		IncludeTrailer: opts.Trailer,
	}

	var lines []string
	var err error
	switch {
	case opts.MessageSet:
		if opts.Message == "" {
			lines = builder.ListMessages(dict, opts.Columns)
		} else {
			lines, err = builder.RenderMessage(dict, opts.Message, bopts)
		}
	case opts.ComponentSet:
		if opts.Component == "" {
			lines = builder.ListComponents(dict)
		} else {
			lines, err = builder.RenderComponent(dict, opts.Component, bopts)
		}
	case opts.TagSet:
		if opts.Tag == "" {
			return fmt.Errorf("--tag requires a tag number")
		}
		n, convErr := strconv.Atoi(opts.Tag)
		if convErr != nil {
			return fmt.Errorf("--tag: invalid tag number %q", opts.Tag)
		}
		lines, err = builder.RenderTag(dict, quickfix.Tag(n))
	}
	if err != nil {
		return err
	}
	for _, l := range builder.Colourise(p, lines) {
		fmt.Println(l)
	}
	return nil
}

// runDecode drives the streaming pipeline: read lines from the positional
// files (or stdin), locate FIX runs, tokenise, pick a schema, obfuscate,
// then either prettify+validate or fold into the order summariser.
func runDecode(reg *dictionary.Registry, p *decoder.Palette, opts decoder.Options, delim byte) int {
	interrupted := installSignalHandler()

	readers, closeAll, err := openInputs(opts.Files)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeAll()

	obf := obfuscator.New()
	summariser := summary.New()

	for _, r := range readers {
		obf.Reset()
		if code := processStream(reg, p, opts, delim, r.Reader, r.Name, obf, summariser, interrupted); code != 0 {
			if opts.Summary {
				flushSummary(reg, p, opts.FixKey, summariser)
			}
			return code
		}
	}

	if opts.Summary {
		flushSummary(reg, p, opts.FixKey, summariser)
	}
	return 0
}

type namedReader struct {
	Name   string
	Reader io.Reader
}

func openInputs(files []string) ([]namedReader, func(), error) {
	if len(files) == 0 {
		return []namedReader{{Name: "-", Reader: os.Stdin}}, func() {}, nil
	}
	var readers []namedReader
	var closers []io.Closer
	for _, f := range files {
		fh, err := os.Open(f)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, nil, fmt.Errorf("opening %s: %w", f, err)
		}
		readers = append(readers, namedReader{Name: f, Reader: fh})
		closers = append(closers, fh)
	}
	return readers, func() {
		for _, c := range closers {
			c.Close()
		}
	}, nil
}

func processStream(reg *dictionary.Registry, p *decoder.Palette, opts decoder.Options, delim byte, r io.Reader, name string, obf *obfuscator.Obfuscator, summariser *summary.Summariser, interrupted func() bool) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		for scanner.Scan() {
			if interrupted() {
				return 2
			}
			line := scanner.Text()
			handleLine(reg, p, opts, delim, line, obf, summariser)
		}
		if err := scanner.Err(); err != nil {
			log.Printf("reading %s: %v", name, err)
			return 1
		}
		if !opts.Follow {
			return 0
		}
		if interrupted() {
			return 2
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func handleLine(reg *dictionary.Registry, p *decoder.Palette, opts decoder.Options, delim byte, line string, obf *obfuscator.Obfuscator, summariser *summary.Summariser) {
	start, end, ok := decoder.FindRun(line, delim)
	if !ok {
		fmt.Println(line)
		return
	}
	run := line[start:end]

	tokens, err := decoder.Tokenize(run, delim)
	if err != nil {
		log.Printf("malformed FIX run: %v", err)
		fmt.Println(line)
		return
	}

	dict, schemaKey := decoder.PickSchema(reg, tokens, opts.FixKey, func(msg string) { log.Print(msg) })

	if opts.Summary {
		summariser.Update(dict, tokens)
		return
	}

	rendered := decoder.Prettify(dict, schemaKey, tokens)
	for _, l := range decoder.RenderMessage(dict, rendered, decoder.RenderOptions{Palette: p, Secret: opts.Secret, Obf: obf}) {
		fmt.Println(l)
	}
	fmt.Println(decoder.RenderRawLine(p, line, start, end))

	if opts.Validate {
		findings := validator.Validate(dict, tokens, run, delim)
		printFindings(p, findings)
	}
}

func printFindings(p *decoder.Palette, findings []validator.Finding) {
	for _, f := range findings {
		colour := p.Warn
		if f.Severity == validator.SeverityError {
			colour = p.Error
		}
		if f.Tag != nil {
			fmt.Println(colour.Sprintf("  [%s] tag %d: %s", f.Severity, *f.Tag, f.Message))
		} else {
			fmt.Println(colour.Sprintf("  [%s] %s", f.Severity, f.Message))
		}
	}
}

func flushSummary(reg *dictionary.Registry, p *decoder.Palette, fixKey string, summariser *summary.Summariser) {
	key := fixKey
	if key == "" {
		key = "FIX44"
	}
	dict, ok := reg.Get(key)
	if !ok {
		dict, _ = reg.Get("FIX44")
	}
	for _, rec := range summariser.Records() {
		for _, l := range summary.Render(dict, p, rec) {
			fmt.Println(l)
		}
		rec.ClearDirty()
	}
}
