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

// Command pcap2fix reassembles TCP segments from a packet capture and
// writes the FIX messages carried inside to standard output.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fixdecoder/decoder"
	"fixdecoder/pcapfilter"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/pcapgo"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pcap2fix: ")

	fs := flag.NewFlagSet("pcap2fix", flag.ExitOnError)
	input := fs.String("input", "", "offline pcap/pcapng file; defaults to a live capture on standard input")
	port := fs.Int("port", 0, "TCP port to filter; 0 accepts every port")
	delimiterSpec := fs.String("delimiter", "", "field delimiter: a character, SOH, or \\xNN/0xNN")
	_ = fs.Parse(os.Args[1:])

	delim := decoder.DefaultDelimiter
	if *delimiterSpec != "" {
		d, err := decoder.ParseDelimiter(*delimiterSpec)
		if err != nil {
			log.Fatalf("%v", err)
		}
		delim = d
	}

	handle, err := openSource(*input)
	if err != nil {
		log.Fatalf("opening capture source: %v", err)
	}
	defer handle.Close()

	f := pcapfilter.New(pcapfilter.Config{
		Port:      *port,
		Delimiter: delim,
		Warn:      func(msg string) { log.Print(msg) },
	})

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(done)
	}()

	if err := pcapfilter.Run(packetSource, f, os.Stdout, done); err != nil {
		log.Fatalf("%v", err)
	}
}

// captureHandle abstracts the two ways a packet source is opened, so main
// doesn't need to know whether it's reading a file or a live interface.
type captureHandle interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
	Close()
}

func openSource(input string) (captureHandle, error) {
	if input != "" {
		h, err := pcap.OpenOffline(input)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	r, err := pcapgo.NewReader(os.Stdin)
	if err != nil {
		return nil, err
	}
	return stdinHandle{r}, nil
}

// stdinHandle adapts a pcapgo.Reader (no Close method, reads stdin) to the
// captureHandle shape shared with *pcap.Handle.
type stdinHandle struct {
	*pcapgo.Reader
}

func (stdinHandle) Close() {}
