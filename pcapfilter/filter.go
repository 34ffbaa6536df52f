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

package pcapfilter

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Config bounds a Filter's resource usage.
type Config struct {
	Port             int           // 0 means accept every TCP port
	Delimiter        byte
	MaxBufferedBytes int // reassembly + emission ceiling, per flow
	IdleTimeout      time.Duration
	Warn             func(string)
}

// Filter reassembles a packet stream into ordered FIX byte runs. It is not
// safe for concurrent use; the capture loop that owns it is the sole
// caller of Process/Sweep.
type Filter struct {
	cfg   Config
	flows map[string]*flow
}

// New returns a Filter with sane defaults applied to any zero fields.
func New(cfg Config) *Filter {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = 0x01
	}
	if cfg.MaxBufferedBytes <= 0 {
		cfg.MaxBufferedBytes = 1 << 20
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Second
	}
	if cfg.Warn == nil {
		cfg.Warn = func(string) {}
	}
	return &Filter{cfg: cfg, flows: map[string]*flow{}}
}

// flowKey builds the 5-tuple identity of a packet's TCP flow, direction
// sensitive (A->B and B->A are distinct flows, each reassembled on its own
// sequence space).
func flowKey(net gopacket.NetworkLayer, tcp *layers.TCP) string {
	return fmt.Sprintf("%s:%d->%s:%d", net.NetworkFlow().Src(), tcp.SrcPort, net.NetworkFlow().Dst(), tcp.DstPort)
}

// Process applies one captured packet to its flow's reassembly state and
// returns any complete FIX messages the update produced, in order. Packets
// that are not TCP, or that don't match the configured port, are
// discarded.
func (f *Filter) Process(packet gopacket.Packet) [][]byte {
	netLayer := packet.NetworkLayer()
	tcpLayer := packet.Layer(layers.LayerTypeTCP)
	if netLayer == nil || tcpLayer == nil {
		return nil
	}
	tcp, ok := tcpLayer.(*layers.TCP)
	if !ok || len(tcp.Payload) == 0 {
		return nil
	}
	if f.cfg.Port != 0 && int(tcp.SrcPort) != f.cfg.Port && int(tcp.DstPort) != f.cfg.Port {
		return nil
	}

	key := flowKey(netLayer, tcp)
	fl, ok := f.flows[key]
	if !ok {
		fl = newFlow(tcp.Seq)
		f.flows[key] = fl
	}

	accepted, overflow := fl.insert(tcp.Seq, tcp.Payload, f.cfg.MaxBufferedBytes)
	if overflow {
		f.cfg.Warn(fmt.Sprintf("pcapfilter: flow %s exceeded reassembly cap, resetting", key))
		delete(f.flows, key)
		return nil
	}
	if !accepted {
		return nil
	}

	msgs, tail := scanMessages(fl.emission, f.cfg.Delimiter)
	fl.emission = tail
	return msgs
}

// Sweep flushes and removes every flow idle longer than the configured
// timeout, discarding each one's unterminated tail.
func (f *Filter) Sweep(now time.Time) {
	for key, fl := range f.flows {
		if now.Sub(fl.lastSeen) > f.cfg.IdleTimeout {
			if len(fl.emission) > 0 {
				f.cfg.Warn(fmt.Sprintf("pcapfilter: flow %s idle-flushed, discarding %d unterminated bytes", key, len(fl.emission)))
			}
			delete(f.flows, key)
		}
	}
}

// Run drains packetSource, writing every complete FIX message to out as it
// is reassembled, and sweeping idle flows every IdleTimeout/2 until the
// source is exhausted or ctx-like cancellation is signalled via done.
func Run(packetSource *gopacket.PacketSource, f *Filter, out io.Writer, done <-chan struct{}) error {
	ticker := time.NewTicker(f.cfg.IdleTimeout / 2)
	defer ticker.Stop()

	packets := packetSource.Packets()
	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			f.Sweep(time.Now())
		case packet, ok := <-packets:
			if !ok {
				return nil
			}
			for _, msg := range f.Process(packet) {
				if _, err := out.Write(msg); err != nil {
					return err
				}
			}
		}
	}
}
