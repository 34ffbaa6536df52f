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
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// buildTCPPacket constructs a minimal Ethernet/IPv4/TCP packet carrying
// payload at the given sequence number, for feeding into Filter.Process
// without a real capture.
func buildTCPPacket(t *testing.T, srcPort, dstPort uint16, seq uint32, payload []byte) gopacket.Packet {
	t.Helper()

	eth := &layers.Ethernet{EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(srcPort),
		DstPort: layers.TCPPort(dstPort),
		Seq:     seq,
		PSH:     true,
		ACK:     true,
	}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("SetNetworkLayerForChecksum: %v", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(payload)); err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}
	return gopacket.NewPacket(buf.Bytes(), layers.LayerTypeEthernet, gopacket.Default)
}

func TestFilter_ReassemblesSplitMessageAcrossPackets(t *testing.T) {
	f := New(Config{Port: 5001, MaxBufferedBytes: 4096, IdleTimeout: time.Minute})

	p1 := buildTCPPacket(t, 40000, 5001, 1000, []byte("8=FIX.4.4\x019=5\x0135=A\x01"))
	if msgs := f.Process(p1); len(msgs) != 0 {
		t.Fatalf("expected no complete message yet, got %d", len(msgs))
	}

	p2 := buildTCPPacket(t, 40000, 5001, 1000+19, []byte("10=128\x01"))
	msgs := f.Process(p2)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 complete message, got %d", len(msgs))
	}
	if string(msgs[0]) != "8=FIX.4.4\x019=5\x0135=A\x0110=128\x01" {
		t.Fatalf("unexpected reassembled message: %q", msgs[0])
	}
}

func TestFilter_NonMatchingPortDiscarded(t *testing.T) {
	f := New(Config{Port: 5001, MaxBufferedBytes: 4096, IdleTimeout: time.Minute})

	p := buildTCPPacket(t, 40000, 9999, 1000, []byte("8=FIX.4.4\x019=5\x0135=A\x0110=128\x01"))
	if msgs := f.Process(p); msgs != nil {
		t.Fatalf("expected non-matching port to be discarded, got %v", msgs)
	}
	if len(f.flows) != 0 {
		t.Fatalf("expected no flow state created for discarded packet")
	}
}

func TestFilter_SweepFlushesIdleFlow(t *testing.T) {
	f := New(Config{Port: 5001, MaxBufferedBytes: 4096, IdleTimeout: time.Millisecond})
	warned := false
	f.cfg.Warn = func(string) { warned = true }

	p := buildTCPPacket(t, 40000, 5001, 1000, []byte("8=FIX.4.4\x019=5\x0135=A\x01"))
	f.Process(p)

	f.Sweep(time.Now().Add(time.Second))

	if len(f.flows) != 0 {
		t.Fatalf("expected idle flow to be removed")
	}
	if !warned {
		t.Fatalf("expected idle flush warning for unterminated tail")
	}
}
