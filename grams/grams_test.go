package grams

import (
	"bytes"
	"net"
	"testing"
)

func TestEthernetFields(t *testing.T) {
	var f Ethernet
	set := f.Set()
	set.Destination(Broadcast)
	set.Source(net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xfe, 0xff})
	set.EtherType(EtherTypeIPv4)
	switch {
	case !bytes.Equal(f.Destination(), Broadcast):
		t.Error("destination MAC")
	case !bytes.Equal(f.Source(), net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xfe, 0xff}):
		t.Error("source MAC")
	case f.EtherType() != EtherTypeIPv4:
		t.Error("ethertype")
	}
	set.Reset()
	if f != (Ethernet{}) {
		t.Error("reset did not zero header")
	}
}

func TestIPv4Fields(t *testing.T) {
	var ip IPv4
	set := ip.Set()
	set.Version(IPHEADER_VERSION_4)
	set.TotalLength(45)
	set.TTL(IPHEADER_TTL_DEFAULT)
	set.Protocol(IPHEADER_PROTOCOL_UDP)
	set.Source(net.IP{192, 168, 1, 112})
	set.Destination(net.IP{192, 168, 1, 5})
	switch {
	case ip.Version() != 0x45:
		t.Error("version")
	case ip.TotalLength() != 45:
		t.Error("total length")
	case ip.TTL() != 0x40:
		t.Error("ttl")
	case ip.Protocol() != 0x11:
		t.Error("protocol")
	case ip.Checksum() != 0:
		t.Error("checksum must stay zero")
	case !bytes.Equal(ip.Source(), net.IP{192, 168, 1, 112}):
		t.Error("source address")
	case !bytes.Equal(ip.Destination(), net.IP{192, 168, 1, 5}):
		t.Error("destination address")
	}
}

func TestUDPFields(t *testing.T) {
	var u UDP
	set := u.Set()
	set.Source(50618)
	set.Destination(69)
	set.Length(25)
	switch {
	case u.Source() != 50618:
		t.Error("source port")
	case u.Destination() != 69:
		t.Error("destination port")
	case u.Length() != 25:
		t.Error("length")
	case u.Checksum() != 0:
		t.Error("checksum must stay zero")
	}
}

func TestRequestPayload(t *testing.T) {
	if n := RequestLen("boot.bin", ModeOctet); n != 17 {
		t.Errorf("request payload length %d, want 17", n)
	}
	got := AppendRequest(nil, OpRRQ, "boot.bin", ModeOctet)
	want := []byte("\x00\x01boot.bin\x00octet\x00")
	if !bytes.Equal(got, want) {
		t.Errorf("request payload %q, want %q", got, want)
	}
	if len(got) != int(RequestLen("boot.bin", ModeOctet)) {
		t.Error("AppendRequest length disagrees with RequestLen")
	}
}

func TestBlockGram(t *testing.T) {
	var g BlockGram
	set := g.Set()
	set.Opcode(OpAck)
	set.Block(0xffff)
	if g.Opcode() != OpAck || g.Block() != 0xffff {
		t.Errorf("block gram roundtrip: %v block %d", g.Opcode(), g.Block())
	}
	if g.String() != "ACK block 65535" {
		t.Errorf("string: %q", g.String())
	}
}
