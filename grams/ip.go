package grams

import (
	"encoding/binary"
	"net"

	"github.com/soypat/tftp-swtch/lax"
)

// IP header data.

const (
	IPHEADER_VERSION_4    = 0x45
	IPHEADER_PROTOCOL_UDP = 0x11
	IPHEADER_TTL_DEFAULT  = 0x40
)

// IPv4 is a fixed 20 octet IPv4 header. Headers with options (IHL > 5)
// are not represented; this engine neither emits nor understands them.
type IPv4 [20]byte

func (ip *IPv4) Version() uint8 { return ip[0] }

// TotalLength is the combined length of the IP header and payload in octets.
func (ip *IPv4) TotalLength() uint16 { return binary.BigEndian.Uint16(ip[2:4]) }
func (ip *IPv4) ID() uint16          { return binary.BigEndian.Uint16(ip[4:6]) }
func (ip *IPv4) TTL() uint8          { return ip[8] }
func (ip *IPv4) Protocol() uint8     { return ip[9] }
func (ip *IPv4) Checksum() uint16    { return binary.BigEndian.Uint16(ip[10:12]) }

// Source IPv4 Address
func (ip *IPv4) Source() net.IP { return ip[12:16] }

// Destination IPv4 Address
func (ip *IPv4) Destination() net.IP { return ip[16:20] }

func (ip *IPv4) String() string {
	return lax.Strcat("IPv4 ", ip.Source().String(), "->", ip.Destination().String())
}

func (ip *IPv4) Set() IPv4Set { return IPv4Set{ip} }

// IPv4Set is a helper to write fields of the IPv4 data buffer.
type IPv4Set struct {
	ip *IPv4
}

func (s IPv4Set) Reset() {
	*(s.ip) = IPv4{}
}

func (s IPv4Set) Version(v uint8)         { s.ip[0] = v }
func (s IPv4Set) TOS(tos uint8)           { s.ip[1] = tos }
func (s IPv4Set) TotalLength(plen uint16) { binary.BigEndian.PutUint16(s.ip[2:4], plen) }
func (s IPv4Set) ID(id uint16)            { binary.BigEndian.PutUint16(s.ip[4:6], id) }
func (s IPv4Set) Flags(ORFlags uint16)    { binary.BigEndian.PutUint16(s.ip[6:8], ORFlags) }
func (s IPv4Set) TTL(ttl uint8)           { s.ip[8] = ttl }
func (s IPv4Set) Protocol(p uint8)        { s.ip[9] = p }
func (s IPv4Set) Checksum(c uint16)       { binary.BigEndian.PutUint16(s.ip[10:12], c) }

// Source sets the source IPv4 Address
func (s IPv4Set) Source(ip net.IP) { copy(s.ip[12:16], ip) }

// Destination sets the destination IPv4 Address
func (s IPv4Set) Destination(ip net.IP) { copy(s.ip[16:20], ip) }
