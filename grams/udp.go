package grams

import (
	"encoding/binary"

	"github.com/soypat/tftp-swtch/lax"
)

// UDP is a fixed 8 octet UDP header.
type UDP [8]byte

func (u *UDP) Source() uint16      { return binary.BigEndian.Uint16(u[0:2]) }
func (u *UDP) Destination() uint16 { return binary.BigEndian.Uint16(u[2:4]) }

// Length is the length of UDP header plus payload in octets.
func (u *UDP) Length() uint16   { return binary.BigEndian.Uint16(u[4:6]) }
func (u *UDP) Checksum() uint16 { return binary.BigEndian.Uint16(u[6:8]) }

func (u *UDP) String() string {
	return lax.Strcat("UDP port ", u16toa(u.Source()), "->", u16toa(u.Destination()))
}

func (u *UDP) Set() UDPSet { return UDPSet{u} }

// UDPSet is a helper to write fields of the UDP data buffer.
type UDPSet struct {
	udp *UDP
}

func (s UDPSet) Reset() {
	*(s.udp) = UDP{}
}

func (s UDPSet) Source(p uint16)      { binary.BigEndian.PutUint16(s.udp[0:2], p) }
func (s UDPSet) Destination(p uint16) { binary.BigEndian.PutUint16(s.udp[2:4], p) }
func (s UDPSet) Length(l uint16)      { binary.BigEndian.PutUint16(s.udp[4:6], l) }
func (s UDPSet) Checksum(c uint16)    { binary.BigEndian.PutUint16(s.udp[6:8], c) }
