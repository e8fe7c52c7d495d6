package grams

import (
	"encoding/binary"
	"net"

	"github.com/soypat/tftp-swtch/lax"
)

var (
	// Broadcast is a special hardware address which indicates a Frame should
	// be sent to every device on a given LAN segment.
	Broadcast = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	None      = net.HardwareAddr{0, 0, 0, 0, 0, 0}
)

// An EtherType is a value used to identify an upper layer protocol
// encapsulated in a Frame.
//
// A list of IANA-assigned EtherType values may be found here:
// http://www.iana.org/assignments/ieee-802-numbers/ieee-802-numbers.xhtml.
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeARP  EtherType = 0x0806
	EtherTypeIPv6 EtherType = 0x86DD
)

// Ethernet is an IEEE 802.3 Ethernet II header. This engine does not
// handle 802.1Q VLAN tags; the header is always exactly 14 octets.
type Ethernet [14]byte

func (f *Ethernet) String() string {
	return lax.Strcat("dst: ", f.Destination().String(), ", ",
		"src: ", f.Source().String())
}

func (f *Ethernet) Destination() net.HardwareAddr {
	return f[0:6]
}
func (f *Ethernet) Source() net.HardwareAddr {
	return f[6:12]
}

func (f *Ethernet) EtherType() EtherType {
	return EtherType(binary.BigEndian.Uint16(f[12:14]))
}

func (f *Ethernet) Set() EthernetSet {
	return EthernetSet{eth: f}
}

// EthernetSet is a helper to write fields of the Ethernet data buffer.
type EthernetSet struct {
	eth *Ethernet
}

func (e EthernetSet) Reset() {
	*(e.eth) = Ethernet{}
}

func (e EthernetSet) Destination(MAC net.HardwareAddr) { copy(e.eth.Destination(), MAC) }
func (e EthernetSet) Source(MAC net.HardwareAddr)      { copy(e.eth.Source(), MAC) }

func (e EthernetSet) EtherType(et EtherType) {
	binary.BigEndian.PutUint16(e.eth[12:14], uint16(et))
}
