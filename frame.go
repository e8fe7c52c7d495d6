package swtch

import "github.com/soypat/tftp-swtch/grams"

// endpoint holds the resolved link, network and transport addresses of one
// side of the session.
type endpoint struct {
	mac  [6]byte
	ip   [4]byte
	port uint16
}

// appendHeaders appends the 42 header octets of a frame carrying plen
// application payload octets from src to dst. Length fields are computed
// from plen; both checksums are written as zero and receivers in this
// system never validate them.
func appendHeaders(buf []byte, src, dst endpoint, plen uint16) []byte {
	var eth grams.Ethernet
	es := eth.Set()
	es.Destination(dst.mac[:])
	es.Source(src.mac[:])
	es.EtherType(grams.EtherTypeIPv4)
	buf = append(buf, eth[:]...)

	// TOS, identification, flags and checksum stay zero.
	var ip grams.IPv4
	is := ip.Set()
	is.Version(grams.IPHEADER_VERSION_4)
	is.TotalLength(NetworkHeaderLen + TransportHeaderLen + plen)
	is.TTL(grams.IPHEADER_TTL_DEFAULT)
	is.Protocol(grams.IPHEADER_PROTOCOL_UDP)
	is.Source(src.ip[:])
	is.Destination(dst.ip[:])
	buf = append(buf, ip[:]...)

	var udp grams.UDP
	us := udp.Set()
	us.Source(src.port)
	us.Destination(dst.port)
	us.Length(TransportHeaderLen + plen)
	buf = append(buf, udp[:]...)
	return buf
}

// appendBlockGram appends the 4 octet DATA/ACK payload.
func appendBlockGram(buf []byte, op grams.Opcode, block uint16) []byte {
	var g grams.BlockGram
	gs := g.Set()
	gs.Opcode(op)
	gs.Block(block)
	return append(buf, g[:]...)
}
