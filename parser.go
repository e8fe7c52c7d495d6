package swtch

import "github.com/soypat/tftp-swtch/grams"

// Inbound frame parser state machine.

type parserState uint8

const (
	parserIdle parserState = iota
	parserInFrame
)

// parser tracks byte position within an incoming frame and captures header
// fields at their fixed offsets. It never blocks and performs no boundary
// validation beyond positional capture: a truncated frame simply never
// classifies and a frame whose end marker never arrives stalls the session,
// which is a supervising watchdog's problem, not the parser's.
type parser struct {
	state parserState
	pos   int
	eth   grams.Ethernet
	ip    grams.IPv4
	udp   grams.UDP
	app   grams.BlockGram
}

// feed consumes one accepted octet. It reports true when the octet closed
// a frame that classifies as a TFTP data frame: full header region present,
// IPv4 ethertype, UDP protocol and DATA opcode. Any other frame is
// silently discarded.
func (p *parser) feed(oct Octet) (dataFrame bool) {
	if p.state == parserIdle {
		p.pos = 0
		p.state = parserInFrame
	}
	p.capture(oct.Data)
	p.pos++
	if !oct.End {
		return false
	}
	_log("parser:end", p.eth[:], p.app[:])
	dataFrame = p.pos >= blockFrameLen &&
		p.eth.EtherType() == grams.EtherTypeIPv4 &&
		p.ip.Protocol() == grams.IPHEADER_PROTOCOL_UDP &&
		p.app.Opcode() == grams.OpData
	p.state = parserIdle
	return dataFrame
}

// capture routes the octet at the current position into its header region.
// Octets past the opcode/block region are dropped.
func (p *parser) capture(b byte) {
	switch {
	case p.pos < LinkHeaderLen:
		p.eth[p.pos] = b
	case p.pos < LinkHeaderLen+NetworkHeaderLen:
		p.ip[p.pos-LinkHeaderLen] = b
	case p.pos < HeadersLen:
		p.udp[p.pos-LinkHeaderLen-NetworkHeaderLen] = b
	case p.pos < blockFrameLen:
		p.app[p.pos-HeadersLen] = b
	}
}

// reset abandons any in-flight frame without its end marker.
func (p *parser) reset() {
	p.state = parserIdle
	p.pos = 0
	p.eth.Set().Reset()
	p.ip.Set().Reset()
	p.udp.Set().Reset()
	p.app.Set().Reset()
}
