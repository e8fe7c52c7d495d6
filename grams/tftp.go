package grams

import (
	"encoding/binary"
	"strconv"

	"github.com/soypat/tftp-swtch/lax"
)

// TFTP application layer data (RFC 1350 subset).

// Opcode identifies the TFTP message kind in the first two payload octets.
type Opcode uint16

const (
	OpRRQ   Opcode = 1
	OpWRQ   Opcode = 2
	OpData  Opcode = 3
	OpAck   Opcode = 4
	OpError Opcode = 5
)

func (op Opcode) String() (s string) {
	switch op {
	case OpRRQ:
		s = "RRQ"
	case OpWRQ:
		s = "WRQ"
	case OpData:
		s = "DATA"
	case OpAck:
		s = "ACK"
	case OpError:
		s = "ERROR"
	default:
		s = "?"
	}
	return s
}

// ModeOctet is the only transfer mode this engine ever requests.
const ModeOctet = "octet"

// RequestLen returns the application payload length of a read/write
// request: opcode, filename, NUL, mode, NUL.
func RequestLen(filename, mode string) uint16 {
	return 2 + uint16(len(filename)) + 1 + uint16(len(mode)) + 1
}

// AppendRequest appends an RRQ/WRQ payload to dst and returns the
// extended slice.
func AppendRequest(dst []byte, op Opcode, filename, mode string) []byte {
	dst = append(dst, byte(op>>8), byte(op))
	dst = append(dst, filename...)
	dst = append(dst, 0)
	dst = append(dst, mode...)
	dst = append(dst, 0)
	return dst
}

// BlockGram is the fixed 4 octet payload shared by DATA and ACK frames in
// this engine: opcode followed by a 16-bit block number. DATA frames carry
// no file octets here; payload sourcing belongs to a storage collaborator.
type BlockGram [4]byte

func (b *BlockGram) Opcode() Opcode { return Opcode(binary.BigEndian.Uint16(b[0:2])) }
func (b *BlockGram) Block() uint16  { return binary.BigEndian.Uint16(b[2:4]) }

func (b *BlockGram) String() string {
	return lax.Strcat(b.Opcode().String(), " block ", u16toa(b.Block()))
}

func (b *BlockGram) Set() BlockGramSet { return BlockGramSet{b} }

type BlockGramSet struct {
	g *BlockGram
}

func (s BlockGramSet) Reset() {
	*(s.g) = BlockGram{}
}

func (s BlockGramSet) Opcode(op Opcode) { binary.BigEndian.PutUint16(s.g[0:2], uint16(op)) }
func (s BlockGramSet) Block(n uint16)   { binary.BigEndian.PutUint16(s.g[2:4], n) }

func u16toa(u uint16) string {
	return strconv.Itoa(int(u))
}
