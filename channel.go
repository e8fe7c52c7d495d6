// Package swtch implements a minimal TFTP-over-Ethernet/IPv4/UDP engine:
// a client that issues one read request and acknowledges received data
// blocks, and a server that streams a bounded run of data blocks. Frames
// travel over flow-controlled byte channels, one octet per accepted tick,
// and every state machine in the engine advances in lock-step on the same
// logical clock.
package swtch

import "github.com/soypat/tftp-swtch/lax"

var _log = lax.Log

// Octet is one datum presented on a byte channel together with its
// end-of-frame marker.
type Octet struct {
	Data byte
	// End marks the last octet of a frame.
	End bool
}

// TxOut is the transmit half of the channel handshake as evaluated on one
// clock tick. An octet is transferred only on a tick where the transmitter
// asserts Valid and the receiver accepts simultaneously. While the receiver
// does not accept, the transmitter holds Data and End unchanged; the stall
// is a true hold, never a retry with altered state.
type TxOut struct {
	Valid bool
	Octet
}

// Header geometry. The engine extracts and writes fields at fixed offsets
// assuming exactly these header sizes; frames deviating from them are
// misparsed. This is a deliberate simplification, not a general parser.
const (
	LinkHeaderLen      = 14
	NetworkHeaderLen   = 20
	TransportHeaderLen = 8
	// HeadersLen is the offset of the application payload in every frame.
	HeadersLen = LinkHeaderLen + NetworkHeaderLen + TransportHeaderLen
	// blockFrameLen is the full length of DATA and ACK frames, whose
	// application payload is opcode plus block number.
	blockFrameLen = HeadersLen + 4
)
