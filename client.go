package swtch

import (
	"net"

	"github.com/soypat/tftp-swtch/grams"
	"github.com/soypat/tftp-swtch/stats"
)

// ClientConfig is the immutable per-session configuration of the client
// engine. Changing any field requires a session reset through a new Client.
type ClientConfig struct {
	// MAC and IP are the client's own addresses, used as source fields of
	// every emitted frame.
	MAC net.HardwareAddr
	IP  net.IP
	// ServerMAC is the link-layer destination of the request frame,
	// typically grams.Broadcast.
	ServerMAC net.HardwareAddr
	ServerIP  net.IP
	Port      uint16
	// ServerPort is the request's destination port, canonically 69.
	ServerPort uint16
	// Filename names the requested resource. Mode defaults to "octet"
	// when left empty.
	Filename string
	Mode     string
	// MaxBlocks is the number of accepted data frames after which the
	// session reaches its terminal state.
	MaxBlocks uint16
}

// replyBox is the single-slot mailbox between the parser and the
// generator: parser sets, generator clears, both on the same tick
// boundary. A second data frame arriving before the previous reply was
// consumed overwrites the latched target; the slot is a latch, not a
// queue.
type replyBox struct {
	pending bool
	block   uint16
	target  endpoint
}

type clientState uint8

const (
	clientIdle clientState = iota
	clientRequest
	clientReply
	clientEnd
)

// Client is the read-request side of the engine: one request frame per
// session, one acknowledgment per accepted data frame up to the block cap.
type Client struct {
	cfg        ClientConfig
	self, peer endpoint

	parser parser
	box    replyBox

	state clientState
	pos   int
	buf   []byte

	requested  bool
	active     bool
	blocksSeen uint16

	counters *stats.Counters
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if len(cfg.MAC) != 6 || len(cfg.ServerMAC) != 6 {
		return nil, ErrBadMac
	}
	ip4, sip4 := cfg.IP.To4(), cfg.ServerIP.To4()
	if ip4 == nil || sip4 == nil {
		return nil, ErrBadIP
	}
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	if cfg.Mode == "" {
		cfg.Mode = grams.ModeOctet
	}
	if cfg.MaxBlocks == 0 {
		return nil, ErrZeroBlocks
	}
	c := &Client{cfg: cfg}
	copy(c.self.mac[:], cfg.MAC)
	copy(c.self.ip[:], ip4)
	c.self.port = cfg.Port
	copy(c.peer.mac[:], cfg.ServerMAC)
	copy(c.peer.ip[:], sip4)
	c.peer.port = cfg.ServerPort
	c.buf = make([]byte, 0, HeadersLen+int(grams.RequestLen(cfg.Filename, cfg.Mode)))
	c.Reset()
	return c, nil
}

// CountersTo routes the session counters to the register bank s. Pass nil
// to detach.
func (c *Client) CountersTo(s *stats.Counters) { c.counters = s }

// Active reports whether the session is running: true from reset release
// until BlocksSeen reaches the configured maximum. Deassertion is the
// terminal condition, not an error.
func (c *Client) Active() bool { return c.active }

// Requested reports whether the request frame completed. Sticky until reset.
func (c *Client) Requested() bool { return c.requested }

// BlocksSeen is the count of accepted data frames. Wraps at 16 bits.
func (c *Client) BlocksSeen() uint16 { return c.blocksSeen }

// Reset unconditionally reinitializes all session state, abandoning any
// partially received or emitted frame without its end marker. It also
// pulses the attached counter bank clear.
func (c *Client) Reset() {
	c.parser.reset()
	c.box = replyBox{}
	c.state = clientIdle
	c.pos = 0
	c.buf = c.buf[:0]
	c.requested = false
	c.blocksSeen = 0
	c.active = true
	if c.counters != nil {
		c.counters.Clear()
	}
}

// Tick advances the client one clock step. rx is the inbound wire as
// driven by the remote transmitter; txReady reports whether the remote
// receiver accepts this client's outbound octet on this tick. The parser
// steps before the generator, so a reply latched on this tick preempts a
// request that would begin on the very same tick.
//
// The parser side never blocks: an offered inbound octet is always
// accepted.
func (c *Client) Tick(rx TxOut, txReady bool) TxOut {
	if rx.Valid {
		c.feed(rx.Octet)
	}
	return c.emit(txReady)
}

func (c *Client) feed(oct Octet) {
	if !c.parser.feed(oct) {
		return
	}
	c.blocksSeen++ // 16-bit counter, wraps
	c.box.pending = true
	c.box.block = c.parser.app.Block()
	copy(c.box.target.mac[:], c.parser.eth.Source())
	copy(c.box.target.ip[:], c.parser.ip.Source())
	c.box.target.port = c.parser.udp.Source()
	if c.counters != nil {
		c.counters.AddDataSeen(c.box.block)
	}
	if c.blocksSeen >= c.cfg.MaxBlocks {
		c.active = false
	}
}

func (c *Client) emit(txReady bool) TxOut {
	switch c.state {
	case clientIdle:
		switch {
		// blocksSeen already counts the frame that latched the pending
		// reply; eligibility is judged on the count before it, so the
		// final block within the cap still gets its acknowledgment.
		case c.box.pending && c.blocksSeen-1 < c.cfg.MaxBlocks:
			c.beginReply()
		case !c.requested && c.active:
			c.beginRequest()
		default:
			return TxOut{}
		}
	case clientEnd:
		c.state = clientIdle
		return TxOut{Octet: Octet{End: true}}
	}
	out := TxOut{Valid: true, Octet: Octet{Data: c.buf[c.pos], End: c.pos == len(c.buf)-1}}
	if txReady {
		c.pos++
		if c.pos == len(c.buf) {
			c.finishFrame()
		}
	}
	return out
}

func (c *Client) beginReply() {
	// Single clear-on-consume, atomic with the state transition.
	c.box.pending = false
	c.buf = appendHeaders(c.buf[:0], c.self, c.box.target, 4)
	// Block number is copied verbatim from the latch, never recomputed.
	c.buf = appendBlockGram(c.buf, grams.OpAck, c.box.block)
	c.pos = 0
	c.state = clientReply
	_log("client:ack", c.buf)
}

func (c *Client) beginRequest() {
	plen := grams.RequestLen(c.cfg.Filename, c.cfg.Mode)
	c.buf = appendHeaders(c.buf[:0], c.self, c.peer, plen)
	c.buf = grams.AppendRequest(c.buf, grams.OpRRQ, c.cfg.Filename, c.cfg.Mode)
	c.pos = 0
	c.state = clientRequest
	_log("client:rrq", c.buf)
}

func (c *Client) finishFrame() {
	switch c.state {
	case clientRequest:
		c.requested = true
		if c.counters != nil {
			c.counters.AddRequestSent()
		}
	case clientReply:
		if c.counters != nil {
			c.counters.AddAckSent()
		}
	}
	c.state = clientEnd
}
