package swtch

import (
	"net"

	"github.com/soypat/tftp-swtch/grams"
	"github.com/soypat/tftp-swtch/stats"
)

// ServerConfig is the immutable per-session configuration of the server
// engine. In this minimal variant the server fills both source and
// destination sides from its own configuration; it never learns addresses
// from inbound traffic because it never looks at inbound traffic.
type ServerConfig struct {
	MAC        net.HardwareAddr
	IP         net.IP
	ClientMAC  net.HardwareAddr
	ClientIP   net.IP
	Port       uint16
	ClientPort uint16
	// MaxBlocks bounds the number of data frames emitted per session.
	MaxBlocks uint16
}

type serverState uint8

const (
	serverIdle serverState = iota
	serverSending
	serverGap
)

// Server streams a bounded sequence of data frames, gated only by its
// enable input. Data frames carry headers and a block number but no file
// octets; payload sourcing belongs to a storage collaborator.
type Server struct {
	cfg        ServerConfig
	self, peer endpoint

	state serverState
	pos   int
	buf   []byte

	blocksSent   uint16
	currentBlock uint16
	active       bool

	counters *stats.Counters
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if len(cfg.MAC) != 6 || len(cfg.ClientMAC) != 6 {
		return nil, ErrBadMac
	}
	ip4, cip4 := cfg.IP.To4(), cfg.ClientIP.To4()
	if ip4 == nil || cip4 == nil {
		return nil, ErrBadIP
	}
	if cfg.MaxBlocks == 0 {
		return nil, ErrZeroBlocks
	}
	s := &Server{cfg: cfg}
	copy(s.self.mac[:], cfg.MAC)
	copy(s.self.ip[:], ip4)
	s.self.port = cfg.Port
	copy(s.peer.mac[:], cfg.ClientMAC)
	copy(s.peer.ip[:], cip4)
	s.peer.port = cfg.ClientPort
	s.buf = make([]byte, 0, blockFrameLen)
	s.Reset()
	return s, nil
}

// CountersTo routes the session counters to the register bank c. Pass nil
// to detach.
func (s *Server) CountersTo(c *stats.Counters) { s.counters = c }

func (s *Server) Active() bool { return s.active }

// BlocksSent is the count of completed data frames. Bounded by MaxBlocks
// until reset.
func (s *Server) BlocksSent() uint16 { return s.blocksSent }

// Reset unconditionally reinitializes all server state, abandoning any
// partially emitted frame without its end marker.
func (s *Server) Reset() {
	s.state = serverIdle
	s.pos = 0
	s.buf = s.buf[:0]
	s.blocksSent = 0
	s.currentBlock = 0
	s.active = false
	if s.counters != nil {
		s.counters.Clear()
	}
}

// Tick advances the server one clock step. enable gates frame emission;
// txReady reports whether the receiver accepts the offered octet on this
// tick.
func (s *Server) Tick(enable, txReady bool) TxOut {
	switch s.state {
	case serverIdle:
		if !enable || s.blocksSent >= s.cfg.MaxBlocks {
			return TxOut{}
		}
		// A session resumed after the enable input toggled continues
		// from the already-sent count rather than restarting at 1.
		s.currentBlock = s.blocksSent + 1
		s.active = true
		s.beginData()
	case serverGap:
		// One idle tick between frames, no transfer.
		if enable && s.blocksSent < s.cfg.MaxBlocks {
			s.currentBlock = s.blocksSent + 1
			s.beginData()
		} else {
			s.state = serverIdle
			s.active = false
		}
		return TxOut{}
	}
	out := TxOut{Valid: true, Octet: Octet{Data: s.buf[s.pos], End: s.pos == len(s.buf)-1}}
	if txReady {
		s.pos++
		if s.pos == len(s.buf) {
			s.blocksSent++
			if s.counters != nil {
				s.counters.AddDataSent(s.currentBlock)
			}
			s.state = serverGap
		}
	}
	return out
}

func (s *Server) beginData() {
	s.buf = appendHeaders(s.buf[:0], s.self, s.peer, 4)
	s.buf = appendBlockGram(s.buf, grams.OpData, s.currentBlock)
	s.pos = 0
	s.state = serverSending
	_log("server:data", s.buf)
}
