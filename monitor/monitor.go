// Package monitor is a passive, read-only observer of the engine's byte
// channels. It reassembles frames from transferred octets and logs
// structured summaries; it never drives engine state.
package monitor

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	swtch "github.com/soypat/tftp-swtch"
	"github.com/soypat/tftp-swtch/grams"
	"github.com/soypat/tftp-swtch/hex"
	"github.com/soypat/tftp-swtch/rfc791"
	"github.com/soypat/tftp-swtch/stats"
)

type Monitor struct {
	log zerolog.Logger
}

// New returns a Monitor writing structured logs to w. session tags every
// event so interleaved sessions can be told apart.
func New(w io.Writer, session uuid.UUID) *Monitor {
	log := zerolog.New(w).With().Timestamp().Str("session", session.String()).Logger()
	return &Monitor{log: log}
}

// Counters logs one snapshot of the register bank.
func (m *Monitor) Counters(snap stats.Snapshot) {
	m.log.Info().
		Uint32("requests_sent", snap.RequestsSent).
		Uint32("acks_sent", snap.AcksSent).
		Uint32("data_seen", snap.DataSeen).
		Uint32("data_sent", snap.DataSent).
		Uint16("last_block", snap.LastBlock).
		Msg("counters")
}

// Tap returns an observer for one channel direction. dir is a free-form
// label such as "server->client".
func (m *Monitor) Tap(dir string) *Tap {
	return &Tap{log: m.log.With().Str("dir", dir).Logger()}
}

// Tap accumulates the octets of one channel direction and emits one log
// event per completed frame.
type Tap struct {
	log zerolog.Logger
	buf []byte
}

// Observe records one octet. Callers must pass only octets whose
// offer/accept handshake completed, so the Tap sees exactly the bytes on
// the wire.
func (t *Tap) Observe(oct swtch.Octet) {
	t.buf = append(t.buf, oct.Data)
	if !oct.End {
		return
	}
	t.frame(t.buf)
	t.buf = t.buf[:0]
}

func (t *Tap) frame(b []byte) {
	ev := t.log.Info().Int("len", len(b))
	if len(b) < swtch.HeadersLen+2 {
		ev.Msg("short frame")
		return
	}
	var eth grams.Ethernet
	var ip grams.IPv4
	var udp grams.UDP
	copy(eth[:], b)
	copy(ip[:], b[swtch.LinkHeaderLen:])
	copy(udp[:], b[swtch.LinkHeaderLen+swtch.NetworkHeaderLen:])

	// The engine writes zero checksums; a conforming peer would see the
	// header as invalid. Report what the wire actually carries.
	sum := rfc791.New()
	sum.Write(ip[:])

	ev = ev.Str("dst", eth.Destination().String()).
		Str("src", eth.Source().String()).
		Uint16("sport", udp.Source()).
		Uint16("dport", udp.Destination()).
		Bool("ip_checksum_ok", sum.Sum() == 0)

	app := b[swtch.HeadersLen:]
	op := grams.Opcode(uint16(app[0])<<8 | uint16(app[1]))
	ev = ev.Str("op", op.String())
	if (op == grams.OpData || op == grams.OpAck) && len(app) >= 4 {
		ev = ev.Uint16("block", uint16(app[2])<<8|uint16(app[3]))
	}
	if dbg := t.log.Debug(); dbg.Enabled() {
		dbg.Str("raw", string(hex.Bytes(b))).Msg("frame octets")
	}
	ev.Msg("frame")
}
