package swtch

import (
	"net"
	"testing"

	"github.com/soypat/tftp-swtch/grams"
	"github.com/soypat/tftp-swtch/hex"
)

func testServerConfig() ServerConfig {
	return ServerConfig{
		MAC:        net.HardwareAddr(hex.Decode([]byte(`28 d2 44 9a 2f f3`))),
		IP:         net.IP{192, 168, 1, 5},
		ClientMAC:  net.HardwareAddr(hex.Decode([]byte(`de ad be ef fe ff`))),
		ClientIP:   net.IP{192, 168, 1, 112},
		Port:       69,
		ClientPort: 50618,
		MaxBlocks:  8,
	}
}

func runServer(s *Server, enable bool, n int, rec *wireRecorder) {
	for i := 0; i < n; i++ {
		rec.push(s.Tick(enable, true))
	}
}

func TestServerBound(t *testing.T) {
	s, err := NewServer(testServerConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec := &wireRecorder{}
	runServer(s, true, 1000, rec)
	if len(rec.frames) != 8 {
		t.Fatalf("server emitted %d frames, want exactly 8", len(rec.frames))
	}
	for i, f := range rec.frames {
		if len(f) != blockFrameLen {
			t.Errorf("frame %d length %d, want %d", i, len(f), blockFrameLen)
		}
		if op := frameOpcode(f); op != grams.OpData {
			t.Errorf("frame %d opcode %v, want DATA", i, op)
		}
		if frameBlock(f) != uint16(i+1) {
			t.Errorf("frame %d block %d, want %d", i, frameBlock(f), i+1)
		}
	}
	if s.Active() {
		t.Error("active still asserted after block cap")
	}
	if s.BlocksSent() != 8 {
		t.Errorf("blocksSent %d, want 8", s.BlocksSent())
	}
	// Still enabled, still silent.
	before := len(rec.frames)
	runServer(s, true, 200, rec)
	if len(rec.frames) != before {
		t.Error("server emitted frames past the block cap")
	}
}

func TestServerFrameFields(t *testing.T) {
	s, err := NewServer(testServerConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec := &wireRecorder{}
	runServer(s, true, 60, rec)
	if len(rec.frames) != 1 {
		t.Fatalf("expected first data frame, got %d frames", len(rec.frames))
	}
	want := hex.Decode([]byte(`de ad be ef fe ff 28 d2 44 9a 2f f3 08 00 45 00
00 20 00 00 00 00 40 11 00 00 c0 a8 01 05 c0 a8
01 70 00 45 c5 ba 00 0c 00 00 00 03 00 01`))
	got := rec.frames[0]
	if len(got) != len(want) {
		t.Fatalf("data frame length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("data frame byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestServerGapTick(t *testing.T) {
	s, err := NewServer(testServerConfig())
	if err != nil {
		t.Fatal(err)
	}
	// 46 octets transfer, then exactly one tick with no offer before the
	// next frame begins.
	for i := 0; i < blockFrameLen; i++ {
		if out := s.Tick(true, true); !out.Valid {
			t.Fatalf("tick %d: expected an offered octet", i)
		}
	}
	if out := s.Tick(true, true); out.Valid {
		t.Error("gap tick offered an octet")
	}
	if out := s.Tick(true, true); !out.Valid {
		t.Error("second frame did not begin after single gap tick")
	}
}

func TestServerEnableToggle(t *testing.T) {
	cfg := testServerConfig()
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := &wireRecorder{}
	// Three whole frames, stopping on the trailing gap tick so the
	// disable lands before the next frame is committed.
	runServer(s, true, 3*(blockFrameLen+1)-1, rec)
	if len(rec.frames) != 3 {
		t.Fatalf("expected 3 frames before disable, got %d", len(rec.frames))
	}
	runServer(s, false, 50, rec)
	if s.Active() {
		t.Error("active asserted while disabled in idle")
	}
	// Resuming continues from the already-sent count. The block sequence
	// does not restart at 1; this mirrors the restart contract as is.
	runServer(s, true, 1000, rec)
	blocks := make([]uint16, len(rec.frames))
	for i, f := range rec.frames {
		blocks[i] = frameBlock(f)
	}
	for i, b := range blocks {
		if b != uint16(i+1) {
			t.Fatalf("block sequence %v, want 1..8 continuing across the toggle", blocks)
		}
	}
	if len(rec.frames) != 8 {
		t.Errorf("total frames %d, want 8", len(rec.frames))
	}
}

func TestServerBackpressure(t *testing.T) {
	s, err := NewServer(testServerConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec := &wireRecorder{}
	var last TxOut
	var haveLast bool
	for tick := 0; len(rec.frames) == 0 && tick < 1000; tick++ {
		accept := tick%3 == 2
		out := s.Tick(true, accept)
		if haveLast && last.Valid && out.Valid && out.Octet != last.Octet {
			t.Fatalf("tick %d: offered octet changed while stalled", tick)
		}
		if accept {
			rec.push(out)
			haveLast = false
		} else {
			last, haveLast = out, out.Valid
		}
	}
	if len(rec.frames) != 1 || len(rec.frames[0]) != blockFrameLen {
		t.Fatal("stalled emission corrupted data frame")
	}
}

func TestServerReset(t *testing.T) {
	s, err := NewServer(testServerConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec := &wireRecorder{}
	runServer(s, true, 20, rec)
	if len(rec.cur) == 0 {
		t.Fatal("expected a partially emitted frame before reset")
	}
	s.Reset()
	if s.BlocksSent() != 0 || s.Active() {
		t.Error("server state not reinitialized on reset")
	}
	rec2 := &wireRecorder{}
	runServer(s, true, 60, rec2)
	if len(rec2.frames) != 1 || frameBlock(rec2.frames[0]) != 1 {
		t.Error("block sequence did not restart at 1 after reset")
	}
}
