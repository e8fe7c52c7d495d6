// Package lax holds the serial-debug logging shim used by the protocol
// state machines. It compiles down to nothing when SDB is left unset.
package lax

import "github.com/soypat/tftp-swtch/hex"

// Serial Debug flag. Enables printing of log.
var (
	SDB bool
	// When SDB and SDBTrace are enabled only string message is printed.
	SDBTrace bool
)

// Log prints msg and datas as hex strings when SDB is set. If the compiler
// can prove SDB never changes the calls are not compiled in at all.
func Log(msg string, datas ...[]byte) {
	if SDB {
		print(Strcat("swtch:", msg))
		if !SDBTrace {
			for d := range datas {
				print(" 0x")
				print(string(hex.Bytes(datas[d])))
			}
		}
		println()
	}
}

// Strcat is a local string concatenation primitive kept separate so it
// can be swapped for a no-heap version when weeding out allocations.
func Strcat(s ...string) (out string) {
	for i := range s {
		out += s[i]
	}
	return out
}
