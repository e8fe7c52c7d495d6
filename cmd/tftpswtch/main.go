// Command tftpswtch runs the client and server engines back to back over
// in-process byte channels and logs every frame that crosses the wire.
// It is a simulation harness, not a network daemon: no packets leave the
// process.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	swtch "github.com/soypat/tftp-swtch"
	"github.com/soypat/tftp-swtch/lax"
	"github.com/soypat/tftp-swtch/monitor"
	"github.com/soypat/tftp-swtch/stats"
)

func main() {
	var (
		configPath = flag.String("config", "", "session config TOML file (defaults used when empty)")
		ticks      = flag.Int("ticks", 4096, "maximum clock ticks to simulate")
		stall      = flag.Int("stall", 0, "withhold acceptance every Nth tick to exercise backpressure")
		debug      = flag.Bool("debug", false, "enable serial debug prints of the state machines")
	)
	flag.Parse()
	lax.SDB = *debug

	cliCfg, srvCfg, err := loadSessionConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cli, err := swtch.NewClient(cliCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	srv, err := swtch.NewServer(srvCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	counters := new(stats.Counters)
	cli.CountersTo(counters)
	srv.CountersTo(counters)

	mon := monitor.New(os.Stderr, uuid.New())
	tapDown := mon.Tap("server->client")
	tapUp := mon.Tap("client->wire")

	quiet := 0
	for t := 0; t < *ticks; t++ {
		accept := *stall == 0 || t%*stall != 0

		// The client's parser always accepts, so the server's offered
		// octet transfers whenever it is valid.
		srvTx := srv.Tick(true, true)
		if srvTx.Valid {
			tapDown.Observe(srvTx.Octet)
		}
		cliTx := cli.Tick(srvTx, accept)
		if cliTx.Valid && accept {
			tapUp.Observe(cliTx.Octet)
		}

		// Stop once both engines have gone quiet for a while; a lone
		// end-of-frame gap tick must not end the run early.
		if !cli.Active() && !srv.Active() && !cliTx.Valid && !srvTx.Valid {
			quiet++
		} else {
			quiet = 0
		}
		if quiet > 8 {
			break
		}
	}
	mon.Counters(counters.Snapshot())
}
