// Command cpurunner executes a ROM on the CPU alone, without PPU timing.
// With the defaults it runs nestest.nes in its automated mode and reports
// the result codes at $02 and $03.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cpu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.nes)")
	steps := flag.Int("steps", 1_000_000, "max CPU steps to run")
	startPC := flag.Int("pc", 0xC000, "initial PC value; negative uses the reset vector")
	until := flag.Int("until", 0xC66E, "stop when PC reaches this address; negative to disable")
	trace := flag.Bool("trace", false, "print a nestest-format trace line per instruction")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	traceOnFail := flag.Bool("traceOnFail", false, "on a nonzero result, print a recent trace window")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}
	c, err := cart.Load(rom)
	if err != nil {
		log.Fatalf("%s: %v", *romPath, err)
	}

	b := bus.New(c)
	cp := cpu.New(b)
	cp.Reset()
	if *startPC >= 0 {
		cp.SetPC(uint16(*startPC))
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	window := max(*traceWindow, 1)
	ring := make([]string, window)
	ringIdx, ringFill := 0, 0
	done := func(i int) {
		fmt.Printf("\nDone: steps=%d cycles=%d elapsed=%s\n", i, cp.Cycles, time.Since(start).Truncate(time.Millisecond))
	}

	for i := 0; i < *steps; i++ {
		if *until >= 0 && cp.PC == uint16(*until) {
			official, unofficial := b.Read(0x02), b.Read(0x03)
			fmt.Printf("\nReached %04X: $02=%02X $03=%02X\n", *until, official, unofficial)
			if official == 0 && unofficial == 0 {
				fmt.Printf("PASS\n")
				done(i)
				return
			}
			fmt.Printf("FAIL\n")
			if *traceOnFail && ringFill > 0 {
				fmt.Printf("\n--- recent trace (last %d instructions) ---\n", ringFill)
				first := (ringIdx - ringFill + window) % window
				for j := 0; j < ringFill; j++ {
					fmt.Println(ring[(first+j)%window])
				}
				fmt.Printf("--- end trace ---\n")
			}
			done(i)
			os.Exit(1)
		}
		if *trace || *traceOnFail {
			line := cp.Trace()
			if *trace {
				fmt.Println(line)
			}
			ring[ringIdx] = line
			ringIdx = (ringIdx + 1) % window
			if ringFill < window {
				ringFill++
			}
		}
		cp.Step()
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			done(i + 1)
			os.Exit(2)
		}
	}
	done(*steps)
	if *until >= 0 {
		os.Exit(2)
	}
}
