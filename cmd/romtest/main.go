// Command romtest is the headless CLI test runner used against
// blargg/Mooneye-style acceptance ROMs: it runs a ROM for a step
// budget, watches serial output (or, with -auto, watches for "Passed"
// / "Failed N tests" markers) and exits 0/1/2 accordingly. Grounded on
// cmd/cpurunner/main.go.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/antfarm/dmgcore/internal/gameboy"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb)")
	steps := flag.Int("steps", 5_000_000, "max CPU steps to run")
	trace := flag.Bool("trace", false, "print PC/opcode/register state per step")
	until := flag.String("until", "", "stop when serial output contains this substring (case-insensitive); empty to disable")
	auto := flag.Bool("auto", false, "auto-detect 'Passed'/'Failed N tests' in serial output and exit 0/1")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s); 0 disables")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("romtest: -rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("romtest: read rom: %v", err)
	}

	gb, err := gameboy.New(rom)
	if err != nil {
		log.Fatalf("romtest: %v", err)
	}

	var serialBuf bytes.Buffer
	var sink io.Writer = os.Stdout
	if *until != "" || *auto {
		sink = io.MultiWriter(os.Stdout, &serialBuf)
	}
	gb.SetSerialSink(sink)

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	var cycles int
	for i := 0; i < *steps; i++ {
		if *trace {
			c := gb.CPU()
			fmt.Printf("PC=%04X OP=%02X A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X\n",
				c.PC, gb.Bus().Read(c.PC), c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
		}
		cycles += gb.Step()

		if *auto {
			s := strings.ToLower(serialBuf.String())
			if strings.Contains(s, "passed") {
				fmt.Printf("\nDetected PASS. steps=%d cycles~=%d elapsed=%s\n", i+1, cycles, time.Since(start).Truncate(time.Millisecond))
				os.Exit(0)
			}
			if strings.Contains(s, "failed") {
				fmt.Printf("\nDetected FAIL. steps=%d cycles~=%d elapsed=%s\n", i+1, cycles, time.Since(start).Truncate(time.Millisecond))
				os.Exit(1)
			}
		} else if *until != "" {
			if strings.Contains(strings.ToLower(serialBuf.String()), strings.ToLower(*until)) {
				fmt.Printf("\nDetected %q. steps=%d cycles~=%d elapsed=%s\n", *until, i+1, cycles, time.Since(start).Truncate(time.Millisecond))
				return
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			os.Exit(2)
		}
	}
	fmt.Printf("\nDone: steps=%d cycles~=%d elapsed=%s\n", *steps, cycles, time.Since(start).Truncate(time.Millisecond))
}
