// Command gbemu is the windowed (and optional websocket-streamed) DMG
// front end: it loads a ROM, wires optional battery-RAM persistence,
// and drives internal/gameboy.GameBoy either through an ebiten window
// or a websocket frame broadcaster.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/antfarm/dmgcore/internal/cartridge"
	"github.com/antfarm/dmgcore/internal/gameboy"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb)")
	bootPath := flag.String("bootrom", "", "optional DMG boot ROM to run from 0x0000 until FF50 disables it")
	scale := flag.Int("scale", 3, "window scale (windowed mode only)")
	title := flag.String("title", "gbemu", "window title")
	trace := flag.Bool("trace", false, "echo serial port output to stdout (blargg/Mooneye test ROMs report pass/fail this way)")
	saveRAM := flag.Bool("save", true, "persist battery RAM to ROM.sav on exit, loading it at start if present")
	ws := flag.String("ws", "", "serve frames over websocket at this address (e.g. :8090) instead of opening a window")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("gbemu: -rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("gbemu: read rom: %v", err)
	}

	var gb *gameboy.GameBoy
	if *bootPath != "" {
		boot, err := os.ReadFile(*bootPath)
		if err != nil {
			log.Fatalf("gbemu: read bootrom: %v", err)
		}
		gb, err = gameboy.NewWithBootROM(rom, boot)
		if err != nil {
			log.Fatalf("gbemu: %v", err)
		}
	} else {
		gb, err = gameboy.New(rom)
		if err != nil {
			log.Fatalf("gbemu: %v", err)
		}
	}

	if *trace {
		gb.SetSerialSink(os.Stdout)
	}

	savPath := strings.TrimSuffix(*romPath, ".gb") + ".sav"
	battery, isBattery := gb.Cartridge().(cartridge.BatteryBacked)
	if *saveRAM && isBattery {
		if data, err := os.ReadFile(savPath); err == nil {
			battery.LoadRAM(data)
			log.Printf("gbemu: loaded save RAM: %s (%d bytes)", savPath, len(data))
		}
	}
	if *saveRAM && isBattery {
		defer func() {
			if err := os.WriteFile(savPath, battery.SaveRAM(), 0o644); err != nil {
				log.Printf("gbemu: write save RAM: %v", err)
			} else {
				log.Printf("gbemu: wrote %s", savPath)
			}
		}()
	}

	if *ws != "" {
		front := newWSFrontend(gb)
		if err := front.Serve(*ws); err != nil {
			log.Fatalf("gbemu: %v", err)
		}
		return
	}

	app := newEbitenApp(gb, *title)
	if err := app.Run(*scale); err != nil {
		log.Fatalf("gbemu: %v", err)
	}
}
