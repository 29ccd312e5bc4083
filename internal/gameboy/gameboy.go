// Package gameboy is the orchestrator of spec.md §2/§5: it owns the
// CPU exclusively, the CPU owns the MMU exclusively, and the MMU owns
// every device. Host front ends (cmd/gbemu) talk only to this package.
package gameboy

import (
	"fmt"
	"io"

	"github.com/antfarm/dmgcore/internal/cartridge"
	"github.com/antfarm/dmgcore/internal/cpu"
	"github.com/antfarm/dmgcore/internal/mmu"
	"github.com/antfarm/dmgcore/internal/ppu"
)

// Buttons is re-exported so callers never need to import internal/mmu
// directly; it is the host-input shape spec.md §6 describes.
type Buttons = mmu.Buttons

const (
	ButtonRight  = mmu.ButtonRight
	ButtonLeft   = mmu.ButtonLeft
	ButtonUp     = mmu.ButtonUp
	ButtonDown   = mmu.ButtonDown
	ButtonA      = mmu.ButtonA
	ButtonB      = mmu.ButtonB
	ButtonSelect = mmu.ButtonSelect
	ButtonStart  = mmu.ButtonStart
)

// PixelSink is the host-display interface spec.md §6 describes: one
// 160x144 frame of 2-bit shade indices per VBlank entry.
type PixelSink = ppu.PixelSink

// GameBoy is the top-level aggregate: cartridge + MMU + CPU, reset to
// the documented post-boot register state unless a boot ROM is
// supplied.
type GameBoy struct {
	cpu *cpu.CPU
	bus *mmu.Bus
}

// New parses rom's header, selects an MBC, and wires a GameBoy ready to
// run from the DMG post-boot register state. Per spec.md §6/§7,
// cartridge errors (unsupported type, undersized file) are the only
// recoverable construction failure; callers at the cmd/ boundary turn
// them into a nonzero exit code.
func New(rom []byte) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	bus := mmu.New(cart)
	c := cpu.New(bus)
	c.ResetNoBoot()
	return &GameBoy{cpu: c, bus: bus}, nil
}

// NewWithBootROM behaves like New but starts execution at 0x0000 with
// registers zeroed and boot overlaid at 0x0000-0x00FF, letting the boot
// image itself establish the post-boot state via 0xFF50.
func NewWithBootROM(rom, boot []byte) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	bus := mmu.New(cart)
	bus.SetBootROM(boot)
	c := cpu.New(bus)
	c.SetPC(0x0000)
	return &GameBoy{cpu: c, bus: bus}, nil
}

// SetPixelSink installs the host display; nil disables frame delivery.
func (g *GameBoy) SetPixelSink(sink PixelSink) { g.bus.PPU().SetSink(sink) }

// SetButtons installs the currently-pressed button set, typically once
// per host input poll.
func (g *GameBoy) SetButtons(pressed Buttons) { g.bus.SetButtons(pressed) }

// SetSerialSink routes bytes written through the serial port's
// transfer-start bit to w (see internal/mmu's serial stub).
func (g *GameBoy) SetSerialSink(w io.Writer) { g.bus.SetSerialSink(w) }

// Cartridge exposes the loaded cartridge for optional battery-RAM
// persistence; the core itself never calls SaveRAM/LoadRAM.
func (g *GameBoy) Cartridge() cartridge.Cartridge { return g.bus.Cartridge() }

// Framebuffer exposes the PPU's last-rendered frame directly, for
// headless tooling that doesn't want to implement PixelSink.
func (g *GameBoy) Framebuffer() *[144][160]byte { return g.bus.PPU().Framebuffer() }

// CPU exposes the register file for diagnostic front ends (trace
// printers, debuggers); the core itself never needs this.
func (g *GameBoy) CPU() *cpu.CPU { return g.cpu }

// Bus exposes the raw address space for diagnostic tooling and direct
// register pokes (this package's tests use it to set up I/O registers).
func (g *GameBoy) Bus() *mmu.Bus { return g.bus }

// Step runs exactly one CPU step (interrupt dispatch, HALT/STOP tick,
// or one opcode) and returns the T-cycles it consumed. The CPU itself
// fans those cycles out to the MMU (see cpu.Bus.Tick) before Step
// returns, so callers never need to do so themselves.
func (g *GameBoy) Step() int { return g.cpu.Step() }

// RunFrame steps the machine until at least one frame's worth of dots
// (70224, per spec.md §8 scenario 6) has elapsed, returning the total
// T-cycles consumed. It is the loop cmd/gbemu's front ends drive once
// per host frame.
func (g *GameBoy) RunFrame() int {
	const dotsPerFrame = 70224
	total := 0
	for total < dotsPerFrame {
		total += g.Step()
	}
	return total
}
