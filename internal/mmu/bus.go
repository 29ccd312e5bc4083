// Package mmu is the pure dispatcher spec.md §4.2 describes: it owns
// work RAM, high RAM, and the IE register directly, and routes every
// other address to the cartridge (via MBC), the PPU, the timer,
// joypad, serial, and APU. After each CPU step it fans the step's cycles
// out to the timer, the PPU and the OAM DMA unit.
package mmu

import (
	"io"

	"github.com/antfarm/dmgcore/internal/apu"
	"github.com/antfarm/dmgcore/internal/cartridge"
	"github.com/antfarm/dmgcore/internal/ppu"
)

// Bus wires the 16-bit CPU address space to every collaborator. It
// satisfies cpu.Bus, so a *Bus can be passed directly to cpu.New.
type Bus struct {
	cart cartridge.Cartridge
	ppu  *ppu.PPU
	apu  *apu.APU

	wram [0x2000]byte // 0xC000-0xDFFF, echoed at 0xE000-0xFDFF
	hram [0x7F]byte   // 0xFF80-0xFFFE

	ie    byte // 0xFFFF
	ifReg byte // 0xFF0F, lower 5 bits

	timer  *timer
	joypad *joypad
	serial *serial
	dma    oamDMA

	bootROM     []byte
	bootEnabled bool
}

// New wires a Bus around an already-constructed cartridge.
func New(cart cartridge.Cartridge) *Bus {
	b := &Bus{cart: cart}
	b.ppu = ppu.New(func(bit int) { b.ifReg |= 1 << uint(bit) })
	b.apu = apu.New()
	b.timer = newTimer(func() { b.ifReg |= 1 << 2 })
	b.joypad = newJoypad(func() { b.ifReg |= 1 << 4 })
	b.serial = newSerial(func() { b.ifReg |= 1 << 3 })
	return b
}

func (b *Bus) PPU() *ppu.PPU           { return b.ppu }
func (b *Bus) APU() *apu.APU           { return b.apu }
func (b *Bus) Cartridge() cartridge.Cartridge { return b.cart }

// SetButtons installs the currently-pressed button set; call once per
// host input poll (typically once per frame).
func (b *Bus) SetButtons(pressed Buttons) { b.joypad.SetButtons(pressed) }

// SetSerialSink routes bytes written through SC's transfer-start bit to
// w; used by cmd/romtest to watch for blargg/Mooneye pass/fail text.
func (b *Bus) SetSerialSink(w io.Writer) { b.serial.SetSink(w) }

// SetBootROM overlays the first 256 bytes of address space with data
// until a non-zero write to 0xFF50 disables the overlay.
func (b *Bus) SetBootROM(data []byte) {
	b.bootROM = nil
	b.bootEnabled = false
	if len(data) >= 0x100 {
		b.bootROM = make([]byte, 0x100)
		copy(b.bootROM, data[:0x100])
		b.bootEnabled = true
	}
}

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x8000:
		if b.bootEnabled && addr < 0x0100 {
			return b.bootROM[addr]
		}
		return b.cart.Read(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.ppu.CPURead(addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram[addr-0x2000-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if b.dma.active {
			return 0xFF
		}
		return b.ppu.CPURead(addr)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		return 0xFF
	case addr == 0xFF00:
		return b.joypad.read()
	case addr == 0xFF01:
		return b.serial.readSB()
	case addr == 0xFF02:
		return b.serial.readSC()
	case addr == 0xFF04:
		return b.timer.readDIV()
	case addr == 0xFF05:
		return b.timer.readTIMA()
	case addr == 0xFF06:
		return b.timer.readTMA()
	case addr == 0xFF07:
		return b.timer.readTAC()
	case addr == 0xFF0F:
		return 0xE0 | (b.ifReg & 0x1F)
	case addr == 0xFF10, addr == 0xFF11, addr == 0xFF12, addr == 0xFF13, addr == 0xFF14,
		addr == 0xFF16, addr == 0xFF17, addr == 0xFF18, addr == 0xFF19,
		addr == 0xFF1A, addr == 0xFF1B, addr == 0xFF1C, addr == 0xFF1D, addr == 0xFF1E,
		addr == 0xFF20, addr == 0xFF21, addr == 0xFF22, addr == 0xFF23,
		addr == 0xFF24, addr == 0xFF25, addr == 0xFF26,
		(addr >= 0xFF30 && addr <= 0xFF3F):
		return b.apu.Read(addr)
	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45,
		addr == 0xFF47, addr == 0xFF48, addr == 0xFF49,
		addr == 0xFF4A, addr == 0xFF4B:
		return b.ppu.CPURead(addr)
	case addr == 0xFF46:
		return b.dma.reg
	case addr == 0xFF50:
		return 0xFF
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	case addr == 0xFFFF:
		return b.ie
	default:
		return 0xFF
	}
}

func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, v)
	case addr >= 0x8000 && addr <= 0x9FFF:
		b.ppu.CPUWrite(addr, v)
	case addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, v)
	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = v
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0x2000-0xC000] = v
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if b.dma.active {
			return
		}
		b.ppu.CPUWrite(addr, v)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		// unusable range, writes absorbed
	case addr == 0xFF00:
		b.joypad.write(v)
	case addr == 0xFF01:
		b.serial.writeSB(v)
	case addr == 0xFF02:
		b.serial.writeSC(v)
	case addr == 0xFF04:
		b.timer.writeDIV()
	case addr == 0xFF05:
		b.timer.writeTIMA(v)
	case addr == 0xFF06:
		b.timer.writeTMA(v)
	case addr == 0xFF07:
		b.timer.writeTAC(v)
	case addr == 0xFF0F:
		b.ifReg = v & 0x1F
	case addr == 0xFF10, addr == 0xFF11, addr == 0xFF12, addr == 0xFF13, addr == 0xFF14,
		addr == 0xFF16, addr == 0xFF17, addr == 0xFF18, addr == 0xFF19,
		addr == 0xFF1A, addr == 0xFF1B, addr == 0xFF1C, addr == 0xFF1D, addr == 0xFF1E,
		addr == 0xFF20, addr == 0xFF21, addr == 0xFF22, addr == 0xFF23,
		addr == 0xFF24, addr == 0xFF25, addr == 0xFF26,
		(addr >= 0xFF30 && addr <= 0xFF3F):
		b.apu.Write(addr, v)
	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45,
		addr == 0xFF47, addr == 0xFF48, addr == 0xFF49,
		addr == 0xFF4A, addr == 0xFF4B:
		b.ppu.CPUWrite(addr, v)
	case addr == 0xFF46:
		b.dma.start(v)
	case addr == 0xFF50:
		if v != 0 {
			b.bootEnabled = false
		}
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = v
	case addr == 0xFFFF:
		b.ie = v
	}
}

// Tick fans cycles (T-states/dots) out to every cycle-driven device. It
// is called by the CPU itself (see cpu.Bus) once per Step, after that
// instruction's memory effects have already landed, matching spec.md
// §5's "memory operations precede cycle fan-out" ordering rule.
func (b *Bus) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		b.timer.tick()
		b.ppu.Tick(1)
		b.dma.step(b.Read, func(i int, v byte) { b.ppu.WriteOAMByte(i, v) })
	}
}
