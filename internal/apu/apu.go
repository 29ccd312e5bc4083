// Package apu stores the DMG audio register bank. No sample synthesis
// is performed: channels 1-4's NRxx registers and wave RAM are held and
// read back faithfully (including the fixed bits real hardware forces),
// which is enough for ROMs that probe or save/restore audio state
// without an actual mixer behind it.
package apu

// register offsets from 0xFF10.
const (
	nr10 = iota
	nr11
	nr12
	nr13
	nr14
	_ // 0xFF15 unused
	nr21
	nr22
	nr23
	nr24
	nr30
	nr31
	nr32
	nr33
	nr34
	_ // 0xFF1F unused
	nr41
	nr42
	nr43
	nr44
	nr50
	nr51
	nr52
)

const numRegs = nr52 + 1

type APU struct {
	regs     [numRegs]byte
	waveRAM  [0x10]byte
	powered  bool
}

func New() *APU {
	a := &APU{}
	a.powered = true
	return a
}

// readMask forces the bits that always read as 1 on real hardware,
// mirroring the register table in the DMG technical reference.
var readMask = [numRegs]byte{
	nr10: 0x80,
	nr11: 0x3F,
	nr12: 0x00,
	nr13: 0xFF,
	nr14: 0xBF,
	nr21: 0x3F,
	nr22: 0x00,
	nr23: 0xFF,
	nr24: 0xBF,
	nr30: 0x7F,
	nr31: 0xFF,
	nr32: 0x9F,
	nr33: 0xFF,
	nr34: 0xBF,
	nr41: 0xFF,
	nr42: 0x00,
	nr43: 0x00,
	nr44: 0xBF,
	nr50: 0x00,
	nr51: 0x00,
	nr52: 0x70,
}

func (a *APU) Read(addr uint16) byte {
	switch {
	case addr >= 0xFF10 && addr <= 0xFF26:
		idx := int(addr - 0xFF10)
		if !a.powered && idx != nr52 {
			return readMask[idx]
		}
		return a.regs[idx] | readMask[idx]
	case addr >= 0xFF30 && addr <= 0xFF3F:
		return a.waveRAM[addr-0xFF30]
	default:
		return 0xFF
	}
}

func (a *APU) Write(addr uint16, value byte) {
	switch {
	case addr == 0xFF26:
		a.powered = value&0x80 != 0
		a.regs[nr52] = value & 0x80
		if !a.powered {
			for i := range a.regs {
				if i != nr52 {
					a.regs[i] = 0
				}
			}
		}
	case addr >= 0xFF10 && addr <= 0xFF25:
		if !a.powered {
			return // register writes are ignored while APU is off, length counters excepted (not modeled)
		}
		a.regs[addr-0xFF10] = value
	case addr >= 0xFF30 && addr <= 0xFF3F:
		a.waveRAM[addr-0xFF30] = value // wave RAM is always accessible regardless of power
	}
}
