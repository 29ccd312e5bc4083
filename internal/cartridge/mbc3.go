package cartridge

// MBC3 supports a 7-bit ROM bank and a 2-bit RAM bank (spec.md §4.3).
// Cartridge types that add an RTC (0x0F-0x10) route RTC register
// selects (0x08-0x0C written to the RAM-bank-select window) and the
// clock latch to opaque holding registers: RTC itself is out of scope,
// but real software sometimes probes for the RTC register window, so
// writes there must not corrupt RAM-bank selection.
type MBC3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    byte // 7 bits, 0 remapped to 1
	ramBank    byte // 0-3; 0x08-0x0C selects an (opaque) RTC register instead
	rtcSel     bool
	rtcRegs    [5]byte // opaque RTC register holding area (S, M, H, DL, DH)
	rtcLatch   byte

	romBanks int
}

func NewMBC3(rom []byte, ramSize int) *MBC3 {
	m := &MBC3{rom: rom, romBank: 1}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	m.romBanks = len(rom) / 0x4000
	if m.romBanks == 0 {
		m.romBanks = 1
	}
	return m
}

func (m *MBC3) Read(addr uint16) byte {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		bank := int(m.romBank) % maxInt(m.romBanks, 1)
		off := bank*0x4000 + int(addr-0x4000)
		if off >= 0 && off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.rtcSel {
			return m.rtcRegs[m.ramBank-0x08]
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off >= 0 && off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *MBC3) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		b := value & 0x7F
		if b == 0 {
			b = 1
		}
		m.romBank = b
	case addr < 0x6000:
		if value >= 0x08 && value <= 0x0C {
			m.rtcSel = true
			m.ramBank = value
		} else {
			m.rtcSel = false
			m.ramBank = value & 0x03
		}
	case addr < 0x8000:
		m.rtcLatch = value
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		if m.rtcSel {
			m.rtcRegs[m.ramBank-0x08] = value
			return
		}
		if len(m.ram) == 0 {
			return
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off >= 0 && off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *MBC3) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *MBC3) LoadRAM(data []byte) {
	copy(m.ram, data)
}
