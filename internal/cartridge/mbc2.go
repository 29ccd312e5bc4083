package cartridge

// MBC2 has a single 0x0000-0x3FFF control window: bit 8 of the written
// address selects RAM-enable (bit 8 clear) vs. ROM-bank-number (bit 8
// set), per spec.md §4.3. Its companion RAM is 512 nibbles wired to
// 0xA000-0xA1FF and mirrored through 0xBFFF via the low 9 address bits;
// only the low 4 bits of each stored byte are meaningful, read back with
// the upper nibble forced to 1 as on real hardware.
type MBC2 struct {
	rom []byte
	ram [0x200]byte

	ramEnabled bool
	romBank    byte // 4 bits, 0 remapped to 1

	romBanks int
}

func NewMBC2(rom []byte) *MBC2 {
	m := &MBC2{rom: rom, romBank: 1}
	m.romBanks = len(rom) / 0x4000
	if m.romBanks == 0 {
		m.romBanks = 1
	}
	return m
}

func (m *MBC2) Read(addr uint16) byte {
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
		return 0xF0 | (m.ram[addr&0x1FF] & 0x0F)
	default:
		return 0xFF
	}
}

func (m *MBC2) Write(addr uint16, value byte) {
	switch {
	case addr < 0x4000:
		if addr&0x0100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
			return
		}
		b := value & 0x0F
		if b == 0 {
			b = 1
		}
		m.romBank = b
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		m.ram[addr&0x1FF] = value & 0x0F
	}
}

func (m *MBC2) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram[:])
	return out
}

func (m *MBC2) LoadRAM(data []byte) {
	copy(m.ram[:], data)
}
