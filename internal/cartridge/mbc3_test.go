package cartridge

import "testing"

func TestMBC3_ROMBankSelection(t *testing.T) {
	const banks = 32
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	m := NewMBC3(rom, 0)

	m.Write(0x2000, 0x10)
	if got := m.Read(0x4000); got != 0x10 {
		t.Fatalf("Read(0x4000) got bank byte %d want 16", got)
	}
}

func TestMBC3_ROMBankZeroRemap(t *testing.T) {
	const banks = 4
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	m := NewMBC3(rom, 0)
	m.Write(0x2000, 0x00)
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("bank 0 should remap to 1, got bank byte %d", got)
	}
}

func TestMBC3_RAMBankSelectAndReadWrite(t *testing.T) {
	rom := make([]byte, 0x4000)
	ram := make([]byte, 4*0x2000)
	m := NewMBC3(rom, len(ram))

	m.Write(0x0000, 0x0A) // RAM enable
	m.Write(0x4000, 0x02) // RAM bank 2
	m.Write(0xA000, 0x77)
	if got := m.Read(0xA000); got != 0x77 {
		t.Fatalf("RAM bank 2 readback got %#02x want 0x77", got)
	}

	m.Write(0x4000, 0x00)
	if got := m.Read(0xA000); got == 0x77 {
		t.Fatalf("RAM bank 0 should not see bank 2's data")
	}
}

func TestMBC3_RTCRegisterSelectDoesNotCorruptRAMBank(t *testing.T) {
	rom := make([]byte, 0x4000)
	ram := make([]byte, 0x2000)
	m := NewMBC3(rom, len(ram))

	m.Write(0x0000, 0x0A)
	m.Write(0x4000, 0x08) // select RTC seconds register
	m.Write(0xA000, 0x3B)
	if got := m.Read(0xA000); got != 0x3B {
		t.Fatalf("RTC register readback got %#02x want 0x3B", got)
	}

	m.Write(0x4000, 0x00) // back to RAM bank 0
	if got := m.Read(0xA000); got == 0x3B {
		t.Fatalf("RAM bank 0 should be independent of the RTC register value")
	}
}

func TestMBC3_LatchWriteIsOpaque(t *testing.T) {
	rom := make([]byte, 0x4000)
	m := NewMBC3(rom, 0)
	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01)
}

func TestMBC3_SaveLoadRAM(t *testing.T) {
	rom := make([]byte, 0x4000)
	ram := make([]byte, 0x2000)
	m := NewMBC3(rom, len(ram))
	m.Write(0x0000, 0x0A)
	m.Write(0xA005, 0x22)

	saved := m.SaveRAM()
	m2 := NewMBC3(rom, len(ram))
	m2.LoadRAM(saved)
	m2.Write(0x0000, 0x0A)
	if got := m2.Read(0xA005); got != 0x22 {
		t.Fatalf("restored RAM got %#02x want 0x22", got)
	}
}
