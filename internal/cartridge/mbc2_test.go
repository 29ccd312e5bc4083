package cartridge

import "testing"

func TestMBC2_ROMBankSelectionAndZeroRemap(t *testing.T) {
	const banks = 16
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	m := NewMBC2(rom)

	m.Write(0x2100, 0x05) // bit 8 set -> ROM bank select
	if got := m.Read(0x4000); got != 5 {
		t.Fatalf("Read(0x4000) got bank byte %d want 5", got)
	}

	m.Write(0x2100, 0x00) // 0 remaps to 1
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("bank 0 should remap to 1, got bank byte %d", got)
	}
}

func TestMBC2_RAMEnableUsesAddressBit8Clear(t *testing.T) {
	rom := make([]byte, 0x4000)
	m := NewMBC2(rom)

	m.Write(0x0000, 0x0A) // bit 8 clear -> RAM enable
	m.Write(0xA000, 0x07)
	if got := m.Read(0xA000); got != 0xF7 {
		t.Fatalf("RAM readback got %#02x want 0xF7 (upper nibble forced to 1)", got)
	}
}

func TestMBC2_RAMDisabledReadsFF(t *testing.T) {
	rom := make([]byte, 0x4000)
	m := NewMBC2(rom)
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("RAM disabled read got %#02x want 0xFF", got)
	}
}

func TestMBC2_RAMMirroredAcrossWindow(t *testing.T) {
	rom := make([]byte, 0x4000)
	m := NewMBC2(rom)
	m.Write(0x0000, 0x0A)
	m.Write(0xA000, 0x0C)
	if got := m.Read(0xA200); got != 0xFC {
		t.Fatalf("mirrored RAM readback got %#02x want 0xFC", got)
	}
}

func TestMBC2_SaveLoadRAM(t *testing.T) {
	rom := make([]byte, 0x4000)
	m := NewMBC2(rom)
	m.Write(0x0000, 0x0A)
	m.Write(0xA001, 0x09)

	saved := m.SaveRAM()
	m2 := NewMBC2(rom)
	m2.LoadRAM(saved)
	m2.Write(0x0000, 0x0A)
	if got := m2.Read(0xA001); got != 0xF9 {
		t.Fatalf("restored RAM got %#02x want 0xF9", got)
	}
}
