package cpu

import "testing"

// fakeBus is a flat 64 KiB memory used to exercise the CPU in isolation
// from the real memory map; IE/IF live at their normal addresses so
// interrupt tests can poke them directly.
type fakeBus struct {
	mem        [0x10000]byte
	ticked     int
	lastTicked int
}

func (b *fakeBus) Read(addr uint16) byte     { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v byte) { b.mem[addr] = v }
func (b *fakeBus) Tick(cycles int)           { b.ticked += cycles; b.lastTicked = cycles }

func newCPUWithROM(code []byte) (*CPU, *fakeBus) {
	b := &fakeBus{}
	copy(b.mem[:], code)
	return New(b), b
}

func TestCPU_NopAndPC(t *testing.T) {
	c, _ := newCPUWithROM([]byte{0x00})
	if cycles := c.Step(); cycles != 4 {
		t.Fatalf("NOP cycles got %d want 4", cycles)
	}
	if c.PC != 1 {
		t.Fatalf("PC after NOP got %#04x want 0x0001", c.PC)
	}
}

func TestCPU_LD_A_d8_And_XOR_A(t *testing.T) {
	c, _ := newCPUWithROM([]byte{0x3E, 0x12, 0xAF})
	c.Step()
	if c.A != 0x12 {
		t.Fatalf("A after LD got %02x want 12", c.A)
	}
	c.Step()
	if c.A != 0x00 {
		t.Fatalf("A after XOR got %02x want 00", c.A)
	}
	if c.F&flagZ == 0 {
		t.Fatalf("Z flag not set after XOR A")
	}
}

func TestCPU_LD_a16_A_and_LD_A_a16(t *testing.T) {
	prog := []byte{0x3E, 0x77, 0xEA, 0x00, 0xC0, 0x3E, 0x00, 0xFA, 0x00, 0xC0}
	c, b := newCPUWithROM(prog)
	c.Step()
	c.Step()
	if a := b.Read(0xC000); a != 0x77 {
		t.Fatalf("WRAM at C000 got %02x want 77", a)
	}
	c.Step()
	c.Step()
	if c.A != 0x77 {
		t.Fatalf("A after LD A,(C000) got %02x want 77", c.A)
	}
}

func TestCPU_JP_and_JR(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0000] = 0xC3
	rom[0x0001] = 0x10
	rom[0x0002] = 0x00
	rom[0x0010] = 0x18
	rom[0x0011] = 0xFE
	c, _ := newCPUWithROM(rom)
	cycles := c.Step()
	if cycles != 16 || c.PC != 0x0010 {
		t.Fatalf("JP cycles=%d PC=%#04x want cycles=16 PC=0x0010", cycles, c.PC)
	}
	pcBefore := c.PC
	c.Step()
	if c.PC != pcBefore {
		t.Fatalf("JR -2 PC got %#04x want %#04x", c.PC, pcBefore)
	}
}

func TestCPU_JR_CyclesTakenVsNotTaken(t *testing.T) {
	rom := []byte{0x20, 0x02, 0x00, 0x00} // JR NZ,+2
	c, _ := newCPUWithROM(rom)
	c.F = flagZ // Z set -> not taken
	if cycles := c.Step(); cycles != 8 {
		t.Fatalf("JR NZ not-taken cycles got %d want 8", cycles)
	}

	c2, _ := newCPUWithROM(rom)
	c2.F = 0 // Z clear -> taken
	if cycles := c2.Step(); cycles != 12 {
		t.Fatalf("JR NZ taken cycles got %d want 12", cycles)
	}
}

func TestCPU_INC_B_Flags(t *testing.T) {
	c, _ := newCPUWithROM([]byte{0x04, 0x04})
	c.B = 0x0F
	c.F = flagC
	c.Step()
	if c.B != 0x10 {
		t.Fatalf("INC B result got %02x want 10", c.B)
	}
	if c.F&flagH == 0 {
		t.Fatalf("INC B should set H flag")
	}
	if c.F&flagC == 0 {
		t.Fatalf("INC B should preserve C flag")
	}
	c.B = 0xFF
	c.Step()
	if c.B != 0x00 || c.F&flagZ == 0 {
		t.Fatalf("INC B to 0 should set Z flag, B=%02x, F=%02x", c.B, c.F)
	}
}

func TestCPU_DEC_DoesNotTouchCarry(t *testing.T) {
	c, _ := newCPUWithROM([]byte{0x05})
	c.B = 0x01
	c.F = flagC
	c.Step()
	if c.B != 0x00 || c.F&flagZ == 0 || c.F&flagN == 0 {
		t.Fatalf("DEC B to 0 got B=%02x F=%02x", c.B, c.F)
	}
	if c.F&flagC == 0 {
		t.Fatalf("DEC should leave the carry flag untouched")
	}
}

func TestCPU_LD_16bit_and_LDH(t *testing.T) {
	prog := []byte{
		0x21, 0x00, 0xC0,
		0x36, 0x5A,
		0x3E, 0x00,
		0xF0, 0x00,
		0xE0, 0x01,
	}
	c, b := newCPUWithROM(prog)
	b.Write(0xFF00, 0xA7)

	for i := 0; i < 5; i++ {
		c.Step()
	}
	if v := b.Read(0xC000); v != 0x5A {
		t.Fatalf("WRAM C000 got %02x want 5A", v)
	}
	if v := b.Read(0xFF01); v != c.A {
		t.Fatalf("LDH (FF00+1),A expected write to FF01 with A=%02x got %02x", c.A, v)
	}
}

func TestCPU_CALL_RET(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0000] = 0xCD
	rom[0x0001] = 0x05
	rom[0x0002] = 0x00
	rom[0x0005] = 0xC9
	c, _ := newCPUWithROM(rom)
	c.Step()
	if c.PC != 0x0005 {
		t.Fatalf("PC after CALL got %04x want 0005", c.PC)
	}
	retCycles := c.Step()
	if c.PC != 0x0003 || retCycles != 16 {
		t.Fatalf("RET did not return to 0003; PC=%04x cyc=%d", c.PC, retCycles)
	}
}

func TestCPU_PushPopRoundTrip(t *testing.T) {
	rom := []byte{0xC5, 0xC1} // PUSH BC; POP BC
	c, _ := newCPUWithROM(rom)
	c.SP = 0xFFFE
	c.setBC(0x1234)
	c.Step()
	c.setBC(0x0000)
	c.Step()
	if c.getBC() != 0x1234 {
		t.Fatalf("PUSH/POP BC round trip got %#04x want 0x1234", c.getBC())
	}
	if c.SP != 0xFFFE {
		t.Fatalf("SP after PUSH/POP got %#04x want 0xFFFE", c.SP)
	}
}

func TestCPU_AddHL_HalfCarryAndCarry(t *testing.T) {
	c, _ := newCPUWithROM([]byte{0x09}) // ADD HL,BC
	c.setHL(0x0FFF)
	c.setBC(0x0001)
	c.Step()
	if c.getHL() != 0x1000 || c.F&flagH == 0 {
		t.Fatalf("ADD HL,BC half-carry case got HL=%#04x F=%#02x", c.getHL(), c.F)
	}

	c2, _ := newCPUWithROM([]byte{0x09})
	c2.setHL(0xFFFF)
	c2.setBC(0x0001)
	c2.Step()
	if c2.getHL() != 0x0000 || c2.F&flagC == 0 {
		t.Fatalf("ADD HL,BC overflow case got HL=%#04x F=%#02x", c2.getHL(), c2.F)
	}
}

func TestCPU_ResetNoBoot(t *testing.T) {
	c, _ := newCPUWithROM(nil)
	c.ResetNoBoot()
	if c.PC != 0x0100 || c.SP != 0xFFFE || c.A != 0x01 {
		t.Fatalf("ResetNoBoot state got PC=%#04x SP=%#04x A=%#02x", c.PC, c.SP, c.A)
	}
}
