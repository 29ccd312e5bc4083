package cartridge

// ROMOnly is a plain ROM pass-through: no banking, no external RAM.
type ROMOnly struct {
	rom []byte
}

func NewROMOnly(rom []byte) *ROMOnly {
	return &ROMOnly{rom: rom}
}

func (c *ROMOnly) Read(addr uint16) byte {
	if addr < 0x8000 && int(addr) < len(c.rom) {
		return c.rom[addr]
	}
	return 0xFF
}

// Write is a no-op: ROM-only carts have no control registers and no
// external RAM to write through.
func (c *ROMOnly) Write(addr uint16, value byte) {}
