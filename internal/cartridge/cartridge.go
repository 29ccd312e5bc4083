// Package cartridge owns raw ROM bytes and the bank-switched address
// translation that the memory bank controllers (MBC0/1/2/3/5) perform
// over 0x0000-0x7FFF and 0xA000-0xBFFF.
package cartridge

import "fmt"

// Cartridge is the minimal interface the MMU needs for ROM/RAM banking.
// Addresses are CPU addresses; implementations only ever see
// 0x0000-0x7FFF (ROM + bank control) and 0xA000-0xBFFF (external RAM).
type Cartridge interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// BatteryBacked is an optional interface for cartridges with
// battery-backed external RAM. Persistence is handled entirely outside
// the core (see cmd/gbemu); the core never calls SaveRAM/LoadRAM itself.
type BatteryBacked interface {
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// UnsupportedCartTypeError reports a cartridge type byte this core
// cannot translate addresses for. Per spec.md §4.3, this is fatal at
// load time.
type UnsupportedCartTypeError struct {
	CartType byte
}

func (e *UnsupportedCartTypeError) Error() string {
	return fmt.Sprintf("cartridge: unsupported cartridge type %#02x", e.CartType)
}

// New picks an MBC implementation from the ROM header's cartridge-type
// byte. It is the sole place that maps header bytes to banking strategy.
func New(rom []byte) (Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	switch h.CartType {
	case 0x00:
		return NewROMOnly(rom), nil
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, h.RAMSizeBytes), nil
	case 0x05, 0x06:
		return NewMBC2(rom), nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return NewMBC3(rom, h.RAMSizeBytes), nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5(rom, h.RAMSizeBytes), nil
	default:
		return nil, &UnsupportedCartTypeError{CartType: h.CartType}
	}
}
