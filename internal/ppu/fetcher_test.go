package ppu

import "testing"

type mockVRAM map[uint16]byte

func (m mockVRAM) Read(addr uint16) byte { return m[addr] }

func TestBGFetcher_DecodesTileRow(t *testing.T) {
	mem := mockVRAM{}
	// Tile 1 at 0x8000 addressing, row 0: lo=0b10110000, hi=0b11000000
	mem[0x8010] = 0b10110000
	mem[0x8011] = 0b11000000

	mem[0x9800] = 0x01

	var q fifo
	f := newBGFetcher(mem, &q)
	f.Configure(true, 0x9800, 0)
	f.Fetch()

	want := []byte{3, 2, 1, 1, 0, 0, 0, 0}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("fifo exhausted early at pixel %d", i)
		}
		if got != w {
			t.Fatalf("pixel %d got %d want %d", i, got, w)
		}
	}
}

func TestBGFetcher_SignedAddressingMode(t *testing.T) {
	mem := mockVRAM{}
	// Tile index -1 (0xFF) in 0x8800 mode maps to 0x9000 + (-1*16) = 0x8FF0
	mem[0x8FF0] = 0xFF
	mem[0x8FF1] = 0x00
	mem[0x9800] = 0xFF

	var q fifo
	f := newBGFetcher(mem, &q)
	f.Configure(false, 0x9800, 0)
	f.Fetch()

	for i := 0; i < 8; i++ {
		got, _ := q.Pop()
		if got != 1 {
			t.Fatalf("pixel %d got %d want 1 (all bits set in lo only)", i, got)
		}
	}
}
