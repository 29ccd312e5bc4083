package ppu

import "testing"

func TestComposeSpriteLinePriorityAndTransparency(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0x80 // leftmost pixel opaque (color index 1), rest transparent
	mem[base+1] = 0x00
	sprites := []Sprite{{X: 10, Y: 5, Tile: 0, Attr: 0, OAMIndex: 0}}
	var bgci [160]byte

	out := ComposeSpriteLine(mem, sprites, 5, bgci, false)
	if out[10] == 0 {
		t.Fatalf("expected sprite pixel at x=10")
	}

	sprites[0].Attr = 1 << 7 // priority-behind-BG
	bgci[10] = 1
	out = ComposeSpriteLine(mem, sprites, 5, bgci, false)
	if out[10] != 0 {
		t.Fatalf("expected sprite pixel to be hidden behind a non-zero BG pixel")
	}
}

func TestComposeSpriteLine_SmallerXWinsOverlap(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0xFF // full opaque row, color index 1
	mem[base+1] = 0x00

	s0 := Sprite{X: 19, Y: 0, Tile: 0, Attr: 0x10, OAMIndex: 5} // OBP1, marks s0's pixels
	s1 := Sprite{X: 20, Y: 0, Tile: 0, Attr: 0, OAMIndex: 3}
	var bgci [160]byte

	out := ComposeSpriteLine(mem, []Sprite{s0, s1}, 0, bgci, false)
	if out[20] == 0 {
		t.Fatalf("expected a sprite pixel at the overlap column x=20")
	}
	if out[20]&0x04 == 0 {
		t.Fatalf("x=20 should come from the smaller-X sprite despite its larger OAM index, got %#02x", out[20])
	}
}

func TestComposeSpriteLine_XFlip(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0x80 // only bit 7 (leftmost, unflipped) set
	mem[base+1] = 0x00

	sprites := []Sprite{{X: 0, Y: 0, Tile: 0, Attr: 0x20, OAMIndex: 0}} // X-flip
	var bgci [160]byte
	out := ComposeSpriteLine(mem, sprites, 0, bgci, false)
	if out[7] == 0 {
		t.Fatalf("X-flip should move the opaque pixel to the rightmost column")
	}
	if out[0] != 0 {
		t.Fatalf("X-flip should leave column 0 transparent, got %d", out[0])
	}
}

func TestScanOAMForLine_RespectsHeightAndCap(t *testing.T) {
	p := New(nil)
	for i := 0; i < 15; i++ {
		base := i * 4
		p.oam[base+0] = 20 // Y -> screen row 4
		p.oam[base+1] = 8 + byte(i)
		p.oam[base+2] = byte(i)
		p.oam[base+3] = 0
	}
	sprites := p.scanOAMForLine(4, false)
	if len(sprites) != maxSpritesPerLine {
		t.Fatalf("expected the 10-sprite-per-line cap, got %d", len(sprites))
	}
	// Row 12 is past an 8-pixel sprite starting at row 4 but inside a 16-pixel one.
	if got := len(p.scanOAMForLine(12, false)); got != 0 {
		t.Fatalf("8x8 sprites should not cover row 12, got %d", got)
	}
	if got := len(p.scanOAMForLine(12, true)); got != maxSpritesPerLine {
		t.Fatalf("8x16 sprites should cover row 12 (capped at 10), got %d", got)
	}
}
