// Package ppu implements the DMG pixel processing unit: VRAM/OAM
// storage, the LCDC/STAT/LY/LYC/scroll/palette register file, the
// OAM-search/pixel-transfer/HBlank/VBlank mode state machine, and the
// background/window/sprite compositing that produces each scanline.
package ppu

// InterruptRequester raises an IF bit (0: VBlank, 1: STAT) on the owning bus.
type InterruptRequester func(bit int)

// PixelSink receives a completed frame's worth of shade indices (0-3,
// already run through BGP/OBPx) once VBlank begins. Implementations are
// expected to be fast and non-blocking; Tick calls them synchronously.
type PixelSink interface {
	Frame(pixels *[144][160]byte)
}

const (
	ModeHBlank = 0
	ModeVBlank = 1
	ModeOAM    = 2
	ModeTransfer = 3
)

// lineRegs snapshots the registers that affect rendering as of the
// moment a scanline enters pixel-transfer, since SCX/SCY/WX/WY/LCDC can
// change mid-frame and real hardware renders with whatever was latched.
type lineRegs struct {
	scx, scy, wy, wx byte
	lcdc             byte
	bgp, obp0, obp1  byte
	winLine          byte
	winActive        bool
}

type PPU struct {
	vram [0x2000]byte // 0x8000-0x9FFF
	oam  [0xA0]byte   // 0xFE00-0xFE9F

	lcdc byte
	stat byte
	scy  byte
	scx  byte
	ly   byte
	lyc  byte
	bgp  byte
	obp0 byte
	obp1 byte
	wy   byte
	wx   byte

	dot int

	windowLine    byte
	windowWasSeen bool // whether the window layer has been drawn at all this frame

	lines [144]lineRegs
	fb    [144][160]byte

	sink PixelSink
	req  InterruptRequester
}

func New(req InterruptRequester) *PPU { return &PPU{req: req} }

// SetSink installs the frame consumer; nil disables frame delivery.
func (p *PPU) SetSink(sink PixelSink) { p.sink = sink }

// Read implements VRAMReader for the BG/window fetcher: PPU-internal
// reads are never blocked by the mode the way CPU accesses are.
func (p *PPU) Read(addr uint16) byte {
	if addr >= 0x8000 && addr <= 0x9FFF {
		return p.vram[addr-0x8000]
	}
	return 0xFF
}

func (p *PPU) CPURead(addr uint16) byte {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.stat&0x03 == ModeTransfer {
			return 0xFF
		}
		return p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		m := p.stat & 0x03
		if m == ModeOAM || m == ModeTransfer {
			return 0xFF
		}
		return p.oam[addr-0xFE00]
	case addr == 0xFF40:
		return p.lcdc
	case addr == 0xFF41:
		return 0x80 | (p.stat & 0x7F)
	case addr == 0xFF42:
		return p.scy
	case addr == 0xFF43:
		return p.scx
	case addr == 0xFF44:
		return p.ly
	case addr == 0xFF45:
		return p.lyc
	case addr == 0xFF47:
		return p.bgp
	case addr == 0xFF48:
		return p.obp0
	case addr == 0xFF49:
		return p.obp1
	case addr == 0xFF4A:
		return p.wy
	case addr == 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

func (p *PPU) CPUWrite(addr uint16, value byte) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.stat&0x03 == ModeTransfer {
			return
		}
		p.vram[addr-0x8000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		m := p.stat & 0x03
		if m == ModeOAM || m == ModeTransfer {
			return
		}
		p.oam[addr-0xFE00] = value
	case addr == 0xFF40:
		prev := p.lcdc
		p.lcdc = value
		if p.lcdc&0x80 == 0 && prev&0x80 != 0 {
			p.ly = 0
			p.dot = 0
			p.windowLine = 0
			p.stat = p.stat &^ 0x03 // forced Mode 0; disabling the LCD never raises a STAT interrupt
			p.updateLYC()
		} else if p.lcdc&0x80 != 0 && prev&0x80 == 0 {
			p.ly = 0
			p.dot = 0
			p.windowLine = 0
			p.setMode(ModeOAM)
			p.updateLYC()
		}
	case addr == 0xFF41:
		p.stat = (p.stat & 0x07) | (value & 0x78)
	case addr == 0xFF42:
		p.scy = value
	case addr == 0xFF43:
		p.scx = value
	case addr == 0xFF44:
		p.ly = 0
		p.dot = 0
		p.updateLYC()
		if p.lcdc&0x80 != 0 {
			p.setMode(ModeOAM)
		}
	case addr == 0xFF45:
		p.lyc = value
		p.updateLYC()
	case addr == 0xFF47:
		p.bgp = value
	case addr == 0xFF48:
		p.obp0 = value
	case addr == 0xFF49:
		p.obp1 = value
	case addr == 0xFF4A:
		p.wy = value
	case addr == 0xFF4B:
		p.wx = value
	}
}

// WriteOAMByte is used by the DMA unit, which must bypass the CPU-access
// blocking in CPUWrite (OAM DMA itself owns the bus during the transfer).
func (p *PPU) WriteOAMByte(index int, value byte) { p.oam[index] = value }

// Tick advances PPU state by cycles dots (1 dot per CPU T-cycle on DMG).
func (p *PPU) Tick(cycles int) {
	if cycles <= 0 {
		return
	}
	for i := 0; i < cycles; i++ {
		if p.lcdc&0x80 == 0 {
			continue
		}
		p.dot++

		var mode byte
		if p.ly >= 144 {
			mode = ModeVBlank
		} else {
			switch {
			case p.dot < 80:
				mode = ModeOAM
			case p.dot < 80+172:
				mode = ModeTransfer
			default:
				mode = ModeHBlank
			}
		}
		p.transitionTo(mode)

		if p.dot >= 456 {
			p.dot = 0
			p.ly++
			if p.ly == 144 {
				if p.req != nil {
					p.req(0)
				}
				if p.stat&(1<<4) != 0 && p.req != nil {
					p.req(1)
				}
				p.deliverFrame()
				p.windowLine = 0
			} else if p.ly > 153 {
				p.ly = 0
				p.windowLine = 0
			}
			p.updateLYC()
			if p.ly >= 144 {
				p.transitionTo(ModeVBlank)
			} else {
				p.transitionTo(ModeOAM)
			}
		}
	}
}

func (p *PPU) transitionTo(mode byte) {
	prev := p.stat & 0x03
	if prev == mode {
		return
	}
	p.setMode(mode)
	switch mode {
	case ModeTransfer:
		p.captureLine()
	case ModeHBlank:
		p.renderLine(p.ly)
	}
}

func (p *PPU) setMode(mode byte) {
	p.stat = (p.stat &^ 0x03) | (mode & 0x03)
	switch mode {
	case ModeHBlank:
		if p.stat&(1<<3) != 0 && p.req != nil {
			p.req(1)
		}
	case ModeOAM:
		if p.stat&(1<<5) != 0 && p.req != nil {
			p.req(1)
		}
	}
}

func (p *PPU) updateLYC() {
	if p.ly == p.lyc {
		p.stat |= 1 << 2
		if p.stat&(1<<6) != 0 && p.req != nil {
			p.req(1)
		}
	} else {
		p.stat &^= 1 << 2
	}
}

// captureLine latches the registers that govern rendering as the
// scanline enters pixel-transfer, and advances the window line counter
// when the window layer is visible on this line.
func (p *PPU) captureLine() {
	if int(p.ly) >= len(p.lines) {
		return
	}
	winActive := p.lcdc&0x20 != 0 && p.ly >= p.wy && p.wx <= 166
	lr := lineRegs{
		scx: p.scx, scy: p.scy, wy: p.wy, wx: p.wx,
		lcdc: p.lcdc, bgp: p.bgp, obp0: p.obp0, obp1: p.obp1,
		winActive: winActive,
	}
	if winActive {
		lr.winLine = p.windowLine
		p.windowLine++
	}
	p.lines[p.ly] = lr
}

func (p *PPU) deliverFrame() {
	if p.sink != nil {
		p.sink.Frame(&p.fb)
	}
}

func (p *PPU) BGP() byte  { return p.bgp }
func (p *PPU) OBP0() byte { return p.obp0 }
func (p *PPU) OBP1() byte { return p.obp1 }
func (p *PPU) LCDC() byte { return p.lcdc }
func (p *PPU) SCY() byte  { return p.scy }
func (p *PPU) SCX() byte  { return p.scx }
func (p *PPU) WY() byte   { return p.wy }
func (p *PPU) WX() byte   { return p.wx }

// LineRegs exposes the registers latched for scanline y, for tests and
// diagnostic tooling.
func (p *PPU) LineRegs(y int) struct {
	WinLine   byte
	WinActive bool
} {
	if y < 0 || y >= len(p.lines) {
		return struct {
			WinLine   byte
			WinActive bool
		}{}
	}
	lr := p.lines[y]
	return struct {
		WinLine   byte
		WinActive bool
	}{WinLine: lr.winLine, WinActive: lr.winActive}
}

// Framebuffer exposes the last-rendered frame (palette-applied shade
// indices 0-3) for headless tooling (see gameboy.GameBoy.Framebuffer).
func (p *PPU) Framebuffer() *[144][160]byte { return &p.fb }
