package main

import (
	"image/color"

	"github.com/antfarm/dmgcore/internal/gameboy"
	"github.com/hajimehoshi/ebiten/v2"
)

// dmgPalette maps the PPU's 2-bit shade indices to the classic
// four-shade DMG green-gray palette, the same mapping
// internal/ui/ebitenapp.go's teacher-repo ancestor uses for its default
// (non-GBC-compat) rendering path.
var dmgPalette = [4]color.RGBA{
	{0xE0, 0xF8, 0xD0, 0xFF},
	{0x88, 0xC0, 0x70, 0xFF},
	{0x34, 0x68, 0x56, 0xFF},
	{0x08, 0x18, 0x20, 0xFF},
}

// ebitenApp is the windowed front end: it implements ebiten.Game by
// driving one GameBoy RunFrame per host frame, translating ebiten's
// keyboard state into gameboy.Buttons, and blitting the PPU's
// framebuffer (via a PixelSink) into an ebiten.Image every VBlank.
type ebitenApp struct {
	gb    *gameboy.GameBoy
	tex   *ebiten.Image
	pix   []byte // RGBA scratch buffer, 160*144*4
	title string
}

func newEbitenApp(gb *gameboy.GameBoy, title string) *ebitenApp {
	a := &ebitenApp{gb: gb, pix: make([]byte, 160*144*4), title: title}
	gb.SetPixelSink(a)
	return a
}

// Frame implements gameboy.PixelSink: it runs once per VBlank entry,
// converting 2-bit shade indices to the display palette.
func (a *ebitenApp) Frame(pixels *[144][160]byte) {
	for y := 0; y < 144; y++ {
		for x := 0; x < 160; x++ {
			c := dmgPalette[pixels[y][x]&0x03]
			i := (y*160 + x) * 4
			a.pix[i+0] = c.R
			a.pix[i+1] = c.G
			a.pix[i+2] = c.B
			a.pix[i+3] = c.A
		}
	}
}

var keyToButton = map[ebiten.Key]func(*gameboy.Buttons, bool){
	ebiten.KeyRight:      func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonRight] = v },
	ebiten.KeyLeft:       func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonLeft] = v },
	ebiten.KeyUp:         func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonUp] = v },
	ebiten.KeyDown:       func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonDown] = v },
	ebiten.KeyZ:          func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonA] = v },
	ebiten.KeyX:          func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonB] = v },
	ebiten.KeyEnter:      func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonStart] = v },
	ebiten.KeyShiftRight: func(b *gameboy.Buttons, v bool) { (*b)[gameboy.ButtonSelect] = v },
}

func (a *ebitenApp) Update() error {
	pressed := gameboy.Buttons{}
	for key, set := range keyToButton {
		set(&pressed, ebiten.IsKeyPressed(key))
	}
	a.gb.SetButtons(pressed)
	a.gb.RunFrame()
	return nil
}

func (a *ebitenApp) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(160, 144)
	}
	a.tex.WritePixels(a.pix)
	screen.DrawImage(a.tex, nil)
}

func (a *ebitenApp) Layout(outsideWidth, outsideHeight int) (int, int) { return 160, 144 }

func (a *ebitenApp) Run(scale int) error {
	ebiten.SetWindowTitle(a.title)
	ebiten.SetWindowSize(160*scale, 144*scale)
	return ebiten.RunGame(a)
}
