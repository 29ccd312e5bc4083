package mmu

// oamDMA is the SPEC_FULL-supplemented per-byte OAM DMA model: a write
// to 0xFF46 arms a 160-cycle transfer that copies one byte per CPU
// T-cycle from (value<<8)+index into OAM, rather than a single lump
// 640-cycle charge. Both are spec-legal (spec.md §9); this is the
// grounded, already-tested behavior carried over from the teacher.
type oamDMA struct {
	active bool
	src    uint16
	index  int
	reg    byte
}

func (d *oamDMA) start(value byte) {
	d.reg = value
	d.active = true
	d.src = uint16(value) << 8
	d.index = 0
}

// step transfers one byte, using read to fetch the source byte (so it
// goes through the owning Bus's normal address decode) and write to
// place it directly into OAM, bypassing the CPU-access mode gating that
// would otherwise block writes during OAM search/pixel-transfer.
func (d *oamDMA) step(read func(uint16) byte, write func(int, byte)) {
	if !d.active {
		return
	}
	v := read(d.src + uint16(d.index))
	write(d.index, v)
	d.index++
	if d.index >= 0xA0 {
		d.active = false
	}
}
