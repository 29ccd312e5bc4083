package mmu

// timer models DIV/TIMA/TMA/TAC. TIMA advances on the falling edge of a
// TAC-selected bit of the free-running 16-bit divider (the same
// mechanism real hardware uses), which is what makes DIV-reset and
// TAC-rewrite mid-count glitches (exercised by Mooneye's timer suite)
// fall out for free instead of needing special-cased thresholds. On
// overflow, TIMA is reloaded from TMA and the interrupt raised in the
// same tick that produced the overflow, matching both spec.md §8
// scenario 4 and the reference timer's immediate reload/interrupt.
type timer struct {
	div uint16 // internal 16-bit divider; DIV (0xFF04) reads the high byte
	tma byte
	tac byte

	tima byte

	reqInterrupt func()
}

func newTimer(reqInterrupt func()) *timer {
	return &timer{reqInterrupt: reqInterrupt}
}

func (t *timer) readDIV() byte  { return byte(t.div >> 8) }
func (t *timer) readTIMA() byte { return t.tima }
func (t *timer) readTMA() byte  { return t.tma }
func (t *timer) readTAC() byte  { return 0xF8 | (t.tac & 0x07) }

func (t *timer) writeDIV() {
	old := t.timerInput()
	t.div = 0
	if old && !t.timerInput() {
		t.incrementTIMA()
	}
}

func (t *timer) writeTIMA(v byte) {
	t.tima = v
}

func (t *timer) writeTMA(v byte) { t.tma = v }

func (t *timer) writeTAC(v byte) {
	old := t.timerInput()
	t.tac = v & 0x07
	if old && !t.timerInput() {
		t.incrementTIMA()
	}
}

var timerInputBit = [4]uint{9, 3, 5, 7}

func (t *timer) timerInput() bool {
	if t.tac&0x04 == 0 {
		return false
	}
	bit := timerInputBit[t.tac&0x03]
	return (t.div>>bit)&1 != 0
}

func (t *timer) incrementTIMA() {
	if t.tima == 0xFF {
		t.tima = t.tma
		if t.reqInterrupt != nil {
			t.reqInterrupt()
		}
		return
	}
	t.tima++
}

// tick advances the divider by one T-cycle, the unit mmu.Tick loops in.
func (t *timer) tick() {
	old := t.timerInput()
	t.div++
	falling := old && !t.timerInput()
	if falling {
		t.incrementTIMA()
	}
}
