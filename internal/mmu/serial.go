package mmu

import "io"

// serial models SB (0xFF01)/SC (0xFF02). Per spec.md §4.7 the real
// serial peer is out of scope: a transfer-start write completes
// immediately (no clock-ticked shift register) and, if a sink is
// attached, emits SB's byte to it — this is how Mooneye/blargg test
// ROMs report pass/fail text without an actual link cable.
type serial struct {
	sb byte
	sc byte

	sink io.Writer

	reqInterrupt func()
}

func newSerial(reqInterrupt func()) *serial {
	return &serial{reqInterrupt: reqInterrupt}
}

func (s *serial) SetSink(w io.Writer) { s.sink = w }

func (s *serial) readSB() byte { return s.sb }
func (s *serial) readSC() byte { return 0x7E | (s.sc & 0x81) }

func (s *serial) writeSB(v byte) { s.sb = v }

func (s *serial) writeSC(v byte) {
	s.sc = v & 0x81
	if s.sc&0x80 == 0 {
		return
	}
	if s.sink != nil {
		_, _ = s.sink.Write([]byte{s.sb})
	}
	if s.reqInterrupt != nil {
		s.reqInterrupt()
	}
	s.sc &^= 0x80
}
