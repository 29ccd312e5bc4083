package cpu

// regGet/regSet decode the 3-bit register field used throughout the
// primary and CB-prefixed tables: 0-5 are B,C,D,E,H,L, 6 is (HL), 7 is A.
func (c *CPU) regGet(idx byte) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read8(c.getHL())
	default:
		return c.A
	}
}

func (c *CPU) regSet(idx byte, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write8(c.getHL(), v)
	default:
		c.A = v
	}
}

// aluSrc returns the operand register selected by the low 3 bits of an
// ALU-group opcode (0x80-0xBF and the CB table's register field).
func (c *CPU) aluSrc(op byte) byte { return c.regGet(op & 7) }

func (c *CPU) jumpRel(taken bool, off int8) int {
	if taken {
		c.PC = uint16(int32(c.PC) + int32(off))
		return 12
	}
	return 8
}

// execute dispatches a fetched primary opcode. CB-prefixed opcodes are
// handled by executeCB.
func (c *CPU) execute(op byte) int {
	switch op {
	case 0x00: // NOP
		return 4
	case 0x10: // STOP
		c.fetch8() // hardware reads and discards the second STOP byte
		c.stopped = true
		c.write8(0xFF04, 0) // any write resets DIV, per spec.md §4.1
		return 4
	case 0x76: // HALT
		if !c.IME && c.pendingInterrupts() != 0 {
			c.haltBug = true
		} else {
			c.halted = true
		}
		return 4

	// LD r,d8
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x3E:
		c.regSet((op>>3)&7, c.fetch8())
		return 8

	// LD r,r' / LD (HL),r / LD r,(HL)
	case 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47,
		0x48, 0x49, 0x4A, 0x4B, 0x4C, 0x4D, 0x4E, 0x4F,
		0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56, 0x57,
		0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F,
		0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67,
		0x68, 0x69, 0x6A, 0x6B, 0x6C, 0x6D, 0x6E, 0x6F,
		0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x77,
		0x78, 0x79, 0x7A, 0x7B, 0x7C, 0x7D, 0x7E, 0x7F:
		d := (op >> 3) & 7
		s := op & 7
		c.regSet(d, c.regGet(s))
		if d == 6 || s == 6 {
			return 8
		}
		return 4

	// 16-bit loads
	case 0x01:
		c.setBC(c.fetch16())
		return 12
	case 0x11:
		c.setDE(c.fetch16())
		return 12
	case 0x21:
		c.setHL(c.fetch16())
		return 12
	case 0x31:
		c.SP = c.fetch16()
		return 12
	case 0x08: // LD (a16),SP
		addr := c.fetch16()
		c.write16(addr, c.SP)
		return 20

	case 0x36: // LD (HL),d8
		c.write8(c.getHL(), c.fetch8())
		return 12

	case 0x02:
		c.write8(c.getBC(), c.A)
		return 8
	case 0x12:
		c.write8(c.getDE(), c.A)
		return 8
	case 0x0A:
		c.A = c.read8(c.getBC())
		return 8
	case 0x1A:
		c.A = c.read8(c.getDE())
		return 8

	case 0x22: // LD (HL+),A
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl + 1)
		return 8
	case 0x2A: // LD A,(HL+)
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl + 1)
		return 8
	case 0x32: // LD (HL-),A
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl - 1)
		return 8
	case 0x3A: // LD A,(HL-)
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl - 1)
		return 8

	case 0xE0: // LDH (a8),A
		n := uint16(c.fetch8())
		c.write8(0xFF00+n, c.A)
		return 12
	case 0xF0: // LDH A,(a8)
		n := uint16(c.fetch8())
		c.A = c.read8(0xFF00 + n)
		return 12
	case 0xE2: // LD (C),A
		c.write8(0xFF00+uint16(c.C), c.A)
		return 8
	case 0xF2: // LD A,(C)
		c.A = c.read8(0xFF00 + uint16(c.C))
		return 8
	case 0xEA: // LD (a16),A
		c.write8(c.fetch16(), c.A)
		return 16
	case 0xFA: // LD A,(a16)
		c.A = c.read8(c.fetch16())
		return 16

	case 0x07: // RLCA
		cval := (c.A >> 7) & 1
		c.A = (c.A << 1) | cval
		c.setZNHC(false, false, false, cval == 1)
		return 4
	case 0x0F: // RRCA
		cval := c.A & 1
		c.A = (c.A >> 1) | (cval << 7)
		c.setZNHC(false, false, false, cval == 1)
		return 4
	case 0x17: // RLA
		cval := (c.A >> 7) & 1
		var carry byte
		if c.F&flagC != 0 {
			carry = 1
		}
		c.A = (c.A << 1) | carry
		c.setZNHC(false, false, false, cval == 1)
		return 4
	case 0x1F: // RRA
		cval := c.A & 1
		var carry byte
		if c.F&flagC != 0 {
			carry = 1
		}
		c.A = (c.A >> 1) | (carry << 7)
		c.setZNHC(false, false, false, cval == 1)
		return 4

	case 0x27: // DAA
		a := c.A
		cf := c.F&flagC != 0
		if c.F&flagN == 0 {
			if cf || a > 0x99 {
				a += 0x60
				cf = true
			}
			if c.F&flagH != 0 || (a&0x0F) > 9 {
				a += 0x06
			}
		} else {
			if cf {
				a -= 0x60
			}
			if c.F&flagH != 0 {
				a -= 0x06
			}
		}
		c.A = a
		c.setZNHC(c.A == 0, c.F&flagN != 0, false, cf)
		return 4
	case 0x2F: // CPL
		c.A = ^c.A
		c.F = (c.F & (flagZ | flagC)) | flagN | flagH
		return 4
	case 0x37: // SCF
		c.F = (c.F & flagZ) | flagC
		return 4
	case 0x3F: // CCF
		newC := c.F&flagC == 0
		c.setZNHC(c.F&flagZ != 0, false, false, newC)
		return 4

	// INC r / DEC r
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x3C:
		idx := (op >> 3) & 7
		old := c.regGet(idx)
		v := old + 1
		c.regSet(idx, v)
		c.setZNHC(v == 0, false, old&0x0F == 0x0F, c.F&flagC != 0)
		return 4
	case 0x34: // INC (HL)
		old := c.read8(c.getHL())
		v := old + 1
		c.write8(c.getHL(), v)
		c.setZNHC(v == 0, false, old&0x0F == 0x0F, c.F&flagC != 0)
		return 12
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x3D:
		idx := (op >> 3) & 7
		old := c.regGet(idx)
		v := old - 1
		c.regSet(idx, v)
		c.setZNHC(v == 0, true, old&0x0F == 0x00, c.F&flagC != 0)
		return 4
	case 0x35: // DEC (HL)
		old := c.read8(c.getHL())
		v := old - 1
		c.write8(c.getHL(), v)
		c.setZNHC(v == 0, true, old&0x0F == 0x00, c.F&flagC != 0)
		return 12

	// ALU reg/immediate/(HL)
	case 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87:
		r, z, n, h, cy := c.add8(c.A, c.aluSrc(op))
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8D, 0x8E, 0x8F:
		r, z, n, h, cy := c.adc8(c.A, c.aluSrc(op), c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97:
		r, z, n, h, cy := c.sub8(c.A, c.aluSrc(op))
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0x98, 0x99, 0x9A, 0x9B, 0x9C, 0x9D, 0x9E, 0x9F:
		r, z, n, h, cy := c.sbc8(c.A, c.aluSrc(op), c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7:
		r, z, n, h, cy := c.and8(c.A, c.aluSrc(op))
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0xA8, 0xA9, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF:
		r, z, n, h, cy := c.xor8(c.A, c.aluSrc(op))
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6, 0xB7:
		r, z, n, h, cy := c.or8(c.A, c.aluSrc(op))
		c.A = r
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)
	case 0xB8, 0xB9, 0xBA, 0xBB, 0xBC, 0xBD, 0xBE, 0xBF:
		z, n, h, cy := c.cp8(c.A, c.aluSrc(op))
		c.setZNHC(z, n, h, cy)
		return aluCycles(op)

	case 0xC6:
		r, z, n, h, cy := c.add8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xCE:
		r, z, n, h, cy := c.adc8(c.A, c.fetch8(), c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xD6:
		r, z, n, h, cy := c.sub8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xDE:
		r, z, n, h, cy := c.sbc8(c.A, c.fetch8(), c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xE6:
		r, z, n, h, cy := c.and8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xEE:
		r, z, n, h, cy := c.xor8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xF6:
		r, z, n, h, cy := c.or8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 8
	case 0xFE:
		z, n, h, cy := c.cp8(c.A, c.fetch8())
		c.setZNHC(z, n, h, cy)
		return 8

	case 0xC3: // JP a16
		c.PC = c.fetch16()
		return 16
	case 0xE9: // JP (HL)
		c.PC = c.getHL()
		return 4
	case 0x18: // JR r8
		off := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(off))
		return 12
	case 0x20:
		off := int8(c.fetch8())
		return c.jumpRel(c.F&flagZ == 0, off)
	case 0x28:
		off := int8(c.fetch8())
		return c.jumpRel(c.F&flagZ != 0, off)
	case 0x30:
		off := int8(c.fetch8())
		return c.jumpRel(c.F&flagC == 0, off)
	case 0x38:
		off := int8(c.fetch8())
		return c.jumpRel(c.F&flagC != 0, off)

	case 0xCD: // CALL a16
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 24
	case 0xC9: // RET
		c.PC = c.pop16()
		return 16
	case 0xD9: // RETI
		c.PC = c.pop16()
		c.IME = true
		c.eiDelay = 0
		return 16

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST t
		c.push16(c.PC)
		c.PC = uint16(op & 0x38)
		return 16

	case 0xC4:
		addr := c.fetch16()
		if c.F&flagZ == 0 {
			c.push16(c.PC)
			c.PC = addr
			return 24
		}
		return 12
	case 0xCC:
		addr := c.fetch16()
		if c.F&flagZ != 0 {
			c.push16(c.PC)
			c.PC = addr
			return 24
		}
		return 12
	case 0xD4:
		addr := c.fetch16()
		if c.F&flagC == 0 {
			c.push16(c.PC)
			c.PC = addr
			return 24
		}
		return 12
	case 0xDC:
		addr := c.fetch16()
		if c.F&flagC != 0 {
			c.push16(c.PC)
			c.PC = addr
			return 24
		}
		return 12

	case 0xC0:
		if c.F&flagZ == 0 {
			c.PC = c.pop16()
			return 20
		}
		return 8
	case 0xC8:
		if c.F&flagZ != 0 {
			c.PC = c.pop16()
			return 20
		}
		return 8
	case 0xD0:
		if c.F&flagC == 0 {
			c.PC = c.pop16()
			return 20
		}
		return 8
	case 0xD8:
		if c.F&flagC != 0 {
			c.PC = c.pop16()
			return 20
		}
		return 8

	case 0xC2:
		addr := c.fetch16()
		if c.F&flagZ == 0 {
			c.PC = addr
			return 16
		}
		return 12
	case 0xCA:
		addr := c.fetch16()
		if c.F&flagZ != 0 {
			c.PC = addr
			return 16
		}
		return 12
	case 0xD2:
		addr := c.fetch16()
		if c.F&flagC == 0 {
			c.PC = addr
			return 16
		}
		return 12
	case 0xDA:
		addr := c.fetch16()
		if c.F&flagC != 0 {
			c.PC = addr
			return 16
		}
		return 12

	case 0x03:
		c.setBC(c.getBC() + 1)
		return 8
	case 0x13:
		c.setDE(c.getDE() + 1)
		return 8
	case 0x23:
		c.setHL(c.getHL() + 1)
		return 8
	case 0x33:
		c.SP++
		return 8
	case 0x0B:
		c.setBC(c.getBC() - 1)
		return 8
	case 0x1B:
		c.setDE(c.getDE() - 1)
		return 8
	case 0x2B:
		c.setHL(c.getHL() - 1)
		return 8
	case 0x3B:
		c.SP--
		return 8

	case 0x09, 0x19, 0x29, 0x39: // ADD HL,rr
		hl := c.getHL()
		var rhs uint16
		switch op {
		case 0x09:
			rhs = c.getBC()
		case 0x19:
			rhs = c.getDE()
		case 0x29:
			rhs = hl
		case 0x39:
			rhs = c.SP
		}
		r := uint32(hl) + uint32(rhs)
		h := (hl&0x0FFF)+(rhs&0x0FFF) > 0x0FFF
		c.setHL(uint16(r))
		c.setZNHC(c.F&flagZ != 0, false, h, r > 0xFFFF)
		return 8

	case 0xF8: // LD HL,SP+r8
		off := int8(c.fetch8())
		res := uint16(int32(int16(c.SP)) + int32(off))
		low := byte(c.SP & 0xFF)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.setHL(res)
		c.setZNHC(false, false, h, cy)
		return 12
	case 0xF9: // LD SP,HL
		c.SP = c.getHL()
		return 8
	case 0xE8: // ADD SP,r8
		off := int8(c.fetch8())
		low := byte(c.SP & 0xFF)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.SP = uint16(int32(int16(c.SP)) + int32(off))
		c.setZNHC(false, false, h, cy)
		return 16

	case 0xF3: // DI
		c.IME = false
		c.eiDelay = 0
		return 4
	case 0xFB: // EI
		c.eiDelay = 2
		return 4

	case 0xCB:
		return c.executeCB(c.fetch8())

	case 0xF5:
		c.push16(c.getAF())
		return 16
	case 0xC5:
		c.push16(c.getBC())
		return 16
	case 0xD5:
		c.push16(c.getDE())
		return 16
	case 0xE5:
		c.push16(c.getHL())
		return 16
	case 0xF1:
		c.setAF(c.pop16())
		return 12
	case 0xC1:
		c.setBC(c.pop16())
		return 12
	case 0xD1:
		c.setDE(c.pop16())
		return 12
	case 0xE1:
		c.setHL(c.pop16())
		return 12

	default:
		// 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD
		// are unmapped on real hardware; no ROM should emit them.
		return 4
	}
}

func aluCycles(op byte) int {
	if op&7 == 6 {
		return 8
	}
	return 4
}
