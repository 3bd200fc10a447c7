package cpu

// Z80N is the Spectrum Next extension of the ED table.

const (
	// NextRegSelectPort and NextRegDataPort are the register select and data
	// ports NEXTREG writes through.
	NextRegSelectPort = 0x243B
	NextRegDataPort   = 0x253B
)

func initNextOps() {
	defineED(0x23, func(c *CPU) { // SWAPNIB 8
		a := c.regs.A()
		c.regs.SetA(a<<4 | a>>4)
	})
	defineED(0x24, func(c *CPU) { // MIRROR A 8
		c.regs.SetA(mirror(c.regs.A()))
	})
	defineED(0x27, func(c *CPU) { // TEST n 11
		v := c.regs.A() & c.fetchByte()
		c.regs.SetF(FlagH | Sz53pTable[v])
	})

	// barrel shifts of DE by B, 8
	defineED(0x28, func(c *CPU) { // BSLA DE,B
		c.regs.DE.Set(c.regs.DE.Word() << (c.regs.B() & 0x1F))
	})
	defineED(0x29, func(c *CPU) { // BSRA DE,B
		c.regs.DE.Set(uint16(int16(c.regs.DE.Word()) >> (c.regs.B() & 0x1F)))
	})
	defineED(0x2A, func(c *CPU) { // BSRL DE,B
		c.regs.DE.Set(c.regs.DE.Word() >> (c.regs.B() & 0x1F))
	})
	defineED(0x2B, func(c *CPU) { // BSRF DE,B
		c.regs.DE.Set(^(^c.regs.DE.Word() >> (c.regs.B() & 0x1F)))
	})
	defineED(0x2C, func(c *CPU) { // BRLC DE,B
		de, n := c.regs.DE.Word(), c.regs.B()&0x0F
		c.regs.DE.Set(de<<n | de>>(16-n))
	})

	defineED(0x30, func(c *CPU) { // MUL D,E 8
		c.regs.DE.Set(uint16(c.regs.D()) * uint16(c.regs.E()))
	})

	// ADD rr,A 8 and ADD rr,nn 16 leave the flags alone
	for i, pair := range [3]func(*Registers) *Pair{
		func(r *Registers) *Pair { return &r.HL },
		func(r *Registers) *Pair { return &r.DE },
		func(r *Registers) *Pair { return &r.BC },
	} {
		defineED(0x31+uint8(i), func(c *CPU) {
			*pair(&c.regs) += Pair(c.regs.A())
		})
		defineED(0x34+uint8(i), func(c *CPU) {
			nn := c.fetchWord()
			c.tick(2)
			*pair(&c.regs) += Pair(nn)
		})
	}

	defineED(0x8A, func(c *CPU) { // PUSH nn 23, operand is big-endian
		hi := c.fetchByte()
		lo := c.fetchByte()
		c.tick(3)
		c.push(uint16(hi)<<8 | uint16(lo))
	})

	defineED(0x90, func(c *CPU) { // OUTINB 16
		c.tick(1)
		v := c.read(c.regs.HL.Word())
		c.out(c.regs.BC.Word(), v)
		c.regs.HL++
	})
	defineED(0x91, func(c *CPU) { // NEXTREG n,n 20
		reg := c.fetchByte()
		v := c.fetchByte()
		c.nextReg(reg, v)
	})
	defineED(0x92, func(c *CPU) { // NEXTREG n,A 17
		reg := c.fetchByte()
		c.nextReg(reg, c.regs.A())
	})

	defineED(0x93, func(c *CPU) { // PIXELDN 8
		h, l := c.regs.H(), c.regs.L()
		switch {
		case h&0x07 != 0x07:
			h++
		case l&0xE0 != 0xE0:
			h &= 0xF8
			l += 0x20
		default:
			h = h&0xF8 + 0x08
			l += 0x20
		}
		c.regs.HL = MakePair(h, l)
	})
	defineED(0x94, func(c *CPU) { // PIXELAD 8
		d, e := uint16(c.regs.D()), uint16(c.regs.E())
		c.regs.HL.Set(0x4000 | (d&0xC0)<<5 | (d&0x07)<<8 | (d&0x38)<<2 | e>>3)
	})
	defineED(0x95, func(c *CPU) { // SETAE 8
		c.regs.SetA(0x80 >> (c.regs.E() & 0x07))
	})

	defineED(0x98, func(c *CPU) { // JP (C) 13
		v := c.in(c.regs.BC.Word())
		c.tick(1)
		c.regs.PC = c.regs.PC&0xC000 | Pair(v)<<6
		c.regs.WZ = c.regs.PC
	})

	defineED(0xA4, func(c *CPU) { c.ldix(1) })  // LDIX 16
	defineED(0xAC, func(c *CPU) { c.ldix(-1) }) // LDDX 16
	defineED(0xB4, func(c *CPU) { c.repeat(c.ldix(1)) })
	defineED(0xBC, func(c *CPU) { c.repeat(c.ldix(-1)) })
	defineED(0xB7, func(c *CPU) { c.repeat(c.ldpirx()) })

	defineED(0xA5, func(c *CPU) { // LDWS 14
		v := c.read(c.regs.HL.Word())
		c.write(c.regs.DE.Word(), v)
		c.regs.SetL(c.regs.L() + 1)
		c.regs.SetD(c.inc8(c.regs.D()))
	})
}

func mirror(v uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}

// nextReg writes a Next register through the select and data ports. The
// port writes are internal and cost 3 cycles each.
func (c *CPU) nextReg(reg, v uint8) {
	c.bus.Out(NextRegSelectPort, reg)
	c.tick(3)
	c.bus.Out(NextRegDataPort, v)
	c.tick(3)
}

// ldix copies (HL) to (DE) unless it equals A. HL steps by dir, DE always
// increments. It returns true while BC is non-zero. 16
func (c *CPU) ldix(dir int) bool {
	v := c.read(c.regs.HL.Word())
	if v != c.regs.A() {
		c.write(c.regs.DE.Word(), v)
	} else {
		c.tick(3)
	}
	c.tick(2)
	c.regs.HL += Pair(dir)
	c.regs.DE++
	c.regs.BC--
	return c.regs.BC != 0
}

// ldpirx copies from the 8-byte pattern at HL (aligned down to 8, indexed by
// E) to (DE) unless the byte equals A. 21/16
func (c *CPU) ldpirx() bool {
	v := c.read(c.regs.HL.Word()&0xFFF8 | uint16(c.regs.E()&0x07))
	if v != c.regs.A() {
		c.write(c.regs.DE.Word(), v)
	} else {
		c.tick(3)
	}
	c.tick(2)
	c.regs.DE++
	c.regs.BC--
	return c.regs.BC != 0
}
