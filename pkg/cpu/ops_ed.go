package cpu

// initEDOps fills the ED table with the documented instructions, their
// mirrors, the block instructions and the Z80N extensions. Everything else
// stays undefined and faults.
func initEDOps() {
	fill(&edOps)

	for r := uint8(0); r < 8; r++ {
		defineED(0x40|r<<3, func(c *CPU) { // IN r,(C) 12
			bc := c.regs.BC.Word()
			v := c.in(bc)
			c.regs.WZ.Set(bc + 1)
			c.regs.SetF(c.regs.F()&FlagC | Sz53pTable[v])
			if r != 6 {
				c.setReg8(r, v)
			}
		})
		defineED(0x41|r<<3, func(c *CPU) { // OUT (C),r 12
			bc := c.regs.BC.Word()
			var v uint8
			if r != 6 {
				v = c.reg8(r)
			}
			c.out(bc, v)
			c.regs.WZ.Set(bc + 1)
		})
	}

	for p := uint8(0); p < 4; p++ {
		defineED(0x42|p<<4, func(c *CPU) { // SBC HL,rr 15
			c.sbc16(c.pairSP(p).Word())
			c.tick(7)
		})
		defineED(0x4A|p<<4, func(c *CPU) { // ADC HL,rr 15
			c.adc16(c.pairSP(p).Word())
			c.tick(7)
		})
		defineED(0x43|p<<4, func(c *CPU) { // LD (nn),rr 20
			nn := c.fetchWord()
			c.writeWord(nn, c.pairSP(p).Word())
			c.regs.WZ.Set(nn + 1)
		})
		defineED(0x4B|p<<4, func(c *CPU) { // LD rr,(nn) 20
			nn := c.fetchWord()
			c.pairSP(p).Set(c.readWord(nn))
			c.regs.WZ.Set(nn + 1)
		})
	}

	modes := [8]InterruptMode{IM0, IM0, IM1, IM2, IM0, IM0, IM1, IM2}
	for i := uint8(0); i < 8; i++ {
		defineED(0x44|i<<3, (*CPU).neg)  // NEG 8
		defineED(0x45|i<<3, (*CPU).retn) // RETN 14, RETI at 4Dh
		mode := modes[i]
		defineED(0x46|i<<3, func(c *CPU) { // IM n 8
			c.regs.IM = mode
		})
	}

	defineED(0x47, func(c *CPU) { // LD I,A 9
		c.tick(1)
		c.regs.SetI(c.regs.A())
	})
	defineED(0x4F, func(c *CPU) { // LD R,A 9
		c.tick(1)
		c.regs.SetR(c.regs.A())
	})
	defineED(0x57, func(c *CPU) { // LD A,I 9
		c.tick(1)
		c.loadAFromIR(c.regs.I())
	})
	defineED(0x5F, func(c *CPU) { // LD A,R 9
		c.tick(1)
		c.loadAFromIR(c.regs.R())
	})
	defineED(0x67, (*CPU).rrd)
	defineED(0x6F, (*CPU).rld)

	defineED(0xA0, func(c *CPU) { c.ldi(1) })
	defineED(0xA8, func(c *CPU) { c.ldi(-1) })
	defineED(0xB0, func(c *CPU) { c.repeat(c.ldi(1)) })
	defineED(0xB8, func(c *CPU) { c.repeat(c.ldi(-1)) })

	defineED(0xA1, func(c *CPU) { c.cpi(1) })
	defineED(0xA9, func(c *CPU) { c.cpi(-1) })
	defineED(0xB1, func(c *CPU) { c.repeat(c.cpi(1)) })
	defineED(0xB9, func(c *CPU) { c.repeat(c.cpi(-1)) })

	defineED(0xA2, func(c *CPU) { c.ini(1) })
	defineED(0xAA, func(c *CPU) { c.ini(-1) })
	defineED(0xB2, func(c *CPU) { c.repeat(c.ini(1)) })
	defineED(0xBA, func(c *CPU) { c.repeat(c.ini(-1)) })

	defineED(0xA3, func(c *CPU) { c.outi(1) })
	defineED(0xAB, func(c *CPU) { c.outi(-1) })
	defineED(0xB3, func(c *CPU) { c.repeat(c.outi(1)) })
	defineED(0xBB, func(c *CPU) { c.repeat(c.outi(-1)) })

	initNextOps()
}

func (c *CPU) retn() {
	c.regs.IFF1 = c.regs.IFF2
	if c.stackless() {
		c.tick(6)
		c.regs.PC.Set(c.cfg.Stackless.Return())
		c.regs.WZ = c.regs.PC
		return
	}
	c.ret()
}

func (c *CPU) loadAFromIR(v uint8) {
	c.regs.SetA(v)
	c.regs.SetF(c.regs.F()&FlagC | Sz53Table[v] | bsel(c.regs.IFF2, FlagV, 0))
}

// rrd rotates the low nibble of A and the byte at (HL) right by 4 bits. 18
func (c *CPU) rrd() {
	hl := c.regs.HL.Word()
	v := c.read(hl)
	c.tick(4)
	a := c.regs.A()
	c.write(hl, a<<4|v>>4)
	a = a&0xF0 | v&0x0F
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&FlagC | Sz53pTable[a])
	c.regs.WZ.Set(hl + 1)
}

// rld is rrd in the other direction. 18
func (c *CPU) rld() {
	hl := c.regs.HL.Word()
	v := c.read(hl)
	c.tick(4)
	a := c.regs.A()
	c.write(hl, v<<4|a&0x0F)
	a = a&0xF0 | v>>4
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&FlagC | Sz53pTable[a])
	c.regs.WZ.Set(hl + 1)
}

// repeat rewinds PC onto the ED prefix when a block instruction has more
// work to do, so the instruction runs again after the next boundary. 5 extra
// cycles.
func (c *CPU) repeat(again bool) {
	if !again {
		return
	}
	c.tick(5)
	c.regs.PC -= 2
	c.regs.WZ = c.regs.PC + 1
}

// ldi copies (HL) to (DE) and steps both by dir. It returns true while BC is
// non-zero. 16
func (c *CPU) ldi(dir int) bool {
	v := c.read(c.regs.HL.Word())
	c.regs.BC--
	c.write(c.regs.DE.Word(), v)
	c.tick(2)
	c.regs.DE += Pair(dir)
	c.regs.HL += Pair(dir)
	n := v + c.regs.A()
	c.regs.SetF(c.regs.F()&(FlagC|FlagZ|FlagS) |
		bsel(c.regs.BC != 0, FlagV, 0) |
		n&Flag3 | bsel(n&0x02 != 0, Flag5, 0))
	return c.regs.BC != 0
}

// cpi compares A with (HL) and steps HL by dir. It returns true while BC is
// non-zero and no match was found. 16
func (c *CPU) cpi(dir int) bool {
	a := c.regs.A()
	v := c.read(c.regs.HL.Word())
	n := a - v
	lookup := (a&0x08)>>3 | (v&0x08)>>2 | (n&0x08)>>1
	c.tick(5)
	c.regs.HL += Pair(dir)
	c.regs.BC--
	c.regs.WZ += Pair(dir)
	f := c.regs.F()&FlagC |
		bsel(c.regs.BC != 0, FlagV|FlagN, FlagN) |
		HalfcarrySubTable[lookup] |
		bsel(n != 0, 0, FlagZ) |
		n&FlagS
	if f&FlagH != 0 {
		n--
	}
	c.regs.SetF(f | n&Flag3 | bsel(n&0x02 != 0, Flag5, 0))
	return c.regs.BC != 0 && f&FlagZ == 0
}

// ini reads port BC into (HL), decrements B and steps HL by dir. It returns
// true while B is non-zero. 16
func (c *CPU) ini(dir int) bool {
	c.tick(1)
	bc := c.regs.BC.Word()
	v := c.in(bc)
	c.write(c.regs.HL.Word(), v)
	c.regs.WZ.Set(bc + uint16(dir))
	b := c.regs.B() - 1
	c.regs.SetB(b)
	c.regs.HL += Pair(dir)
	k := v + c.regs.C() + uint8(dir)
	c.blockIOFlags(v, k, b)
	return b != 0
}

// outi writes (HL) to port BC after decrementing B, and steps HL by dir. It
// returns true while B is non-zero. 16
func (c *CPU) outi(dir int) bool {
	c.tick(1)
	v := c.read(c.regs.HL.Word())
	b := c.regs.B() - 1
	c.regs.SetB(b)
	bc := c.regs.BC.Word()
	c.regs.WZ.Set(bc + uint16(dir))
	c.out(bc, v)
	c.regs.HL += Pair(dir)
	k := v + c.regs.L()
	c.blockIOFlags(v, k, b)
	return b != 0
}

func (c *CPU) blockIOFlags(v, k, b uint8) {
	c.regs.SetF(bsel(v&0x80 != 0, FlagN, 0) |
		bsel(k < v, FlagH|FlagC, 0) |
		bsel(ParityTable[k&0x07^b] != 0, FlagP, 0) |
		Sz53Table[b])
}
