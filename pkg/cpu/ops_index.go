package cpu

// initIndexOps builds the DD or FD table from the base table. Opcodes that
// use HL, H or L are redirected to the index register; all others run as
// their base instruction after the 4-cycle prefix.
func initIndexOps(table *[256]opFunc, xy func(*Registers) *Pair) {
	*table = baseOps

	pair := func(c *CPU, code uint8) *Pair {
		if code == 2 {
			return xy(&c.regs)
		}
		return c.pairSP(code)
	}

	// reg reads a register, with H and L replaced by the index halves
	reg := func(c *CPU, code uint8) uint8 {
		switch code {
		case 4:
			return xy(&c.regs).Hi()
		case 5:
			return xy(&c.regs).Lo()
		}
		return c.reg8(code)
	}
	setReg := func(c *CPU, code uint8, v uint8) {
		switch code {
		case 4:
			xy(&c.regs).SetHi(v)
		case 5:
			xy(&c.regs).SetLo(v)
		default:
			c.setReg8(code, v)
		}
	}

	// displaced computes XY+d and spends the 5 cycles of the address adder.
	displaced := func(c *CPU) uint16 {
		addr := xy(&c.regs).Word() + c.fetchDisplacement()
		c.regs.WZ.Set(addr)
		c.tick(5)
		return addr
	}

	for p := uint8(0); p < 4; p++ {
		table[0x09|p<<4] = func(c *CPU) { // ADD XY,rr 15
			c.add16(xy(&c.regs), pair(c, p).Word())
			c.tick(7)
		}
	}

	table[0x21] = func(c *CPU) { // LD XY,nn 14
		xy(&c.regs).Set(c.fetchWord())
	}
	table[0x22] = func(c *CPU) { // LD (nn),XY 20
		nn := c.fetchWord()
		c.writeWord(nn, xy(&c.regs).Word())
		c.regs.WZ.Set(nn + 1)
	}
	table[0x2A] = func(c *CPU) { // LD XY,(nn) 20
		nn := c.fetchWord()
		xy(&c.regs).Set(c.readWord(nn))
		c.regs.WZ.Set(nn + 1)
	}
	table[0x23] = func(c *CPU) { // INC XY 10
		*xy(&c.regs)++
		c.tick(2)
	}
	table[0x2B] = func(c *CPU) { // DEC XY 10
		*xy(&c.regs)--
		c.tick(2)
	}

	// INC/DEC XYH/XYL 8, LD XYH/XYL,n 11
	for r := uint8(4); r <= 5; r++ {
		table[0x04|r<<3] = func(c *CPU) {
			setReg(c, r, c.inc8(reg(c, r)))
		}
		table[0x05|r<<3] = func(c *CPU) {
			setReg(c, r, c.dec8(reg(c, r)))
		}
		table[0x06|r<<3] = func(c *CPU) {
			setReg(c, r, c.fetchByte())
		}
	}

	table[0x34] = func(c *CPU) { // INC (XY+d) 23
		addr := displaced(c)
		v := c.read(addr)
		c.tick(1)
		c.write(addr, c.inc8(v))
	}
	table[0x35] = func(c *CPU) { // DEC (XY+d) 23
		addr := displaced(c)
		v := c.read(addr)
		c.tick(1)
		c.write(addr, c.dec8(v))
	}
	table[0x36] = func(c *CPU) { // LD (XY+d),n 19
		addr := xy(&c.regs).Word() + c.fetchDisplacement()
		c.regs.WZ.Set(addr)
		n := c.fetchByte()
		c.tick(2)
		c.write(addr, n)
	}

	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			switch {
			case dst == 6 && src == 6:
				// HALT
			case src == 6:
				table[op] = func(c *CPU) { // LD r,(XY+d) 19
					c.setReg8(dst, c.read(displaced(c)))
				}
			case dst == 6:
				table[op] = func(c *CPU) { // LD (XY+d),r 19
					addr := displaced(c)
					c.write(addr, c.reg8(src))
				}
			case dst == 4 || dst == 5 || src == 4 || src == 5:
				table[op] = func(c *CPU) { // LD with XYH/XYL 8
					setReg(c, dst, reg(c, src))
				}
			}
		}
	}

	for alu := uint8(0); alu < 8; alu++ {
		fn := aluOps[alu]
		table[0x80|alu<<3|4] = func(c *CPU) { fn(c, reg(c, 4)) }
		table[0x80|alu<<3|5] = func(c *CPU) { fn(c, reg(c, 5)) }
		table[0x80|alu<<3|6] = func(c *CPU) { // ALU (XY+d) 19
			fn(c, c.read(displaced(c)))
		}
	}

	table[prefixCB] = func(c *CPU) { // DD CB d op / FD CB d op
		d := c.fetchByte()
		c.record(d)
		addr := xy(&c.regs).Word() + uint16(int16(int8(d)))
		c.regs.WZ.Set(addr)
		op := c.fetchByte()
		c.record(op)
		c.tick(2)
		indexBitOps[op](c, addr)
	}

	table[0xE1] = func(c *CPU) { // POP XY 14
		xy(&c.regs).Set(c.pop())
	}
	table[0xE5] = func(c *CPU) { // PUSH XY 15
		c.tick(1)
		c.push(xy(&c.regs).Word())
	}
	table[0xE3] = func(c *CPU) { // EX (SP),XY 23
		c.exchangeSP(xy(&c.regs))
	}
	table[0xE9] = func(c *CPU) { // JP (XY) 8
		c.regs.PC = *xy(&c.regs)
	}
	table[0xF9] = func(c *CPU) { // LD SP,XY 10
		c.regs.SP = *xy(&c.regs)
		c.tick(2)
	}
}

// initIndexBitOps fills the shared DD CB / FD CB table. BIT costs 20 cycles
// in total, the read-modify-write forms 23. The read-modify-write forms with
// a register field other than 6 also copy the result into that register.
func initIndexBitOps() {
	for op := 0; op < 256; op++ {
		op := uint8(op)
		group, n, r := op>>6, op>>3&0x07, op&0x07

		if group == 1 {
			indexBitOps[op] = func(c *CPU, addr uint16) {
				v := c.read(addr)
				c.tick(1)
				c.bit(n, v, uint8(addr>>8))
			}
			continue
		}
		indexBitOps[op] = func(c *CPU, addr uint16) {
			v := c.read(addr)
			c.tick(1)
			v = cbApply(c, group, n, v)
			c.write(addr, v)
			if r != 6 {
				c.setReg8(r, v)
			}
		}
	}
}
