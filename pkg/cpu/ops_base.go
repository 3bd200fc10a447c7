package cpu

// initBaseOps fills the unprefixed table. Cycle counts in the comments are
// totals including the 4-cycle opcode fetch.
func initBaseOps() {
	fill(&baseOps)

	baseOps[0x00] = func(c *CPU) {} // NOP 4

	// LD rr,nn 10
	for p := uint8(0); p < 4; p++ {
		baseOps[0x01|p<<4] = func(c *CPU) {
			c.pairSP(p).Set(c.fetchWord())
		}
	}

	// INC rr / DEC rr 6
	for p := uint8(0); p < 4; p++ {
		baseOps[0x03|p<<4] = func(c *CPU) {
			*c.pairSP(p)++
			c.tick(2)
		}
		baseOps[0x0B|p<<4] = func(c *CPU) {
			*c.pairSP(p)--
			c.tick(2)
		}
	}

	// ADD HL,rr 11
	for p := uint8(0); p < 4; p++ {
		baseOps[0x09|p<<4] = func(c *CPU) {
			c.add16(&c.regs.HL, c.pairSP(p).Word())
			c.tick(7)
		}
	}

	// INC r / DEC r 4, LD r,n 7
	for r := uint8(0); r < 8; r++ {
		if r == 6 {
			continue
		}
		baseOps[0x04|r<<3] = func(c *CPU) {
			c.setReg8(r, c.inc8(c.reg8(r)))
		}
		baseOps[0x05|r<<3] = func(c *CPU) {
			c.setReg8(r, c.dec8(c.reg8(r)))
		}
		baseOps[0x06|r<<3] = func(c *CPU) {
			c.setReg8(r, c.fetchByte())
		}
	}

	baseOps[0x34] = func(c *CPU) { // INC (HL) 11
		hl := c.regs.HL.Word()
		v := c.read(hl)
		c.tick(1)
		c.write(hl, c.inc8(v))
	}
	baseOps[0x35] = func(c *CPU) { // DEC (HL) 11
		hl := c.regs.HL.Word()
		v := c.read(hl)
		c.tick(1)
		c.write(hl, c.dec8(v))
	}
	baseOps[0x36] = func(c *CPU) { // LD (HL),n 10
		n := c.fetchByte()
		c.write(c.regs.HL.Word(), n)
	}

	baseOps[0x02] = func(c *CPU) { // LD (BC),A 7
		c.storeA(c.regs.BC.Word())
	}
	baseOps[0x12] = func(c *CPU) { // LD (DE),A 7
		c.storeA(c.regs.DE.Word())
	}
	baseOps[0x0A] = func(c *CPU) { // LD A,(BC) 7
		bc := c.regs.BC.Word()
		c.regs.SetA(c.read(bc))
		c.regs.WZ.Set(bc + 1)
	}
	baseOps[0x1A] = func(c *CPU) { // LD A,(DE) 7
		de := c.regs.DE.Word()
		c.regs.SetA(c.read(de))
		c.regs.WZ.Set(de + 1)
	}
	baseOps[0x22] = func(c *CPU) { // LD (nn),HL 16
		nn := c.fetchWord()
		c.writeWord(nn, c.regs.HL.Word())
		c.regs.WZ.Set(nn + 1)
	}
	baseOps[0x2A] = func(c *CPU) { // LD HL,(nn) 16
		nn := c.fetchWord()
		c.regs.HL.Set(c.readWord(nn))
		c.regs.WZ.Set(nn + 1)
	}
	baseOps[0x32] = func(c *CPU) { // LD (nn),A 13
		c.storeA(c.fetchWord())
	}
	baseOps[0x3A] = func(c *CPU) { // LD A,(nn) 13
		nn := c.fetchWord()
		c.regs.SetA(c.read(nn))
		c.regs.WZ.Set(nn + 1)
	}

	baseOps[0x07] = (*CPU).rlca
	baseOps[0x0F] = (*CPU).rrca
	baseOps[0x17] = (*CPU).rla
	baseOps[0x1F] = (*CPU).rra
	baseOps[0x27] = (*CPU).daa
	baseOps[0x2F] = (*CPU).cpl
	baseOps[0x37] = (*CPU).scf
	baseOps[0x3F] = (*CPU).ccf

	baseOps[0x08] = func(c *CPU) { // EX AF,AF' 4
		c.regs.ExchangeAF()
	}

	baseOps[0x10] = func(c *CPU) { // DJNZ e 13/8
		c.tick(1)
		d := c.fetchDisplacement()
		b := c.regs.B() - 1
		c.regs.SetB(b)
		if b != 0 {
			c.jumpRelative(d)
		}
	}
	baseOps[0x18] = func(c *CPU) { // JR e 12
		c.jumpRelative(c.fetchDisplacement())
	}
	for cc := uint8(0); cc < 4; cc++ {
		baseOps[0x20|cc<<3] = func(c *CPU) { // JR cc,e 12/7
			d := c.fetchDisplacement()
			if c.condition(cc) {
				c.jumpRelative(d)
			}
		}
	}

	// LD r,r' 4, LD r,(HL) 7, LD (HL),r 7
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			switch {
			case dst == 6 && src == 6:
				baseOps[op] = func(c *CPU) { // HALT 4
					c.halted = true
				}
			case src == 6:
				baseOps[op] = func(c *CPU) {
					c.setReg8(dst, c.read(c.regs.HL.Word()))
				}
			case dst == 6:
				baseOps[op] = func(c *CPU) {
					c.write(c.regs.HL.Word(), c.reg8(src))
				}
			default:
				baseOps[op] = func(c *CPU) {
					c.setReg8(dst, c.reg8(src))
				}
			}
		}
	}

	// ALU A,r 4, ALU A,(HL) 7, ALU A,n 7
	for alu := uint8(0); alu < 8; alu++ {
		fn := aluOps[alu]
		for src := uint8(0); src < 8; src++ {
			if src == 6 {
				baseOps[0x80|alu<<3|src] = func(c *CPU) {
					fn(c, c.read(c.regs.HL.Word()))
				}
				continue
			}
			baseOps[0x80|alu<<3|src] = func(c *CPU) {
				fn(c, c.reg8(src))
			}
		}
		baseOps[0xC6|alu<<3] = func(c *CPU) {
			fn(c, c.fetchByte())
		}
	}

	for cc := uint8(0); cc < 8; cc++ {
		baseOps[0xC0|cc<<3] = func(c *CPU) { // RET cc 11/5
			c.tick(1)
			if c.condition(cc) {
				c.ret()
			}
		}
		baseOps[0xC2|cc<<3] = func(c *CPU) { // JP cc,nn 10
			nn := c.fetchWord()
			c.regs.WZ.Set(nn)
			if c.condition(cc) {
				c.regs.PC.Set(nn)
			}
		}
		baseOps[0xC4|cc<<3] = func(c *CPU) { // CALL cc,nn 17/10
			nn := c.fetchWord()
			c.regs.WZ.Set(nn)
			if c.condition(cc) {
				c.call(nn)
			}
		}
		baseOps[0xC7|cc<<3] = func(c *CPU) { // RST p 11
			c.call(uint16(cc) << 3)
		}
	}

	// POP rr 10, PUSH rr 11
	for p := uint8(0); p < 4; p++ {
		baseOps[0xC1|p<<4] = func(c *CPU) {
			c.pairAF(p).Set(c.pop())
		}
		baseOps[0xC5|p<<4] = func(c *CPU) {
			c.tick(1)
			c.push(c.pairAF(p).Word())
		}
	}

	baseOps[0xC3] = func(c *CPU) { // JP nn 10
		nn := c.fetchWord()
		c.regs.WZ.Set(nn)
		c.regs.PC.Set(nn)
	}
	baseOps[0xC9] = (*CPU).ret // RET 10
	baseOps[0xCD] = func(c *CPU) { // CALL nn 17
		nn := c.fetchWord()
		c.regs.WZ.Set(nn)
		c.call(nn)
	}

	baseOps[0xD3] = func(c *CPU) { // OUT (n),A 11
		n := c.fetchByte()
		a := c.regs.A()
		c.out(uint16(a)<<8|uint16(n), a)
		c.regs.WZ.Set(uint16(a)<<8 | uint16(n+1))
	}
	baseOps[0xDB] = func(c *CPU) { // IN A,(n) 11
		n := c.fetchByte()
		port := uint16(c.regs.A())<<8 | uint16(n)
		c.regs.SetA(c.in(port))
		c.regs.WZ.Set(port + 1)
	}

	baseOps[0xD9] = func(c *CPU) { // EXX 4
		c.regs.Exchange()
	}
	baseOps[0xE3] = func(c *CPU) { // EX (SP),HL 19
		c.exchangeSP(&c.regs.HL)
	}
	baseOps[0xE9] = func(c *CPU) { // JP (HL) 4
		c.regs.PC = c.regs.HL
	}
	baseOps[0xEB] = func(c *CPU) { // EX DE,HL 4
		c.regs.DE, c.regs.HL = c.regs.HL, c.regs.DE
	}
	baseOps[0xF3] = func(c *CPU) { // DI 4
		c.regs.IFF1, c.regs.IFF2 = false, false
	}
	baseOps[0xFB] = func(c *CPU) { // EI 4
		c.regs.IFF1, c.regs.IFF2 = true, true
		c.acceptDelay = 1
	}
	baseOps[0xF9] = func(c *CPU) { // LD SP,HL 6
		c.regs.SP = c.regs.HL
		c.tick(2)
	}
}

// storeA writes A and leaves A:addr+1 (low byte only) in WZ.
func (c *CPU) storeA(addr uint16) {
	a := c.regs.A()
	c.write(addr, a)
	c.regs.WZ.Set(uint16(a)<<8 | (addr+1)&0x00FF)
}

func (c *CPU) jumpRelative(d uint16) {
	c.regs.PC += Pair(d)
	c.regs.WZ = c.regs.PC
	c.tick(5)
}

func (c *CPU) call(addr uint16) {
	c.tick(1)
	c.push(c.regs.PC.Word())
	c.regs.WZ.Set(addr)
	c.regs.PC.Set(addr)
}

func (c *CPU) ret() {
	c.regs.PC.Set(c.pop())
	c.regs.WZ = c.regs.PC
}

// exchangeSP swaps a pair with the word on top of the stack.
func (c *CPU) exchangeSP(p *Pair) {
	sp := c.regs.SP.Word()
	lo := c.read(sp)
	hi := c.read(sp + 1)
	c.tick(1)
	c.write(sp+1, p.Hi())
	c.write(sp, p.Lo())
	c.tick(2)
	p.Set(uint16(hi)<<8 | uint16(lo))
	c.regs.WZ = *p
}
