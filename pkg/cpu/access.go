package cpu

func (c *CPU) tick(cycles int) {
	c.cycles += uint64(cycles)
	c.bus.Tick(cycles)
}

func (c *CPU) record(b uint8) {
	c.insn = append(c.insn, b)
}

// fetchOpcode is an M1 cycle: four cycles and a refresh.
func (c *CPU) fetchOpcode() uint8 {
	op := c.bus.Read(c.regs.PC.Word())
	c.regs.PC++
	c.regs.incrementR()
	c.record(op)
	c.tick(4)
	return op
}

func (c *CPU) fetchByte() uint8 {
	v := c.bus.Read(c.regs.PC.Word())
	c.regs.PC++
	c.tick(3)
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetchDisplacement() uint16 {
	return uint16(int16(int8(c.fetchByte())))
}

func (c *CPU) read(addr uint16) uint8 {
	v := c.bus.Read(addr)
	c.tick(3)
	return v
}

func (c *CPU) write(addr uint16, v uint8) {
	c.bus.Write(addr, v)
	c.tick(3)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.write(addr, uint8(v))
	c.write(addr+1, uint8(v>>8))
}

func (c *CPU) in(port uint16) uint8 {
	v := c.bus.In(port)
	c.tick(4)
	return v
}

func (c *CPU) out(port uint16, v uint8) {
	c.bus.Out(port, v)
	c.tick(4)
}

// push writes the high byte first, at SP-1, then the low byte at SP-2.
func (c *CPU) push(v uint16) {
	c.regs.SP--
	c.write(c.regs.SP.Word(), uint8(v>>8))
	c.regs.SP--
	c.write(c.regs.SP.Word(), uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := c.read(c.regs.SP.Word())
	c.regs.SP++
	hi := c.read(c.regs.SP.Word())
	c.regs.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// reg8 reads a register by its 3-bit opcode encoding. Code 6, (HL), is
// handled by the callers since it costs a bus access.
func (c *CPU) reg8(code uint8) uint8 {
	switch code {
	case 0:
		return c.regs.B()
	case 1:
		return c.regs.C()
	case 2:
		return c.regs.D()
	case 3:
		return c.regs.E()
	case 4:
		return c.regs.H()
	case 5:
		return c.regs.L()
	case 7:
		return c.regs.A()
	}
	panic("cpu: reg8 called with (HL)")
}

func (c *CPU) setReg8(code uint8, v uint8) {
	switch code {
	case 0:
		c.regs.SetB(v)
	case 1:
		c.regs.SetC(v)
	case 2:
		c.regs.SetD(v)
	case 3:
		c.regs.SetE(v)
	case 4:
		c.regs.SetH(v)
	case 5:
		c.regs.SetL(v)
	case 7:
		c.regs.SetA(v)
	default:
		panic("cpu: setReg8 called with (HL)")
	}
}

// pairSP maps the 2-bit rp encoding to BC, DE, HL, SP.
func (c *CPU) pairSP(code uint8) *Pair {
	switch code {
	case 0:
		return &c.regs.BC
	case 1:
		return &c.regs.DE
	case 2:
		return &c.regs.HL
	}
	return &c.regs.SP
}

// pairAF maps the 2-bit rp2 encoding used by PUSH and POP to BC, DE, HL, AF.
func (c *CPU) pairAF(code uint8) *Pair {
	if code == 3 {
		return &c.regs.AF
	}
	return c.pairSP(code)
}

// condition evaluates the 3-bit cc encoding: NZ Z NC C PO PE P M.
func (c *CPU) condition(code uint8) bool {
	f := c.regs.F()
	switch code {
	case 0:
		return f&FlagZ == 0
	case 1:
		return f&FlagZ != 0
	case 2:
		return f&FlagC == 0
	case 3:
		return f&FlagC != 0
	case 4:
		return f&FlagP == 0
	case 5:
		return f&FlagP != 0
	case 6:
		return f&FlagS == 0
	}
	return f&FlagS != 0
}
