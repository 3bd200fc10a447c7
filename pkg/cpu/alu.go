package cpu

// --- 8-bit arithmetic and logic on A ---

func (c *CPU) add8(value uint8) {
	a := c.regs.A()
	addtemp := uint16(a) + uint16(value)
	lookup := lookup8(a, value, addtemp)
	c.regs.SetA(uint8(addtemp))
	c.regs.SetF(bsel(addtemp&0x100 != 0, FlagC, 0) |
		HalfcarryAddTable[lookup&0x07] |
		OverflowAddTable[lookup>>4] |
		Sz53Table[uint8(addtemp)])
}

func (c *CPU) adc8(value uint8) {
	a := c.regs.A()
	adctemp := uint16(a) + uint16(value) + uint16(c.regs.F()&FlagC)
	lookup := lookup8(a, value, adctemp)
	c.regs.SetA(uint8(adctemp))
	c.regs.SetF(bsel(adctemp&0x100 != 0, FlagC, 0) |
		HalfcarryAddTable[lookup&0x07] |
		OverflowAddTable[lookup>>4] |
		Sz53Table[uint8(adctemp)])
}

func (c *CPU) sub8(value uint8) {
	a := c.regs.A()
	subtemp := uint16(a) - uint16(value)
	lookup := lookup8(a, value, subtemp)
	c.regs.SetA(uint8(subtemp))
	c.regs.SetF(bsel(subtemp&0x100 != 0, FlagC, 0) | FlagN |
		HalfcarrySubTable[lookup&0x07] |
		OverflowSubTable[lookup>>4] |
		Sz53Table[uint8(subtemp)])
}

func (c *CPU) sbc8(value uint8) {
	a := c.regs.A()
	sbctemp := uint16(a) - uint16(value) - uint16(c.regs.F()&FlagC)
	lookup := lookup8(a, value, sbctemp)
	c.regs.SetA(uint8(sbctemp))
	c.regs.SetF(bsel(sbctemp&0x100 != 0, FlagC, 0) | FlagN |
		HalfcarrySubTable[lookup&0x07] |
		OverflowSubTable[lookup>>4] |
		Sz53Table[uint8(sbctemp)])
}

func (c *CPU) and8(value uint8) {
	a := c.regs.A() & value
	c.regs.SetA(a)
	c.regs.SetF(FlagH | Sz53pTable[a])
}

func (c *CPU) xor8(value uint8) {
	a := c.regs.A() ^ value
	c.regs.SetA(a)
	c.regs.SetF(Sz53pTable[a])
}

func (c *CPU) or8(value uint8) {
	a := c.regs.A() | value
	c.regs.SetA(a)
	c.regs.SetF(Sz53pTable[a])
}

// cp8 takes bits 5 and 3 from the operand, not the result.
func (c *CPU) cp8(value uint8) {
	a := c.regs.A()
	cptemp := uint16(a) - uint16(value)
	lookup := lookup8(a, value, cptemp)
	c.regs.SetF(bsel(cptemp&0x100 != 0, FlagC, bsel(cptemp&0xFF != 0, 0, FlagZ)) |
		FlagN |
		HalfcarrySubTable[lookup&0x07] |
		OverflowSubTable[lookup>>4] |
		(value & (Flag3 | Flag5)) |
		uint8(cptemp&uint16(FlagS)))
}

// aluOps is indexed by the 3-bit operation field of the 0x80-0xBF block and
// of the ALU-immediate opcodes.
var aluOps = [8]func(*CPU, uint8){
	(*CPU).add8, (*CPU).adc8, (*CPU).sub8, (*CPU).sbc8,
	(*CPU).and8, (*CPU).xor8, (*CPU).or8, (*CPU).cp8,
}

// inc8 and dec8 overflow only at the 0x7F/0x80 boundary, so a constant
// comparison is enough for V.
func (c *CPU) inc8(v uint8) uint8 {
	v++
	c.regs.SetF((c.regs.F() & FlagC) |
		bsel(v == 0x80, FlagV, 0) |
		bsel(v&0x0F != 0, 0, FlagH) |
		Sz53Table[v])
	return v
}

func (c *CPU) dec8(v uint8) uint8 {
	f := (c.regs.F() & FlagC) | bsel(v&0x0F != 0, 0, FlagH) | FlagN
	v--
	c.regs.SetF(f | bsel(v == 0x7F, FlagV, 0) | Sz53Table[v])
	return v
}

func (c *CPU) daa() {
	var add, carry uint8
	a := c.regs.A()
	f := c.regs.F()
	carry = f & FlagC
	if f&FlagH != 0 || a&0x0F > 9 {
		add = 6
	}
	if carry != 0 || a > 0x99 {
		add |= 0x60
	}
	if a > 0x99 {
		carry = FlagC
	}
	if f&FlagN != 0 {
		c.sub8(add)
	} else {
		c.add8(add)
	}
	c.regs.SetF(c.regs.F()&^(FlagC|FlagP) | carry | ParityTable[c.regs.A()]<<2)
}

func (c *CPU) neg() {
	a := c.regs.A()
	c.regs.SetA(0)
	c.sub8(a)
}

func (c *CPU) cpl() {
	a := ^c.regs.A()
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&(FlagC|FlagP|FlagZ|FlagS) | a&(Flag3|Flag5) | FlagN | FlagH)
}

func (c *CPU) scf() {
	c.regs.SetF(c.regs.F()&(FlagP|FlagZ|FlagS) | c.regs.A()&(Flag3|Flag5) | FlagC)
}

func (c *CPU) ccf() {
	f := c.regs.F()
	c.regs.SetF(f&(FlagP|FlagZ|FlagS) | bsel(f&FlagC != 0, FlagH, FlagC) | c.regs.A()&(Flag3|Flag5))
}

// --- accumulator rotates (S, Z and P/V untouched) ---

func (c *CPU) rlca() {
	a := c.regs.A()
	a = a<<1 | a>>7
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&(FlagP|FlagZ|FlagS) | a&(FlagC|Flag3|Flag5))
}

func (c *CPU) rrca() {
	a := c.regs.A()
	f := c.regs.F()&(FlagP|FlagZ|FlagS) | a&FlagC
	a = a>>1 | a<<7
	c.regs.SetA(a)
	c.regs.SetF(f | a&(Flag3|Flag5))
}

func (c *CPU) rla() {
	old := c.regs.A()
	a := old<<1 | c.regs.F()&FlagC
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&(FlagP|FlagZ|FlagS) | a&(Flag3|Flag5) | old>>7)
}

func (c *CPU) rra() {
	old := c.regs.A()
	a := old>>1 | c.regs.F()<<7
	c.regs.SetA(a)
	c.regs.SetF(c.regs.F()&(FlagP|FlagZ|FlagS) | a&(Flag3|Flag5) | old&FlagC)
}

// --- CB-prefix rotate/shift helpers (return the new value) ---

func (c *CPU) rlc(v uint8) uint8 {
	v = v<<1 | v>>7
	c.regs.SetF(v&FlagC | Sz53pTable[v])
	return v
}

func (c *CPU) rrc(v uint8) uint8 {
	f := v & FlagC
	v = v>>1 | v<<7
	c.regs.SetF(f | Sz53pTable[v])
	return v
}

func (c *CPU) rl(v uint8) uint8 {
	old := v
	v = v<<1 | c.regs.F()&FlagC
	c.regs.SetF(old>>7 | Sz53pTable[v])
	return v
}

func (c *CPU) rr(v uint8) uint8 {
	old := v
	v = v>>1 | c.regs.F()<<7
	c.regs.SetF(old&FlagC | Sz53pTable[v])
	return v
}

func (c *CPU) sla(v uint8) uint8 {
	f := v >> 7
	v <<= 1
	c.regs.SetF(f | Sz53pTable[v])
	return v
}

func (c *CPU) sra(v uint8) uint8 {
	f := v & FlagC
	v = v&0x80 | v>>1
	c.regs.SetF(f | Sz53pTable[v])
	return v
}

// sll is the undocumented shift left that sets bit 0.
func (c *CPU) sll(v uint8) uint8 {
	f := v >> 7
	v = v<<1 | 0x01
	c.regs.SetF(f | Sz53pTable[v])
	return v
}

func (c *CPU) srl(v uint8) uint8 {
	f := v & FlagC
	v >>= 1
	c.regs.SetF(f | Sz53pTable[v])
	return v
}

// rotOps is indexed by the 3-bit operation field of CB 0x00-0x3F.
var rotOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
}

// bit tests bit n of v. Bits 5 and 3 come from undoc, which is v itself for
// register operands and the high byte of WZ for memory operands.
func (c *CPU) bit(n uint8, v uint8, undoc uint8) {
	f := c.regs.F()&FlagC | FlagH | undoc&(Flag3|Flag5)
	if v&(1<<n) == 0 {
		f |= FlagP | FlagZ
	}
	if n == 7 && v&0x80 != 0 {
		f |= FlagS
	}
	c.regs.SetF(f)
}

// --- 16-bit arithmetic ---

// add16 implements ADD HL/IX/IY,rr: H from bit 11, C from bit 15, bits 5
// and 3 from the high byte of the result. S, Z and P/V are preserved.
func (c *CPU) add16(dst *Pair, value uint16) {
	v := dst.Word()
	c.regs.WZ.Set(v + 1)
	result := uint32(v) + uint32(value)
	lookup := lookup16(v, value, result)
	dst.Set(uint16(result))
	c.regs.SetF(c.regs.F()&(FlagV|FlagZ|FlagS) |
		bsel(result&0x10000 != 0, FlagC, 0) |
		uint8(result>>8)&(Flag3|Flag5) |
		HalfcarryAddTable[lookup&0x07])
}

func (c *CPU) adc16(value uint16) {
	hl := c.regs.HL.Word()
	c.regs.WZ.Set(hl + 1)
	result := uint32(hl) + uint32(value) + uint32(c.regs.F()&FlagC)
	lookup := lookup16(hl, value, result)
	c.regs.HL.Set(uint16(result))
	h := c.regs.H()
	c.regs.SetF(bsel(result&0x10000 != 0, FlagC, 0) |
		OverflowAddTable[lookup>>4] |
		h&(Flag3|Flag5|FlagS) |
		HalfcarryAddTable[lookup&0x07] |
		bsel(result&0xFFFF != 0, 0, FlagZ))
}

func (c *CPU) sbc16(value uint16) {
	hl := c.regs.HL.Word()
	c.regs.WZ.Set(hl + 1)
	result := uint32(hl) - uint32(value) - uint32(c.regs.F()&FlagC)
	lookup := lookup16(hl, value, result)
	c.regs.HL.Set(uint16(result))
	h := c.regs.H()
	c.regs.SetF(bsel(result&0x10000 != 0, FlagC, 0) |
		FlagN |
		OverflowSubTable[lookup>>4] |
		h&(Flag3|Flag5|FlagS) |
		HalfcarrySubTable[lookup&0x07] |
		bsel(result&0xFFFF != 0, 0, FlagZ))
}

// bsel returns a if cond is true, else b.
func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}
