package cpu

import "testing"

func TestPairHalves(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x1234, 0x00FF, 0xFF00, 0xFFFF} {
		var p Pair
		p.Set(v)
		if got := MakePair(p.Hi(), p.Lo()).Word(); got != v {
			t.Errorf("pair 0x%04X rebuilt from halves as 0x%04X", v, got)
		}

		var q Pair
		q.SetHi(uint8(v >> 8))
		q.SetLo(uint8(v))
		if q.Word() != v {
			t.Errorf("halves of 0x%04X read back as 0x%04X", v, q.Word())
		}
	}
}

func TestPairByteOrderOnBus(t *testing.T) {
	// LD (8000h),HL ; stores L then H
	c, bus := newTestCPU(t, 0x22, 0x00, 0x80)
	c.regs.HL.Set(0xBEEF)
	mustStep(t, c)
	requireU8(t, "(8000h)", bus.mem[0x8000], 0xEF)
	requireU8(t, "(8001h)", bus.mem[0x8001], 0xBE)
}

func TestFlagAccessors(t *testing.T) {
	var r Registers
	checks := []struct {
		mask uint8
		get  func() bool
	}{
		{FlagS, r.Sign}, {FlagZ, r.Zero}, {Flag5, r.Bit5}, {FlagH, r.HalfCarry},
		{Flag3, r.Bit3}, {FlagP, r.Parity}, {FlagN, r.Subtract}, {FlagC, r.Carry},
	}
	for _, ch := range checks {
		r.SetF(0)
		r.SetFlag(ch.mask, true)
		if !ch.get() {
			t.Errorf("flag 0x%02X not reported after SetFlag", ch.mask)
		}
		if r.F() != ch.mask {
			t.Errorf("SetFlag(0x%02X) left F=0x%02X", ch.mask, r.F())
		}
		r.SetFlag(ch.mask, false)
		if ch.get() {
			t.Errorf("flag 0x%02X still reported after clearing", ch.mask)
		}
	}
}

func loadDistinct(r *Registers) {
	r.AF, r.BC, r.DE, r.HL = 0x0102, 0x0304, 0x0506, 0x0708
	r.AF_, r.BC_, r.DE_, r.HL_ = 0x1112, 0x1314, 0x1516, 0x1718
	r.IX, r.IY, r.SP = 0x2122, 0x2324, 0x2526
}

func TestExchanges(t *testing.T) {
	tests := []struct {
		name string
		op   uint8
		want func(before Registers) Registers
	}{
		{"EX AF,AF'", 0x08, func(r Registers) Registers {
			r.AF, r.AF_ = r.AF_, r.AF
			return r
		}},
		{"EXX", 0xD9, func(r Registers) Registers {
			r.BC, r.BC_ = r.BC_, r.BC
			r.DE, r.DE_ = r.DE_, r.DE
			r.HL, r.HL_ = r.HL_, r.HL
			return r
		}},
		{"EX DE,HL", 0xEB, func(r Registers) Registers {
			r.DE, r.HL = r.HL, r.DE
			return r
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU(t, tc.op)
			loadDistinct(&c.regs)
			before := c.regs
			mustStep(t, c)

			want := tc.want(before)
			want.PC = 1
			want.IR = before.IR
			want.IR.SetLo(1)
			if c.regs != want {
				t.Errorf("after %s:\n got %+v\nwant %+v", tc.name, c.regs, want)
			}
		})
	}
}

func TestRefreshKeepsBit7(t *testing.T) {
	var r Registers
	r.SetR(0xFF)
	r.incrementR()
	requireU8(t, "R", r.R(), 0x80)
	r.SetR(0x7F)
	r.incrementR()
	requireU8(t, "R", r.R(), 0x00)
}

func TestPowerOnState(t *testing.T) {
	c, _ := newTestCPU(t)
	r := c.Registers()
	for name, p := range map[string]Pair{
		"AF": r.AF, "BC": r.BC, "DE": r.DE, "HL": r.HL,
		"AF'": r.AF_, "BC'": r.BC_, "DE'": r.DE_, "HL'": r.HL_,
		"IX": r.IX, "IY": r.IY, "SP": r.SP,
	} {
		requireU16(t, name, p.Word(), 0xFFFF)
	}
	requireU16(t, "PC", r.PC.Word(), 0)
	requireU16(t, "IR", r.IR.Word(), 0)
	if r.IFF1 || r.IFF2 || r.IM != IM0 {
		t.Errorf("IFF1=%v IFF2=%v IM=%d", r.IFF1, r.IFF2, r.IM)
	}
	if !c.Pending().Empty() {
		t.Errorf("pending = %v", c.Pending())
	}
}
