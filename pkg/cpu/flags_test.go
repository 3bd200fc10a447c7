package cpu

import "testing"

func TestSz53Table(t *testing.T) {
	for v := 0; v < 256; v++ {
		e := Sz53Table[v]
		if (e&FlagS != 0) != (v&0x80 != 0) {
			t.Errorf("Sz53Table[0x%02X]: S=%v", v, e&FlagS != 0)
		}
		if (e&FlagZ != 0) != (v == 0) {
			t.Errorf("Sz53Table[0x%02X]: Z=%v", v, e&FlagZ != 0)
		}
		if e&(Flag5|Flag3) != uint8(v)&(Flag5|Flag3) {
			t.Errorf("Sz53Table[0x%02X]: bits 5/3 = 0x%02X", v, e&(Flag5|Flag3))
		}
		if e&(FlagH|FlagP|FlagN|FlagC) != 0 {
			t.Errorf("Sz53Table[0x%02X] = 0x%02X has stray bits", v, e)
		}
	}
}

func TestParityTable(t *testing.T) {
	for v := 0; v < 256; v++ {
		bits := 0
		for x := v; x != 0; x >>= 1 {
			bits += x & 1
		}
		want := uint8(0)
		if bits%2 == 0 {
			want = 1
		}
		if ParityTable[v] != want {
			t.Errorf("ParityTable[0x%02X] = %d, want %d", v, ParityTable[v], want)
		}
		if Sz53pTable[v] != Sz53Table[v]|want<<2 {
			t.Errorf("Sz53pTable[0x%02X] = 0x%02X", v, Sz53pTable[v])
		}
	}
}

func TestHalfcarryAddTable(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			sum := uint16(a) + uint16(b)
			idx := HalfcarryIndex(uint8(a), uint8(b), sum)
			want := (a&0x0F)+(b&0x0F) > 0x0F
			if got := HalfcarryAddTable[idx] != 0; got != want {
				t.Fatalf("half-carry %02X+%02X: got %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestHalfcarrySubTable(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			diff := uint16(a) - uint16(b)
			idx := HalfcarryIndex(uint8(a), uint8(b), diff)
			want := a&0x0F < b&0x0F
			if got := HalfcarrySubTable[idx] != 0; got != want {
				t.Fatalf("half-borrow %02X-%02X: got %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestOverflowTables(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			sa, sb := int(int8(a)), int(int8(b))

			sum := uint16(a) + uint16(b)
			wantAdd := sa+sb > 127 || sa+sb < -128
			if got := OverflowAddTable[OverflowIndex(uint8(a), uint8(b), sum)] != 0; got != wantAdd {
				t.Fatalf("overflow %02X+%02X: got %v, want %v", a, b, got, wantAdd)
			}

			diff := uint16(a) - uint16(b)
			wantSub := sa-sb > 127 || sa-sb < -128
			if got := OverflowSubTable[OverflowIndex(uint8(a), uint8(b), diff)] != 0; got != wantSub {
				t.Fatalf("overflow %02X-%02X: got %v, want %v", a, b, got, wantSub)
			}
		}
	}
}

// TestAddFlags verifies ADD A,n flag behavior for key cases.
func TestAddFlags(t *testing.T) {
	tests := []struct {
		a, val       uint8
		wantA        uint8
		wantCarry    bool
		wantZero     bool
		wantSign     bool
		wantHalf     bool
		wantOverflow bool
	}{
		{0, 0, 0, false, true, false, false, false},
		{1, 1, 2, false, false, false, false, false},
		{0xFF, 1, 0, true, true, false, true, false},
		{0x0F, 1, 0x10, false, false, false, true, false},
		{0x7F, 1, 0x80, false, false, true, true, true}, // pos + pos = neg
		{0x80, 0x80, 0, true, true, false, false, true}, // neg + neg = pos
	}

	for _, tc := range tests {
		c, _ := newTestCPU(t)
		c.regs.SetA(tc.a)
		c.add8(tc.val)
		r := c.regs

		if r.A() != tc.wantA {
			t.Errorf("ADD A=%02X + %02X: got A=%02X, want %02X", tc.a, tc.val, r.A(), tc.wantA)
		}
		if r.Carry() != tc.wantCarry {
			t.Errorf("ADD A=%02X + %02X: carry=%v, want %v", tc.a, tc.val, r.Carry(), tc.wantCarry)
		}
		if r.Zero() != tc.wantZero {
			t.Errorf("ADD A=%02X + %02X: zero=%v, want %v", tc.a, tc.val, r.Zero(), tc.wantZero)
		}
		if r.Sign() != tc.wantSign {
			t.Errorf("ADD A=%02X + %02X: sign=%v, want %v", tc.a, tc.val, r.Sign(), tc.wantSign)
		}
		if r.HalfCarry() != tc.wantHalf {
			t.Errorf("ADD A=%02X + %02X: half=%v, want %v", tc.a, tc.val, r.HalfCarry(), tc.wantHalf)
		}
		if r.Overflow() != tc.wantOverflow {
			t.Errorf("ADD A=%02X + %02X: overflow=%v, want %v", tc.a, tc.val, r.Overflow(), tc.wantOverflow)
		}
		if r.Subtract() {
			t.Errorf("ADD A=%02X + %02X: N set", tc.a, tc.val)
		}
	}
}

func TestSubFlags(t *testing.T) {
	tests := []struct {
		a, val       uint8
		wantA        uint8
		wantCarry    bool
		wantHalf     bool
		wantOverflow bool
	}{
		{0, 1, 0xFF, true, true, false},
		{0x10, 1, 0x0F, false, true, false},
		{0x80, 1, 0x7F, false, true, true}, // neg - pos = pos
		{0x7F, 0xFF, 0x80, true, false, true},
		{5, 5, 0, false, false, false},
	}
	for _, tc := range tests {
		c, _ := newTestCPU(t)
		c.regs.SetA(tc.a)
		c.sub8(tc.val)
		r := c.regs
		if r.A() != tc.wantA || r.Carry() != tc.wantCarry || r.HalfCarry() != tc.wantHalf || r.Overflow() != tc.wantOverflow || !r.Subtract() {
			t.Errorf("SUB %02X-%02X: A=%02X F=%08b", tc.a, tc.val, r.A(), r.F())
		}
	}
}

func TestDAA(t *testing.T) {
	tests := []struct {
		a, f  uint8
		wantA uint8
		wantC bool
	}{
		{0x0A, 0, 0x10, false},
		{0x9A, 0, 0x00, true},
		{0x15, FlagN, 0x15, false},
		{0x0F, FlagN | FlagH, 0x09, false},
	}
	for _, tc := range tests {
		c, _ := newTestCPU(t)
		c.regs.SetA(tc.a)
		c.regs.SetF(tc.f)
		c.daa()
		if c.regs.A() != tc.wantA || c.regs.Carry() != tc.wantC {
			t.Errorf("DAA A=%02X F=%02X: got A=%02X C=%v, want A=%02X C=%v",
				tc.a, tc.f, c.regs.A(), c.regs.Carry(), tc.wantA, tc.wantC)
		}
		if c.regs.Parity() != (ParityTable[c.regs.A()] == 1) {
			t.Errorf("DAA A=%02X: parity flag wrong", tc.a)
		}
	}
}

func TestAdd16Flags(t *testing.T) {
	c, _ := newTestCPU(t)
	c.regs.HL.Set(0x0FFF)
	c.regs.SetF(FlagZ | FlagS | FlagP)
	c.add16(&c.regs.HL, 0x0001)
	requireU16(t, "HL", c.regs.HL.Word(), 0x1000)
	if !c.regs.HalfCarry() || c.regs.Carry() {
		t.Errorf("ADD HL: F=%08b, want H only", c.regs.F())
	}
	if !c.regs.Zero() || !c.regs.Sign() || !c.regs.Parity() {
		t.Errorf("ADD HL must keep S, Z and P/V: F=%08b", c.regs.F())
	}
	requireU16(t, "WZ", c.regs.WZ.Word(), 0x1000)

	c.regs.HL.Set(0x8000)
	c.sbc16(0x0001)
	requireU16(t, "HL", c.regs.HL.Word(), 0x7FFF)
	if !c.regs.Overflow() || c.regs.Carry() || !c.regs.Subtract() {
		t.Errorf("SBC HL: F=%08b", c.regs.F())
	}
}

// INC and DEC agree with ADD 1 and SUB 1 on every flag but carry, which they
// leave alone.
func TestIncDecMatchAddSub(t *testing.T) {
	c, _ := newTestCPU(t)
	const mask = ^FlagC
	for i := 0; i < 256; i++ {
		v := uint8(i)
		for _, carry := range []uint8{0, FlagC} {
			c.regs.SetF(carry)
			got := c.inc8(v)
			gotF := c.regs.F()
			c.regs.SetA(v)
			c.add8(1)
			if got != c.regs.A() || gotF&mask != c.regs.F()&mask || gotF&FlagC != carry {
				t.Errorf("INC %02X: %02X F=%08b, ADD gives %02X F=%08b", v, got, gotF, c.regs.A(), c.regs.F())
			}

			c.regs.SetF(carry)
			got = c.dec8(v)
			gotF = c.regs.F()
			c.regs.SetA(v)
			c.sub8(1)
			if got != c.regs.A() || gotF&mask != c.regs.F()&mask || gotF&FlagC != carry {
				t.Errorf("DEC %02X: %02X F=%08b, SUB gives %02X F=%08b", v, got, gotF, c.regs.A(), c.regs.F())
			}
		}
	}
}
