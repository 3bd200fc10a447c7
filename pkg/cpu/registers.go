package cpu

// InterruptMode selects how a maskable interrupt finds its service routine.
type InterruptMode uint8

const (
	IM0 InterruptMode = iota
	IM1
	IM2
)

// Registers is the Z80 register file.
//
// The primed pairs hold the shadow bank used by EX AF,AF' and EXX. IR holds
// the interrupt vector register in the high byte and the refresh register in
// the low byte. WZ is the internal address latch (MEMPTR); software never sees
// it directly but it leaks into the undocumented flags of a few instructions.
type Registers struct {
	AF, BC, DE, HL     Pair
	AF_, BC_, DE_, HL_ Pair

	IX, IY Pair
	SP, PC Pair
	WZ     Pair
	IR     Pair

	IFF1, IFF2 bool
	IM         InterruptMode
}

// reset puts the register file into its power-on state.
func (r *Registers) reset() {
	r.AF, r.AF_ = 0xFFFF, 0xFFFF
	r.BC, r.DE, r.HL = 0xFFFF, 0xFFFF, 0xFFFF
	r.BC_, r.DE_, r.HL_ = 0xFFFF, 0xFFFF, 0xFFFF
	r.IX, r.IY = 0xFFFF, 0xFFFF
	r.SP = 0xFFFF
	r.PC = 0
	r.WZ = 0
	r.IR = 0
	r.IFF1, r.IFF2 = false, false
	r.IM = IM0
}

func (r *Registers) A() uint8 { return r.AF.Hi() }
func (r *Registers) F() uint8 { return r.AF.Lo() }
func (r *Registers) B() uint8 { return r.BC.Hi() }
func (r *Registers) C() uint8 { return r.BC.Lo() }
func (r *Registers) D() uint8 { return r.DE.Hi() }
func (r *Registers) E() uint8 { return r.DE.Lo() }
func (r *Registers) H() uint8 { return r.HL.Hi() }
func (r *Registers) L() uint8 { return r.HL.Lo() }
func (r *Registers) I() uint8 { return r.IR.Hi() }
func (r *Registers) R() uint8 { return r.IR.Lo() }

func (r *Registers) SetA(v uint8) { r.AF.SetHi(v) }
func (r *Registers) SetF(v uint8) { r.AF.SetLo(v) }
func (r *Registers) SetB(v uint8) { r.BC.SetHi(v) }
func (r *Registers) SetC(v uint8) { r.BC.SetLo(v) }
func (r *Registers) SetD(v uint8) { r.DE.SetHi(v) }
func (r *Registers) SetE(v uint8) { r.DE.SetLo(v) }
func (r *Registers) SetH(v uint8) { r.HL.SetHi(v) }
func (r *Registers) SetL(v uint8) { r.HL.SetLo(v) }
func (r *Registers) SetI(v uint8) { r.IR.SetHi(v) }
func (r *Registers) SetR(v uint8) { r.IR.SetLo(v) }

// Flag reports whether all bits of mask are set in F.
func (r *Registers) Flag(mask uint8) bool {
	return r.F()&mask == mask
}

// SetFlag sets or clears the bits of mask in F.
func (r *Registers) SetFlag(mask uint8, on bool) {
	if on {
		r.SetF(r.F() | mask)
	} else {
		r.SetF(r.F() &^ mask)
	}
}

func (r *Registers) Sign() bool      { return r.Flag(FlagS) }
func (r *Registers) Zero() bool      { return r.Flag(FlagZ) }
func (r *Registers) Bit5() bool      { return r.Flag(Flag5) }
func (r *Registers) HalfCarry() bool { return r.Flag(FlagH) }
func (r *Registers) Bit3() bool      { return r.Flag(Flag3) }
func (r *Registers) Parity() bool    { return r.Flag(FlagP) }
func (r *Registers) Overflow() bool  { return r.Flag(FlagV) }
func (r *Registers) Subtract() bool  { return r.Flag(FlagN) }
func (r *Registers) Carry() bool     { return r.Flag(FlagC) }

// ExchangeAF swaps AF with the shadow AF'.
func (r *Registers) ExchangeAF() {
	r.AF, r.AF_ = r.AF_, r.AF
}

// Exchange swaps BC, DE and HL with their shadow pairs.
func (r *Registers) Exchange() {
	r.BC, r.BC_ = r.BC_, r.BC
	r.DE, r.DE_ = r.DE_, r.DE
	r.HL, r.HL_ = r.HL_, r.HL
}

// incrementR advances the low seven bits of the refresh register, leaving
// bit 7 as last written by LD R,A.
func (r *Registers) incrementR() {
	v := r.R()
	r.SetR(v&0x80 | (v+1)&0x7F)
}
