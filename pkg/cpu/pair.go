package cpu

// Pair is a 16-bit register addressable as two 8-bit halves. The high byte is
// the one stored at the higher address when a pair goes through the bus.
type Pair uint16

// Hi returns the high byte.
func (p Pair) Hi() uint8 {
	return uint8(p >> 8)
}

// Lo returns the low byte.
func (p Pair) Lo() uint8 {
	return uint8(p)
}

// Word returns the full 16-bit value.
func (p Pair) Word() uint16 {
	return uint16(p)
}

// SetHi replaces the high byte.
func (p *Pair) SetHi(v uint8) {
	*p = Pair(uint16(*p)&0x00FF | uint16(v)<<8)
}

// SetLo replaces the low byte.
func (p *Pair) SetLo(v uint8) {
	*p = Pair(uint16(*p)&0xFF00 | uint16(v))
}

// Set replaces the full 16-bit value.
func (p *Pair) Set(v uint16) {
	*p = Pair(v)
}

// MakePair joins two bytes into a pair.
func MakePair(hi, lo uint8) Pair {
	return Pair(uint16(hi)<<8 | uint16(lo))
}
