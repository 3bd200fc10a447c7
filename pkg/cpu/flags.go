package cpu

import "math/bits"

// Bits of F. P and V are one bit, read as parity after logical operations
// and as overflow after arithmetic. Bits 5 and 3 are undocumented copies of
// result or operand bits.
const (
	FlagC uint8 = 1 << iota
	FlagN
	FlagP
	Flag3
	FlagH
	Flag5
	FlagZ
	FlagS

	FlagV = FlagP
)

// Lookup tables shared by every handler. They are filled in by init and
// never written again.
var (
	// Sz53Table is the S, Z, 5 and 3 bits of F for a result byte.
	Sz53Table [256]uint8
	// Sz53pTable adds the parity bit, for logical and rotate results.
	Sz53pTable [256]uint8
	// ParityTable is 1 where the byte has an even number of set bits.
	ParityTable [256]uint8

	// HalfcarryAddTable and friends are indexed by HalfcarryIndex or
	// OverflowIndex: one bit from each operand and one from the unwrapped
	// result. lookup8 and lookup16 pack both indexes into one byte.
	HalfcarryAddTable = [8]uint8{0, FlagH, FlagH, FlagH, 0, 0, 0, FlagH}
	HalfcarrySubTable = [8]uint8{0, 0, FlagH, 0, FlagH, 0, FlagH, FlagH}
	OverflowAddTable  = [8]uint8{0, 0, 0, FlagV, FlagV, 0, 0, 0}
	OverflowSubTable  = [8]uint8{0, FlagV, 0, 0, 0, 0, FlagV, 0}
)

func init() {
	for i := range 256 {
		v := uint8(i)
		ParityTable[i] = uint8(bits.OnesCount8(v)&1) ^ 1
		Sz53Table[i] = v & (FlagS | Flag5 | Flag3)
		if v == 0 {
			Sz53Table[i] |= FlagZ
		}
		Sz53pTable[i] = Sz53Table[i] | ParityTable[i]*FlagP
	}
}

// HalfcarryIndex builds the table index from bit 3 of both operands and the
// result.
func HalfcarryIndex(op1, op2 uint8, result uint16) uint8 {
	return (op1&0x08)>>3 | (op2&0x08)>>2 | uint8(result&0x08)>>1
}

// OverflowIndex builds the table index from bit 7 of both operands and the
// result. The result must be passed unwrapped.
func OverflowIndex(op1, op2 uint8, result uint16) uint8 {
	return (op1&0x80)>>7 | (op2&0x80)>>6 | uint8(result&0x80)>>5
}

// lookup16 packs the bit-11 (low nibble) and bit-15 (high nibble) indexes of
// a 16-bit operation into one byte, the way the 8-bit ops pack bits 3 and 7.
func lookup16(op1, op2 uint16, result uint32) uint8 {
	return uint8((uint32(op1)&0x8800)>>11 | (uint32(op2)&0x8800)>>10 | (result&0x8800)>>9)
}

// lookup8 is the 8-bit equivalent of lookup16: half-carry index in the low
// three bits, overflow index in bits 4-6.
func lookup8(op1, op2 uint8, result uint16) uint8 {
	return (op1&0x88)>>3 | (op2&0x88)>>2 | uint8((result&0x88)>>1)
}
