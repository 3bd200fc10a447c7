package inst

// Info holds static metadata for one table slot.
//
// Mnemonic is a template. Operand placeholders are expanded by Decode in the
// order the operand bytes follow the opcode:
//
//	%n  8-bit immediate
//	%w  16-bit immediate, low byte first
//	%W  16-bit immediate, high byte first (PUSH nn on the Z80N)
//	%e  relative jump target
//	%d  signed index displacement, rendered with its sign
type Info struct {
	Mnemonic string
	TStates  int // Clock cycles; for branches and repeats, when taken
	Alt      int // Clock cycles when not taken or on the last repeat, 0 if fixed
	Prefix   bool
}

// Defined reports whether the slot holds an instruction or a prefix.
func (i Info) Defined() bool {
	return i.Mnemonic != "" || i.Prefix
}

// Operands returns the number of operand bytes following the opcode.
func (i Info) Operands() int {
	n := 0
	for j := 0; j+1 < len(i.Mnemonic); j++ {
		if i.Mnemonic[j] != '%' {
			continue
		}
		switch i.Mnemonic[j+1] {
		case 'n', 'e', 'd':
			n++
		case 'w', 'W':
			n += 2
		}
	}
	return n
}

// Opcode tables, indexed by the byte after any prefix. DDCB and FDCB are
// indexed by the fourth byte, after the displacement.
var (
	Base [256]Info
	CB   [256]Info
	ED   [256]Info
	DD   [256]Info
	FD   [256]Info
	DDCB [256]Info
	FDCB [256]Info
)

var (
	r8   = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rp   = [4]string{"BC", "DE", "HL", "SP"}
	rp2  = [4]string{"BC", "DE", "HL", "AF"}
	cc   = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	alu  = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}
	rot  = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
	misc = [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
)

func init() {
	initBase()
	initCB()
	initED()
	initIndex(&DD, "IX")
	initIndex(&FD, "IY")
	initIndexCB(&DDCB, "IX")
	initIndexCB(&FDCB, "IY")
}

func op(mnemonic string, tstates int) Info {
	return Info{Mnemonic: mnemonic, TStates: tstates}
}

func branch(mnemonic string, taken, notTaken int) Info {
	return Info{Mnemonic: mnemonic, TStates: taken, Alt: notTaken}
}

func initBase() {
	Base[0x00] = op("NOP", 4)
	Base[0x08] = op("EX AF, AF'", 4)
	Base[0x10] = branch("DJNZ %e", 13, 8)
	Base[0x18] = op("JR %e", 12)
	for y := 4; y < 8; y++ {
		Base[y<<3] = branch("JR "+cc[y-4]+", %e", 12, 7)
	}

	for p := 0; p < 4; p++ {
		Base[0x01|p<<4] = op("LD "+rp[p]+", %w", 10)
		Base[0x09|p<<4] = op("ADD HL, "+rp[p], 11)
		Base[0x03|p<<4] = op("INC "+rp[p], 6)
		Base[0x0B|p<<4] = op("DEC "+rp[p], 6)
	}

	Base[0x02] = op("LD (BC), A", 7)
	Base[0x0A] = op("LD A, (BC)", 7)
	Base[0x12] = op("LD (DE), A", 7)
	Base[0x1A] = op("LD A, (DE)", 7)
	Base[0x22] = op("LD (%w), HL", 16)
	Base[0x2A] = op("LD HL, (%w)", 16)
	Base[0x32] = op("LD (%w), A", 13)
	Base[0x3A] = op("LD A, (%w)", 13)

	for r := 0; r < 8; r++ {
		if r == 6 {
			Base[0x34] = op("INC (HL)", 11)
			Base[0x35] = op("DEC (HL)", 11)
			Base[0x36] = op("LD (HL), %n", 10)
			continue
		}
		Base[0x04|r<<3] = op("INC "+r8[r], 4)
		Base[0x05|r<<3] = op("DEC "+r8[r], 4)
		Base[0x06|r<<3] = op("LD "+r8[r]+", %n", 7)
	}
	for y := 0; y < 8; y++ {
		Base[0x07|y<<3] = op(misc[y], 4)
	}

	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			t := 4
			if dst == 6 || src == 6 {
				t = 7
			}
			Base[0x40|dst<<3|src] = op("LD "+r8[dst]+", "+r8[src], t)
		}
	}
	Base[0x76] = op("HALT", 4)

	for a := 0; a < 8; a++ {
		for src := 0; src < 8; src++ {
			t := 4
			if src == 6 {
				t = 7
			}
			Base[0x80|a<<3|src] = op(alu[a]+r8[src], t)
		}
		Base[0xC6|a<<3] = op(alu[a]+"%n", 7)
	}

	for y := 0; y < 8; y++ {
		Base[0xC0|y<<3] = branch("RET "+cc[y], 11, 5)
		Base[0xC2|y<<3] = op("JP "+cc[y]+", %w", 10)
		Base[0xC4|y<<3] = branch("CALL "+cc[y]+", %w", 17, 10)
		Base[0xC7|y<<3] = op("RST "+hex8(uint8(y<<3)), 11)
	}
	for p := 0; p < 4; p++ {
		Base[0xC1|p<<4] = op("POP "+rp2[p], 10)
		Base[0xC5|p<<4] = op("PUSH "+rp2[p], 11)
	}

	Base[0xC3] = op("JP %w", 10)
	Base[0xC9] = op("RET", 10)
	Base[0xCD] = op("CALL %w", 17)
	Base[0xD3] = op("OUT (%n), A", 11)
	Base[0xDB] = op("IN A, (%n)", 11)
	Base[0xD9] = op("EXX", 4)
	Base[0xE3] = op("EX (SP), HL", 19)
	Base[0xE9] = op("JP (HL)", 4)
	Base[0xEB] = op("EX DE, HL", 4)
	Base[0xF3] = op("DI", 4)
	Base[0xFB] = op("EI", 4)
	Base[0xF9] = op("LD SP, HL", 6)

	for _, p := range []int{0xCB, 0xDD, 0xED, 0xFD} {
		Base[p] = Info{Prefix: true}
	}
}

func initCB() {
	for code := 0; code < 256; code++ {
		group, n, r := code>>6, code>>3&7, code&7
		mem := r == 6
		var m string
		t := 8
		switch group {
		case 0:
			m = rot[n] + " " + r8[r]
		case 1:
			m = "BIT " + string(rune('0'+n)) + ", " + r8[r]
		case 2:
			m = "RES " + string(rune('0'+n)) + ", " + r8[r]
		case 3:
			m = "SET " + string(rune('0'+n)) + ", " + r8[r]
		}
		if mem {
			t = 15
			if group == 1 {
				t = 12
			}
		}
		CB[code] = op(m, t)
	}
}

func initED() {
	for r := 0; r < 8; r++ {
		if r == 6 {
			ED[0x70] = op("IN (C)", 12)
			ED[0x71] = op("OUT (C), 0", 12)
			continue
		}
		ED[0x40|r<<3] = op("IN "+r8[r]+", (C)", 12)
		ED[0x41|r<<3] = op("OUT (C), "+r8[r], 12)
	}
	for p := 0; p < 4; p++ {
		ED[0x42|p<<4] = op("SBC HL, "+rp[p], 15)
		ED[0x4A|p<<4] = op("ADC HL, "+rp[p], 15)
		ED[0x43|p<<4] = op("LD (%w), "+rp[p], 20)
		ED[0x4B|p<<4] = op("LD "+rp[p]+", (%w)", 20)
	}
	modes := [8]string{"0", "0", "1", "2", "0", "0", "1", "2"}
	for y := 0; y < 8; y++ {
		ED[0x44|y<<3] = op("NEG", 8)
		ED[0x45|y<<3] = op("RETN", 14)
		ED[0x46|y<<3] = op("IM "+modes[y], 8)
	}
	ED[0x4D] = op("RETI", 14)
	ED[0x47] = op("LD I, A", 9)
	ED[0x4F] = op("LD R, A", 9)
	ED[0x57] = op("LD A, I", 9)
	ED[0x5F] = op("LD A, R", 9)
	ED[0x67] = op("RRD", 18)
	ED[0x6F] = op("RLD", 18)

	block := [4]string{"LD", "CP", "IN", "OT"}
	for i, name := range block {
		inc, dec := name+"I", name+"D"
		if name == "OT" {
			inc, dec = "OUTI", "OUTD"
		}
		ED[0xA0|i] = op(inc, 16)
		ED[0xA8|i] = op(dec, 16)
		ED[0xB0|i] = branch(name+"IR", 21, 16)
		ED[0xB8|i] = branch(name+"DR", 21, 16)
	}

	// Z80N
	ED[0x23] = op("SWAPNIB", 8)
	ED[0x24] = op("MIRROR A", 8)
	ED[0x27] = op("TEST %n", 11)
	ED[0x28] = op("BSLA DE, B", 8)
	ED[0x29] = op("BSRA DE, B", 8)
	ED[0x2A] = op("BSRL DE, B", 8)
	ED[0x2B] = op("BSRF DE, B", 8)
	ED[0x2C] = op("BRLC DE, B", 8)
	ED[0x30] = op("MUL D, E", 8)
	for i, p := range [3]string{"HL", "DE", "BC"} {
		ED[0x31+i] = op("ADD "+p+", A", 8)
		ED[0x34+i] = op("ADD "+p+", %w", 16)
	}
	ED[0x8A] = op("PUSH %W", 23)
	ED[0x90] = op("OUTINB", 16)
	ED[0x91] = op("NEXTREG %n, %n", 20)
	ED[0x92] = op("NEXTREG %n, A", 17)
	ED[0x93] = op("PIXELDN", 8)
	ED[0x94] = op("PIXELAD", 8)
	ED[0x95] = op("SETAE", 8)
	ED[0x98] = op("JP (C)", 13)
	ED[0xA4] = op("LDIX", 16)
	ED[0xA5] = op("LDWS", 14)
	ED[0xAC] = op("LDDX", 16)
	ED[0xB4] = branch("LDIRX", 21, 16)
	ED[0xB7] = branch("LDPIRX", 21, 16)
	ED[0xBC] = branch("LDDRX", 21, 16)
}

// initIndex derives the DD or FD table from the base table: instructions
// that do not touch HL cost the 4 extra cycles of the prefix.
func initIndex(table *[256]Info, xy string) {
	for i, info := range Base {
		if info.Prefix {
			table[i] = info
			continue
		}
		info.TStates += 4
		if info.Alt != 0 {
			info.Alt += 4
		}
		table[i] = info
	}

	half := func(r int) string {
		switch r {
		case 4:
			return xy + "H"
		case 5:
			return xy + "L"
		}
		return r8[r]
	}
	mem := "(" + xy + "%d)"

	for p := 0; p < 4; p++ {
		src := rp[p]
		if p == 2 {
			src = xy
		}
		table[0x09|p<<4] = op("ADD "+xy+", "+src, 15)
	}
	table[0x21] = op("LD "+xy+", %w", 14)
	table[0x22] = op("LD (%w), "+xy, 20)
	table[0x2A] = op("LD "+xy+", (%w)", 20)
	table[0x23] = op("INC "+xy, 10)
	table[0x2B] = op("DEC "+xy, 10)
	for r := 4; r <= 5; r++ {
		table[0x04|r<<3] = op("INC "+half(r), 8)
		table[0x05|r<<3] = op("DEC "+half(r), 8)
		table[0x06|r<<3] = op("LD "+half(r)+", %n", 11)
	}
	table[0x34] = op("INC "+mem, 23)
	table[0x35] = op("DEC "+mem, 23)
	table[0x36] = op("LD "+mem+", %n", 19)

	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			code := 0x40 | dst<<3 | src
			switch {
			case code == 0x76:
			case src == 6:
				table[code] = op("LD "+r8[dst]+", "+mem, 19)
			case dst == 6:
				table[code] = op("LD "+mem+", "+r8[src], 19)
			case dst == 4 || dst == 5 || src == 4 || src == 5:
				table[code] = op("LD "+half(dst)+", "+half(src), 8)
			}
		}
	}
	for a := 0; a < 8; a++ {
		table[0x84|a<<3] = op(alu[a]+half(4), 8)
		table[0x85|a<<3] = op(alu[a]+half(5), 8)
		table[0x86|a<<3] = op(alu[a]+mem, 19)
	}

	table[0xE1] = op("POP "+xy, 14)
	table[0xE5] = op("PUSH "+xy, 15)
	table[0xE3] = op("EX (SP), "+xy, 23)
	table[0xE9] = op("JP ("+xy+")", 8)
	table[0xF9] = op("LD SP, "+xy, 10)
}

func initIndexCB(table *[256]Info, xy string) {
	mem := "(" + xy + "%d)"
	for code := 0; code < 256; code++ {
		group, n, r := code>>6, code>>3&7, code&7
		var m string
		switch group {
		case 0:
			m = rot[n] + " " + mem
		case 1:
			table[code] = op("BIT "+string(rune('0'+n))+", "+mem, 20)
			continue
		case 2:
			m = "RES " + string(rune('0'+n)) + ", " + mem
		case 3:
			m = "SET " + string(rune('0'+n)) + ", " + mem
		}
		if r != 6 {
			m += ", " + r8[r]
		}
		table[code] = op(m, 23)
	}
}

// hex8 formats a byte the way the assembler expects it: a trailing h, and a
// leading 0 when the first digit is a letter.
func hex8(v uint8) string {
	return string(appendHex8(nil, v))
}

func appendHex8(buf []byte, v uint8) []byte {
	const hex = "0123456789ABCDEF"
	if v >= 0xA0 {
		buf = append(buf, '0')
	}
	buf = append(buf, hex[v>>4], hex[v&0x0F], 'h')
	return buf
}

func appendHex16(buf []byte, v uint16) []byte {
	const hex = "0123456789ABCDEF"
	if v>>12 >= 0xA {
		buf = append(buf, '0')
	}
	buf = append(buf, hex[v>>12], hex[(v>>8)&0x0F], hex[(v>>4)&0x0F], hex[v&0x0F], 'h')
	return buf
}
