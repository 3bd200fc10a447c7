// Package inst describes the Z80 and Z80N instruction set: a catalog of every
// opcode table with mnemonics, operand layout and timing, and a disassembler
// built on it.
package inst

// Reader reads one byte of the address space being decoded.
type Reader func(addr uint16) uint8

// Instruction is one decoded instruction.
type Instruction struct {
	Addr  uint16
	Bytes []uint8 // Raw encoding, prefixes and operands included
	Info  Info
	Text  string // Assembly text with operands filled in
}

// Len returns the encoded length in bytes.
func (i Instruction) Len() int {
	return len(i.Bytes)
}

// Defined reports whether the bytes decode to an instruction the core runs.
func (i Instruction) Defined() bool {
	return i.Info.Mnemonic != ""
}

// Decode reads the instruction at addr.
//
// An undefined ED opcode decodes to a two-byte DB pseudo instruction. A DD or
// FD prefix followed by another prefix decodes to a one-byte DB, since the
// core lets the later prefix take over.
func Decode(read Reader, addr uint16) Instruction {
	in := Instruction{Addr: addr}
	pc := addr
	next := func() uint8 {
		b := read(pc)
		pc++
		in.Bytes = append(in.Bytes, b)
		return b
	}

	b := next()
	var info Info
	var disp *uint8
	switch b {
	case 0xCB:
		info = CB[next()]
	case 0xED:
		info = ED[next()]
	case 0xDD, 0xFD:
		table, bits := &DD, &DDCB
		if b == 0xFD {
			table, bits = &FD, &FDCB
		}
		switch read(pc) {
		case 0xDD, 0xED, 0xFD:
			return db(in)
		case 0xCB:
			next()
			d := next()
			disp = &d
			info = bits[next()]
		default:
			info = table[next()]
		}
	default:
		info = Base[b]
	}
	if info.Mnemonic == "" {
		return db(in)
	}

	in.Info = info
	in.Text = expand(info.Mnemonic, next, disp, func() uint16 { return pc })
	return in
}

// expand fills operand placeholders. For DD CB / FD CB the displacement was
// read ahead of the opcode and is passed in; everywhere else it is the next
// operand byte.
func expand(tmpl string, next func() uint8, disp *uint8, pc func() uint16) string {
	buf := make([]byte, 0, len(tmpl)+8)
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' || i+1 == len(tmpl) {
			buf = append(buf, tmpl[i])
			continue
		}
		i++
		switch tmpl[i] {
		case 'n':
			buf = appendHex8(buf, next())
		case 'w':
			lo := next()
			hi := next()
			buf = appendHex16(buf, uint16(hi)<<8|uint16(lo))
		case 'W':
			hi := next()
			lo := next()
			buf = appendHex16(buf, uint16(hi)<<8|uint16(lo))
		case 'e':
			d := next()
			buf = appendHex16(buf, pc()+uint16(int16(int8(d))))
		case 'd':
			if disp != nil {
				buf = appendDisplacement(buf, *disp)
			} else {
				buf = appendDisplacement(buf, next())
			}
		}
	}
	return string(buf)
}

func appendDisplacement(buf []byte, d uint8) []byte {
	if int8(d) < 0 {
		return appendHex8(append(buf, '-'), uint8(-int8(d)))
	}
	return appendHex8(append(buf, '+'), d)
}

func db(in Instruction) Instruction {
	buf := []byte("DB ")
	for i, b := range in.Bytes {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = appendHex8(buf, b)
	}
	in.Text = string(buf)
	in.Info = Info{}
	return in
}

// Disassemble returns the assembly text of the instruction at addr and its
// length.
func Disassemble(read Reader, addr uint16) (string, int) {
	in := Decode(read, addr)
	return in.Text, in.Len()
}
