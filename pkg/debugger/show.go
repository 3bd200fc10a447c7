package debugger

import (
	"fmt"
	"strings"

	"github.com/oisee/z80core/pkg/inst"
)

// widest encoding: prefix, CB, displacement, opcode
const maxInsnBytes = 4

// disassemble prints one instruction and returns the address after it.
func (d *Debugger) disassemble(addr uint16) uint16 {
	in := inst.Decode(d.m.Read, addr)
	var b strings.Builder
	fmt.Fprintf(&b, "%04X  ", addr)
	for _, v := range in.Bytes {
		fmt.Fprintf(&b, "%02X ", v)
	}
	b.WriteString(strings.Repeat("   ", maxInsnBytes-len(in.Bytes)))
	b.WriteString(in.Text)
	fmt.Fprintln(d.out, b.String())
	return addr + uint16(in.Len())
}

func (d *Debugger) registers() {
	r := d.m.CPU().Registers()
	var flags [8]byte
	for i := range flags {
		flags[i] = '.'
		if r.F()&(0x80>>i) != 0 {
			flags[i] = '*'
		}
	}
	fmt.Fprintln(d.out, " PC   SP   AF   BC   DE   HL   IX   IY   AF'  BC'  DE'  HL' SZ?H?PNC IM  IR  IFF1 IFF2")
	fmt.Fprintf(d.out, "%04X %04X %04X %04X %04X %04X %04X %04X %04X %04X %04X %04X %s %02x %04X %4d %4d\n",
		r.PC.Word(), r.SP.Word(), r.AF.Word(), r.BC.Word(), r.DE.Word(), r.HL.Word(),
		r.IX.Word(), r.IY.Word(), r.AF_.Word(), r.BC_.Word(), r.DE_.Word(), r.HL_.Word(),
		flags[:], r.IM, r.IR.Word(), b2i(r.IFF1), b2i(r.IFF2))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// memory prints 256 bytes from memAddr and advances it.
func (d *Debugger) memory() {
	var ascii [16]byte
	for row := 0; row < 16; row++ {
		fmt.Fprintf(d.out, "%04X  ", d.memAddr)
		for i := range ascii {
			v := d.m.Read(d.memAddr)
			d.memAddr++
			fmt.Fprintf(d.out, "%02X ", v)
			if v < ' ' || v > '~' {
				v = '.'
			}
			ascii[i] = v
		}
		fmt.Fprintf(d.out, " %s\n", ascii[:])
	}
}

func (d *Debugger) nextRegisters() {
	fmt.Fprintln(d.out, "   x0 x1 x2 x3 x4 x5 x6 x7 x8 x9 xA xB xC xD xE xF")
	for hi := 0; hi < 256; hi += 16 {
		fmt.Fprintf(d.out, "%Xx ", hi>>4)
		for lo := 0; lo < 16; lo++ {
			fmt.Fprintf(d.out, "%02X ", d.m.NextReg(uint8(hi+lo)))
		}
		fmt.Fprintln(d.out)
	}
}
