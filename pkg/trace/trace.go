// Package trace writes one line per executed instruction: its address and
// disassembly followed by the main registers and the flags after it ran.
//
//	0000h LD A, 7Fh        A=7Fh BC=FFFFh DE=FFFFh HL=FFFFh F=SZ-H-P/VNC
//
// A flag letter in capitals is set, in lower case clear.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/inst"
	"golang.org/x/term"
)

const (
	ansiAddr  = "\033[36m"
	ansiSet   = "\033[1;33m"
	ansiReset = "\033[0m"
)

// Tracer writes trace lines to an output.
type Tracer struct {
	out    io.Writer
	colour bool
}

// New returns a tracer writing to out. Colour is used when out is a
// terminal.
func New(out io.Writer) *Tracer {
	t := &Tracer{out: out}
	if f, ok := out.(*os.File); ok {
		t.colour = term.IsTerminal(int(f.Fd()))
	}
	return t
}

// SetColour forces colour output on or off.
func (t *Tracer) SetColour(on bool) {
	t.colour = on
}

// Trace writes the line for the instruction that started at addr, given the
// registers after it ran.
func (t *Tracer) Trace(addr uint16, text string, regs cpu.Registers) error {
	var err error
	if t.colour {
		_, err = fmt.Fprintf(t.out, "%s%04Xh%s %-16s A=%02Xh BC=%04Xh DE=%04Xh HL=%04Xh F=%s\n",
			ansiAddr, addr, ansiReset, text, regs.A(), regs.BC.Word(), regs.DE.Word(), regs.HL.Word(), t.flags(regs))
	} else {
		_, err = io.WriteString(t.out, Line(addr, text, regs)+"\n")
	}
	return err
}

// Line formats one trace line without colour.
func Line(addr uint16, text string, regs cpu.Registers) string {
	return fmt.Sprintf("%04Xh %-16s A=%02Xh BC=%04Xh DE=%04Xh HL=%04Xh F=%s",
		addr, text, regs.A(), regs.BC.Word(), regs.DE.Word(), regs.HL.Word(), Flags(regs.F()))
}

var flagLetters = [...]struct {
	mask     uint8
	set, clr string
}{
	{cpu.FlagS, "S", "s"},
	{cpu.FlagZ, "Z", "z"},
	{0, "-", "-"},
	{cpu.FlagH, "H", "h"},
	{0, "-", "-"},
	{cpu.FlagP, "P/V", "p/v"},
	{cpu.FlagN, "N", "n"},
	{cpu.FlagC, "C", "c"},
}

// Flags renders the documented flags of f.
func Flags(f uint8) string {
	s := make([]byte, 0, 12)
	for _, l := range flagLetters {
		if l.mask != 0 && f&l.mask != 0 {
			s = append(s, l.set...)
		} else {
			s = append(s, l.clr...)
		}
	}
	return string(s)
}

func (t *Tracer) flags(regs cpu.Registers) string {
	f := regs.F()
	s := ""
	for _, l := range flagLetters {
		if l.mask != 0 && f&l.mask != 0 {
			s += ansiSet + l.set + ansiReset
		} else {
			s += l.clr
		}
	}
	return s
}

// Stepper is the part of a machine Step needs.
type Stepper interface {
	Step() error
	CPU() *cpu.CPU
	Read(addr uint16) uint8
}

// Step decodes the instruction at PC, steps m once and traces it. The bytes
// are decoded first since the instruction may overwrite them. Steps that
// service an interrupt or a reset are traced under the name of the service.
func (t *Tracer) Step(m Stepper) error {
	c := m.CPU()
	addr := c.PC()
	text, _ := inst.Disassemble(m.Read, addr)
	if svc := c.Next(); svc != cpu.ServiceNone {
		text = "<" + svc.String() + ">"
	} else if c.Halted() {
		text = "HALT"
	}
	if err := m.Step(); err != nil {
		return err
	}
	return t.Trace(addr, text, c.Registers())
}
