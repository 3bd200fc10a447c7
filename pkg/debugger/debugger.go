// Package debugger is a line monitor for a machine. It stops the core at
// breakpoints and offers single stepping, stepping over calls, register,
// memory and Next register dumps and disassembly.
//
// Commands, addresses in hex:
//
//	h, ?         help
//	c [addr]     continue, optionally until addr
//	q            quit
//	r            registers
//	nr           Next registers
//	s            step one instruction
//	o            step over the instruction at PC
//	m [addr]     memory dump
//	d [addr]     disassemble
//	b addr...    add breakpoints
//	bl           list breakpoints
//	bd addr...   delete breakpoints
//
// An empty line repeats the previous command; m and d continue from where
// they stopped.
package debugger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oisee/z80core/pkg/inst"
	"github.com/oisee/z80core/pkg/machine"
)

// breakpoint slot 0 is reserved for "over" and "continue to"
const maxBreakpoints = 11

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("debugger: quit")

// ErrSyntax is returned by Exec for a line it cannot parse.
var ErrSyntax = errors.New("syntax error")

// LineReader supplies command lines. It returns io.EOF when input ends.
type LineReader interface {
	ReadLine() (string, error)
}

type breakpoint struct {
	set  bool
	addr uint16
}

// Debugger is a monitor attached to one machine.
type Debugger struct {
	m   *machine.Machine
	out io.Writer

	breakpoints [maxBreakpoints]breakpoint
	last        []string

	memAddr uint16
	disAddr uint16
}

// New attaches a monitor to m, writing to out.
func New(m *machine.Machine, out io.Writer) *Debugger {
	return &Debugger{m: m, out: out}
}

// Run is the monitor loop: show where the core is, read commands until one
// resumes execution, run until a breakpoint or fault, and repeat. It returns
// nil on quit or end of input.
func (d *Debugger) Run(ctx context.Context, lines LineReader) error {
	for {
		d.Enter()
		for resume := false; !resume; {
			line, err := lines.ReadLine()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			resume, err = d.Exec(line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(d.out, err)
			}
		}
		if err := d.resume(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintln(d.out, err)
		}
	}
}

// Enter shows the instruction at PC and clears the "over" breakpoint once
// it has been reached.
func (d *Debugger) Enter() {
	pc := d.m.CPU().PC()
	d.disassemble(pc)
	if bp := &d.breakpoints[0]; bp.set && bp.addr == pc {
		bp.set = false
	}
}

// resume runs the core until it reaches a breakpoint. The instruction at the
// current PC always runs, even if it has a breakpoint.
func (d *Debugger) resume(ctx context.Context) error {
	for n := 0; ; n++ {
		if n&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := d.m.Step(); err != nil {
			return err
		}
		if d.IsBreakpoint(d.m.CPU().PC()) {
			return nil
		}
	}
}

// IsBreakpoint reports whether execution stops at addr.
func (d *Debugger) IsBreakpoint(addr uint16) bool {
	for _, bp := range d.breakpoints {
		if bp.set && bp.addr == addr {
			return true
		}
	}
	return false
}

// Exec runs one command line. It reports whether the machine should resume.
func (d *Debugger) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		if d.last == nil {
			return false, nil
		}
		fields = d.last
	}

	args := make([]uint16, 0, len(fields)-1)
	for _, f := range fields[1:] {
		a, err := parseAddr(f)
		if err != nil {
			return false, ErrSyntax
		}
		args = append(args, a)
	}

	cmd := fields[0]
	d.last = fields
	switch cmd {
	case "h", "?":
		d.help()
	case "c":
		if len(args) > 0 {
			d.breakpoints[0] = breakpoint{set: true, addr: args[0]}
		}
		return true, nil
	case "q":
		return false, ErrQuit
	case "r":
		d.registers()
	case "nr":
		d.nextRegisters()
	case "s":
		err := d.m.Step()
		d.disassemble(d.m.CPU().PC())
		return false, err
	case "o":
		pc := d.m.CPU().PC()
		in := inst.Decode(d.m.Read, pc)
		d.breakpoints[0] = breakpoint{set: true, addr: pc + uint16(in.Len())}
		return true, nil
	case "m":
		if len(args) > 0 {
			d.memAddr = args[0]
		}
		d.last = fields[:1]
		d.memory()
	case "d":
		if len(args) > 0 {
			d.disAddr = args[0]
		}
		d.last = fields[:1]
		for i := 0; i < 16; i++ {
			d.disAddr = d.disassemble(d.disAddr)
		}
	case "b":
		for _, a := range args {
			d.addBreakpoint(a)
		}
	case "bl":
		for _, bp := range d.breakpoints {
			if bp.set {
				fmt.Fprintf(d.out, "$%04X\n", bp.addr)
			}
		}
	case "bd":
		for _, a := range args {
			for i := range d.breakpoints {
				if d.breakpoints[i].set && d.breakpoints[i].addr == a {
					d.breakpoints[i].set = false
					break
				}
			}
		}
	default:
		d.last = nil
		return false, ErrSyntax
	}
	return false, nil
}

// addBreakpoint uses the first free user slot. Adding an existing address or
// adding to a full table does nothing.
func (d *Debugger) addBreakpoint(addr uint16) {
	for i := 1; i < maxBreakpoints; i++ {
		if bp := &d.breakpoints[i]; !bp.set || bp.addr == addr {
			*bp = breakpoint{set: true, addr: addr}
			return
		}
	}
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	s = strings.TrimSuffix(s, "h")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

const helpText = `h, ?        help
c [addr]    continue, optionally until addr
q           quit
r           registers
nr          Next registers
s           step
o           step over
m [addr]    memory
d [addr]    disassemble
b addr...   add breakpoints
bl          list breakpoints
bd addr...  delete breakpoints
`

func (d *Debugger) help() {
	io.WriteString(d.out, helpText)
}
