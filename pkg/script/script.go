// Package script drives a machine from Lua. A scenario loads code, steps
// the core, raises interrupts and checks the results with Lua's own assert:
//
//	load(0x8000, {0x3E, 0x2A, 0x76})  -- LD A,2Ah; HALT
//	reg("pc", 0x8000)
//	step(2)
//	assert(reg("a") == 0x2A)
//
// The functions available are poke, peek, load, step, irq, nmi, reset, reg,
// cycles, pc, nextreg and print. A decode fault during step raises a Lua error
// carrying the fault text.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/machine"
	lua "github.com/yuin/gopher-lua"
)

// Script is a Lua state bound to one machine.
type Script struct {
	L   *lua.LState
	ctx context.Context
	m   *machine.Machine
	out io.Writer
}

// New creates a Lua state bound to m. print writes to out.
func New(ctx context.Context, m *machine.Machine, out io.Writer) *Script {
	s := &Script{L: lua.NewState(), ctx: ctx, m: m, out: out}
	s.L.SetContext(ctx)
	for name, fn := range map[string]lua.LGFunction{
		"poke":    s.poke,
		"peek":    s.peek,
		"load":    s.load,
		"step":    s.step,
		"irq":     s.irq,
		"nmi":     s.nmi,
		"reset":   s.reset,
		"reg":     s.reg,
		"cycles":  s.cycles,
		"pc":      s.pc,
		"nextreg": s.nextreg,
		"print":   s.print,
	} {
		s.L.SetGlobal(name, s.L.NewFunction(fn))
	}
	return s
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.L.Close()
}

// DoString runs Lua source.
func (s *Script) DoString(src string) error {
	if err := s.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// DoFile runs a Lua file.
func (s *Script) DoFile(path string) error {
	if err := s.L.DoFile(path); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile runs the scenario at path on m.
func RunFile(ctx context.Context, m *machine.Machine, path string, out io.Writer) error {
	s := New(ctx, m, out)
	defer s.Close()
	return s.DoFile(path)
}

// RunString runs scenario source on m.
func RunString(ctx context.Context, m *machine.Machine, src string, out io.Writer) error {
	s := New(ctx, m, out)
	defer s.Close()
	return s.DoString(src)
}

func checkAddr(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFFFF {
		L.ArgError(n, "address out of range")
	}
	return uint16(v)
}

func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFF {
		L.ArgError(n, "byte out of range")
	}
	return uint8(v)
}

// poke(addr, value) writes memory, ROM included.
func (s *Script) poke(L *lua.LState) int {
	s.m.Load(checkAddr(L, 1), []byte{checkByte(L, 2)})
	return 0
}

// peek(addr) reads memory.
func (s *Script) peek(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.Read(checkAddr(L, 1))))
	return 1
}

// load(addr, {bytes...})
func (s *Script) load(L *lua.LState) int {
	addr := checkAddr(L, 1)
	tbl := L.CheckTable(2)
	data := make([]byte, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || v < 0 || v > 0xFF {
			L.ArgError(2, fmt.Sprintf("element %d is not a byte", i))
		}
		data = append(data, uint8(v))
	}
	s.m.Load(addr, data)
	return 0
}

// step([n]) runs n steps, default 1, and returns how many ran.
func (s *Script) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 1 {
		L.ArgError(1, "step count must be positive")
	}
	ran, err := s.m.Run(s.ctx, n)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(ran))
	return 1
}

// irq(source [, on]) asserts or releases "frame" or "line".
func (s *Script) irq(L *lua.LState) int {
	var src cpu.IRQSource
	switch L.CheckString(1) {
	case "frame":
		src = cpu.IRQFrame
	case "line":
		src = cpu.IRQLine
	default:
		L.ArgError(1, `want "frame" or "line"`)
	}
	if L.OptBool(2, true) {
		s.m.CPU().AssertIRQ(src)
	} else {
		s.m.CPU().DeassertIRQ(src)
	}
	return 0
}

// nmi(source) latches "multiface" or "divmmc".
func (s *Script) nmi(L *lua.LState) int {
	var src cpu.NMISource
	switch L.CheckString(1) {
	case "multiface":
		src = cpu.NMIMultiface
	case "divmmc":
		src = cpu.NMIDivMMC
	default:
		L.ArgError(1, `want "multiface" or "divmmc"`)
	}
	s.m.CPU().AssertNMI(src)
	return 0
}

// reset() requests a reset; the next step services it.
func (s *Script) reset(L *lua.LState) int {
	s.m.CPU().RequestReset()
	return 0
}

type half struct {
	pair string
	hi   bool
}

var pairs = map[string]func(r *cpu.Registers) *cpu.Pair{
	"af":  func(r *cpu.Registers) *cpu.Pair { return &r.AF },
	"bc":  func(r *cpu.Registers) *cpu.Pair { return &r.BC },
	"de":  func(r *cpu.Registers) *cpu.Pair { return &r.DE },
	"hl":  func(r *cpu.Registers) *cpu.Pair { return &r.HL },
	"af'": func(r *cpu.Registers) *cpu.Pair { return &r.AF_ },
	"bc'": func(r *cpu.Registers) *cpu.Pair { return &r.BC_ },
	"de'": func(r *cpu.Registers) *cpu.Pair { return &r.DE_ },
	"hl'": func(r *cpu.Registers) *cpu.Pair { return &r.HL_ },
	"ix":  func(r *cpu.Registers) *cpu.Pair { return &r.IX },
	"iy":  func(r *cpu.Registers) *cpu.Pair { return &r.IY },
	"sp":  func(r *cpu.Registers) *cpu.Pair { return &r.SP },
	"pc":  func(r *cpu.Registers) *cpu.Pair { return &r.PC },
	"ir":  func(r *cpu.Registers) *cpu.Pair { return &r.IR },
	"wz":  func(r *cpu.Registers) *cpu.Pair { return &r.WZ },
}

var halves = map[string]half{
	"a": {"af", true}, "f": {"af", false},
	"b": {"bc", true}, "c": {"bc", false},
	"d": {"de", true}, "e": {"de", false},
	"h": {"hl", true}, "l": {"hl", false},
	"i": {"ir", true}, "r": {"ir", false},
	"ixh": {"ix", true}, "ixl": {"ix", false},
	"iyh": {"iy", true}, "iyl": {"iy", false},
}

// reg(name [, value]) reads a register, or writes it when a value is given.
// Names are the usual lower case register and pair names plus "im", "iff1"
// and "iff2".
func (s *Script) reg(L *lua.LState) int {
	name := strings.ToLower(L.CheckString(1))
	regs := s.m.CPU().Registers()
	set := L.GetTop() >= 2

	var v int
	switch name {
	case "im":
		if set {
			im := L.CheckInt(2)
			if im < 0 || im > 2 {
				L.ArgError(2, "interrupt mode must be 0, 1 or 2")
			}
			regs.IM = cpu.InterruptMode(im)
		}
		v = int(regs.IM)
	case "iff1", "iff2":
		f := &regs.IFF1
		if name == "iff2" {
			f = &regs.IFF2
		}
		if set {
			*f = L.CheckInt(2) != 0
		}
		if *f {
			v = 1
		}
	default:
		if h, ok := halves[name]; ok {
			p := pairs[h.pair](&regs)
			switch {
			case set && h.hi:
				p.SetHi(checkByte(L, 2))
			case set:
				p.SetLo(checkByte(L, 2))
			}
			v = int(p.Lo())
			if h.hi {
				v = int(p.Hi())
			}
			break
		}
		pair, ok := pairs[name]
		if !ok {
			L.ArgError(1, "unknown register "+name)
		}
		p := pair(&regs)
		if set {
			p.Set(checkAddr(L, 2))
		}
		v = int(p.Word())
	}

	if set {
		s.m.EditRegisters(func(r *cpu.Registers) { *r = regs })
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.CPU().Cycles()))
	return 1
}

func (s *Script) pc(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.CPU().PC()))
	return 1
}

// nextreg(n) reads back a Next register.
func (s *Script) nextreg(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.NextReg(checkByte(L, 1))))
	return 1
}

func (s *Script) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}
