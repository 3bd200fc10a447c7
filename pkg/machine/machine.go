// Package machine is a minimal computer around a Z80 core: flat 64K memory
// with an optional write-protected ROM window, I/O port handlers, a clock, the
// 50 Hz frame interrupt and the Next register ports. It is the bus the command
// line tools, the runner and the scripting layer drive the core through.
package machine

import (
	"context"

	"github.com/oisee/z80core/pkg/clock"
	"github.com/oisee/z80core/pkg/cpu"
)

const (
	// FrameCycles is the length of a 48K frame in 3.5 MHz cycles: 312 lines
	// of 224 cycles.
	FrameCycles = 312 * 224

	// FrameIRQCycles is how long the frame interrupt line stays asserted.
	FrameIRQCycles = 32

	// floating bus value returned by unhandled ports
	floating = 0xFF
)

// Next registers with behaviour behind them. The rest read back what was
// last written.
const (
	NextRegReset            = 0x02
	NextRegCPUSpeed         = 0x07
	NextRegInterruptControl = 0xC0
	NextRegNMIReturnLo      = 0xC2
	NextRegNMIReturnHi      = 0xC3
)

// Config selects the optional hardware.
type Config struct {
	Speed clock.Speed

	// Frame enables the frame interrupt.
	Frame bool

	// Quiet stops the core logging.
	Quiet bool

	// Start is the program counter at power-on.
	Start uint16
}

type port struct {
	in  func(port uint16) uint8
	out func(port uint16, value uint8)
}

// Machine implements cpu.Bus.
type Machine struct {
	cpu     *cpu.CPU
	harness *cpu.Harness
	clock   *clock.Clock

	mem          [0x10000]uint8
	rom          bool
	romLo, romHi uint16

	ports      map[uint16]port
	nextSelect uint8
	nextRegs   [256]uint8
	hardReset  bool
	multiface  int

	frame        bool
	frames       int
	nextFrame    uint64 // master tick of the next frame interrupt
	irqRemaining int
}

// New creates a machine with a core in its power-on state.
func New(cfg Config) *Machine {
	m := &Machine{
		clock:     clock.New(cfg.Speed),
		ports:     make(map[uint16]port),
		frame:     cfg.Frame,
		nextFrame: FrameCycles * clock.Speed3MHz.Divider(),
		hardReset: true,
	}
	m.cpu, m.harness = cpu.NewHarness(m, cpu.Config{
		Multiface: func() { m.multiface++ },
		Quiet:     cfg.Quiet,
		Start:     cfg.Start,
		Stackless: nmiReturn{m},
	})
	return m
}

// CPU returns the core.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Clock returns the time base.
func (m *Machine) Clock() *clock.Clock {
	return m.clock
}

// Read implements cpu.Bus.
func (m *Machine) Read(addr uint16) uint8 {
	return m.mem[addr]
}

// Write implements cpu.Bus. Writes inside the ROM window are dropped.
func (m *Machine) Write(addr uint16, value uint8) {
	if m.rom && addr >= m.romLo && addr <= m.romHi {
		return
	}
	m.mem[addr] = value
}

// In implements cpu.Bus. Ports match on the full 16-bit address.
func (m *Machine) In(addr uint16) uint8 {
	switch addr {
	case cpu.NextRegSelectPort:
		return m.nextSelect
	case cpu.NextRegDataPort:
		return m.NextReg(m.nextSelect)
	}
	if p, ok := m.ports[addr]; ok && p.in != nil {
		return p.in(addr)
	}
	return floating
}

// Out implements cpu.Bus.
func (m *Machine) Out(addr uint16, value uint8) {
	switch addr {
	case cpu.NextRegSelectPort:
		m.nextSelect = value
		return
	case cpu.NextRegDataPort:
		m.writeNextReg(m.nextSelect, value)
		return
	}
	if p, ok := m.ports[addr]; ok && p.out != nil {
		p.out(addr, value)
	}
}

// Tick implements cpu.Bus. It advances the clock and drives the frame
// interrupt line.
func (m *Machine) Tick(cycles int) {
	m.clock.Run(cycles)

	if m.irqRemaining > 0 {
		m.irqRemaining -= cycles
		if m.irqRemaining <= 0 {
			m.cpu.DeassertIRQ(cpu.IRQFrame)
		}
	}

	// frames are fixed in real time, so count them in master ticks
	if m.frame && m.clock.Ticks() >= m.nextFrame {
		m.nextFrame += FrameCycles * clock.Speed3MHz.Divider()
		m.frames++
		m.cpu.AssertIRQ(cpu.IRQFrame)
		m.irqRemaining = FrameIRQCycles
	}
}

// Load copies data into memory at addr, wrapping at the top of the address
// space. It ignores ROM protection.
func (m *Machine) Load(addr uint16, data []byte) {
	for _, b := range data {
		m.mem[addr] = b
		addr++
	}
}

// SetROM write-protects lo to hi inclusive.
func (m *Machine) SetROM(lo, hi uint16) {
	m.rom, m.romLo, m.romHi = true, lo, hi
}

// Port installs handlers for one port address. Either handler may be nil.
func (m *Machine) Port(addr uint16, in func(port uint16) uint8, out func(port uint16, value uint8)) {
	m.ports[addr] = port{in: in, out: out}
}

// Multiface returns how many times the Multiface has been activated by its
// NMI.
func (m *Machine) Multiface() int {
	return m.multiface
}

// NextReg reads Next register n as the data port would.
func (m *Machine) NextReg(n uint8) uint8 {
	switch n {
	case NextRegReset:
		v := uint8(0x01)
		if m.hardReset {
			v = 0x02
		}
		nmi := m.cpu.NMIActive()
		if nmi.Has(cpu.RequestNMIMultiface) {
			v |= 0x08
		}
		if nmi.Has(cpu.RequestNMIDivMMC) {
			v |= 0x04
		}
		return v
	case NextRegCPUSpeed:
		s := uint8(m.clock.Speed())
		return s<<4 | s
	}
	return m.nextRegs[n]
}

func (m *Machine) writeNextReg(n, v uint8) {
	switch n {
	case NextRegReset:
		if v&0x03 != 0 {
			m.hardReset = v&0x02 != 0
			m.cpu.RequestReset()
			return
		}
		if v&0x08 != 0 {
			m.cpu.AssertNMI(cpu.NMIMultiface)
		}
		if v&0x04 != 0 {
			m.cpu.AssertNMI(cpu.NMIDivMMC)
		}
	case NextRegCPUSpeed:
		m.clock.SetSpeed(clock.Speed(v & 0x03))
	default:
		m.nextRegs[n] = v
	}
}

// nmiReturn is the stackless NMI mode, switched by bit 3 of the interrupt
// control register, with the return address in C2h/C3h.
type nmiReturn struct {
	m *Machine
}

func (r nmiReturn) Enabled() bool {
	return r.m.nextRegs[NextRegInterruptControl]&0x08 != 0
}

func (r nmiReturn) SaveReturn(pc uint16) {
	r.m.nextRegs[NextRegNMIReturnLo] = uint8(pc)
	r.m.nextRegs[NextRegNMIReturnHi] = uint8(pc >> 8)
}

func (r nmiReturn) Return() uint16 {
	return uint16(r.m.nextRegs[NextRegNMIReturnHi])<<8 | uint16(r.m.nextRegs[NextRegNMIReturnLo])
}

// EditRegisters changes the core's register file between steps. It is for
// loaders, scripts and tests; peripherals only raise requests.
func (m *Machine) EditRegisters(fn func(r *cpu.Registers)) {
	m.harness.Edit(fn)
}

// Frames returns the number of frame interrupts raised.
func (m *Machine) Frames() int {
	return m.frames
}

// Step runs one core step.
func (m *Machine) Step() error {
	return m.cpu.Step()
}

// Run steps the core until steps have run, the core faults or ctx is done.
// A steps value of zero or less runs without limit. The step that faults is
// not counted.
func (m *Machine) Run(ctx context.Context, steps int) (int, error) {
	for n := 0; steps <= 0 || n < steps; n++ {
		if n&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		if err := m.cpu.Step(); err != nil {
			return n, err
		}
	}
	return steps, nil
}
