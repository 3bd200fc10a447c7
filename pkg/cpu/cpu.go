// Package cpu is a cycle-accurate Z80 (and Z80N) execution core.
//
// The core owns its register file and pending-request set. Everything else,
// memory, I/O ports and the clock, is reached through a Bus. Step executes
// exactly one instruction, or services exactly one reset, NMI or IRQ, and
// charges every bus access to the clock at the moment it happens.
package cpu

import (
	"github.com/oisee/z80core/pkg/logger"
)

// Config holds the optional collaborators of a core.
type Config struct {
	// Multiface is called each time an NMI raised by the Multiface source is
	// serviced, so the peripheral can page itself in.
	Multiface func()

	// Quiet stops the core from writing to the central logger.
	Quiet bool

	// Start is the program counter at power-on, for images entered away from
	// the reset vector. A serviced reset still restarts at 0000h.
	Start uint16

	// Stackless, if set and enabled, keeps the NMI return address out of
	// memory.
	Stackless StacklessNMI
}

// StacklessNMI is the Next's stackless NMI mode. While Enabled, NMI service
// hands the return address to SaveReturn instead of pushing it, and RETN
// jumps to Return instead of popping.
type StacklessNMI interface {
	Enabled() bool
	SaveReturn(pc uint16)
	Return() uint16
}

// CPU is one Z80 core. It is not safe for concurrent use; run independent
// cores on independent goroutines instead.
type CPU struct {
	regs Registers
	bus  Bus
	cfg  Config

	pending RequestSet

	// acceptDelay holds off IRQ acceptance for the instruction following EI.
	acceptDelay int

	halted bool
	fault  *DecodeFault
	cycles uint64

	// bytes fetched so far for the instruction in progress
	insnAddr uint16
	insn     []uint8

	// carried is set when a prefix ended the last Step with the M1 cycle of
	// the next prefix, carriedOp, already charged.
	carried   bool
	carriedOp uint8
}

// New creates a core in its power-on state. The bus is not touched until the
// first Step.
func New(bus Bus, cfg Config) *CPU {
	c := &CPU{bus: bus, cfg: cfg, insn: make([]uint8, 0, 4)}
	c.regs.reset()
	c.regs.PC.Set(cfg.Start)
	return c
}

// Step runs one instruction, or services one pending request, and returns
// a *DecodeFault if the instruction could not be decoded. A faulted core
// keeps returning the same fault without touching the bus until a reset
// request is serviced.
func (c *CPU) Step() error {
	svc := Resolve(c.pending, c.regs.IFF1, c.acceptDelay)

	if svc == ServiceReset {
		c.serviceReset()
		return nil
	}

	if c.fault != nil {
		return c.fault
	}

	switch svc {
	case ServiceNMI:
		c.serviceNMI()
		return nil
	case ServiceIRQ:
		c.serviceIRQ()
		return nil
	}

	if c.acceptDelay > 0 {
		c.acceptDelay--
	}

	if c.halted {
		// HALT keeps running NOP cycles, refresh included, until an interrupt
		c.regs.incrementR()
		c.tick(4)
		return nil
	}

	c.insnAddr = c.regs.PC.Word()
	c.insn = c.insn[:0]
	var op uint8
	if c.carried {
		c.carried = false
		op = c.carriedOp
		c.regs.PC++
		c.record(op)
	} else {
		op = c.fetchOpcode()
	}
	baseOps[op](c)

	if c.fault != nil {
		return c.fault
	}
	return nil
}

// Next reports which request, if any, the next Step will service instead of
// running an instruction.
func (c *CPU) Next() Service {
	return Resolve(c.pending, c.regs.IFF1, c.acceptDelay)
}

// AssertIRQ raises a maskable interrupt line. The line stays asserted, and
// keeps interrupting, until DeassertIRQ.
func (c *CPU) AssertIRQ(src IRQSource) {
	c.pending.add(src.request())
}

// DeassertIRQ releases a maskable interrupt line.
func (c *CPU) DeassertIRQ(src IRQSource) {
	c.pending.remove(src.request())
}

// AssertNMI latches a non-maskable interrupt edge. It is cleared when
// serviced.
func (c *CPU) AssertNMI(src NMISource) {
	c.pending.add(src.request())
}

// RequestReset latches a reset, serviced at the next instruction boundary
// ahead of anything else.
func (c *CPU) RequestReset() {
	c.pending.add(RequestReset)
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.regs.PC.Word()
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.regs
}

// Cycles returns the number of cycles charged to the bus since creation.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Halted reports whether the core is waiting in HALT for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Pending returns the set of latched requests.
func (c *CPU) Pending() RequestSet {
	return c.pending
}

// NMIActive returns the latched NMI requests only.
func (c *CPU) NMIActive() RequestSet {
	return c.pending & (1<<RequestNMIMultiface | 1<<RequestNMIDivMMC)
}

// Fault returns the latched decode fault, if any.
func (c *CPU) Fault() error {
	if c.fault == nil {
		return nil
	}
	return c.fault
}

func (c *CPU) stackless() bool {
	return c.cfg.Stackless != nil && c.cfg.Stackless.Enabled()
}

func (c *CPU) logf(format string, args ...any) {
	if c.cfg.Quiet {
		return
	}
	logger.Logf("cpu", format, args...)
}

// undefined is the handler of every table slot without an instruction.
func (c *CPU) undefined() {
	fault := &DecodeFault{
		Addr:   c.insnAddr,
		Opcode: append([]uint8(nil), c.insn...),
	}
	c.fault = fault
	c.regs.PC.Set(c.insnAddr)
	c.logf("%v", fault)
}

// prefixAgain ends a DD or FD instruction whose next byte is itself a prefix.
// The first prefix has acted as a NOP. The second has had its M1 cycle, so PC
// is left on it and the next Step decodes it without fetching it again.
func (c *CPU) prefixAgain() {
	c.regs.PC--
	c.carried = true
	c.carriedOp = c.insn[len(c.insn)-1]
}
