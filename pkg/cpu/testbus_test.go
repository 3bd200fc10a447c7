package cpu

import (
	"fmt"
	"testing"
)

type accessKind int

const (
	accessRead accessKind = iota
	accessWrite
	accessIn
	accessOut
	accessTick
)

// access is one bus call. For ticks, Value holds the cycle count; Cycle is
// the bus clock before the call in every case.
type access struct {
	Kind  accessKind
	Addr  uint16
	Value int
	Cycle uint64
}

func (a access) String() string {
	names := [...]string{"read", "write", "in", "out", "tick"}
	if a.Kind == accessTick {
		return fmt.Sprintf("tick %d @%d", a.Value, a.Cycle)
	}
	return fmt.Sprintf("%s %04Xh=%02Xh @%d", names[a.Kind], a.Addr, a.Value, a.Cycle)
}

// testBus is 64K of RAM, 64K of port latches and a log of every access.
type testBus struct {
	mem    [0x10000]uint8
	ports  [0x10000]uint8
	cycles uint64
	log    []access
}

func (b *testBus) Read(addr uint16) uint8 {
	v := b.mem[addr]
	b.log = append(b.log, access{accessRead, addr, int(v), b.cycles})
	return v
}

func (b *testBus) Write(addr uint16, v uint8) {
	b.mem[addr] = v
	b.log = append(b.log, access{accessWrite, addr, int(v), b.cycles})
}

func (b *testBus) In(port uint16) uint8 {
	v := b.ports[port]
	b.log = append(b.log, access{accessIn, port, int(v), b.cycles})
	return v
}

func (b *testBus) Out(port uint16, v uint8) {
	b.ports[port] = v
	b.log = append(b.log, access{accessOut, port, int(v), b.cycles})
}

func (b *testBus) Tick(cycles int) {
	b.log = append(b.log, access{accessTick, 0, cycles, b.cycles})
	b.cycles += uint64(cycles)
}

func (b *testBus) of(kind accessKind) []access {
	var out []access
	for _, a := range b.log {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (b *testBus) ticks() []int {
	var out []int
	for _, a := range b.of(accessTick) {
		out = append(out, a.Value)
	}
	return out
}

func (b *testBus) reset() {
	b.log = b.log[:0]
}

// newTestCPU loads program at address 0 and returns a quiet core on a
// recording bus.
func newTestCPU(t *testing.T, program ...uint8) (*CPU, *testBus) {
	t.Helper()
	bus := &testBus{}
	copy(bus.mem[:], program)
	return New(bus, Config{Quiet: true}), bus
}

// mustStep runs one Step and fails the test on a fault.
func mustStep(t *testing.T, c *CPU) {
	t.Helper()
	if err := c.Step(); err != nil {
		t.Fatalf("Step at %04Xh: %v", c.PC(), err)
	}
}

func requireU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireU8(t *testing.T, name string, got, want uint8) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}
