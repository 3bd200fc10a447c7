package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oisee/z80core/pkg/machine"
)

func newMachine() *machine.Machine {
	return machine.New(machine.Config{Quiet: true})
}

func TestScenario(t *testing.T) {
	const src = `
load(0x8000, {0x3E, 0x2A, 0x06, 0x10, 0x76})  -- LD A,2Ah; LD B,10h; HALT
reg("pc", 0x8000)
assert(step(3) == 3)
assert(reg("a") == 0x2A, "A")
assert(reg("bc") == 0x10FF, "BC")
assert(pc() == 0x8005, "PC")
assert(cycles() == 18, "cycles")

poke(0x4000, 0x99)
assert(peek(0x4000) == 0x99)

reg("iff1", 1)
reg("im", 1)
irq("frame")
step()
assert(pc() == 0x38, "IM 1 vector")
assert(reg("iff1") == 0)
irq("frame", false)

nmi("divmmc")
step()
assert(pc() == 0x66, "NMI vector")

reset()
step()
assert(pc() == 0 and reg("sp") == 0xFFFF, "reset")
print("done", reg("ixh"))
`
	var out bytes.Buffer
	if err := RunString(context.Background(), newMachine(), src, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "done\t255\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFaultRaisesError(t *testing.T) {
	m := newMachine()
	err := RunString(context.Background(), m, `load(0, {0x00, 0xED, 0x00}); step(5)`, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "EDh 00h") {
		t.Fatalf("err = %v, want the decode fault", err)
	}
	if m.CPU().Fault() == nil {
		t.Error("core not faulted")
	}
}

func TestNextRegAndMultiface(t *testing.T) {
	m := newMachine()
	src := `
load(0, {0xED, 0x91, 0x15, 0x03})  -- NEXTREG 15h,03h
step()
assert(nextreg(0x15) == 3)
nmi("multiface")
step()
`
	if err := RunString(context.Background(), m, src, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if m.Multiface() != 1 {
		t.Errorf("multiface activations = %d", m.Multiface())
	}
}

func TestArgumentErrors(t *testing.T) {
	for _, src := range []string{
		`poke(0x10000, 1)`,
		`poke(0, 256)`,
		`load(0, {1, "x"})`,
		`step(0)`,
		`irq("vblank")`,
		`nmi("reset")`,
		`reg("xyz")`,
		`reg("im", 3)`,
		`reg("im", -1)`,
	} {
		if err := RunString(context.Background(), newMachine(), src, &bytes.Buffer{}); err == nil {
			t.Errorf("%s: no error", src)
		}
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.lua")
	if err := os.WriteFile(path, []byte(`reg("hl'", 0x1234) print(reg("hl'"))`), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := RunFile(context.Background(), newMachine(), path, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "4660\n" {
		t.Errorf("output = %q", out.String())
	}
}
