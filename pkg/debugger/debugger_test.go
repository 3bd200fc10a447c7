package debugger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/machine"
)

type script []string

func (s *script) ReadLine() (string, error) {
	if len(*s) == 0 {
		return "", io.EOF
	}
	line := (*s)[0]
	*s = (*s)[1:]
	return line, nil
}

// program: CALL 0010h; LD A,01h; HALT ... 0010h: LD B,02h; RET
func newDebugger() (*Debugger, *machine.Machine, *bytes.Buffer) {
	m := machine.New(machine.Config{Quiet: true})
	m.Load(0x0000, []byte{0xCD, 0x10, 0x00, 0x3E, 0x01, 0x76})
	m.Load(0x0010, []byte{0x06, 0x02, 0xC9})
	m.EditRegisters(func(r *cpu.Registers) { r.SP.Set(0x8000) })
	var out bytes.Buffer
	return New(m, &out), m, &out
}

func TestStepAndDisassembly(t *testing.T) {
	d, m, out := newDebugger()
	if _, err := d.Exec("s"); err != nil {
		t.Fatal(err)
	}
	if m.CPU().PC() != 0x0010 {
		t.Fatalf("PC = 0x%04X after CALL", m.CPU().PC())
	}
	if got, want := out.String(), "0010  06 02       LD B, 02h\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	d.Exec("d 0")
	lines := strings.Split(out.String(), "\n")
	if lines[0] != "0000  CD 10 00    CALL 0010h" || lines[1] != "0003  3E 01       LD A, 01h" || lines[2] != "0005  76          HALT" {
		t.Errorf("disassembly:\n%s", out.String())
	}
	if len(lines) != 17 {
		t.Errorf("%d lines, want 16", len(lines)-1)
	}
}

func TestOverRunsTheCall(t *testing.T) {
	d, m, out := newDebugger()
	in := &script{"o", "r", "q"}
	if err := d.Run(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if m.CPU().PC() != 0x0003 {
		t.Errorf("PC = 0x%04X, want 0003h", m.CPU().PC())
	}
	if m.CPU().Registers().B() != 0x02 {
		t.Error("the subroutine did not run")
	}
	if d.IsBreakpoint(0x0003) {
		t.Error("over breakpoint not cleared")
	}
	if !strings.Contains(out.String(), "0003 8000 ") {
		t.Errorf("register dump missing:\n%s", out.String())
	}
}

func TestBreakpoints(t *testing.T) {
	d, m, out := newDebugger()
	for _, line := range []string{"b 10 $0005", "b 0x10", "bl"} {
		if _, err := d.Exec(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if got := out.String(); got != "$0010\n$0005\n" {
		t.Errorf("bl = %q", got)
	}

	resume, _ := d.Exec("c")
	if !resume {
		t.Fatal("c did not resume")
	}
	d.resume(context.Background())
	if m.CPU().PC() != 0x0010 {
		t.Fatalf("stopped at 0x%04X, want 0010h", m.CPU().PC())
	}

	d.Exec("bd 10")
	d.resume(context.Background())
	if m.CPU().PC() != 0x0005 {
		t.Errorf("stopped at 0x%04X, want 0005h", m.CPU().PC())
	}

	out.Reset()
	d.Exec("bd 5")
	d.Exec("bl")
	if out.Len() != 0 {
		t.Errorf("breakpoints left: %q", out.String())
	}
}

func TestContinueTo(t *testing.T) {
	d, m, _ := newDebugger()
	in := &script{"c 12", "q"}
	if err := d.Run(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if m.CPU().PC() != 0x0012 {
		t.Errorf("PC = 0x%04X, want 0012h", m.CPU().PC())
	}
	if d.IsBreakpoint(0x0012) {
		t.Error("continue-to breakpoint not cleared")
	}
}

func TestFaultReturnsToPrompt(t *testing.T) {
	d, m, out := newDebugger()
	m.Load(0x0000, []byte{0xED, 0x00})
	in := &script{"c", "s"}
	if err := d.Run(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "unknown opcode") != 2 {
		t.Errorf("fault not reported twice:\n%s", out.String())
	}
}

func TestMemoryRepeat(t *testing.T) {
	d, m, out := newDebugger()
	m.Load(0x4000, []byte("Hello"))
	d.Exec("m 4000")
	first := strings.SplitN(out.String(), "\n", 2)[0]
	if want := "4000  48 65 6C 6C 6F 00 00 00 00 00 00 00 00 00 00 00  Hello..........."; first != want {
		t.Errorf("got  %q\nwant %q", first, want)
	}

	out.Reset()
	d.Exec("")
	if !strings.HasPrefix(out.String(), "4100  ") {
		t.Errorf("repeat did not continue: %q", strings.SplitN(out.String(), "\n", 2)[0])
	}
}

func TestSyntax(t *testing.T) {
	d, _, _ := newDebugger()
	for _, line := range []string{"x", "m zz", "b 10000"} {
		if _, err := d.Exec(line); !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: err = %v", line, err)
		}
	}
	if _, err := d.Exec("q"); !errors.Is(err, ErrQuit) {
		t.Errorf("q: err = %v", err)
	}
}

func TestNextRegisters(t *testing.T) {
	d, m, out := newDebugger()
	m.Out(0x243B, 0x12)
	m.Out(0x253B, 0xAB)
	d.Exec("nr")
	lines := strings.Split(out.String(), "\n")
	if !strings.HasPrefix(lines[2], "1x 00 00 AB ") {
		t.Errorf("row 1x = %q", lines[2])
	}
}

func TestRegisterDumpIFF(t *testing.T) {
	d, m, out := newDebugger()
	m.EditRegisters(func(r *cpu.Registers) { r.IFF1 = true })
	if _, err := d.Exec("r"); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	header, values := lines[len(lines)-2], lines[len(lines)-1]
	if len(header) != len(values) {
		t.Errorf("columns do not line up:\n%s\n%s", header, values)
	}
	if !strings.HasSuffix(values, "    1    0") {
		t.Errorf("IFF1/IFF2 = %q", values[len(values)-10:])
	}
}
