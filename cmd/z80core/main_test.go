package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oisee/z80core/pkg/machine"
)

func writeImage(t *testing.T, data ...byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStopsAtDeadHalt(t *testing.T) {
	m := machine.New(machine.Config{Quiet: true})
	m.Load(0, []byte{0xF3, 0x76}) // DI; HALT
	n, err := run(context.Background(), m, m.Step, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("ran %d steps, want 2", n)
	}
}

func TestRunCommand(t *testing.T) {
	// LD A,01h; HALT at 8000h
	path := writeImage(t, 0x3E, 0x01, 0xF3, 0x76)
	cmd := runCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--org", "0x8000", "--trace", path})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[0], "8000h LD A, 01h") {
		t.Errorf("trace = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "3 steps, 15 cycles") || !strings.HasSuffix(lines[3], "PC=8004h") {
		t.Errorf("summary = %q", lines[3])
	}
}

func TestRunCommandFault(t *testing.T) {
	path := writeImage(t, 0x00, 0xED, 0x00)
	cmd := runCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	if err := cmd.ExecuteContext(context.Background()); err == nil || !strings.Contains(err.Error(), "EDh 00h at 0001h") {
		t.Errorf("err = %v", err)
	}
}

func TestDisasmCommand(t *testing.T) {
	path := writeImage(t, 0xDD, 0x7E, 0x05, 0x18, 0xFE)
	cmd := disasmCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--org", "0x4000", path})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "4000  DD 7E 05    LD A, (IX+05h)\n4003  18 FE       JR 4003h\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestBenchCommandJSON(t *testing.T) {
	a := writeImage(t, 0x00, 0x00)
	cmd := benchCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--steps", "10", "--json", a})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"steps": 10`) || !strings.Contains(out.String(), `"cycles": 40`) {
		t.Errorf("got:\n%s", out.String())
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeImage(t, 0x3E, 0x42)
	cmd := dumpCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--steps", "1", path})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "digraph") {
		t.Errorf("not a graph:\n%s", out.String())
	}
}
