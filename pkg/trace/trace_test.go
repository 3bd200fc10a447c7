package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/machine"
)

func TestFlags(t *testing.T) {
	tests := []struct {
		f    uint8
		want string
	}{
		{0x00, "sz-h-p/vnc"},
		{0xFF, "SZ-H-P/VNC"},
		{cpu.FlagZ | cpu.FlagN, "sZ-h-p/vNc"},
		{cpu.Flag5 | cpu.Flag3, "sz-h-p/vnc"},
		{cpu.FlagS | cpu.FlagP | cpu.FlagC, "Sz-h-P/VnC"},
	}
	for _, tc := range tests {
		if got := Flags(tc.f); got != tc.want {
			t.Errorf("Flags(0x%02X) = %q, want %q", tc.f, got, tc.want)
		}
	}
}

func TestStep(t *testing.T) {
	m := machine.New(machine.Config{Quiet: true})
	m.Load(0, []byte{
		0x3E, 0x7F,       // LD A,7Fh
		0x3C,             // INC A
		0x32, 0x03, 0x00, // LD (0003h),A overwrites itself
	})

	var out bytes.Buffer
	tr := New(&out)
	for i := 0; i < 3; i++ {
		if err := tr.Step(m); err != nil {
			t.Fatal(err)
		}
	}
	m.CPU().RequestReset()
	if err := tr.Step(m); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"0000h LD A, 7Fh        A=7Fh BC=FFFFh DE=FFFFh HL=FFFFh F=SZ-H-P/VNC",
		"0002h INC A            A=80h BC=FFFFh DE=FFFFh HL=FFFFh F=Sz-H-P/VnC",
		"0003h LD (0003h), A    A=80h BC=FFFFh DE=FFFFh HL=FFFFh F=Sz-H-P/VnC",
		"0006h <reset>          A=FFh BC=FFFFh DE=FFFFh HL=FFFFh F=SZ-H-P/VNC",
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(got), out.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
}
