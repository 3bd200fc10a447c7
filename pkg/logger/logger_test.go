package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestRepeatCollapsing(t *testing.T) {
	l := newLogger(3)
	l.log("cpu", "reset")
	l.log("cpu", "reset")
	l.log("cpu", "nmi\n")

	var buf bytes.Buffer
	l.tail(&buf, -1)
	if got, want := buf.String(), "cpu: reset (repeat x2)\ncpu: nmi\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBounded(t *testing.T) {
	l := newLogger(2)
	for _, d := range []string{"a", "b", "c"} {
		l.log("t", d)
	}
	entries := l.copy()
	if len(entries) != 2 || entries[0].Detail != "b" || entries[1].Detail != "c" {
		t.Errorf("entries = %v", entries)
	}

	var buf bytes.Buffer
	l.tail(&buf, 1)
	if buf.String() != "t: c\n" {
		t.Errorf("tail 1 = %q", buf.String())
	}
}

func TestEcho(t *testing.T) {
	Clear()
	var buf bytes.Buffer
	SetEcho(&buf)
	defer SetEcho(nil)

	Logf("cpu", "unknown opcode %02Xh", 0xED)
	Log("cpu", "unknown opcode EDh")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("echoed %d lines:\n%s", got, buf.String())
	}
	if len(Entries()) != 1 {
		t.Errorf("entries = %v", Entries())
	}
}
