package result

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestTableSortsByName(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for _, name := range []string{"c", "a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Add(Row{Name: name})
		}()
	}
	wg.Wait()

	rows := table.Rows()
	if table.Len() != 3 || len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, want := range []string{"a", "b", "c"} {
		if rows[i].Name != want {
			t.Errorf("row %d = %q, want %q", i, rows[i].Name, want)
		}
	}
}

func TestJSON(t *testing.T) {
	rows := []Row{
		{Name: "ok", Steps: 10, Cycles: 40, PC: 0x000A},
		{Name: "bad", Steps: 2, Cycles: 8, PC: 0x0002, Fault: "cpu: unknown opcode EDh 00h at 0002h"},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), `"fault"`) != 1 {
		t.Errorf("fault must be omitted when empty:\n%s", buf.String())
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != rows[1] || got[0].Faulted() || !got[1].Faulted() {
		t.Errorf("got %+v", got)
	}

	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("truncated JSON accepted")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, []Row{{Name: "demo", Steps: 3, Cycles: 12, PC: 0xC000}}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "demo") || !strings.Contains(lines[1], "C000h") {
		t.Errorf("got:\n%s", buf.String())
	}
}
