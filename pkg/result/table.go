// Package result collects the outcome of runs of independent cores.
package result

import (
	"sort"
	"sync"
)

// Row is the outcome of one run.
type Row struct {
	Name   string `json:"name"`
	Steps  int    `json:"steps"`
	Cycles uint64 `json:"cycles"`
	PC     uint16 `json:"pc"`
	Fault  string `json:"fault,omitempty"`
}

// Faulted reports whether the run stopped on a decode fault.
func (r Row) Faulted() bool {
	return r.Fault != ""
}

// Table stores rows from concurrent runs.
type Table struct {
	mu   sync.Mutex
	rows []Row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a row into the table.
func (t *Table) Add(r Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, r)
}

// Rows returns a copy of all rows, sorted by name.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make([]Row, len(t.rows))
	copy(result, t.rows)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}
