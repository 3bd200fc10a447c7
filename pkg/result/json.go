package result

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ReadJSON reads rows written by WriteJSON.
func ReadJSON(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	return rows, nil
}

// WriteText writes rows as an aligned table.
func WriteText(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTEPS\tCYCLES\tPC\tFAULT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%04Xh\t%s\n", r.Name, r.Steps, r.Cycles, r.PC, r.Fault)
	}
	return tw.Flush()
}
