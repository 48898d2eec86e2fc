package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table collects rows of cells and renders them as aligned columns.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable returns a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) Row(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w. Headers are muted; colors are applied after
// alignment so escape codes don't shift the columns.
func (t *Table) Render(w io.Writer) error {
	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.SplitAfter(buf.String(), "\n")
	if len(lines) > 0 && !noColor() {
		header := strings.TrimRight(lines[0], "\n")
		lines[0] = Muted.color.Sprint(header) + "\n"
	}
	_, err := io.WriteString(w, strings.Join(lines, ""))
	return err
}
