// Package layout rebuilds two-column label/value rows from positioned words.
package layout

import "strings"

// Row is one visual line split into its left (label) and right (value) column.
type Row struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Cells returns the row as its intermediate two-cell form.
func (r Row) Cells() []string {
	return []string{r.Left, r.Right}
}

// Lines flattens rows into one text line each, label before value.
func Lines(rows []Row) []string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := strings.TrimSpace(r.Left + " " + r.Right)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ToCells converts rows to the cell form consumed by the repair engine.
func ToCells(rows []Row) [][]string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	return cells
}
