// Package repair collapses clustering artifacts into label/value records.
//
// Printed lab reports wrap a label's method annotation or its component
// sub-results onto separate physical lines. Clustering works purely on
// vertical position, so those wraps surface as extra rows with short or
// bracketed keys. The Engine walks the rows once and lets an ordered set
// of rules fold them back into the record they belong to.
package repair

import "strings"

// Record is a repaired key/value pair.
type Record struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// State is the cursor shared by rules during one pass.
type State struct {
	rows       [][]string
	pos        int
	out        []Record
	collecting bool
}

// Key returns the trimmed left cell of the row at offset n from the cursor.
func (s *State) Key(n int) string {
	return strings.TrimSpace(s.rows[s.pos+n][0])
}

// Value returns the trimmed right cell of the row at offset n from the cursor.
func (s *State) Value(n int) string {
	return strings.TrimSpace(s.rows[s.pos+n][1])
}

// Has reports whether a row exists at offset n from the cursor.
func (s *State) Has(n int) bool {
	return s.pos+n < len(s.rows)
}

// Last returns the most recently emitted record, or nil.
func (s *State) Last() *Record {
	if len(s.out) == 0 {
		return nil
	}
	return &s.out[len(s.out)-1]
}

// Emit appends a record to the output.
func (s *State) Emit(r Record) {
	s.out = append(s.out, r)
	s.collecting = false
}

// Advance moves the cursor past n rows.
func (s *State) Advance(n int) {
	s.pos += n
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
