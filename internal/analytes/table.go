// Package analytes maps printed report labels to canonical analyte codes.
//
// A Table is built once at startup and never mutated, so a single instance
// can serve any number of concurrent documents.
package analytes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labworks/labextract/internal/repair"
	"github.com/labworks/labextract/internal/result"
)

// ErrDuplicateCode is returned when a code appears more than once.
var ErrDuplicateCode = errors.New("duplicate analyte code")

// Entry maps one code to its printed label. An empty label means the code
// is reported but never extracted.
type Entry struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// Table is the ordered code → label reference with its inverse index.
type Table struct {
	entries []Entry
	byLabel map[string][]string
}

// NewTable builds a table and its label index from entries in output order.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byLabel: make(map[string][]string),
	}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			return nil, fmt.Errorf("entry %d: empty code", i)
		}
		if code == result.SampleIDCode {
			return nil, fmt.Errorf("entry %d: code %s is reserved", i, code)
		}
		if seen[code] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		seen[code] = true

		label := strings.TrimSpace(e.Label)
		t.entries = append(t.entries, Entry{Code: code, Label: label})
		if label != "" {
			t.byLabel[label] = append(t.byLabel[label], code)
		}
	}
	return t, nil
}

// Len returns the number of codes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Codes returns every code in table order.
func (t *Table) Codes() []string {
	codes := make([]string, len(t.entries))
	for i, e := range t.entries {
		codes[i] = e.Code
	}
	return codes
}

// CodesFor returns the codes printed under label, in first-seen order.
func (t *Table) CodesFor(label string) []string {
	codes := t.byLabel[strings.TrimSpace(label)]
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// LabelCount returns the number of distinct non-empty labels.
func (t *Table) LabelCount() int {
	return len(t.byLabel)
}

// Resolve assigns each record's value to every code sharing its label.
// Later records overwrite earlier ones. Unknown labels are ignored.
func (t *Table) Resolve(records []repair.Record) map[string]string {
	values := make(map[string]string)
	for _, r := range records {
		for _, code := range t.byLabel[strings.TrimSpace(r.Key)] {
			values[code] = r.Value
		}
	}
	return values
}

// Document resolves records into a complete result: every code in table
// order, with an empty value where the report had none.
func (t *Table) Document(sampleID string, records []repair.Record) result.Document {
	values := t.Resolve(records)
	pairs := make([]result.Pair, len(t.entries))
	for i, e := range t.entries {
		pairs[i] = result.Pair{Code: e.Code, Value: values[e.Code]}
	}
	return result.Document{SampleID: sampleID, Pairs: pairs}
}
