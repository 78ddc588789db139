// Package result holds the ordered code/value output of one document and
// its persistence.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SampleIDCode is the code of the leading identifier pair.
const SampleIDCode = "SEQN"

// Pair is one code and its extracted value.
type Pair struct {
	Code  string
	Value string
}

// MarshalJSON encodes the pair as a two-element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Code, p.Value})
}

// UnmarshalJSON decodes a two-element array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pair must have 2 elements, got %d", len(raw))
	}
	p.Code, p.Value = raw[0], raw[1]
	return nil
}

// Document is the result for one sample: the identifier pair followed by
// every analyte code in table order.
type Document struct {
	SampleID string
	Pairs    []Pair
}

// Len returns the number of serialized pairs, identifier included.
func (d Document) Len() int {
	return len(d.Pairs) + 1
}

// Value returns the value recorded for code.
func (d Document) Value(code string) (string, bool) {
	for _, p := range d.Pairs {
		if p.Code == code {
			return p.Value, true
		}
	}
	return "", false
}

// All returns the identifier pair followed by the analyte pairs.
func (d Document) All() []Pair {
	all := make([]Pair, 0, d.Len())
	all = append(all, Pair{Code: SampleIDCode, Value: d.SampleID})
	return append(all, d.Pairs...)
}

// Cells returns the serialized pairs as [code, value] cells.
func (d Document) Cells() [][]string {
	all := d.All()
	cells := make([][]string, len(all))
	for i, p := range all {
		cells[i] = []string{p.Code, p.Value}
	}
	return cells
}

// MarshalJSON renders the document as an array of [code, value] arrays.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.All())
}

// UnmarshalJSON reads the array form written by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	if len(pairs) == 0 || pairs[0].Code != SampleIDCode {
		return errors.New("result must start with the " + SampleIDCode + " pair")
	}
	d.SampleID = pairs[0].Value
	d.Pairs = pairs[1:]
	return nil
}

// MarshalYAML renders the same shape as MarshalJSON.
func (d Document) MarshalYAML() (any, error) {
	all := d.All()
	out := make([][2]string, len(all))
	for i, p := range all {
		out[i] = [2]string{p.Code, p.Value}
	}
	return out, nil
}
