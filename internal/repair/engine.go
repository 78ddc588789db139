package repair

import (
	"fmt"
	"strings"
)

// Options tune the rule set.
type Options struct {
	// MergeSubResultsOnEmptyValue enables folding sub-result rows into a
	// preceding record that has no value of its own. Off by default.
	MergeSubResultsOnEmptyValue bool
	// Disabled lists rule names to skip.
	Disabled []string
}

// Engine applies an ordered list of rules to a row sequence.
type Engine struct {
	rules []Rule
}

// NewEngine builds the rule chain in priority order. Structural multi-row
// patterns come first because they can absorb several rows at once.
func NewEngine(opts Options) (*Engine, error) {
	all := []Rule{
		multiRowKey{},
		bracketMethod{},
		emptyKey{},
		subResultOnEmpty{enabled: opts.MergeSubResultsOnEmptyValue},
		punctuationStitch{},
	}

	known := make(map[string]bool, len(all))
	for _, r := range all {
		known[r.Name()] = true
	}
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		name = strings.TrimSpace(name)
		if !known[name] {
			return nil, fmt.Errorf("unknown repair rule %q", name)
		}
		disabled[name] = true
	}

	e := &Engine{}
	for _, r := range all {
		if !disabled[r.Name()] {
			e.rules = append(e.rules, r)
		}
	}
	e.rules = append(e.rules, emitRow{})
	return e, nil
}

// Rules returns the active rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Run repairs rows in a single forward pass. Rows with fewer than two
// cells are removed before any rule sees them. Records whose key ends up
// empty are dropped.
func (e *Engine) Run(rows [][]string) []Record {
	s := &State{rows: pairRows(rows)}
	for s.pos < len(s.rows) {
		for _, r := range e.rules {
			if r.Apply(s) {
				if r.Name() != RuleSubResultOnEmpty {
					s.collecting = false
				}
				break
			}
		}
	}

	out := make([]Record, 0, len(s.out))
	for _, r := range s.out {
		r.Key = strings.TrimSpace(r.Key)
		if r.Key == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func pairRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) >= 2 {
			kept = append(kept, row)
		}
	}
	return kept
}
