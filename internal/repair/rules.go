package repair

import (
	"regexp"
	"strings"
)

// Rule names, usable in Options.Disabled.
const (
	RuleMultiRowKey       = "multi-row-key"
	RuleBracketMethod     = "bracket-method"
	RuleEmptyKey          = "empty-key"
	RuleSubResultOnEmpty  = "sub-result-on-empty-value"
	RulePunctuationStitch = "punctuation-stitch"
	ruleDefault           = "default"
)

var (
	subKeyPattern  = regexp.MustCompile(`^[A-Za-z0-9+\-]{1,15}$`)
	bracketPattern = regexp.MustCompile(`^\[.*\]$`)
	shortPattern   = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
)

// Rule inspects the row under the cursor. When it applies, it updates the
// output, advances the cursor and returns true.
type Rule interface {
	Name() string
	Apply(s *State) bool
}

// multiRowKey folds following rows with short or bracketed keys into the
// current row: "Base," / "Sub1" / "[Method]" becomes "Base Sub1 [Method]".
type multiRowKey struct{}

func (multiRowKey) Name() string { return RuleMultiRowKey }

func (multiRowKey) Apply(s *State) bool {
	base := s.Key(0)
	if base == "" {
		return false
	}

	var subKeys []string
	values := []string{}
	if v := s.Value(0); v != "" {
		values = append(values, v)
	}

	n := 1
	for s.Has(n) {
		k := s.Key(n)
		if !subKeyPattern.MatchString(k) && !bracketPattern.MatchString(k) {
			break
		}
		subKeys = append(subKeys, k)
		if v := s.Value(n); v != "" {
			values = append(values, v)
		}
		n++
	}
	if len(subKeys) == 0 {
		return false
	}

	key := strings.TrimSuffix(base, ",") + " " + strings.Join(subKeys, " ")
	s.Emit(Record{Key: key, Value: strings.Join(values, "; ")})
	s.Advance(n)
	return true
}

// bracketMethod attaches a lone "[method]" row to the previous record's key.
type bracketMethod struct{}

func (bracketMethod) Name() string { return RuleBracketMethod }

func (bracketMethod) Apply(s *State) bool {
	last := s.Last()
	if last == nil || s.Value(0) != "" || !bracketPattern.MatchString(s.Key(0)) {
		return false
	}
	last.Key = last.Key + " " + s.Key(0)
	s.Advance(1)
	return true
}

// emptyKey appends a value-only row to the previous record's value.
type emptyKey struct{}

func (emptyKey) Name() string { return RuleEmptyKey }

func (emptyKey) Apply(s *State) bool {
	last := s.Last()
	if last == nil || s.Key(0) != "" {
		return false
	}
	last.Value = joinNonEmpty(" ", last.Value, s.Value(0))
	s.Advance(1)
	return true
}

// subResultOnEmpty gathers "IgG"/"IgM" style sub-result rows into a
// preceding record that was printed without a value of its own. While
// disabled it never claims a row.
type subResultOnEmpty struct {
	enabled bool
}

func (subResultOnEmpty) Name() string { return RuleSubResultOnEmpty }

func (r subResultOnEmpty) Apply(s *State) bool {
	last := s.Last()
	if last == nil || (last.Value != "" && !s.collecting) {
		return false
	}
	key, value := s.Key(0), s.Value(0)
	if value == "" || !subKeyPattern.MatchString(key) {
		return false
	}
	if !r.enabled {
		return false
	}
	last.Value = joinNonEmpty("; ", last.Value, key+": "+value)
	s.collecting = true
	s.Advance(1)
	return true
}

// punctuationStitch joins a short key onto a previous key that ends in
// a continuation mark such as "Cholesterol, Total:" / "HDL".
type punctuationStitch struct{}

func (punctuationStitch) Name() string { return RulePunctuationStitch }

func (punctuationStitch) Apply(s *State) bool {
	last := s.Last()
	key := s.Key(0)
	if last == nil || !shortPattern.MatchString(key) {
		return false
	}
	if last.Key == "" || !strings.ContainsRune(",:;-", rune(last.Key[len(last.Key)-1])) {
		return false
	}
	last.Key = joinNonEmpty(" ", last.Key, key)
	last.Value = joinNonEmpty(" ", last.Value, s.Value(0))
	s.Advance(1)
	return true
}

// emitRow is the fallback: the row becomes a record unchanged.
type emitRow struct{}

func (emitRow) Name() string { return ruleDefault }

func (emitRow) Apply(s *State) bool {
	s.Emit(Record{Key: s.Key(0), Value: s.Value(0)})
	s.Advance(1)
	return true
}
