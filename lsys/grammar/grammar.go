// Package grammar holds the axiom and production rules of a growth grammar and
// rewrites symbols one generation at a time.
//
// A Grammar is immutable after construction and safe to share.
package grammar

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrBadRule       = errors.New("malformed rule")
	ErrEmptyAxiom    = errors.New("empty axiom")
)

// Grammar is an axiom plus a table of production rules.
//
// Symbols without a rule rewrite to themselves.
type Grammar struct {
	axiom []Symbol
	rules [len(Alphabet) + 1][]Symbol
	has   [len(Alphabet) + 1]bool
}

// New builds a grammar. The inputs are copied.
func New(axiom []Symbol, rules map[Symbol][]Symbol) (*Grammar, error) {
	if len(axiom) == 0 {
		return nil, ErrEmptyAxiom
	}
	for i, s := range axiom {
		if !s.Valid() {
			return nil, fmt.Errorf("axiom offset %d: %w %d", i, ErrUnknownSymbol, s)
		}
	}
	g := &Grammar{axiom: slices.Clone(axiom)}
	for lhs, rhs := range rules {
		if !lhs.Valid() {
			return nil, fmt.Errorf("rule key: %w %d", ErrUnknownSymbol, lhs)
		}
		for i, s := range rhs {
			if !s.Valid() {
				return nil, fmt.Errorf("rule %s offset %d: %w %d", lhs, i, ErrUnknownSymbol, s)
			}
		}
		g.rules[lhs] = slices.Clone(rhs)
		g.has[lhs] = true
	}
	return g, nil
}

// Parse builds a grammar from its textual form.
func Parse(axiom string, rules map[string]string) (*Grammar, error) {
	ax, err := ParseSymbols(axiom)
	if err != nil {
		return nil, fmt.Errorf("axiom: %w", err)
	}
	table := make(map[Symbol][]Symbol, len(rules))
	for k, v := range rules {
		lhs, rhs, err := parseRule(k, v)
		if err != nil {
			return nil, err
		}
		table[lhs] = rhs
	}
	return New(ax, table)
}

// ParseRules parses "X=F+[X]" style rule lines, rejecting repeated keys.
func ParseRules(lines []string) (map[string]string, error) {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q (want SYMBOL=BODY)", ErrBadRule, line)
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, k)
		}
		out[k] = v
	}
	return out, nil
}

func parseRule(k, v string) (Symbol, []Symbol, error) {
	if len(k) != 1 {
		return 0, nil, fmt.Errorf("%w: key %q must be a single symbol", ErrBadRule, k)
	}
	lhs, err := ParseSymbol(k[0])
	if err != nil {
		return 0, nil, fmt.Errorf("rule key: %w", err)
	}
	rhs, err := ParseSymbols(v)
	if err != nil {
		return 0, nil, fmt.Errorf("rule %s: %w", k, err)
	}
	return lhs, rhs, nil
}

// Axiom returns a copy of the axiom.
func (g *Grammar) Axiom() []Symbol { return slices.Clone(g.axiom) }

// Rewrite returns the replacement for s. The result must not be modified.
func (g *Grammar) Rewrite(s Symbol) []Symbol {
	if s.Valid() && g.has[s] {
		return g.rules[s]
	}
	return g.identity(s)
}

func (g *Grammar) identity(s Symbol) []Symbol {
	for i := range Alphabet {
		if Alphabet[i] == s {
			return Alphabet[i : i+1]
		}
	}
	return []Symbol{s}
}

// Rule reports the explicit rule for s, if any.
func (g *Grammar) Rule(s Symbol) ([]Symbol, bool) {
	if !s.Valid() || !g.has[s] {
		return nil, false
	}
	return slices.Clone(g.rules[s]), true
}

// Symbols returns the symbols that have explicit rules, in alphabet order.
func (g *Grammar) Symbols() []Symbol {
	var out []Symbol
	for _, s := range Alphabet {
		if g.has[s] {
			out = append(out, s)
		}
	}
	return out
}

// RuleText returns the rule body of s as text, or "" when s has no rule.
func (g *Grammar) RuleText(s Symbol) string {
	if !s.Valid() || !g.has[s] {
		return ""
	}
	return Format(g.rules[s])
}

// Counts is the number of occurrences of each symbol, indexed by Symbol.
type Counts [len(Alphabet) + 1]uint64

// Total sums all counts, saturating at math.MaxUint64.
func (c Counts) Total() uint64 {
	var n uint64
	for _, v := range c {
		n = satAdd(n, v)
	}
	return n
}

// CountsOf tallies seq.
func CountsOf(seq []Symbol) Counts {
	var c Counts
	for _, s := range seq {
		if s.Valid() {
			c[s]++
		}
	}
	return c
}

// CountsAfter predicts per-symbol counts of seq after n generations without
// materialising the string. Counts saturate instead of overflowing.
func (g *Grammar) CountsAfter(seq []Symbol, n int) Counts {
	c := CountsOf(seq)
	for ; n > 0; n-- {
		c = g.Next(c)
	}
	return c
}

// Next applies one generation to a count vector.
func (g *Grammar) Next(c Counts) Counts {
	var next Counts
	for _, s := range Alphabet {
		if c[s] == 0 {
			continue
		}
		body := CountsOf(g.Rewrite(s))
		for _, r := range Alphabet {
			if body[r] == 0 {
				continue
			}
			next[r] = satAdd(next[r], satMul(c[s], body[r]))
		}
	}
	return next
}

// LengthAfter predicts len(seq) after n generations.
func (g *Grammar) LengthAfter(seq []Symbol, n int) uint64 {
	return g.CountsAfter(seq, n).Total()
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satMul(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * b
}
