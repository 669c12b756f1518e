// Package expansion holds the fully expanded symbol string of a grammar and grows
// it one generation at a time on demand.
package expansion

import (
	"errors"
	"fmt"
	"math"

	"arbor/lsys/grammar"
)

// ErrGrowthLimit is returned when the next generation would exceed the configured Limits.
var ErrGrowthLimit = errors.New("growth limit reached")

// Limits caps expansion. Zero fields are unlimited.
type Limits struct {
	MaxGeneration int
	MaxSymbols    uint64
}

// Cache owns the current expansion and its generation count.
//
// It is not safe for concurrent use; the playback driver is its only writer.
type Cache struct {
	g      *grammar.Grammar
	limits Limits

	current    []grammar.Symbol
	counts     grammar.Counts
	generation int
}

// New seeds a cache with the grammar's axiom at generation 0.
func New(g *grammar.Grammar, limits Limits) *Cache {
	axiom := g.Axiom()
	return &Cache{
		g:       g,
		limits:  limits,
		current: axiom,
		counts:  grammar.CountsOf(axiom),
	}
}

func (c *Cache) Grammar() *grammar.Grammar { return c.g }
func (c *Cache) Limits() Limits            { return c.limits }
func (c *Cache) Generation() int           { return c.generation }
func (c *Cache) Len() int                  { return len(c.current) }

// At returns the symbol at index i.
func (c *Cache) At(i int) grammar.Symbol { return c.current[i] }

// String returns the current expansion as text.
func (c *Cache) String() string { return grammar.Format(c.current) }

// Counts returns per-symbol counts of the current expansion.
func (c *Cache) Counts() grammar.Counts { return c.counts }

// NextLen predicts the length after one more ExpandOnce.
func (c *Cache) NextLen() uint64 {
	return c.g.Next(c.counts).Total()
}

// ExpandOnce rewrites every symbol of the current expansion, in order, and
// advances the generation. The current expansion is left untouched when a limit
// would be exceeded.
func (c *Cache) ExpandOnce() error {
	if c.limits.MaxGeneration > 0 && c.generation >= c.limits.MaxGeneration {
		return fmt.Errorf("%w: generation %d", ErrGrowthLimit, c.limits.MaxGeneration)
	}
	counts := c.g.Next(c.counts)
	n := counts.Total()
	if c.limits.MaxSymbols > 0 && n > c.limits.MaxSymbols {
		return fmt.Errorf("%w: %d symbols exceeds %d", ErrGrowthLimit, n, c.limits.MaxSymbols)
	}
	if n > math.MaxInt {
		return fmt.Errorf("%w: %d symbols does not fit in memory", ErrGrowthLimit, n)
	}

	next := make([]grammar.Symbol, 0, int(n))
	for _, s := range c.current {
		next = append(next, c.g.Rewrite(s)...)
	}
	c.current = next
	c.counts = counts
	c.generation++
	return nil
}

// ExpandTo expands until the cache reaches generation n.
func (c *Cache) ExpandTo(n int) error {
	for c.generation < n {
		if err := c.ExpandOnce(); err != nil {
			return err
		}
	}
	return nil
}
