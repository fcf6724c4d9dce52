package progression

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// FormulaCache caches parsed formula ASTs keyed by source text so
// derived stats are parsed once and evaluated per read. Entries expire
// so edited derived-stat configuration is picked up without a restart.
type FormulaCache struct {
	lru *expirable.LRU[string, *Formula]
}

// NewFormulaCache creates a cache holding up to size parsed formulas
// for at most ttl.
func NewFormulaCache(size int, ttl time.Duration) *FormulaCache {
	return &FormulaCache{
		lru: expirable.NewLRU[string, *Formula](size, nil, ttl),
	}
}

// Evaluate parses (or reuses a cached parse of) the formula and
// evaluates it against the given attribute totals.
func (c *FormulaCache) Evaluate(formula string, stats map[string]int) (float64, error) {
	if f, ok := c.lru.Get(formula); ok {
		return f.Evaluate(stats)
	}

	f, err := ParseFormula(formula)
	if err != nil {
		return 0, err
	}
	c.lru.Add(formula, f)
	return f.Evaluate(stats)
}
