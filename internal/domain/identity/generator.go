// Package identity issues product identifiers (account, card and loan numbers).
package identity

import (
	"fmt"
	"math/rand/v2"
)

const (
	DefaultMin int64 = 1_000_000_000
	DefaultMax int64 = 1_900_000_000
)

type Generator interface {
	// Next returns a candidate identifier. Callers check it against the product store.
	Next() int64
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() int64

func (f GeneratorFunc) Next() int64 { return f() }

// RandomGenerator draws uniformly from [min, max).
type RandomGenerator struct {
	min  int64
	max  int64
	intN func(n int64) int64
}

var _ Generator = (*RandomGenerator)(nil)

func NewRandomGenerator(min, max int64) (*RandomGenerator, error) {
	if min <= 0 || max <= min {
		return nil, fmt.Errorf("invalid identity range [%d, %d)", min, max)
	}
	return &RandomGenerator{min: min, max: max, intN: rand.Int64N}, nil
}

func (g *RandomGenerator) Next() int64 {
	return g.min + g.intN(g.max-g.min)
}
