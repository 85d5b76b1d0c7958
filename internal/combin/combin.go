// Package combin enumerates the concrete instantiation points of a
// registry: individual combinations (model x precision x integrator) and
// pair combinations (coupling x precision x integrator x model x model).
//
// Enumeration order is fixed and part of the generated artifact's
// contract. Individuals iterate models, then precisions, then integrators.
// Pairs iterate couplings, then precisions, then integrators, then the
// first endpoint model, then the second; the second endpoint advances
// fastest. Self-pairs are included.
//
// Pair enumeration is lazy: PairCursor yields one combination per Next
// call, so a capped collection never evaluates or names anything past the
// cap. Couplings whose kind has no registration strategy are excluded when
// the cursor is built and reported via Skipped; they consume none of the
// cap.
package combin

import (
	"github.com/GNB-UAM/neungen/internal/naming"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// Individual is one model x precision x integrator instantiation.
type Individual struct {
	Model      registry.Model
	Precision  registry.Precision
	Integrator registry.Integrator
	Name       string
}

// Pair is one coupling x precision x integrator x model x model
// instantiation. Both endpoints share the precision and integrator.
type Pair struct {
	Coupling   registry.Coupling
	Precision  registry.Precision
	Integrator registry.Integrator
	First      registry.Model
	Second     registry.Model
	Name       string
}

// Individuals returns every individual combination in canonical order.
// Individuals are the primary API surface of the generated module and are
// never truncated.
func Individuals(reg *registry.Registry) []Individual {
	out := make([]Individual, 0, len(reg.Models)*len(reg.Precisions)*len(reg.Integrators))
	for _, m := range reg.Models {
		for _, p := range reg.Precisions {
			for _, in := range reg.Integrators {
				out = append(out, Individual{
					Model:      m,
					Precision:  p,
					Integrator: in,
					Name:       naming.Individual(m.Short, p.Suffix, in.Short),
				})
			}
		}
	}
	return out
}

// PairCursor walks the pair combination space lazily in canonical order.
// The zero value is not usable; construct with NewPairCursor.
type PairCursor struct {
	reg       *registry.Registry
	couplings []registry.Coupling
	skipped   []string

	ci, pi, ii, m1, m2 int
	done               bool
}

// NewPairCursor builds a cursor over every pair combination of reg.
// Couplings with an unrecognized kind are dropped here, before any
// counting, and recorded for diagnostics.
func NewPairCursor(reg *registry.Registry) *PairCursor {
	c := &PairCursor{reg: reg}
	for _, cp := range reg.Couplings {
		switch cp.Kind {
		case registry.KindConductance, registry.KindDiffusion:
			c.couplings = append(c.couplings, cp)
		default:
			c.skipped = append(c.skipped, cp.Class)
		}
	}
	c.done = c.Total() == 0
	return c
}

// Total returns the size of the full sequence, independent of cursor
// position.
func (c *PairCursor) Total() int {
	m := len(c.reg.Models)
	return len(c.couplings) * len(c.reg.Precisions) * len(c.reg.Integrators) * m * m
}

// Skipped returns the classes of couplings excluded for an unrecognized
// kind, in registry order.
func (c *PairCursor) Skipped() []string {
	out := make([]string, len(c.skipped))
	copy(out, c.skipped)
	return out
}

// Next returns the next pair combination. The second result is false once
// the sequence is exhausted.
func (c *PairCursor) Next() (Pair, bool) {
	if c.done {
		return Pair{}, false
	}
	cp := c.couplings[c.ci]
	p := c.reg.Precisions[c.pi]
	in := c.reg.Integrators[c.ii]
	first := c.reg.Models[c.m1]
	second := c.reg.Models[c.m2]
	pair := Pair{
		Coupling:   cp,
		Precision:  p,
		Integrator: in,
		First:      first,
		Second:     second,
		Name:       naming.Pair(cp.Short, first.Short, second.Short, p.Suffix, in.Short),
	}
	c.advance()
	return pair, true
}

// advance steps the position odometer, second endpoint fastest.
func (c *PairCursor) advance() {
	if c.m2++; c.m2 < len(c.reg.Models) {
		return
	}
	c.m2 = 0
	if c.m1++; c.m1 < len(c.reg.Models) {
		return
	}
	c.m1 = 0
	if c.ii++; c.ii < len(c.reg.Integrators) {
		return
	}
	c.ii = 0
	if c.pi++; c.pi < len(c.reg.Precisions) {
		return
	}
	c.pi = 0
	if c.ci++; c.ci < len(c.couplings) {
		return
	}
	c.done = true
}

// Reset rewinds the cursor to the start of the sequence.
func (c *PairCursor) Reset() {
	c.ci, c.pi, c.ii, c.m1, c.m2 = 0, 0, 0, 0, 0
	c.done = c.Total() == 0
}

// CollectPairs returns the first limit pairs of the canonical sequence,
// whether the sequence was truncated there, and the couplings skipped for
// an unrecognized kind. limit must be non-negative. Combinations past the
// limit are never evaluated.
func CollectPairs(reg *registry.Registry, limit int) (pairs []Pair, truncated bool, skipped []string) {
	c := NewPairCursor(reg)
	total := c.Total()
	n := total
	if limit < n {
		n = limit
	}
	pairs = make([]Pair, 0, n)
	for len(pairs) < limit {
		p, ok := c.Next()
		if !ok {
			break
		}
		pairs = append(pairs, p)
	}
	return pairs, total > limit, c.Skipped()
}
