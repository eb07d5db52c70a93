package ga

import (
	"fmt"
	"math/rand"

	"evokit/internal/genes"
)

// Mutator perturbs a chromosome and returns the mutated copy. The generic
// Mutate method must handle any gene base.
type Mutator interface {
	Mutate(rng *rand.Rand, c genes.Chromosome, base genes.Base) genes.Chromosome
}

// BitStringMutator, NumericMutator and ArbitraryMutator are optional
// specializations. The engine dispatches on the encoder's concrete base
// variant: a mutator implementing the matching specialization is called
// through it, otherwise through the generic Mutate method. A mutator may
// therefore implement only Mutate, or all three specializations with a
// generic method that is never reached.
type BitStringMutator interface {
	MutateBitString(rng *rand.Rand, c genes.Chromosome, base *genes.BitString) genes.Chromosome
}

type NumericMutator interface {
	MutateNumeric(rng *rand.Rand, c genes.Chromosome, base *genes.Numeric) genes.Chromosome
}

type ArbitraryMutator interface {
	MutateArbitrary(rng *rand.Rand, c genes.Chromosome, base *genes.Arbitrary) genes.Chromosome
}

// mutateChromosome dispatches on the base variant, preferring the
// specialized method and falling back to the generic one.
func mutateChromosome(m Mutator, rng *rand.Rand, c genes.Chromosome, base genes.Base) genes.Chromosome {
	switch b := base.(type) {
	case *genes.BitString:
		if sm, ok := m.(BitStringMutator); ok {
			return sm.MutateBitString(rng, c, b)
		}
	case *genes.Numeric:
		if sm, ok := m.(NumericMutator); ok {
			return sm.MutateNumeric(rng, c, b)
		}
	case *genes.Arbitrary:
		if sm, ok := m.(ArbitraryMutator); ok {
			return sm.MutateArbitrary(rng, c, b)
		}
	}
	return m.Mutate(rng, c, base)
}

// PointMutator overwrites a fixed number of uniformly chosen positions
// (with replacement) with fresh random genes from the base.
type PointMutator struct {
	points int
}

// NewPointMutator builds a point mutator touching the given number of genes.
func NewPointMutator(points int) (*PointMutator, error) {
	if points < 1 {
		return nil, fmt.Errorf("ga: number of mutation points must be at least 1, got %d", points)
	}
	return &PointMutator{points: points}, nil
}

func (m *PointMutator) Mutate(rng *rand.Rand, c genes.Chromosome, base genes.Base) genes.Chromosome {
	positions := make([]int, m.points)
	for i := range positions {
		positions[i] = rng.Intn(c.Len())
	}
	return c.Replace(positions, base.RandomGenes(rng, m.points))
}

// SwapMutator exchanges the genes at two distinct uniformly chosen positions.
type SwapMutator struct{}

func (SwapMutator) Mutate(rng *rand.Rand, c genes.Chromosome, _ genes.Base) genes.Chromosome {
	if c.Len() < 2 {
		return c
	}
	i := rng.Intn(c.Len())
	j := rng.Intn(c.Len() - 1)
	if j >= i {
		j++
	}
	return c.Replace([]int{i, j}, []any{c.Gene(j), c.Gene(i)})
}

// ShuffleMutator shuffles a random contiguous sub-range of genes. The
// sub-range start is uniform over [0, length) and its end uniform over
// (start, length].
type ShuffleMutator struct{}

func (ShuffleMutator) Mutate(rng *rand.Rand, c genes.Chromosome, _ genes.Base) genes.Chromosome {
	i, j := randSubRange(rng, c.Len())
	gs := c.Genes()
	rng.Shuffle(j-i, func(a, b int) {
		gs[i+a], gs[i+b] = gs[i+b], gs[i+a]
	})
	return c.WithGenes(gs)
}

// InversionMutator reverses a random contiguous sub-range of genes, chosen
// the same way as ShuffleMutator's.
type InversionMutator struct{}

func (InversionMutator) Mutate(rng *rand.Rand, c genes.Chromosome, _ genes.Base) genes.Chromosome {
	i, j := randSubRange(rng, c.Len())
	gs := c.Genes()
	for a, b := i, j-1; a < b; a, b = a+1, b-1 {
		gs[a], gs[b] = gs[b], gs[a]
	}
	return c.WithGenes(gs)
}

func randSubRange(rng *rand.Rand, length int) (int, int) {
	if length < 1 {
		return 0, 0
	}
	i := rng.Intn(length)
	j := i + 1 + rng.Intn(length-i)
	return i, j
}
