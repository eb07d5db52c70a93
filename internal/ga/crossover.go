package ga

import (
	"math/rand"

	"evokit/internal/genes"
)

// Recombinator produces a pair of offspring chromosomes from two parents.
// Offspring have the same length and base as the parents; recombinators
// move genes by position and never inspect the base alphabet.
type Recombinator interface {
	Recombine(rng *rand.Rand, a, b genes.Chromosome) (genes.Chromosome, genes.Chromosome)
}

// PointCrossover swaps the gene sub-sequence between two uniformly chosen
// cut points, 0 <= left <= right <= length.
type PointCrossover struct{}

func (PointCrossover) Recombine(rng *rand.Rand, a, b genes.Chromosome) (genes.Chromosome, genes.Chromosome) {
	left := rng.Intn(a.Len() + 1)
	right := left + rng.Intn(a.Len()-left+1)
	return crossAt(a, b, left, right)
}

// SplitCrossover swaps everything after a single uniformly chosen cut point.
type SplitCrossover struct{}

func (SplitCrossover) Recombine(rng *rand.Rand, a, b genes.Chromosome) (genes.Chromosome, genes.Chromosome) {
	point := rng.Intn(a.Len() + 1)
	return crossAt(a, b, point, a.Len())
}

func crossAt(a, b genes.Chromosome, left, right int) (genes.Chromosome, genes.Chromosome) {
	c1 := genes.Concat(a.Slice(0, left), b.Slice(left, right), a.Slice(right, a.Len()))
	c2 := genes.Concat(b.Slice(0, left), a.Slice(left, right), b.Slice(right, b.Len()))
	return c1, c2
}

// UniformSwapper flips a fair coin per gene position; each offspring takes
// that position's gene from one parent or the other, complementarily.
type UniformSwapper struct{}

func (UniformSwapper) Recombine(rng *rand.Rand, a, b genes.Chromosome) (genes.Chromosome, genes.Chromosome) {
	g1 := make([]any, a.Len())
	g2 := make([]any, b.Len())
	for i := 0; i < a.Len(); i++ {
		if rng.Intn(2) == 0 {
			g1[i], g2[i] = b.Gene(i), a.Gene(i)
		} else {
			g1[i], g2[i] = a.Gene(i), b.Gene(i)
		}
	}
	return a.WithGenes(g1), b.WithGenes(g2)
}
