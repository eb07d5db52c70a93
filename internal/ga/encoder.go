package ga

import (
	"math/big"

	"evokit/internal/genes"
)

// Encoder converts between domain solutions (phenotypes) and chromosomes
// (genotypes) and scores chromosome fitness. The encoder owns exactly one
// gene base and a fixed chromosome length; together these define the
// search space. EvaluateFitness must be total over that space.
type Encoder interface {
	Base() genes.Base
	ChromosomeLength() int
	// Decode returns the solution a chromosome represents. Mandatory:
	// without it the best individual cannot be reported.
	Decode(c genes.Chromosome) (any, error)
	EvaluateFitness(c genes.Chromosome) *big.Rat
}

// SolutionEncoder is an encoder that can also encode known solutions,
// used to seed an initial population.
type SolutionEncoder interface {
	Encoder
	Encode(solution any) (genes.Chromosome, error)
}
