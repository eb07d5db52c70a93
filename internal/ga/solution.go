package ga

import (
	"math/big"

	"evokit/internal/genes"
)

// TerminationReason is the single condition that ended a run. The three
// conditions race every generation; exactly one wins.
type TerminationReason int

const (
	FitnessThresholdReached TerminationReason = iota + 1
	StagnationLimitReached
	MaxGenerationsReached
)

func (r TerminationReason) String() string {
	switch r {
	case FitnessThresholdReached:
		return "fitness threshold reached"
	case StagnationLimitReached:
		return "stagnation limit reached"
	case MaxGenerationsReached:
		return "max generations reached"
	default:
		return "unknown"
	}
}

// Solution is the immutable outcome of a run: the best chromosome found,
// its fitness, the final population with its fitness values, and the
// termination condition that won.
type Solution struct {
	BestChromosome genes.Chromosome
	BestFitness    *big.Rat
	Population     []genes.Chromosome
	FitnessValues  []*big.Rat
	Generations    int
	Reason         TerminationReason
}

func (s *Solution) MaxFitnessReached() bool { return s.Reason == FitnessThresholdReached }

func (s *Solution) MaxGenerationsReached() bool { return s.Reason == MaxGenerationsReached }

func (s *Solution) StagnationLimitReached() bool { return s.Reason == StagnationLimitReached }
