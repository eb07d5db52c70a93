package ga

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"time"

	"evokit/internal/genes"
	"evokit/internal/iterutil"
)

// Selector samples a subset of a population from a fitness-derived
// distribution. Select returns the chosen chromosomes together with their
// fitness values so callers keep the two sequences index-aligned. Scale
// rescales fitness values ahead of selection and defaults to identity.
type Selector interface {
	// RequiresSorted reports whether the selector needs the population
	// pre-sorted ascending by fitness.
	RequiresSorted() bool
	Select(population []genes.Chromosome, fitness []*big.Rat, quantity int) ([]genes.Chromosome, []*big.Rat, error)
	Scale(fitness []*big.Rat) []*big.Rat
}

type selectorBase struct {
	requiresSorted bool
	rng            *rand.Rand
}

func newSelectorBase(requiresSorted bool, rng *rand.Rand) selectorBase {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return selectorBase{requiresSorted: requiresSorted, rng: rng}
}

func (s *selectorBase) RequiresSorted() bool { return s.requiresSorted }

func (s *selectorBase) Scale(fitness []*big.Rat) []*big.Rat { return fitness }

// validateSelection enforces the selection preconditions: index-aligned
// inputs, a positive quantity and a non-empty pool.
func validateSelection(population []genes.Chromosome, fitness []*big.Rat, quantity int) error {
	if len(population) != len(fitness) {
		return fmt.Errorf("ga: population and fitness values must be the same length, got %d and %d",
			len(population), len(fitness))
	}
	if quantity < 1 {
		return fmt.Errorf("ga: quantity of chromosomes to select must be at least 1, got %d", quantity)
	}
	if len(population) == 0 {
		return fmt.Errorf("ga: cannot select %d chromosomes from an empty population", quantity)
	}
	return nil
}

func pickIndices(population []genes.Chromosome, fitness []*big.Rat, idx []int) ([]genes.Chromosome, []*big.Rat) {
	pop := make([]genes.Chromosome, len(idx))
	fit := make([]*big.Rat, len(idx))
	for k, i := range idx {
		pop[k] = population[i]
		fit[k] = fitness[i]
	}
	return pop, fit
}

// weightedIndices samples n indices with replacement, each index with
// probability proportional to its weight. A zero total weight degenerates
// to uniform sampling.
func weightedIndices(rng *rand.Rand, weights []float64, n int) []int {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	idx := make([]int, n)
	for k := range idx {
		if total <= 0 {
			idx[k] = rng.Intn(len(weights))
			continue
		}
		r := rng.Float64() * total
		idx[k] = sort.SearchFloat64s(cum, r)
		if idx[k] == len(cum) {
			idx[k] = len(cum) - 1
		}
	}
	return idx
}

// Proportionate selects with replacement, each individual with probability
// proportional to its fitness value.
type Proportionate struct {
	selectorBase
}

// NewProportionate builds a proportionate selector. A nil rng is replaced
// by a default-seeded generator.
func NewProportionate(rng *rand.Rand) *Proportionate {
	return &Proportionate{selectorBase: newSelectorBase(false, rng)}
}

func (s *Proportionate) Select(population []genes.Chromosome, fitness []*big.Rat, quantity int) ([]genes.Chromosome, []*big.Rat, error) {
	if err := validateSelection(population, fitness, quantity); err != nil {
		return nil, nil, err
	}
	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		if f.Sign() < 0 {
			return nil, nil, fmt.Errorf("ga: proportionate selection requires non-negative fitness, got %s at index %d",
				f.RatString(), i)
		}
		weights[i], _ = f.Float64()
	}
	idx := weightedIndices(s.rng, weights, quantity)
	pop, fit := pickIndices(population, fitness, idx)
	return pop, fit, nil
}

// Ranked selects with replacement, the individual at ascending-sorted
// position i (0-based) having probability (i+1)/sum(1..N).
type Ranked struct {
	selectorBase
}

// NewRanked builds a ranked selector; it requires the population sorted
// ascending by fitness.
func NewRanked(rng *rand.Rand) *Ranked {
	return &Ranked{selectorBase: newSelectorBase(true, rng)}
}

func (s *Ranked) Select(population []genes.Chromosome, fitness []*big.Rat, quantity int) ([]genes.Chromosome, []*big.Rat, error) {
	if err := validateSelection(population, fitness, quantity); err != nil {
		return nil, nil, err
	}
	weights := make([]float64, len(population))
	for i := range weights {
		weights[i] = float64(i + 1)
	}
	idx := weightedIndices(s.rng, weights, quantity)
	pop, fit := pickIndices(population, fitness, idx)
	return pop, fit, nil
}

// Tournament pits uniformly drawn individuals against each other and keeps
// the winners of each tournament. Without an inner selector the winners
// are the top chosen-count individuals by fitness; with one, the inner
// selector picks the winners from each tournament.
type Tournament struct {
	selectorBase
	size    int
	nChosen int
	inner   Selector
}

// NewTournament builds a tournament selector of the given size, keeping
// nChosen winners per tournament. The inner selector may be nil.
func NewTournament(rng *rand.Rand, size, nChosen int, inner Selector) (*Tournament, error) {
	if size < 2 {
		return nil, fmt.Errorf("ga: tournament size must be at least 2, got %d", size)
	}
	if nChosen < 1 || nChosen >= size {
		return nil, fmt.Errorf("ga: chosen count must be in [1, tournament size), got %d of %d", nChosen, size)
	}
	requiresSorted := inner == nil || inner.RequiresSorted()
	return &Tournament{
		selectorBase: newSelectorBase(requiresSorted, rng),
		size:         size,
		nChosen:      nChosen,
		inner:        inner,
	}, nil
}

// Select runs quantity tournaments of size individuals each, drawn
// uniformly with replacement, and concatenates all winners.
func (s *Tournament) Select(population []genes.Chromosome, fitness []*big.Rat, quantity int) ([]genes.Chromosome, []*big.Rat, error) {
	if err := validateSelection(population, fitness, quantity); err != nil {
		return nil, nil, err
	}
	var selPop []genes.Chromosome
	var selFit []*big.Rat
	for t := 0; t < quantity; t++ {
		entrants := make([]int, s.size)
		for i := range entrants {
			entrants[i] = s.rng.Intn(len(population))
		}
		if s.inner == nil {
			winners := iterutil.MaxN(entrants, s.nChosen, func(a, b int) bool {
				return fitness[a].Cmp(fitness[b]) < 0
			})
			pop, fit := pickIndices(population, fitness, winners)
			selPop = append(selPop, pop...)
			selFit = append(selFit, fit...)
			continue
		}
		tPop, tFit := pickIndices(population, fitness, entrants)
		pop, fit, err := s.inner.Select(tPop, tFit, s.nChosen)
		if err != nil {
			return nil, nil, err
		}
		selPop = append(selPop, pop...)
		selFit = append(selFit, fit...)
	}
	return selPop, selFit, nil
}

// Scale delegates to the inner selector when present.
func (s *Tournament) Scale(fitness []*big.Rat) []*big.Rat {
	if s.inner != nil {
		return s.inner.Scale(fitness)
	}
	return fitness
}
