package ga

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"evokit/internal/genes"
	"evokit/internal/iterutil"
	"evokit/internal/progress"
)

// System composes an encoder, selector, recombinator and mutator into the
// generation loop. It exclusively owns the population and fitness-value
// sequences for the duration of a run; operators receive borrowed views
// and must not retain them across calls.
type System struct {
	encoder      Encoder
	selector     Selector
	recombinator Recombinator
	mutator      Mutator
	rng          *rand.Rand
}

// NewSystem builds a genetic system. A nil rng is replaced by a
// default-seeded generator; pass an explicit seeded one for reproducible
// runs.
func NewSystem(encoder Encoder, selector Selector, recombinator Recombinator, mutator Mutator, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &System{
		encoder:      encoder,
		selector:     selector,
		recombinator: recombinator,
		mutator:      mutator,
		rng:          rng,
	}
}

// Run evolves a population until the fitness threshold, the stagnation
// limit or the maximum generation count is reached, in that priority
// order. Configuration errors surface before any generation executes.
func (s *System) Run(p Params) (*Solution, error) {
	if s.encoder == nil || s.selector == nil || s.recombinator == nil || s.mutator == nil {
		return nil, fmt.Errorf("ga: system needs an encoder, selector, recombinator and mutator")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	stagnationLimit, stagnationEnabled, err := p.StagnationLimit.resolve(p.MaxGenerations)
	if err != nil {
		return nil, err
	}

	population, err := s.initialPopulation(p)
	if err != nil {
		return nil, err
	}
	fitness := s.evaluate(population)

	// The population and fitness sequences stay sorted ascending by
	// fitness and index-aligned whenever any elitism factor is active or
	// the selector needs rank order.
	keepSorted := p.SurvivalElitism.Enabled() || p.ReproductionElitism.Enabled() || s.selector.RequiresSorted()
	if keepSorted {
		sortByFitness(population, fitness)
	}

	maxFitness, maxIndividual := fittest(population, fitness)
	bestFitness := new(big.Rat).Set(maxFitness)
	bestIndividual := maxIndividual
	stagnated := 0

	survival := new(big.Rat).Set(p.SurvivalFactor)
	mutation := new(big.Rat)
	if p.MutationFactor != nil {
		mutation.Set(p.MutationFactor)
	}
	var diversity *big.Rat
	if p.DiversityBias != nil {
		diversity = new(big.Rat).Set(p.DiversityBias)
	}
	var reproFraction *big.Rat
	if p.ReproductionElitism.Enabled() {
		reproFraction = new(big.Rat).Set(p.ReproductionElitism.Fraction())
	}

	solution := func(reason TerminationReason, generations int) *Solution {
		return &Solution{
			BestChromosome: bestIndividual,
			BestFitness:    new(big.Rat).Set(bestFitness),
			Population:     population,
			FitnessValues:  fitness,
			Generations:    generations,
			Reason:         reason,
		}
	}

	for generation := 0; p.MaxGenerations == 0 || generation < p.MaxGenerations; generation++ {
		// Diversity bias inflates low-fitness individuals proportionally
		// to their gap below the maximum, then shrinks per its schedule.
		if diversity != nil {
			diversity = p.DiversityBiasSchedule.Apply(diversity)
			for i, f := range fitness {
				gap := new(big.Rat).Sub(maxFitness, f)
				fitness[i] = new(big.Rat).Add(f, gap.Mul(gap, diversity))
			}
		}

		fitness = s.selector.Scale(fitness)

		baseSize := len(population)
		population, fitness, err = s.cullPopulation(population, fitness, survival, p.SurvivalElitism)
		if err != nil {
			return nil, fmt.Errorf("culling generation %d: %w", generation, err)
		}

		desired := ceilRatMul(baseSize, p.ExpansionFactor)
		if desired > p.MaxPopSize {
			desired = p.MaxPopSize
		}
		population, err = s.growPopulation(population, fitness, desired, reproFraction)
		if err != nil {
			return nil, fmt.Errorf("growing generation %d: %w", generation, err)
		}

		if generation != 0 {
			mutation = p.MutationSchedule.Apply(mutation)
		}
		s.mutatePopulation(population, mutation)

		fitness = s.evaluate(population)
		if keepSorted {
			sortByFitness(population, fitness)
		}
		maxFitness, maxIndividual = fittest(population, fitness)

		if maxFitness.Cmp(bestFitness) > 0 {
			bestFitness.Set(maxFitness)
			bestIndividual = maxIndividual
			stagnated = 0
		} else {
			stagnated++
		}

		survival = p.SurvivalSchedule.Apply(survival)
		if reproFraction != nil {
			reproFraction = p.ReproductionElitismSchedule.Apply(reproFraction)
		}

		s.report(p.Reporter, generation, fitness, bestFitness)

		if p.FitnessThreshold != nil && bestFitness.Cmp(p.FitnessThreshold) >= 0 {
			return solution(FitnessThresholdReached, generation+1), nil
		}
		if stagnationEnabled && stagnated >= stagnationLimit {
			return solution(StagnationLimitReached, generation+1), nil
		}
	}

	return solution(MaxGenerationsReached, p.MaxGenerations), nil
}

// initialPopulation seeds encoded known solutions first and fills the rest
// with random chromosomes from the encoder's base.
func (s *System) initialPopulation(p Params) ([]genes.Chromosome, error) {
	length := s.encoder.ChromosomeLength()
	population := make([]genes.Chromosome, 0, p.InitPopSize)

	if len(p.InitialSolutions) > 0 {
		se, ok := s.encoder.(SolutionEncoder)
		if !ok {
			return nil, fmt.Errorf("ga: encoder cannot encode solutions, so initial solutions are not supported")
		}
		if len(p.InitialSolutions) > p.InitPopSize {
			return nil, fmt.Errorf("ga: %d initial solutions exceed the initial population size %d",
				len(p.InitialSolutions), p.InitPopSize)
		}
		for _, sol := range p.InitialSolutions {
			c, err := se.Encode(sol)
			if err != nil {
				return nil, fmt.Errorf("encoding initial solution: %w", err)
			}
			if c.Len() != length {
				return nil, fmt.Errorf("ga: encoded initial solution has length %d, want %d", c.Len(), length)
			}
			population = append(population, c)
		}
	}

	random := s.encoder.Base().RandomChromosomes(s.rng, length, p.InitPopSize-len(population))
	return append(population, random...), nil
}

func (s *System) evaluate(population []genes.Chromosome) []*big.Rat {
	fitness := make([]*big.Rat, len(population))
	for i, c := range population {
		fitness[i] = s.encoder.EvaluateFitness(c)
	}
	return fitness
}

// cullPopulation keeps ceil(size*survival) individuals. Without elitism
// all survivors are chosen stochastically; with it, the best
// ceil(survive*elite) individuals are kept unconditionally and the
// remainder competes for the rest. The elite stay at the tail so that the
// ascending order is preserved.
func (s *System) cullPopulation(population []genes.Chromosome, fitness []*big.Rat,
	survival *big.Rat, elitism Elitism) ([]genes.Chromosome, []*big.Rat, error) {

	size := len(population)
	surviveQuantity := ceilRatMul(size, survival)
	if surviveQuantity >= size {
		return population, fitness, nil
	}

	if !elitism.Enabled() {
		return s.selector.Select(population, fitness, surviveQuantity)
	}

	eliteQuantity := ceilRatMul(surviveQuantity, elitism.Fraction())
	if eliteQuantity >= surviveQuantity {
		return population[size-surviveQuantity:], fitness[size-surviveQuantity:], nil
	}

	compPop, compFit, err := s.selector.Select(
		population[:size-eliteQuantity], fitness[:size-eliteQuantity], surviveQuantity-eliteQuantity)
	if err != nil {
		return nil, nil, err
	}
	return append(compPop, population[size-eliteQuantity:]...),
		append(compFit, fitness[size-eliteQuantity:]...), nil
}

// growPopulation expands the survivors to the desired size by reproduction.
// Parent pairs come from an even-sized elite slice chosen deterministically
// and an even-sized competitive slice chosen stochastically; offspring of
// the final pair are truncated when only one slot remains.
func (s *System) growPopulation(survivors []genes.Chromosome, fitness []*big.Rat,
	desired int, reproFraction *big.Rat) ([]genes.Chromosome, error) {

	surviveQuantity := len(survivors)
	if desired <= surviveQuantity {
		return survivors, nil
	}

	grown := make([]genes.Chromosome, surviveQuantity, desired)
	copy(grown, survivors)

	offspringQuantity := desired - surviveQuantity
	totalParents := offspringQuantity + offspringQuantity%2

	eliteQuantity := 0
	if reproFraction != nil {
		eliteQuantity = ceilRatMul(totalParents, reproFraction)
		eliteQuantity += eliteQuantity % 2
		if eliteQuantity > totalParents {
			eliteQuantity = totalParents
		}
		if eliteQuantity > surviveQuantity {
			eliteQuantity = surviveQuantity - surviveQuantity%2
		}
	}

	parents := make([]genes.Chromosome, 0, totalParents)
	parents = append(parents, survivors[surviveQuantity-eliteQuantity:]...)
	if comp := totalParents - eliteQuantity; comp > 0 {
		compPop, _, err := s.selector.Select(
			survivors[:surviveQuantity-eliteQuantity], fitness[:surviveQuantity-eliteQuantity], comp)
		if err != nil {
			return nil, err
		}
		parents = append(parents, compPop...)
	}

	for _, pair := range iterutil.Chunk(parents, 2, totalParents/2) {
		if len(pair) < 2 {
			break
		}
		c1, c2 := s.recombinator.Recombine(s.rng, pair[0], pair[1])
		if room := desired - len(grown); room >= 2 {
			grown = append(grown, c1, c2)
		} else if room == 1 {
			grown = append(grown, c1)
		} else {
			break
		}
	}
	return grown, nil
}

// mutatePopulation applies floor(size*factor) mutations: first whole
// deterministic cycles over every individual, then a random remainder
// chosen uniformly with replacement.
func (s *System) mutatePopulation(population []genes.Chromosome, factor *big.Rat) {
	size := len(population)
	if size == 0 || factor.Sign() <= 0 {
		return
	}
	quantity := floorRatMul(size, factor)
	if quantity == 0 {
		return
	}
	base := s.encoder.Base()

	if cycles := quantity / size; cycles > 0 {
		indices := make([]int, size)
		for i := range indices {
			indices[i] = i
		}
		for i := range iterutil.CycleFor(indices, new(big.Rat).SetInt64(int64(cycles)), true) {
			population[i] = mutateChromosome(s.mutator, s.rng, population[i], base)
		}
		quantity -= cycles * size
	}

	for k := 0; k < quantity; k++ {
		i := s.rng.Intn(size)
		population[i] = mutateChromosome(s.mutator, s.rng, population[i], base)
	}
}

func (s *System) report(reporter progress.Reporter, generation int, fitness []*big.Rat, bestFitness *big.Rat) {
	if reporter == nil {
		return
	}
	values := make([]float64, len(fitness))
	for i, f := range fitness {
		values[i] = ratFloat(f)
	}
	mean, std := stat.MeanStdDev(values, nil)
	reporter.Report(generation, map[string]string{
		"best_fitness":   bestFitness.FloatString(6),
		"mean_fitness":   strconv.FormatFloat(mean, 'f', 6, 64),
		"stddev_fitness": strconv.FormatFloat(std, 'f', 6, 64),
		"population":     strconv.Itoa(len(fitness)),
	})
}

// sortByFitness sorts both sequences ascending by fitness, keeping them
// index-aligned.
func sortByFitness(population []genes.Chromosome, fitness []*big.Rat) {
	idx := make([]int, len(population))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return fitness[idx[a]].Cmp(fitness[idx[b]]) < 0
	})
	popSorted := make([]genes.Chromosome, len(population))
	fitSorted := make([]*big.Rat, len(fitness))
	for k, i := range idx {
		popSorted[k] = population[i]
		fitSorted[k] = fitness[i]
	}
	copy(population, popSorted)
	copy(fitness, fitSorted)
}

func fittest(population []genes.Chromosome, fitness []*big.Rat) (*big.Rat, genes.Chromosome) {
	maxIndex := 0
	for i, f := range fitness {
		if f.Cmp(fitness[maxIndex]) > 0 {
			maxIndex = i
		}
	}
	return new(big.Rat).Set(fitness[maxIndex]), population[maxIndex]
}
