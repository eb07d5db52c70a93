package ga

import (
	"fmt"
	"math/big"

	"evokit/internal/progress"
)

// Elitism selects between no elitism and keeping a deterministic fraction
// of the best individuals.
type Elitism struct {
	fraction *big.Rat
}

// NoElitism disables deterministic survival/reproduction of the best.
func NoElitism() Elitism { return Elitism{} }

// EliteFraction keeps the given fraction of the best deterministically.
func EliteFraction(f *big.Rat) Elitism {
	return Elitism{fraction: new(big.Rat).Set(f)}
}

// Enabled reports whether an elite split is in effect.
func (e Elitism) Enabled() bool { return e.fraction != nil }

// Fraction returns the elite fraction; only valid when Enabled.
func (e Elitism) Fraction() *big.Rat { return e.fraction }

// Stagnation bounds how many consecutive generations without improvement a
// run tolerates, either as an absolute generation count or as a proportion
// of the maximum generations.
type Stagnation struct {
	generations int
	fraction    *big.Rat
}

// NoStagnationLimit disables the stagnation check.
func NoStagnationLimit() Stagnation { return Stagnation{} }

// StagnationAfter stops a run after n stagnated generations.
func StagnationAfter(n int) Stagnation { return Stagnation{generations: n} }

// StagnationFraction stops a run after f*maxGenerations stagnated
// generations; it requires a maximum generation count to resolve against.
func StagnationFraction(f *big.Rat) Stagnation {
	return Stagnation{fraction: new(big.Rat).Set(f)}
}

// Enabled reports whether a stagnation limit is in effect.
func (s Stagnation) Enabled() bool { return s.generations > 0 || s.fraction != nil }

func (s Stagnation) resolve(maxGenerations int) (int, bool, error) {
	if s.fraction != nil {
		if maxGenerations <= 0 {
			return 0, false, fmt.Errorf("ga: a fractional stagnation limit needs a maximum generation count")
		}
		return floorRatMul(maxGenerations, s.fraction), true, nil
	}
	if s.generations > 0 {
		return s.generations, true, nil
	}
	return 0, false, nil
}

// Params configures one run of the genetic system.
type Params struct {
	// InitPopSize individuals are created up front; the population is
	// never grown beyond MaxPopSize.
	InitPopSize int
	MaxPopSize  int

	// ExpansionFactor scales the population per generation before the
	// MaxPopSize cap; SurvivalFactor is the fraction that survives
	// culling, optionally aged by SurvivalSchedule.
	ExpansionFactor  *big.Rat
	SurvivalFactor   *big.Rat
	SurvivalSchedule Schedule
	SurvivalElitism  Elitism

	// Replacement means parents are replaced by their offspring rather
	// than surviving alongside them; with it enabled the population must
	// actually grow, so ExpansionFactor*SurvivalFactor must exceed 1.
	Replacement bool

	ReproductionElitism         Elitism
	ReproductionElitismSchedule Schedule

	MutationFactor   *big.Rat
	MutationSchedule Schedule

	// DiversityBias inflates low-fitness individuals' effective fitness
	// by (max-fitness)*bias, trading convergence speed for exploration;
	// the bias is aged every generation by its schedule.
	DiversityBias         *big.Rat
	DiversityBiasSchedule Schedule

	// Termination: zero MaxGenerations means unbounded, in which case a
	// fitness threshold or an absolute stagnation limit must be set.
	MaxGenerations   int
	FitnessThreshold *big.Rat
	StagnationLimit  Stagnation

	// InitialSolutions seed the initial population through the encoder's
	// Encode method; the remainder is drawn at random from the base.
	InitialSolutions []any

	// Reporter receives one fire-and-forget status update per generation.
	Reporter progress.Reporter
}

var one = big.NewRat(1, 1)

func (p *Params) validate() error {
	if p.InitPopSize < 1 {
		return fmt.Errorf("ga: initial population size must be at least 1, got %d", p.InitPopSize)
	}
	if p.MaxPopSize < p.InitPopSize {
		return fmt.Errorf("ga: max population size %d is below the initial size %d", p.MaxPopSize, p.InitPopSize)
	}
	if p.ExpansionFactor == nil || p.ExpansionFactor.Sign() <= 0 {
		return fmt.Errorf("ga: expansion factor must be positive")
	}
	if p.SurvivalFactor == nil || p.SurvivalFactor.Sign() <= 0 {
		return fmt.Errorf("ga: survival factor must be positive")
	}
	if p.SurvivalFactor.Cmp(one) >= 0 {
		return fmt.Errorf("ga: survival factor must be less than 1, got %s", p.SurvivalFactor.RatString())
	}
	if p.Replacement {
		growth := new(big.Rat).Mul(p.ExpansionFactor, p.SurvivalFactor)
		if growth.Cmp(one) <= 0 {
			return fmt.Errorf("ga: population would shrink or not grow with expansion %s and survival %s; their product must exceed 1",
				p.ExpansionFactor.RatString(), p.SurvivalFactor.RatString())
		}
	}
	for _, e := range []struct {
		name string
		el   Elitism
	}{{"survival", p.SurvivalElitism}, {"reproduction", p.ReproductionElitism}} {
		if !e.el.Enabled() {
			continue
		}
		if e.el.Fraction().Sign() < 0 || e.el.Fraction().Cmp(one) > 0 {
			return fmt.Errorf("ga: %s elitism factor must be in [0, 1], got %s", e.name, e.el.Fraction().RatString())
		}
	}
	if p.MutationFactor != nil && p.MutationFactor.Sign() < 0 {
		return fmt.Errorf("ga: mutation factor must be non-negative, got %s", p.MutationFactor.RatString())
	}
	if p.MaxGenerations < 0 {
		return fmt.Errorf("ga: max generations must be non-negative, got %d", p.MaxGenerations)
	}
	if p.MaxGenerations == 0 && p.FitnessThreshold == nil && !p.StagnationLimit.Enabled() {
		return fmt.Errorf("ga: no termination condition: set max generations, a fitness threshold or a stagnation limit")
	}
	return nil
}
