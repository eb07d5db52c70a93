package encoders

import (
	"fmt"
	"math/big"

	"evokit/internal/genes"
)

// TargetSum scores a numeric chromosome by how close its gene sum lands to
// a target: fitness is the slack below the worst possible distance, so the
// optimum scores length*(max-min) and the worst scores 0.
type TargetSum struct {
	base   *genes.Numeric
	length int
	target int64
	bound  int64
}

func NewTargetSum(length int, min, max, target int64) (*TargetSum, error) {
	if length < 1 {
		return nil, fmt.Errorf("encoders: chromosome length must be at least 1, got %d", length)
	}
	base, err := genes.NewNumeric("target-sum", min, max)
	if err != nil {
		return nil, err
	}
	return &TargetSum{
		base:   base,
		length: length,
		target: target,
		bound:  int64(length) * (max - min),
	}, nil
}

func (e *TargetSum) Base() genes.Base { return e.base }

func (e *TargetSum) ChromosomeLength() int { return e.length }

func (e *TargetSum) Decode(c genes.Chromosome) (any, error) {
	values := make([]int64, c.Len())
	for i := range values {
		v, ok := c.Gene(i).(int64)
		if !ok {
			return nil, fmt.Errorf("encoders: gene %d is %T, want int64", i, c.Gene(i))
		}
		values[i] = v
	}
	return values, nil
}

func (e *TargetSum) Encode(solution any) (genes.Chromosome, error) {
	values, ok := solution.([]int64)
	if !ok {
		return genes.Chromosome{}, fmt.Errorf("encoders: target-sum solutions are []int64, got %T", solution)
	}
	if len(values) != e.length {
		return genes.Chromosome{}, fmt.Errorf("encoders: solution has length %d, want %d", len(values), e.length)
	}
	min, max := e.base.Range()
	gs := make([]any, len(values))
	for i, v := range values {
		if v < min || v > max {
			return genes.Chromosome{}, fmt.Errorf("encoders: value %d at index %d outside range [%d, %d]", v, i, min, max)
		}
		gs[i] = v
	}
	return genes.ListChromosome(genes.NumericKind, gs), nil
}

func (e *TargetSum) EvaluateFitness(c genes.Chromosome) *big.Rat {
	var sum int64
	for i := 0; i < c.Len(); i++ {
		sum += c.Gene(i).(int64)
	}
	distance := sum - e.target
	if distance < 0 {
		distance = -distance
	}
	slack := e.bound - distance
	if slack < 0 {
		slack = 0
	}
	return new(big.Rat).SetInt64(slack)
}
