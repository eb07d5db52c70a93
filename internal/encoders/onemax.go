// Package encoders provides concrete genetic encoders for the bundled
// optimization problems.
package encoders

import (
	"fmt"
	"math/big"

	"evokit/internal/genes"
)

// OneMax scores a binary chromosome by its count of 1-symbols; the optimum
// is the all-ones string. Solutions decode to the bit pattern itself.
type OneMax struct {
	length int
}

func NewOneMax(length int) (*OneMax, error) {
	if length < 1 {
		return nil, fmt.Errorf("encoders: chromosome length must be at least 1, got %d", length)
	}
	return &OneMax{length: length}, nil
}

func (e *OneMax) Base() genes.Base { return genes.Bin }

func (e *OneMax) ChromosomeLength() int { return e.length }

func (e *OneMax) Decode(c genes.Chromosome) (any, error) {
	return c.String(), nil
}

func (e *OneMax) Encode(solution any) (genes.Chromosome, error) {
	s, ok := solution.(string)
	if !ok {
		return genes.Chromosome{}, fmt.Errorf("encoders: onemax solutions are bit strings, got %T", solution)
	}
	if len(s) != e.length {
		return genes.Chromosome{}, fmt.Errorf("encoders: bit string has length %d, want %d", len(s), e.length)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return genes.Chromosome{}, fmt.Errorf("encoders: %q is not a bit string", s)
		}
	}
	return genes.TextChromosome(s), nil
}

func (e *OneMax) EvaluateFitness(c genes.Chromosome) *big.Rat {
	ones := 0
	for i := 0; i < c.Len(); i++ {
		if c.Gene(i).(byte) == '1' {
			ones++
		}
	}
	return new(big.Rat).SetInt64(int64(ones))
}
