package ga

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evokit/internal/genes"
)

func bitPopulation(texts ...string) ([]genes.Chromosome, []*big.Rat) {
	pop := make([]genes.Chromosome, len(texts))
	fit := make([]*big.Rat, len(texts))
	for i, s := range texts {
		pop[i] = genes.TextChromosome(s)
		fit[i] = big.NewRat(int64(i+1), 1)
	}
	return pop, fit
}

func TestValidateSelection(t *testing.T) {
	pop, fit := bitPopulation("00", "01", "10")

	assert.NoError(t, validateSelection(pop, fit, 2))
	assert.Error(t, validateSelection(pop, fit[:2], 2), "misaligned inputs")
	assert.Error(t, validateSelection(pop, fit, 0), "non-positive quantity")
	assert.Error(t, validateSelection(nil, nil, 1), "empty pool")
}

func TestProportionateRejectsNegativeFitness(t *testing.T) {
	s := NewProportionate(rand.New(rand.NewSource(3)))
	pop, fit := bitPopulation("00", "01")
	fit[1] = big.NewRat(-1, 1)

	_, _, err := s.Select(pop, fit, 1)
	assert.Error(t, err)
}

func TestProportionateFavorsFitter(t *testing.T) {
	s := NewProportionate(rand.New(rand.NewSource(3)))
	pop := []genes.Chromosome{genes.TextChromosome("0"), genes.TextChromosome("1")}
	fit := []*big.Rat{big.NewRat(1, 1), big.NewRat(9, 1)}

	selected, selFit, err := s.Select(pop, fit, 2000)
	require.NoError(t, err)
	require.Len(t, selected, 2000)
	require.Len(t, selFit, 2000)

	ones := 0
	for i, c := range selected {
		if c.String() == "1" {
			ones++
			assert.Equal(t, 0, selFit[i].Cmp(big.NewRat(9, 1)), "fitness stays aligned")
		}
	}
	assert.InDelta(t, 0.9, float64(ones)/2000, 0.03)
}

func TestProportionateUniformUnderEqualFitness(t *testing.T) {
	pop, _ := bitPopulation("00", "01", "10", "11")
	equal := []*big.Rat{big.NewRat(3, 1), big.NewRat(3, 1), big.NewRat(3, 1), big.NewRat(3, 1)}
	zero := []*big.Rat{new(big.Rat), new(big.Rat), new(big.Rat), new(big.Rat)}

	for name, fit := range map[string][]*big.Rat{"equal": equal, "all zero": zero} {
		t.Run(name, func(t *testing.T) {
			s := NewProportionate(rand.New(rand.NewSource(3)))
			selected, _, err := s.Select(pop, fit, 400)
			require.NoError(t, err)

			counts := map[string]int{}
			for _, c := range selected {
				counts[c.String()]++
			}
			for _, n := range counts {
				assert.InDelta(t, 100, n, 40)
			}
		})
	}
}

func TestRankedWeightsByPosition(t *testing.T) {
	s := NewRanked(rand.New(rand.NewSource(3)))
	assert.True(t, s.RequiresSorted())

	pop, fit := bitPopulation("00", "01", "10", "11")
	selected, _, err := s.Select(pop, fit, 4000)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, c := range selected {
		counts[c.String()]++
	}
	// position i (0-based) carries weight (i+1)/10
	assert.InDelta(t, 400, counts["00"], 120)
	assert.InDelta(t, 800, counts["01"], 160)
	assert.InDelta(t, 1200, counts["10"], 200)
	assert.InDelta(t, 1600, counts["11"], 220)
}

func TestNewTournamentValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	_, err := NewTournament(rng, 1, 1, nil)
	assert.Error(t, err, "size below 2")
	_, err = NewTournament(rng, 3, 0, nil)
	assert.Error(t, err, "chosen below 1")
	_, err = NewTournament(rng, 3, 3, nil)
	assert.Error(t, err, "chosen must leave losers")

	s, err := NewTournament(rng, 3, 1, nil)
	require.NoError(t, err)
	assert.True(t, s.RequiresSorted())

	inner := NewProportionate(rng)
	s, err = NewTournament(rng, 3, 1, inner)
	require.NoError(t, err)
	assert.False(t, s.RequiresSorted(), "inner selector decides the sorting requirement")
}

func TestTournamentKeepsTopEntrants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := NewTournament(rng, 4, 2, nil)
	require.NoError(t, err)

	pop, fit := bitPopulation("00", "01", "10", "11", "000", "001")
	selected, selFit, err := s.Select(pop, fit, 10)
	require.NoError(t, err)
	require.Len(t, selected, 20, "two winners per tournament")
	require.Len(t, selFit, 20)

	// each tournament's winners come in descending fitness order
	for k := 0; k < len(selFit); k += 2 {
		assert.True(t, selFit[k].Cmp(selFit[k+1]) >= 0)
	}
}

func TestTournamentWithInnerSelector(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inner := NewProportionate(rng)
	s, err := NewTournament(rng, 3, 2, inner)
	require.NoError(t, err)

	pop, fit := bitPopulation("00", "01", "10", "11")
	selected, selFit, err := s.Select(pop, fit, 5)
	require.NoError(t, err)
	assert.Len(t, selected, 10)
	assert.Len(t, selFit, 10)
}

func TestSelectorScaleDefaultsToIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	fit := []*big.Rat{big.NewRat(1, 2), big.NewRat(3, 4)}

	assert.Equal(t, fit, NewProportionate(rng).Scale(fit))
	assert.Equal(t, fit, NewRanked(rng).Scale(fit))

	s, err := NewTournament(rng, 2, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, fit, s.Scale(fit))
}

func TestNilRNGGetsDefaultSeed(t *testing.T) {
	s := NewProportionate(nil)
	pop, fit := bitPopulation("00", "01")
	_, _, err := s.Select(pop, fit, 3)
	assert.NoError(t, err)
}
