package ga

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evokit/internal/genes"
)

func TestNewPointMutatorRejectsZeroPoints(t *testing.T) {
	_, err := NewPointMutator(0)
	assert.Error(t, err)
	_, err = NewPointMutator(-3)
	assert.Error(t, err)
}

func TestPointMutatorChangesAtMostNPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m, err := NewPointMutator(2)
	require.NoError(t, err)

	c := genes.TextChromosome("00000000")
	for trial := 0; trial < 50; trial++ {
		out := m.Mutate(rng, c, genes.Bin)
		require.Equal(t, 8, out.Len())
		changed := 0
		for i := 0; i < 8; i++ {
			if out.Gene(i) != c.Gene(i) {
				changed++
			}
		}
		// replacements draw from the full alphabet, so a point may keep
		// its old symbol, and repeated positions may collapse
		assert.LessOrEqual(t, changed, 2)
	}
}

func TestSwapMutatorExchangesTwoDistinctPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := genes.ListChromosome(genes.NumericKind, []any{int64(1), int64(2), int64(3), int64(4), int64(5)})

	for trial := 0; trial < 50; trial++ {
		out := SwapMutator{}.Mutate(rng, c, nil)
		require.Equal(t, c.Len(), out.Len())

		var moved []int
		for i := 0; i < c.Len(); i++ {
			if out.Gene(i) != c.Gene(i) {
				moved = append(moved, i)
			}
		}
		require.Len(t, moved, 2, "exactly two positions change")
		i, j := moved[0], moved[1]
		assert.Equal(t, c.Gene(i), out.Gene(j))
		assert.Equal(t, c.Gene(j), out.Gene(i))
	}
}

func TestSwapMutatorSingleGeneIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := genes.TextChromosome("1")
	assert.True(t, c.Equal(SwapMutator{}.Mutate(rng, c, genes.Bin)))
}

func TestShuffleMutatorPermutesGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := genes.ListChromosome(genes.NumericKind, []any{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)})

	for trial := 0; trial < 50; trial++ {
		out := ShuffleMutator{}.Mutate(rng, c, nil)
		require.Equal(t, c.Len(), out.Len())
		assert.ElementsMatch(t, c.Genes(), out.Genes())
	}
}

func TestInversionMutatorReversesSubRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := genes.ListChromosome(genes.NumericKind, []any{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)})

	for trial := 0; trial < 50; trial++ {
		out := InversionMutator{}.Mutate(rng, c, nil)
		require.Equal(t, c.Len(), out.Len())
		assert.ElementsMatch(t, c.Genes(), out.Genes())

		// outside some contiguous window everything matches, inside it
		// the order is reversed
		lo, hi := 0, c.Len()
		for lo < hi && out.Gene(lo) == c.Gene(lo) {
			lo++
		}
		for hi > lo && out.Gene(hi-1) == c.Gene(hi-1) {
			hi--
		}
		for k := lo; k < hi; k++ {
			assert.Equal(t, c.Gene(lo+hi-1-k), out.Gene(k))
		}
	}
}

func TestRandSubRangeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		i, j := randSubRange(rng, 10)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, j)
		assert.LessOrEqual(t, j, 10)
	}

	i, j := randSubRange(rng, 0)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, j)
}

// sortingMutator sorts numeric genes ascending when dispatched through the
// specialized path, and reports whether the generic path was ever taken.
type sortingMutator struct {
	genericCalled bool
}

func (m *sortingMutator) Mutate(_ *rand.Rand, c genes.Chromosome, _ genes.Base) genes.Chromosome {
	m.genericCalled = true
	return c
}

func (m *sortingMutator) MutateNumeric(_ *rand.Rand, c genes.Chromosome, _ *genes.Numeric) genes.Chromosome {
	gs := c.Genes()
	sort.Slice(gs, func(a, b int) bool { return gs[a].(int64) < gs[b].(int64) })
	return c.WithGenes(gs)
}

func TestMutateChromosomeDispatch(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	base, err := genes.NewNumeric("dispatch", 0, 9)
	require.NoError(t, err)
	c := genes.ListChromosome(genes.NumericKind, []any{int64(3), int64(1), int64(2)})

	m := &sortingMutator{}
	out := mutateChromosome(m, rng, c, base)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, out.Genes())
	assert.False(t, m.genericCalled)

	// no bit-string specialization, so the generic method is the fallback
	out = mutateChromosome(m, rng, genes.TextChromosome("0101"), genes.Bin)
	assert.True(t, m.genericCalled)
	assert.Equal(t, "0101", out.String())
}
