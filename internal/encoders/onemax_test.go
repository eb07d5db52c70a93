package encoders

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evokit/internal/genes"
)

func TestNewOneMaxValidation(t *testing.T) {
	_, err := NewOneMax(0)
	assert.Error(t, err)

	e, err := NewOneMax(8)
	require.NoError(t, err)
	assert.Equal(t, 8, e.ChromosomeLength())
	assert.Same(t, genes.Bin, e.Base())
}

func TestOneMaxFitnessCountsOnes(t *testing.T) {
	e, err := NewOneMax(8)
	require.NoError(t, err)

	for text, want := range map[string]int64{
		"00000000": 0,
		"10000001": 2,
		"11111111": 8,
	} {
		got := e.EvaluateFitness(genes.TextChromosome(text))
		assert.Equal(t, 0, got.Cmp(big.NewRat(want, 1)), "fitness of %s", text)
	}
}

func TestOneMaxEncodeDecode(t *testing.T) {
	e, err := NewOneMax(4)
	require.NoError(t, err)

	c, err := e.Encode("0110")
	require.NoError(t, err)
	decoded, err := e.Decode(c)
	require.NoError(t, err)
	assert.Equal(t, "0110", decoded)

	_, err = e.Encode(42)
	assert.Error(t, err, "not a string")
	_, err = e.Encode("01")
	assert.Error(t, err, "wrong length")
	_, err = e.Encode("01x0")
	assert.Error(t, err, "not a bit string")
}
