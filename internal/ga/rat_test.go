package ga

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilRatMul(t *testing.T) {
	assert.Equal(t, 2, ceilRatMul(4, big.NewRat(1, 2)))
	assert.Equal(t, 3, ceilRatMul(5, big.NewRat(1, 2)))
	assert.Equal(t, 1, ceilRatMul(1, big.NewRat(1, 100)))
	assert.Equal(t, 0, ceilRatMul(0, big.NewRat(3, 2)))
	assert.Equal(t, 6, ceilRatMul(4, big.NewRat(3, 2)))
}

func TestFloorRatMul(t *testing.T) {
	assert.Equal(t, 2, floorRatMul(4, big.NewRat(1, 2)))
	assert.Equal(t, 2, floorRatMul(5, big.NewRat(1, 2)))
	assert.Equal(t, 0, floorRatMul(1, big.NewRat(1, 100)))
	assert.Equal(t, 6, floorRatMul(4, big.NewRat(3, 2)))
}

func TestRatFloat(t *testing.T) {
	assert.InDelta(t, 0.5, ratFloat(big.NewRat(1, 2)), 1e-15)
}
