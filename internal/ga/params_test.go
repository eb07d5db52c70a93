package ga

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		InitPopSize:         10,
		MaxPopSize:          20,
		ExpansionFactor:     big.NewRat(3, 2),
		SurvivalFactor:      big.NewRat(1, 2),
		SurvivalElitism:     NoElitism(),
		ReproductionElitism: NoElitism(),
		MutationFactor:      big.NewRat(1, 10),
		MaxGenerations:      5,
		StagnationLimit:     NoStagnationLimit(),
	}
}

func TestParamsValidate(t *testing.T) {
	p := validParams()
	assert.NoError(t, p.validate())

	cases := map[string]func(*Params){
		"zero initial population":     func(p *Params) { p.InitPopSize = 0 },
		"max below initial":           func(p *Params) { p.MaxPopSize = 5 },
		"nil expansion factor":        func(p *Params) { p.ExpansionFactor = nil },
		"non-positive expansion":      func(p *Params) { p.ExpansionFactor = new(big.Rat) },
		"nil survival factor":         func(p *Params) { p.SurvivalFactor = nil },
		"survival factor of one":      func(p *Params) { p.SurvivalFactor = big.NewRat(1, 1) },
		"survival factor above one":   func(p *Params) { p.SurvivalFactor = big.NewRat(3, 2) },
		"replacement without growth":  func(p *Params) { p.Replacement = true; p.ExpansionFactor = big.NewRat(2, 1); p.SurvivalFactor = big.NewRat(1, 2) },
		"survival elitism above one":  func(p *Params) { p.SurvivalElitism = EliteFraction(big.NewRat(3, 2)) },
		"negative reproduction elite": func(p *Params) { p.ReproductionElitism = EliteFraction(big.NewRat(-1, 2)) },
		"negative mutation factor":    func(p *Params) { p.MutationFactor = big.NewRat(-1, 10) },
		"negative max generations":    func(p *Params) { p.MaxGenerations = -1 },
		"unbounded without any limit": func(p *Params) { p.MaxGenerations = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			assert.Error(t, p.validate())
		})
	}
}

func TestParamsValidateUnboundedWithThreshold(t *testing.T) {
	p := validParams()
	p.MaxGenerations = 0
	p.FitnessThreshold = big.NewRat(8, 1)
	assert.NoError(t, p.validate())

	p.FitnessThreshold = nil
	p.StagnationLimit = StagnationAfter(10)
	assert.NoError(t, p.validate())
}

func TestElitism(t *testing.T) {
	assert.False(t, NoElitism().Enabled())

	f := big.NewRat(1, 4)
	e := EliteFraction(f)
	assert.True(t, e.Enabled())
	assert.Equal(t, 0, e.Fraction().Cmp(f))

	f.SetInt64(9)
	assert.Equal(t, 0, e.Fraction().Cmp(big.NewRat(1, 4)), "fraction must be copied")
}

func TestStagnationResolve(t *testing.T) {
	_, enabled, err := NoStagnationLimit().resolve(100)
	require.NoError(t, err)
	assert.False(t, enabled)

	limit, enabled, err := StagnationAfter(7).resolve(0)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, 7, limit)

	limit, enabled, err = StagnationFraction(big.NewRat(1, 4)).resolve(50)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, 12, limit, "floor of 50/4")

	_, _, err = StagnationFraction(big.NewRat(1, 4)).resolve(0)
	assert.Error(t, err, "fractional limit needs a generation bound")
}
