package ga

import (
	"fmt"
	"math"
	"math/big"
)

// DecayFunc ages a bias value once per generation.
type DecayFunc func(value, decay *big.Rat) *big.Rat

// LinearDecay subtracts the decay rate, floored at zero.
func LinearDecay(value, decay *big.Rat) *big.Rat {
	r := new(big.Rat).Sub(value, decay)
	if r.Sign() < 0 {
		return new(big.Rat)
	}
	return r
}

// PolynomialDecay raises the value to the power 1/(1-decay). The fractional
// exponent rounds through float64; this is the one schedule that is not
// exact in rational arithmetic.
func PolynomialDecay(value, decay *big.Rat) *big.Rat {
	v, _ := value.Float64()
	d, _ := decay.Float64()
	if d >= 1 {
		return new(big.Rat)
	}
	r := new(big.Rat)
	r.SetFloat64(math.Pow(v, 1/(1-d)))
	return r
}

// ExponentialDecay multiplies the value by (1 - decay).
func ExponentialDecay(value, decay *big.Rat) *big.Rat {
	factor := new(big.Rat).Sub(big.NewRat(1, 1), decay)
	return new(big.Rat).Mul(value, factor)
}

// DecayFuncByName resolves "lin", "pol" or "exp" to its decay function.
func DecayFuncByName(name string) (DecayFunc, error) {
	switch name {
	case "lin":
		return LinearDecay, nil
	case "pol":
		return PolynomialDecay, nil
	case "exp":
		return ExponentialDecay, nil
	default:
		return nil, fmt.Errorf("ga: unknown decay function %q", name)
	}
}

// Schedule optionally ages a bias value by a decay function once per
// generation. The zero value leaves values unchanged.
type Schedule struct {
	fn   DecayFunc
	rate *big.Rat
}

// NoDecay returns the schedule that never changes its value.
func NoDecay() Schedule { return Schedule{} }

// DecaySchedule builds a schedule from a decay function name and rate.
func DecaySchedule(name string, rate *big.Rat) (Schedule, error) {
	fn, err := DecayFuncByName(name)
	if err != nil {
		return Schedule{}, err
	}
	if rate == nil {
		return Schedule{}, fmt.Errorf("ga: decay schedule %q needs a rate", name)
	}
	return Schedule{fn: fn, rate: new(big.Rat).Set(rate)}, nil
}

// Enabled reports whether the schedule ages its value at all.
func (s Schedule) Enabled() bool { return s.fn != nil }

// Apply ages the value one generation.
func (s Schedule) Apply(value *big.Rat) *big.Rat {
	if s.fn == nil {
		return value
	}
	return s.fn(value, s.rate)
}
