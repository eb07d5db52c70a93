package ga

import "math/big"

// ceilRatMul returns ceil(n * f) for non-negative n and f.
func ceilRatMul(n int, f *big.Rat) int {
	r := new(big.Rat).Mul(new(big.Rat).SetInt64(int64(n)), f)
	q, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return int(q.Int64())
}

// floorRatMul returns floor(n * f) for non-negative n and f.
func floorRatMul(n int, f *big.Rat) int {
	r := new(big.Rat).Mul(new(big.Rat).SetInt64(int64(n)), f)
	return int(new(big.Int).Quo(r.Num(), r.Denom()).Int64())
}

func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}
