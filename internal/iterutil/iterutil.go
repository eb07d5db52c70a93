// Package iterutil provides the pure, stateless iteration helpers the
// evolution engine composes against: index chunking, iterator chunking,
// fractional cycling, n-largest selection and a read-only parallel zip.
package iterutil

import (
	"iter"
	"math/big"
	"sort"
)

// Chunk splits s by index into up to quantity chunks of the given size.
// Chunks alias the source slice; the final chunk is truncated when the
// source runs out.
func Chunk[T any](s []T, size, quantity int) [][]T {
	if size < 1 || quantity < 1 {
		return nil
	}
	var chunks [][]T
	for i := 0; i < quantity*size && i < len(s); i += size {
		end := i + size
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

// ChunkSeq consumes seq and groups its items into up to quantity chunks of
// the given size, for sources without random access.
func ChunkSeq[T any](seq iter.Seq[T], size, quantity int) [][]T {
	if size < 1 || quantity < 1 {
		return nil
	}
	var chunks [][]T
	cur := make([]T, 0, size)
	for v := range seq {
		cur = append(cur, v)
		if len(cur) == size {
			chunks = append(chunks, cur)
			if len(chunks) == quantity {
				return chunks
			}
			cur = make([]T, 0, size)
		}
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// CycleFor yields the items of s cycled for the given number of cycles,
// which may be fractional. A partial final cycle is rounded down when
// roundDown is set and rounded up otherwise, so the total number of items
// yielded is floor(len(s)*cycles) or ceil(len(s)*cycles) respectively.
func CycleFor[T any](s []T, cycles *big.Rat, roundDown bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(s) == 0 || cycles.Sign() <= 0 {
			return
		}
		total := new(big.Rat).Mul(cycles, new(big.Rat).SetInt64(int64(len(s))))
		n := new(big.Int).Quo(total.Num(), total.Denom())
		if !roundDown && !total.IsInt() {
			n.Add(n, big.NewInt(1))
		}
		count := n.Int64()
		for i := int64(0); i < count; i++ {
			if !yield(s[i%int64(len(s))]) {
				return
			}
		}
	}
}

// MaxN returns the n largest elements of s under the given ordering,
// largest first. The source is not modified.
func MaxN[T any](s []T, n int, less func(a, b T) bool) []T {
	if n < 1 {
		return nil
	}
	sorted := make([]T, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[j], sorted[i]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Zip is a read-only parallel view over several same-typed sequences. By
// default its length is that of the shortest sequence; with a longest-wins
// policy, shorter sequences are padded with the fill value.
type Zip[T any] struct {
	seqs    [][]T
	longest bool
	fill    T
	length  int
}

// NewZip builds a shortest-wins zip view.
func NewZip[T any](seqs ...[]T) *Zip[T] {
	var zero T
	return newZip(false, zero, seqs)
}

// NewZipLongest builds a longest-wins zip view padding with fill.
func NewZipLongest[T any](fill T, seqs ...[]T) *Zip[T] {
	return newZip(true, fill, seqs)
}

func newZip[T any](longest bool, fill T, seqs [][]T) *Zip[T] {
	z := &Zip[T]{seqs: seqs, longest: longest, fill: fill}
	for i, s := range seqs {
		if i == 0 || (longest && len(s) > z.length) || (!longest && len(s) < z.length) {
			z.length = len(s)
		}
	}
	if len(seqs) == 0 {
		z.length = 0
	}
	return z
}

// Len returns the number of rows in the view.
func (z *Zip[T]) Len() int { return z.length }

// At returns row i: one item per zipped sequence, using the fill value for
// exhausted sequences under the longest-wins policy.
func (z *Zip[T]) At(i int) []T {
	row := make([]T, len(z.seqs))
	for k, s := range z.seqs {
		if i < len(s) {
			row[k] = s[i]
		} else {
			row[k] = z.fill
		}
	}
	return row
}

// Rows iterates the view in order.
func (z *Zip[T]) Rows() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for i := 0; i < z.length; i++ {
			if !yield(i, z.At(i)) {
				return
			}
		}
	}
}
