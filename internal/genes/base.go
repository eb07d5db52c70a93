package genes

import (
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
)

// Base is the alphabet a gene may take, and a source of random genes and
// chromosomes drawn from that alphabet.
type Base interface {
	Kind() Kind
	Name() string
	// RandomGenes returns the given quantity of random genes.
	RandomGenes(rng *rand.Rand, quantity int) []any
	// RandomChromosomes returns the given quantity of random chromosomes
	// of the given length.
	RandomChromosomes(rng *rand.Rand, length, quantity int) []Chromosome
}

// BitString is a gene base whose genes are single symbols of a fixed-width
// numeral system: each gene covers bits random bits formatted in the
// system's radix.
type BitString struct {
	name  string
	radix int
	bits  uint
}

// Stock bit-string bases.
var (
	Bin = &BitString{name: "binary", radix: 2, bits: 1}
	Oct = &BitString{name: "octal", radix: 8, bits: 3}
	Hex = &BitString{name: "hexadecimal", radix: 16, bits: 4}
)

// BitStringByName resolves "bin", "oct" or "hex" to its stock base.
func BitStringByName(name string) (*BitString, error) {
	switch name {
	case "bin":
		return Bin, nil
	case "oct":
		return Oct, nil
	case "hex":
		return Hex, nil
	default:
		return nil, fmt.Errorf("genes: unknown bit-string base %q", name)
	}
}

func (b *BitString) Kind() Kind   { return BitStringKind }
func (b *BitString) Name() string { return b.name }

// Bits returns the number of bits one gene covers.
func (b *BitString) Bits() uint { return b.bits }

// TotalValues returns the number of values a single gene can take.
func (b *BitString) TotalValues() int { return 1 << b.bits }

// ChromosomeBits returns the bits needed for a chromosome of the given length.
func (b *BitString) ChromosomeBits(length int) uint { return b.bits * uint(length) }

func (b *BitString) String() string {
	return fmt.Sprintf("BitString :: %s, values: %d, bits/gene: %d", b.name, b.TotalValues(), b.bits)
}

func (b *BitString) RandomGenes(rng *rand.Rand, quantity int) []any {
	gs := make([]any, quantity)
	for i := range gs {
		gs[i] = formatSymbol(rng.Intn(b.TotalValues()), b.radix)
	}
	return gs
}

func (b *BitString) RandomChromosomes(rng *rand.Rand, length, quantity int) []Chromosome {
	bound := new(big.Int).Lsh(big.NewInt(1), b.ChromosomeBits(length))
	cs := make([]Chromosome, quantity)
	for i := range cs {
		n := new(big.Int).Rand(rng, bound)
		text := n.Text(b.radix)
		if len(text) < length {
			text = strings.Repeat("0", length-len(text)) + text
		}
		cs[i] = TextChromosome(text)
	}
	return cs
}

func formatSymbol(v, radix int) byte {
	return strconv.FormatInt(int64(v), radix)[0]
}

// Numeric is a gene base whose genes are integers drawn uniformly from an
// inclusive range.
type Numeric struct {
	name     string
	min, max int64
}

// NewNumeric builds a numeric base over the inclusive range [min, max].
func NewNumeric(name string, min, max int64) (*Numeric, error) {
	if min >= max {
		return nil, fmt.Errorf("genes: minimum of range must be less than maximum, got [%d, %d]", min, max)
	}
	return &Numeric{name: name, min: min, max: max}, nil
}

func (n *Numeric) Kind() Kind   { return NumericKind }
func (n *Numeric) Name() string { return n.name }

// Range returns the inclusive gene value range.
func (n *Numeric) Range() (int64, int64) { return n.min, n.max }

func (n *Numeric) String() string {
	return fmt.Sprintf("Numeric :: %s, range: [%d, %d]", n.name, n.min, n.max)
}

func (n *Numeric) randomGene(rng *rand.Rand) int64 {
	return n.min + rng.Int63n(n.max-n.min+1)
}

func (n *Numeric) RandomGenes(rng *rand.Rand, quantity int) []any {
	gs := make([]any, quantity)
	for i := range gs {
		gs[i] = n.randomGene(rng)
	}
	return gs
}

func (n *Numeric) RandomChromosomes(rng *rand.Rand, length, quantity int) []Chromosome {
	cs := make([]Chromosome, quantity)
	for i := range cs {
		cs[i] = Chromosome{kind: NumericKind, vals: n.RandomGenes(rng, length)}
	}
	return cs
}

// Arbitrary is a gene base whose genes are drawn uniformly, with
// replacement, from a fixed set of permissible values.
type Arbitrary struct {
	name   string
	values []any
}

// NewArbitrary builds an arbitrary base over the given value set.
func NewArbitrary(name string, values ...any) (*Arbitrary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("genes: arbitrary base %q needs at least one value", name)
	}
	vs := make([]any, len(values))
	copy(vs, values)
	return &Arbitrary{name: name, values: vs}, nil
}

func (a *Arbitrary) Kind() Kind   { return ArbitraryKind }
func (a *Arbitrary) Name() string { return a.name }

// Values returns a copy of the permissible gene values.
func (a *Arbitrary) Values() []any {
	vs := make([]any, len(a.values))
	copy(vs, a.values)
	return vs
}

func (a *Arbitrary) String() string {
	return fmt.Sprintf("Arbitrary :: %s, values: %d", a.name, len(a.values))
}

func (a *Arbitrary) RandomGenes(rng *rand.Rand, quantity int) []any {
	gs := make([]any, quantity)
	for i := range gs {
		gs[i] = a.values[rng.Intn(len(a.values))]
	}
	return gs
}

func (a *Arbitrary) RandomChromosomes(rng *rand.Rand, length, quantity int) []Chromosome {
	cs := make([]Chromosome, quantity)
	for i := range cs {
		cs[i] = Chromosome{kind: ArbitraryKind, vals: a.RandomGenes(rng, length)}
	}
	return cs
}
