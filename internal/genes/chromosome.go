package genes

import (
	"fmt"
	"strings"
)

// Kind tags the closed set of gene base variants.
type Kind int

const (
	BitStringKind Kind = iota
	NumericKind
	ArbitraryKind
)

func (k Kind) String() string {
	switch k {
	case BitStringKind:
		return "bitstring"
	case NumericKind:
		return "numeric"
	case ArbitraryKind:
		return "arbitrary"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Chromosome is an ordered, fixed-length sequence of genes, uniform in base
// kind. Bit-string chromosomes are backed by a string of numeral symbols;
// numeric and arbitrary chromosomes by a value slice. Chromosomes are
// values: every operation returns a new chromosome and never aliases the
// receiver's backing storage.
type Chromosome struct {
	kind Kind
	text string
	vals []any
}

// TextChromosome builds a bit-string-backed chromosome from a symbol string.
func TextChromosome(s string) Chromosome {
	return Chromosome{kind: BitStringKind, text: s}
}

// ListChromosome builds a slice-backed chromosome of the given kind.
func ListChromosome(kind Kind, gs []any) Chromosome {
	vals := make([]any, len(gs))
	copy(vals, gs)
	return Chromosome{kind: kind, vals: vals}
}

// Kind returns the base kind the chromosome is encoded in.
func (c Chromosome) Kind() Kind { return c.kind }

// Len returns the number of genes.
func (c Chromosome) Len() int {
	if c.kind == BitStringKind {
		return len(c.text)
	}
	return len(c.vals)
}

// Gene returns the gene at position i. Bit-string genes are single bytes.
func (c Chromosome) Gene(i int) any {
	if c.kind == BitStringKind {
		return c.text[i]
	}
	return c.vals[i]
}

// Genes returns a copy of all genes in order.
func (c Chromosome) Genes() []any {
	gs := make([]any, c.Len())
	for i := range gs {
		gs[i] = c.Gene(i)
	}
	return gs
}

// Slice returns the sub-sequence of genes in [i, j).
func (c Chromosome) Slice(i, j int) Chromosome {
	if c.kind == BitStringKind {
		return Chromosome{kind: c.kind, text: c.text[i:j]}
	}
	vals := make([]any, j-i)
	copy(vals, c.vals[i:j])
	return Chromosome{kind: c.kind, vals: vals}
}

// Concat joins chromosome parts of the same kind into one chromosome.
func Concat(parts ...Chromosome) Chromosome {
	if len(parts) == 0 {
		return Chromosome{}
	}
	kind := parts[0].kind
	if kind == BitStringKind {
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(p.text)
		}
		return Chromosome{kind: kind, text: b.String()}
	}
	var vals []any
	for _, p := range parts {
		vals = append(vals, p.vals...)
	}
	return Chromosome{kind: kind, vals: vals}
}

// Replace overwrites the genes at the given positions, abstracting over the
// backing representation. Positions may repeat; later writes win.
func (c Chromosome) Replace(positions []int, gs []any) Chromosome {
	if c.kind == BitStringKind {
		bs := []byte(c.text)
		for k, pos := range positions {
			bs[pos] = geneByte(gs[k])
		}
		return Chromosome{kind: c.kind, text: string(bs)}
	}
	vals := make([]any, len(c.vals))
	copy(vals, c.vals)
	for k, pos := range positions {
		vals[pos] = gs[k]
	}
	return Chromosome{kind: c.kind, vals: vals}
}

// WithGenes rebuilds a chromosome of the same kind and backing from a full
// gene sequence, as produced by Genes.
func (c Chromosome) WithGenes(gs []any) Chromosome {
	if c.kind == BitStringKind {
		bs := make([]byte, len(gs))
		for i, g := range gs {
			bs[i] = geneByte(g)
		}
		return Chromosome{kind: c.kind, text: string(bs)}
	}
	return ListChromosome(c.kind, gs)
}

// Equal reports whether two chromosomes have the same kind and genes.
func (c Chromosome) Equal(o Chromosome) bool {
	if c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	if c.kind == BitStringKind {
		return c.text == o.text
	}
	for i := range c.vals {
		if c.vals[i] != o.vals[i] {
			return false
		}
	}
	return true
}

// String renders the chromosome for logs and solution output.
func (c Chromosome) String() string {
	if c.kind == BitStringKind {
		return c.text
	}
	parts := make([]string, len(c.vals))
	for i, v := range c.vals {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// geneByte extracts the single symbol of a bit-string gene. Bit-string
// bases hand genes around as bytes, but one-symbol strings are accepted
// from caller-built gene sets.
func geneByte(g any) byte {
	switch v := g.(type) {
	case byte:
		return v
	case string:
		return v[0]
	default:
		panic(fmt.Sprintf("genes: %v (%T) is not a bit-string gene", g, g))
	}
}
