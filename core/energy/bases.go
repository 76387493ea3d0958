// core/energy/bases.go
// Nucleotide alphabet and pair typing for the RNA nearest-neighbor model.
// DNA input is tolerated: T parses as U.
package energy

import "fmt"

type Base uint8

const (
	A Base = iota
	C
	G
	U
	N // ambiguous / unknown; never pairs
	BaseCount = 5
)

func ParseBase(c byte) (Base, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'U', 'u', 'T', 't':
		return U, nil
	case 'N', 'n':
		return N, nil
	default:
		return N, fmt.Errorf("unsupported nucleotide %q", c)
	}
}

// ParseSequence converts a sequence string, rejecting unknown symbols.
func ParseSequence(s string) ([]Base, error) {
	seq := make([]Base, len(s))
	for i := 0; i < len(s); i++ {
		b, err := ParseBase(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		seq[i] = b
	}
	return seq, nil
}

// ParseSequenceLossy converts unknown symbols to N instead of failing.
func ParseSequenceLossy(s string) []Base {
	seq := make([]Base, len(s))
	for i := 0; i < len(s); i++ {
		b, err := ParseBase(s[i])
		if err != nil {
			b = N
		}
		seq[i] = b
	}
	return seq
}

func (b Base) String() string {
	return [BaseCount]string{"A", "C", "G", "U", "N"}[b]
}

// SequenceString renders a base slice back to text.
func SequenceString(seq []Base) string {
	out := make([]byte, len(seq))
	for i, b := range seq {
		out[i] = "ACGUN"[b]
	}
	return string(out)
}

// PairType indexes the nearest-neighbor tables. Order is fixed: parameter
// tables are laid out in this order.
type PairType uint8

const (
	AU PairType = iota
	UA
	CG
	GC
	GU
	UG
	NN // not a pair
	PairCount = 7
)

var pairLookup = func() [BaseCount][BaseCount]PairType {
	var t [BaseCount][BaseCount]PairType
	for i := range t {
		for j := range t[i] {
			t[i][j] = NN
		}
	}
	t[A][U] = AU
	t[U][A] = UA
	t[C][G] = CG
	t[G][C] = GC
	t[G][U] = GU
	t[U][G] = UG
	return t
}()

// PairTypeOf classifies the ordered pair (b1, b2).
func PairTypeOf(b1, b2 Base) PairType { return pairLookup[b1][b2] }

func (p PairType) CanPair() bool { return p != NN }

// RUEnd reports whether the pair ends in a weak (A-U or G-U) closing,
// which carries a terminal penalty in the energy model. Unknown pairs are
// treated as weak.
func (p PairType) RUEnd() bool {
	switch p {
	case AU, UA, GU, UG, NN:
		return true
	}
	return false
}

// Invert swaps the two strands of the pair.
func (p PairType) Invert() PairType {
	switch p {
	case AU:
		return UA
	case UA:
		return AU
	case CG:
		return GC
	case GC:
		return CG
	case GU:
		return UG
	case UG:
		return GU
	}
	return NN
}

func (p PairType) String() string {
	return [PairCount]string{"A-U", "U-A", "C-G", "G-C", "G-U", "U-G", "N-N"}[p]
}
