// core/structure/pairtable.go
// Pair-table representation of a single-stranded secondary structure.
// Position i is paired with PairTable[i], or Unpaired. Pairings are kept
// symmetric and non-crossing by construction: the only mutators are Add and
// Remove, and Add rejects crossing or undersized pairs before touching the
// table.
package structure

// Unpaired is the partner value of an unpaired position.
const Unpaired = -1

type PairTable []int

// New returns a fully unpaired table of length n.
func New(n int) PairTable {
	pt := make(PairTable, n)
	for i := range pt {
		pt[i] = Unpaired
	}
	return pt
}

// FromDotBracket parses a "(((...)))"-style string.
func FromDotBracket(s string) (PairTable, error) {
	pt := New(len(s))
	var stack []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, &ParseError{Pos: i, Msg: "unmatched ')'"}
			}
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pt[i] = j
			pt[j] = i
		case '.':
		default:
			return nil, &ParseError{Pos: i, Char: s[i]}
		}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Pos: stack[len(stack)-1], Msg: "unmatched '('"}
	}
	return pt, nil
}

// DotBracket renders the table back to bracket notation.
func (pt PairTable) DotBracket() string {
	out := make([]byte, len(pt))
	for i, j := range pt {
		switch {
		case j == Unpaired:
			out[i] = '.'
		case j > i:
			out[i] = '('
		default:
			out[i] = ')'
		}
	}
	return string(out)
}

func (pt PairTable) Clone() PairTable {
	cp := make(PairTable, len(pt))
	copy(cp, pt)
	return cp
}

// Extend returns a copy grown by extra unpaired positions at the 3' end.
// Existing pairings are untouched.
func (pt PairTable) Extend(extra int) PairTable {
	cp := make(PairTable, len(pt)+extra)
	copy(cp, pt)
	for i := len(pt); i < len(cp); i++ {
		cp[i] = Unpaired
	}
	return cp
}

// Paired reports whether position i has a partner.
func (pt PairTable) Paired(i int) bool { return pt[i] != Unpaired }

// NumPairs counts base pairs.
func (pt PairTable) NumPairs() int {
	n := 0
	for i, j := range pt {
		if j > i {
			n++
		}
	}
	return n
}

// WellFormed reports whether no pairing inside [i,j) points outside [i,j).
func (pt PairTable) WellFormed(i, j int) bool {
	for k := i; k < j; k++ {
		if l := pt[k]; l != Unpaired && (l < i || l >= j) {
			return false
		}
	}
	return true
}

// CanAdd checks whether pairing (i,j) would keep the table valid: both
// positions in range and unpaired, at least minLoop unpaired residues
// enclosed, and no crossing with existing pairs.
func (pt PairTable) CanAdd(i, j, minLoop int) error {
	if i > j {
		i, j = j, i
	}
	if i < 0 || j >= len(pt) {
		return errBounds(j, len(pt))
	}
	if i == j {
		return errSelfPair(i)
	}
	if pt[i] != Unpaired {
		return errOccupied(i)
	}
	if pt[j] != Unpaired {
		return errOccupied(j)
	}
	if j-i-1 < minLoop {
		return errLoopSize(i, j, minLoop)
	}
	if !pt.WellFormed(i+1, j) {
		return errCrossing(i, j)
	}
	return nil
}

// Add inserts pair (i,j) after validation.
func (pt PairTable) Add(i, j, minLoop int) error {
	if err := pt.CanAdd(i, j, minLoop); err != nil {
		return err
	}
	pt[i], pt[j] = j, i
	return nil
}

// Remove deletes the pair containing position i.
func (pt PairTable) Remove(i int) error {
	if i < 0 || i >= len(pt) {
		return errBounds(i, len(pt))
	}
	j := pt[i]
	if j == Unpaired {
		return errNotPaired(i)
	}
	pt[i], pt[j] = Unpaired, Unpaired
	return nil
}

// EnclosingPair returns the closest pair (p,q) with p < i and q > j, or
// ok=false when (i,j) sits in the exterior loop. Scans outward from j, so the
// cost is proportional to the distance to the enclosing helix.
func (pt PairTable) EnclosingPair(i, j int) (p, q int, ok bool) {
	for q = j; q < len(pt); q++ {
		if p = pt[q]; p != Unpaired && p < i {
			return p, q, true
		}
	}
	return 0, 0, false
}
