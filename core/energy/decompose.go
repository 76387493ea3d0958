// core/energy/decompose.go
// Full loop decomposition of a secondary structure, plus targeted lookups
// for the loop closed by a given pair or containing a given position.
package energy

import (
	"fmt"

	"rfold-core/structure"
)

// branchesBetween collects the outermost pairs in pt[lo:hi] in 5'→3' order.
// The caller guarantees no pair in the range reaches outside it.
func branchesBetween(pt structure.PairTable, lo, hi int) ([]BasePair, error) {
	var out []BasePair
	for k := lo; k < hi; {
		j := pt[k]
		switch {
		case j == structure.Unpaired:
			k++
		case j < k:
			return nil, fmt.Errorf("pair (%d,%d) crosses the range [%d,%d)", j, k, lo, hi)
		case j >= hi:
			return nil, fmt.Errorf("pair (%d,%d) escapes the range [%d,%d)", k, j, lo, hi)
		default:
			out = append(out, BasePair{k, j})
			k = j + 1
		}
	}
	return out, nil
}

// LoopClosedBy returns the loop whose closing pair is (i,j).
func LoopClosedBy(pt structure.PairTable, i, j int) (Loop, error) {
	if i < 0 || j >= len(pt) || pt[i] != j {
		return Loop{}, fmt.Errorf("(%d,%d) is not a pair", i, j)
	}
	branches, err := branchesBetween(pt, i+1, j)
	if err != nil {
		return Loop{}, err
	}
	closing := BasePair{i, j}
	return Classify(&closing, branches), nil
}

// ExteriorLoop returns the loop outside all pairs.
func ExteriorLoop(pt structure.PairTable) (Loop, error) {
	branches, err := branchesBetween(pt, 0, len(pt))
	if err != nil {
		return Loop{}, err
	}
	return Classify(nil, branches), nil
}

// LoopContaining returns the loop that the unpaired position k belongs to.
func LoopContaining(pt structure.PairTable, k int) (Loop, error) {
	if k < 0 || k >= len(pt) {
		return Loop{}, fmt.Errorf("position %d out of range", k)
	}
	if pt.Paired(k) {
		return Loop{}, fmt.Errorf("position %d is paired", k)
	}
	if p, q, ok := pt.EnclosingPair(k, k); ok {
		return LoopClosedBy(pt, p, q)
	}
	return ExteriorLoop(pt)
}

// ForEachLoop visits every loop of the structure, exterior first, then in
// 5'→3' depth-first order of the closing pairs. Iteration stops at the
// first error from fn.
func ForEachLoop(pt structure.PairTable, fn func(Loop) error) error {
	ext, err := ExteriorLoop(pt)
	if err != nil {
		return err
	}
	if err := fn(ext); err != nil {
		return err
	}
	stack := make([]BasePair, 0, len(ext.Branches))
	for b := len(ext.Branches) - 1; b >= 0; b-- {
		stack = append(stack, ext.Branches[b])
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l, err := LoopClosedBy(pt, p.I, p.J)
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		// Push in reverse so branches pop 5'→3'.
		for b := len(l.Branches) - 1; b >= 0; b-- {
			stack = append(stack, l.Branches[b])
		}
	}
	return nil
}

// Decompose lists every loop of the structure in ForEachLoop order.
func Decompose(pt structure.PairTable) ([]Loop, error) {
	var out []Loop
	err := ForEachLoop(pt, func(l Loop) error {
		out = append(out, l)
		return nil
	})
	return out, err
}
