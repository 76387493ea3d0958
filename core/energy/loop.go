// core/energy/loop.go
// Elementary loops of the nearest-neighbor decomposition, plus the
// split/join algebra that lets a single base-pair change touch only the one
// or two loops it affects.
package energy

import (
	"fmt"
	"sort"
)

type LoopKind uint8

const (
	Hairpin LoopKind = iota
	Interior
	Multibranch
	Exterior
)

func (k LoopKind) String() string {
	return [...]string{"hairpin", "interior", "multibranch", "exterior"}[k]
}

// BasePair is a closing or branch pair (I < J).
type BasePair struct {
	I, J int
}

// Loop is one elementary loop. Exterior loops have no closing pair.
// Branches are always kept in 5'→3' order. An interior loop (including
// stacks and bulges) has exactly one branch; a multibranch loop has two or
// more.
type Loop struct {
	Kind     LoopKind
	Closing  BasePair
	Branches []BasePair
}

// Classify builds a loop from its closing pair (nil for exterior) and its
// branches, choosing the kind from the branch count.
func Classify(closing *BasePair, branches []BasePair) Loop {
	if closing == nil {
		return Loop{Kind: Exterior, Branches: branches}
	}
	switch len(branches) {
	case 0:
		return Loop{Kind: Hairpin, Closing: *closing}
	case 1:
		return Loop{Kind: Interior, Closing: *closing, Branches: branches}
	default:
		return Loop{Kind: Multibranch, Closing: *closing, Branches: branches}
	}
}

// Pairs lists every pair on the loop boundary: the closing pair (if any)
// followed by all branches.
func (l Loop) Pairs() []BasePair {
	if l.Kind == Exterior {
		return append([]BasePair(nil), l.Branches...)
	}
	out := make([]BasePair, 0, 1+len(l.Branches))
	out = append(out, l.Closing)
	out = append(out, l.Branches...)
	return out
}

// HasClosing reports whether the loop is bounded by a closing pair.
func (l Loop) HasClosing() bool { return l.Kind != Exterior }

type span struct{ lo, hi int } // half-open [lo,hi)

func (l Loop) unpairedSpans(n int) []span {
	switch l.Kind {
	case Hairpin:
		return []span{{l.Closing.I + 1, l.Closing.J}}
	case Interior:
		in := l.Branches[0]
		return []span{{l.Closing.I + 1, in.I}, {in.J + 1, l.Closing.J}}
	case Multibranch:
		out := make([]span, 0, len(l.Branches)+1)
		start := l.Closing.I
		for _, b := range l.Branches {
			out = append(out, span{start + 1, b.I})
			start = b.J
		}
		return append(out, span{start + 1, l.Closing.J})
	default: // Exterior
		out := make([]span, 0, len(l.Branches)+1)
		start := 0
		for _, b := range l.Branches {
			out = append(out, span{start, b.I})
			start = b.J + 1
		}
		return append(out, span{start, n})
	}
}

// UnpairedIndices lists the unpaired positions inside the loop. n is the
// sequence length (needed for the exterior loop only).
func (l Loop) UnpairedIndices(n int) []int {
	var out []int
	for _, s := range l.unpairedSpans(n) {
		for k := s.lo; k < s.hi; k++ {
			out = append(out, k)
		}
	}
	return out
}

// Split divides the loop at a new pair (i,j) into the loop outside the new
// pair and the loop it encloses. Both positions must be unpaired members of
// this loop.
func (l Loop) Split(i, j int) (outer, inner Loop, err error) {
	if i >= j {
		return outer, inner, fmt.Errorf("split pair (%d,%d) must satisfy i < j", i, j)
	}
	switch l.Kind {
	case Hairpin:
		if !(l.Closing.I < i && j < l.Closing.J) {
			return outer, inner, fmt.Errorf("pair (%d,%d) outside hairpin (%d,%d)", i, j, l.Closing.I, l.Closing.J)
		}
		outer = Loop{Kind: Interior, Closing: l.Closing, Branches: []BasePair{{i, j}}}
		inner = Loop{Kind: Hairpin, Closing: BasePair{i, j}}
		return outer, inner, nil

	case Interior:
		in := l.Branches[0]
		if !(l.Closing.I < i && j < l.Closing.J) || (in.I < i && j < in.J) {
			return outer, inner, fmt.Errorf("pair (%d,%d) outside interior loop (%d,%d)", i, j, l.Closing.I, l.Closing.J)
		}
		switch {
		case i < in.I && in.J < j:
			outer = Loop{Kind: Interior, Closing: l.Closing, Branches: []BasePair{{i, j}}}
			inner = Loop{Kind: Interior, Closing: BasePair{i, j}, Branches: []BasePair{in}}
		case j < in.I:
			outer = Loop{Kind: Multibranch, Closing: l.Closing, Branches: []BasePair{{i, j}, in}}
			inner = Loop{Kind: Hairpin, Closing: BasePair{i, j}}
		case in.J < i:
			outer = Loop{Kind: Multibranch, Closing: l.Closing, Branches: []BasePair{in, {i, j}}}
			inner = Loop{Kind: Hairpin, Closing: BasePair{i, j}}
		default:
			return outer, inner, fmt.Errorf("pair (%d,%d) overlaps branch (%d,%d)", i, j, in.I, in.J)
		}
		return outer, inner, nil

	case Multibranch, Exterior:
		if l.Kind == Multibranch && !(l.Closing.I < i && j < l.Closing.J) {
			return outer, inner, fmt.Errorf("pair (%d,%d) outside multibranch (%d,%d)", i, j, l.Closing.I, l.Closing.J)
		}
		outerBranches := []BasePair{{i, j}}
		var innerBranches []BasePair
		for _, b := range l.Branches {
			switch {
			case j < b.I || b.J < i:
				outerBranches = append(outerBranches, b)
			case i < b.I && b.J < j:
				innerBranches = append(innerBranches, b)
			default:
				return outer, inner, fmt.Errorf("pair (%d,%d) crosses branch (%d,%d)", i, j, b.I, b.J)
			}
		}
		sortPairs(outerBranches)
		sortPairs(innerBranches)
		var closing *BasePair
		if l.Kind == Multibranch {
			c := l.Closing
			closing = &c
		}
		newPair := BasePair{i, j}
		return Classify(closing, outerBranches), Classify(&newPair, innerBranches), nil
	}
	return outer, inner, fmt.Errorf("unknown loop kind %d", l.Kind)
}

// Join merges this loop with the inner loop it shares the pair
// inner.Closing with, producing the loop left behind when that pair is
// removed. The receiver must be the outer loop.
func (l Loop) Join(inner Loop) (Loop, error) {
	if l.Kind == Hairpin {
		return Loop{}, fmt.Errorf("a hairpin cannot be the outer loop")
	}
	if inner.Kind == Exterior {
		return Loop{}, fmt.Errorf("an exterior loop cannot be enclosed")
	}
	shared := inner.Closing

	// Replace the shared branch by the inner loop's branches.
	found := false
	merged := make([]BasePair, 0, len(l.Branches)+len(inner.Branches))
	for _, b := range l.Branches {
		if b == shared {
			found = true
			merged = append(merged, inner.Branches...)
			continue
		}
		merged = append(merged, b)
	}
	if !found {
		return Loop{}, fmt.Errorf("pair (%d,%d) is not a branch of the outer loop", shared.I, shared.J)
	}
	var closing *BasePair
	if l.Kind != Exterior {
		c := l.Closing
		closing = &c
	}
	return Classify(closing, merged), nil
}

func sortPairs(ps []BasePair) {
	sort.Slice(ps, func(a, b int) bool {
		if ps[a].I != ps[b].I {
			return ps[a].I < ps[b].I
		}
		return ps[a].J < ps[b].J
	})
}

// unpairedAt reports whether position k is one of the loop's unpaired
// members. n is the sequence length.
func (l Loop) unpairedAt(k, n int) bool {
	for _, s := range l.unpairedSpans(n) {
		if k >= s.lo && k < s.hi {
			return true
		}
	}
	return false
}

func (l Loop) String() string {
	switch l.Kind {
	case Hairpin:
		return fmt.Sprintf("hairpin (%d,%d)", l.Closing.I, l.Closing.J)
	case Interior:
		in := l.Branches[0]
		return fmt.Sprintf("interior (%d,%d) (%d,%d)", l.Closing.I, l.Closing.J, in.I, in.J)
	case Multibranch:
		return fmt.Sprintf("multibranch (%d,%d), %d branches", l.Closing.I, l.Closing.J, len(l.Branches))
	default:
		return fmt.Sprintf("exterior, %d branches", len(l.Branches))
	}
}
