// core/energy/turner.go
// Nearest-neighbor evaluation in the ViennaRNA convention: stacks, bulges
// and generic interior loops, linear multibranch scoring, and terminal
// penalties plus mismatch/dangle edges on multibranch and exterior stems.
package energy

import (
	"fmt"

	"rfold-core/structure"
)

// Turner is the nearest-neighbor model over a rescaled parameter set.
type Turner struct {
	p          *Params
	minHairpin int
}

// NewTurner builds a model from raw tables at the given temperature.
func NewTurner(tables *Tables, tempC float64, minHairpin int) *Turner {
	return &Turner{p: tables.Scaled(tempC), minHairpin: minHairpin}
}

// DefaultModel is the built-in parameter set at 37°C with the conventional
// minimum hairpin size of 3.
func DefaultModel() *Turner {
	return NewTurner(DefaultTables(), 37.0, 3)
}

// Params exposes the working parameter set, mainly for tests and tooling.
func (m *Turner) Params() *Params { return m.p }

func (m *Turner) CanPair(a, b Base) bool { return PairTypeOf(a, b).CanPair() }

func (m *Turner) MinHairpin() int { return m.minHairpin }

func (m *Turner) TemperatureC() float64 { return m.p.Temperature }

func (m *Turner) LoopEnergy(seq []Base, l Loop) int {
	switch l.Kind {
	case Hairpin:
		return m.hairpinEnergy(seq, l.Closing)
	case Interior:
		return m.interiorEnergy(seq, l.Closing, l.Branches[0])
	case Multibranch:
		return m.multibranchEnergy(seq, l)
	default:
		return m.exteriorEnergy(seq, l)
	}
}

func (m *Turner) hairpinEnergy(seq []Base, c BasePair) int {
	size := c.J - c.I - 1
	ct := PairTypeOf(seq[c.I], seq[c.J])
	e := m.p.HairpinInit(size)
	if bonus, ok := m.p.SpecialHairpins[SequenceString(seq[c.I:c.J+1])]; ok {
		e += bonus
	}
	if size == 3 {
		if ct.RUEnd() {
			e += m.p.TerminalAU
		}
		return e
	}
	return e + m.p.MismatchHairpin[ct][seq[c.I+1]][seq[c.J-1]]
}

func (m *Turner) interiorEnergy(seq []Base, outer, inner BasePair) int {
	po := PairTypeOf(seq[outer.I], seq[outer.J])
	pi := PairTypeOf(seq[inner.I], seq[inner.J])
	n1 := inner.I - outer.I - 1
	n2 := outer.J - inner.J - 1
	if n1 > n2 {
		n1, n2 = n2, n1
	}
	switch {
	case n2 == 0: // stack
		return m.p.Stack[po][pi.Invert()]
	case n1 == 0: // bulge
		e := m.p.BulgeInit(n2)
		if n2 == 1 {
			return e + m.p.Stack[po][pi.Invert()]
		}
		if po.RUEnd() {
			e += m.p.TerminalAU
		}
		if pi.RUEnd() {
			e += m.p.TerminalAU
		}
		return e
	default:
		e := m.p.InteriorInit(n1 + n2)
		if e >= Inf {
			// 1x1, 1x2 and 2x2 loops have no tabulated initiation in the
			// generic rule; score them with the smallest tabulated size.
			e = m.p.Interior[4]
		}
		asym := (n2 - n1) * m.p.Ninio
		if asym > m.p.MaxNinio {
			asym = m.p.MaxNinio
		}
		e += asym
		e += m.p.MismatchInterior[po][seq[outer.I+1]][seq[outer.J-1]]
		e += m.p.MismatchInterior[pi.Invert()][seq[inner.J+1]][seq[inner.I-1]]
		return e
	}
}

// stemEdge scores the unpaired neighbors of a helix end as seen from the
// loop containing it: a full terminal mismatch when both neighbors are
// free, a single dangle when only one is. Zero by default; parameter files
// supply the tables.
func (m *Turner) stemEdge(mismatch *[PairCount][BaseCount][BaseCount]int, t PairType, seq []Base, p5, p3 int, l Loop) int {
	n := len(seq)
	has5 := p5 >= 0 && l.unpairedAt(p5, n)
	has3 := p3 < n && l.unpairedAt(p3, n)
	switch {
	case has5 && has3:
		return mismatch[t][seq[p5]][seq[p3]]
	case has5:
		return m.p.Dangle5[t][seq[p5]]
	case has3:
		return m.p.Dangle3[t][seq[p3]]
	}
	return 0
}

func (m *Turner) multibranchEnergy(seq []Base, l Loop) int {
	e := m.p.MLClosing + m.p.MLIntern*(1+len(l.Branches))
	ct := PairTypeOf(seq[l.Closing.I], seq[l.Closing.J])
	if ct.RUEnd() {
		e += m.p.TerminalAU
	}
	// the closing pair faces the loop from the inside
	e += m.stemEdge(&m.p.MismatchMulti, ct.Invert(), seq, l.Closing.J-1, l.Closing.I+1, l)
	unpaired := 0
	for _, s := range l.unpairedSpans(len(seq)) {
		unpaired += s.hi - s.lo
	}
	e += m.p.MLBase * unpaired
	for _, b := range l.Branches {
		bt := PairTypeOf(seq[b.I], seq[b.J])
		if bt.RUEnd() {
			e += m.p.TerminalAU
		}
		e += m.stemEdge(&m.p.MismatchMulti, bt, seq, b.I-1, b.J+1, l)
	}
	return e
}

func (m *Turner) exteriorEnergy(seq []Base, l Loop) int {
	e := 0
	for _, b := range l.Branches {
		bt := PairTypeOf(seq[b.I], seq[b.J])
		if bt.RUEnd() {
			e += m.p.TerminalAU
		}
		e += m.stemEdge(&m.p.MismatchExterior, bt, seq, b.I-1, b.J+1, l)
	}
	return e
}

func (m *Turner) StructureEnergy(seq []Base, pt structure.PairTable) (int, error) {
	if len(seq) != len(pt) {
		return 0, fmt.Errorf("sequence length %d != structure length %d", len(seq), len(pt))
	}
	total := 0
	err := ForEachLoop(pt, func(l Loop) error {
		total += m.LoopEnergy(seq, l)
		return nil
	})
	return total, err
}

// enclosingLoop finds the loop that a pair spanning (i,j) would sit in:
// the loop closed by the nearest enclosing pair, or the exterior loop.
func enclosingLoop(pt structure.PairTable, i, j int) (Loop, error) {
	if p, q, ok := pt.EnclosingPair(i, j); ok {
		return LoopClosedBy(pt, p, q)
	}
	return ExteriorLoop(pt)
}

func (m *Turner) AddDelta(seq []Base, pt structure.PairTable, i, j int) (int, error) {
	if err := pt.CanAdd(i, j, m.minHairpin); err != nil {
		return 0, err
	}
	if !m.CanPair(seq[i], seq[j]) {
		return 0, fmt.Errorf("%s%d and %s%d cannot pair", seq[i], i, seq[j], j)
	}
	orig, err := enclosingLoop(pt, i, j)
	if err != nil {
		return 0, err
	}
	outer, inner, err := orig.Split(i, j)
	if err != nil {
		return 0, err
	}
	return m.LoopEnergy(seq, outer) + m.LoopEnergy(seq, inner) - m.LoopEnergy(seq, orig), nil
}

func (m *Turner) RemoveDelta(seq []Base, pt structure.PairTable, i int) (int, error) {
	j := pt[i]
	if j == structure.Unpaired {
		return 0, fmt.Errorf("position %d is not paired", i)
	}
	if j < i {
		i, j = j, i
	}
	inner, err := LoopClosedBy(pt, i, j)
	if err != nil {
		return 0, err
	}
	outer, err := enclosingLoop(pt, i, j)
	if err != nil {
		return 0, err
	}
	joined, err := outer.Join(inner)
	if err != nil {
		return 0, err
	}
	return m.LoopEnergy(seq, joined) - m.LoopEnergy(seq, outer) - m.LoopEnergy(seq, inner), nil
}
