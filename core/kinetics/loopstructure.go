// core/kinetics/loopstructure.go
// LoopStructure keeps a secondary structure together with its loop
// decomposition and per-loop energies in an arena, so that forming or
// removing one pair re-evaluates only the loop it splits or the two loops
// it joins. Everything else stays cached.
package kinetics

import (
	"fmt"

	"rfold-core/energy"
	"rfold-core/structure"
)

type loopEntry struct {
	live   bool
	loop   energy.Loop
	energy int
}

type LoopStructure struct {
	model energy.Model
	seq   []energy.Base
	pt    structure.PairTable

	loops  []loopEntry
	free   []int
	loopOf []int // unpaired position -> arena index of its loop
	inner  []int // paired position -> arena index of the loop its pair closes
	outer  []int // paired position -> arena index of the loop holding the pair as a branch
	total  int
}

// NewLoopStructure decomposes pt (cloned) under the model. An error means
// the structure itself is malformed.
func NewLoopStructure(model energy.Model, seq []energy.Base, pt structure.PairTable) (*LoopStructure, error) {
	if len(seq) != len(pt) {
		return nil, fmt.Errorf("sequence length %d != structure length %d", len(seq), len(pt))
	}
	ls := &LoopStructure{
		model: model,
		seq:   append([]energy.Base(nil), seq...),
		pt:    pt.Clone(),
	}
	if err := ls.rebuild(); err != nil {
		return nil, err
	}
	return ls, nil
}

func (ls *LoopStructure) rebuild() error {
	n := len(ls.seq)
	ls.loops = ls.loops[:0]
	ls.free = ls.free[:0]
	ls.loopOf = make([]int, n)
	ls.inner = make([]int, n)
	ls.outer = make([]int, n)
	ls.total = 0
	return energy.ForEachLoop(ls.pt, func(l energy.Loop) error {
		e := ls.model.LoopEnergy(ls.seq, l)
		idx := ls.alloc(l, e)
		ls.total += e
		ls.refreshMembership(idx)
		return nil
	})
}

func (ls *LoopStructure) alloc(l energy.Loop, e int) int {
	if n := len(ls.free); n > 0 {
		idx := ls.free[n-1]
		ls.free = ls.free[:n-1]
		ls.loops[idx] = loopEntry{live: true, loop: l, energy: e}
		return idx
	}
	ls.loops = append(ls.loops, loopEntry{live: true, loop: l, energy: e})
	return len(ls.loops) - 1
}

func (ls *LoopStructure) refreshMembership(idx int) {
	l := ls.loops[idx].loop
	for _, k := range l.UnpairedIndices(len(ls.seq)) {
		ls.loopOf[k] = idx
	}
	for _, b := range l.Branches {
		ls.outer[b.I] = idx
		ls.outer[b.J] = idx
	}
	if l.HasClosing() {
		ls.inner[l.Closing.I] = idx
		ls.inner[l.Closing.J] = idx
	}
}

// Energy is the cached total energy of the current structure.
func (ls *LoopStructure) Energy() int { return ls.total }

// Len is the current sequence length.
func (ls *LoopStructure) Len() int { return len(ls.seq) }

// Pairs exposes the live pair table; callers must not modify it.
func (ls *LoopStructure) Pairs() structure.PairTable { return ls.pt }

// Sequence exposes the live sequence; callers must not modify it.
func (ls *LoopStructure) Sequence() []energy.Base { return ls.seq }

func (ls *LoopStructure) DotBracket() string { return ls.pt.DotBracket() }

func (ls *LoopStructure) checkAdd(i, j int) (int, error) {
	if err := ls.pt.CanAdd(i, j, ls.model.MinHairpin()); err != nil {
		return 0, err
	}
	if !ls.model.CanPair(ls.seq[i], ls.seq[j]) {
		return 0, fmt.Errorf("bases %d and %d cannot pair", i, j)
	}
	L := ls.loopOf[i]
	if ls.loopOf[j] != L {
		return 0, fmt.Errorf("positions %d and %d are in different loops", i, j)
	}
	return L, nil
}

// AddDelta is the energy change of forming the pair (i,j), evaluated from
// the one cached loop the pair would split.
func (ls *LoopStructure) AddDelta(i, j int) (int, error) {
	L, err := ls.checkAdd(i, j)
	if err != nil {
		return 0, err
	}
	out, in, err := ls.loops[L].loop.Split(i, j)
	if err != nil {
		return 0, err
	}
	return ls.model.LoopEnergy(ls.seq, out) + ls.model.LoopEnergy(ls.seq, in) - ls.loops[L].energy, nil
}

// ApplyAdd forms the pair (i,j), splitting its loop in place.
func (ls *LoopStructure) ApplyAdd(i, j int) error {
	L, err := ls.checkAdd(i, j)
	if err != nil {
		return err
	}
	out, in, err := ls.loops[L].loop.Split(i, j)
	if err != nil {
		return err
	}
	eOut := ls.model.LoopEnergy(ls.seq, out)
	eIn := ls.model.LoopEnergy(ls.seq, in)
	ls.total += eOut + eIn - ls.loops[L].energy
	if err := ls.pt.Add(i, j, ls.model.MinHairpin()); err != nil {
		return err
	}
	ls.loops[L] = loopEntry{live: true, loop: out, energy: eOut}
	M := ls.alloc(in, eIn)
	ls.refreshMembership(L)
	ls.refreshMembership(M)
	return nil
}

func (ls *LoopStructure) checkRemove(i int) (outerIdx, innerIdx int, err error) {
	if i < 0 || i >= len(ls.pt) {
		return 0, 0, fmt.Errorf("position %d out of range", i)
	}
	if !ls.pt.Paired(i) {
		return 0, 0, fmt.Errorf("position %d is not paired", i)
	}
	return ls.outer[i], ls.inner[i], nil
}

// RemoveDelta is the energy change of removing the pair at position i,
// evaluated from the two cached loops the pair separates.
func (ls *LoopStructure) RemoveDelta(i int) (int, error) {
	L, M, err := ls.checkRemove(i)
	if err != nil {
		return 0, err
	}
	joined, err := ls.loops[L].loop.Join(ls.loops[M].loop)
	if err != nil {
		return 0, err
	}
	return ls.model.LoopEnergy(ls.seq, joined) - ls.loops[L].energy - ls.loops[M].energy, nil
}

// ApplyRemove removes the pair at position i, joining its two loops.
func (ls *LoopStructure) ApplyRemove(i int) error {
	L, M, err := ls.checkRemove(i)
	if err != nil {
		return err
	}
	joined, err := ls.loops[L].loop.Join(ls.loops[M].loop)
	if err != nil {
		return err
	}
	eJoined := ls.model.LoopEnergy(ls.seq, joined)
	ls.total += eJoined - ls.loops[L].energy - ls.loops[M].energy
	if err := ls.pt.Remove(i); err != nil {
		return err
	}
	ls.loops[L] = loopEntry{live: true, loop: joined, energy: eJoined}
	ls.loops[M].live = false
	ls.free = append(ls.free, M)
	ls.refreshMembership(L)
	return nil
}

// ShiftDelta is the energy change of sliding the pair (i,j) to (k,l).
// The intermediate open state is never exposed; the delta is the sum of the
// remove and the add evaluated on the intermediate table.
func (ls *LoopStructure) ShiftDelta(i, j, k, l int) (int, error) {
	if i < 0 || i >= len(ls.pt) || ls.pt[i] != j {
		return 0, fmt.Errorf("(%d,%d) is not a pair", i, j)
	}
	d1, err := ls.RemoveDelta(i)
	if err != nil {
		return 0, err
	}
	scratch := ls.pt.Clone()
	if err := scratch.Remove(i); err != nil {
		return 0, err
	}
	d2, err := ls.model.AddDelta(ls.seq, scratch, k, l)
	if err != nil {
		return 0, err
	}
	return d1 + d2, nil
}

// ApplyShift slides the pair (i,j) to (k,l) as one event.
func (ls *LoopStructure) ApplyShift(i, j, k, l int) error {
	if i < 0 || i >= len(ls.pt) || ls.pt[i] != j {
		return fmt.Errorf("(%d,%d) is not a pair", i, j)
	}
	if err := ls.ApplyRemove(i); err != nil {
		return err
	}
	if err := ls.ApplyAdd(k, l); err != nil {
		// restore the removed pair so the structure stays consistent
		if restoreErr := ls.ApplyAdd(i, j); restoreErr != nil {
			return fmt.Errorf("shift to (%d,%d) failed (%v) and restore failed: %w", k, l, err, restoreErr)
		}
		return err
	}
	return nil
}

// Grow appends residues at the 3' end as unpaired frontier and rebuilds the
// decomposition. Existing pairs are untouched.
func (ls *LoopStructure) Grow(bases []energy.Base) error {
	ls.seq = append(ls.seq, bases...)
	ls.pt = ls.pt.Extend(len(bases))
	return ls.rebuild()
}
