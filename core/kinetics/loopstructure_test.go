// core/kinetics/loopstructure_test.go
package kinetics

import (
	"testing"

	"rfold-core/energy"
	"rfold-core/structure"
)

func newLS(t *testing.T, seq string) *LoopStructure {
	t.Helper()
	bases, err := energy.ParseSequence(seq)
	if err != nil {
		t.Fatal(err)
	}
	ls, err := NewLoopStructure(energy.DefaultModel(), bases, structure.New(len(bases)))
	if err != nil {
		t.Fatal(err)
	}
	return ls
}

// checkConsistent compares the cached total against a full re-evaluation.
func checkConsistent(t *testing.T, ls *LoopStructure) {
	t.Helper()
	full, err := ls.model.StructureEnergy(ls.seq, ls.pt)
	if err != nil {
		t.Fatal(err)
	}
	if ls.Energy() != full {
		t.Fatalf("%s: cached energy %d, full evaluation %d", ls.DotBracket(), ls.Energy(), full)
	}
}

func TestIncrementalAddRemove(t *testing.T) {
	ls := newLS(t, "GGGAAACCC")
	pairs := [][2]int{{0, 8}, {1, 7}, {2, 6}}
	for _, p := range pairs {
		before := ls.Energy()
		delta, err := ls.AddDelta(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		if err := ls.ApplyAdd(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
		if ls.Energy() != before+delta {
			t.Fatalf("add (%d,%d): delta %d but energy moved %d", p[0], p[1], delta, ls.Energy()-before)
		}
		checkConsistent(t, ls)
	}
	if ls.DotBracket() != "(((...)))" || ls.Energy() != -120 {
		t.Fatalf("final state %s at %d", ls.DotBracket(), ls.Energy())
	}
	for _, i := range []int{1, 0, 6} {
		before := ls.Energy()
		delta, err := ls.RemoveDelta(i)
		if err != nil {
			t.Fatal(err)
		}
		if err := ls.ApplyRemove(i); err != nil {
			t.Fatal(err)
		}
		if ls.Energy() != before+delta {
			t.Fatalf("remove %d: delta %d but energy moved %d", i, delta, ls.Energy()-before)
		}
		checkConsistent(t, ls)
	}
	if ls.DotBracket() != "........." || ls.Energy() != 0 {
		t.Fatalf("final state %s at %d", ls.DotBracket(), ls.Energy())
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	ls := newLS(t, "GGGAAACCC")
	if err := ls.ApplyAdd(0, 3); err == nil {
		t.Error("undersized hairpin accepted")
	}
	if err := ls.ApplyAdd(3, 8); err == nil {
		t.Error("non-complementary pair accepted")
	}
	if err := ls.ApplyAdd(0, 8); err != nil {
		t.Fatal(err)
	}
	if err := ls.ApplyAdd(1, 8); err == nil {
		t.Error("occupied position accepted")
	}
	if _, err := ls.RemoveDelta(3); err == nil {
		t.Error("unpaired position accepted for removal")
	}
}

func TestShift(t *testing.T) {
	ls := newLS(t, "GAAAACC")
	if err := ls.ApplyAdd(0, 5); err != nil {
		t.Fatal(err)
	}
	e1 := ls.Energy()

	delta, err := ls.ShiftDelta(0, 5, 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if err := ls.ApplyShift(0, 5, 0, 6); err != nil {
		t.Fatal(err)
	}
	if ls.DotBracket() != "(.....)" {
		t.Fatalf("structure after shift: %s", ls.DotBracket())
	}
	if ls.Energy() != e1+delta {
		t.Errorf("shift delta %d but energy moved %d", delta, ls.Energy()-e1)
	}
	checkConsistent(t, ls)
}

func TestShiftRestoresOnFailure(t *testing.T) {
	ls := newLS(t, "GAAAACC")
	if err := ls.ApplyAdd(0, 5); err != nil {
		t.Fatal(err)
	}
	before := ls.DotBracket()
	// target (0,2) violates the minimum hairpin size
	if err := ls.ApplyShift(0, 5, 0, 2); err == nil {
		t.Fatal("invalid shift accepted")
	}
	if ls.DotBracket() != before {
		t.Fatalf("structure not restored: %s", ls.DotBracket())
	}
	checkConsistent(t, ls)
}

func TestGrowKeepsPrefix(t *testing.T) {
	ls := newLS(t, "GGGAAACCC")
	for _, p := range [][2]int{{0, 8}, {1, 7}, {2, 6}} {
		if err := ls.ApplyAdd(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}
	tail, _ := energy.ParseSequence("AAA")
	if err := ls.Grow(tail); err != nil {
		t.Fatal(err)
	}
	if ls.DotBracket() != "(((...)))..." {
		t.Fatalf("structure after growth: %s", ls.DotBracket())
	}
	if ls.Energy() != -120 {
		t.Errorf("energy after growth = %d, want -120", ls.Energy())
	}
	checkConsistent(t, ls)
}
