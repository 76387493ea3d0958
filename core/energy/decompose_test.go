// core/energy/decompose_test.go
package energy

import (
	"testing"

	"rfold-core/structure"
)

func TestDecomposeKinds(t *testing.T) {
	pt, err := structure.FromDotBracket(".(((...)).((...))..(.(...)))")
	if err != nil {
		t.Fatal(err)
	}
	loops, err := Decompose(pt)
	if err != nil {
		t.Fatal(err)
	}
	want := []LoopKind{Exterior, Multibranch, Interior, Hairpin, Interior, Hairpin, Interior, Hairpin}
	if len(loops) != len(want) {
		t.Fatalf("%d loops, want %d", len(loops), len(want))
	}
	for i, l := range loops {
		if l.Kind != want[i] {
			t.Errorf("loop %d = %s, want %s", i, l.Kind, want[i])
		}
	}
}

func TestDecomposeEmpty(t *testing.T) {
	loops, err := Decompose(structure.New(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(loops) != 1 || loops[0].Kind != Exterior {
		t.Fatalf("loops = %v, want a single exterior loop", loops)
	}
}

func TestLoopClosedBy(t *testing.T) {
	pt, _ := structure.FromDotBracket("((...))")
	h, err := LoopClosedBy(pt, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if h.Kind != Hairpin || h.Closing != (BasePair{1, 5}) {
		t.Errorf("inner loop = %v", h)
	}
	in, err := LoopClosedBy(pt, 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if in.Kind != Interior || in.Branches[0] != (BasePair{1, 5}) {
		t.Errorf("outer loop = %v", in)
	}
	if _, err := LoopClosedBy(pt, 2, 4); err == nil {
		t.Error("non-pair accepted as closing")
	}
}

func TestLoopContaining(t *testing.T) {
	pt, _ := structure.FromDotBracket(".(...).")
	l, err := LoopContaining(pt, 3)
	if err != nil {
		t.Fatal(err)
	}
	if l.Kind != Hairpin || l.Closing != (BasePair{1, 5}) {
		t.Errorf("loop of position 3 = %v", l)
	}
	ext, err := LoopContaining(pt, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ext.Kind != Exterior || len(ext.Branches) != 1 {
		t.Errorf("loop of position 0 = %v", ext)
	}
	if _, err := LoopContaining(pt, 1); err == nil {
		t.Error("paired position accepted")
	}
}
