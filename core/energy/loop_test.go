// core/energy/loop_test.go
package energy

import (
	"reflect"
	"testing"
)

func TestSplitHairpin(t *testing.T) {
	h := Loop{Kind: Hairpin, Closing: BasePair{0, 10}}
	outer, inner, err := h.Split(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	wantOuter := Loop{Kind: Interior, Closing: BasePair{0, 10}, Branches: []BasePair{{2, 8}}}
	wantInner := Loop{Kind: Hairpin, Closing: BasePair{2, 8}}
	if !reflect.DeepEqual(outer, wantOuter) {
		t.Errorf("outer = %v, want %v", outer, wantOuter)
	}
	if !reflect.DeepEqual(inner, wantInner) {
		t.Errorf("inner = %v, want %v", inner, wantInner)
	}
}

func TestSplitInteriorToMultibranch(t *testing.T) {
	l := Loop{Kind: Interior, Closing: BasePair{0, 20}, Branches: []BasePair{{2, 8}}}
	outer, inner, err := l.Split(10, 16)
	if err != nil {
		t.Fatal(err)
	}
	if outer.Kind != Multibranch || len(outer.Branches) != 2 {
		t.Errorf("outer = %v, want a 2-branch multibranch", outer)
	}
	if outer.Branches[0] != (BasePair{2, 8}) || outer.Branches[1] != (BasePair{10, 16}) {
		t.Errorf("branches out of order: %v", outer.Branches)
	}
	if inner.Kind != Hairpin {
		t.Errorf("inner = %v, want a hairpin", inner)
	}
}

func TestSplitExteriorCaptures(t *testing.T) {
	l := Loop{Kind: Exterior, Branches: []BasePair{{2, 6}, {10, 14}, {20, 24}}}
	outer, inner, err := l.Split(8, 16)
	if err != nil {
		t.Fatal(err)
	}
	if outer.Kind != Exterior || len(outer.Branches) != 3 {
		t.Errorf("outer = %v", outer)
	}
	if inner.Kind != Interior || inner.Branches[0] != (BasePair{10, 14}) {
		t.Errorf("inner = %v, want interior enclosing (10,14)", inner)
	}
}

func TestSplitRejectsCrossing(t *testing.T) {
	l := Loop{Kind: Exterior, Branches: []BasePair{{2, 10}}}
	if _, _, err := l.Split(5, 15); err == nil {
		t.Error("crossing split accepted")
	}
}

func TestJoinInvertsSplit(t *testing.T) {
	loops := []Loop{
		{Kind: Hairpin, Closing: BasePair{0, 12}},
		{Kind: Interior, Closing: BasePair{0, 20}, Branches: []BasePair{{12, 18}}},
		{Kind: Multibranch, Closing: BasePair{0, 30}, Branches: []BasePair{{2, 8}, {12, 18}, {22, 28}}},
		{Kind: Exterior, Branches: []BasePair{{0, 6}, {14, 20}}},
	}
	splits := [][2]int{{3, 9}, {2, 10}, {10, 20}, {8, 12}}
	for k, l := range loops {
		i, j := splits[k][0], splits[k][1]
		outer, inner, err := l.Split(i, j)
		if err != nil {
			t.Fatalf("case %d: split: %v", k, err)
		}
		back, err := outer.Join(inner)
		if err != nil {
			t.Fatalf("case %d: join: %v", k, err)
		}
		if back.Kind != l.Kind || back.Closing != l.Closing || len(back.Branches) != len(l.Branches) {
			t.Errorf("case %d: join(split) = %v, want %v", k, back, l)
			continue
		}
		for b := range l.Branches {
			if back.Branches[b] != l.Branches[b] {
				t.Errorf("case %d: branch %d = %v, want %v", k, b, back.Branches[b], l.Branches[b])
			}
		}
	}
}

func TestUnpairedIndices(t *testing.T) {
	l := Loop{Kind: Interior, Closing: BasePair{0, 8}, Branches: []BasePair{{2, 6}}}
	want := []int{1, 7}
	if got := l.UnpairedIndices(9); !reflect.DeepEqual(got, want) {
		t.Errorf("UnpairedIndices = %v, want %v", got, want)
	}
	ext := Loop{Kind: Exterior, Branches: []BasePair{{1, 5}}}
	want = []int{0, 6, 7}
	if got := ext.UnpairedIndices(8); !reflect.DeepEqual(got, want) {
		t.Errorf("exterior UnpairedIndices = %v, want %v", got, want)
	}
}
