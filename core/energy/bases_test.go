// core/energy/bases_test.go
package energy

import "testing"

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("acgutn")
	if err != nil {
		t.Fatal(err)
	}
	want := []Base{A, C, G, U, U, N}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("base %d = %v, want %v", i, seq[i], want[i])
		}
	}
	if _, err := ParseSequence("ACGX"); err == nil {
		t.Error("invalid symbol accepted")
	}
	if got := SequenceString(ParseSequenceLossy("AC?GU")); got != "ACNGU" {
		t.Errorf("lossy parse = %q", got)
	}
}

func TestPairTypes(t *testing.T) {
	cases := []struct {
		a, b Base
		want PairType
	}{
		{A, U, AU}, {U, A, UA}, {C, G, CG}, {G, C, GC},
		{G, U, GU}, {U, G, UG}, {A, A, NN}, {N, U, NN},
	}
	for _, c := range cases {
		if got := PairTypeOf(c.a, c.b); got != c.want {
			t.Errorf("PairTypeOf(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
	if !AU.RUEnd() || !UG.RUEnd() || CG.RUEnd() || GC.RUEnd() {
		t.Error("weak-end classification wrong")
	}
	for _, p := range []PairType{AU, UA, CG, GC, GU, UG} {
		if p.Invert().Invert() != p {
			t.Errorf("%v does not invert twice to itself", p)
		}
	}
}
