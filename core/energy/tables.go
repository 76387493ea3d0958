// core/energy/tables.go
// Parameter storage for the nearest-neighbor model. Tables hold free
// energies at 37°C together with enthalpies; Scaled produces the working
// set of free energies at the requested temperature. All energies are in
// units of 0.01 kcal/mol.
package energy

import "math"

// Inf marks forbidden or unparameterized entries. It survives rescaling.
const Inf = 10000000

// MaxLoopTable is the largest loop size with a tabulated initiation energy.
// Larger loops are extrapolated logarithmically.
const MaxLoopTable = 30

// T37 is the reference temperature in Kelvin.
const T37 = 310.15

// Kelvin offset of 0°C.
const K0 = 273.15

// Tables are the raw model parameters: ΔG at 37°C paired with ΔH, which
// together determine ΔG at any other temperature.
type Tables struct {
	Stack     [PairCount][PairCount]int
	StackEnth [PairCount][PairCount]int

	Hairpin      [MaxLoopTable + 1]int
	HairpinEnth  [MaxLoopTable + 1]int
	Bulge        [MaxLoopTable + 1]int
	BulgeEnth    [MaxLoopTable + 1]int
	Interior     [MaxLoopTable + 1]int
	InteriorEnth [MaxLoopTable + 1]int

	MismatchHairpin      [PairCount][BaseCount][BaseCount]int
	MismatchHairpinEnth  [PairCount][BaseCount][BaseCount]int
	MismatchInterior     [PairCount][BaseCount][BaseCount]int
	MismatchInteriorEnth [PairCount][BaseCount][BaseCount]int
	MismatchMulti        [PairCount][BaseCount][BaseCount]int
	MismatchMultiEnth    [PairCount][BaseCount][BaseCount]int
	MismatchExterior     [PairCount][BaseCount][BaseCount]int
	MismatchExteriorEnth [PairCount][BaseCount][BaseCount]int

	Dangle5     [PairCount][BaseCount]int
	Dangle5Enth [PairCount][BaseCount]int
	Dangle3     [PairCount][BaseCount]int
	Dangle3Enth [PairCount][BaseCount]int

	TerminalAU     int
	TerminalAUEnth int

	MLClosing     int
	MLClosingEnth int
	MLIntern      int
	MLInternEnth  int
	MLBase        int
	MLBaseEnth    int

	Ninio     int
	NinioEnth int
	MaxNinio  int

	LXC float64

	// Sequence-specific hairpin bonuses, keyed by the full loop sequence
	// including the closing pair (5'→3').
	SpecialHairpins     map[string]int
	SpecialHairpinsEnth map[string]int
}

// Params are the working free energies at a fixed temperature, ready for
// direct lookup during evaluation.
type Params struct {
	Temperature float64 // Celsius

	Stack    [PairCount][PairCount]int
	Hairpin  [MaxLoopTable + 1]int
	Bulge    [MaxLoopTable + 1]int
	Interior [MaxLoopTable + 1]int

	MismatchHairpin  [PairCount][BaseCount][BaseCount]int
	MismatchInterior [PairCount][BaseCount][BaseCount]int
	MismatchMulti    [PairCount][BaseCount][BaseCount]int
	MismatchExterior [PairCount][BaseCount][BaseCount]int

	Dangle5 [PairCount][BaseCount]int
	Dangle3 [PairCount][BaseCount]int

	TerminalAU int

	MLClosing int
	MLIntern  int
	MLBase    int

	Ninio    int
	MaxNinio int

	LXC float64

	SpecialHairpins map[string]int
}

// rescale converts a (ΔG37, ΔH) pair to ΔG at temperature tk (Kelvin).
// Inf entries are preserved.
func rescale(dg37, dh int, tk float64) int {
	if dg37 >= Inf {
		return Inf
	}
	g := float64(dh)*(1-tk/T37) + float64(dg37)*(tk/T37)
	return int(math.Round(g))
}

// Scaled derives the working parameter set at tempC degrees Celsius.
func (t *Tables) Scaled(tempC float64) *Params {
	tk := tempC + K0
	p := &Params{
		Temperature: tempC,
		TerminalAU:  rescale(t.TerminalAU, t.TerminalAUEnth, tk),
		MLClosing:   rescale(t.MLClosing, t.MLClosingEnth, tk),
		MLIntern:    rescale(t.MLIntern, t.MLInternEnth, tk),
		MLBase:      rescale(t.MLBase, t.MLBaseEnth, tk),
		Ninio:       rescale(t.Ninio, t.NinioEnth, tk),
		MaxNinio:    t.MaxNinio,
		LXC:         t.LXC * tk / T37,
	}
	for a := 0; a < PairCount; a++ {
		for b := 0; b < PairCount; b++ {
			p.Stack[a][b] = rescale(t.Stack[a][b], t.StackEnth[a][b], tk)
		}
	}
	for n := 0; n <= MaxLoopTable; n++ {
		p.Hairpin[n] = rescale(t.Hairpin[n], t.HairpinEnth[n], tk)
		p.Bulge[n] = rescale(t.Bulge[n], t.BulgeEnth[n], tk)
		p.Interior[n] = rescale(t.Interior[n], t.InteriorEnth[n], tk)
	}
	for a := 0; a < PairCount; a++ {
		for b := 0; b < BaseCount; b++ {
			p.Dangle5[a][b] = rescale(t.Dangle5[a][b], t.Dangle5Enth[a][b], tk)
			p.Dangle3[a][b] = rescale(t.Dangle3[a][b], t.Dangle3Enth[a][b], tk)
			for c := 0; c < BaseCount; c++ {
				p.MismatchHairpin[a][b][c] = rescale(t.MismatchHairpin[a][b][c], t.MismatchHairpinEnth[a][b][c], tk)
				p.MismatchInterior[a][b][c] = rescale(t.MismatchInterior[a][b][c], t.MismatchInteriorEnth[a][b][c], tk)
				p.MismatchMulti[a][b][c] = rescale(t.MismatchMulti[a][b][c], t.MismatchMultiEnth[a][b][c], tk)
				p.MismatchExterior[a][b][c] = rescale(t.MismatchExterior[a][b][c], t.MismatchExteriorEnth[a][b][c], tk)
			}
		}
	}
	p.SpecialHairpins = make(map[string]int, len(t.SpecialHairpins))
	for seq, dg := range t.SpecialHairpins {
		p.SpecialHairpins[seq] = rescale(dg, t.SpecialHairpinsEnth[seq], tk)
	}
	return p
}

// loopInit returns the initiation energy for a loop of the given size,
// extrapolating logarithmically beyond the table.
func (p *Params) loopInit(table *[MaxLoopTable + 1]int, size int) int {
	if size <= MaxLoopTable {
		return table[size]
	}
	base := table[MaxLoopTable]
	if base >= Inf {
		return Inf
	}
	return base + int(math.Round(p.LXC*math.Log(float64(size)/MaxLoopTable)))
}

// HairpinInit is the size-dependent hairpin initiation energy.
func (p *Params) HairpinInit(size int) int { return p.loopInit(&p.Hairpin, size) }

// BulgeInit is the size-dependent bulge initiation energy.
func (p *Params) BulgeInit(size int) int { return p.loopInit(&p.Bulge, size) }

// InteriorInit is the size-dependent interior-loop initiation energy.
func (p *Params) InteriorInit(size int) int { return p.loopInit(&p.Interior, size) }
