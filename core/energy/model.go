// core/energy/model.go
package energy

import "rfold-core/structure"

// Model scores secondary structures loop by loop. Energies are integers in
// units of 0.01 kcal/mol; lower is more stable. Implementations must be
// additive over the loop decomposition so that local deltas equal the
// difference of full evaluations.
type Model interface {
	// CanPair reports whether two bases may form a pair under this model.
	CanPair(a, b Base) bool

	// MinHairpin is the smallest admissible hairpin loop size.
	MinHairpin() int

	// TemperatureC is the evaluation temperature in degrees Celsius.
	TemperatureC() float64

	// LoopEnergy scores a single elementary loop.
	LoopEnergy(seq []Base, l Loop) int

	// StructureEnergy sums LoopEnergy over the full decomposition.
	StructureEnergy(seq []Base, pt structure.PairTable) (int, error)

	// AddDelta is the energy change of forming the pair (i,j), evaluated
	// from the loops the change touches only.
	AddDelta(seq []Base, pt structure.PairTable, i, j int) (int, error)

	// RemoveDelta is the energy change of removing the pair at position i.
	RemoveDelta(seq []Base, pt structure.PairTable, i int) (int, error)
}
