// core/kinetics/move.go
package kinetics

import "fmt"

type MoveKind uint8

const (
	AddMove MoveKind = iota
	RemoveMove
	ShiftMove
)

func (k MoveKind) String() string {
	return [...]string{"add", "remove", "shift"}[k]
}

// Move is one elementary structural change. Add forms the pair (I,J),
// Remove dissolves it. Shift slides the pair (I,J) to (K,L), keeping one
// end in place; it is rated as a single event.
type Move struct {
	Kind   MoveKind
	I, J   int
	K, L   int // shift target, unused otherwise
	DeltaE int // energy change in 0.01 kcal/mol
}

func (m Move) String() string {
	switch m.Kind {
	case ShiftMove:
		return fmt.Sprintf("shift (%d,%d)->(%d,%d) ΔE=%d", m.I, m.J, m.K, m.L, m.DeltaE)
	default:
		return fmt.Sprintf("%s (%d,%d) ΔE=%d", m.Kind, m.I, m.J, m.DeltaE)
	}
}
