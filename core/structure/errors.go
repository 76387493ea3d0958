// core/structure/errors.go
package structure

import (
	"errors"
	"fmt"
)

// ErrInvalidMove marks a structurally illegal pairing mutation. Callers that
// generate moves themselves should treat a wrapped ErrInvalidMove as an
// internal consistency failure, not as user input to be skipped.
var ErrInvalidMove = errors.New("invalid move")

func errOccupied(i int) error {
	return fmt.Errorf("%w: position %d is already paired", ErrInvalidMove, i)
}

func errNotPaired(i int) error {
	return fmt.Errorf("%w: position %d is not paired", ErrInvalidMove, i)
}

func errSelfPair(i int) error {
	return fmt.Errorf("%w: position %d cannot pair with itself", ErrInvalidMove, i)
}

func errCrossing(i, j int) error {
	return fmt.Errorf("%w: pair (%d,%d) crosses an existing pair", ErrInvalidMove, i, j)
}

func errLoopSize(i, j, min int) error {
	return fmt.Errorf("%w: pair (%d,%d) encloses fewer than %d unpaired residues", ErrInvalidMove, i, j, min)
}

func errBounds(i, n int) error {
	return fmt.Errorf("%w: position %d out of range [0,%d)", ErrInvalidMove, i, n)
}

// ParseError reports a malformed dot-bracket string.
type ParseError struct {
	Pos  int
	Char byte
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
	}
	return fmt.Sprintf("invalid character %q in structure at position %d", e.Char, e.Pos)
}
