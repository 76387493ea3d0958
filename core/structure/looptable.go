// core/structure/looptable.go
package structure

import (
	"fmt"
	"strings"
)

// LoopInfo locates one position in the loop decomposition. Unpaired
// positions belong to a single loop; a paired position sits on the boundary
// between its outer and inner loop.
type LoopInfo struct {
	Paired bool
	Outer  int // loop id outside the pair; for unpaired positions, the loop id
	Inner  int // loop id enclosed by the pair; unused when unpaired
}

// LoopTable assigns every position its loop id(s). Loop 0 is the exterior.
type LoopTable []LoopInfo

// Loops derives the loop table from a pair table. Loop ids are assigned in
// 5'→3' order of opening pairs, so the numbering is deterministic.
func Loops(pt PairTable) (LoopTable, error) {
	lt := make(LoopTable, len(pt))
	type frame struct{ close, loop int }
	var stack []frame
	current, next := 0, 0

	for i, j := range pt {
		switch {
		case j == Unpaired:
			lt[i] = LoopInfo{Outer: current}
		case j > i:
			next++
			lt[i] = LoopInfo{Paired: true, Outer: current, Inner: next}
			stack = append(stack, frame{close: j, loop: next})
			current = next
		case j < i:
			if len(stack) == 0 {
				return nil, &ParseError{Pos: i, Msg: "unmatched ')'"}
			}
			inner := stack[len(stack)-1].loop
			stack = stack[:len(stack)-1]
			current = 0
			if len(stack) > 0 {
				current = stack[len(stack)-1].loop
			}
			lt[i] = LoopInfo{Paired: true, Outer: current, Inner: inner}
		default:
			return nil, &ParseError{Pos: i, Msg: "self-pairing"}
		}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Pos: stack[len(stack)-1].close, Msg: "unmatched '('"}
	}
	return lt, nil
}

func (lt LoopTable) String() string {
	parts := make([]string, len(lt))
	for i, info := range lt {
		if info.Paired {
			parts[i] = fmt.Sprintf("%d/%d", info.Outer, info.Inner)
		} else {
			parts[i] = fmt.Sprintf("%d", info.Outer)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
