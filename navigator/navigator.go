// Package navigator implements the "prefer roads, bounce on walls"
// routing policy Quilt's interpreter uses to move the cursor across
// the program matrix. It is a pure function of (matrix, position,
// heading): it never mutates the matrix and holds no state of its
// own.
package navigator

import (
	"github.com/quiltlang/quiltvm/grid"
	"github.com/quiltlang/quiltvm/pixel"
)

// candidate is one entry in the fixed-order list of neighbors the
// navigator considers before choosing a move.
type candidate struct {
	dir  grid.Direction
	cell pixel.Cell
}

// candidates enumerates up to four neighbors of pos, in the fixed
// order Forward, Right, Left, Back, dropping any that would leave the
// grid.
func candidates(m *grid.Matrix[pixel.Cell], pos grid.Point, heading grid.Direction) []candidate {
	order := []grid.Direction{
		heading,                                // forward
		heading.CounterClockwise().Opposite(),  // right
		heading.CounterClockwise(),             // left
		heading.Opposite(),                     // back
	}

	out := make([]candidate, 0, 4)
	for _, d := range order {
		if cell, ok := m.Go(pos, d); ok {
			out = append(out, candidate{d, cell})
		}
	}
	return out
}

// Step advances the cursor one move from (pos, heading) under the
// routing policy:
//
//   - Road preference: the first candidate (in Forward, Right, Left,
//     Back order) classified as Road whose direction is not directly
//     behind the cursor wins.
//   - Straight-through: otherwise, if Forward exists, take it; heading
//     is unchanged.
//   - Bounce: otherwise, take the last candidate in that order and
//     head in its direction. That is Back (reversing heading) whenever
//     Back is on the grid; otherwise it is the last of Right and Left
//     that is.
//
// ok is false only when pos has no neighbors at all, which cannot
// happen on a grid with 2 or more cells.
func Step(m *grid.Matrix[pixel.Cell], pos grid.Point, heading grid.Direction) (next grid.Point, newHeading grid.Direction, ok bool) {
	cs := candidates(m, pos, heading)
	if len(cs) == 0 {
		return grid.Point{}, heading, false
	}

	behind := heading.Opposite()
	for _, c := range cs {
		if c.cell.Op() == pixel.Road && c.dir != behind {
			return c.cell.Point, c.dir, true
		}
	}

	if cs[0].dir == heading {
		return cs[0].cell.Point, heading, true
	}

	last := cs[len(cs)-1]
	return last.cell.Point, last.dir, true
}
