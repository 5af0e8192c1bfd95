package movegen

import (
	"github.com/domino14/wordtile/board"
)

// An Anchor is an empty square next to a tile. Every play has to cover at
// least one anchor, so the search starts from them.
type Anchor struct {
	Row, Col int
}

// FindAnchors returns the anchors of b in row-major order. On an empty
// board the center square is the only anchor. The result is computed from
// scratch on every call.
func FindAnchors(b *board.Board) []Anchor {
	if b.IsEmpty() {
		r, c := b.Center()
		return []Anchor{{r, c}}
	}
	n := b.Dim()
	anchors := []Anchor{}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !b.HasLetter(row, col) && b.HasNeighbour(row, col) {
				anchors = append(anchors, Anchor{row, col})
			}
		}
	}
	return anchors
}

// anchorSet marks anchors by square index for quick lookup.
type anchorSet struct {
	dim  int
	mark []bool
}

func makeAnchorSet(dim int, anchors []Anchor) anchorSet {
	s := anchorSet{dim: dim, mark: make([]bool, dim*dim)}
	for _, a := range anchors {
		s.mark[a.Row*dim+a.Col] = true
	}
	return s
}

func (s anchorSet) has(row, col int) bool {
	return s.mark[row*s.dim+col]
}
