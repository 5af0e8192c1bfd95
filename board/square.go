package board

import (
	"fmt"

	"github.com/domino14/wordtile/tilemapping"
)

// A BonusSquare is a bonus square (duh)
type BonusSquare rune

const (
	NoBonus BonusSquare = ' '
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score
	Bonus2WS BonusSquare = '-'
)

func (b BonusSquare) LetterMultiplier() int {
	switch b {
	case Bonus2LS:
		return 2
	case Bonus3LS:
		return 3
	}
	return 1
}

func (b BonusSquare) WordMultiplier() int {
	switch b {
	case Bonus2WS:
		return 2
	case Bonus3WS:
		return 3
	}
	return 1
}

func (b BonusSquare) displayString() string {
	if b == NoBonus || b == 0 {
		return "."
	}
	return string(b)
}

// A Square is a snapshot of one cell of the board arena. Border squares
// are the ring around the playable area; they never hold a tile.
type Square struct {
	Row, Col int
	Letter   tilemapping.MachineLetter
	Bonus    BonusSquare
	Border   bool
}

// IsEmpty is true for a playable square with no tile on it.
func (s Square) IsEmpty() bool {
	return !s.Border && s.Letter == tilemapping.EmptySquareMarker
}

func (s Square) HasTile() bool {
	return !s.Border && s.Letter != tilemapping.EmptySquareMarker
}

func (s Square) String() string {
	if s.Border {
		return fmt.Sprintf("<border (%d, %d)>", s.Row, s.Col)
	}
	return fmt.Sprintf("<(%d, %d) %v (%s)>", s.Row, s.Col, s.Letter, string(s.Bonus))
}

func (s Square) DisplayString(tm *tilemapping.TileMapping) string {
	if s.Letter == tilemapping.EmptySquareMarker {
		return s.Bonus.displayString()
	}
	return string(tm.Letter(s.Letter))
}
