package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/wordtile/tilemapping"
)

const bignum = 1<<63 - 2

// MaxLetters is the size of one bank of letter keys. Bound blanks are hashed
// in a second bank so that a blank A and a natural A differ.
const MaxLetters = 64

// Zobrist generates a hash for the tiles on a board.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// The tables are read-only after New, so one Zobrist can be shared between
// boards and goroutines.
type Zobrist struct {
	posTable [][]uint64
	boardDim int
}

func New(boardDim int) *Zobrist {
	z := &Zobrist{boardDim: boardDim}
	z.posTable = make([][]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i] = make([]uint64, MaxLetters*2)
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	return z
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func tileKey(ml tilemapping.MachineLetter) int {
	if ml.IsBlanked() {
		return int(ml.Unblank()) + MaxLetters
	}
	return int(ml)
}

// Hash computes the key of a full position. squares is in row-major order
// and has boardDim*boardDim entries; empty squares are 0.
func (z *Zobrist) Hash(squares tilemapping.MachineWord) uint64 {
	key := uint64(0)
	for i, letter := range squares {
		if letter == tilemapping.EmptySquareMarker {
			continue
		}
		key ^= z.posTable[i][tileKey(letter)]
	}
	return key
}

// Toggle adds the tile at (row, col) to key, or removes it if it was
// already accounted for. Placing and then removing the same tile gives
// back the original key.
func (z *Zobrist) Toggle(key uint64, row, col int, ml tilemapping.MachineLetter) uint64 {
	return key ^ z.posTable[row*z.boardDim+col][tileKey(ml)]
}
