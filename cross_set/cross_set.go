// Package cross_set computes, for every empty square, the letters that can
// be put there without making a bad word across the line of play. A Table
// is derived from one board state and is rebuilt in full after every
// change; it is never patched.
package cross_set

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/tilemapping"
)

const (
	// TrivialCrossSet allows every possible letter. It is the cross set of
	// a square with no tiles on either side. Letters are numbered from 1, so
	// the mask needs MaxAlphabetSize+1 bits.
	TrivialCrossSet = (1 << (tilemapping.MaxAlphabetSize + 1)) - 1
)

// ErrStaleTable means a table was used with a board state other than the
// one it was generated from.
var ErrStaleTable = fmt.Errorf("%w: cross-set table does not match the board", tilemapping.ErrPrecondition)

// A CrossSet is a bit mask of letters that are allowed on a square.
type CrossSet uint64

// Allowed reports whether letter may go on the square. Designated blanks
// are checked as their letter.
func (c CrossSet) Allowed(letter tilemapping.MachineLetter) bool {
	return c&(1<<uint8(letter.Unblank())) != 0
}

func (c *CrossSet) Set(letter tilemapping.MachineLetter) {
	*c = *c | (1 << letter.Unblank())
}

func CrossSetFromString(letters string, tm *tilemapping.TileMapping) CrossSet {
	c := CrossSet(0)
	for _, l := range letters {
		v, err := tm.Val(l)
		if err != nil {
			panic("Letter error: " + string(l))
		}
		c.Set(v)
	}
	return c
}

// String lists the allowed letters, or "*" for the trivial cross set.
func (c CrossSet) String(tm *tilemapping.TileMapping) string {
	if c == TrivialCrossSet {
		return "*"
	}
	var sb strings.Builder
	for set := uint64(c); set != 0; set &= set - 1 {
		ml := tilemapping.MachineLetter(bits.TrailingZeros64(set))
		if ml == 0 || int(ml) > tm.NumLetters() {
			continue
		}
		sb.WriteRune(tm.Letter(ml))
	}
	return sb.String()
}

// A Table holds the cross sets of every square for both directions of
// play.
type Table struct {
	dim       int
	sets      [2][]CrossSet
	boardHash uint64
}

// Generate computes the cross sets of the whole board.
func Generate(b *board.Board, a *dawg.Automaton) *Table {
	n := b.Dim()
	t := &Table{dim: n, boardHash: b.Hash()}
	for _, dir := range board.Directions {
		t.sets[dir] = make([]CrossSet, n*n)
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				// A move along dir is limited by the words it forms along
				// the perpendicular.
				t.sets[dir][row*n+col] = genCrossSet(b, a, row, col, dir.Perpendicular())
			}
		}
	}
	log.Debug().Int("dim", n).Uint64("board-hash", b.Hash()).Msg("generated-cross-sets")
	return t
}

// genCrossSet finds the letters that make a word together with the tiles
// before and after the empty square (row, col) along dir.
func genCrossSet(b *board.Board, a *dawg.Automaton, row, col int, dir board.Direction) CrossSet {
	if b.HasLetter(row, col) {
		return 0
	}
	prefix := b.Prefix(row, col, dir)
	suffix := b.Suffix(row, col, dir)
	if len(prefix) == 0 && len(suffix) == 0 {
		return TrivialCrossSet
	}
	node, ok := a.Walk(a.Root(), prefix)
	if !ok {
		// A prefix that is not in the lexicon (say, a phony that stayed on
		// the board) cannot be extended.
		return 0
	}
	cs := CrossSet(0)
	for set := a.LetterSet(node); set != 0; set &= set - 1 {
		ml := tilemapping.MachineLetter(bits.TrailingZeros64(set))
		next, _ := a.Transition(node, ml)
		if end, ok := a.Walk(next, suffix); ok && a.IsAccepting(end) {
			cs.Set(ml)
		}
	}
	return cs
}

// Get returns the letters that a move running along dir may put on (row,
// col). Occupied squares have an empty cross set.
func (t *Table) Get(row, col int, dir board.Direction) CrossSet {
	return t.sets[dir][row*t.dim+col]
}

// CheckFresh panics if b is not the board state t was generated from.
func (t *Table) CheckFresh(b *board.Board) {
	if b.Dim() != t.dim || b.Hash() != t.boardHash {
		panic(fmt.Errorf("%w: table hash %x, board hash %x", ErrStaleTable, t.boardHash, b.Hash()))
	}
}
