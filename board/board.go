// Package board holds the tile grid. The grid is a flat arena of
// (N+2)*(N+2) cells; the outer ring is a border that never holds a tile, so
// scans along a row or column stop at it without bounds checks.
package board

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/tilemapping"
	"github.com/domino14/wordtile/zobrist"
)

type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

// Directions lists both directions, horizontal first.
var Directions = [2]Direction{Horizontal, Vertical}

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	} else if d == Vertical {
		return "vertical"
	}
	return "none"
}

func (d Direction) Perpendicular() Direction {
	return d ^ 1
}

// Delta is the row and column step of one square along d.
func (d Direction) Delta() (int, int) {
	if d == Vertical {
		return 1, 0
	}
	return 0, 1
}

// MaxDim is the largest supported board. Columns are named A through Z.
const MaxDim = 26

var (
	ErrOffBoard    = fmt.Errorf("%w: square is not on the board", tilemapping.ErrPrecondition)
	ErrOccupied    = fmt.Errorf("%w: square is already occupied", tilemapping.ErrPrecondition)
	ErrNotOccupied = fmt.Errorf("%w: square has no tile", tilemapping.ErrPrecondition)
	ErrBadTile     = fmt.Errorf("%w: only letters and designated blanks can be placed", tilemapping.ErrPrecondition)
)

// A Board is the main board structure: the tiles and the bonus squares of
// an N by N grid.
type Board struct {
	dim         int
	stride      int
	cells       []tilemapping.MachineLetter
	bonuses     []BonusSquare
	tilesPlayed int
	hash        uint64
	zobrist     *zobrist.Zobrist
}

// NewBoard creates an empty dim x dim board. Bonuses come from layout when
// it is made for this size; otherwise the board has none.
func NewBoard(dim int, layout *Layout) *Board {
	if dim < 1 || dim > MaxDim {
		panic(fmt.Errorf("%w: board dimension %d", tilemapping.ErrPrecondition, dim))
	}
	stride := dim + 2
	b := &Board{
		dim:     dim,
		stride:  stride,
		cells:   make([]tilemapping.MachineLetter, stride*stride),
		bonuses: make([]BonusSquare, stride*stride),
		zobrist: zobrist.New(dim),
	}
	for i := range b.bonuses {
		b.bonuses[i] = NoBonus
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			b.bonuses[b.idx(r, c)] = layout.Bonus(r, c, dim)
		}
	}
	if layout != nil && layout.Size != dim {
		log.Debug().Int("dim", dim).Int("layout-size", layout.Size).
			Msg("layout-size-mismatch-no-bonuses")
	}
	return b
}

// MakeBoard creates an empty board the size of the layout.
func MakeBoard(layout *Layout) *Board {
	return NewBoard(layout.Size, layout)
}

func (b *Board) idx(row, col int) int {
	return (row+1)*b.stride + col + 1
}

func (b *Board) inArena(row, col int) bool {
	return row >= -1 && row <= b.dim && col >= -1 && col <= b.dim
}

func (b *Board) mustIdx(row, col int) int {
	if !b.inArena(row, col) {
		panic(fmt.Errorf("%w: (%d, %d) is outside the arena", ErrOffBoard, row, col))
	}
	return b.idx(row, col)
}

// OnBoard is true for playable (non-border) coordinates.
func (b *Board) OnBoard(row, col int) bool {
	return row >= 0 && row < b.dim && col >= 0 && col < b.dim
}

// Dim is the dimension of the board. It assumes the board is square.
func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) Center() (int, int) {
	return b.dim / 2, b.dim / 2
}

// IsEmpty returns true if no tile has been played.
func (b *Board) IsEmpty() bool {
	return b.tilesPlayed == 0
}

func (b *Board) TilesPlayed() int {
	return b.tilesPlayed
}

// Hash is the Zobrist hash of the tiles on the board. Boards share hash
// tables only with their copies, so hashes of unrelated boards are not
// comparable.
func (b *Board) Hash() uint64 {
	return b.hash
}

// Get returns the square at (row, col). Row or column -1 and Dim() are the
// border.
func (b *Board) Get(row, col int) Square {
	i := b.mustIdx(row, col)
	return Square{
		Row:    row,
		Col:    col,
		Letter: b.cells[i],
		Bonus:  b.bonuses[i],
		Border: !b.OnBoard(row, col),
	}
}

// Letter returns the tile at (row, col), or 0 for an empty or border square.
func (b *Board) Letter(row, col int) tilemapping.MachineLetter {
	return b.cells[b.mustIdx(row, col)]
}

func (b *Board) HasLetter(row, col int) bool {
	return b.Letter(row, col) != tilemapping.EmptySquareMarker
}

func (b *Board) Bonus(row, col int) BonusSquare {
	return b.bonuses[b.mustIdx(row, col)]
}

// Neighbours returns the orthogonal neighbours of (row, col), leaving out
// the border.
func (b *Board) Neighbours(row, col int) []Square {
	out := make([]Square, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := row+d[0], col+d[1]
		if b.OnBoard(r, c) {
			out = append(out, b.Get(r, c))
		}
	}
	return out
}

// HasNeighbour returns true if any orthogonal neighbour of the playable
// square (row, col) holds a tile.
func (b *Board) HasNeighbour(row, col int) bool {
	i := b.idx(row, col)
	return b.cells[i-1] != 0 || b.cells[i+1] != 0 ||
		b.cells[i-b.stride] != 0 || b.cells[i+b.stride] != 0
}

// Following returns the next square along dir.
func (b *Board) Following(row, col int, dir Direction) Square {
	dr, dc := dir.Delta()
	return b.Get(row+dr, col+dc)
}

// Previous returns the square before (row, col) along dir.
func (b *Board) Previous(row, col int, dir Direction) Square {
	dr, dc := dir.Delta()
	return b.Get(row-dr, col-dc)
}

// Extent returns the first and last squares of the run of tiles along dir
// that (row, col) would belong to if it held a tile.
func (b *Board) Extent(row, col int, dir Direction) (sr, sc, er, ec int) {
	dr, dc := dir.Delta()
	sr, sc = row, col
	for b.cells[b.idx(sr-dr, sc-dc)] != 0 {
		sr, sc = sr-dr, sc-dc
	}
	er, ec = row, col
	for b.cells[b.idx(er+dr, ec+dc)] != 0 {
		er, ec = er+dr, ec+dc
	}
	return sr, sc, er, ec
}

func (b *Board) run(sr, sc, n int, dir Direction) tilemapping.MachineWord {
	dr, dc := dir.Delta()
	word := make(tilemapping.MachineWord, n)
	for i := range word {
		word[i] = b.cells[b.idx(sr+i*dr, sc+i*dc)]
	}
	return word
}

// WordThrough returns the maximal run of tiles through (row, col) along
// dir. It returns false if the square is empty or the run is a single tile.
func (b *Board) WordThrough(row, col int, dir Direction) (tilemapping.MachineWord, bool) {
	if !b.OnBoard(row, col) || !b.HasLetter(row, col) {
		return nil, false
	}
	sr, sc, er, ec := b.Extent(row, col, dir)
	n := er - sr + ec - sc + 1
	if n < 2 {
		return nil, false
	}
	return b.run(sr, sc, n, dir), true
}

// Prefix returns the tiles immediately before (row, col) along dir, in
// board order. It is empty if the previous square is empty.
func (b *Board) Prefix(row, col int, dir Direction) tilemapping.MachineWord {
	sr, sc, _, _ := b.Extent(row, col, dir)
	return b.run(sr, sc, row-sr+col-sc, dir)
}

// Suffix returns the tiles immediately after (row, col) along dir.
func (b *Board) Suffix(row, col int, dir Direction) tilemapping.MachineWord {
	_, _, er, ec := b.Extent(row, col, dir)
	dr, dc := dir.Delta()
	return b.run(row+dr, col+dc, er-row+ec-col, dir)
}

// Place puts a tile on an empty square. Tiles are never overwritten.
func (b *Board) Place(row, col int, ml tilemapping.MachineLetter) error {
	if !b.OnBoard(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOffBoard, row, col)
	}
	if ml.Unblank() == 0 || ml.Unblank() >= zobrist.MaxLetters {
		return fmt.Errorf("%w: %v", ErrBadTile, ml)
	}
	i := b.idx(row, col)
	if b.cells[i] != tilemapping.EmptySquareMarker {
		return fmt.Errorf("%w: (%d, %d) holds %v", ErrOccupied, row, col, b.cells[i])
	}
	b.cells[i] = ml
	b.tilesPlayed++
	b.hash = b.zobrist.Toggle(b.hash, row, col, ml)
	return nil
}

// Remove takes the tile off (row, col). It exists to undo a whole move;
// callers remove exactly the tiles that move placed.
func (b *Board) Remove(row, col int) error {
	if !b.OnBoard(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOffBoard, row, col)
	}
	i := b.idx(row, col)
	ml := b.cells[i]
	if ml == tilemapping.EmptySquareMarker {
		return fmt.Errorf("%w: (%d, %d)", ErrNotOccupied, row, col)
	}
	b.cells[i] = tilemapping.EmptySquareMarker
	b.tilesPlayed--
	b.hash = b.zobrist.Toggle(b.hash, row, col, ml)
	return nil
}

// Clear removes every tile.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = tilemapping.EmptySquareMarker
	}
	b.tilesPlayed = 0
	b.hash = 0
}

// Copy returns a deep copy of the tiles. Bonuses and the hash tables are
// read-only and shared.
func (b *Board) Copy() *Board {
	nb := *b
	nb.cells = make([]tilemapping.MachineLetter, len(b.cells))
	copy(nb.cells, b.cells)
	return &nb
}

// Squares returns the tiles of the playable area in row-major order.
func (b *Board) Squares() tilemapping.MachineWord {
	out := make(tilemapping.MachineWord, 0, b.dim*b.dim)
	for r := 0; r < b.dim; r++ {
		i := b.idx(r, 0)
		out = append(out, b.cells[i:i+b.dim]...)
	}
	return out
}

func (b *Board) recount() {
	b.tilesPlayed = 0
	for _, ml := range b.cells {
		if ml != tilemapping.EmptySquareMarker {
			b.tilesPlayed++
		}
	}
	b.hash = b.zobrist.Hash(b.Squares())
}
