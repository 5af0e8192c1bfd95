// Package move describes tile placements and their text notation.
package move

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/tilemapping"
)

// Provenance tells whether a square of a placement gets a tile from the
// rack or uses one that is already on the board.
type Provenance uint8

const (
	Placed Provenance = iota
	PlayedThrough
)

// ErrBadNotation is returned for text that is not a placement, or that
// does not fit the board it is parsed against.
var ErrBadNotation = fmt.Errorf("%w: bad move notation", tilemapping.ErrPrecondition)

// A Placement is a fully resolved tile play. The word is the whole main
// word, including tiles already on the board; blanks from the rack carry
// the letter they were designated as.
type Placement struct {
	rowStart   int
	colStart   int
	dir        board.Direction
	word       tilemapping.MachineWord
	provenance []Provenance
	anchorRow  int
	anchorCol  int
	alph       *tilemapping.TileMapping
}

var reVertical, reHorizontal *regexp.Regexp

func init() {
	reVertical = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reHorizontal = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
}

// NewPlacement creates a placement. word and provenance must have the same
// length; a nil provenance means it is not known yet (see ParseOnBoard).
// The anchor defaults to the start square.
func NewPlacement(row, col int, dir board.Direction, word tilemapping.MachineWord,
	provenance []Provenance, alph *tilemapping.TileMapping) *Placement {

	if provenance != nil && len(provenance) != len(word) {
		panic(fmt.Errorf("%w: %d provenance tags for a word of %d",
			tilemapping.ErrPrecondition, len(provenance), len(word)))
	}
	return &Placement{
		rowStart: row, colStart: col, dir: dir, word: word, provenance: provenance,
		anchorRow: row, anchorCol: col, alph: alph,
	}
}

// SetAnchor records the anchor square the placement was generated from.
func (p *Placement) SetAnchor(row, col int) {
	p.anchorRow, p.anchorCol = row, col
}

func (p *Placement) Anchor() (int, int) {
	return p.anchorRow, p.anchorCol
}

func (p *Placement) Start() (int, int) {
	return p.rowStart, p.colStart
}

func (p *Placement) Direction() board.Direction {
	return p.dir
}

func (p *Placement) Word() tilemapping.MachineWord {
	return p.word
}

func (p *Placement) Provenance() []Provenance {
	return p.provenance
}

func (p *Placement) Alphabet() *tilemapping.TileMapping {
	return p.alph
}

// Square returns the coordinates of the ith letter of the word.
func (p *Placement) Square(i int) (int, int) {
	dr, dc := p.dir.Delta()
	return p.rowStart + i*dr, p.colStart + i*dc
}

// IsNew reports whether the ith square gets a tile from the rack.
func (p *Placement) IsNew(i int) bool {
	return p.provenance[i] == Placed
}

// TilesPlayed returns the number of tiles taken from the rack.
func (p *Placement) TilesPlayed() int {
	return lo.Count(p.provenance, Placed)
}

// Tiles returns the tiles taken from the rack, in board order. Blanks
// keep their designation.
func (p *Placement) Tiles() tilemapping.MachineWord {
	return lo.Filter(p.word, func(_ tilemapping.MachineLetter, i int) bool {
		return p.provenance[i] == Placed
	})
}

// Equals compares the start square, direction and word, blank
// designations included. Provenance and anchor are ignored.
func (p *Placement) Equals(o *Placement) bool {
	if p.rowStart != o.rowStart || p.colStart != o.colStart || p.dir != o.dir ||
		len(p.word) != len(o.word) {
		return false
	}
	for i := range p.word {
		if p.word[i] != o.word[i] {
			return false
		}
	}
	return true
}

// Key identifies a placement: two placements with the same key put the
// same tiles on the same squares.
type Key struct {
	Row, Col int
	Dir      board.Direction
	Word     string
}

func (p *Placement) Key() Key {
	return Key{Row: p.rowStart, Col: p.colStart, Dir: p.dir, Word: string(p.word)}
}

func (p *Placement) BoardCoords() string {
	return ToBoardGameCoords(p.rowStart, p.colStart, p.dir == board.Vertical)
}

// Serialize returns the notation: "8H WORD" for a horizontal play that
// starts on row 8, column H, and "H8 WORD" for a vertical one. Letters from
// blanks are lowercase.
func (p *Placement) Serialize() string {
	return p.BoardCoords() + " " + p.word.UserVisible(p.alph)
}

func (p *Placement) String() string {
	return p.Serialize()
}

// ShortDescription marks the letters already on the board with '.', which
// is the way plays are usually written down.
func (p *Placement) ShortDescription() string {
	runes := make([]rune, len(p.word))
	for i, ml := range p.word {
		if p.provenance != nil && p.provenance[i] == PlayedThrough {
			runes[i] = tilemapping.ASCIIPlayedThrough
			continue
		}
		runes[i] = p.alph.Letter(ml)
	}
	return p.BoardCoords() + " " + string(runes)
}

// ToBoardGameCoords converts the row, col, and orientation of the play to
// a coordinate like 5F or G4.
func ToBoardGameCoords(row int, col int, vertical bool) string {
	colCoords := string(rune('A' + col))
	rowCoords := strconv.Itoa(row + 1)
	if vertical {
		return colCoords + rowCoords
	}
	return rowCoords + colCoords
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords above.
func FromBoardGameCoords(c string) (int, int, bool, error) {
	if vMatches := reVertical.FindStringSubmatch(c); len(vMatches) == 3 {
		row, _ := strconv.Atoi(vMatches[2])
		return row - 1, int(vMatches[1][0] - 'A'), true, nil
	}
	if hMatches := reHorizontal.FindStringSubmatch(c); len(hMatches) == 3 {
		row, _ := strconv.Atoi(hMatches[1])
		return row - 1, int(hMatches[2][0] - 'A'), false, nil
	}
	return 0, 0, false, fmt.Errorf("%w: coordinates %q", ErrBadNotation, c)
}

// Parse reads a placement written by Serialize. The result has no
// provenance; use ParseOnBoard to check it against a board.
func Parse(s string, tm *tilemapping.TileMapping) (*Placement, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q is not <coords> <word>", ErrBadNotation, s)
	}
	row, col, vertical, err := FromBoardGameCoords(fields[0])
	if err != nil {
		return nil, err
	}
	if row < 0 {
		return nil, fmt.Errorf("%w: row 0", ErrBadNotation)
	}
	word, err := tilemapping.ToMachineWord(fields[1], tm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	for _, ml := range word {
		if ml == tilemapping.BlankMachineLetter {
			return nil, fmt.Errorf("%w: blank in %q has no letter", ErrBadNotation, fields[1])
		}
	}
	dir := board.Horizontal
	if vertical {
		dir = board.Vertical
	}
	return NewPlacement(row, col, dir, word, nil, tm), nil
}

// ParseOnBoard parses s and works out, square by square, which letters
// come from the rack. Letters on occupied squares must match the board;
// they may also be written as '.'. The word must be the whole run of tiles
// along its line.
func ParseOnBoard(s string, b *board.Board, tm *tilemapping.TileMapping) (*Placement, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q is not <coords> <word>", ErrBadNotation, s)
	}
	// fill in played-through markers before the generic parse
	row, col, vertical, err := FromBoardGameCoords(fields[0])
	if err != nil {
		return nil, err
	}
	dir := board.Horizontal
	if vertical {
		dir = board.Vertical
	}
	dr, dc := dir.Delta()
	runes := []rune(fields[1])
	for i, r := range runes {
		if r != tilemapping.ASCIIPlayedThrough {
			continue
		}
		rr, cc := row+i*dr, col+i*dc
		if !b.OnBoard(rr, cc) || !b.HasLetter(rr, cc) {
			return nil, fmt.Errorf("%w: nothing to play through at %s",
				ErrBadNotation, ToBoardGameCoords(rr, cc, false))
		}
		runes[i] = tm.Letter(b.Letter(rr, cc))
	}
	p, err := Parse(fields[0]+" "+string(runes), tm)
	if err != nil {
		return nil, err
	}
	if err := p.resolve(b); err != nil {
		return nil, err
	}
	return p, nil
}

// resolve fills in provenance from the board.
func (p *Placement) resolve(b *board.Board) error {
	n := len(p.word)
	lr, lc := p.Square(n - 1)
	if !b.OnBoard(p.rowStart, p.colStart) || !b.OnBoard(lr, lc) {
		return fmt.Errorf("%w: %s does not fit on the board", ErrBadNotation, p.Serialize())
	}
	if b.Previous(p.rowStart, p.colStart, p.dir).HasTile() || b.Following(lr, lc, p.dir).HasTile() {
		return fmt.Errorf("%w: %s is not the whole word along its line", ErrBadNotation, p.Serialize())
	}
	prov := make([]Provenance, n)
	for i, ml := range p.word {
		r, c := p.Square(i)
		onBoard := b.Letter(r, c)
		switch {
		case onBoard == tilemapping.EmptySquareMarker:
			prov[i] = Placed
		case onBoard == ml:
			prov[i] = PlayedThrough
		case onBoard.Unblank() == ml.Unblank():
			// the board knows whether the tile is a blank
			p.word[i] = onBoard
			prov[i] = PlayedThrough
		default:
			return fmt.Errorf("%w: %s conflicts with %c at %s", ErrBadNotation,
				p.Serialize(), p.alph.Letter(onBoard), ToBoardGameCoords(r, c, false))
		}
	}
	if lo.Count(prov, Placed) == 0 {
		return fmt.Errorf("%w: %s places no tiles", ErrBadNotation, p.Serialize())
	}
	p.provenance = prov
	return nil
}
