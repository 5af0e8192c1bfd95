package board

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// CrosswordGameLayout is the name of the built-in 15x15 layout.
const CrosswordGameLayout = "CrosswordGame"

//go:embed layouts/CrosswordGame.yaml
var crosswordGameYAML []byte

var ErrBadLayout = errors.New("bad board layout")

// A Layout describes the bonus squares of a board of one size. Only one
// octant is stored; the board is assumed symmetric under rotation and
// reflection.
type Layout struct {
	Name   string
	Size   int
	octant map[[2]int]BonusSquare
}

type layoutFile struct {
	Name    string             `yaml:"name"`
	Size    int                `yaml:"size"`
	Bonuses map[string][][]int `yaml:"bonuses"`
}

var bonusLevels = map[string]BonusSquare{
	"TW": Bonus3WS,
	"DW": Bonus2WS,
	"TL": Bonus3LS,
	"DL": Bonus2LS,
}

// fold maps (row, col) into the canonical octant: the top-left quadrant,
// on or above the diagonal.
func fold(row, col, dim int) (int, int) {
	r := min(row, dim-1-row)
	c := min(col, dim-1-col)
	if r > c {
		r, c = c, r
	}
	return r, c
}

// LoadLayout parses a YAML layout. Coordinates must already be in the
// canonical octant.
func LoadLayout(r io.Reader) (*Layout, error) {
	var lf layoutFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLayout, err)
	}
	if lf.Size < 1 || lf.Size > MaxDim {
		return nil, fmt.Errorf("%w: size %d out of range", ErrBadLayout, lf.Size)
	}
	l := &Layout{Name: lf.Name, Size: lf.Size, octant: map[[2]int]BonusSquare{}}
	for level, coords := range lf.Bonuses {
		bonus, ok := bonusLevels[level]
		if !ok {
			return nil, fmt.Errorf("%w: unknown bonus level %q", ErrBadLayout, level)
		}
		for _, rc := range coords {
			if len(rc) != 2 {
				return nil, fmt.Errorf("%w: coordinate %v is not a pair", ErrBadLayout, rc)
			}
			if fr, fc := fold(rc[0], rc[1], l.Size); fr != rc[0] || fc != rc[1] ||
				rc[0] < 0 || rc[1] < 0 {
				return nil, fmt.Errorf("%w: %v is not in the canonical octant", ErrBadLayout, rc)
			}
			key := [2]int{rc[0], rc[1]}
			if _, dup := l.octant[key]; dup {
				return nil, fmt.Errorf("%w: %v has two bonuses", ErrBadLayout, rc)
			}
			l.octant[key] = bonus
		}
	}
	return l, nil
}

func LoadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadLayout(f)
}

var crosswordGame = sync.OnceValue(func() *Layout {
	l, err := LoadLayout(bytes.NewReader(crosswordGameYAML))
	if err != nil {
		panic(err)
	}
	return l
})

// CrosswordGame returns the built-in 15x15 layout. Layouts are read-only
// and may be shared.
func CrosswordGame() *Layout {
	return crosswordGame()
}

// NamedLayout returns the built-in layout for its name (or for ""), and
// otherwise treats name as a path to a layout file.
func NamedLayout(name string) (*Layout, error) {
	if name == "" || name == CrosswordGameLayout {
		return CrosswordGame(), nil
	}
	return LoadLayoutFile(name)
}

// Bonus returns the bonus at (row, col) on a board of the given size. A
// board whose size differs from the layout's has no bonuses at all.
func (l *Layout) Bonus(row, col, dim int) BonusSquare {
	if l == nil || dim != l.Size {
		return NoBonus
	}
	r, c := fold(row, col, dim)
	if b, ok := l.octant[[2]int{r, c}]; ok {
		return b
	}
	return NoBonus
}
