package board

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/domino14/wordtile/tilemapping"
)

var boardPlaintextRegex = regexp.MustCompile(`\|(.+)\|`)

func (b *Board) ToDisplayText(tm *tilemapping.TileMapping) string {
	var sb strings.Builder
	n := b.Dim()
	sb.WriteString("   ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%c ", 'A'+i)
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%2d|", i+1)
		for j := 0; j < n; j++ {
			sb.WriteString(b.Get(i, j).DisplayString(tm) + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + sb.String()
}

// SetFromPlaintext sets the board from the given plaintext board (the
// format ToDisplayText and the sample boards use; bonus markers and dots
// are empty squares). It returns all the tiles on the board so that the
// caller can reconcile its tile pool.
func (b *Board) SetFromPlaintext(qText string, tm *tilemapping.TileMapping) (tilemapping.MachineWord, error) {
	result := boardPlaintextRegex.FindAllStringSubmatch(qText, -1)
	if len(result) < b.dim {
		return nil, fmt.Errorf("plaintext board has %d rows, want %d", len(result), b.dim)
	}
	b.Clear()
	played := tilemapping.MachineWord{}
	for i := 0; i < b.dim; i++ {
		// every other rune is a square; the ones between are spacing
		runes := []rune(result[i][1])
		for j := 0; j < len(runes) && j/2 < b.dim; j += 2 {
			letter, err := tm.Val(runes[j])
			if err != nil || letter == tilemapping.EmptySquareMarker {
				// a space or a bonus marker
				continue
			}
			b.cells[b.idx(i, j/2)] = letter
			played = append(played, letter)
		}
	}
	b.recount()
	return played, nil
}

// SetRow sets a row of the board to the passed-in letters; spaces are
// empty squares. It returns the letters that were set.
func (b *Board) SetRow(rowNum int, letters string, tm *tilemapping.TileMapping) (tilemapping.MachineWord, error) {
	if rowNum < 0 || rowNum >= b.dim {
		return nil, fmt.Errorf("%w: row %d", ErrOffBoard, rowNum)
	}
	runes := []rune(letters)
	if len(runes) > b.dim {
		return nil, fmt.Errorf("%w: row of %d squares", ErrOffBoard, len(runes))
	}
	row := make(tilemapping.MachineWord, b.dim)
	played := tilemapping.MachineWord{}
	for col, r := range runes {
		if r == ' ' {
			continue
		}
		letter, err := tm.Val(r)
		if err != nil {
			return nil, err
		}
		if letter == tilemapping.EmptySquareMarker {
			return nil, fmt.Errorf("%w: undesignated blank in row %d", ErrBadTile, rowNum)
		}
		row[col] = letter
		played = append(played, letter)
	}
	copy(b.cells[b.idx(rowNum, 0):], row)
	b.recount()
	return played, nil
}
