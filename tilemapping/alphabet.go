package tilemapping

import (
	"fmt"
	"unicode"

	"github.com/rs/zerolog/log"
)

// A "letter" or tile is internally represented by a byte.
// The 0 value is used for two things:
// - an empty square on the board
// - an unassigned blank on a rack
// The first letter of the alphabet is 1, the second 2, and so on.
// A blank that has been bound to a letter during a play is that letter
// with the high bit set (0x80 | ml). The binding only ever lives in the
// placement's word; rack tiles are never rewritten.
const (
	// MaxAlphabetSize should be below 64 so that a letter set fits in a
	// 64-bit int.
	MaxAlphabetSize = 62
	// BlankToken is the user-friendly representation of an unassigned blank.
	BlankToken = '?'
	// ASCIIPlayedThrough is shown in debug output for letters that were
	// already on the board.
	ASCIIPlayedThrough = '.'
)

const (
	BlankMask   = 0x80
	UnblankMask = (0x80 - 1)

	EmptySquareMarker  MachineLetter = 0
	BlankMachineLetter MachineLetter = 0
)

// MachineLetter is a machine-only representation of a letter.
type MachineLetter byte

type MachineWord []MachineLetter

// A TileMapping maps user-visible runes like 'B' to their MachineLetter
// counterpart (2 in the English alphabet) and back.
type TileMapping struct {
	vals map[rune]MachineLetter
	// letters[0] is the blank token; letters[i] is the rune of letter i.
	letters []rune
}

// NewTileMapping creates a mapping in the given letter order. The first rune
// becomes MachineLetter 1.
func NewTileMapping(letters []rune) (*TileMapping, error) {
	if len(letters) > MaxAlphabetSize {
		return nil, fmt.Errorf("alphabet of %d letters exceeds max alphabet size %d",
			len(letters), MaxAlphabetSize)
	}
	tm := &TileMapping{
		vals:    make(map[rune]MachineLetter, len(letters)),
		letters: make([]rune, 1, len(letters)+1),
	}
	tm.letters[0] = BlankToken
	for _, r := range letters {
		r = unicode.ToUpper(r)
		if r == BlankToken || r == ASCIIPlayedThrough {
			return nil, fmt.Errorf("reserved rune %q cannot be a letter", r)
		}
		if _, ok := tm.vals[r]; ok {
			return nil, fmt.Errorf("duplicate letter %q in alphabet", r)
		}
		tm.letters = append(tm.letters, r)
		tm.vals[r] = MachineLetter(len(tm.letters) - 1)
	}
	log.Debug().Int("letters", len(letters)).Msg("tile-mapping-created")
	return tm, nil
}

// EnglishAlphabet returns a TileMapping for the English alphabet.
func EnglishAlphabet() *TileMapping {
	tm, err := NewTileMapping([]rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	if err != nil {
		panic(err)
	}
	return tm
}

// Letter returns the letter that this machine letter corresponds to.
// Bound blanks come back in lowercase.
func (tm *TileMapping) Letter(ml MachineLetter) rune {
	if ml == 0 {
		return BlankToken
	}
	if ml.IsBlanked() {
		return unicode.ToLower(tm.letters[ml.Unblank()])
	}
	return tm.letters[ml]
}

// Val returns the machine letter for r. Lowercase letters are bound blanks.
func (tm *TileMapping) Val(r rune) (MachineLetter, error) {
	if r == BlankToken {
		return BlankMachineLetter, nil
	}
	if val, ok := tm.vals[r]; ok {
		return val, nil
	}
	if unicode.IsLower(r) {
		if val, ok := tm.vals[unicode.ToUpper(r)]; ok {
			return val.Blank(), nil
		}
	}
	return 0, fmt.Errorf("letter `%c` not found in alphabet", r)
}

// NumLetters returns the number of real letters, not counting the blank.
func (tm *TileMapping) NumLetters() int {
	return len(tm.letters) - 1
}

// Letters returns the letters of the alphabet in machine-letter order.
func (tm *TileMapping) Letters() []rune {
	out := make([]rune, len(tm.letters)-1)
	copy(out, tm.letters[1:])
	return out
}

// Blank turns the machine letter into its bound-blank version.
func (ml MachineLetter) Blank() MachineLetter {
	return ml | BlankMask
}

// Unblank turns a bound blank back into its plain letter.
func (ml MachineLetter) Unblank() MachineLetter {
	return ml & UnblankMask
}

// IsBlanked returns true if the machine letter is a bound blank.
func (ml MachineLetter) IsBlanked() bool {
	return ml&BlankMask > 0
}

// IntrinsicTileIdx is the rack slot this tile came from: 0 for any blank,
// the letter itself otherwise.
func (ml MachineLetter) IntrinsicTileIdx() MachineLetter {
	if ml.IsBlanked() {
		return BlankMachineLetter
	}
	return ml
}

// UserVisible turns the machine word into a string. Bound blanks are
// lowercase.
func (mw MachineWord) UserVisible(tm *TileMapping) string {
	runes := make([]rune, len(mw))
	for i, l := range mw {
		runes[i] = tm.Letter(l)
	}
	return string(runes)
}

// ToMachineWord converts word into machine letters.
func ToMachineWord(word string, tm *TileMapping) (MachineWord, error) {
	mls := make(MachineWord, 0, len(word))
	for _, ch := range word {
		ml, err := tm.Val(ch)
		if err != nil {
			return nil, err
		}
		mls = append(mls, ml)
	}
	return mls, nil
}
