package cgp

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/testhelpers"
	"github.com/domino14/wordtile/tilemapping"
)

var DefaultConfig = config.DefaultConfig()

const elephantCGP = "15/15/15/15/15/15/15/3ELEPHAn5/15/15/15/15/15/15/15 ?AEST/EIR 12/7 1 lex NWL23;"

func TestRowToLetters(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		row    string
		parsed []tilemapping.MachineLetter
	}{
		{"15", []tilemapping.MachineLetter{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"10AB3", []tilemapping.MachineLetter{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 0, 0, 0}},
		{"A3B10", []tilemapping.MachineLetter{1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"A3b10", []tilemapping.MachineLetter{1, 0, 0, 0, 2 | 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"1A1B2C3D4", []tilemapping.MachineLetter{0, 1, 0, 2, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0, 0}},
	}
	for _, tc := range testcases {
		parsed, err := rowToLetters(tc.row, testhelpers.EnglishAlphabet())
		is.NoErr(err)
		is.Equal(parsed, tc.parsed)
	}
	_, err := rowToLetters("7?7", testhelpers.EnglishAlphabet())
	is.True(err != nil)
}

func TestParseCGP(t *testing.T) {
	is := is.New(t)
	parsed, err := ParseCGP(DefaultConfig, elephantCGP)
	is.NoErr(err)
	tm := parsed.LetterDistribution.TileMapping()

	is.Equal(parsed.Board.Dim(), 15)
	is.Equal(parsed.Board.TilesPlayed(), 7)
	word, ok := parsed.Board.WordThrough(7, 5, board.Horizontal)
	is.True(ok)
	is.Equal(word.UserVisible(tm), "ELEPHAn")
	is.Equal(parsed.Racks[0].String(), "?AEST")
	is.Equal(parsed.Racks[1].NumTiles(), 3)
	is.Equal(parsed.Scores, []int{12, 7})
	is.Equal(parsed.ScorelessTurns, 1)
	is.Equal(parsed.LexiconName, "NWL23")
	is.Equal(parsed.Opcodes["lex"], "NWL23")
}

func TestCGPRoundTrip(t *testing.T) {
	is := is.New(t)
	parsed, err := ParseCGP(DefaultConfig, elephantCGP)
	is.NoErr(err)
	out, err := ToCGP(parsed.Board, parsed.LetterDistribution.TileMapping(), parsed.Racks,
		parsed.Scores, parsed.ScorelessTurns, parsed.LexiconName)
	is.NoErr(err)
	is.Equal(out, elephantCGP)

	again, err := ParseCGP(DefaultConfig, "cgp "+out)
	is.NoErr(err)
	is.Equal(again.Board.Hash(), parsed.Board.Hash())
}

func TestCGPDefaults(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDefaultLexicon, "CSW24")
	parsed, err := ParseCGP(cfg, "15/15/15/15/15/15/15/15/15/15/15/15/15/15/15 / 0/0 0")
	is.NoErr(err)
	is.True(parsed.Board.IsEmpty())
	is.Equal(parsed.LexiconName, "CSW24")
	is.True(parsed.Racks[0].Empty())
}

func TestParseCGPErrors(t *testing.T) {
	for _, s := range []string{
		"15/15 A",
		"15/15/15/15/15/15/15/15/15/15/15/15/15/15/15 A/B 0 0",
		"15/15/15/15/15/15/15/15/15/15/15/15/15/15/15 A/B 0/x 0",
		"15/15/15/15/15/15/15/15/15/15/15/15/15/15/14 A/B 0/0 0",
		"15/15/15/15/15/15/15/15/15/15/15/15/15/15/15 A/B 0/0 zero",
		"15/15/15/15/15/15/15/15/15/15/15/15/15/15/15 A/B 0/0 0 lex",
	} {
		_, err := ParseCGP(DefaultConfig, s)
		if !errors.Is(err, ErrBadCGP) {
			t.Errorf("%q: expected a cgp error, got %v", s, err)
		}
	}
}

func TestToCGPNeedsRacks(t *testing.T) {
	is := is.New(t)
	parsed, err := ParseCGP(DefaultConfig, elephantCGP)
	is.NoErr(err)
	tm := parsed.LetterDistribution.TileMapping()

	_, err = ToCGP(parsed.Board, tm, nil, nil, 0, "NWL23")
	is.True(errors.Is(err, ErrBadCGP))
	_, err = ToCGP(parsed.Board, tm, parsed.Racks, parsed.Scores[:1], 0, "NWL23")
	is.True(errors.Is(err, ErrBadCGP))
}
