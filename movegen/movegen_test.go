package movegen

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/cross_set"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/testhelpers"
	"github.com/domino14/wordtile/tilemapping"
)

func fixtureDawg() *dawg.Automaton {
	return dawg.MustBuild(testhelpers.FixtureWords(), tilemapping.EnglishAlphabet())
}

func elephantBoard(t *testing.T, tm *tilemapping.TileMapping) *board.Board {
	b := board.MakeBoard(board.CrosswordGame())
	_, err := b.SetRow(7, "   ELEPHAN", tm)
	require.NoError(t, err)
	return b
}

func generate(t *testing.T, g *Generator, b *board.Board, rack string) []*move.Placement {
	tm := g.Dawg().TileMapping()
	plays, err := g.Generate(context.Background(), b, cross_set.Generate(b, g.Dawg()),
		testhelpers.Rack(rack, tm))
	require.NoError(t, err)
	return plays
}

func serialized(plays []*move.Placement) []string {
	s := make([]string, len(plays))
	for i, p := range plays {
		s[i] = p.Serialize()
	}
	sort.Strings(s)
	return s
}

// spellings lists the ways the rack can supply letters, with a lowercase
// letter wherever a blank stands in.
func spellings(letters []tilemapping.MachineLetter, rack *tilemapping.Rack) [][]tilemapping.MachineLetter {
	if len(letters) == 0 {
		return [][]tilemapping.MachineLetter{{}}
	}
	var out [][]tilemapping.MachineLetter
	ml := letters[0]
	for _, use := range []tilemapping.MachineLetter{ml, tilemapping.BlankMachineLetter} {
		if !rack.Has(use) {
			continue
		}
		rack.Take(use)
		tile := ml
		if use == tilemapping.BlankMachineLetter {
			tile = ml.Blank()
		}
		for _, rest := range spellings(letters[1:], rack) {
			out = append(out, append([]tilemapping.MachineLetter{tile}, rest...))
		}
		rack.Add(use)
	}
	return out
}

// bruteForce finds every legal play by trying every lexicon word at every
// square in both directions.
func bruteForce(b *board.Board, a *dawg.Automaton, rack *tilemapping.Rack) []string {
	tm := a.TileMapping()
	n := b.Dim()
	cr, cc := b.Center()
	found := map[string]bool{}
	for _, w := range a.Words() {
		word, _ := tilemapping.ToMachineWord(w, tm)
		for _, dir := range board.Directions {
			dr, dc := dir.Delta()
			for row := 0; row < n; row++ {
				for col := 0; col < n; col++ {
					er, ec := row+(len(word)-1)*dr, col+(len(word)-1)*dc
					if !b.OnBoard(er, ec) || b.HasLetter(row-dr, col-dc) && b.OnBoard(row-dr, col-dc) ||
						b.OnBoard(er+dr, ec+dc) && b.HasLetter(er+dr, ec+dc) {
						continue
					}
					var fresh []tilemapping.MachineLetter
					var freshIdx []int
					connected := false
					fits := true
					for i, ml := range word {
						r, c := row+i*dr, col+i*dc
						if on := b.Letter(r, c); on != tilemapping.EmptySquareMarker {
							if on.Unblank() != ml {
								fits = false
								break
							}
							connected = true
							continue
						}
						fresh = append(fresh, ml)
						freshIdx = append(freshIdx, i)
						if b.HasNeighbour(r, c) || b.IsEmpty() && r == cr && c == cc {
							connected = true
						}
					}
					if !fits || !connected || len(fresh) == 0 {
						continue
					}
					for _, sp := range spellings(fresh, rack.Copy()) {
						cp := b.Copy()
						full := make(tilemapping.MachineWord, len(word))
						for i := range word {
							full[i] = cp.Letter(row+i*dr, col+i*dc)
						}
						for j, i := range freshIdx {
							r, c := row+i*dr, col+i*dc
							if err := cp.Place(r, c, sp[j]); err != nil {
								panic(err)
							}
							full[i] = sp[j]
						}
						ok := true
						for _, i := range freshIdx {
							r, c := row+i*dr, col+i*dc
							if cw, has := cp.WordThrough(r, c, dir.Perpendicular()); has && !a.ContainsWord(cw) {
								ok = false
								break
							}
						}
						if ok {
							p := move.NewPlacement(row, col, dir, full, nil, tm)
							found[p.Serialize()] = true
						}
					}
				}
			}
		}
	}
	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func TestFindAnchors(t *testing.T) {
	is := is.New(t)
	tm := tilemapping.EnglishAlphabet()
	b := board.MakeBoard(board.CrosswordGame())
	is.Equal(FindAnchors(b), []Anchor{{7, 7}})

	_, err := b.SetRow(7, "       AT", tm)
	is.NoErr(err)
	is.Equal(FindAnchors(b), []Anchor{
		{6, 7}, {6, 8},
		{7, 6}, {7, 9},
		{8, 7}, {8, 8},
	})

	// anchors never sit on tiles and always touch one
	b2 := board.MakeBoard(board.CrosswordGame())
	_, err = b2.SetToGame(tm, board.VsEd)
	is.NoErr(err)
	for _, a := range FindAnchors(b2) {
		is.True(!b2.HasLetter(a.Row, a.Col))
		is.True(b2.HasNeighbour(a.Row, a.Col))
	}
}

func TestEmptyBoardCompleteness(t *testing.T) {
	a := fixtureDawg()
	g := NewGenerator(a)
	b := board.MakeBoard(board.CrosswordGame())

	plays := generate(t, g, b, "TAE")
	// AE AT ET TA and ATE EAT ETA TAE TEA, at every offset over the
	// center, both ways
	assert.Len(t, plays, 46)
	assert.Equal(t, bruteForce(b, a, testhelpers.Rack("TAE", a.TileMapping())), serialized(plays))

	for _, p := range plays {
		covered := false
		for i := range p.Word() {
			r, c := p.Square(i)
			if r == 7 && c == 7 {
				covered = true
			}
		}
		assert.True(t, covered, p.Serialize())
		assert.Equal(t, len(p.Word()), p.TilesPlayed())
		ar, ac := p.Anchor()
		assert.Equal(t, [2]int{7, 7}, [2]int{ar, ac}, p.Serialize())
	}
}

// The last letter of a maximum-size alphabet goes on squares with no
// perpendicular neighbours like any other.
func TestMaxAlphabetLastLetter(t *testing.T) {
	letters := make([]rune, tilemapping.MaxAlphabetSize)
	for i := range letters {
		letters[i] = rune(0x4E00 + i)
	}
	tm, err := tilemapping.NewTileMapping(letters)
	require.NoError(t, err)
	first, second, last := string(letters[0]), string(letters[1]), string(letters[len(letters)-1])
	a := dawg.MustBuild([]string{first + second, first + last}, tm)
	require.True(t, a.Contains(first+last))

	g := NewGenerator(a)
	b := board.MakeBoard(board.CrosswordGame())
	plays := serialized(generate(t, g, b, first+second+last))
	assert.Len(t, plays, 8)
	for _, coords := range []string{"8G", "8H", "H7", "H8"} {
		assert.Contains(t, plays, coords+" "+first+last)
		assert.Contains(t, plays, coords+" "+first+second)
	}
	assert.Equal(t, bruteForce(b, a, testhelpers.Rack(first+second+last, tm)), plays)
}

func TestBlankSpellings(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	b := board.MakeBoard(board.CrosswordGame())

	plays := serialized(generate(t, g, b, "A?"))
	assert.Equal(t, bruteForce(b, a, testhelpers.Rack("A?", tm)), plays)
	// AA can be spelled with the blank in either position
	assert.Contains(t, plays, "8G Aa")
	assert.Contains(t, plays, "8G aA")
	assert.Contains(t, plays, "H8 aA")
	// ZA needs the blank for the Z
	assert.Contains(t, plays, "8H zA")
	assert.NotContains(t, plays, "8H ZA")
	for _, s := range plays {
		assert.NotContains(t, s, "?")
	}
}

func TestCompletenessOnBoard(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	b := elephantBoard(t, tm)
	_, err := b.SetRow(3, "   F NIT", tm)
	require.NoError(t, err)

	for _, rack := range []string{"TSAE", "ST?", "PLANTS", "Q"} {
		t.Run(rack, func(t *testing.T) {
			plays := serialized(generate(t, g, b, rack))
			assert.Equal(t, bruteForce(b, a, testhelpers.Rack(rack, tm)), plays)
		})
	}
}

func TestElephantHooks(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	b := elephantBoard(t, tm)

	plays := generate(t, g, b, "TSA")
	descs := make([]string, len(plays))
	for i, p := range plays {
		descs[i] = p.ShortDescription()
	}
	assert.Contains(t, descs, "8D .......T")
	assert.Contains(t, descs, "8D .......TS")
	// a T played down column K also forms ELEPHANT across
	assert.Contains(t, descs, "K7 AT")
	assert.Contains(t, descs, "K8 TA")
}

func TestSoundness(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	for _, game := range []board.VsWho{board.VsEd, board.VsMatt, board.VsOxy} {
		b := board.MakeBoard(board.CrosswordGame())
		_, err := b.SetToGame(tm, game)
		require.NoError(t, err)
		soundOn(t, a, g, b, []string{"AEINST?", "EHNOPT", "??"})
	}
}

func soundOn(t *testing.T, a *dawg.Automaton, g *Generator, b *board.Board, racks []string) {
	tm := a.TileMapping()
	for _, rack := range racks {
		plays := generate(t, g, b, rack)
		for _, p := range plays {
			cp := b.Copy()
			tiles := testhelpers.Rack(rack, tm)
			for i, ml := range p.Word() {
				r, c := p.Square(i)
				if !p.IsNew(i) {
					require.Equal(t, cp.Letter(r, c), ml, p.ShortDescription())
					continue
				}
				take := ml
				if ml.IsBlanked() {
					take = tilemapping.BlankMachineLetter
				}
				require.True(t, tiles.Has(take), "%s uses tiles not on %s", p, rack)
				tiles.Take(take)
				require.NoError(t, cp.Place(r, c, ml))
			}
			r0, c0 := p.Start()
			main, ok := cp.WordThrough(r0, c0, p.Direction())
			require.True(t, ok)
			assert.Equal(t, p.Word(), main, "%s is not the whole line", p)
			assert.True(t, a.ContainsWord(main), "%s", p)
			for i := range p.Word() {
				if !p.IsNew(i) {
					continue
				}
				r, c := p.Square(i)
				if cw, ok := cp.WordThrough(r, c, p.Direction().Perpendicular()); ok {
					assert.True(t, a.ContainsWord(cw), "%s makes %s", p, cw.UserVisible(tm))
				}
			}
		}
	}
}

func TestIdempotentAndRackUntouched(t *testing.T) {
	is := is.New(t)
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a, WithThreads(3))
	b := elephantBoard(t, tm)
	table := cross_set.Generate(b, a)
	rack := testhelpers.Rack("AEST?", tm)
	before := append([]int(nil), rack.LetArr...)
	hash := b.Hash()

	first, err := g.Generate(context.Background(), b, table, rack)
	is.NoErr(err)
	second, err := g.Generate(context.Background(), b, table, rack)
	is.NoErr(err)
	is.Equal(len(first), len(second))
	for i := range first {
		is.True(first[i].Equals(second[i]))
	}
	is.Equal(rack.LetArr, before)
	is.Equal(b.Hash(), hash)

	single, err := NewGenerator(a, WithThreads(1)).Generate(context.Background(), b, table, rack)
	is.NoErr(err)
	is.Equal(serialized(single), serialized(first))
}

func TestNoDuplicates(t *testing.T) {
	a := fixtureDawg()
	g := NewGenerator(a)
	b := elephantBoard(t, a.TileMapping())
	plays := generate(t, g, b, "AEST??")
	seen := map[move.Key]bool{}
	for _, p := range plays {
		assert.False(t, seen[p.Key()], p.Serialize())
		seen[p.Key()] = true
	}
}

func TestEmptyRack(t *testing.T) {
	is := is.New(t)
	a := fixtureDawg()
	g := NewGenerator(a)
	b := elephantBoard(t, a.TileMapping())
	plays, err := g.Generate(context.Background(), b, cross_set.Generate(b, a),
		tilemapping.NewRack(a.TileMapping()))
	is.NoErr(err)
	is.True(plays != nil)
	is.Equal(len(plays), 0)
}

func TestNoLegalMove(t *testing.T) {
	is := is.New(t)
	a := fixtureDawg()
	g := NewGenerator(a)
	plays := generate(t, g, board.MakeBoard(board.CrosswordGame()), "VV")
	is.Equal(len(plays), 0)
}

func TestMaxLeftPart(t *testing.T) {
	is := is.New(t)
	a := fixtureDawg()
	b := board.MakeBoard(board.CrosswordGame())
	plays := generate(t, NewGenerator(a, WithMaxLeftPart(0)), b, "TAE")
	is.Equal(len(plays), 46)

	capped := generate(t, NewGenerator(a, WithMaxLeftPart(1)), b, "TAE")
	for _, p := range capped {
		r, c := p.Start()
		// at most one tile before the center
		is.True(7-r+7-c <= 1)
	}
	is.True(len(capped) < len(plays))
}

func TestStaleTablePanics(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	b := elephantBoard(t, tm)
	table := cross_set.Generate(b, a)
	require.NoError(t, b.Place(0, 0, 1))

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, cross_set.ErrStaleTable))
	}()
	_, _ = g.Generate(context.Background(), b, table, testhelpers.Rack("AB", tm))
	t.Fatal("expected a panic")
}

func TestRackAlphabetMismatchPanics(t *testing.T) {
	a := fixtureDawg()
	g := NewGenerator(a)
	b := board.MakeBoard(board.CrosswordGame())
	small, err := tilemapping.NewTileMapping([]rune("ABC"))
	require.NoError(t, err)

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, tilemapping.ErrPrecondition))
	}()
	_, _ = g.Generate(context.Background(), b, cross_set.Generate(b, a), testhelpers.Rack("AB", small))
	t.Fatal("expected a panic")
}

func TestCancelledContext(t *testing.T) {
	is := is.New(t)
	a := fixtureDawg()
	g := NewGenerator(a)
	b := elephantBoard(t, a.TileMapping())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, b, cross_set.Generate(b, a), testhelpers.Rack("AEST", a.TileMapping()))
	is.True(errors.Is(err, context.Canceled))
}

func TestNotationRoundTrip(t *testing.T) {
	a := fixtureDawg()
	tm := a.TileMapping()
	g := NewGenerator(a)
	b := elephantBoard(t, tm)
	for _, p := range generate(t, g, b, "AEST?") {
		q, err := move.ParseOnBoard(p.Serialize(), b, tm)
		require.NoError(t, err, p.Serialize())
		assert.True(t, q.Equals(p), p.Serialize())
		assert.Equal(t, p.Provenance(), q.Provenance(), p.Serialize())
		assert.False(t, strings.Contains(p.Serialize(), "?"))
	}
}
