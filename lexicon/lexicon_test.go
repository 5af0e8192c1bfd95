package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/testhelpers"
	"github.com/domino14/wordtile/tilemapping"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, t.TempDir())
	cfg.Set(config.ConfigDataPath, t.TempDir())
	return cfg
}

func TestMismatchedMapping(t *testing.T) {
	is := is.New(t)
	small, err := tilemapping.NewTileMapping([]rune("ABC"))
	is.NoErr(err)
	a := dawg.MustBuild([]string{"AB", "BA"}, small)
	_, err = New("tiny", a, tilemapping.EnglishLetterDistribution())
	is.True(errors.Is(err, ErrMismatchedMapping))
	is.True(errors.Is(err, tilemapping.ErrPrecondition))
}

func TestLoadWordList(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t)
	words := strings.Join(testhelpers.FixtureWords(), "\n")
	err := os.WriteFile(filepath.Join(cfg.GetString(config.ConfigLexiconPath), "FIXTURE.txt"),
		[]byte(words), 0o644)
	is.NoErr(err)

	lex, err := Load(cfg, "FIXTURE", "english")
	is.NoErr(err)
	is.Equal(lex.Name(), "FIXTURE")
	is.True(lex.Dawg().Contains("ELEPHANT"))
	mw, err := tilemapping.ToMachineWord("FINIT", lex.TileMapping())
	is.NoErr(err)
	is.True(lex.HasWord(mw))
	is.Equal(lex.LetterDistribution().Score(6), 4)
}

func TestLoadPrefersCompiled(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t)
	dir := cfg.GetString(config.ConfigLexiconPath)
	// the word list and the compiled file disagree, so we can tell which
	// one was read
	is.NoErr(os.WriteFile(filepath.Join(dir, "LEX.txt"), []byte("AA\nAB\n"), 0o644))
	a := dawg.MustBuild([]string{"ZA"}, tilemapping.EnglishAlphabet())
	f, err := os.Create(filepath.Join(dir, "LEX.dawg"))
	is.NoErr(err)
	is.NoErr(a.Save(f))
	is.NoErr(f.Close())

	lex, err := Load(cfg, "LEX", "english")
	is.NoErr(err)
	is.True(lex.Dawg().Contains("ZA"))
	is.True(!lex.Dawg().Contains("AA"))
}

func TestLoadMissing(t *testing.T) {
	is := is.New(t)
	_, err := Load(testConfig(t), "NOPE", "english")
	is.True(err != nil)
}

func TestCache(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t)
	is.NoErr(os.WriteFile(filepath.Join(cfg.GetString(config.ConfigLexiconPath), "LEX.txt"),
		[]byte("AA\nAB\n"), 0o644))
	c := NewCache(cfg)
	l1, err := c.Get("LEX", "english")
	is.NoErr(err)
	l2, err := c.Get("LEX", "english")
	is.NoErr(err)
	is.True(l1 == l2)
}
