// Package lexicon bundles a word automaton with the letter distribution of
// its language. A Lexicon is built once and passed to whatever needs it;
// nothing here is global.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/tilemapping"
)

// ErrMismatchedMapping means the automaton and the letter distribution
// number their letters differently.
var ErrMismatchedMapping = fmt.Errorf("%w: automaton and letter distribution alphabets differ",
	tilemapping.ErrPrecondition)

type Lexicon struct {
	name string
	dawg *dawg.Automaton
	dist *tilemapping.LetterDistribution
}

func New(name string, a *dawg.Automaton, ld *tilemapping.LetterDistribution) (*Lexicon, error) {
	al, ll := a.TileMapping().Letters(), ld.TileMapping().Letters()
	if !slices.Equal(al, ll) {
		return nil, fmt.Errorf("%w: %q vs %q", ErrMismatchedMapping, string(al), string(ll))
	}
	return &Lexicon{name: name, dawg: a, dist: ld}, nil
}

func (l *Lexicon) Name() string {
	return l.name
}

func (l *Lexicon) Dawg() *dawg.Automaton {
	return l.dawg
}

func (l *Lexicon) LetterDistribution() *tilemapping.LetterDistribution {
	return l.dist
}

func (l *Lexicon) TileMapping() *tilemapping.TileMapping {
	return l.dawg.TileMapping()
}

func (l *Lexicon) HasWord(word tilemapping.MachineWord) bool {
	return l.dawg.ContainsWord(word)
}

// Load finds the lexicon called name under the lexicon path: a compiled
// <name>.dawg if there is one, otherwise a <name>.txt word list that is
// compiled on the spot.
func Load(cfg *config.Config, name, letterDistribution string) (*Lexicon, error) {
	ld, err := tilemapping.NamedLetterDistribution(cfg, letterDistribution)
	if err != nil {
		return nil, err
	}
	dir := cfg.GetString(config.ConfigLexiconPath)
	var path string
	for _, ext := range []string{".dawg", ".txt"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if path == "" {
		return nil, fmt.Errorf("lexicon %s not found in %s", name, dir)
	}
	a, err := dawg.LoadFile(path, ld.TileMapping())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", a.NumWords()).Msg("loaded-lexicon")
	return New(name, a, ld)
}
