// Package scoring computes the score of a placement from the board's bonus
// squares and the letter values of a distribution.
package scoring

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/tilemapping"
)

const (
	DefaultBingoBonus = 50
	DefaultRackSize   = 7
)

// Rules holds the scoring parameters that are not part of the board. The
// bingo bonus is paid when a play uses RackSize tiles.
type Rules struct {
	BingoBonus int
	RackSize   int
}

func DefaultRules() Rules {
	return Rules{BingoBonus: DefaultBingoBonus, RackSize: DefaultRackSize}
}

type Scorer struct {
	ld    *tilemapping.LetterDistribution
	rules Rules
}

func NewScorer(ld *tilemapping.LetterDistribution, rules Rules) *Scorer {
	return &Scorer{ld: ld, rules: rules}
}

func (s *Scorer) LetterDistribution() *tilemapping.LetterDistribution {
	return s.ld
}

// Score returns the score of p on b and the words it forms, main word
// first. b must not have p on it yet: the squares p places tiles on have to
// be empty, and p must know which squares those are (see move.ParseOnBoard).
// Letter and word bonuses only count on those squares.
func (s *Scorer) Score(b *board.Board, p *move.Placement) (int, []string) {
	if p.Provenance() == nil {
		panic(fmt.Errorf("%w: %s has no provenance", tilemapping.ErrPrecondition, p))
	}
	tm := p.Alphabet()
	dir := p.Direction()
	cross := dir.Perpendicular()

	mainScore := 0
	wordMult := 1
	crossTotal := 0
	words := []tilemapping.MachineWord{p.Word()}

	for i, ml := range p.Word() {
		r, c := p.Square(i)
		if !p.IsNew(i) {
			mainScore += s.ld.Score(b.Letter(r, c))
			continue
		}
		if b.HasLetter(r, c) {
			panic(fmt.Errorf("%w: %s places a tile on occupied square %s",
				tilemapping.ErrPrecondition, p, move.ToBoardGameCoords(r, c, false)))
		}
		bonus := b.Bonus(r, c)
		tileScore := s.ld.Score(ml) * bonus.LetterMultiplier()
		mainScore += tileScore
		wordMult *= bonus.WordMultiplier()

		prefix := b.Prefix(r, c, cross)
		suffix := b.Suffix(r, c, cross)
		if len(prefix)+len(suffix) == 0 {
			continue
		}
		crossTotal += (s.ld.WordScore(prefix) + tileScore + s.ld.WordScore(suffix)) *
			bonus.WordMultiplier()
		cw := make(tilemapping.MachineWord, 0, len(prefix)+len(suffix)+1)
		cw = append(append(append(cw, prefix...), ml), suffix...)
		words = append(words, cw)
	}

	score := mainScore*wordMult + crossTotal
	if p.TilesPlayed() == s.rules.RackSize {
		score += s.rules.BingoBonus
	}

	formed := lo.Uniq(lo.Map(words, func(w tilemapping.MachineWord, _ int) string {
		return strings.ToUpper(w.UserVisible(tm))
	}))
	return score, formed
}
