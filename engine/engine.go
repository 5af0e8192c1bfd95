// Package engine is the entry point for callers that want moves for a
// position: it ties a lexicon, a move generator and a scorer together.
package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/cross_set"
	"github.com/domino14/wordtile/lexicon"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/movegen"
	"github.com/domino14/wordtile/scoring"
	"github.com/domino14/wordtile/tilemapping"
)

type Engine struct {
	lex    *lexicon.Lexicon
	gen    *movegen.Generator
	scorer *scoring.Scorer
}

// ScoredMove is a placement with its score, the words it forms and the
// tiles it leaves on the rack.
type ScoredMove struct {
	*move.Placement
	Score int
	Words []string
	Leave tilemapping.MachineWord
}

func (m ScoredMove) String() string {
	return fmt.Sprintf("%-20s %4d", m.Placement.String(), m.Score)
}

// New makes an engine for lex. Threads, left-part cap and scoring rules
// are read from cfg.
func New(lex *lexicon.Lexicon, cfg *config.Config) *Engine {
	gen := movegen.NewGenerator(lex.Dawg(),
		movegen.WithThreads(cfg.GetInt(config.ConfigThreads)),
		movegen.WithMaxLeftPart(cfg.GetInt(config.ConfigMaxLeftPart)))
	rules := scoring.Rules{
		BingoBonus: cfg.GetInt(config.ConfigBingoBonus),
		RackSize:   cfg.GetInt(config.ConfigRackSize),
	}
	return &Engine{
		lex:    lex,
		gen:    gen,
		scorer: scoring.NewScorer(lex.LetterDistribution(), rules),
	}
}

func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// LegalMoves returns every legal placement of tiles from rack on b. An
// empty result means there is no legal move.
func (e *Engine) LegalMoves(ctx context.Context, b *board.Board,
	rack *tilemapping.Rack) ([]*move.Placement, error) {

	table := cross_set.Generate(b, e.lex.Dawg())
	return e.gen.Generate(ctx, b, table, rack)
}

func (e *Engine) Score(b *board.Board, p *move.Placement) (int, []string) {
	return e.scorer.Score(b, p)
}

// RankedMoves scores every legal move, best first. Ties are broken by
// notation so the order is stable.
func (e *Engine) RankedMoves(ctx context.Context, b *board.Board,
	rack *tilemapping.Rack) ([]ScoredMove, error) {

	plays, err := e.LegalMoves(ctx, b, rack)
	if err != nil {
		return nil, err
	}
	scored := make([]ScoredMove, len(plays))
	for i, p := range plays {
		score, words := e.scorer.Score(b, p)
		leave, err := tilemapping.Leave(rack, p.Tiles())
		if err != nil {
			// the generator only uses tiles from the rack
			panic(fmt.Errorf("%w: %s: %v", tilemapping.ErrPrecondition, p, err))
		}
		scored[i] = ScoredMove{Placement: p, Score: score, Words: words, Leave: leave}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Serialize() < scored[j].Serialize()
	})
	zerolog.Ctx(ctx).Debug().Int("moves", len(scored)).Msg("ranked-moves")
	return scored, nil
}

// Play puts the new tiles of p on b. Either every tile goes down or, on
// the first square that refuses one, the tiles placed so far are taken
// back and the board is as it was.
func (e *Engine) Play(b *board.Board, p *move.Placement) error {
	if p.Provenance() == nil {
		return fmt.Errorf("%w: %s has no provenance", tilemapping.ErrPrecondition, p)
	}
	placed := make([][2]int, 0, len(p.Word()))
	for i, ml := range p.Word() {
		if !p.IsNew(i) {
			continue
		}
		r, c := p.Square(i)
		if err := b.Place(r, c, ml); err != nil {
			for _, sq := range placed {
				// these squares were just filled, so removal cannot fail
				_ = b.Remove(sq[0], sq[1])
			}
			return fmt.Errorf("playing %s: %w", p, err)
		}
		placed = append(placed, [2]int{r, c})
	}
	return nil
}

// Unplay takes back exactly the tiles Play put down for p.
func (e *Engine) Unplay(b *board.Board, p *move.Placement) error {
	if p.Provenance() == nil {
		return fmt.Errorf("%w: %s has no provenance", tilemapping.ErrPrecondition, p)
	}
	for i, ml := range p.Word() {
		if !p.IsNew(i) {
			continue
		}
		r, c := p.Square(i)
		if b.Letter(r, c) != ml {
			return fmt.Errorf("%w: %s is not on the board at %s", board.ErrNotOccupied, p,
				move.ToBoardGameCoords(r, c, false))
		}
	}
	for i := range p.Word() {
		if !p.IsNew(i) {
			continue
		}
		r, c := p.Square(i)
		if err := b.Remove(r, c); err != nil {
			return err
		}
	}
	return nil
}
