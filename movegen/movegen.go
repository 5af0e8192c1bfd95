// Package movegen finds every legal tile placement for a rack, using the
// anchor-based search of Appel and Jacobson over a word automaton.
package movegen

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/cross_set"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/tilemapping"
)

// Generator generates moves. It keeps no per-call state and is safe for
// concurrent use.
type Generator struct {
	dawg        *dawg.Automaton
	threads     int
	maxLeftPart int
}

type Option func(*Generator)

// WithThreads limits the number of search goroutines.
func WithThreads(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.threads = n
		}
	}
}

// WithMaxLeftPart caps the number of rack tiles placed before an anchor.
// 0 means no cap.
func WithMaxLeftPart(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.maxLeftPart = n
		}
	}
}

func NewGenerator(a *dawg.Automaton, opts ...Option) *Generator {
	g := &Generator{dawg: a, threads: runtime.NumCPU()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Dawg() *dawg.Automaton {
	return g.dawg
}

type workItem struct {
	anchor Anchor
	dir    board.Direction
}

// Generate returns every distinct legal placement of tiles from rack on b.
// table must have been generated from b as it is now. Neither b nor rack
// is modified. An empty rack, or a position with no legal play, gives an
// empty slice.
func (g *Generator) Generate(ctx context.Context, b *board.Board, table *cross_set.Table,
	rack *tilemapping.Rack) ([]*move.Placement, error) {

	table.CheckFresh(b)
	if len(rack.LetArr) != g.dawg.TileMapping().NumLetters()+1 {
		panic(fmt.Errorf("%w: rack has %d letter slots, lexicon alphabet has %d letters",
			tilemapping.ErrPrecondition, len(rack.LetArr)-1, g.dawg.TileMapping().NumLetters()))
	}
	if rack.Empty() {
		return []*move.Placement{}, nil
	}

	anchors := FindAnchors(b)
	aset := makeAnchorSet(b.Dim(), anchors)
	work := make([]workItem, 0, len(anchors)*2)
	for _, dir := range board.Directions {
		for _, a := range anchors {
			work = append(work, workItem{a, dir})
		}
	}

	logger := zerolog.Ctx(ctx)
	results := make([][]*move.Placement, len(work))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.threads)
	for i, w := range work {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			s := newSearcher(g, b, table, aset, rack.Copy(), w)
			s.run()
			results[i] = s.plays
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := map[move.Key]*move.Placement{}
	for _, plays := range results {
		for _, p := range plays {
			if _, ok := seen[p.Key()]; !ok {
				seen[p.Key()] = p
			}
		}
	}
	keys := lo.Keys(seen)
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	plays := lo.Map(keys, func(k move.Key, _ int) *move.Placement {
		return seen[k]
	})
	logger.Debug().Int("anchors", len(anchors)).Int("work-items", len(work)).
		Int("plays", len(plays)).Str("rack", rack.String()).Msg("generated-moves")
	return plays, nil
}

func keyLess(a, b move.Key) bool {
	if a.Dir != b.Dir {
		return a.Dir < b.Dir
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.Word < b.Word
}
