package movegen

import (
	"math/bits"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/cross_set"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/tilemapping"
)

// outcome is what the search does with a branch.
type outcome uint8

const (
	// Continue: the branch is a viable prefix and the search goes on.
	Continue outcome = iota
	// Accept: the branch is a complete legal play.
	Accept
	// Prune: the branch cannot lead to a play.
	Prune
)

// A searcher explores the plays through one anchor in one direction. It
// owns its rack copy and result buffer; the board, table and automaton
// are only read.
type searcher struct {
	a       *dawg.Automaton
	b       *board.Board
	table   *cross_set.Table
	anchors anchorSet
	rack    *tilemapping.Rack

	anchor      Anchor
	dir         board.Direction
	maxLeftPart int

	// word and prov hold the letters of the branch, from its first square.
	word  tilemapping.MachineWord
	prov  []move.Provenance
	plays []*move.Placement
}

func newSearcher(g *Generator, b *board.Board, table *cross_set.Table, anchors anchorSet,
	rack *tilemapping.Rack, w workItem) *searcher {

	return &searcher{
		a:           g.dawg,
		b:           b,
		table:       table,
		anchors:     anchors,
		rack:        rack,
		anchor:      w.anchor,
		dir:         w.dir,
		maxLeftPart: g.maxLeftPart,
		word:        make(tilemapping.MachineWord, 0, b.Dim()),
		prov:        make([]move.Provenance, 0, b.Dim()),
	}
}

// square returns the coordinates k squares past the anchor (k < 0 is
// before it).
func (s *searcher) square(k int) (int, int) {
	dr, dc := s.dir.Delta()
	return s.anchor.Row + k*dr, s.anchor.Col + k*dc
}

func (s *searcher) push(ml tilemapping.MachineLetter, p move.Provenance) {
	s.word = append(s.word, ml)
	s.prov = append(s.prov, p)
}

func (s *searcher) pop() {
	s.word = s.word[:len(s.word)-1]
	s.prov = s.prov[:len(s.prov)-1]
}

func (s *searcher) run() {
	pr, pc := s.square(-1)
	if s.b.HasLetter(pr, pc) {
		// The left part is whatever is already on the board before the
		// anchor.
		prefix := s.b.Prefix(s.anchor.Row, s.anchor.Col, s.dir)
		node, ok := s.a.Walk(s.a.Root(), prefix)
		if !ok {
			return
		}
		for _, ml := range prefix {
			s.push(ml, move.PlayedThrough)
		}
		s.extendRight(node, 0)
		return
	}
	s.leftPart(s.a.Root(), s.leftPartLimit())
}

// leftPartLimit counts the empty non-anchor squares before the anchor.
// Plays that reach further left cover an earlier anchor and are found from
// there.
func (s *searcher) leftPartLimit() int {
	limit := 0
	for k := -1; ; k-- {
		r, c := s.square(k)
		if !s.b.OnBoard(r, c) || s.b.HasLetter(r, c) || s.anchors.has(r, c) {
			break
		}
		limit++
	}
	// at least one tile has to go on the anchor
	limit = min(limit, s.rack.NumTiles()-1)
	if s.maxLeftPart > 0 {
		limit = min(limit, s.maxLeftPart)
	}
	return limit
}

// leftPart tries every prefix of up to limit rack tiles that ends just
// before the anchor, then extends each one to the right.
func (s *searcher) leftPart(node dawg.NodeIdx, limit int) {
	if s.leftPartFits() {
		s.extendRight(node, 0)
	}
	if limit == 0 {
		return
	}
	s.eachTile(node, cross_set.TrivialCrossSet, func(ml tilemapping.MachineLetter, child dawg.NodeIdx) {
		s.leftPart(child, limit-1)
	})
}

// leftPartFits checks the left part against the cross sets of the squares
// it ends up on. Those squares have no neighbours, so this only fails on a
// table that does not belong to the board.
func (s *searcher) leftPartFits() bool {
	n := len(s.word)
	for i, ml := range s.word {
		r, c := s.square(i - n)
		if !s.table.Get(r, c, s.dir).Allowed(ml) {
			return false
		}
	}
	return true
}

// extendRight grows the branch onto the square k places past the anchor.
func (s *searcher) extendRight(node dawg.NodeIdx, k int) {
	r, c := s.square(k)
	if !s.b.OnBoard(r, c) {
		if s.stop(node, k) == Accept {
			s.record(k)
		}
		return
	}
	if ml := s.b.Letter(r, c); ml != tilemapping.EmptySquareMarker {
		child, out := s.next(node, ml, cross_set.TrivialCrossSet)
		if out == Prune {
			return
		}
		s.push(ml, move.PlayedThrough)
		s.extendRight(child, k+1)
		s.pop()
		return
	}
	if s.stop(node, k) == Accept {
		s.record(k)
	}
	s.eachTile(node, s.table.Get(r, c, s.dir), func(_ tilemapping.MachineLetter, child dawg.NodeIdx) {
		s.extendRight(child, k+1)
	})
}

// eachTile places every rack tile that can follow node on the next square,
// with f called for each. A blank is tried as every letter the square and
// the automaton allow; the rack is restored after each call.
func (s *searcher) eachTile(node dawg.NodeIdx, cross cross_set.CrossSet,
	f func(ml tilemapping.MachineLetter, child dawg.NodeIdx)) {

	for set := s.a.LetterSet(node); set != 0; set &= set - 1 {
		ml := tilemapping.MachineLetter(bits.TrailingZeros64(set))
		child, out := s.next(node, ml, cross)
		if out == Prune {
			continue
		}
		if s.rack.Has(ml) {
			s.rack.Take(ml)
			s.push(ml, move.Placed)
			f(ml, child)
			s.pop()
			s.rack.Add(ml)
		}
		if s.rack.Has(tilemapping.BlankMachineLetter) {
			s.rack.Take(tilemapping.BlankMachineLetter)
			s.push(ml.Blank(), move.Placed)
			f(ml.Blank(), child)
			s.pop()
			s.rack.Add(tilemapping.BlankMachineLetter)
		}
	}
}

// next follows ml out of node for a square with the given cross set.
func (s *searcher) next(node dawg.NodeIdx, ml tilemapping.MachineLetter,
	cross cross_set.CrossSet) (dawg.NodeIdx, outcome) {

	if !cross.Allowed(ml) {
		return 0, Prune
	}
	child, ok := s.a.Transition(node, ml)
	if !ok {
		return 0, Prune
	}
	return child, Continue
}

// stop decides whether the branch is a play when its word ends just before
// square k.
func (s *searcher) stop(node dawg.NodeIdx, k int) outcome {
	// k > 0 means the anchor is covered, so at least one tile is new.
	if k > 0 && len(s.word) >= 2 && s.a.IsAccepting(node) {
		return Accept
	}
	return Prune
}

func (s *searcher) record(k int) {
	n := len(s.word)
	r, c := s.square(k - n)
	word := make(tilemapping.MachineWord, n)
	copy(word, s.word)
	prov := make([]move.Provenance, n)
	copy(prov, s.prov)
	p := move.NewPlacement(r, c, s.dir, word, prov, s.a.TileMapping())
	p.SetAnchor(s.anchor.Row, s.anchor.Col)
	s.plays = append(s.plays, p)
}
