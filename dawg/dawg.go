// Package dawg implements a minimal deterministic acyclic word automaton
// (a DAWG) over the machine letters of a tile mapping. The automaton is
// built once per lexicon and is read-only afterwards, so it is safe to
// share between goroutines.
package dawg

import (
	"math/bits"

	"github.com/domino14/wordtile/tilemapping"
)

// NodeIdx is an index into the automaton's node arena.
type NodeIdx uint32

type node struct {
	// letters has bit ml set when there is an arc on ml.
	letters uint64
	// firstArc is the index of this node's first arc. Arcs are stored
	// contiguously in letter order.
	firstArc uint32
	accepts  bool
}

// Automaton is a minimal DAWG. Node 0 is always the root.
type Automaton struct {
	nodes    []node
	arcs     []NodeIdx
	alphabet *tilemapping.TileMapping
	numWords int
	name     string
}

// Root returns the start state.
func (a *Automaton) Root() NodeIdx {
	return 0
}

// Transition follows the arc labelled ml out of n. Bound blanks are
// followed as their letter.
func (a *Automaton) Transition(n NodeIdx, ml tilemapping.MachineLetter) (NodeIdx, bool) {
	ml = ml.Unblank()
	if ml == 0 || ml >= 64 {
		return 0, false
	}
	nd := &a.nodes[n]
	bit := uint64(1) << ml
	if nd.letters&bit == 0 {
		return 0, false
	}
	off := bits.OnesCount64(nd.letters & (bit - 1))
	return a.arcs[nd.firstArc+uint32(off)], true
}

// IsAccepting returns true if a word ends at n.
func (a *Automaton) IsAccepting(n NodeIdx) bool {
	return a.nodes[n].accepts
}

// LetterSet returns the letters that have an arc out of n, as a bitmask
// indexed by machine letter.
func (a *Automaton) LetterSet(n NodeIdx) uint64 {
	return a.nodes[n].letters
}

// Walk follows word from n. It returns false as soon as a letter has no arc.
func (a *Automaton) Walk(n NodeIdx, word tilemapping.MachineWord) (NodeIdx, bool) {
	for _, ml := range word {
		next, ok := a.Transition(n, ml)
		if !ok {
			return 0, false
		}
		n = next
	}
	return n, true
}

// ContainsWord returns true if word is in the lexicon.
func (a *Automaton) ContainsWord(word tilemapping.MachineWord) bool {
	if len(word) == 0 {
		return false
	}
	n, ok := a.Walk(a.Root(), word)
	return ok && a.IsAccepting(n)
}

// Contains returns true if the user-visible word is in the lexicon.
// Lowercase letters are treated as bound blanks and match their letter.
func (a *Automaton) Contains(word string) bool {
	mw, err := tilemapping.ToMachineWord(word, a.alphabet)
	if err != nil {
		return false
	}
	for _, ml := range mw {
		if ml == tilemapping.BlankMachineLetter {
			return false
		}
	}
	return a.ContainsWord(mw)
}

// Words lists every word in the lexicon, in alphabet order.
func (a *Automaton) Words() []string {
	words := make([]string, 0, a.numWords)
	prefix := make(tilemapping.MachineWord, 0, 16)
	var visit func(n NodeIdx)
	visit = func(n NodeIdx) {
		if a.IsAccepting(n) {
			words = append(words, prefix.UserVisible(a.alphabet))
		}
		nd := a.nodes[n]
		i := nd.firstArc
		for set := nd.letters; set != 0; set &= set - 1 {
			ml := tilemapping.MachineLetter(bits.TrailingZeros64(set))
			prefix = append(prefix, ml)
			visit(a.arcs[i])
			prefix = prefix[:len(prefix)-1]
			i++
		}
	}
	visit(a.Root())
	return words
}

func (a *Automaton) TileMapping() *tilemapping.TileMapping {
	return a.alphabet
}

func (a *Automaton) NumNodes() int {
	return len(a.nodes)
}

func (a *Automaton) NumArcs() int {
	return len(a.arcs)
}

func (a *Automaton) NumWords() int {
	return a.numWords
}

// Name is the lexicon name the automaton was built or loaded with.
func (a *Automaton) Name() string {
	return a.name
}
