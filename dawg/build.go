package dawg

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/tilemapping"
)

var (
	// ErrUnsortedInput is returned when the build input is not strictly
	// increasing in alphabet order. Duplicates count as unsorted.
	ErrUnsortedInput = fmt.Errorf("%w: word list is not strictly sorted", tilemapping.ErrPrecondition)
	// ErrBadWord is returned for empty words and for words with blanks or
	// letters outside the alphabet.
	ErrBadWord = fmt.Errorf("%w: word cannot be encoded", tilemapping.ErrPrecondition)
)

type buildNode struct {
	accepts  bool
	letters  []tilemapping.MachineLetter
	children []*buildNode
	// id is assigned when the node enters the register.
	id int
}

func (n *buildNode) lastChild() *buildNode {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// equivalent assumes all children of both nodes are already registered,
// so child identity is pointer identity.
func (n *buildNode) equivalent(o *buildNode) bool {
	if n.accepts != o.accepts || len(n.letters) != len(o.letters) {
		return false
	}
	for i := range n.letters {
		if n.letters[i] != o.letters[i] || n.children[i] != o.children[i] {
			return false
		}
	}
	return true
}

// builder implements incremental construction of a minimal automaton from
// sorted input: after each word, the part of the previous word's path that
// can no longer change is minimized against a register of unique states.
type builder struct {
	root     *buildNode
	register map[uint64][]*buildNode
	nextID   int
	sigBuf   []byte
}

func newBuilder() *builder {
	return &builder{
		root:     &buildNode{id: -1},
		register: make(map[uint64][]*buildNode),
	}
}

// signature hashes the right language of n: its accept flag and its
// (letter, child) arcs.
func (b *builder) signature(n *buildNode) uint64 {
	buf := b.sigBuf[:0]
	if n.accepts {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	for i, ml := range n.letters {
		buf = append(buf, byte(ml))
		buf = binary.BigEndian.AppendUint32(buf, uint32(n.children[i].id))
	}
	b.sigBuf = buf
	return xxhash.Sum64(buf)
}

func (b *builder) replaceOrRegister(n *buildNode) {
	child := n.lastChild()
	if child == nil {
		return
	}
	if len(child.children) > 0 {
		b.replaceOrRegister(child)
	}
	sig := b.signature(child)
	for _, q := range b.register[sig] {
		if q.equivalent(child) {
			n.children[len(n.children)-1] = q
			return
		}
	}
	child.id = b.nextID
	b.nextID++
	b.register[sig] = append(b.register[sig], child)
}

func (b *builder) add(word tilemapping.MachineWord, prefixLen int) {
	n := b.root
	for range word[:prefixLen] {
		n = n.lastChild()
	}
	if len(n.children) > 0 {
		b.replaceOrRegister(n)
	}
	for _, ml := range word[prefixLen:] {
		child := &buildNode{id: -1}
		n.letters = append(n.letters, ml)
		n.children = append(n.children, child)
		n = child
	}
	n.accepts = true
}

func commonPrefixLen(a, b tilemapping.MachineWord) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// wordLess compares in machine-letter order, which is the order arcs are
// stored in.
func wordLess(a, b tilemapping.MachineWord) bool {
	i := commonPrefixLen(a, b)
	if i == len(a) || i == len(b) {
		return len(a) < len(b)
	}
	return a[i] < b[i]
}

func encodeWord(word string, tm *tilemapping.TileMapping) (tilemapping.MachineWord, error) {
	mw, err := tilemapping.ToMachineWord(word, tm)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadWord, word, err)
	}
	if len(mw) == 0 {
		return nil, fmt.Errorf("%w: empty word", ErrBadWord)
	}
	for _, ml := range mw {
		if ml == tilemapping.BlankMachineLetter || ml.IsBlanked() {
			return nil, fmt.Errorf("%w: %q has blanks", ErrBadWord, word)
		}
	}
	return mw, nil
}

// Build creates a minimal automaton from words, which must be uppercase,
// normalized, and strictly increasing in the tile mapping's letter order.
func Build(words []string, tm *tilemapping.TileMapping) (*Automaton, error) {
	b := newBuilder()
	var prev tilemapping.MachineWord
	for i, w := range words {
		mw, err := encodeWord(w, tm)
		if err != nil {
			return nil, err
		}
		if i > 0 && !wordLess(prev, mw) {
			return nil, fmt.Errorf("%w: %q follows %q", ErrUnsortedInput, w, words[i-1])
		}
		b.add(mw, commonPrefixLen(prev, mw))
		prev = mw
	}
	b.replaceOrRegister(b.root)
	a := b.flatten(tm)
	a.numWords = len(words)
	log.Debug().Int("words", len(words)).Int("nodes", a.NumNodes()).
		Int("arcs", a.NumArcs()).Msg("built-dawg")
	return a, nil
}

// MustBuild is like Build but panics on bad input. Use it for fixed word
// lists compiled into the program.
func MustBuild(words []string, tm *tilemapping.TileMapping) *Automaton {
	a, err := Build(words, tm)
	if err != nil {
		panic(err)
	}
	return a
}

// flatten lays the registered graph out in breadth-first order with the
// root at index 0.
func (b *builder) flatten(tm *tilemapping.TileMapping) *Automaton {
	a := &Automaton{alphabet: tm}
	index := map[*buildNode]NodeIdx{b.root: 0}
	queue := []*buildNode{b.root}
	a.nodes = append(a.nodes, node{})
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		idx := index[n]
		nd := node{accepts: n.accepts, firstArc: uint32(len(a.arcs))}
		for i, ml := range n.letters {
			nd.letters |= uint64(1) << ml
			child := n.children[i]
			ci, seen := index[child]
			if !seen {
				ci = NodeIdx(len(a.nodes))
				index[child] = ci
				a.nodes = append(a.nodes, node{})
				queue = append(queue, child)
			}
			a.arcs = append(a.arcs, ci)
		}
		a.nodes[idx] = nd
	}
	return a
}
