package dawg

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/tilemapping"
)

const DawgMagicNumber = "wtdw"

// MaxNameLength is the longest lexicon name the file format can hold.
const MaxNameLength = 255

// ErrCorrupt is returned by Load for data that is not a well-formed
// automaton.
var ErrCorrupt = errors.New("corrupt automaton data")

// readChunk is how many array elements Load reads at a time. Arrays grow as
// data actually arrives, so a bogus length in a short file fails on EOF
// instead of allocating up front.
const readChunk = 1 << 16

func readArray[T uint8 | uint32 | uint64](r io.Reader, n uint32) ([]T, error) {
	out := make([]T, 0, min(n, readChunk))
	for uint32(len(out)) < n {
		buf := make([]T, min(n-uint32(len(out)), readChunk))
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		out = append(out, buf...)
	}
	return out, nil
}

// Save writes the automaton in a compact binary form: the magic number,
// the lexicon name, the alphabet, then the node and arc arrays.
func (a *Automaton) Save(w io.Writer) error {
	if len(a.name) > MaxNameLength {
		return fmt.Errorf("lexicon name is %d bytes, at most %d fit", len(a.name), MaxNameLength)
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(DawgMagicNumber); err != nil {
		return err
	}
	letters := a.alphabet.Letters()
	alph := make([]uint32, len(letters))
	for i, r := range letters {
		alph[i] = uint32(r)
	}
	letterSets := make([]uint64, len(a.nodes))
	firstArcs := make([]uint32, len(a.nodes))
	accepts := make([]uint8, len(a.nodes))
	for i, nd := range a.nodes {
		letterSets[i] = nd.letters
		firstArcs[i] = nd.firstArc
		if nd.accepts {
			accepts[i] = 1
		}
	}
	arcs := make([]uint32, len(a.arcs))
	for i, arc := range a.arcs {
		arcs[i] = uint32(arc)
	}
	for _, data := range []any{
		uint8(len(a.name)), []byte(a.name),
		uint8(len(alph)), alph,
		uint32(a.numWords),
		uint32(len(a.nodes)), letterSets, firstArcs, accepts,
		uint32(len(arcs)), arcs,
	} {
		if err := binary.Write(bw, binary.BigEndian, data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads an automaton written by Save.
func Load(r io.Reader) (*Automaton, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(DawgMagicNumber))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, err
	}
	if string(magic) != DawgMagicNumber {
		return nil, fmt.Errorf("%w: bad magic number %q", ErrCorrupt, magic)
	}
	var nameLen, alphLen uint8
	if err := binary.Read(br, binary.BigEndian, &nameLen); err != nil {
		return nil, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.BigEndian, &alphLen); err != nil {
		return nil, err
	}
	alph := make([]uint32, alphLen)
	if err := binary.Read(br, binary.BigEndian, alph); err != nil {
		return nil, err
	}
	runes := make([]rune, alphLen)
	for i, v := range alph {
		runes[i] = rune(v)
	}
	tm, err := tilemapping.NewTileMapping(runes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var numWords, numNodes, numArcs uint32
	if err := binary.Read(br, binary.BigEndian, &numWords); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.BigEndian, &numNodes); err != nil {
		return nil, err
	}
	if numNodes == 0 {
		return nil, fmt.Errorf("%w: no root node", ErrCorrupt)
	}
	letterSets, err := readArray[uint64](br, numNodes)
	if err != nil {
		return nil, err
	}
	firstArcs, err := readArray[uint32](br, numNodes)
	if err != nil {
		return nil, err
	}
	accepts, err := readArray[uint8](br, numNodes)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.BigEndian, &numArcs); err != nil {
		return nil, err
	}
	arcs, err := readArray[uint32](br, numArcs)
	if err != nil {
		return nil, err
	}

	a := &Automaton{
		nodes:    make([]node, numNodes),
		arcs:     make([]NodeIdx, numArcs),
		alphabet: tm,
		numWords: int(numWords),
		name:     string(name),
	}
	for i := range a.nodes {
		a.nodes[i] = node{letters: letterSets[i], firstArc: firstArcs[i], accepts: accepts[i] == 1}
		end := uint64(firstArcs[i]) + uint64(bits.OnesCount64(letterSets[i]))
		if end > uint64(numArcs) {
			return nil, fmt.Errorf("%w: node %d arcs out of range", ErrCorrupt, i)
		}
		if letterSets[i]>>(uint(alphLen)+1) != 0 || letterSets[i]&1 != 0 {
			return nil, fmt.Errorf("%w: node %d has letters outside the alphabet", ErrCorrupt, i)
		}
	}
	for i, arc := range arcs {
		if arc >= numNodes {
			return nil, fmt.Errorf("%w: arc %d points past the node array", ErrCorrupt, i)
		}
		a.arcs[i] = NodeIdx(arc)
	}
	log.Debug().Str("name", a.name).Int("nodes", len(a.nodes)).Msg("loaded-dawg")
	return a, nil
}

// FromWordList builds an automaton from a sorted list with one word per
// line. Blank lines are skipped; no other normalization is done.
func FromWordList(name string, r io.Reader, tm *tilemapping.TileMapping) (*Automaton, error) {
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		// word lists often carry definitions after the word
		if fields := strings.Fields(w); len(fields) > 1 {
			w = fields[0]
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	a, err := Build(words, tm)
	if err != nil {
		return nil, err
	}
	a.name = name
	return a, nil
}

// LoadFile loads a compiled automaton (.dawg) or builds one from a word
// list (any other extension). The lexicon name is the file's base name.
func LoadFile(path string, tm *tilemapping.TileMapping) (*Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	if ext == ".dawg" {
		return Load(f)
	}
	return FromWordList(name, f, tm)
}
