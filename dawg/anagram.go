package dawg

import (
	"math/bits"

	"github.com/domino14/wordtile/tilemapping"
)

// Anagrammer finds words that can be spelled from a rack. The zero value
// is not usable; call NewAnagrammer. Not threadsafe.
type Anagrammer struct {
	a      *Automaton
	ans    tilemapping.MachineWord
	freq   []int
	blanks int
	total  int
}

func NewAnagrammer(a *Automaton, rack *tilemapping.Rack) *Anagrammer {
	da := &Anagrammer{a: a, freq: make([]int, len(rack.LetArr))}
	copy(da.freq, rack.LetArr)
	da.blanks = da.freq[tilemapping.BlankMachineLetter]
	da.freq[tilemapping.BlankMachineLetter] = 0
	da.total = rack.NumTiles()
	return da
}

// iterate calls f for every word reachable from n using the remaining
// tiles whose length is at least minLen. Letters spelled with a blank are
// bound blanks in the word passed to f. f must not keep the slice.
func (da *Anagrammer) iterate(n NodeIdx, minLen int, f func(tilemapping.MachineWord) error) error {
	if minLen <= 0 && len(da.ans) > 0 && da.a.IsAccepting(n) {
		if err := f(da.ans); err != nil {
			return err
		}
	}
	nd := da.a.nodes[n]
	i := nd.firstArc
	for set := nd.letters; set != 0; set &= set - 1 {
		ml := tilemapping.MachineLetter(bits.TrailingZeros64(set))
		next := da.a.arcs[i]
		i++
		if int(ml) < len(da.freq) && da.freq[ml] > 0 {
			da.freq[ml]--
			da.ans = append(da.ans, ml)
			err := da.iterate(next, minLen-1, f)
			da.ans = da.ans[:len(da.ans)-1]
			da.freq[ml]++
			if err != nil {
				return err
			}
		}
		if da.blanks > 0 {
			da.blanks--
			da.ans = append(da.ans, ml.Blank())
			err := da.iterate(next, minLen-1, f)
			da.ans = da.ans[:len(da.ans)-1]
			da.blanks++
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Anagram visits words that use every tile on the rack.
func (da *Anagrammer) Anagram(f func(tilemapping.MachineWord) error) error {
	return da.iterate(da.a.Root(), da.total, f)
}

// Subanagram visits words that use some of the tiles on the rack. A word
// that can be spelled with or without a blank is visited once per way.
func (da *Anagrammer) Subanagram(f func(tilemapping.MachineWord) error) error {
	return da.iterate(da.a.Root(), 1, f)
}
