package tilemapping

// Rack is a machine-friendly representation of a player's tiles: a count
// per machine letter, with the blank at index 0.
type Rack struct {
	LetArr     []int
	numLetters int
	alphabet   *TileMapping
}

// NewRack creates an empty rack for the given alphabet.
func NewRack(alph *TileMapping) *Rack {
	return &Rack{
		alphabet: alph,
		LetArr:   make([]int, alph.NumLetters()+1),
	}
}

// RackFromString creates a rack from a string like "AEINST?".
func RackFromString(rack string, alph *TileMapping) (*Rack, error) {
	r := NewRack(alph)
	mls, err := ToMachineWord(rack, alph)
	if err != nil {
		return nil, err
	}
	r.Set(mls)
	return r, nil
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	return r.TilesOn().UserVisible(r.alphabet)
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	n := &Rack{
		numLetters: r.numLetters,
		alphabet:   r.alphabet,
		LetArr:     make([]int, len(r.LetArr)),
	}
	copy(n.LetArr, r.LetArr)
	return n
}

// Set sets the rack from a list of machine letters. Bound blanks go back
// into the blank slot.
func (r *Rack) Set(mls []MachineLetter) {
	r.Clear()
	for _, ml := range mls {
		r.LetArr[ml.IntrinsicTileIdx()]++
	}
	r.numLetters = len(mls)
}

func (r *Rack) Clear() {
	for i := range r.LetArr {
		r.LetArr[i] = 0
	}
	r.numLetters = 0
}

// Take removes one tile. It must only be called if the tile is on the rack.
func (r *Rack) Take(letter MachineLetter) {
	r.LetArr[letter]--
	r.numLetters--
}

func (r *Rack) Add(letter MachineLetter) {
	r.LetArr[letter]++
	r.numLetters++
}

func (r *Rack) Has(letter MachineLetter) bool {
	return r.LetArr[letter] > 0
}

// TilesOn returns the rack's tiles in alphabetical order, blanks first.
func (r *Rack) TilesOn() MachineWord {
	letters := make(MachineWord, 0, r.numLetters)
	for i, ct := range r.LetArr {
		for j := 0; j < ct; j++ {
			letters = append(letters, MachineLetter(i))
		}
	}
	return letters
}

// NumTiles returns the current number of tiles on this rack.
func (r *Rack) NumTiles() int {
	return r.numLetters
}

func (r *Rack) Empty() bool {
	return r.numLetters == 0
}
