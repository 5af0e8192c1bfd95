package tilemapping

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/config"
)

//go:embed data/english.csv
var englishCSV []byte

// LetterDistribution is the per-letter (quantity, point value) table of a
// language. It is the rules table the scorer consumes.
type LetterDistribution struct {
	tilemapping *TileMapping
	// distribution and scores are indexed by MachineLetter; index 0 is
	// the blank.
	distribution []uint8
	scores       []int
	Name         string
}

// ScanLetterDistribution reads a distribution in CSV form. Each record is
// letter,quantity,value,vowel. The blank ('?') row is optional and may
// appear anywhere; letters keep the order they are listed in.
func ScanLetterDistribution(name string, data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = 4
	letters := []rune{}
	quantities := []uint8{0}
	values := []int{0}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lr := []rune(strings.TrimSpace(record[0]))
		if len(lr) != 1 {
			return nil, fmt.Errorf("letter %q must be a single rune", record[0])
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		p, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		// the vowel flag column is read for format checking only
		if _, err := strconv.Atoi(record[3]); err != nil {
			return nil, err
		}
		if lr[0] == BlankToken {
			// blanks always score 0, whatever the file says.
			quantities[0] = uint8(n)
			continue
		}
		letters = append(letters, lr[0])
		quantities = append(quantities, uint8(n))
		values = append(values, p)
	}
	if len(letters) == 0 {
		return nil, errors.New("letter distribution has no letters")
	}
	tm, err := NewTileMapping(letters)
	if err != nil {
		return nil, err
	}
	ld := &LetterDistribution{
		tilemapping:  tm,
		distribution: quantities,
		scores:       values,
		Name:         name,
	}
	return ld, nil
}

// EnglishLetterDistribution returns the built-in English distribution.
func EnglishLetterDistribution() *LetterDistribution {
	ld, err := ScanLetterDistribution("english", bytes.NewReader(englishCSV))
	if err != nil {
		panic(err)
	}
	return ld
}

// NamedLetterDistribution loads <data-path>/letterdistributions/<name>.csv.
// The English distribution is built in and needs no file.
func NamedLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	name = strings.ToLower(name)
	path := filepath.Join(cfg.GetString(config.ConfigDataPath), "letterdistributions", name+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && name == "english" {
			log.Debug().Str("path", path).Msg("using built-in english distribution")
			return EnglishLetterDistribution(), nil
		}
		return nil, err
	}
	defer f.Close()
	return ScanLetterDistribution(name, f)
}

// Score gives the point value of the given machine letter. Unassigned and
// bound blanks are always worth 0.
func (ld *LetterDistribution) Score(ml MachineLetter) int {
	if ml == BlankMachineLetter || ml.IsBlanked() {
		return 0
	}
	if int(ml) >= len(ld.scores) {
		return 0
	}
	return ld.scores[ml]
}

// WordScore is the sum of the face values of the word's tiles.
func (ld *LetterDistribution) WordScore(mw MachineWord) int {
	score := 0
	for _, c := range mw {
		score += ld.Score(c)
	}
	return score
}

func (ld *LetterDistribution) TileMapping() *TileMapping {
	return ld.tilemapping
}

// Distribution returns the number of tiles of each letter, indexed by
// MachineLetter, blank at 0.
func (ld *LetterDistribution) Distribution() []uint8 {
	return ld.distribution
}
