package tilemapping

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRackFromString(t *testing.T) {
	is := is.New(t)
	alph := EnglishAlphabet()
	rack, err := RackFromString("AENPPSW?", alph)
	is.NoErr(err)

	expected := make([]int, 27)
	expected[0] = 1
	expected[1] = 1
	expected[5] = 1
	expected[14] = 1
	expected[16] = 2
	expected[19] = 1
	expected[23] = 1

	assert.Equal(t, expected, rack.LetArr)
	is.Equal(rack.NumTiles(), 8)
	is.Equal(rack.String(), "?AENPPSW")
}

func TestRackTakeAdd(t *testing.T) {
	is := is.New(t)
	alph := EnglishAlphabet()
	rack, err := RackFromString("AENPPSW", alph)
	is.NoErr(err)

	rack.Take(16)
	is.Equal(rack.LetArr[16], 1)
	rack.Take(16)
	is.True(!rack.Has(16))
	is.Equal(rack.NumTiles(), 5)
	rack.Add(16)
	is.Equal(rack.NumTiles(), 6)
	is.Equal(rack.String(), "AENPSW")
}

func TestRackCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	alph := EnglishAlphabet()
	rack, err := RackFromString("AEINST?", alph)
	is.NoErr(err)
	cp := rack.Copy()
	cp.Take(1)
	cp.Take(0)
	is.Equal(rack.String(), "?AEINST")
	is.Equal(cp.String(), "EINST")
	is.True(!cp.Empty())
	cp.Clear()
	is.True(cp.Empty())
	is.Equal(rack.NumTiles(), 7)
}

func TestRackBadLetter(t *testing.T) {
	is := is.New(t)
	_, err := RackFromString("AB1", EnglishAlphabet())
	is.True(err != nil)
}
