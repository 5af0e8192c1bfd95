// Package testhelpers holds fixtures shared by the package tests.
package testhelpers

import (
	_ "embed"
	"strings"

	"github.com/domino14/wordtile/tilemapping"
)

//go:embed words.txt
var fixtureWords string

// FixtureWords returns a small sorted English word list: every two-letter
// word plus a handful of longer words used across the tests.
func FixtureWords() []string {
	return strings.Fields(fixtureWords)
}

func EnglishAlphabet() *tilemapping.TileMapping {
	return tilemapping.EnglishAlphabet()
}

// Rack makes a rack from a string like "AEINST?" and panics on bad input.
func Rack(tiles string, tm *tilemapping.TileMapping) *tilemapping.Rack {
	r, err := tilemapping.RackFromString(tiles, tm)
	if err != nil {
		panic(err)
	}
	return r
}
