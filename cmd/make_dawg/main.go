package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/tilemapping"
)

func main() {
	filename := flag.String("filename", "", "filename of the sorted word list")
	output := flag.String("output", "", "where to write the automaton (default: the word list with a .dawg extension)")
	ldName := flag.String("letterdist", "english", "letter distribution whose alphabet the words use")
	dataPath := flag.String("data-path", "./data", "directory holding letter distributions")
	flag.Parse()

	if *filename == "" {
		log.Fatal().Msg("need a -filename")
	}
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDataPath, *dataPath)
	ld, err := tilemapping.NamedLetterDistribution(cfg, *ldName)
	if err != nil {
		log.Fatal().Err(err).Msg("loading letter distribution")
	}

	f, err := os.Open(*filename)
	if err != nil {
		log.Fatal().Err(err).Msg("opening word list")
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(*filename), filepath.Ext(*filename))
	a, err := dawg.FromWordList(name, f, ld.TileMapping())
	if err != nil {
		log.Fatal().Err(err).Msg("building automaton")
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(*filename, filepath.Ext(*filename)) + ".dawg"
	}
	w, err := os.Create(out)
	if err != nil {
		log.Fatal().Err(err).Msg("creating output")
	}
	if err := a.Save(w); err != nil {
		log.Fatal().Err(err).Msg("writing automaton")
	}
	if err := w.Close(); err != nil {
		log.Fatal().Err(err).Msg("closing output")
	}
	log.Info().Str("output", out).Int("words", a.NumWords()).Int("nodes", a.NumNodes()).
		Int("arcs", a.NumArcs()).Msg("wrote-dawg")
}
