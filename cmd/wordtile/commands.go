package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/domino14/wordtile/cgp"
	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/dawg"
	"github.com/domino14/wordtile/engine"
	"github.com/domino14/wordtile/lexicon"
	"github.com/domino14/wordtile/move"
	"github.com/domino14/wordtile/tilemapping"
)

func newRootCmd(cfg *config.Config, exPath string) *cobra.Command {
	var stopProfile func()
	rootCmd := &cobra.Command{
		Use:   "wordtile",
		Short: "Move generation and scoring for crossword tile games",
		Long: `wordtile finds and scores every legal play for a rack on a board.

Positions are given as CGP strings, for example:

  wordtile moves "15/15/15/15/15/15/15/3ELEPHAN5/15/15/15/15/15/15/15 ?AEST/ 0/0 0 lex NWL23;"`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.BindFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			cfg.AdjustRelativePaths(exPath)
			setupLogging(cfg)
			log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")
			if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return fmt.Errorf("could not start CPU profile: %w", err)
				}
				stopProfile = func() {
					pprof.StopCPUProfile()
					f.Close()
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopProfile != nil {
				stopProfile()
			}
		},
		SilenceUsage: true,
		Version:      GitVersion,
	}
	config.AddFlags(rootCmd.PersistentFlags())

	lexica := lexicon.NewCache(cfg)
	rootCmd.AddCommand(newMovesCmd(cfg, lexica))
	rootCmd.AddCommand(newScoreCmd(cfg, lexica))
	rootCmd.AddCommand(newCheckCmd(cfg, lexica))
	rootCmd.AddCommand(newAnagramCmd(cfg, lexica))
	rootCmd.AddCommand(newPlayCmd(cfg, lexica))
	return rootCmd
}

// loadPosition parses a CGP string and loads the lexicon it names.
func loadPosition(cfg *config.Config, lexica *lexicon.Cache, cgpstr string) (*cgp.ParsedCGP, *engine.Engine, error) {
	parsed, err := cgp.ParseCGP(cfg, cgpstr)
	if err != nil {
		return nil, nil, err
	}
	lex, err := lexica.Get(parsed.LexiconName, parsed.LetterDistribution.Name)
	if err != nil {
		return nil, nil, err
	}
	return parsed, engine.New(lex, cfg), nil
}

func newMovesCmd(cfg *config.Config, lexica *lexicon.Cache) *cobra.Command {
	var top int
	var rackStr string
	cmd := &cobra.Command{
		Use:   "moves <cgp>",
		Short: "List the legal moves for the player on turn, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, e, err := loadPosition(cfg, lexica, args[0])
			if err != nil {
				return err
			}
			tm := e.Lexicon().TileMapping()
			rack := parsed.Racks[0]
			if rackStr != "" {
				if rack, err = tilemapping.RackFromString(rackStr, tm); err != nil {
					return err
				}
			}
			ranked, err := e.RankedMoves(cmd.Context(), parsed.Board, rack)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, parsed.Board.ToDisplayText(tm))
			fmt.Fprintf(out, "Rack: %s  (%d moves)\n", rack.String(), len(ranked))
			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}
			for i, m := range ranked {
				fmt.Fprintf(out, "%3d: %-20s %4d  %-8s %s\n", i+1, m.ShortDescription(), m.Score,
					m.Leave.UserVisible(tm), strings.Join(m.Words, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 15, "number of moves to show (0 for all)")
	cmd.Flags().StringVar(&rackStr, "rack", "", "rack to use instead of the first rack in the position")
	return cmd
}

func newScoreCmd(cfg *config.Config, lexica *lexicon.Cache) *cobra.Command {
	return &cobra.Command{
		Use:   "score <cgp> <move>",
		Short: "Score a move, e.g. \"8D ELEPHANTS\" or \"K7 AT\"",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, e, err := loadPosition(cfg, lexica, args[0])
			if err != nil {
				return err
			}
			p, err := move.ParseOnBoard(args[1], parsed.Board, e.Lexicon().TileMapping())
			if err != nil {
				return err
			}
			score, words := e.Score(parsed.Board, p)
			invalid := []string{}
			for _, w := range words {
				if !e.Lexicon().Dawg().Contains(w) {
					invalid = append(invalid, w)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s scores %d: %s\n", p.ShortDescription(), score, strings.Join(words, " "))
			if len(invalid) > 0 {
				fmt.Fprintf(out, "not in %s: %s\n", e.Lexicon().Name(), strings.Join(invalid, " "))
			}
			return nil
		},
	}
}

func newCheckCmd(cfg *config.Config, lexica *lexicon.Cache) *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>...",
		Short: "Look words up in the default lexicon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexica.Get(cfg.GetString(config.ConfigDefaultLexicon),
				cfg.GetString(config.ConfigDefaultLetterDistribution))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range args {
				w = strings.ToUpper(w)
				verdict := "invalid"
				if lex.Dawg().Contains(w) {
					verdict = "valid"
				}
				fmt.Fprintf(out, "%s is %s in %s\n", w, verdict, lex.Name())
			}
			return nil
		},
	}
}

func newAnagramCmd(cfg *config.Config, lexica *lexicon.Cache) *cobra.Command {
	var sub bool
	cmd := &cobra.Command{
		Use:   "anagram <rack>",
		Short: "List the words in the default lexicon that a rack spells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexica.Get(cfg.GetString(config.ConfigDefaultLexicon),
				cfg.GetString(config.ConfigDefaultLetterDistribution))
			if err != nil {
				return err
			}
			tm := lex.TileMapping()
			rack, err := tilemapping.RackFromString(strings.ToUpper(args[0]), tm)
			if err != nil {
				return err
			}
			words := []string{}
			collect := func(w tilemapping.MachineWord) error {
				words = append(words, w.UserVisible(tm))
				return nil
			}
			da := dawg.NewAnagrammer(lex.Dawg(), rack)
			if sub {
				err = da.Subanagram(collect)
			} else {
				err = da.Anagram(collect)
			}
			if err != nil {
				return err
			}
			words = lo.Uniq(words)
			out := cmd.OutOrStdout()
			for _, w := range words {
				fmt.Fprintln(out, w)
			}
			fmt.Fprintf(out, "%d words\n", len(words))
			return nil
		},
	}
	cmd.Flags().BoolVar(&sub, "sub", false, "also list words that use only some of the tiles")
	return cmd
}

// newPlayCmd commits a move and prints the position that follows it, with
// the next player on turn.
func newPlayCmd(cfg *config.Config, lexica *lexicon.Cache) *cobra.Command {
	return &cobra.Command{
		Use:   "play <cgp> <move>",
		Short: "Play a move and print the resulting position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, e, err := loadPosition(cfg, lexica, args[0])
			if err != nil {
				return err
			}
			tm := e.Lexicon().TileMapping()
			p, err := move.ParseOnBoard(args[1], parsed.Board, tm)
			if err != nil {
				return err
			}
			score, words := e.Score(parsed.Board, p)
			for _, w := range words {
				if !e.Lexicon().Dawg().Contains(w) {
					return fmt.Errorf("%s is not in %s", w, e.Lexicon().Name())
				}
			}
			leave, err := tilemapping.Leave(parsed.Racks[0], p.Tiles())
			if err != nil {
				return err
			}
			if err := e.Play(parsed.Board, p); err != nil {
				return err
			}
			parsed.Racks[0].Set(leave)
			parsed.Scores[0] += score

			// the player who just moved goes to the back
			racks := append(parsed.Racks[1:], parsed.Racks[0])
			scores := append(parsed.Scores[1:], parsed.Scores[0])
			pos, err := cgp.ToCGP(parsed.Board, tm, racks, scores, 0, parsed.LexiconName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s scores %d\n%s\n", p.ShortDescription(), score, pos)
			return nil
		},
	}
}
