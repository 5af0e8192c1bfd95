// Package cgp reads and writes compact position strings: the board rows
// run-length encoded and separated by slashes, then the racks, the scores,
// the number of consecutive scoreless turns, and optional opcodes.
//
//	15/15/15/15/15/15/15/3ELEPHAN5/15/15/15/15/15/15/15 ?AEST/ 0/0 0 lex NWL23;
package cgp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/board"
	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/tilemapping"
)

var ErrBadCGP = fmt.Errorf("%w: bad cgp", tilemapping.ErrPrecondition)

type ParsedCGP struct {
	Board              *board.Board
	Racks              []*tilemapping.Rack
	Scores             []int
	ScorelessTurns     int
	LexiconName        string
	LetterDistribution *tilemapping.LetterDistribution
	Opcodes            map[string]string
}

// ParseCGP builds the position in cgpstr. The letter distribution and
// board layout come from the ld and bdn opcodes, or from cfg when those are
// absent. The lexicon is only named; loading it is up to the caller.
func ParseCGP(cfg *config.Config, cgpstr string) (*ParsedCGP, error) {
	cgpstr = strings.TrimPrefix(strings.TrimSpace(cgpstr), "cgp ")
	fields := strings.SplitN(cgpstr, " ", 5)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: must have at least 4 space-separated fields", ErrBadCGP)
	}
	rows := strings.Split(fields[0], "/")
	playerRacks := strings.Split(fields[1], "/")
	playerScores := strings.Split(fields[2], "/")
	if len(playerRacks) != len(playerScores) {
		return nil, fmt.Errorf("%w: player racks and scores do not match", ErrBadCGP)
	}
	scores := make([]int, len(playerScores))
	for i, s := range playerScores {
		score, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: score %q", ErrBadCGP, s)
		}
		scores[i] = score
	}
	nzero, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: scoreless turns %q", ErrBadCGP, fields[3])
	}

	var ops []string
	if len(fields) == 5 {
		ops = strings.Split(fields[4], ";")
	}

	boardLayoutName := cfg.GetString(config.ConfigBoardLayout)
	letterDistributionName := cfg.GetString(config.ConfigDefaultLetterDistribution)
	lexiconName := cfg.GetString(config.ConfigDefaultLexicon)
	opcodes := map[string]string{}

	for _, op := range ops {
		op := strings.TrimSpace(op)
		if len(op) == 0 {
			continue
		}
		opWithParams := strings.SplitN(op, " ", 2)
		if len(opWithParams) != 2 {
			return nil, fmt.Errorf("%w: wrong number of arguments for %s operation",
				ErrBadCGP, opWithParams[0])
		}
		switch opWithParams[0] {
		case "bdn":
			boardLayoutName = opWithParams[1]
		case "ld":
			letterDistributionName = opWithParams[1]
		case "lex":
			lexiconName = opWithParams[1]
		}
		opcodes[opWithParams[0]] = opWithParams[1]
	}

	ld, err := tilemapping.NamedLetterDistribution(cfg, letterDistributionName)
	if err != nil {
		return nil, err
	}
	layout, err := board.NamedLayout(boardLayoutName)
	if err != nil {
		return nil, err
	}
	tm := ld.TileMapping()
	if len(rows) < 1 || len(rows) > board.MaxDim {
		return nil, fmt.Errorf("%w: %d rows", ErrBadCGP, len(rows))
	}
	b := board.NewBoard(len(rows), layout)
	for r, row := range rows {
		letters, err := rowToLetters(row, tm)
		if err != nil {
			return nil, err
		}
		if len(letters) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d",
				ErrBadCGP, r+1, len(letters), len(rows))
		}
		for c, ml := range letters {
			if ml == tilemapping.EmptySquareMarker {
				continue
			}
			if err := b.Place(r, c, ml); err != nil {
				return nil, err
			}
		}
	}

	racks := make([]*tilemapping.Rack, len(playerRacks))
	for i, rs := range playerRacks {
		racks[i], err = tilemapping.RackFromString(rs, tm)
		if err != nil {
			return nil, fmt.Errorf("%w: rack %q: %v", ErrBadCGP, rs, err)
		}
	}

	log.Debug().Str("lexicon", lexiconName).Int("dim", b.Dim()).
		Int("tiles", b.TilesPlayed()).Msg("parsed-cgp")
	return &ParsedCGP{
		Board:              b,
		Racks:              racks,
		Scores:             scores,
		ScorelessTurns:     nzero,
		LexiconName:        lexiconName,
		LetterDistribution: ld,
		Opcodes:            opcodes,
	}, nil
}

func rowToLetters(row string, tm *tilemapping.TileMapping) ([]tilemapping.MachineLetter, error) {
	mls := []tilemapping.MachineLetter{}
	lastN := ""
	flush := func() error {
		if lastN == "" {
			return nil
		}
		n, err := strconv.Atoi(lastN)
		if err != nil {
			return err
		}
		for idx := 0; idx < n; idx++ {
			mls = append(mls, tilemapping.EmptySquareMarker)
		}
		lastN = ""
		return nil
	}
	for _, rn := range row {
		if rn >= '0' && rn <= '9' {
			lastN += string(rn)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		if rn == tilemapping.BlankToken {
			return nil, errors.New("an unassigned blank cannot be on the board")
		}
		ml, err := tm.Val(rn)
		if err != nil {
			return nil, err
		}
		mls = append(mls, ml)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return mls, nil
}

// BoardToCGP run-length encodes the rows of b.
func BoardToCGP(b *board.Board, tm *tilemapping.TileMapping) string {
	var sb strings.Builder
	for r := 0; r < b.Dim(); r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empties := 0
		for c := 0; c < b.Dim(); c++ {
			ml := b.Letter(r, c)
			if ml == tilemapping.EmptySquareMarker {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteRune(tm.Letter(ml))
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
	}
	return sb.String()
}

// ToCGP writes a full position string. There must be at least one player,
// and one score per rack.
func ToCGP(b *board.Board, tm *tilemapping.TileMapping, racks []*tilemapping.Rack, scores []int,
	scorelessTurns int, lexiconName string) (string, error) {

	if len(racks) == 0 {
		return "", fmt.Errorf("%w: no racks", ErrBadCGP)
	}
	if len(racks) != len(scores) {
		return "", fmt.Errorf("%w: %d racks but %d scores", ErrBadCGP, len(racks), len(scores))
	}
	rs := make([]string, len(racks))
	for i, r := range racks {
		rs[i] = r.String()
	}
	ss := make([]string, len(scores))
	for i, s := range scores {
		ss[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("%s %s %s %d lex %s;", BoardToCGP(b, tm), strings.Join(rs, "/"),
		strings.Join(ss, "/"), scorelessTurns, lexiconName), nil
}
