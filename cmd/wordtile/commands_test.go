package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/wordtile/config"
	"github.com/domino14/wordtile/testhelpers"
)

const elephantPosition = "15/15/15/15/15/15/15/4ELEPHAN4/15/15/15/15/15/15/15 ?AEST/ 0/0 0 lex FIXTURE;"

func run(t *testing.T, args ...string) string {
	dir := t.TempDir()
	words := strings.Join(testhelpers.FixtureWords(), "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FIXTURE.txt"), []byte(words), 0o644))

	root := newRootCmd(config.DefaultConfig(), t.TempDir())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"--lexicon-path", dir, "--default-lexicon", "FIXTURE", "--threads", "2"},
		args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestMovesCmd(t *testing.T) {
	out := run(t, "moves", elephantPosition, "--top", "5")
	assert.Contains(t, out, "Rack: ?AEST")
	assert.Contains(t, out, "  1: ")
	assert.Contains(t, out, "  5: ")
	assert.NotContains(t, out, "  6: ")
}

func TestMovesCmdRackOverride(t *testing.T) {
	out := run(t, "moves", elephantPosition, "--rack", "Q", "--top", "0")
	assert.Contains(t, out, "Rack: Q  (0 moves)")
}

func TestScoreCmd(t *testing.T) {
	out := run(t, "score", elephantPosition, "L7 AT")
	assert.Contains(t, out, "L7 AT scores 17: AT ELEPHANT")
	assert.NotContains(t, out, "not in")

	out = run(t, "score", elephantPosition, "L7 ZT")
	assert.Contains(t, out, "not in FIXTURE: ZT")
}

func TestCheckCmd(t *testing.T) {
	out := run(t, "check", "elephant", "zzz")
	assert.Contains(t, out, "ELEPHANT is valid in FIXTURE")
	assert.Contains(t, out, "ZZZ is invalid in FIXTURE")
}

func TestAnagramCmd(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(run(t, "anagram", "tae")), "\n")
	assert.Equal(t, []string{"ATE", "EAT", "ETA", "TAE", "TEA", "5 words"}, lines)

	lines = strings.Split(strings.TrimSpace(run(t, "anagram", "tae", "--sub")), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, lines, "AT")
	assert.Contains(t, lines, "ET")
	assert.Contains(t, lines, "TEA")
	assert.Equal(t, "9 words", lines[9])
}

func TestPlayCmd(t *testing.T) {
	out := run(t, "play", elephantPosition, "L7 AT")
	assert.Contains(t, out, "L7 AT scores 17")
	assert.Contains(t, out,
		"15/15/15/15/15/15/11A3/4ELEPHANT3/15/15/15/15/15/15/15 /?ES 0/17 0 lex FIXTURE;")
}
