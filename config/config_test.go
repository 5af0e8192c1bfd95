package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigRackSize), 7)
	is.Equal(cfg.GetInt(ConfigBingoBonus), 50)
	is.Equal(cfg.GetString(ConfigDefaultLetterDistribution), "english")
	is.True(!cfg.GetBool(ConfigDebug))
	is.True(cfg.GetInt(ConfigThreads) > 0)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	err := cfg.Load([]string{"--threads=3", "--debug", "--max-left-part", "4"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigThreads), 3)
	is.Equal(cfg.GetInt(ConfigMaxLeftPart), 4)
	is.True(cfg.GetBool(ConfigDebug))
	// untouched flags fall through to the defaults
	is.Equal(cfg.GetInt(ConfigRackSize), 7)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	err := cfg.Load([]string{"--no-such-flag"})
	is.True(err != nil)
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("WORDTILE_BINGO_BONUS", "35")
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigBingoBonus), 35)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Set(ConfigLexiconPath, "/abs/lexica")
	cfg.AdjustRelativePaths("/opt/wordtile")
	is.Equal(cfg.GetString(ConfigDataPath), "/opt/wordtile/data")
	is.Equal(cfg.GetString(ConfigLexiconPath), "/abs/lexica")
}
