package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                     = "debug"
	ConfigDataPath                  = "data-path"
	ConfigLexiconPath               = "lexicon-path"
	ConfigDefaultLexicon            = "default-lexicon"
	ConfigDefaultLetterDistribution = "default-letter-distribution"
	ConfigBoardLayout               = "board-layout"
	ConfigThreads                   = "threads"
	ConfigMaxLeftPart               = "max-left-part"
	ConfigBingoBonus                = "bingo-bonus"
	ConfigRackSize                  = "rack-size"
	ConfigCPUProfile                = "cpu-profile"
)

// Config is a thin wrapper around viper. Values come from, in increasing
// priority: defaults, WORDTILE_* environment variables, command-line flags.
type Config struct {
	*viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigLexiconPath, "./data/lexica")
	c.SetDefault(ConfigDefaultLexicon, "NWL23")
	c.SetDefault(ConfigDefaultLetterDistribution, "english")
	c.SetDefault(ConfigBoardLayout, "CrosswordGame")
	c.SetDefault(ConfigThreads, runtime.NumCPU())
	c.SetDefault(ConfigMaxLeftPart, 0)
	c.SetDefault(ConfigBingoBonus, 50)
	c.SetDefault(ConfigRackSize, 7)
	c.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config with only defaults and environment
// variables applied. Tests use this.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.setDefaults()
	c.SetEnvPrefix("wordtile")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c
}

// Load parses the given command-line arguments on top of the defaults.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = DefaultConfig().Viper
	}
	fs := pflag.NewFlagSet("wordtile", pflag.ContinueOnError)
	AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.BindPFlags(fs)
}

// AddFlags defines a flag for every setting on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDataPath, "./data", "directory holding letter distributions and board layouts")
	fs.String(ConfigLexiconPath, "./data/lexica", "directory holding word lists and compiled automata")
	fs.String(ConfigDefaultLexicon, "NWL23", "the default lexicon to use")
	fs.String(ConfigDefaultLetterDistribution, "english", "the default letter distribution to use")
	fs.String(ConfigBoardLayout, "CrosswordGame", "the board layout to use")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of move generation workers")
	fs.Int(ConfigMaxLeftPart, 0, "maximum left-part length during generation (0 = unbounded)")
	fs.Int(ConfigBingoBonus, 50, "bonus for playing a full rack in one move")
	fs.Int(ConfigRackSize, 7, "number of tiles on a full rack")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
}

// BindFlags binds an externally owned flag set, e.g. the persistent flags of
// a cobra command.
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	return c.BindPFlags(fs)
}

// SanitizedSettings returns all settings, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// AdjustRelativePaths makes the data paths absolute, relative to basepath,
// if they were given as relative paths.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigDataPath, ConfigLexiconPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}
