package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug          = "debug"
	ConfigConfigFile     = "config"
	ConfigSeed           = "seed"
	ConfigDeck           = "deck"
	ConfigNumGames       = "num-games"
	ConfigThreads        = "threads"
	ConfigPlayer         = "player"
	ConfigTurnLog        = "turn-log"
	ConfigSeedFile       = "seed-file"
	ConfigSingle         = "single"
	ConfigResultsDB      = "results-db"
	ConfigTrainingPrefix = "training-prefix"
	ConfigMaxCandidates  = "max-candidates"
	ConfigUpperLimit     = "upper-limit"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
)

// Config holds every setting. Values come, in increasing priority, from
// defaults, an optional YAML file, AUCTERADEN_* environment variables and
// command-line flags.
type Config struct {
	viper.Viper
	args []string
}

func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigSeed, int64(42))
	v.SetDefault(ConfigDeck, "standard")
	v.SetDefault(ConfigNumGames, 1000)
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigPlayer, "onemove")
	v.SetDefault(ConfigTurnLog, "/tmp/aucteraden-turns.txt")
	v.SetDefault(ConfigSeedFile, "")
	v.SetDefault(ConfigSingle, false)
	v.SetDefault(ConfigResultsDB, "")
	v.SetDefault(ConfigTrainingPrefix, "")
	v.SetDefault(ConfigMaxCandidates, 25)
	v.SetDefault(ConfigUpperLimit, 4)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("aucteraden", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "path to a YAML config file")
	fs.Int64(ConfigSeed, 42, "base seed for deck shuffles")
	fs.String(ConfigDeck, "standard", "deck type: standard or extended")
	fs.Int(ConfigNumGames, 1000, "number of games to autoplay")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of autoplay workers")
	fs.String(ConfigPlayer, "onemove", "autoplay policy: random or onemove")
	fs.String(ConfigTurnLog, "/tmp/aucteraden-turns.txt", "where to write the autoplay turn log")
	fs.String(ConfigSeedFile, "", "file of base64 seeds, one per game")
	fs.Bool(ConfigSingle, false, "deal a different deck per game (seed+i) instead of one deck for all")
	fs.String(ConfigResultsDB, "", "SQLite database for game results")
	fs.String(ConfigTrainingPrefix, "", "write features/labels .npy files with this prefix")
	fs.Int(ConfigMaxCandidates, 25, "onemove: stop collecting after this many improving candidates")
	fs.Int(ConfigUpperLimit, 4, "onemove: pick among the last this-many candidates")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	return fs
}

// Load parses args and fills in the config. Unknown flags are an error.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("aucteraden")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config %v: %w", cf, err)
			}
		}
	}
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
