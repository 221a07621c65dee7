package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString(ConfigDeck), "standard")
	is.Equal(c.GetInt64(ConfigSeed), int64(42))
	is.Equal(c.GetInt(ConfigMaxCandidates), 25)
	is.Equal(c.GetInt(ConfigUpperLimit), 4)
	is.True(!c.GetBool(ConfigDebug))
}

func TestFlagsOverride(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--seed", "7", "--deck", "extended", "--debug"}))
	is.Equal(c.GetInt64(ConfigSeed), int64(7))
	is.Equal(c.GetString(ConfigDeck), "extended")
	is.True(c.GetBool(ConfigDebug))
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("AUCTERADEN_NUM_GAMES", "12")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt(ConfigNumGames), 12)
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	fn := filepath.Join(t.TempDir(), "conf.yaml")
	is.NoErr(os.WriteFile(fn, []byte("player: random\nthreads: 3\n"), 0644))
	c := &Config{}
	is.NoErr(c.Load([]string{"--config", fn, "--threads", "5"}))
	is.Equal(c.GetString(ConfigPlayer), "random")
	// flags beat the file
	is.Equal(c.GetInt(ConfigThreads), 5)
}

func TestUnknownFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--board-size", "5"}) != nil)
}

func TestPositionalArgs(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--seed", "3", "autoplay", "10"}))
	is.Equal(c.Args(), []string{"autoplay", "10"})
	is.Equal(c.GetInt64(ConfigSeed), int64(3))
}
