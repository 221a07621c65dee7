package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/muesli/termenv"

	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/turnplayer"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, map[string]string{"file": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, map[string]string{}},
			nil},
		{"autoplay 100 -player random -threads 2 ",
			&shellcmd{"autoplay",
				[]string{"100"},
				map[string]string{"player": "random", "threads": "2"}},
			nil,
		},
		{"autoplay 100 -file",
			nil, errWrongOptionSyntax},
		{"add buy 0 - a1",
			&shellcmd{"add", []string{"buy", "0", "-", "a1"}, map[string]string{}},
			nil},
		{"new -12 extended",
			&shellcmd{"new", []string{"-12", "extended"}, map[string]string{}},
			nil},
		{`save "my game.yaml" -note "nice chains"`,
			&shellcmd{"save", []string{"my game.yaml"}, map[string]string{"note": "nice chains"}},
			nil},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController() (*ShellController, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	sc := newController(config.DefaultConfig(), buf, termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii)))
	return sc, buf
}

func run(sc *ShellController, line string) (*Response, error) {
	return sc.standardModeSwitch(line, make(chan os.Signal, 1))
}

func TestNeedsGame(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	for _, line := range []string{"show", "gen", "add 1", "churn", "bot", "undo", "score", "history", "save x"} {
		_, err := run(sc, line)
		is.Equal(err, errNoGame)
	}
	_, err := run(sc, "frobnicate")
	is.True(err != nil)
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	r, err := run(sc, "new 99")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Deck: 33 "))
	is.Equal(sc.game.Turn(), 0)
	is.Equal(sc.game.Board().MarketLen(), 3)
	first := sc.game.Board().Hash()

	// same seed, same deal
	_, err = run(sc, "new 99")
	is.NoErr(err)
	is.Equal(sc.game.Board().Hash(), first)

	_, err = run(sc, "new 3 extended")
	is.NoErr(err)
	is.Equal(sc.game.Board().CardsRemaining(), 42)

	_, err = run(sc, "new 3 tarot")
	is.True(err != nil)
	_, err = run(sc, "new abc")
	is.True(err != nil)

	// without a seed a fresh one is drawn
	_, err = run(sc, "new")
	is.NoErr(err)
	is.True(sc.options.Seed != 3)
}

func TestGenAndAdd(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	_, err := run(sc, "new 99")
	is.NoErr(err)

	r, err := run(sc, "gen 5")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, moveTableHeader()))
	is.True(len(sc.curPlays) > 5)
	is.True(strings.Contains(r.message, "more)"))

	b := sc.game.Board()
	for i := 1; i < len(sc.curPlays); i++ {
		prev := b.Apply(sc.curPlays[i-1]).CalculateScore().Total
		cur := b.Apply(sc.curPlays[i]).CalculateScore().Total
		is.True(prev >= cur)
	}

	best := sc.curPlays[0]
	_, err = run(sc, "add 1")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
	is.True(sc.game.LastMove().Equal(best))
	is.Equal(sc.game.Board().CardsPlaced(), 1)
	is.True(sc.curPlays == nil)

	// the listing is gone after a move
	_, err = run(sc, "add 1")
	is.True(err != nil)
}

func TestAddNotationAndUndo(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	_, err := run(sc, "new 99")
	is.NoErr(err)

	_, err = run(sc, "add churn")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
	is.Equal(sc.game.Board().Score(), -3)

	// the oldest card is free and the grid is empty
	_, err = run(sc, "buy 2 - c2")
	is.NoErr(err)
	is.Equal(sc.game.Board().CardsPlaced(), 1)
	is.True(!sc.game.Board().IsEmptyCell(2, 1))

	// not adjacent to anything
	_, err = run(sc, "add 0 - a4")
	is.True(err != nil)
	_, err = run(sc, "add buy 7 - a1")
	is.True(err != nil)
	_, err = run(sc, "add buy x")
	is.True(err != nil)

	r, err := run(sc, "history")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "churn"))
	is.True(strings.Contains(r.message, "buy 2 - c2"))

	_, err = run(sc, "undo")
	is.NoErr(err)
	_, err = run(sc, "undo")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 0)
	_, err = run(sc, "undo")
	is.True(errors.Is(err, turnplayer.ErrNothingToUndo))

	r, err = run(sc, "history")
	is.NoErr(err)
	is.Equal(r.message, "No moves yet.")
}

func TestBotAndScore(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	_, err := run(sc, "new 5")
	is.NoErr(err)
	r, err := run(sc, "bot 3")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "onemove played: "))
	is.Equal(sc.game.Turn(), 3)

	r, err = run(sc, "score")
	is.NoErr(err)
	for _, want := range []string{"moons", "knots", "Churns:", "Penalties:", "Total:"} {
		is.True(strings.Contains(r.message, want))
	}

	_, err = run(sc, "set player random")
	is.NoErr(err)
	r, err = run(sc, "bot")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "random played: "))
	is.Equal(sc.game.Turn(), 4)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	_, err := run(sc, "set deck extended")
	is.NoErr(err)
	_, err = run(sc, "set seed 8")
	is.NoErr(err)
	r, err := run(sc, "set")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "deck: extended  seed: 8"))

	_, err = run(sc, "set player ouija")
	is.True(err != nil)
	_, err = run(sc, "set upper-limit 0")
	is.True(err != nil)
	_, err = run(sc, "set colour blue")
	is.True(err != nil)
	_, err = run(sc, "set max-candidates 10")
	is.NoErr(err)
	is.Equal(sc.config.GetInt(config.ConfigMaxCandidates), 10)
}

func TestSaveLoad(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	path := filepath.Join(t.TempDir(), "game.yaml")

	_, err := run(sc, "new 5")
	is.NoErr(err)
	_, err = run(sc, "bot 6")
	is.NoErr(err)
	want := sc.game.Board().Hash()
	_, err = run(sc, "save "+path+" -note test")
	is.NoErr(err)

	// a fresh shell with no game
	sc2, _ := newTestController()
	_, err = run(sc2, "load "+path)
	is.NoErr(err)
	is.Equal(sc2.game.Board().Hash(), want)
	is.Equal(sc2.game.Turn(), 6)

	// undo works through the replayed history
	_, err = run(sc2, "undo")
	is.NoErr(err)
	is.Equal(sc2.game.Turn(), 5)

	_, err = run(sc2, "load "+filepath.Join(t.TempDir(), "missing.yaml"))
	is.True(err != nil)
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	dir := t.TempDir()
	path := filepath.Join(dir, "greedy.lua")
	script := `
local json = require("json")
local http = require("http")
assert(http ~= nil)
assert(aucteraden_state() == nil)
assert(string.sub(aucteraden_show(), 1, 6) == "ERROR:")

aucteraden_new(args[1])
local n = 0
while not aucteraden_state().over do
	local plays = aucteraden_plays()
	if #plays > 0 then
		aucteraden_add(plays[1])
	else
		aucteraden_churn()
	end
	n = n + 1
end
local st = json.decode(json.encode(aucteraden_state()))
assert(st.over == true)
assert(st.turn == n)
aucteraden_save(args[2])
`
	is.NoErr(os.WriteFile(path, []byte(script), 0o644))
	saved := filepath.Join(dir, "greedy.yaml")
	_, err := run(sc, "script "+path+" 7 "+saved)
	is.NoErr(err)
	is.True(sc.game.IsOver())
	is.Equal(sc.options.Seed, int64(7))
	_, err = os.Stat(saved)
	is.NoErr(err)

	bad := filepath.Join(dir, "bad.lua")
	is.NoErr(os.WriteFile(bad, []byte(`error("boom")`), 0o644))
	_, err = run(sc, "script "+bad)
	is.True(err != nil)
	_, err = run(sc, "script")
	is.True(err != nil)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestController()
	logfile := filepath.Join(t.TempDir(), "turns.txt")
	r, err := run(sc, "autoplay 4 -threads 2 -player random -file "+logfile)
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "autoplaying 4 games"))
	<-sc.autoplayDone

	is.True(sc.lastRun != nil)
	is.Equal(len(sc.lastRun.Completed()), 4)
	is.True(strings.Contains(buf.String(), "Games: 4"))
	is.Equal(sc.config.GetString(config.ConfigPlayer), "random")

	_, err = run(sc, "autoplay stop")
	is.True(err != nil)
	_, err = run(sc, "autoplay 2 -colour red")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	r, err := run(sc, "help")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "Commands:"))
	r, err = run(sc, "help add")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "notation"))
	_, err = run(sc, "help nothing")
	is.True(err != nil)
}

func TestRender(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	text := "2  SY   Cr W  "
	is.Equal(sc.render(text), text)

	buf := &bytes.Buffer{}
	sc.term = termenv.NewOutput(buf, termenv.WithProfile(termenv.ANSI256))
	colored := sc.render(text)
	is.True(colored != text)
	is.True(strings.Contains(colored, "\x1b["))
	// no cards, nothing to color
	is.Equal(sc.render("Deck: 33  M: 3"), "Deck: 33  M: 3")
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	c := NewShellCompleter(sc)

	complete := func(line string) []string {
		matches, _ := c.Do([]rune(line), len(line))
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = string(m)
		}
		return out
	}
	is.Equal(complete("chu"), []string{"rn"})
	is.Equal(complete("new 5 ex"), []string{"tended"})
	is.Equal(complete("autoplay -pl"), []string{"ayer"})
	is.Equal(complete("autoplay -player o"), []string{"nemove"})
	is.Equal(complete("set deck s"), []string{"tandard"})
	is.Equal(complete("help scr"), []string{"ipt"})
}
