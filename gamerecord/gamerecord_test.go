package gamerecord

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/movegen"
)

func playSome(t *testing.T, seed [32]byte, turns int) *game.GameState {
	g, err := game.NewGame(decktet.StandardDeck, decktet.NewRNG(seed))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < turns && !g.IsOver(); i++ {
		m := move.NewChurnMove()
		if plays := movegen.GenAll(g.Board()); len(plays) > 0 {
			m = plays[len(plays)-1]
		}
		g, err = g.Play(m)
		if err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestSaveLoadReplay(t *testing.T) {
	is := is.New(t)
	seed := decktet.SeedFromInt(31)
	g := playSome(t, seed, 6)
	rec := NewRecord(decktet.StandardDeck, seed, g)
	is.Equal(len(rec.Moves), 6)

	fn := filepath.Join(t.TempDir(), "game.yaml")
	is.NoErr(rec.Save(fn))
	loaded, err := Load(fn)
	is.NoErr(err)
	is.Equal(loaded.Moves, rec.Moves)
	is.Equal(*loaded.Score, *rec.Score)

	replayed, err := loaded.Replay()
	is.NoErr(err)
	is.Equal(replayed.Board().Hash(), g.Board().Hash())
}

func TestReadHandWritten(t *testing.T) {
	is := is.New(t)
	doc := `
seed: AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA
moves:
  - buy 2 - b2
  - churn
`
	rec, err := Read(strings.NewReader(doc))
	is.NoErr(err)
	is.Equal(rec.Deck, decktet.StandardDeck)
	g, err := rec.Replay()
	is.NoErr(err)
	is.Equal(g.Turn(), 2)
	is.Equal(g.Board().Score(), -3)
}

func TestReplayErrors(t *testing.T) {
	is := is.New(t)
	seed := decktet.SeedFromInt(1)
	rec := NewRecord(decktet.StandardDeck, seed, playSome(t, seed, 3))

	bad := *rec
	bad.Moves = append([]string{}, rec.Moves...)
	bad.Moves[1] = "sell 1"
	_, err := bad.Replay()
	is.True(errors.Is(err, move.ErrBadNotation))

	wrong := *rec
	score := *rec.Score + 1
	wrong.Score = &score
	_, err = wrong.Replay()
	is.True(errors.Is(err, ErrScoreMismatch))

	idx := *rec
	idx.Moves = []string{"buy 2 - a1", "buy 2 - d4"}
	idx.Score = nil
	_, err = idx.Replay()
	is.True(errors.Is(err, game.ErrInvalidMove))

	seedless := *rec
	seedless.Seed = "nope"
	_, err = seedless.Replay()
	is.True(err != nil)
}

func TestWriteIsYAML(t *testing.T) {
	is := is.New(t)
	seed := decktet.SeedFromInt(2)
	rec := NewRecord(decktet.StandardDeck, seed, playSome(t, seed, 1))
	var buf bytes.Buffer
	is.NoErr(rec.Write(&buf))
	is.True(strings.Contains(buf.String(), "deck: standard"))
	is.True(strings.Contains(buf.String(), "moves:"))
}
