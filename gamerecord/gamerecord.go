// Package gamerecord saves games as YAML: the deck, the shuffle seed and
// the moves in notation. Replaying a record rebuilds every position.
package gamerecord

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
)

var ErrScoreMismatch = errors.New("replayed score does not match record")

type Record struct {
	Deck  decktet.DeckType `yaml:"deck"`
	Seed  string           `yaml:"seed"`
	Moves []string         `yaml:"moves"`
	// Score is the final (or projected) score when the record was made.
	Score *int   `yaml:"score,omitempty"`
	Note  string `yaml:"note,omitempty"`
}

// NewRecord records g, which must have been started from deck shuffled
// with seed.
func NewRecord(deck decktet.DeckType, seed [32]byte, g *game.GameState) *Record {
	r := &Record{
		Deck: deck,
		Seed: base64.RawURLEncoding.EncodeToString(seed[:]),
	}
	for _, m := range g.Moves() {
		r.Moves = append(r.Moves, m.ShortDescription())
	}
	score := g.CalculateScore().Total
	r.Score = &score
	return r
}

// DecodeSeed returns the shuffle seed the record was dealt from.
func (r *Record) DecodeSeed() ([32]byte, error) {
	var seed [32]byte
	b, err := base64.RawURLEncoding.DecodeString(r.Seed)
	if err != nil {
		return seed, fmt.Errorf("bad seed %q: %w", r.Seed, err)
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("bad seed %q: %d bytes", r.Seed, len(b))
	}
	copy(seed[:], b)
	return seed, nil
}

// Replay plays the record from the start and returns the final state.
// The score, when present, must match.
func (r *Record) Replay() (*game.GameState, error) {
	seed, err := r.DecodeSeed()
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(r.Deck, decktet.NewRNG(seed))
	if err != nil {
		return nil, err
	}
	for i, n := range r.Moves {
		m, err := move.FromString(n)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if !m.IsChurn() && m.MarketIndex() >= g.Board().MarketLen() {
			return nil, fmt.Errorf("move %d (%v): %w: market has %d cards",
				i+1, n, game.ErrInvalidMove, g.Board().MarketLen())
		}
		g, err = g.Play(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	if r.Score != nil {
		if got := g.CalculateScore().Total; got != *r.Score {
			return nil, fmt.Errorf("%w: got %d, recorded %d", ErrScoreMismatch, got, *r.Score)
		}
	}
	return g, nil
}

func (r *Record) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Record) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func Read(rd io.Reader) (*Record, error) {
	r := &Record{}
	if err := yaml.NewDecoder(rd).Decode(r); err != nil {
		return nil, fmt.Errorf("decoding game record: %w", err)
	}
	if r.Deck == "" {
		r.Deck = decktet.StandardDeck
	}
	return r, nil
}

func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
