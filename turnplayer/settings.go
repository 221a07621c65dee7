package turnplayer

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/decktet"
)

type GameOptions struct {
	DeckType decktet.DeckType
	Seed     int64
	seedSet  bool
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.DeckType == "" {
		opts.DeckType = decktet.DeckType(cfg.GetString(config.ConfigDeck))
		log.Info().Msgf("using default deck %v", opts.DeckType)
	}
	if !opts.seedSet {
		opts.Seed = cfg.GetInt64(config.ConfigSeed)
		opts.seedSet = true
		log.Info().Msgf("using default seed %v", opts.Seed)
	}
}

func (opts *GameOptions) SetDeck(name string) error {
	dt, err := ParseDeckType(name)
	if err != nil {
		return err
	}
	opts.DeckType = dt
	return nil
}

func (opts *GameOptions) SetSeed(s string) error {
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be an integer: %w", err)
	}
	opts.Seed = seed
	opts.seedSet = true
	return nil
}

// Shuffler returns the deck shuffler for the current seed.
func (opts *GameOptions) Shuffler() decktet.Shuffler {
	return decktet.NewRNG(decktet.SeedFromInt(opts.Seed))
}

func (opts *GameOptions) ToDisplayString() string {
	return fmt.Sprintf("deck: %v  seed: %d", opts.DeckType, opts.Seed)
}
