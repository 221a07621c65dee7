package decktet

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// A Shuffler permutes n elements through swap. *frand.RNG and *rand.Rand
// both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRNG returns a deterministic ChaCha12 generator for the given seed.
func NewRNG(seed [32]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

// SeedFromInt expands an integer into a 32-byte seed, so that small seeds
// typed on a command line map to reproducible games.
func SeedFromInt(n int64) [32]byte {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], uint64(n))
	return seed
}

// Deck is an ordered sequence of cards drawn from the front. The backing
// slice is never written after construction, so copying a Deck value is
// cheap and copies never interfere with each other.
type Deck struct {
	cards []*Card
	pos   int
}

// NewDeck copies cards and shuffles the copy once with shuffler. A nil
// shuffler leaves the cards in the given order.
func NewDeck(cards []*Card, shuffler Shuffler) Deck {
	cs := make([]*Card, len(cards))
	copy(cs, cards)
	if shuffler != nil {
		shuffler.Shuffle(len(cs), func(i, j int) {
			cs[i], cs[j] = cs[j], cs[i]
		})
	}
	return Deck{cards: cs}
}

// Draw removes and returns the front card. ok is false when the deck is
// empty; that is not an error.
func (d *Deck) Draw() (c *Card, ok bool) {
	if d.pos >= len(d.cards) {
		return nil, false
	}
	c = d.cards[d.pos]
	d.pos++
	return c, true
}

func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.pos
}

func (d *Deck) Empty() bool {
	return d.CardsRemaining() == 0
}

// Peek returns the undrawn cards, front first. Callers must not modify it.
func (d *Deck) Peek() []*Card {
	return d.cards[d.pos:]
}
