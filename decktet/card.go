// Package decktet defines the cards of the Decktet: their ranks, suits and
// identities, the fixed card catalogs, and a drawable deck.
package decktet

import (
	"fmt"
	"strings"
)

// Rank is the ordinal value of a card. Chains ascend by rank.
type Rank uint8

const (
	Excuse Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Pawns
	Courts
	Crowns
)

const NumRanks = 13

var rankDisplay = [NumRanks]string{"Ex", "A", "2", "3", "4", "5", "6", "7", "8", "9", "Pa", "Co", "Cr"}

func (r Rank) String() string {
	if int(r) >= NumRanks {
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
	return rankDisplay[r]
}

// IsExtremal is true for aces and crowns. Extremal cards may never be placed
// orthogonally next to each other.
func (r Rank) IsExtremal() bool {
	return r == Ace || r == Crowns
}

// Suit is one of the six Decktet suits.
type Suit uint8

const (
	Moons Suit = iota
	Suns
	Waves
	Leaves
	Wyrms
	Knots
)

const NumSuits = 6

var suitLetters = [NumSuits]byte{'M', 'S', 'W', 'L', 'Y', 'K'}
var suitNames = [NumSuits]string{"moons", "suns", "waves", "leaves", "wyrms", "knots"}

// AllSuits lists the suits in their canonical order.
var AllSuits = [NumSuits]Suit{Moons, Suns, Waves, Leaves, Wyrms, Knots}

// Letter is the single-letter abbreviation used in card IDs and move
// notation.
func (s Suit) Letter() byte {
	s.mustBeValid()
	return suitLetters[s]
}

func (s Suit) String() string {
	s.mustBeValid()
	return suitNames[s]
}

func (s Suit) Valid() bool {
	return s < NumSuits
}

func (s Suit) mustBeValid() {
	if !s.Valid() {
		panic(fmt.Sprintf("suit %d out of range", uint8(s)))
	}
}

// SuitFromLetter is the inverse of Letter. It is case-insensitive.
func SuitFromLetter(c byte) (Suit, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for i, l := range suitLetters {
		if l == c {
			return Suit(i), true
		}
	}
	return 0, false
}

// SuitSet is a bitset over the six suits.
type SuitSet uint8

func NewSuitSet(suits ...Suit) SuitSet {
	var ss SuitSet
	for _, s := range suits {
		ss = ss.Add(s)
	}
	return ss
}

func (ss SuitSet) Add(s Suit) SuitSet {
	s.mustBeValid()
	return ss | 1<<s
}

func (ss SuitSet) Contains(s Suit) bool {
	return ss&(1<<s) != 0
}

// Intersects is true if the two sets share at least one suit.
func (ss SuitSet) Intersects(o SuitSet) bool {
	return ss&o != 0
}

func (ss SuitSet) Len() int {
	n := 0
	for x := ss; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// Identity is an optional tag some cards carry.
type Identity uint8

const (
	Location Identity = 1 << iota
	Personality
	Event
)

// IdentitySet is a bitset of identities.
type IdentitySet uint8

func (ids IdentitySet) Has(id Identity) bool {
	return uint8(ids)&uint8(id) != 0
}

// A Card is an immutable Decktet card. Cards are handed around as pointers
// into the catalogs, but two cards are the same card when their rank and
// suits match (see Equal).
type Card struct {
	rank       Rank
	suits      [3]Suit
	numSuits   uint8
	suitSet    SuitSet
	name       string
	identities IdentitySet
}

// NewCard builds a card. It panics if suits has more than three entries,
// repeats a suit, or contains an invalid suit.
func NewCard(rank Rank, name string, suits []Suit, ids ...Identity) *Card {
	if len(suits) > 3 {
		panic(fmt.Sprintf("card %s has %d suits", name, len(suits)))
	}
	if int(rank) >= NumRanks {
		panic(fmt.Sprintf("card %s has rank %d out of range", name, rank))
	}
	c := &Card{rank: rank, name: name, numSuits: uint8(len(suits))}
	for i, s := range suits {
		if c.suitSet.Contains(s) {
			panic(fmt.Sprintf("card %s repeats suit %v", name, s))
		}
		c.suits[i] = s
		c.suitSet = c.suitSet.Add(s)
	}
	for _, id := range ids {
		c.identities |= IdentitySet(id)
	}
	return c
}

func (c *Card) Rank() Rank {
	return c.rank
}

// Suits returns the card's suits in display order.
func (c *Card) Suits() []Suit {
	return c.suits[:c.numSuits]
}

func (c *Card) SuitSet() SuitSet {
	return c.suitSet
}

func (c *Card) HasSuit(s Suit) bool {
	return c.suitSet.Contains(s)
}

// SharesSuit is true if c and o have at least one suit in common.
func (c *Card) SharesSuit(o *Card) bool {
	return c.suitSet.Intersects(o.suitSet)
}

func (c *Card) Name() string {
	return c.name
}

func (c *Card) Identities() IdentitySet {
	return c.identities
}

// IsExtended is true for the cards that only appear in the extended deck.
func (c *Card) IsExtended() bool {
	return c.rank == Excuse || c.rank == Pawns || c.rank == Courts
}

// Equal compares cards structurally.
func (c *Card) Equal(o *Card) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.rank == o.rank && c.suitSet == o.suitSet
}

func (c *Card) suitLetters() string {
	var sb strings.Builder
	for _, s := range c.Suits() {
		sb.WriteByte(s.Letter())
	}
	return sb.String()
}

// ID is a compact identifier such as "AM", "2SY" or "CrW".
func (c *Card) ID() string {
	return c.rank.String() + c.suitLetters()
}

// String is a fixed-width rendering, suitable for grids.
func (c *Card) String() string {
	return fmt.Sprintf("%-2s %-3s", c.rank.String(), c.suitLetters())
}
