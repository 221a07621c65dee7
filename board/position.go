package board

import (
	"fmt"

	"github.com/domino14/aucteraden/decktet"
)

// Position describes a board piece by piece, for setting up synthetic
// positions (tests, puzzles, decoders).
type Position struct {
	Grid map[Coord]*decktet.Card
	// Market is newest first.
	Market []*decktet.Card
	Chips  Chips
	// Deck is drawn front first and is used in the given order.
	Deck  []*decktet.Card
	Score int
}

// FromPosition builds a board from p. It panics on a market longer than
// three cards or a grid coordinate out of range.
func FromPosition(p Position) *Board {
	if len(p.Market) > MarketSize {
		panic(fmt.Sprintf("market of %d cards", len(p.Market)))
	}
	b := &Board{
		free:  allCells,
		chips: p.Chips,
		deck:  decktet.NewDeck(p.Deck, nil),
		score: p.Score,
	}
	for co, c := range p.Grid {
		if c == nil {
			continue
		}
		b.placeCard(c, co.Col, co.Row)
	}
	b.setMarket(p.Market)
	return b
}

// FullBank is a chip bank with every suit at its starting count.
func FullBank() Chips {
	var c Chips
	for i := range c {
		c[i] = InitialChips
	}
	return c
}
