// Package movegen enumerates the legal buy-and-place moves of a position.
package movegen

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
)

// PlayRecorderFunc is called for every valid candidate in generation order.
// Returning false stops generation.
type PlayRecorderFunc func(b *board.Board, m *move.Move) bool

// MoveGenerator enumerates candidate moves.
type MoveGenerator interface {
	GenAll(b *board.Board) []*move.Move
	Generate(b *board.Board, rec PlayRecorderFunc)
}

// Generator walks the market from the cheapest card to the dearest. For
// each card it tries every payment ChipCombos offers at that card's cost,
// and every free cell in row-major order. Only moves that pass
// Board.IsValid with the payment check are reported.
type Generator struct{}

var _ MoveGenerator = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate reports candidates to rec until it returns false.
func (g *Generator) Generate(b *board.Board, rec PlayRecorderFunc) {
	free := b.FreeCells().Coords()
	for idx := b.MarketLen() - 1; idx >= 0; idx-- {
		card := b.MarketCard(idx)
		for _, p := range ChipCombos(card, b.MarketCost(idx)) {
			for _, co := range free {
				m := move.NewBuyAndPlaceMove(idx, p, co.Col, co.Row)
				if !b.IsValid(m, true) {
					continue
				}
				if !rec(b, m) {
					return
				}
			}
		}
	}
}

// GenAll returns every valid candidate. An empty result means the only
// legal move is a churn.
func (g *Generator) GenAll(b *board.Board) []*move.Move {
	var plays []*move.Move
	g.Generate(b, func(_ *board.Board, m *move.Move) bool {
		plays = append(plays, m)
		return true
	})
	return plays
}

// GenAll is shorthand for NewGenerator().GenAll(b).
func GenAll(b *board.Board) []*move.Move {
	return NewGenerator().GenAll(b)
}

// ChipCombos lists the payments a player may offer for card at the given
// cost, drawing chips only from the card's own suits. A free card, or a
// suitless one, has the single empty payment. For two chips, mixed
// payments come before doubled ones.
func ChipCombos(card *decktet.Card, cost int) []move.Payment {
	suits := card.Suits()
	if cost == 0 || len(suits) == 0 {
		return []move.Payment{{}}
	}
	switch cost {
	case 1:
		return lo.Map(suits, func(s decktet.Suit, _ int) move.Payment {
			var p move.Payment
			p[s] = 1
			return p
		})
	case 2:
		var combos []move.Payment
		for i := range suits {
			for j := i + 1; j < len(suits); j++ {
				var p move.Payment
				p[suits[i]] = 1
				p[suits[j]] = 1
				combos = append(combos, p)
			}
		}
		for _, s := range suits {
			var p move.Payment
			p[s] = 2
			combos = append(combos, p)
		}
		return combos
	}
	panic(fmt.Sprintf("no market card costs %d", cost))
}
