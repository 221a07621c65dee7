package board

import (
	"fmt"

	"github.com/domino14/aucteraden/move"
)

// up, down, left, right. Chain search depends on this order.
var neighborOffsets = [4]Coord{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// IsValid reports whether m is legal on b. Churn is always legal. A buy
// must target an empty cell, touch an occupied cell unless the grid is
// empty, and never put two extremal (ace or crown) cards side by side. With
// checkPayment set the bank must also cover the payment.
//
// The payment is not compared with the card's suits or its market cost;
// only the bank's ability to cover it is checked.
//
// IsValid panics if the market index or coordinates are out of range.
func (b *Board) IsValid(m *move.Move, checkPayment bool) bool {
	if m.IsChurn() {
		return true
	}
	card := b.MarketCard(m.MarketIndex())
	col, row := m.Col(), m.Row()
	mustBeValidCoords(col, row)

	if checkPayment {
		for s, ct := range m.Payment() {
			if b.chips[s] < ct {
				return false
			}
		}
	}
	if !b.IsEmptyCell(col, row) {
		return false
	}
	if b.GridEmpty() {
		return true
	}
	hasNeighbor := false
	for _, off := range neighborOffsets {
		nc, nr := col+off.Col, row+off.Row
		if !validCoords(nc, nr) {
			continue
		}
		n := b.GetCard(nc, nr)
		if n == nil {
			continue
		}
		if card.Rank().IsExtremal() && n.Rank().IsExtremal() {
			return false
		}
		hasNeighbor = true
	}
	return hasNeighbor
}

// Apply returns a new board with m applied; b is left untouched. It does
// not refill the market. Apply assumes m was checked with IsValid; a buy
// the bank cannot cover would drive chip counts negative.
func (b *Board) Apply(m *move.Move) *Board {
	nb := b.Copy()
	switch m.Action() {
	case move.MoveTypeChurn:
		nb.setMarket(nil)
		nb.score -= ChurnPenalty
	case move.MoveTypeBuyAndPlace:
		nb.mustBeValidMarketIndex(m.MarketIndex())
		card := nb.removeMarket(m.MarketIndex())
		for s, ct := range m.Payment() {
			nb.chips[s] -= ct
		}
		nb.placeCard(card, m.Col(), m.Row())
	default:
		panic(fmt.Sprintf("unhandled move type %v", m.Action()))
	}
	return nb
}
