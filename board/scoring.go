package board

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/aucteraden/decktet"
)

const (
	// UnbalancedSuitPenalty applies to every suit whose chips are all spent
	// or all untouched.
	UnbalancedSuitPenalty = 5
	EmptyCellPenalty      = 5
)

// lengthBonus is indexed by chain length; anything longer than the table
// gets the last entry.
var lengthBonus = [...]int{-5, -5, 2, 5, 9, 14, 20, 30}

// ChainLink is one card of a chain and where it sits.
type ChainLink struct {
	Card *decktet.Card
	Col  int
	Row  int
}

// Chain is a maximal run of orthogonally adjacent cards sharing a suit,
// each strictly higher in rank than the one before.
type Chain struct {
	Links []ChainLink
	Score int
}

func (c Chain) Len() int {
	return len(c.Links)
}

// ChainScore scores a run of cards from start to end.
func ChainScore(links []ChainLink) int {
	if len(links) == 0 {
		return lengthBonus[0]
	}
	startsAce := links[0].Card.Rank() == decktet.Ace
	endsCrown := links[len(links)-1].Card.Rank() == decktet.Crowns
	bonus := 0
	switch {
	case startsAce && endsCrown:
		bonus = 4
	case startsAce:
		bonus = 1
	case endsCrown:
		bonus = 2
	}
	l := len(links)
	if l >= len(lengthBonus) {
		l = len(lengthBonus) - 1
	}
	return bonus + lengthBonus[l]
}

// Scoring is the result of CalculateScore. Chains holds the best chain of
// every suit that appears on the grid.
type Scoring struct {
	Total     int
	Penalties int
	Chains    map[decktet.Suit]Chain
}

// CalculateScore scores the position. It does not modify the board.
func (b *Board) CalculateScore() Scoring {
	sc := Scoring{Chains: map[decktet.Suit]Chain{}}
	for _, ct := range b.chips {
		if ct == 0 || ct == InitialChips {
			sc.Penalties -= UnbalancedSuitPenalty
		}
	}
	sc.Penalties -= EmptyCellPenalty * b.free.Len()

	sc.Total = b.score + sc.Penalties
	for _, suit := range decktet.AllSuits {
		best, ok := b.bestChain(suit)
		if !ok {
			continue
		}
		sc.Chains[suit] = best
		sc.Total += best.Score
	}
	return sc
}

// chainSearch walks the grid depth-first for a single suit. path is owned
// by the search and reused; chains are copied out of it when recorded.
type chainSearch struct {
	b     *Board
	suit  decktet.Suit
	path  []ChainLink
	best  Chain
	found bool
}

func (b *Board) bestChain(suit decktet.Suit) (Chain, bool) {
	cs := &chainSearch{b: b, suit: suit, path: make([]ChainLink, 0, NumCells)}
	for row := 0; row < NumRows; row++ {
		for col := 0; col < NumCols; col++ {
			card := b.grid[Coord{col, row}.index()]
			if card == nil || !card.HasSuit(suit) {
				continue
			}
			cs.path = append(cs.path[:0], ChainLink{card, col, row})
			cs.extend(col, row)
		}
	}
	return cs.best, cs.found
}

func (cs *chainSearch) extend(col, row int) {
	cur := cs.b.grid[Coord{col, row}.index()]
	deadEnd := true
	for _, off := range neighborOffsets {
		nc, nr := col+off.Col, row+off.Row
		if !validCoords(nc, nr) {
			continue
		}
		n := cs.b.grid[Coord{nc, nr}.index()]
		if n == nil || !n.HasSuit(cs.suit) || n.Rank() <= cur.Rank() {
			continue
		}
		deadEnd = false
		cs.path = append(cs.path, ChainLink{n, nc, nr})
		cs.extend(nc, nr)
		cs.path = cs.path[:len(cs.path)-1]
	}
	if deadEnd {
		cs.record()
	}
}

// record keeps the path if it beats the best so far. Ties go to the chain
// found first.
func (cs *chainSearch) record() {
	score := ChainScore(cs.path)
	if cs.found && score <= cs.best.Score {
		return
	}
	links := make([]ChainLink, len(cs.path))
	copy(links, cs.path)
	cs.best = Chain{Links: links, Score: score}
	cs.found = true
	log.Trace().Str("suit", cs.suit.String()).Int("len", len(links)).
		Int("score", score).Msg("new-best-chain")
}
