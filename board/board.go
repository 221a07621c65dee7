// Package board holds the state of a single game: the 4x4 grid, the market,
// the chip bank and the deck. It knows the rules for refilling the market,
// checking and applying moves, and scoring a position.
package board

import (
	"fmt"
	"math/bits"

	"github.com/domino14/aucteraden/decktet"
)

const (
	NumCols    = 4
	NumRows    = 4
	NumCells   = NumCols * NumRows
	MarketSize = 3
	// InitialChips is the starting count for every suit in the bank.
	InitialChips = 4
	ChurnPenalty = 3
)

// Coord addresses a grid cell.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

func (c Coord) index() int {
	return c.Row*NumCols + c.Col
}

func coordFromIndex(i int) Coord {
	return Coord{Col: i % NumCols, Row: i / NumCols}
}

func validCoords(col, row int) bool {
	return col >= 0 && col < NumCols && row >= 0 && row < NumRows
}

func mustBeValidCoords(col, row int) {
	if !validCoords(col, row) {
		panic(fmt.Sprintf("grid coordinates (%d, %d) outside [0,%d)x[0,%d)",
			col, row, NumCols, NumRows))
	}
}

// CellSet is a bitset over the 16 grid cells, indexed row-major.
type CellSet uint16

const allCells CellSet = 1<<NumCells - 1

func (cs CellSet) Contains(c Coord) bool {
	return cs&(1<<c.index()) != 0
}

func (cs CellSet) Len() int {
	return bits.OnesCount16(uint16(cs))
}

// Coords lists the cells in row-major order.
func (cs CellSet) Coords() []Coord {
	coords := make([]Coord, 0, cs.Len())
	for x := uint16(cs); x != 0; x &= x - 1 {
		coords = append(coords, coordFromIndex(bits.TrailingZeros16(x)))
	}
	return coords
}

// Chips is the chip bank, one counter per suit.
type Chips [decktet.NumSuits]int

// Board is a value type. All of its state lives in fixed-size arrays, apart
// from the deck whose backing slice is never written, so a plain struct
// copy is a full independent copy.
type Board struct {
	grid      [NumCells]*decktet.Card
	free      CellSet
	market    [MarketSize]*decktet.Card
	marketLen int
	chips     Chips
	deck      decktet.Deck
	score     int
}

// NewBoard shuffles cards once with shuffler into a fresh deck, fills the
// chip bank, and deals the opening market.
func NewBoard(cards []*decktet.Card, shuffler decktet.Shuffler) *Board {
	b := &Board{
		free: allCells,
		deck: decktet.NewDeck(cards, shuffler),
	}
	for i := range b.chips {
		b.chips[i] = InitialChips
	}
	b.RefillMarket(false)
	return b
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// GetCard returns the card at (col, row), or nil for an empty cell.
func (b *Board) GetCard(col, row int) *decktet.Card {
	mustBeValidCoords(col, row)
	return b.grid[Coord{col, row}.index()]
}

func (b *Board) IsEmptyCell(col, row int) bool {
	return b.GetCard(col, row) == nil
}

// FreeCells is the set of empty cells.
func (b *Board) FreeCells() CellSet {
	return b.free
}

// GridEmpty is true until the first card is placed.
func (b *Board) GridEmpty() bool {
	return b.free == allCells
}

// CardsPlaced is the number of occupied cells.
func (b *Board) CardsPlaced() int {
	return NumCells - b.free.Len()
}

// Market returns the market, newest card first.
func (b *Board) Market() []*decktet.Card {
	m := make([]*decktet.Card, b.marketLen)
	copy(m, b.market[:b.marketLen])
	return m
}

func (b *Board) MarketLen() int {
	return b.marketLen
}

// MarketCard returns the card at market index idx. It panics if idx is out
// of range.
func (b *Board) MarketCard(idx int) *decktet.Card {
	b.mustBeValidMarketIndex(idx)
	return b.market[idx]
}

// MarketCost is the price of the card at idx: the oldest card is free and
// each newer card costs one chip more.
func (b *Board) MarketCost(idx int) int {
	b.mustBeValidMarketIndex(idx)
	return b.marketLen - 1 - idx
}

func (b *Board) mustBeValidMarketIndex(idx int) {
	if idx < 0 || idx >= b.marketLen {
		panic(fmt.Sprintf("market index %d out of range [0,%d)", idx, b.marketLen))
	}
}

func (b *Board) Chips() Chips {
	return b.chips
}

func (b *Board) ChipsFor(s decktet.Suit) int {
	if !s.Valid() {
		panic(fmt.Sprintf("suit %d outside the bank", uint8(s)))
	}
	return b.chips[s]
}

// Deck returns a copy of the remaining deck.
func (b *Board) Deck() decktet.Deck {
	return b.deck
}

func (b *Board) CardsRemaining() int {
	return b.deck.CardsRemaining()
}

// Score is the running accumulator. It only moves with churn penalties;
// see CalculateScore for the full score.
func (b *Board) Score() int {
	return b.score
}

func (b *Board) placeCard(c *decktet.Card, col, row int) {
	mustBeValidCoords(col, row)
	co := Coord{col, row}
	b.grid[co.index()] = c
	b.free &^= 1 << co.index()
}

func (b *Board) pushMarket(c *decktet.Card) {
	copy(b.market[1:b.marketLen+1], b.market[:b.marketLen])
	b.market[0] = c
	b.marketLen++
}

func (b *Board) removeMarket(idx int) *decktet.Card {
	c := b.market[idx]
	copy(b.market[idx:b.marketLen-1], b.market[idx+1:b.marketLen])
	b.marketLen--
	b.market[b.marketLen] = nil
	return c
}

func (b *Board) setMarket(cards []*decktet.Card) {
	b.market = [MarketSize]*decktet.Card{}
	b.marketLen = copy(b.market[:], cards)
}
