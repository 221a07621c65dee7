// Package encoder turns boards and moves into fixed-shape float32 tensors
// for training move-prediction models, and back.
package encoder

import (
	"errors"
	"fmt"

	"gorgonia.org/tensor"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
)

// Board planes are indexed (suit, col, row). Row 0 carries the market,
// cheapest card first, and the chip bank in its last column; the grid sits
// in rows 1..4. A card writes its rank into the plane of every suit it
// carries.
const (
	NumPlanes    = decktet.NumSuits
	BoardW       = board.NumCols
	BoardH       = board.NumRows + 1
	BoardVecLen  = NumPlanes * BoardW * BoardH
	MarketRow    = 0
	ChipRow      = 0
	ChipCol      = 3
	FirstGridRow = 1
	ChurnOffset  = 0
	BuyOffset    = 1
	ChipOffset   = 4
	ColOffset    = 10
	RowOffset    = 14
	MoveVecLen   = RowOffset + board.NumRows
)

var ErrBadEncoding = errors.New("bad encoding")

func idx(suit, col, row int) int {
	return (suit*BoardW+col)*BoardH + row
}

// EncodeBoardInto writes the board features into vec, which must hold
// BoardVecLen values. vec is zeroed first.
func EncodeBoardInto(b *board.Board, vec []float32) {
	clear(vec[:BoardVecLen])
	encodeCard := func(c *decktet.Card, col, row int) {
		for _, s := range c.Suits() {
			vec[idx(int(s), col, row)] = float32(c.Rank())
		}
	}
	n := b.MarketLen()
	for i := 0; i < n; i++ {
		encodeCard(b.MarketCard(n-1-i), i, MarketRow)
	}
	for _, s := range decktet.AllSuits {
		vec[idx(int(s), ChipCol, ChipRow)] = float32(b.ChipsFor(s))
	}
	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < board.NumCols; col++ {
			if c := b.GetCard(col, row); c != nil {
				encodeCard(c, col, row+FirstGridRow)
			}
		}
	}
}

// EncodeBoard returns the board features as a (6, 4, 5) tensor.
func EncodeBoard(b *board.Board) *tensor.Dense {
	vec := make([]float32, BoardVecLen)
	EncodeBoardInto(b, vec)
	return tensor.New(tensor.WithShape(NumPlanes, BoardW, BoardH), tensor.WithBacking(vec))
}

// DecodeBoard rebuilds a board from its features. The deck and the churn
// score are not encoded, so the result has an empty deck and a zero score.
func DecodeBoard(t *tensor.Dense) (*board.Board, error) {
	vec, err := vector(t, BoardVecLen)
	if err != nil {
		return nil, err
	}
	pos := board.Position{Grid: map[board.Coord]*decktet.Card{}}
	var oldestFirst []*decktet.Card
	for col := 0; col < board.MarketSize; col++ {
		c, err := decodeCard(vec, col, MarketRow)
		if err != nil {
			return nil, err
		}
		if c != nil {
			oldestFirst = append(oldestFirst, c)
		}
	}
	for i := len(oldestFirst) - 1; i >= 0; i-- {
		pos.Market = append(pos.Market, oldestFirst[i])
	}
	for _, s := range decktet.AllSuits {
		pos.Chips[s] = int(vec[idx(int(s), ChipCol, ChipRow)])
	}
	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < board.NumCols; col++ {
			c, err := decodeCard(vec, col, row+FirstGridRow)
			if err != nil {
				return nil, err
			}
			if c != nil {
				pos.Grid[board.Coord{Col: col, Row: row}] = c
			}
		}
	}
	return board.FromPosition(pos), nil
}

func decodeCard(vec []float32, col, row int) (*decktet.Card, error) {
	var suits decktet.SuitSet
	rank := decktet.Rank(0)
	for _, s := range decktet.AllSuits {
		v := vec[idx(int(s), col, row)]
		if v == 0 {
			continue
		}
		r := decktet.Rank(v)
		if suits.Len() > 0 && r != rank {
			return nil, fmt.Errorf("%w: mixed ranks at col %d row %d", ErrBadEncoding, col, row)
		}
		rank = r
		suits = suits.Add(s)
	}
	if suits.Len() == 0 {
		return nil, nil
	}
	cat, _ := decktet.Catalog(decktet.ExtendedDeck)
	for _, c := range cat {
		if c.Rank() == rank && c.SuitSet() == suits {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no card of rank %v with those suits at col %d row %d",
		ErrBadEncoding, rank, col, row)
}

// EncodeMoveInto writes the move label into vec, which must hold
// MoveVecLen values.
func EncodeMoveInto(m *move.Move, vec []float32) {
	clear(vec[:MoveVecLen])
	if m.IsChurn() {
		vec[ChurnOffset] = 1
		return
	}
	vec[BuyOffset+m.MarketIndex()] = 1
	for s, ct := range m.Payment() {
		vec[ChipOffset+s] = float32(ct)
	}
	vec[ColOffset+m.Col()] = 1
	vec[RowOffset+m.Row()] = 1
}

// EncodeMove returns the move label as an 18-vector tensor.
func EncodeMove(m *move.Move) *tensor.Dense {
	vec := make([]float32, MoveVecLen)
	EncodeMoveInto(m, vec)
	return tensor.New(tensor.WithShape(MoveVecLen), tensor.WithBacking(vec))
}

// DecodeMove is the inverse of EncodeMove. It also accepts prediction
// vectors by taking the strongest market, column and row entries.
func DecodeMove(t *tensor.Dense) (*move.Move, error) {
	vec, err := vector(t, MoveVecLen)
	if err != nil {
		return nil, err
	}
	if vec[ChurnOffset] >= 0.5 {
		return move.NewChurnMove(), nil
	}
	mkt := argmax(vec[BuyOffset:ChipOffset])
	col := argmax(vec[ColOffset:RowOffset])
	row := argmax(vec[RowOffset:MoveVecLen])
	if mkt < 0 || col < 0 || row < 0 {
		return nil, fmt.Errorf("%w: move vector has no buy slot or cell", ErrBadEncoding)
	}
	var p move.Payment
	for s := range p {
		p[s] = int(vec[ChipOffset+s] + 0.5)
	}
	return move.NewBuyAndPlaceMove(mkt, p, col, row), nil
}

// argmax returns the index of the largest positive value, or -1.
func argmax(v []float32) int {
	best := -1
	for i, x := range v {
		if x > 0 && (best < 0 || x > v[best]) {
			best = i
		}
	}
	return best
}

func vector(t *tensor.Dense, n int) ([]float32, error) {
	if t.Shape().TotalSize() != n {
		return nil, fmt.Errorf("%w: shape %v, want %d values", ErrBadEncoding, t.Shape(), n)
	}
	vec, ok := t.Data().([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: dtype %v, want float32", ErrBadEncoding, t.Dtype())
	}
	return vec, nil
}
