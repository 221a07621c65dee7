package encoder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matryer/is"
	"gorgonia.org/tensor"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
)

func samplePosition() *board.Board {
	return board.FromPosition(board.Position{
		Grid: map[board.Coord]*decktet.Card{
			{Col: 1, Row: 1}: decktet.MustCardByID("AM"),
			{Col: 2, Row: 1}: decktet.MustCardByID("2SY"),
			{Col: 0, Row: 3}: decktet.MustCardByID("CrK"),
		},
		Market: []*decktet.Card{
			decktet.MustCardByID("3MW"),
			decktet.MustCardByID("3LY"),
			decktet.MustCardByID("3SK"),
		},
		Chips: board.Chips{3, 3, 2, 4, 0, 4},
	})
}

func TestEncodeBoardLayout(t *testing.T) {
	is := is.New(t)
	enc := EncodeBoard(samplePosition())
	is.Equal(enc.Shape().TotalSize(), BoardVecLen)
	at := func(s decktet.Suit, col, row int) float32 {
		v, err := enc.At(int(s), col, row)
		is.NoErr(err)
		return v.(float32)
	}
	// market: oldest (cheapest) in column 0
	is.Equal(at(decktet.Suns, 0, 0), float32(3))
	is.Equal(at(decktet.Knots, 0, 0), float32(3))
	is.Equal(at(decktet.Moons, 2, 0), float32(3))
	is.Equal(at(decktet.Waves, 2, 0), float32(3))
	is.Equal(at(decktet.Moons, 0, 0), float32(0))
	// chips
	is.Equal(at(decktet.Waves, ChipCol, ChipRow), float32(2))
	is.Equal(at(decktet.Wyrms, ChipCol, ChipRow), float32(0))
	// grid shifted down a row
	is.Equal(at(decktet.Moons, 1, 2), float32(decktet.Ace))
	is.Equal(at(decktet.Wyrms, 2, 2), float32(2))
	is.Equal(at(decktet.Knots, 0, 4), float32(decktet.Crowns))
}

func TestBoardRoundTrip(t *testing.T) {
	is := is.New(t)
	b := samplePosition()
	d, err := DecodeBoard(EncodeBoard(b))
	is.NoErr(err)
	is.Equal(d.Hash(), b.Hash())
	is.Equal(d.ToDisplayText(), b.ToDisplayText())
}

func TestDecodeBoardRejectsJunk(t *testing.T) {
	is := is.New(t)
	vec := make([]float32, BoardVecLen)
	vec[idx(int(decktet.Moons), 0, 1)] = 2
	vec[idx(int(decktet.Suns), 0, 1)] = 3
	_, err := DecodeBoard(tensor.New(tensor.WithShape(NumPlanes, BoardW, BoardH), tensor.WithBacking(vec)))
	is.True(errors.Is(err, ErrBadEncoding))

	// rank 2 exists in Suns+Wyrms but not Moons+Suns
	vec[idx(int(decktet.Suns), 0, 1)] = 2
	_, err = DecodeBoard(tensor.New(tensor.WithShape(NumPlanes, BoardW, BoardH), tensor.WithBacking(vec)))
	is.True(errors.Is(err, ErrBadEncoding))

	_, err = DecodeBoard(tensor.New(tensor.WithShape(3), tensor.WithBacking([]float32{1, 2, 3})))
	is.True(errors.Is(err, ErrBadEncoding))
}

func TestMoveRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, n := range []string{"churn", "buy 0 SY c2", "buy 2 - a1", "buy 1 MM d4"} {
		m, err := move.FromString(n)
		is.NoErr(err)
		d, err := DecodeMove(EncodeMove(m))
		is.NoErr(err)
		is.Equal(d.ShortDescription(), n)
	}
}

func TestEncodeMoveLayout(t *testing.T) {
	is := is.New(t)
	m, _ := move.FromString("buy 1 SY c2")
	vec := EncodeMove(m).Data().([]float32)
	is.Equal(vec, []float32{
		0,
		0, 1, 0,
		0, 1, 0, 0, 1, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
	})
}

func TestDecodePrediction(t *testing.T) {
	is := is.New(t)
	vec := []float32{
		0.1,
		0.2, 0.3, 0.9,
		0, 0, 0, 0.1, 0, 0,
		0.7, 0.1, 0.1, 0.1,
		0.1, 0.1, 0.1, 0.6,
	}
	m, err := DecodeMove(tensor.New(tensor.WithShape(MoveVecLen), tensor.WithBacking(vec)))
	is.NoErr(err)
	is.Equal(m.ShortDescription(), "buy 2 - a4")

	_, err = DecodeMove(tensor.New(tensor.WithShape(MoveVecLen), tensor.WithBacking(make([]float32, MoveVecLen))))
	is.True(errors.Is(err, ErrBadEncoding))
}

func TestNpyRoundTrip(t *testing.T) {
	is := is.New(t)
	enc := EncodeBoard(samplePosition())
	var buf bytes.Buffer
	is.NoErr(enc.WriteNpy(&buf))
	back := tensor.New(tensor.Of(tensor.Float32))
	is.NoErr(back.ReadNpy(&buf))
	d, err := DecodeBoard(back)
	is.NoErr(err)
	is.Equal(d.Hash(), samplePosition().Hash())
}
