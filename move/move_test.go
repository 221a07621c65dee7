package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/aucteraden/decktet"
)

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	m := NewBuyAndPlaceMove(2, NewPayment(map[decktet.Suit]int{decktet.Suns: 1, decktet.Wyrms: 1}), 1, 2)
	is.Equal(m.ShortDescription(), "buy 2 SY b3")
	is.Equal(NewChurnMove().ShortDescription(), "churn")
	is.Equal(NewBuyAndPlaceMove(0, Payment{}, 3, 3).ShortDescription(), "buy 0 - d4")
}

func TestFromStringRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"churn", "buy 0 - a1", "buy 1 WW d4", "buy 2 MK c2"} {
		m, err := FromString(s)
		is.NoErr(err)
		is.Equal(m.ShortDescription(), s)
	}
	m, err := FromString("  BUY 1 ww B3 ")
	is.NoErr(err)
	is.Equal(m.MarketIndex(), 1)
	is.Equal(m.Payment()[decktet.Waves], 2)
	is.Equal(m.Col(), 1)
	is.Equal(m.Row(), 2)
}

func TestFromStringErrors(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		in  string
		err error
	}{
		{"", ErrBadNotation},
		{"pass", ErrBadNotation},
		{"churn now", ErrBadNotation},
		{"buy 1 M", ErrBadNotation},
		{"buy x M a1", ErrBadNotation},
		{"buy 0 Q a1", ErrUnknownSuit},
		{"buy 0 M e1", ErrBadCoords},
		{"buy 0 M a5", ErrBadCoords},
		{"buy 0 M a", ErrBadNotation},
	}
	for _, tc := range cases {
		_, err := FromString(tc.in)
		is.True(errors.Is(err, tc.err))
	}
}

func TestPayment(t *testing.T) {
	is := is.New(t)
	p := NewPayment(map[decktet.Suit]int{decktet.Moons: 2, decktet.Knots: 1})
	is.Equal(p.Total(), 3)
	is.Equal(p.String(), "MMK")
	is.True(Payment{}.IsEmpty())
	is.Equal(Payment{}.String(), "-")
}

func TestNewPaymentPanicsOnBadSuit(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	NewPayment(map[decktet.Suit]int{decktet.Suit(6): 1})
}

func TestMoveEqual(t *testing.T) {
	is := is.New(t)
	a, _ := FromString("buy 1 M b2")
	b, _ := FromString("buy 1 M b2")
	c, _ := FromString("buy 1 S b2")
	is.True(a.Equal(b))
	is.True(!a.Equal(c))
	is.True(NewChurnMove().Equal(NewChurnMove()))
	is.True(!a.Equal(NewChurnMove()))
}
