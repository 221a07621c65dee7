package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestRefillDiscardEvictsSharedSuits(t *testing.T) {
	is := is.New(t)
	// AM (moons), 2SY (suns, wyrms), AW (waves); the discard 6SY shares a
	// suit only with 2SY.
	b := FromPosition(Position{
		Market: cards("AM", "2SY", "AW"),
		Deck:   cards("6SY", "7WY", "8WL"),
	})
	b.RefillMarket(true)
	is.Equal(ids(b.Market()), []string{"6SY", "AM", "AW"})
	is.Equal(b.CardsRemaining(), 2)
}

func TestRefillDiscardThenTopUp(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{
		Market: cards("AM", "2SY"),
		Deck:   cards("6SY", "7WY", "8WL"),
	})
	b.RefillMarket(true)
	is.Equal(ids(b.Market()), []string{"7WY", "6SY", "AM"})
	is.Equal(b.CardsRemaining(), 1)
}

func TestRefillDiscardEvictsEverything(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{
		Market: cards("AM", "2MK"),
		Deck:   cards("3MW"),
	})
	b.RefillMarket(true)
	is.Equal(ids(b.Market()), []string{"3MW"})
	is.Equal(b.CardsRemaining(), 0)
}

func TestRefillDiscardOnEmptyDeckIsNoop(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{Market: cards("AM")})
	b.RefillMarket(true)
	is.Equal(ids(b.Market()), []string{"AM"})
}

func TestRefillWithoutDiscard(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{Deck: cards("AM", "AS", "AW", "AL")})
	b.RefillMarket(false)
	is.Equal(ids(b.Market()), []string{"AW", "AS", "AM"})
	is.Equal(b.CardsRemaining(), 1)
	// a full market is left alone
	b.RefillMarket(false)
	is.Equal(b.MarketLen(), 3)
	is.Equal(b.CardsRemaining(), 1)
}

func TestRefillStopsWhenDeckRunsOut(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{Deck: cards("AM", "AS")})
	b.RefillMarket(false)
	is.Equal(ids(b.Market()), []string{"AS", "AM"})
	is.Equal(b.CardsRemaining(), 0)
}

func TestRefillDiscardIntoFullMarketDropsOldest(t *testing.T) {
	is := is.New(t)
	b := FromPosition(Position{
		Market: cards("AM", "AS", "AW"),
		Deck:   cards("AL"),
	})
	b.RefillMarket(true)
	is.Equal(ids(b.Market()), []string{"AL", "AM", "AS"})
}
