package decktet

import (
	"testing"

	"github.com/matryer/is"
)

func TestCatalogSizes(t *testing.T) {
	is := is.New(t)
	std, err := Catalog(StandardDeck)
	is.NoErr(err)
	is.Equal(len(std), 36)
	ext, err := Catalog(ExtendedDeck)
	is.NoErr(err)
	is.Equal(len(ext), 45)
	for _, c := range std {
		is.True(!c.IsExtended())
		is.True(len(c.Suits()) >= 1)
		is.True(len(c.Suits()) <= 2)
	}
	_, err = Catalog("tarot")
	is.True(err != nil)
}

func TestCatalogIsCopied(t *testing.T) {
	is := is.New(t)
	a, _ := Catalog(StandardDeck)
	a[0] = nil
	b, _ := Catalog(StandardDeck)
	is.True(b[0] != nil)
}

func TestCardIDs(t *testing.T) {
	is := is.New(t)
	cases := map[string]string{
		"Ace of Moons": "AM",
		"Desert":       "2SY",
		"Sea":          "CrW",
		"Borderland":   "PaWLY",
		"Excuse":       "Ex",
	}
	ext, _ := Catalog(ExtendedDeck)
	found := 0
	for _, c := range ext {
		if id, ok := cases[c.Name()]; ok {
			is.Equal(c.ID(), id)
			found++
		}
	}
	is.Equal(found, len(cases))
	is.Equal(MustCardByID("2SY").Name(), "Desert")
	is.Equal(MustCardByID("2SY").String(), "2  SY ")
}

func TestStructuralEquality(t *testing.T) {
	is := is.New(t)
	a := NewCard(Two, "Desert", []Suit{Suns, Wyrms})
	b := NewCard(Two, "Desert copy", []Suit{Wyrms, Suns})
	c := NewCard(Three, "Other", []Suit{Suns, Wyrms})
	is.True(a.Equal(b))
	is.True(!a.Equal(c))
	is.True(!a.Equal(nil))
	// display order is preserved even though equality ignores it
	is.Equal(b.Suits(), []Suit{Wyrms, Suns})
}

func TestSuitSet(t *testing.T) {
	is := is.New(t)
	ss := NewSuitSet(Moons, Knots)
	is.True(ss.Contains(Moons))
	is.True(!ss.Contains(Suns))
	is.Equal(ss.Len(), 2)
	is.True(ss.Intersects(NewSuitSet(Knots, Waves)))
	is.True(!ss.Intersects(NewSuitSet(Waves, Leaves)))
}

func TestSuitLetters(t *testing.T) {
	is := is.New(t)
	for _, s := range AllSuits {
		back, ok := SuitFromLetter(s.Letter())
		is.True(ok)
		is.Equal(back, s)
	}
	s, ok := SuitFromLetter('y')
	is.True(ok)
	is.Equal(s, Wyrms)
	_, ok = SuitFromLetter('Q')
	is.True(!ok)
}

func TestExtremalRanks(t *testing.T) {
	is := is.New(t)
	is.True(Ace.IsExtremal())
	is.True(Crowns.IsExtremal())
	is.True(!Two.IsExtremal())
	is.True(!Excuse.IsExtremal())
}

func TestNewCardPanicsOnRepeatedSuit(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	NewCard(Two, "bad", []Suit{Moons, Moons})
}
