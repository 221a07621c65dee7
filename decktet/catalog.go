package decktet

import "fmt"

// DeckType selects one of the fixed card catalogs.
type DeckType string

const (
	StandardDeck DeckType = "standard"
	ExtendedDeck DeckType = "extended"
)

var extendedCatalog = []*Card{
	NewCard(Excuse, "Excuse", nil),

	NewCard(Ace, "Ace of Moons", []Suit{Moons}),
	NewCard(Ace, "Ace of Suns", []Suit{Suns}),
	NewCard(Ace, "Ace of Waves", []Suit{Waves}),
	NewCard(Ace, "Ace of Leaves", []Suit{Leaves}),
	NewCard(Ace, "Ace of Wyrms", []Suit{Wyrms}),
	NewCard(Ace, "Ace of Knots", []Suit{Knots}),

	NewCard(Two, "Desert", []Suit{Suns, Wyrms}, Location),
	NewCard(Two, "Origin", []Suit{Waves, Leaves}, Location, Event),
	NewCard(Two, "Author", []Suit{Moons, Knots}, Personality),

	NewCard(Three, "Painter", []Suit{Suns, Knots}, Personality),
	NewCard(Three, "Savage", []Suit{Leaves, Wyrms}, Personality),
	NewCard(Three, "Journey", []Suit{Moons, Waves}, Event),

	NewCard(Four, "Mountain", []Suit{Moons, Suns}, Location),
	NewCard(Four, "Sailor", []Suit{Waves, Leaves}, Personality),
	NewCard(Four, "Battle", []Suit{Wyrms, Knots}, Event),

	NewCard(Five, "Forest", []Suit{Moons, Leaves}, Location),
	NewCard(Five, "Soldier", []Suit{Wyrms, Knots}, Personality),
	NewCard(Five, "Discovery", []Suit{Suns, Waves}, Event),

	NewCard(Six, "Market", []Suit{Leaves, Knots}, Location, Event),
	NewCard(Six, "Lunatic", []Suit{Moons, Waves}, Personality),
	NewCard(Six, "Penitent", []Suit{Suns, Wyrms}, Personality),

	NewCard(Seven, "Castle", []Suit{Suns, Knots}, Location),
	NewCard(Seven, "Cave", []Suit{Waves, Wyrms}, Location),
	NewCard(Seven, "Chance Meeting", []Suit{Moons, Leaves}, Event),

	NewCard(Eight, "Mill", []Suit{Waves, Leaves}, Location),
	NewCard(Eight, "Diplomat", []Suit{Moons, Suns}, Personality),
	NewCard(Eight, "Betrayal", []Suit{Wyrms, Knots}, Event),

	NewCard(Nine, "Darkness", []Suit{Waves, Wyrms}, Location),
	NewCard(Nine, "Merchant", []Suit{Leaves, Knots}, Personality),
	NewCard(Nine, "Pact", []Suit{Moons, Suns}, Event),

	NewCard(Pawns, "Borderland", []Suit{Waves, Leaves, Wyrms}, Location),
	NewCard(Pawns, "Watchman", []Suit{Moons, Wyrms, Knots}, Personality),
	NewCard(Pawns, "Light Keeper", []Suit{Suns, Waves, Knots}, Personality),
	NewCard(Pawns, "Harvest", []Suit{Moons, Suns, Leaves}, Event),

	NewCard(Courts, "Island", []Suit{Suns, Waves, Wyrms}, Location),
	NewCard(Courts, "Window", []Suit{Suns, Leaves, Knots}, Location),
	NewCard(Courts, "Consul", []Suit{Moons, Waves, Knots}, Personality),
	NewCard(Courts, "Rite", []Suit{Moons, Leaves, Wyrms}, Event),

	NewCard(Crowns, "Sea", []Suit{Waves}, Location),
	NewCard(Crowns, "End", []Suit{Leaves}, Location, Event),
	NewCard(Crowns, "Bard", []Suit{Suns}, Personality),
	NewCard(Crowns, "Huntress", []Suit{Moons}, Personality),
	NewCard(Crowns, "Calamity", []Suit{Wyrms}, Event),
	NewCard(Crowns, "Windfall", []Suit{Knots}, Event),
}

var standardCatalog = func() []*Card {
	cards := make([]*Card, 0, len(extendedCatalog))
	for _, c := range extendedCatalog {
		if !c.IsExtended() {
			cards = append(cards, c)
		}
	}
	return cards
}()

// Catalog returns the cards of the given deck type in catalog order. The
// returned slice is a copy; the cards themselves are shared and immutable.
func Catalog(dt DeckType) ([]*Card, error) {
	var src []*Card
	switch dt {
	case StandardDeck, "":
		src = standardCatalog
	case ExtendedDeck:
		src = extendedCatalog
	default:
		return nil, fmt.Errorf("unknown deck type %q", dt)
	}
	cards := make([]*Card, len(src))
	copy(cards, src)
	return cards, nil
}

// CardByID looks up a card from the extended catalog by its ID.
func CardByID(id string) (*Card, error) {
	for _, c := range extendedCatalog {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no card with id %q", id)
}

// MustCardByID is CardByID for tests and fixtures.
func MustCardByID(id string) *Card {
	c, err := CardByID(id)
	if err != nil {
		panic(err)
	}
	return c
}
