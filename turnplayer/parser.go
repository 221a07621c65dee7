package turnplayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/movegen"
)

func ParseDeckType(name string) (decktet.DeckType, error) {
	switch strings.ToLower(name) {
	case "standard", "std":
		return decktet.StandardDeck, nil
	case "extended", "ext":
		return decktet.ExtendedDeck, nil
	}
	return "", errors.New("valid options: 'standard', 'extended'")
}

// ParseMove accepts full move notation ("churn", "buy 1 S b3") or a buy
// without a payment ("buy 1 b3"). A missing payment defaults to the first
// payment ChipCombos offers for the card at that index.
func (p *BaseTurnPlayer) ParseMove(fields []string) (*move.Move, error) {
	if len(fields) == 3 && strings.ToLower(fields[0]) == "buy" {
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: market index %q", move.ErrBadNotation, fields[1])
		}
		b := p.Board()
		if idx < 0 || idx >= b.MarketLen() {
			return nil, fmt.Errorf("market index %d out of range; market has %d cards",
				idx, b.MarketLen())
		}
		combos := movegen.ChipCombos(b.MarketCard(idx), b.MarketCost(idx))
		return p.NewBuyMove(idx, combos[0].String(), fields[2])
	}
	m, err := move.FromString(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}
	if !m.IsChurn() && m.MarketIndex() >= p.Board().MarketLen() {
		return nil, fmt.Errorf("market index %d out of range; market has %d cards",
			m.MarketIndex(), p.Board().MarketLen())
	}
	return m, nil
}
