package board

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aucteraden/decktet"
)

// RefillMarket tops the market back up to three cards. With isDiscard set,
// one card is first drawn as a discard: every market card sharing a suit
// with it is evicted and the discard goes to the front. The market simply
// ends up short when the deck runs out.
//
// This mutates b. It is meant for a board the caller owns outright, such as
// one just returned by Apply.
func (b *Board) RefillMarket(isDiscard bool) {
	if isDiscard {
		drawn, ok := b.deck.Draw()
		if !ok {
			return
		}
		kept := lo.Filter(b.market[:b.marketLen], func(c *decktet.Card, _ int) bool {
			return !c.SharesSuit(drawn)
		})
		if len(kept) != b.marketLen {
			log.Trace().Str("discard", drawn.ID()).Int("evicted", b.marketLen-len(kept)).
				Msg("market-eviction")
		}
		if len(kept) == MarketSize {
			// Nothing was evicted from a full market; the oldest card
			// makes way so the market never exceeds three.
			kept = kept[:MarketSize-1]
		}
		b.setMarket(kept)
		b.pushMarket(drawn)
	}
	for b.marketLen < MarketSize {
		c, ok := b.deck.Draw()
		if !ok {
			break
		}
		b.pushMarket(c)
	}
}
