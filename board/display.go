package board

import (
	"fmt"
	"strings"

	"github.com/domino14/aucteraden/decktet"
)

const emptyCellDisplay = "......"

// CardDisplay renders a card for the grid, or a placeholder for nil.
func CardDisplay(c *decktet.Card) string {
	if c == nil {
		return emptyCellDisplay
	}
	return c.String()
}

// ToDisplayText renders the deck count, chip bank, market and grid.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Deck: %d      Chips: ", b.deck.CardsRemaining())
	for _, s := range decktet.AllSuits {
		fmt.Fprintf(&sb, "%c: %d  ", s.Letter(), b.chips[s])
	}
	sb.WriteString("\n\n    ")
	for i := 0; i < b.marketLen; i++ {
		fmt.Fprintf(&sb, "%s  ", CardDisplay(b.market[i]))
	}
	sb.WriteString("\n    ")
	for i := 0; i < b.marketLen; i++ {
		fmt.Fprintf(&sb, "%d:cost%d  ", i, b.MarketCost(i))
	}
	sb.WriteString("\n\n")
	sb.WriteString("   ")
	for col := 0; col < NumCols; col++ {
		fmt.Fprintf(&sb, "   %c    ", 'a'+col)
	}
	sb.WriteString("\n")
	for row := 0; row < NumRows; row++ {
		fmt.Fprintf(&sb, "%d  ", row+1)
		for col := 0; col < NumCols; col++ {
			fmt.Fprintf(&sb, "%s  ", CardDisplay(b.GetCard(col, row)))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}
