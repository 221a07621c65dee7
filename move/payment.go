package move

import (
	"fmt"
	"strings"

	"github.com/domino14/aucteraden/decktet"
)

// A Payment is the number of chips of each suit offered for a card.
type Payment [decktet.NumSuits]int

// NewPayment builds a payment from a suit->count mapping. It panics on a
// suit outside the six or a negative count; both are caller bugs.
func NewPayment(m map[decktet.Suit]int) Payment {
	var p Payment
	for s, ct := range m {
		if !s.Valid() {
			panic(fmt.Sprintf("payment references suit %d outside the bank", uint8(s)))
		}
		if ct < 0 {
			panic(fmt.Sprintf("negative payment of %d %v", ct, s))
		}
		p[s] = ct
	}
	return p
}

// Total is the number of chips in the payment.
func (p Payment) Total() int {
	t := 0
	for _, ct := range p {
		t += ct
	}
	return t
}

func (p Payment) IsEmpty() bool {
	return p.Total() == 0
}

// String renders one suit letter per chip, e.g. "MS" or "WW"; an empty
// payment is "-".
func (p Payment) String() string {
	var sb strings.Builder
	for s, ct := range p {
		for i := 0; i < ct; i++ {
			sb.WriteByte(decktet.Suit(s).Letter())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// PaymentFromString parses the String form.
func PaymentFromString(s string) (Payment, error) {
	var p Payment
	if s == "-" || s == "" {
		return p, nil
	}
	for i := 0; i < len(s); i++ {
		suit, ok := decktet.SuitFromLetter(s[i])
		if !ok {
			return p, fmt.Errorf("%w: %q in payment %q", ErrUnknownSuit, s[i], s)
		}
		p[suit]++
	}
	return p, nil
}
