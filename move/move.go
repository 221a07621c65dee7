// Package move defines the moves a player can make: churning the market or
// buying a market card and placing it on the grid.
package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MoveType is the kind of move.
type MoveType uint8

const (
	MoveTypeChurn MoveType = iota
	MoveTypeBuyAndPlace
)

const (
	// GridDim must match the board's dimension; notation is validated
	// against it.
	GridDim = 4
)

var (
	ErrBadNotation = errors.New("bad move notation")
	ErrUnknownSuit = errors.New("unknown suit letter")
	ErrBadCoords   = errors.New("coordinates out of range")
)

// Move is immutable once constructed. Whether it is legal is a question
// for a particular board, never for the move itself.
type Move struct {
	action      MoveType
	marketIndex int
	payment     Payment
	col         int
	row         int
}

// NewChurnMove discards the whole market.
func NewChurnMove() *Move {
	return &Move{action: MoveTypeChurn}
}

// NewBuyAndPlaceMove buys the card at marketIndex (0 is the newest card)
// with payment and places it at (col, row).
func NewBuyAndPlaceMove(marketIndex int, payment Payment, col, row int) *Move {
	return &Move{
		action:      MoveTypeBuyAndPlace,
		marketIndex: marketIndex,
		payment:     payment,
		col:         col,
		row:         row,
	}
}

func (m *Move) Action() MoveType {
	return m.action
}

func (m *Move) IsChurn() bool {
	return m.action == MoveTypeChurn
}

func (m *Move) MarketIndex() int {
	return m.marketIndex
}

func (m *Move) Payment() Payment {
	return m.payment
}

func (m *Move) Col() int {
	return m.col
}

func (m *Move) Row() int {
	return m.row
}

// Equal compares two moves field by field.
func (m *Move) Equal(o *Move) bool {
	if m.action != o.action {
		return false
	}
	if m.action == MoveTypeChurn {
		return true
	}
	return m.marketIndex == o.marketIndex && m.payment == o.payment &&
		m.col == o.col && m.row == o.row
}

func (m *Move) MoveTypeString() string {
	switch m.action {
	case MoveTypeChurn:
		return "Churn"
	case MoveTypeBuyAndPlace:
		return "BuyAndPlace"
	}
	return "UNHANDLED"
}

// ToCellCoords turns a column and row into a cell name such as "b3".
func ToCellCoords(col, row int) string {
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// FromCellCoords is the inverse of ToCellCoords.
func FromCellCoords(cell string) (col, row int, err error) {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if len(cell) != 2 {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrBadNotation, cell)
	}
	col = int(cell[0]) - 'a'
	row = int(cell[1]) - '1'
	if col < 0 || col >= GridDim || row < 0 || row >= GridDim {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrBadCoords, cell)
	}
	return col, row, nil
}

// ShortDescription is the move notation: "churn" or
// "buy <idx> <payment> <cell>".
func (m *Move) ShortDescription() string {
	if m.action == MoveTypeChurn {
		return "churn"
	}
	return fmt.Sprintf("buy %d %s %s", m.marketIndex, m.payment.String(),
		ToCellCoords(m.col, m.row))
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypeChurn:
		return "<action: churn>"
	case MoveTypeBuyAndPlace:
		return fmt.Sprintf("<action: buy idx: %d payment: %v cell: %v>",
			m.marketIndex, m.payment.String(), ToCellCoords(m.col, m.row))
	}
	return "<Unhandled move>"
}

// FromString parses move notation. It checks the shape of the move and the
// coordinate range; it cannot know whether the market index exists.
func FromString(s string) (*Move, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty move", ErrBadNotation)
	}
	switch fields[0] {
	case "churn":
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: churn takes no arguments", ErrBadNotation)
		}
		return NewChurnMove(), nil
	case "buy":
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: want buy <idx> <payment> <cell>, got %q",
				ErrBadNotation, s)
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: market index %q", ErrBadNotation, fields[1])
		}
		payment, err := PaymentFromString(strings.ToUpper(fields[2]))
		if err != nil {
			return nil, err
		}
		col, row, err := FromCellCoords(fields[3])
		if err != nil {
			return nil, err
		}
		return NewBuyAndPlaceMove(idx, payment, col, row), nil
	}
	return nil, fmt.Errorf("%w: unknown move %q", ErrBadNotation, fields[0])
}
