package turnplayer

import (
	"errors"

	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// BaseTurnPlayer holds the current state of a game and moves it forward
// (or back) one turn at a time.
type BaseTurnPlayer struct {
	*game.GameState
	opts *GameOptions
}

var _ TurnPlayer = (*BaseTurnPlayer)(nil)

// NewBaseTurnPlayer starts a fresh game from opts. It is a good entry point.
func NewBaseTurnPlayer(opts *GameOptions) (*BaseTurnPlayer, error) {
	g, err := game.NewGame(opts.DeckType, opts.Shuffler())
	if err != nil {
		return nil, err
	}
	return &BaseTurnPlayer{GameState: g, opts: opts}, nil
}

func (p *BaseTurnPlayer) NewChurnMove() *move.Move {
	return move.NewChurnMove()
}

// NewBuyMove builds a buy from its notation parts.
func (p *BaseTurnPlayer) NewBuyMove(marketIndex int, payment string, cell string) (*move.Move, error) {
	pmt, err := move.PaymentFromString(payment)
	if err != nil {
		return nil, err
	}
	col, row, err := move.FromCellCoords(cell)
	if err != nil {
		return nil, err
	}
	return move.NewBuyAndPlaceMove(marketIndex, pmt, col, row), nil
}

// PlayMove plays m and refills the market.
func (p *BaseTurnPlayer) PlayMove(m *move.Move) error {
	ng, err := p.Play(m)
	if err != nil {
		return err
	}
	p.GameState = ng
	return nil
}

// Undo steps back one move.
func (p *BaseTurnPlayer) Undo() error {
	prev := p.Previous()
	if prev == nil {
		return ErrNothingToUndo
	}
	p.GameState = prev
	return nil
}

func (p *BaseTurnPlayer) IsPlaying() bool {
	return !p.IsOver()
}

func (p *BaseTurnPlayer) State() *game.GameState {
	return p.GameState
}

func (p *BaseTurnPlayer) SetGame(g *game.GameState) {
	p.GameState = g
}

func (p *BaseTurnPlayer) Options() *GameOptions {
	return p.opts
}
