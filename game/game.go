// Package game strings boards together into a history of immutable game
// states. A GameState never changes once created; every move produces a
// new state pointing back at the one it was played from.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
)

var ErrInvalidMove = errors.New("invalid move")

// GameState is one node of a game's history.
type GameState struct {
	board    *board.Board
	previous *GameState
	lastMove *move.Move
	turn     int
}

// NewGame starts a game with the given deck, shuffled once with shuffler.
// A nil shuffler leaves the deck in catalog order.
func NewGame(dt decktet.DeckType, shuffler decktet.Shuffler) (*GameState, error) {
	cards, err := decktet.Catalog(dt)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return NewGameFromCards(cards, shuffler), nil
}

// NewGameFromCards starts a game with an arbitrary card list.
func NewGameFromCards(cards []*decktet.Card, shuffler decktet.Shuffler) *GameState {
	return &GameState{board: board.NewBoard(cards, shuffler)}
}

// NewFromBoard wraps an existing board as the root of a new history. The
// board must not be modified afterwards.
func NewFromBoard(b *board.Board) *GameState {
	return &GameState{board: b}
}

// ApplyMove validates m, including the payment, and returns the state after
// it. The market is not refilled; see RefillMarket and Play.
func (g *GameState) ApplyMove(m *move.Move) (*GameState, error) {
	if !g.board.IsValid(m, true) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m.ShortDescription())
	}
	log.Debug().Int("turn", g.turn+1).Str("move", m.ShortDescription()).Msg("apply-move")
	return &GameState{
		board:    g.board.Apply(m),
		previous: g,
		lastMove: m,
		turn:     g.turn + 1,
	}, nil
}

// RefillMarket returns a state identical to g but with the market refilled.
// It replaces g in the history: the result shares g's predecessor and last
// move. Hosts pass discard=true after a buy and false after a churn.
func (g *GameState) RefillMarket(discard bool) *GameState {
	nb := g.board.Copy()
	nb.RefillMarket(discard)
	return &GameState{
		board:    nb,
		previous: g.previous,
		lastMove: g.lastMove,
		turn:     g.turn,
	}
}

// Play applies m and then refills the market the way a host would.
func (g *GameState) Play(m *move.Move) (*GameState, error) {
	ns, err := g.ApplyMove(m)
	if err != nil {
		return nil, err
	}
	return ns.RefillMarket(!m.IsChurn()), nil
}

// IsOver is true once the deck is empty or the grid is full.
func (g *GameState) IsOver() bool {
	return g.board.CardsRemaining() == 0 || g.board.FreeCells().Len() == 0
}

// Board returns the position. Callers must treat it as read-only; use
// Board().Copy() to experiment.
func (g *GameState) Board() *board.Board {
	return g.board
}

func (g *GameState) Previous() *GameState {
	return g.previous
}

// LastMove is the move that produced this state, or nil at the root.
func (g *GameState) LastMove() *move.Move {
	return g.lastMove
}

// Turn is the number of moves played to reach this state.
func (g *GameState) Turn() int {
	return g.turn
}

// CalculateScore scores the current position.
func (g *GameState) CalculateScore() board.Scoring {
	return g.board.CalculateScore()
}

// History returns the states from the root up to and including g.
func (g *GameState) History() []*GameState {
	states := make([]*GameState, g.turn+1)
	for s := g; s != nil; s = s.previous {
		states[s.turn] = s
	}
	return states
}

// Moves returns the moves played to reach g, oldest first.
func (g *GameState) Moves() []*move.Move {
	moves := make([]*move.Move, g.turn)
	for s := g; s.previous != nil; s = s.previous {
		moves[s.turn-1] = s.lastMove
	}
	return moves
}

// Root returns the first state of the history.
func (g *GameState) Root() *GameState {
	s := g
	for s.previous != nil {
		s = s.previous
	}
	return s
}
