package turnplayer

import (
	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
)

// TurnPlayer encapsulates all the functions a host needs to play a game
// one turn at a time.
type TurnPlayer interface {
	NewChurnMove() *move.Move
	NewBuyMove(marketIndex int, payment string, cell string) (*move.Move, error)
	ParseMove(fields []string) (*move.Move, error)
	PlayMove(m *move.Move) error
	Undo() error
	IsPlaying() bool
	State() *game.GameState
}
