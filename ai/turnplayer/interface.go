// Package turnplayer holds the reference move-selection policies. They
// read positions only through the engine's public API.
package turnplayer

import (
	"fmt"

	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
)

// RandSource is the randomness a policy needs. *frand.RNG satisfies it.
type RandSource interface {
	Intn(n int) int
}

// AITurnPlayer picks a move for a position. It never returns nil: with no
// valid buy available it returns a churn.
type AITurnPlayer interface {
	ChooseMove(g *game.GameState) *move.Move
	GenerateMoves(g *game.GameState) []*move.Move
	Name() string
}

const (
	RandomPlayerName       = "random"
	OneMoveScorePlayerName = "onemove"
)

// NewPlayer builds a policy by name.
func NewPlayer(name string, maxCandidates, upperLimit int, rng RandSource) (AITurnPlayer, error) {
	switch name {
	case RandomPlayerName:
		return NewRandomPlayer(rng), nil
	case OneMoveScorePlayerName:
		return NewOneMoveScorePlayer(maxCandidates, upperLimit, rng), nil
	}
	return nil, fmt.Errorf("unknown player %q; valid options: %q, %q",
		name, RandomPlayerName, OneMoveScorePlayerName)
}
