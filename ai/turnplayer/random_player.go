package turnplayer

import (
	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/movegen"
)

// RandomPlayer picks uniformly among every valid buy.
type RandomPlayer struct {
	gen *movegen.Generator
	rng RandSource
}

func NewRandomPlayer(rng RandSource) *RandomPlayer {
	return &RandomPlayer{gen: movegen.NewGenerator(), rng: rng}
}

func (p *RandomPlayer) GenerateMoves(g *game.GameState) []*move.Move {
	return p.gen.GenAll(g.Board())
}

func (p *RandomPlayer) ChooseMove(g *game.GameState) *move.Move {
	plays := p.GenerateMoves(g)
	if len(plays) == 0 {
		return move.NewChurnMove()
	}
	return plays[p.rng.Intn(len(plays))]
}

func (p *RandomPlayer) Name() string {
	return RandomPlayerName
}
