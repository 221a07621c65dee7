package turnplayer

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/game"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/movegen"
)

// OneMoveScorePlayer looks one move ahead. Walking candidates in
// generation order, it keeps every move whose resulting score is at least
// as good as the best seen so far. Once the grid has a card it stops after
// maxCandidates such moves and picks at random among the last upperLimit;
// on an empty grid it picks among all of them.
type OneMoveScorePlayer struct {
	gen           *movegen.Generator
	rng           RandSource
	maxCandidates int
	upperLimit    int
}

func NewOneMoveScorePlayer(maxCandidates, upperLimit int, rng RandSource) *OneMoveScorePlayer {
	return &OneMoveScorePlayer{
		gen:           movegen.NewGenerator(),
		rng:           rng,
		maxCandidates: maxCandidates,
		upperLimit:    upperLimit,
	}
}

// GenerateMoves returns the improving candidates, worst first.
func (p *OneMoveScorePlayer) GenerateMoves(g *game.GameState) []*move.Move {
	b := g.Board()
	gridEmpty := b.GridEmpty()
	var candidates []*move.Move
	best := 0
	p.gen.Generate(b, func(b *board.Board, m *move.Move) bool {
		score := b.Apply(m).CalculateScore().Total
		if len(candidates) > 0 && score < best {
			return true
		}
		candidates = append(candidates, m)
		best = score
		return gridEmpty || len(candidates) < p.maxCandidates
	})
	log.Trace().Int("candidates", len(candidates)).Int("best", best).Msg("onemove-candidates")
	return candidates
}

func (p *OneMoveScorePlayer) ChooseMove(g *game.GameState) *move.Move {
	candidates := p.GenerateMoves(g)
	if len(candidates) == 0 {
		return move.NewChurnMove()
	}
	if !g.Board().GridEmpty() {
		candidates = lo.Subset(candidates, -p.upperLimit, uint(p.upperLimit))
	}
	return candidates[p.rng.Intn(len(candidates))]
}

func (p *OneMoveScorePlayer) Name() string {
	return OneMoveScorePlayerName
}
