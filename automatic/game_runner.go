// Package automatic plays games end to end with a reference policy, for
// benchmarking policies and producing training data.
package automatic

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	aiturnplayer "github.com/domino14/aucteraden/ai/turnplayer"
	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/encoder"
	"github.com/domino14/aucteraden/game"
)

// MaxGameDuration is the number of turns per game kept as training data.
const MaxGameDuration = 20

const TurnLogHeader = "gameID,turn,market,move,chips,deckRemaining,churnScore,projected\n"

// GameResult is the outcome of one autoplayed game.
type GameResult struct {
	GameID      int
	Seeds       GameSeeds
	Score       int
	Turns       int
	Churns      int
	CardsPlaced int
	Hash        uint64
	Moves       []string

	// Features and Labels are only filled in when recording training data.
	// They hold MaxGameDuration encoded turns each, zero-padded.
	Features []float32
	Labels   []float32
}

// GameRunner plays games one at a time. It is not safe for concurrent use;
// give each worker its own.
type GameRunner struct {
	deckType      decktet.DeckType
	playerName    string
	maxCandidates int
	upperLimit    int
	record        bool
	logchan       chan string
}

// NewGameRunner builds a runner from the config. logchan may be nil.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	return &GameRunner{
		deckType:      decktet.DeckType(cfg.GetString(config.ConfigDeck)),
		playerName:    cfg.GetString(config.ConfigPlayer),
		maxCandidates: cfg.GetInt(config.ConfigMaxCandidates),
		upperLimit:    cfg.GetInt(config.ConfigUpperLimit),
		record:        cfg.GetString(config.ConfigTrainingPrefix) != "",
		logchan:       logchan,
	}
}

// PlayGame plays one game to the end.
func (r *GameRunner) PlayGame(gameID int, seeds GameSeeds) (*GameResult, error) {
	g, err := game.NewGame(r.deckType, decktet.NewRNG(seeds.Deck))
	if err != nil {
		return nil, err
	}
	player, err := aiturnplayer.NewPlayer(r.playerName, r.maxCandidates, r.upperLimit,
		decktet.NewRNG(seeds.Policy))
	if err != nil {
		return nil, err
	}
	res := &GameResult{GameID: gameID, Seeds: seeds}
	if r.record {
		res.Features = make([]float32, MaxGameDuration*encoder.BoardVecLen)
		res.Labels = make([]float32, MaxGameDuration*encoder.MoveVecLen)
	}

	for !g.IsOver() {
		turn := g.Turn()
		m := player.ChooseMove(g)
		if r.record && turn < MaxGameDuration {
			encoder.EncodeBoardInto(g.Board(), res.Features[turn*encoder.BoardVecLen:])
			encoder.EncodeMoveInto(m, res.Labels[turn*encoder.MoveVecLen:])
		}
		market := marketString(g)
		g, err = g.Play(m)
		if err != nil {
			// The policies only offer validated moves.
			return nil, fmt.Errorf("game %d turn %d: policy %v: %w", gameID, turn, player.Name(), err)
		}
		if m.IsChurn() {
			res.Churns++
		}
		res.Moves = append(res.Moves, m.ShortDescription())
		if r.logchan != nil {
			b := g.Board()
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v\n",
				gameID,
				turn,
				market,
				m.ShortDescription(),
				chipsString(g),
				b.CardsRemaining(),
				b.Score(),
				g.CalculateScore().Total)
		}
	}
	if r.record && g.Turn() > MaxGameDuration {
		log.Debug().Int("game", gameID).Int("turns", g.Turn()).Msg("training-data-truncated")
	}
	res.Score = g.CalculateScore().Total
	res.Turns = g.Turn()
	res.CardsPlaced = g.Board().CardsPlaced()
	res.Hash = g.Board().Hash()
	return res, nil
}

func marketString(g *game.GameState) string {
	ids := lo.Map(g.Board().Market(), func(c *decktet.Card, _ int) string { return c.ID() })
	return strings.Join(ids, " ")
}

func chipsString(g *game.GameState) string {
	var sb strings.Builder
	for _, s := range decktet.AllSuits {
		fmt.Fprintf(&sb, "%c%d", s.Letter(), g.Board().ChipsFor(s))
	}
	return sb.String()
}
