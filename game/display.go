package game

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board followed by the turn, the churn score,
// the projected final score and the last move.
func (g *GameState) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	fmt.Fprintf(&sb, "Turn %d    Churn score: %d    Projected: %d\n",
		g.turn, g.board.Score(), g.board.CalculateScore().Total)
	if g.lastMove != nil {
		fmt.Fprintf(&sb, "Last move: %s\n", g.lastMove.ShortDescription())
	}
	if g.IsOver() {
		sb.WriteString("Game over.\n")
	}
	return sb.String()
}

func (g *GameState) String() string {
	return g.ToDisplayText()
}
