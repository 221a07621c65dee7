package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/aucteraden/stats"
)

// AnalyzeLogFile reads a turn log written by StartCompVCompGames and
// reports score and churn statistics. A game's score is the projected
// score on its last logged turn.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,market,move,chips,deckRemaining,churnScore,projected

	type gameLine struct {
		lastTurn  int
		projected int
		churns    int
	}
	games := map[int]*gameLine{}
	order := []int{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return "", err
		}
		turn, err := strconv.Atoi(record[1])
		if err != nil {
			return "", err
		}
		projected, err := strconv.Atoi(record[7])
		if err != nil {
			return "", err
		}
		gl, ok := games[id]
		if !ok {
			gl = &gameLine{lastTurn: -1}
			games[id] = gl
			order = append(order, id)
		}
		if turn > gl.lastTurn {
			gl.lastTurn = turn
			gl.projected = projected
		}
		if record[3] == "churn" {
			gl.churns++
		}
	}

	scoreStats := &stats.Statistic{}
	churnStats := &stats.Statistic{}
	turnStats := &stats.Statistic{}
	for _, id := range order {
		gl := games[id]
		scoreStats.Push(float64(gl.projected))
		churnStats.Push(float64(gl.churns))
		turnStats.Push(float64(gl.lastTurn + 1))
	}

	out := fmt.Sprintf("Games played: %d\n", scoreStats.Iterations())
	out += fmt.Sprintf("Mean Score: %.6f  Stdev: %.6f  95%% CI: ±%.3f\n",
		scoreStats.Mean(), scoreStats.Stdev(), scoreStats.ConfidenceInterval(95))
	out += fmt.Sprintf("Best Score: %.0f  Worst Score: %.0f\n", scoreStats.Max(), scoreStats.Min())
	out += fmt.Sprintf("Mean Turns: %.3f  Mean Churns: %.3f\n", turnStats.Mean(), churnStats.Mean())
	return out, nil
}
