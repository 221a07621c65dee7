package automatic

import (
	"errors"
	"fmt"
	"os"

	"gorgonia.org/tensor"

	"github.com/domino14/aucteraden/encoder"
)

// WriteTrainingData writes the recorded features and labels of results as
// prefix+"F.npy" with shape (games, MaxGameDuration, 6, 4, 5) and
// prefix+"L.npy" with shape (games, MaxGameDuration, 18).
func WriteTrainingData(prefix string, results []*GameResult) error {
	n := len(results)
	if n == 0 {
		return errors.New("no games to write")
	}
	features := make([]float32, 0, n*MaxGameDuration*encoder.BoardVecLen)
	labels := make([]float32, 0, n*MaxGameDuration*encoder.MoveVecLen)
	for _, r := range results {
		if r.Features == nil {
			return fmt.Errorf("game %d has no recorded training data", r.GameID)
		}
		features = append(features, r.Features...)
		labels = append(labels, r.Labels...)
	}
	ft := tensor.New(tensor.WithShape(n, MaxGameDuration, encoder.NumPlanes, encoder.BoardW, encoder.BoardH),
		tensor.WithBacking(features))
	lt := tensor.New(tensor.WithShape(n, MaxGameDuration, encoder.MoveVecLen),
		tensor.WithBacking(labels))
	if err := writeNpy(prefix+"F.npy", ft); err != nil {
		return err
	}
	return writeNpy(prefix+"L.npy", lt)
}

func writeNpy(path string, t *tensor.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteNpy(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %v: %w", path, err)
	}
	return f.Close()
}
