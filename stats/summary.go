package stats

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

const histogramBins = 15

// Summary describes a finished batch of game scores.
type Summary struct {
	Games  int
	Mean   float64
	Stdev  float64
	Median float64
	Min    float64
	Max    float64
	Best   int // index of the first game reaching Max
	CI95   float64

	scores []float64
}

// Summarize computes the summary of scores, which it does not modify.
func Summarize(scores []float64) *Summary {
	s := &Summary{Games: len(scores), Best: -1}
	if len(scores) == 0 {
		return s
	}
	s.scores = slices.Clone(scores)
	s.Mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.Stdev = stat.StdDev(scores, nil)
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.Best = slices.Index(scores, s.Max)
	s.CI95 = ZVal(95) * s.Stdev / math.Sqrt(float64(len(scores)))
	return s
}

// Fprint writes the summary and a score histogram to w.
func (s *Summary) Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Games: %d\nMean score: %.2f ± %.2f (95%%)\nStdev: %.2f\n"+
		"Median: %.1f\nMin: %.0f\nMax: %.0f (game %d)\n",
		s.Games, s.Mean, s.CI95, s.Stdev, s.Median, s.Min, s.Max, s.Best)
	if err != nil || len(s.scores) == 0 {
		return err
	}
	if _, err = fmt.Fprintln(w); err != nil {
		return err
	}
	h := histogram.Hist(histogramBins, s.scores)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
