package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestRunningMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{-95, -40, -110, -62} {
		s.Push(v)
	}
	is.Equal(s.Min(), -110.0)
	is.Equal(s.Max(), -40.0)
	is.Equal(s.Last(), -62.0)
	is.Equal(s.Iterations(), 4)
	is.True(s.ConfidenceInterval(95) > 0)
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.Panics(t, func() { ZVal(100) })
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	scores := []float64{10, 12, 23, 23, 16, 23, 21, 16}
	s := Summarize(scores)
	is.Equal(s.Games, 8)
	is.True(FuzzyEqual(s.Mean, 18))
	is.True(FuzzyEqual(s.Stdev, 5.2372293656638))
	is.Equal(s.Min, 10.0)
	is.Equal(s.Max, 23.0)
	is.Equal(s.Best, 2)
	// input untouched
	is.Equal(scores[0], 10.0)

	var buf bytes.Buffer
	is.NoErr(s.Fprint(&buf))
	is.True(strings.Contains(buf.String(), "Games: 8"))
	is.True(strings.Contains(buf.String(), "Max: 23 (game 2)"))
}

func TestSummarizeEmpty(t *testing.T) {
	is := is.New(t)
	s := Summarize(nil)
	is.Equal(s.Games, 0)
	is.Equal(s.Best, -1)
	var buf bytes.Buffer
	is.NoErr(s.Fprint(&buf))
}
