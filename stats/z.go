package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal is the two-sided critical value of the standard normal for a
// confidence level given in percent, e.g. 1.96 for 95.
func ZVal(confidencePct float64) float64 {
	if confidencePct <= 0 || confidencePct >= 100 {
		panic("confidence level must be inside (0, 100)")
	}
	return distuv.UnitNormal.Quantile(0.5 + confidencePct/200)
}
