package abundance

import (
	"github.com/montanaflynn/stats"
)

// Summary describes an aggregated abundance vector.
type Summary struct {
	Max     float64
	Mean    float64
	P99     float64
	NonZero int
	Regions int
}

// Summarize computes a Summary. An empty vector gives the zero Summary.
func Summarize(v []float64) Summary {
	out := Summary{Regions: len(v)}
	if len(v) == 0 {
		return out
	}

	data := stats.LoadRawData(v)

	// These only fail on empty input, which is handled above
	out.Max, _ = stats.Max(data)
	out.Mean, _ = stats.Mean(data)
	out.P99, _ = stats.Percentile(data, 99)

	for _, x := range v {
		if x != 0 {
			out.NonZero++
		}
	}

	return out
}

// AutoScale returns the scale at which the largest entry of v reaches full
// opacity. If v has no positive entries the scale is 1.
func AutoScale(v []float64) float64 {
	s := Summarize(v)
	if s.Max <= 0 {
		return 1
	}

	return 1 / s.Max
}
