package metrics

import (
	"sort"

	"github.com/san-kum/rovsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one column of a run.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

func Summarize(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, dynamo.ErrNoSamples
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(xs) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	} else {
		s.Mean = xs[0]
	}
	return s, nil
}

// Errors returns setpoint minus depth for every sample of a run.
func Errors(res *dynamo.Result) []float64 {
	out := make([]float64, len(res.Samples))
	for i, s := range res.Samples {
		out[i] = s.Error()
	}
	return out
}

// Standard is the metric set reported for every headless run.
func Standard(dt, maxThrust float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewIAE(dt),
		NewISE(dt),
		NewOvershoot(),
		NewSettlingTime(0.02),
		NewStability(0.1),
		NewControlEffort(),
		NewSaturation(maxThrust),
	}
}
