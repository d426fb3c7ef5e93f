package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/experiment"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// GridSearch evaluates every combination of the parameter ranges and
// keeps the one with the lowest metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: runtime.NumCPU()}
}

// SetWorkers limits how many runs execute at once.
func (g *GridSearch) SetWorkers(n int) {
	if n > 0 {
		g.workers = n
	}
}

// Size is the number of combinations in the grid.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// point decodes combination i, last parameter varying fastest.
func (g *GridSearch) point(i int) map[string]float64 {
	p := make(map[string]float64, len(g.paramNames))
	for d := len(g.paramNames) - 1; d >= 0; d-- {
		r := g.ranges[d]
		p[g.paramNames[d]] = r[i%len(r)]
		i /= len(r)
	}
	return p
}

// Search runs buildExperiment for every grid point and returns the best
// parameters, their score, and every trial in grid order. A point whose
// experiment fails is recorded with its error and skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	n := g.Size()
	if n == 0 {
		return nil, 0, nil, errors.New("empty search grid")
	}

	trials := make([]Trial, n)
	err := dynamo.ForEach(ctx, n, g.workers, func(ctx context.Context, i int) error {
		params := g.point(i)
		trials[i] = Trial{Params: params, Score: math.Inf(1)}

		exp, err := buildExperiment(params)
		if err != nil {
			trials[i].Err = err
			return nil
		}
		res, err := exp.Run(ctx)
		if err != nil {
			trials[i].Err = err
			return nil
		}
		val, ok := res.Metrics[metricName]
		if !ok {
			trials[i].Err = fmt.Errorf("metric %s not reported", metricName)
			return nil
		}
		trials[i].Score = val
		return nil
	})
	if err != nil {
		return nil, 0, trials, err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for _, t := range trials {
		if t.Err == nil && (bestParams == nil || t.Score < best) {
			best = t.Score
			bestParams = t.Params
		}
	}
	if bestParams == nil {
		return nil, 0, trials, fmt.Errorf("no grid point produced %s: %w", metricName, trials[0].Err)
	}
	return bestParams, best, trials, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// SortedNames returns the keys of params in order, for stable printing.
func SortedNames(params map[string]float64) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
