package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

var ErrNoCandidate = errors.New("optim: no grid point produced a finite objective")

// Objective scores one grid point; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch exhaustively scores the cartesian product of ranges.
type GridSearch struct {
	// Workers bounds concurrent objective calls; values below 1 mean 1.
	Workers int

	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search evaluates every grid point, Workers at a time, and returns the one
// with the smallest objective. Points whose objective fails or is not finite
// are skipped. Ties go to the point enumerated first.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	var points []map[string]float64
	g.enumerate(0, make(map[string]float64), &points)

	values := make([]float64, len(points))
	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, p := range points {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, 0, err
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(idx int, params map[string]float64) {
			defer wg.Done()
			defer func() { <-sem }()

			val, err := objective(ctx, params)
			if err != nil {
				val = math.NaN()
			}
			values[idx] = val
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	best := math.Inf(1)
	bestIdx := -1
	for i, val := range values {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		if val < best {
			best, bestIdx = val, i
		}
	}
	if bestIdx < 0 {
		return nil, 0, ErrNoCandidate
	}
	return points[bestIdx], best, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.enumerate(depth+1, newParams, out)
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
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
