package ils

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/rng"
)

// MultiStart runs trials independent Shell trials concurrently, each with
// its own RNG stream derived from baseSeed (§4.7: "a parallel
// implementation must ensure each worker owns its own random generator and
// solution storage"), and returns the lexicographically best feasible
// result. If no trial produces a feasible result, the best (by score,
// regardless of feasibility) trial is returned instead.
func MultiStart(ctx context.Context, opts Options, inst *model.Instance, initial *model.Solution, baseSeed int64, trials int) Result {
	results := make([]Result, trials)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < trials; t++ {
		t := t
		g.Go(func() error {
			workerRNG := rng.Derive(baseSeed, uint64(t))
			shell := NewShell(opts)
			results[t] = shell.Run(gctx, inst, initial.Clone(), workerRNG)
			return nil
		})
	}
	_ = g.Wait()

	return bestOf(results)
}

// bestOf returns the lexicographically best feasible result among
// results, falling back to the overall best-scoring result if none are
// feasible.
func bestOf(results []Result) Result {
	var bestFeasible *Result
	var bestAny *Result

	for i := range results {
		res := &results[i]
		if bestAny == nil || better(*res, *bestAny) {
			bestAny = res
		}
		if res.Feasible && (bestFeasible == nil || better(*res, *bestFeasible)) {
			bestFeasible = res
		}
	}

	if bestFeasible != nil {
		return *bestFeasible
	}
	return *bestAny
}

func better(a, b Result) bool {
	if a.Vehicles != b.Vehicles {
		return a.Vehicles < b.Vehicles
	}
	return a.Distance < b.Distance
}
