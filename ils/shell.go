package ils

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/lns"
	"github.com/nodewise/pdptw/localsearch"
	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/routeops"
)

// Options configures one Shell run (§4.7).
type Options struct {
	MaxIterations         int
	NoImprovementLimit    int
	PerturbIntensity      int
	LNSIterationFraction  float64 // α: fraction of LNS.MaxIterations run per outer iteration
	LNSTimeFraction       float64 // β: fraction of the remaining wall-clock budget given to LNS
	AGESTimeBudget        time.Duration
	EliminationTimeBudget time.Duration
	LocalSearchBudget     time.Duration
	LNS                   lns.Options
	BestKnown             *model.Score // optional, for Result.GapVsBKS
}

// DefaultOptions returns the §4.7 defaults for a single trial.
func DefaultOptions() Options {
	return Options{
		MaxIterations:         500,
		NoImprovementLimit:    100,
		PerturbIntensity:      2,
		LNSIterationFraction:  0.1,
		LNSTimeFraction:       0.2,
		AGESTimeBudget:        100 * time.Millisecond,
		EliminationTimeBudget: 100 * time.Millisecond,
		LocalSearchBudget:     100 * time.Millisecond,
		LNS:                   lns.DefaultOptions(),
	}
}

// Result reports the outcome of one trial (§4.7, §6).
type Result struct {
	Vehicles   int
	Distance   float64
	Feasible   bool
	Runtime    time.Duration
	GapVsBKS   float64 // (distance - BKS.distance) / BKS.distance; 0 if BestKnown is nil
	Solution   *model.Solution
	Iterations int
}

// Shell drives the outer iterated local search loop of §4.7 starting from
// an initial (not necessarily feasible) solution.
type Shell struct {
	Opts Options
}

// NewShell returns a Shell configured with opts.
func NewShell(opts Options) *Shell {
	return &Shell{Opts: opts}
}

// Run executes the outer loop until MaxIterations, ctx's deadline, or
// NoImprovementLimit consecutive non-improving iterations is reached.
// initial is repaired with a best-effort LNS pass first if it is not
// already feasible (the caller-run repair described in SPEC_FULL §4.3).
func (s *Shell) Run(ctx context.Context, inst *model.Instance, initial *model.Solution, r *rand.Rand) Result {
	start := time.Now()

	current := initial.Clone()
	if ok, _ := feasibility.Check(inst, current); !ok {
		engine := lns.NewEngine(s.Opts.LNS)
		current = engine.Run(ctx, inst, current, r)
	}

	best := current.Clone()
	bestScore := routeops.Score(inst, best)
	noImprovement := 0
	iterations := 0

	for iterations < s.Opts.MaxIterations && noImprovement < s.Opts.NoImprovementLimit {
		select {
		case <-ctx.Done():
			return s.result(inst, best, start, iterations, true)
		default:
		}
		iterations++

		preIteration := current.Clone()

		agesCtx, cancelAges := context.WithTimeout(ctx, s.Opts.AGESTimeBudget)
		current = AGESMerge(agesCtx, inst, current, r)
		cancelAges()

		elimCtx, cancelElim := context.WithTimeout(ctx, s.Opts.EliminationTimeBudget)
		current = EliminateRoutes(elimCtx, inst, current, r)
		cancelElim()

		lnsOpts := s.Opts.LNS
		lnsOpts.MaxIterations = maxInt(1, int(float64(lnsOpts.MaxIterations)*s.Opts.LNSIterationFraction))
		lnsBudget := time.Duration(float64(timeRemaining(ctx)) * s.Opts.LNSTimeFraction)
		lnsCtx, cancelLNS := context.WithTimeout(ctx, lnsBudget)
		engine := lns.NewEngine(lnsOpts)
		current = engine.Run(lnsCtx, inst, current, r)
		cancelLNS()

		lsCtx, cancelLS := context.WithTimeout(ctx, s.Opts.LocalSearchBudget)
		localsearch.Driver(lsCtx, inst, current)
		cancelLS()

		if ok, _ := feasibility.Check(inst, current); !ok {
			current = preIteration
			noImprovement++
			continue
		}

		candidateScore := routeops.Score(inst, current)
		if candidateScore.Less(bestScore) {
			best = current.Clone()
			bestScore = candidateScore
			noImprovement = 0
		} else {
			noImprovement++
		}

		perturbed := Perturb(inst, current, s.Opts.PerturbIntensity, r)
		if ok, _ := feasibility.Check(inst, perturbed); ok {
			current = perturbed
		}
	}

	return s.result(inst, best, start, iterations, false)
}

func (s *Shell) result(inst *model.Instance, best *model.Solution, start time.Time, iterations int, timedOut bool) Result {
	score := routeops.Score(inst, best)
	feasible, violations := feasibility.Check(inst, best)
	if !feasible {
		log.Printf("pdptw: %s: reported best solution failed the final feasibility check: %v", inst.Name, violations)
	}

	gap := 0.0
	if s.Opts.BestKnown != nil && s.Opts.BestKnown.Distance > 0 {
		gap = (score.Distance - s.Opts.BestKnown.Distance) / s.Opts.BestKnown.Distance
	}

	return Result{
		Vehicles:   score.Vehicles,
		Distance:   score.Distance,
		Feasible:   feasible,
		Runtime:    time.Since(start),
		GapVsBKS:   gap,
		Solution:   best,
		Iterations: iterations,
	}
}

func timeRemaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return time.Minute
	}
	remaining := time.Until(deadline)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
