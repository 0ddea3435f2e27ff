package lns

import (
	"context"
	"math/rand"
	"time"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/localsearch"
	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/rng"
	"github.com/nodewise/pdptw/routeops"
)

// AcceptanceKind selects which acceptance criterion the engine builds.
// This is the tagged-variant the spec calls for in place of subclassing
// (§9): LAHC is the intended pair-level core, SA is the documented
// alternative (§4.5, §9 Open Questions).
type AcceptanceKind int

const (
	// LAHCAcceptance selects the non-parametric LAHC criterion.
	LAHCAcceptance AcceptanceKind = iota
	// SAAcceptance selects the vehicles-first simulated-annealing criterion.
	SAAcceptance
)

// Options configures one LNS run.
type Options struct {
	KMin, KMax        int // destroy-size range, §4.5 defaults 10..60 for N=100
	Acceptance        AcceptanceKind
	LAHCLength        int
	SAAlpha           float64
	Adaptive          bool // adaptive roulette operator weighting vs static round-robin
	LocalSearchEvery  int  // invoke the local-search driver every this many iterations
	MaxIterations     int
	LocalSearchBudget time.Duration // sub-budget given to each local-search driver invocation
}

// DefaultOptions returns the defaults named in §4.5 for a ~100-node
// instance.
func DefaultOptions() Options {
	return Options{
		KMin:              10,
		KMax:              60,
		Acceptance:        LAHCAcceptance,
		LAHCLength:        DefaultLAHCLength,
		SAAlpha:           DefaultSAAlpha,
		Adaptive:          false,
		LocalSearchEvery:  25,
		MaxIterations:     2000,
		LocalSearchBudget: 200 * time.Millisecond,
	}
}

// destroyKind and repairKind name the operator pool entries; runDestroy and
// runRepair dispatch on the kind with a plain switch (weights[i] holds the
// adaptive score of kind i), not through subclasses (§9 design note).
type destroyKind int

const (
	destroyRandom destroyKind = iota
	destroyShaw
	destroyWorst
	numDestroyKinds
)

type repairKind int

const (
	repairGreedy repairKind = iota
	repairRegret
	numRepairKinds
)

// operatorWeights tracks adaptive roulette scores for one operator pool;
// a static engine simply keeps every weight equal and round-robins.
type operatorWeights struct {
	scores []float64
}

func newOperatorWeights(n int) *operatorWeights {
	w := &operatorWeights{scores: make([]float64, n)}
	for i := range w.scores {
		w.scores[i] = 1
	}
	return w
}

func (w *operatorWeights) reward(i int) { w.scores[i] += 1 }
func (w *operatorWeights) decay(i int)  { w.scores[i] *= 0.99 }

func (w *operatorWeights) roulette(r *rand.Rand) int {
	total := 0.0
	for _, s := range w.scores {
		total += s
	}
	pick := r.Float64() * total
	acc := 0.0
	for i, s := range w.scores {
		acc += s
		if pick <= acc {
			return i
		}
	}
	return len(w.scores) - 1
}

// Engine runs the destroy-repair loop of §4.5 over pickup/delivery pairs.
type Engine struct {
	Opts Options

	destroyWeights *operatorWeights
	repairWeights  *operatorWeights
	roundRobinD    int
	roundRobinR    int
}

// NewEngine returns an Engine configured with opts.
func NewEngine(opts Options) *Engine {
	return &Engine{
		Opts:           opts,
		destroyWeights: newOperatorWeights(int(numDestroyKinds)),
		repairWeights:  newOperatorWeights(int(numRepairKinds)),
	}
}

func (e *Engine) selectDestroy(r *rand.Rand) destroyKind {
	if e.Opts.Adaptive {
		return destroyKind(e.destroyWeights.roulette(r))
	}
	k := destroyKind(e.roundRobinD % int(numDestroyKinds))
	e.roundRobinD++
	return k
}

func (e *Engine) selectRepair(r *rand.Rand) repairKind {
	if e.Opts.Adaptive {
		return repairKind(e.repairWeights.roulette(r))
	}
	k := repairKind(e.roundRobinR % int(numRepairKinds))
	e.roundRobinR++
	return k
}

func (e *Engine) runDestroy(kind destroyKind, inst *model.Instance, sol *model.Solution, k int, r *rand.Rand) (*model.Solution, []Pair) {
	switch kind {
	case destroyShaw:
		return ShawRemoval(inst, sol, k, r)
	case destroyWorst:
		return WorstRemoval(inst, sol, k)
	default:
		return RandomRemoval(inst, sol, k, r)
	}
}

func (e *Engine) runRepair(kind repairKind, inst *model.Instance, working *model.Solution, removed []Pair, r *rand.Rand) *model.Solution {
	switch kind {
	case repairRegret:
		m := rng.IntRange(r, 2, 5)
		return RegretRepair(inst, working, removed, m, r)
	default:
		return GreedyRepair(inst, working, removed, r)
	}
}

func newAcceptance(opts Options, initialScore model.Score, r *rand.Rand, deadline time.Duration) Acceptance {
	var acc Acceptance
	switch opts.Acceptance {
	case SAAcceptance:
		acc = NewSAVehiclesFirst(opts.SAAlpha, deadline, r)
	default:
		acc = NewLAHC(opts.LAHCLength)
	}
	acc.Init(initialScore)
	return acc
}

// Run executes the destroy-repair loop starting from sol, returning the
// best feasible solution found (which may be sol itself if no improving,
// feasible candidate is ever accepted). When sol is infeasible, the first
// feasible candidate replaces it as best regardless of score; if no
// feasible candidate is found, sol is returned. ctx bounds the wall-clock
// budget; the loop checks it at the top of every iteration (§5).
func (e *Engine) Run(ctx context.Context, inst *model.Instance, sol *model.Solution, r *rand.Rand) *model.Solution {
	current := sol.Clone()
	best := sol.Clone()
	bestScore := routeops.Score(inst, best)
	bestFeasible, _ := feasibility.Check(inst, best)

	deadline, hasDeadline := ctx.Deadline()
	var budget time.Duration
	if hasDeadline {
		budget = time.Until(deadline)
	}

	acc := newAcceptance(e.Opts, bestScore, r, budget)

	for it := 0; it < e.Opts.MaxIterations; it++ {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		k := rng.IntRange(r, e.Opts.KMin, e.Opts.KMax)
		dKind := e.selectDestroy(r)
		working, removed := e.runDestroy(dKind, inst, current, k, r)
		if len(removed) == 0 {
			continue
		}

		rKind := e.selectRepair(r)
		candidate := e.runRepair(rKind, inst, working, removed, r)

		feasible, _ := feasibility.Check(inst, candidate)
		if !feasible {
			if e.Opts.Adaptive {
				e.destroyWeights.decay(int(dKind))
				e.repairWeights.decay(int(rKind))
			}
			continue
		}

		candidateScore := routeops.Score(inst, candidate)
		improved := candidateScore.Less(bestScore) || !bestFeasible

		if acc.ShouldAccept(candidateScore, routeops.Score(inst, current)) {
			current = candidate
			if e.Opts.Adaptive {
				if improved {
					e.destroyWeights.reward(int(dKind))
					e.repairWeights.reward(int(rKind))
				} else {
					e.destroyWeights.decay(int(dKind))
					e.repairWeights.decay(int(rKind))
				}
			}
		} else if e.Opts.Adaptive {
			e.destroyWeights.decay(int(dKind))
			e.repairWeights.decay(int(rKind))
		}

		if improved {
			best = candidate.Clone()
			bestScore = candidateScore
			bestFeasible = true
		}

		if e.Opts.LocalSearchEvery > 0 && it%e.Opts.LocalSearchEvery == 0 {
			lsCtx, cancel := context.WithTimeout(ctx, e.Opts.LocalSearchBudget)
			localsearch.Driver(lsCtx, inst, current)
			cancel()
			if ok, _ := feasibility.Check(inst, current); !ok {
				// Local search must never hand back an infeasible state;
				// if it somehow did, revert to the pre-polish candidate.
				current = candidate
			}
			s := routeops.Score(inst, current)
			if s.Less(bestScore) {
				best = current.Clone()
				bestScore = s
			}
		}
	}

	return best
}
