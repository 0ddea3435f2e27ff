// Package construct produces an initial solution from scratch: the
// Clarke-Wright savings merge and the greedy-insertion fallback, plus the
// factory that picks between them. Construction never calls back into the
// optimization layer; if neither heuristic yields a feasible solution the
// factory returns its best effort tagged infeasible and leaves repair to
// the caller (the ILS shell runs a bounded LNS repair pass, per §4.3/§7).
package construct

import (
	"math/rand"
	"sort"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/routeops"
)

// Method names a constructive heuristic. This sum type stands in for the
// source's ConstructionHeuristic base class with GreedyInsertion /
// ClarkeWrightPDPTW / NearestNeighbor subclasses: a tagged variant instead
// of deep inheritance (§9 design note).
type Method int

const (
	// ClarkeWrightMethod runs the savings merge (see ClarkeWright).
	ClarkeWrightMethod Method = iota
	// GreedyMethod runs cheapest-feasible-insertion (see GreedyInsertion).
	GreedyMethod
)

// Result is the outcome of a construction attempt.
type Result struct {
	Solution *model.Solution
	Feasible bool
	Method   Method
}

// targetRouteCount is the rough vehicle-count target the factory steers
// toward, per §4.3: max(5, pairs/5).
func targetRouteCount(numPairs int) int {
	t := numPairs / 5
	if t < 5 {
		t = 5
	}
	return t
}

// Construct runs both heuristics and returns the feasible result closer
// to the target route count; if only one is feasible, that one wins; if
// neither is feasible, Clarke-Wright's best effort is returned (it is
// deterministic and typically closer to feasible on benchmark instances).
func Construct(inst *model.Instance, rng *rand.Rand) Result {
	cw := ClarkeWright(inst)
	gi := GreedyInsertion(inst, rng)

	target := targetRouteCount(len(inst.Pairs()))

	cwFeasible, _ := feasibility.Check(inst, cw)
	giFeasible, _ := feasibility.Check(inst, gi)

	switch {
	case cwFeasible && !giFeasible:
		return Result{Solution: cw, Feasible: true, Method: ClarkeWrightMethod}
	case giFeasible && !cwFeasible:
		return Result{Solution: gi, Feasible: true, Method: GreedyMethod}
	case cwFeasible && giFeasible:
		if abs(cw.NumVehicles()-target) <= abs(gi.NumVehicles()-target) {
			return Result{Solution: cw, Feasible: true, Method: ClarkeWrightMethod}
		}
		return Result{Solution: gi, Feasible: true, Method: GreedyMethod}
	default:
		return Result{Solution: cw, Feasible: false, Method: ClarkeWrightMethod}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GreedyInsertion processes pickup/delivery pairs ordered by pickup ETW,
// inserting each at the cheapest feasible position across all current
// routes; if none is feasible, a new route is opened. It never accepts an
// infeasible insertion (§4.3).
func GreedyInsertion(inst *model.Instance, rng *rand.Rand) *model.Solution {
	pairs := inst.Pairs()
	sort.Slice(pairs, func(i, j int) bool {
		return inst.Nodes[pairs[i][0]].ETW < inst.Nodes[pairs[j][0]].ETW
	})

	sol := model.NewSolution(inst.Name)

	for _, pr := range pairs {
		p, d := pr[0], pr[1]

		bestRoute := -1
		bestI, bestJ := 0, 0
		bestCost := 0.0
		found := false

		for ridx, route := range sol.Routes {
			i, j, cost, ok := routeops.BestInsertion(inst, route, p, d)
			if !ok {
				continue
			}
			if !found || cost < bestCost {
				found = true
				bestRoute, bestI, bestJ, bestCost = ridx, i, j, cost
			}
		}

		if found {
			sol.Routes[bestRoute] = routeops.InsertPair(sol.Routes[bestRoute], p, d, bestI, bestJ)
			continue
		}

		// No feasible insertion anywhere: open a new route.
		sol.Routes = append(sol.Routes, model.Route{p, d})
	}

	return sol
}

// ClarkeWright runs the savings-based route merge: start from one
// two-node route per pair, compute savings for every ordered pair of
// routes, sort descending, and greedily concatenate when the merge stays
// feasible. Starting from [p, d] routes preserves precedence
// automatically (§4.3).
func ClarkeWright(inst *model.Instance) *model.Solution {
	pairs := inst.Pairs()
	routes := make([]model.Route, len(pairs))
	for i, pr := range pairs {
		routes[i] = model.Route{pr[0], pr[1]}
	}

	for {
		savings := computeSavings(inst, routes)
		sort.Slice(savings, func(a, b int) bool { return savings[a].value > savings[b].value })

		merged := false
		for _, s := range savings {
			if s.value <= 0 {
				break
			}
			if routes[s.i] == nil || routes[s.j] == nil {
				continue
			}
			if tryMerge(inst, routes, s.i, s.j) {
				merged = true
				break
			}
		}
		if !merged {
			break
		}
		routes = compactRoutes(routes)
	}

	sol := model.NewSolution(inst.Name)
	sol.Routes = compactRoutes(routes)
	return sol
}

// savingPair is one Clarke-Wright savings candidate: merging route j
// after route i saves `value` in total distance.
type savingPair struct {
	i, j  int
	value float64
}

func computeSavings(inst *model.Instance, routes []model.Route) []savingPair {
	var out []savingPair
	for i := range routes {
		if routes[i] == nil {
			continue
		}
		for j := range routes {
			if i == j || routes[j] == nil {
				continue
			}
			lastI := routes[i][len(routes[i])-1]
			firstJ := routes[j][0]
			s := float64(inst.Travel(lastI, 0)+inst.Travel(0, firstJ)) - float64(inst.Travel(lastI, firstJ))
			if s > 0 {
				out = append(out, savingPair{i, j, s})
			}
		}
	}
	return out
}

// tryMerge attempts to concatenate routes[j] after routes[i] (and, failing
// that, routes[i] after routes[j]); on success the winning route replaces
// i, j is nilled out, and true is returned.
func tryMerge(inst *model.Instance, routes []model.Route, i, j int) bool {
	forward := append(append(model.Route{}, routes[i]...), routes[j]...)
	if routeops.IsFeasibleRoute(inst, forward) {
		routes[i] = forward
		routes[j] = nil
		return true
	}
	backward := append(append(model.Route{}, routes[j]...), routes[i]...)
	if routeops.IsFeasibleRoute(inst, backward) {
		routes[i] = backward
		routes[j] = nil
		return true
	}
	return false
}

func compactRoutes(routes []model.Route) []model.Route {
	out := make([]model.Route, 0, len(routes))
	for _, r := range routes {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
