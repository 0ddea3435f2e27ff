package lns

import (
	"math"
	"math/rand"

	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/rng"
	"github.com/nodewise/pdptw/routeops"
)

// newRoutePenalty is the large additive cost applied when a removed pair
// can only be placed by opening a fresh route, discouraging the repair
// pass from growing the fleet just to make insertion cheap (§4.5).
const newRoutePenalty = 100000.0

// placement names where a pair would land: an existing route position, or
// a brand new route.
type placement struct {
	routeIdx  int // -1 means "open a new route"
	i, j      int
	cost      float64
	penalized float64 // cost including newRoutePenalty when routeIdx == -1
}

// bestPlacement searches every existing route plus the "open a new
// route" option and returns the cheapest feasible placement for (p, d).
func bestPlacement(inst *model.Instance, sol *model.Solution, p, d int) (placement, bool) {
	best := placement{routeIdx: -2}
	found := false

	for ridx, route := range sol.Routes {
		i, j, cost, ok := routeops.BestInsertion(inst, route, p, d)
		if !ok {
			continue
		}
		if !found || cost < best.penalized {
			found = true
			best = placement{routeIdx: ridx, i: i, j: j, cost: cost, penalized: cost}
		}
	}

	newCost := routeops.NewRouteCost(inst, p, d) + newRoutePenalty
	if !found || newCost < best.penalized {
		found = true
		best = placement{routeIdx: -1, cost: routeops.NewRouteCost(inst, p, d), penalized: newCost}
	}

	return best, found
}

func apply(sol *model.Solution, p, d int, pl placement) {
	if pl.routeIdx == -1 {
		sol.Routes = append(sol.Routes, model.Route{p, d})
		return
	}
	sol.Routes[pl.routeIdx] = routeops.InsertPair(sol.Routes[pl.routeIdx], p, d, pl.i, pl.j)
}

// GreedyRepair inserts every removed pair at its single cheapest feasible
// position across all routes, opening a new (penalized) route when no
// existing route can take it.
func GreedyRepair(inst *model.Instance, working *model.Solution, removed []Pair, r *rand.Rand) *model.Solution {
	sol := working.Clone()
	order := rng.PermRange(len(removed), r)

	for _, idx := range order {
		pr := removed[idx]
		pl, ok := bestPlacement(inst, sol, pr[0], pr[1])
		if !ok {
			continue
		}
		apply(sol, pr[0], pr[1], pl)
	}
	return sol
}

// RegretRepair implements regret-m insertion: for each unrouted pair it
// computes the best and m-th best feasible insertion cost (across
// existing routes and the open-a-new-route option) and, each round,
// inserts the pair with the largest (cost_m - cost_1) at its best
// position, repeating until every pair is placed.
func RegretRepair(inst *model.Instance, working *model.Solution, removed []Pair, m int, r *rand.Rand) *model.Solution {
	sol := working.Clone()
	pending := append([]Pair(nil), removed...)

	for len(pending) > 0 {
		bestRegretIdx := -1
		var bestPlacementChoice placement
		bestRegret := math.Inf(-1)

		for idx, pr := range pending {
			costs, placements := feasiblePlacementCosts(inst, sol, pr[0], pr[1], m)
			if len(costs) == 0 {
				continue
			}
			kth := len(costs) - 1
			if kth > m-1 {
				kth = m - 1
			}
			regret := costs[kth] - costs[0]
			if regret > bestRegret {
				bestRegret = regret
				bestRegretIdx = idx
				bestPlacementChoice = placements[0]
			}
		}

		if bestRegretIdx < 0 {
			// No pair has any feasible placement (should not happen once
			// the open-a-new-route fallback is counted, but guard anyway).
			break
		}

		pr := pending[bestRegretIdx]
		apply(sol, pr[0], pr[1], bestPlacementChoice)
		pending = append(pending[:bestRegretIdx], pending[bestRegretIdx+1:]...)
	}

	return sol
}

// feasiblePlacementCosts returns up to m feasible placement costs for
// (p, d) across all existing routes plus the open-a-new-route option,
// sorted ascending, together with the placements in the same order.
func feasiblePlacementCosts(inst *model.Instance, sol *model.Solution, p, d, m int) ([]float64, []placement) {
	var all []placement
	for ridx, route := range sol.Routes {
		i, j, cost, ok := routeops.BestInsertion(inst, route, p, d)
		if !ok {
			continue
		}
		all = append(all, placement{routeIdx: ridx, i: i, j: j, cost: cost, penalized: cost})
	}
	all = append(all, placement{
		routeIdx:  -1,
		cost:      routeops.NewRouteCost(inst, p, d),
		penalized: routeops.NewRouteCost(inst, p, d) + newRoutePenalty,
	})

	// insertion sort by penalized cost ascending; route counts per
	// instance are small enough that this beats pulling in sort for m<=5.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].penalized < all[j-1].penalized; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}

	if len(all) > m {
		all = all[:m]
	}
	costs := make([]float64, len(all))
	for i, pl := range all {
		costs[i] = pl.penalized
	}
	return costs, all
}

