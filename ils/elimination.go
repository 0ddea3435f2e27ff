package ils

import (
	"context"
	"math/rand"

	"github.com/nodewise/pdptw/lns"
	"github.com/nodewise/pdptw/model"
)

// eliminationRegretM is the regret width used by direct route elimination,
// fixed at 2 per §4.6 ("reinsert them ... using a regret-2 strategy").
const eliminationRegretM = 2

// EliminateRoutes repeatedly empties the smallest active route and
// reinserts its pairs elsewhere via regret-2 repair, stopping as soon as a
// reinsertion attempt fails or leaves the solution infeasible (the failed
// attempt is discarded and the last good solution is returned), or when
// only one route remains, or ctx's deadline passes.
func EliminateRoutes(ctx context.Context, inst *model.Instance, sol *model.Solution, r *rand.Rand) *model.Solution {
	working := sol.Clone()

	for {
		select {
		case <-ctx.Done():
			return working
		default:
		}

		working.Compact()
		if len(working.Routes) < 2 {
			return working
		}

		smallest := smallestRoute(working.Routes)
		pairs := extractPairs(inst, working.Routes[smallest])

		without := without(working, smallest)
		candidate := lns.RegretRepair(inst, without, pairs, eliminationRegretM, r)

		if !quickFeasible(inst, candidate) {
			return working
		}
		if candidate.NumVehicles() >= working.NumVehicles() {
			// Reinsertion did not actually shed a vehicle; stop rather than
			// spin reinserting into the same shape repeatedly.
			return working
		}

		working = candidate
	}
}

// smallestRoute returns the index of the shortest non-empty route.
func smallestRoute(routes []model.Route) int {
	best := 0
	for i, r := range routes {
		if len(r) < len(routes[best]) {
			best = i
		}
	}
	return best
}

// extractPairs returns the (pickup, delivery) pairs present in route, each
// pickup paired with its delivery via the instance's node metadata.
func extractPairs(inst *model.Instance, route model.Route) []lns.Pair {
	var pairs []lns.Pair
	for _, v := range route {
		node := inst.Nodes[v]
		if node.IsPickup() {
			pairs = append(pairs, lns.Pair{v, node.Pair})
		}
	}
	return pairs
}

// without returns a clone of sol with routes[idx] dropped entirely.
func without(sol *model.Solution, idx int) *model.Solution {
	out := sol.Clone()
	out.Routes = append(out.Routes[:idx], out.Routes[idx+1:]...)
	return out
}
