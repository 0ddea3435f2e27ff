// Package routeops computes route distance and searches pair insertions,
// consulted by the constructive heuristics (C4), the local-search
// operators (C5), the LNS engine (C6), and the route-elimination pass.
// It never decides feasibility itself: IsFeasibleRoute and every
// insertion search delegate to feasibility.CheckRoute so there is a
// single arbiter of validity in the whole module.
package routeops

import (
	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/model"
)

// RouteDistance returns the total travel distance of route, including the
// depot-to-first and last-to-depot hops. An empty route costs 0.
func RouteDistance(inst *model.Instance, route model.Route) float64 {
	if len(route) == 0 {
		return 0
	}
	var total int64
	prev := 0
	for _, v := range route {
		total += inst.Travel(prev, v)
		prev = v
	}
	total += inst.Travel(prev, 0)
	return float64(total)
}

// SolutionDistance sums RouteDistance over every route in sol.
func SolutionDistance(inst *model.Instance, sol *model.Solution) float64 {
	var total float64
	for _, r := range sol.Routes {
		total += RouteDistance(inst, r)
	}
	return total
}

// Score computes the lexicographic objective of sol.
func Score(inst *model.Instance, sol *model.Solution) model.Score {
	return model.Score{Vehicles: sol.NumVehicles(), Distance: SolutionDistance(inst, sol)}
}

// IsFeasibleRoute is the single-route feasibility check used by the
// insertion kernel; it delegates to the oracle so C3 and C2 never
// disagree.
func IsFeasibleRoute(inst *model.Instance, route model.Route) bool {
	return feasibility.IsFeasibleRoute(inst, route)
}

// withInsertion returns a new route with p inserted at position i and d
// inserted at position j (j measured in the ORIGINAL route, i.e. before
// p's insertion), matching the §4.2 contract 0<=i<=len(route),
// i<j<=len(route)+1.
func withInsertion(route model.Route, p, d, i, j int) model.Route {
	out := make(model.Route, 0, len(route)+2)
	out = append(out, route[:i]...)
	out = append(out, p)
	out = append(out, route[i:j-1]...)
	out = append(out, d)
	out = append(out, route[j-1:]...)
	return out
}

// InsertionCost returns the distance delta between route and the route
// obtained by inserting pickup p at position i and delivery d at position
// j (j > i), plus whether the resulting route is feasible. The candidate
// route is only materialized once; callers that need it can recompute via
// withInsertion directly.
//
// Complexity: O(len(route)) per call — one new-route build, one distance
// pass, one feasibility scan.
func InsertionCost(inst *model.Instance, route model.Route, p, d, i, j int) (cost float64, feasible bool) {
	candidate := withInsertion(route, p, d, i, j)
	if !IsFeasibleRoute(inst, candidate) {
		return 0, false
	}
	return RouteDistance(inst, candidate) - RouteDistance(inst, route), true
}

// BestInsertion searches every valid (i, j) position pair for inserting
// the pickup/delivery pair (p, d) into route and returns the cheapest
// feasible placement. ok is false if no feasible placement exists.
//
// Complexity: O(len(route)^2) candidate positions, O(len(route)) per
// candidate ⇒ O(len(route)^3) worst case; acceptable for |route| ≲ 30 per
// §4.2. feasible candidates are rare to reject early, so in practice this
// is dominated by the O(n^2) position count.
func BestInsertion(inst *model.Instance, route model.Route, p, d int) (i, j int, cost float64, ok bool) {
	n := len(route)
	bestCost := 0.0
	found := false
	bestI, bestJ := 0, 0

	for ci := 0; ci <= n; ci++ {
		for cj := ci + 1; cj <= n+1; cj++ {
			c, feasible := InsertionCost(inst, route, p, d, ci, cj)
			if !feasible {
				continue
			}
			if !found || c < bestCost {
				found = true
				bestCost = c
				bestI, bestJ = ci, cj
			}
		}
	}

	return bestI, bestJ, bestCost, found
}

// InsertPair materializes the route after inserting (p, d) at the given
// (i, j) position pair, as returned by BestInsertion. Callers are
// expected to have already validated feasibility.
func InsertPair(route model.Route, p, d, i, j int) model.Route {
	return withInsertion(route, p, d, i, j)
}

// NewRouteCost returns the cost of opening a fresh single-pair route
// [p, d], i.e. depot->p->d->depot.
func NewRouteCost(inst *model.Instance, p, d int) float64 {
	return float64(inst.Travel(0, p) + inst.Travel(p, d) + inst.Travel(d, 0))
}
