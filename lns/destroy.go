// Package lns implements the destroy-repair engine of §4.5: operators act
// on pickup/delivery pairs, never on isolated nodes, so every intermediate
// "working" solution may be temporarily short some pairs but never has a
// pickup without its delivery or vice versa.
package lns

import (
	"math/rand"

	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/rng"
	"github.com/nodewise/pdptw/routeops"
)

// Pair is a pickup/delivery index pair, (p, d).
type Pair [2]int

// locate returns the route index currently holding pickup p, or -1 if p
// is not present (already removed).
func locate(sol *model.Solution, p int) int {
	for i, r := range sol.Routes {
		for _, v := range r {
			if v == p {
				return i
			}
		}
	}
	return -1
}

// removePair strips p and d out of route, preserving the relative order
// of the remaining nodes.
func removePair(route model.Route, p, d int) model.Route {
	out := make(model.Route, 0, len(route))
	for _, v := range route {
		if v == p || v == d {
			continue
		}
		out = append(out, v)
	}
	return out
}

// applyRemoval removes every pair in pairs from sol (mutating a working
// copy) and returns the resulting solution plus the removed pairs in the
// order given.
func applyRemoval(sol *model.Solution, pairs []Pair) *model.Solution {
	working := sol.Clone()
	for _, pr := range pairs {
		idx := locate(working, pr[0])
		if idx < 0 {
			continue
		}
		working.Routes[idx] = removePair(working.Routes[idx], pr[0], pr[1])
	}
	return working
}

// allPairs returns every (pickup, delivery) pair currently present in
// sol, derived from the instance (every request is present in a feasible
// or candidate solution at destroy time).
func allPairs(inst *model.Instance) []Pair {
	raw := inst.Pairs()
	out := make([]Pair, len(raw))
	for i, pr := range raw {
		out[i] = Pair{pr[0], pr[1]}
	}
	return out
}

// RandomRemoval chooses k pairs uniformly at random among those present.
func RandomRemoval(inst *model.Instance, sol *model.Solution, k int, r *rand.Rand) (*model.Solution, []Pair) {
	pairs := allPairs(inst)
	if k > len(pairs) {
		k = len(pairs)
	}
	order := rng.PermRange(len(pairs), r)
	chosen := make([]Pair, 0, k)
	for _, idx := range order[:k] {
		chosen = append(chosen, pairs[idx])
	}
	return applyRemoval(sol, chosen), chosen
}

// ShawRemoval starts from a random seed pair and repeatedly adds the pair
// most related to the already-removed set, where relatedness combines
// pickup-to-pickup travel time normalized by the depot window (weight
// 0.5), time-window overlap ratio (weight 0.3), and a same-route
// indicator (weight 0.2) — lower combined distance means "more related".
func ShawRemoval(inst *model.Instance, sol *model.Solution, k int, r *rand.Rand) (*model.Solution, []Pair) {
	pairs := allPairs(inst)
	if k > len(pairs) {
		k = len(pairs)
	}
	if k == 0 {
		return sol.Clone(), nil
	}

	depotWindow := float64(inst.Depot().LTW - inst.Depot().ETW)
	if depotWindow <= 0 {
		depotWindow = 1
	}

	routeOf := make(map[int]int, inst.N)
	for ridx, route := range sol.Routes {
		for _, v := range route {
			routeOf[v] = ridx
		}
	}

	remaining := append([]Pair(nil), pairs...)
	seedIdx := r.Intn(len(remaining))
	chosen := []Pair{remaining[seedIdx]}
	remaining = append(remaining[:seedIdx], remaining[seedIdx+1:]...)

	relatedness := func(a, b Pair) float64 {
		pickupDist := float64(inst.Travel(a[0], b[0])) / depotWindow

		aPick, bPick := inst.Nodes[a[0]], inst.Nodes[b[0]]
		overlapStart := maxInt(aPick.ETW, bPick.ETW)
		overlapEnd := minInt(aPick.LTW, bPick.LTW)
		overlap := 0.0
		spanA := float64(aPick.LTW - aPick.ETW)
		if spanA <= 0 {
			spanA = 1
		}
		if overlapEnd > overlapStart {
			overlap = float64(overlapEnd-overlapStart) / spanA
		}
		overlapTerm := 1 - overlap // smaller when windows overlap more => more related

		sameRoute := 0.0
		if ra, ok := routeOf[a[0]]; ok {
			if rb, ok2 := routeOf[b[0]]; ok2 && ra == rb {
				sameRoute = 0
			} else {
				sameRoute = 1
			}
		}

		return 0.5*pickupDist + 0.3*overlapTerm + 0.2*sameRoute
	}

	for len(chosen) < k && len(remaining) > 0 {
		bestIdx := 0
		bestScore := -1.0
		for i, cand := range remaining {
			score := 0.0
			for _, c := range chosen {
				score += relatedness(c, cand)
			}
			score /= float64(len(chosen))
			if bestScore < 0 || score < bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		chosen = append(chosen, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return applyRemoval(sol, chosen), chosen
}

// WorstRemoval ranks pairs by the distance saving realized by removing
// them from their current route and removes the top k.
func WorstRemoval(inst *model.Instance, sol *model.Solution, k int) (*model.Solution, []Pair) {
	pairs := allPairs(inst)
	if k > len(pairs) {
		k = len(pairs)
	}

	routeOf := make(map[int]int, inst.N)
	for ridx, route := range sol.Routes {
		for _, v := range route {
			routeOf[v] = ridx
		}
	}

	type scored struct {
		pair   Pair
		saving float64
	}
	scoredPairs := make([]scored, 0, len(pairs))
	for _, pr := range pairs {
		ridx, ok := routeOf[pr[0]]
		if !ok {
			continue
		}
		route := sol.Routes[ridx]
		before := routeops.RouteDistance(inst, route)
		after := routeops.RouteDistance(inst, removePair(route, pr[0], pr[1]))
		scoredPairs = append(scoredPairs, scored{pr, before - after})
	}

	// Selection of the top-k by saving (descending), without a full sort
	// dependency on a stable tiebreak: a straightforward partial
	// selection is enough at PDPTW instance sizes.
	chosen := make([]Pair, 0, k)
	used := make([]bool, len(scoredPairs))
	for i := 0; i < k; i++ {
		best := -1
		for j := range scoredPairs {
			if used[j] {
				continue
			}
			if best < 0 || scoredPairs[j].saving > scoredPairs[best].saving {
				best = j
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		chosen = append(chosen, scoredPairs[best].pair)
	}

	return applyRemoval(sol, chosen), chosen
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
