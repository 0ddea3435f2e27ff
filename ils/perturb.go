package ils

import (
	"math/rand"

	"github.com/nodewise/pdptw/model"
)

// PerturbKind names one of the two perturbation moves of §4.7.
type PerturbKind int

const (
	// RelocateRandomPair moves one pair to a different random route.
	RelocateRandomPair PerturbKind = iota
	// SwapSegments exchanges short segments between two routes.
	SwapSegments
)

// Perturb applies a random perturbation of the given intensity (how many
// times the chosen move is repeated) to sol, choosing the move kind
// uniformly at random. It returns a new solution; the caller is
// responsible for checking feasibility and reverting (§4.7 step 7).
func Perturb(inst *model.Instance, sol *model.Solution, intensity int, r *rand.Rand) *model.Solution {
	working := sol.Clone()
	for i := 0; i < intensity; i++ {
		if r.Intn(2) == 0 {
			working = relocateRandomPair(inst, working, r)
		} else {
			working = swapSegments(inst, working, r)
		}
	}
	return working
}

// relocateRandomPair moves one pickup/delivery pair from its current route
// to a random position in a different random route, preserving
// pickup-before-delivery ordering at the destination.
func relocateRandomPair(inst *model.Instance, sol *model.Solution, r *rand.Rand) *model.Solution {
	sol.Compact()
	if len(sol.Routes) < 2 {
		return sol
	}

	fromIdx := r.Intn(len(sol.Routes))
	from := sol.Routes[fromIdx]
	pickupPos := -1
	for pos, v := range from {
		if inst.Nodes[v].IsPickup() {
			pickupPos = pos
			break
		}
	}
	if pickupPos < 0 {
		return sol
	}
	p := from[pickupPos]
	d := inst.Nodes[p].Pair

	toIdx := r.Intn(len(sol.Routes))
	for toIdx == fromIdx && len(sol.Routes) > 1 {
		toIdx = r.Intn(len(sol.Routes))
	}

	out := sol.Clone()
	out.Routes[fromIdx] = removePairFrom(out.Routes[fromIdx], p, d)

	to := out.Routes[toIdx]
	i := r.Intn(len(to) + 1)
	j := i + 1 + r.Intn(len(to)-i+1)
	if j > len(to)+1 {
		j = len(to) + 1
	}
	out.Routes[toIdx] = insertPairAt(to, p, d, i, j)
	out.Compact()
	return out
}

func removePairFrom(route model.Route, p, d int) model.Route {
	out := make(model.Route, 0, len(route))
	for _, v := range route {
		if v == p || v == d {
			continue
		}
		out = append(out, v)
	}
	return out
}

func insertPairAt(route model.Route, p, d, i, j int) model.Route {
	out := make(model.Route, 0, len(route)+2)
	out = append(out, route[:i]...)
	out = append(out, p)
	out = append(out, route[i:j-1]...)
	out = append(out, d)
	out = append(out, route[j-1:]...)
	return out
}

// swapSegments exchanges a short segment (length 1 or 2) between two
// random routes. The swap is applied unconditionally; the caller's
// feasibility gate is responsible for reverting it.
func swapSegments(inst *model.Instance, sol *model.Solution, r *rand.Rand) *model.Solution {
	sol.Compact()
	if len(sol.Routes) < 2 {
		return sol
	}

	a := r.Intn(len(sol.Routes))
	b := r.Intn(len(sol.Routes))
	for b == a && len(sol.Routes) > 1 {
		b = r.Intn(len(sol.Routes))
	}

	out := sol.Clone()
	routeA, routeB := out.Routes[a], out.Routes[b]
	if len(routeA) == 0 || len(routeB) == 0 {
		return out
	}

	lenA := 1 + r.Intn(minInt(2, len(routeA)))
	lenB := 1 + r.Intn(minInt(2, len(routeB)))
	startA := r.Intn(len(routeA) - lenA + 1)
	startB := r.Intn(len(routeB) - lenB + 1)

	segA := append(model.Route{}, routeA[startA:startA+lenA]...)
	segB := append(model.Route{}, routeB[startB:startB+lenB]...)

	newA := append(append(append(model.Route{}, routeA[:startA]...), segB...), routeA[startA+lenA:]...)
	newB := append(append(append(model.Route{}, routeB[:startB]...), segA...), routeB[startB+lenB:]...)

	out.Routes[a] = newA
	out.Routes[b] = newB
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
