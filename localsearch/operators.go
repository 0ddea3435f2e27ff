// Package localsearch implements the five best-improvement node-level
// moves of §4.4 (intra-route 2-opt/relocate/exchange, inter-route
// relocate/exchange) and the driver that sweeps them to a local optimum.
// Every move is validated through the feasibility oracle before being
// accepted; a move that would separate a pickup from its delivery across
// routes, or that breaks a time window or capacity, is simply rejected.
package localsearch

import (
	"context"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/routeops"
)

// Operator is a single best-improvement sweep over sol; it mutates sol in
// place when it finds an improving, feasible move and reports whether it
// did. Operators are modeled as plain function values held in a slice,
// not as a polymorphic hierarchy (§9 design note): the engine dispatches
// by indexing into Operators, not by virtual call.
type Operator func(inst *model.Instance, sol *model.Solution) bool

// Operators lists the five moves in the order the driver sweeps them.
var Operators = []Operator{
	TwoOptIntra,
	RelocateIntra,
	ExchangeIntra,
	RelocateInter,
	ExchangeInter,
}

// Driver sweeps Operators repeatedly until a full pass makes no
// improvement or ctx's deadline elapses. It is invoked periodically by
// the LNS engine and at the end of each ILS iteration (§4.4).
func Driver(ctx context.Context, inst *model.Instance, sol *model.Solution) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		improvedAny := false
		for _, op := range Operators {
			for op(inst, sol) {
				improvedAny = true
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}
		if !improvedAny {
			return
		}
	}
}

// TwoOptIntra reverses a sub-sequence within a single route and accepts
// the reversal only if pickup-before-delivery still holds for every
// request and the route stays feasible. Best-improvement: the full route
// is scanned and the cheapest strictly-improving reversal is applied.
func TwoOptIntra(inst *model.Instance, sol *model.Solution) bool {
	bestGain := 0.0
	bestRoute, bestA, bestB := -1, -1, -1

	for ridx, route := range sol.Routes {
		n := len(route)
		if n < 3 {
			continue
		}
		base := routeops.RouteDistance(inst, route)
		for a := 0; a < n-1; a++ {
			for b := a + 1; b < n; b++ {
				candidate := reversed(route, a, b)
				if !routeops.IsFeasibleRoute(inst, candidate) {
					continue
				}
				gain := base - routeops.RouteDistance(inst, candidate)
				if gain > bestGain {
					bestGain = gain
					bestRoute, bestA, bestB = ridx, a, b
				}
			}
		}
	}

	if bestRoute < 0 {
		return false
	}
	sol.Routes[bestRoute] = reversed(sol.Routes[bestRoute], bestA, bestB)
	return true
}

func reversed(route model.Route, a, b int) model.Route {
	out := route.Clone()
	for i, j := a, b; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RelocateIntra moves one node to another position within the same
// route, accepting the move only if the oracle still accepts the result
// (this rejects moves that separate a pickup from its delivery).
func RelocateIntra(inst *model.Instance, sol *model.Solution) bool {
	bestGain := 0.0
	bestRoute, bestFrom, bestTo := -1, -1, -1

	for ridx, route := range sol.Routes {
		n := len(route)
		if n < 2 {
			continue
		}
		base := routeops.RouteDistance(inst, route)
		for from := 0; from < n; from++ {
			for to := 0; to <= n; to++ {
				if to == from || to == from+1 {
					continue
				}
				candidate := moved(route, from, to)
				if !routeops.IsFeasibleRoute(inst, candidate) {
					continue
				}
				gain := base - routeops.RouteDistance(inst, candidate)
				if gain > bestGain {
					bestGain = gain
					bestRoute, bestFrom, bestTo = ridx, from, to
				}
			}
		}
	}

	if bestRoute < 0 {
		return false
	}
	sol.Routes[bestRoute] = moved(sol.Routes[bestRoute], bestFrom, bestTo)
	return true
}

func moved(route model.Route, from, to int) model.Route {
	v := route[from]
	withoutV := make(model.Route, 0, len(route)-1)
	withoutV = append(withoutV, route[:from]...)
	withoutV = append(withoutV, route[from+1:]...)

	insertAt := to
	if to > from {
		insertAt = to - 1
	}
	out := make(model.Route, 0, len(route))
	out = append(out, withoutV[:insertAt]...)
	out = append(out, v)
	out = append(out, withoutV[insertAt:]...)
	return out
}

// ExchangeIntra swaps two node positions within the same route.
func ExchangeIntra(inst *model.Instance, sol *model.Solution) bool {
	bestGain := 0.0
	bestRoute, bestA, bestB := -1, -1, -1

	for ridx, route := range sol.Routes {
		n := len(route)
		if n < 2 {
			continue
		}
		base := routeops.RouteDistance(inst, route)
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				candidate := swapped(route, a, b)
				if !routeops.IsFeasibleRoute(inst, candidate) {
					continue
				}
				gain := base - routeops.RouteDistance(inst, candidate)
				if gain > bestGain {
					bestGain = gain
					bestRoute, bestA, bestB = ridx, a, b
				}
			}
		}
	}

	if bestRoute < 0 {
		return false
	}
	sol.Routes[bestRoute] = swapped(sol.Routes[bestRoute], bestA, bestB)
	return true
}

func swapped(route model.Route, a, b int) model.Route {
	out := route.Clone()
	out[a], out[b] = out[b], out[a]
	return out
}

// RelocateInter moves one node from route A to route B, relying on the
// oracle to reject the move whenever it would strand a pickup from its
// delivery (the delivery's pair check in feasibility.CheckRoute fails on
// the donor or receiver route).
func RelocateInter(inst *model.Instance, sol *model.Solution) bool {
	bestGain := 0.0
	bestA, bestB, bestFrom, bestTo := -1, -1, -1, -1

	for a := range sol.Routes {
		for b := range sol.Routes {
			if a == b {
				continue
			}
			routeA, routeB := sol.Routes[a], sol.Routes[b]
			baseCost := routeops.RouteDistance(inst, routeA) + routeops.RouteDistance(inst, routeB)

			for from := 0; from < len(routeA); from++ {
				v := routeA[from]
				newA := removeAt(routeA, from)
				if !feasibility.IsFeasibleRoute(inst, newA) {
					continue
				}
				for to := 0; to <= len(routeB); to++ {
					newB := insertAt(routeB, v, to)
					if !feasibility.IsFeasibleRoute(inst, newB) {
						continue
					}
					gain := baseCost - (routeops.RouteDistance(inst, newA) + routeops.RouteDistance(inst, newB))
					if gain > bestGain {
						bestGain = gain
						bestA, bestB, bestFrom, bestTo = a, b, from, to
					}
				}
			}
		}
	}

	if bestA < 0 {
		return false
	}
	v := sol.Routes[bestA][bestFrom]
	sol.Routes[bestA] = removeAt(sol.Routes[bestA], bestFrom)
	sol.Routes[bestB] = insertAt(sol.Routes[bestB], v, bestTo)
	sol.Compact()
	return true
}

// ExchangeInter swaps one node from route A with one from route B.
func ExchangeInter(inst *model.Instance, sol *model.Solution) bool {
	bestGain := 0.0
	bestA, bestB, bestI, bestJ := -1, -1, -1, -1

	for a := range sol.Routes {
		for b := range sol.Routes {
			if a >= b {
				continue
			}
			routeA, routeB := sol.Routes[a], sol.Routes[b]
			baseCost := routeops.RouteDistance(inst, routeA) + routeops.RouteDistance(inst, routeB)

			for i := range routeA {
				for j := range routeB {
					newA := routeA.Clone()
					newB := routeB.Clone()
					newA[i], newB[j] = newB[j], newA[i]

					if !feasibility.IsFeasibleRoute(inst, newA) || !feasibility.IsFeasibleRoute(inst, newB) {
						continue
					}
					gain := baseCost - (routeops.RouteDistance(inst, newA) + routeops.RouteDistance(inst, newB))
					if gain > bestGain {
						bestGain = gain
						bestA, bestB, bestI, bestJ = a, b, i, j
					}
				}
			}
		}
	}

	if bestA < 0 {
		return false
	}
	sol.Routes[bestA][bestI], sol.Routes[bestB][bestJ] = sol.Routes[bestB][bestJ], sol.Routes[bestA][bestI]
	return true
}

func removeAt(route model.Route, pos int) model.Route {
	out := make(model.Route, 0, len(route)-1)
	out = append(out, route[:pos]...)
	out = append(out, route[pos+1:]...)
	return out
}

func insertAt(route model.Route, v, pos int) model.Route {
	out := make(model.Route, 0, len(route)+1)
	out = append(out, route[:pos]...)
	out = append(out, v)
	out = append(out, route[pos:]...)
	return out
}

