// Package feasibility is the single source of truth for solution
// validity. Given a Solution (or a single Route), it reports whether the
// sequence satisfies precedence, capacity, and time-window constraints,
// plus — for full solutions — the cross-route coverage invariant. It
// never mutates its arguments and is deterministic: the same (Instance,
// Solution) pair always produces the same verdict.
//
// Every other component that needs a feasibility shortcut (the insertion
// kernel, the constructive heuristics, the LNS repair operators) delegates
// to CheckRoute rather than re-deriving the six-step scan described here.
package feasibility

import (
	"fmt"

	"github.com/nodewise/pdptw/model"
)

// Check validates a full Solution against inst: every route is scanned
// with CheckRoute, and cross-route coverage (each non-depot node appears
// in exactly one route, exactly once) is verified.
//
// Complexity: O(sum of route lengths).
func Check(inst *model.Instance, sol *model.Solution) (bool, []string) {
	var violations []string
	feasible := true

	visits := make([]int, inst.N)
	for idx, route := range sol.Routes {
		ok, rv := checkRoute(inst, route)
		if !ok {
			feasible = false
		}
		for _, v := range rv {
			violations = append(violations, fmt.Sprintf("route %d: %s", idx, v))
		}
		for _, node := range route {
			if node <= 0 || node >= inst.N {
				violations = append(violations, fmt.Sprintf("route %d: unknown node %d", idx, node))
				feasible = false
				continue
			}
			visits[node]++
		}
	}

	for i := 1; i < inst.N; i++ {
		switch {
		case visits[i] == 0:
			violations = append(violations, fmt.Sprintf("node %d missing", i))
			feasible = false
		case visits[i] > 1:
			violations = append(violations, fmt.Sprintf("node %d visited %d times (duplicate)", i, visits[i]))
			feasible = false
		}
	}

	return feasible, violations
}

// CheckRoute is the single-route variant of Check: it scans one route
// left to right and reports precedence, capacity, and time-window
// violations plus the depot-return deadline. It does not check cross-route
// coverage since a single route has no notion of the rest of the
// solution.
//
// Complexity: O(len(route)).
func CheckRoute(inst *model.Instance, route model.Route) (bool, []string) {
	return checkRoute(inst, route)
}

// IsFeasibleRoute is a boolean-only convenience wrapper around CheckRoute,
// used by hot paths (insertion search, local-search moves) that only need
// the verdict.
func IsFeasibleRoute(inst *model.Instance, route model.Route) bool {
	ok, _ := checkRoute(inst, route)
	return ok
}

func checkRoute(inst *model.Instance, route model.Route) (bool, []string) {
	var violations []string
	feasible := true

	if len(route) == 0 {
		return true, nil
	}

	var (
		time           int64
		load           int
		prev           = 0
		visitedPickups = make(map[int]struct{}, len(route))
	)

	for pos, v := range route {
		if v <= 0 || v >= inst.N {
			violations = append(violations, fmt.Sprintf("unknown node %d at position %d", v, pos))
			feasible = false
			continue
		}
		node := inst.Nodes[v]

		// 1. advance time by the hop, clamp to the earliest window.
		time += inst.Travel(prev, v)
		arrival := time
		if int64(node.ETW) > arrival {
			arrival = int64(node.ETW)
		}

		// 2. time-window violation.
		if arrival > int64(node.LTW) {
			violations = append(violations, fmt.Sprintf(
				"time window violation at node %d (arrival %d > latest %d)", v, arrival, node.LTW))
			feasible = false
		}

		// 3. precedence: a delivery's pickup must already be visited in this route.
		if node.IsDelivery() {
			if _, ok := visitedPickups[node.Pair]; !ok {
				violations = append(violations, fmt.Sprintf(
					"delivery %d before pickup %d", v, node.Pair))
				feasible = false
			}
		}

		// 4. capacity.
		load += node.Demand
		if load > inst.Capacity || load < 0 {
			violations = append(violations, fmt.Sprintf(
				"capacity violation at node %d (load %d, capacity %d)", v, load, inst.Capacity))
			feasible = false
		}

		// 5. track pickups visited in this route.
		if node.IsPickup() {
			visitedPickups[v] = struct{}{}
		}

		// 6. advance time past service and move on.
		time = arrival + int64(node.Dur)
		prev = v
	}

	returnTime := time + inst.Travel(prev, 0)
	depot := inst.Depot()
	if returnTime > int64(depot.LTW) {
		violations = append(violations, fmt.Sprintf(
			"return to depot too late (time %d > depot close %d)", returnTime, depot.LTW))
		feasible = false
	}

	return feasible, violations
}
