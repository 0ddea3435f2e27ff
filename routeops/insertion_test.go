// Package routeops_test covers route costing and insertion search against
// a small four-node-plus-depot instance.
package routeops_test

import (
	"testing"

	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/routeops"
	"github.com/stretchr/testify/require"
)

// lineInstance places pickup/delivery pairs along the X axis so travel
// times are exact integers and insertion costs are easy to hand-verify.
func lineInstance() *model.Instance {
	nodes := []model.Node{
		{Idx: 0, X: 0, Demand: 0, ETW: 0, LTW: 1000},
		{Idx: 1, X: 10, Demand: 1, ETW: 0, LTW: 1000, Pair: 2},
		{Idx: 2, X: 20, Demand: -1, ETW: 0, LTW: 1000, Pair: 1},
		{Idx: 3, X: 30, Demand: 1, ETW: 0, LTW: 1000, Pair: 4},
		{Idx: 4, X: 40, Demand: -1, ETW: 0, LTW: 1000, Pair: 3},
	}
	n := len(nodes)
	dist := make([][]int64, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		for j := range dist[i] {
			d := nodes[i].X - nodes[j].X
			if d < 0 {
				d = -d
			}
			dist[i][j] = int64(d)
		}
	}
	return &model.Instance{Name: "line", N: n, Capacity: 2, Nodes: nodes, Dist: dist}
}

func TestRouteDistance_EmptyRouteIsZero(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0.0, routeops.RouteDistance(lineInstance(), nil))
}

func TestRouteDistance_DepotToFirstPlusHopsPlusLastToDepot(t *testing.T) {
	t.Parallel()
	inst := lineInstance()
	// depot(0)->1(10)->2(20)->depot(0): 10 + 10 + 20 = 40
	require.Equal(t, 40.0, routeops.RouteDistance(inst, model.Route{1, 2}))
}

func TestBestInsertion_FindsCheapestFeasiblePlacement(t *testing.T) {
	t.Parallel()
	inst := lineInstance()
	route := model.Route{1, 2}

	i, j, cost, ok := routeops.BestInsertion(inst, route, 3, 4)
	require.True(t, ok)
	require.GreaterOrEqual(t, cost, 0.0)

	placed := routeops.InsertPair(route, 3, 4, i, j)
	require.True(t, routeops.IsFeasibleRoute(inst, placed))
	require.Len(t, placed, 4)
}

func TestNewRouteCost_IsDepotRoundTrip(t *testing.T) {
	t.Parallel()
	inst := lineInstance()
	// depot->1(10)->2(10)->depot(20) = 40
	require.Equal(t, 40.0, routeops.NewRouteCost(inst, 1, 2))
}

func TestSolutionDistance_SumsRoutes(t *testing.T) {
	t.Parallel()
	inst := lineInstance()
	sol := &model.Solution{InstanceName: "line", Routes: []model.Route{{1, 2}, {3, 4}}}
	require.Equal(t, routeops.RouteDistance(inst, sol.Routes[0])+routeops.RouteDistance(inst, sol.Routes[1]),
		routeops.SolutionDistance(inst, sol))
}
