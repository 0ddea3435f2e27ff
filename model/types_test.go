// Package model_test covers the structural invariants of Instance and the
// lexicographic ordering of Score.
package model_test

import (
	"math"
	"testing"

	"github.com/nodewise/pdptw/model"
	"github.com/stretchr/testify/require"
)

// twoPairInstance builds the synthetic 2-pair, tight-window instance from
// the concrete test scenarios: depot at origin, pickup A (10,0)/[0,10],
// delivery A' (20,0)/[0,60], pickup B (0,10)/[0,10], delivery B' (0,20)/[0,60].
func twoPairInstance() *model.Instance {
	nodes := []model.Node{
		{Idx: 0, X: 0, Y: 0, Demand: 0, ETW: 0, LTW: 1000, Pair: 0},
		{Idx: 1, X: 10, Y: 0, Demand: 1, ETW: 0, LTW: 10, Pair: 2},
		{Idx: 2, X: 20, Y: 0, Demand: -1, ETW: 0, LTW: 60, Pair: 1},
		{Idx: 3, X: 0, Y: 10, Demand: 1, ETW: 0, LTW: 10, Pair: 4},
		{Idx: 4, X: 0, Y: 20, Demand: -1, ETW: 0, LTW: 60, Pair: 3},
	}
	n := len(nodes)
	dist := make([][]int64, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		for j := range dist[i] {
			if i == j {
				continue
			}
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			dist[i][j] = int64(math.Round(math.Sqrt(dx*dx + dy*dy)))
		}
	}
	return &model.Instance{Name: "synthetic-2pair", N: n, Capacity: 1, Nodes: nodes, Dist: dist}
}

func TestInstance_Validate_AcceptsWellFormedPairing(t *testing.T) {
	t.Parallel()

	inst := twoPairInstance()
	require.NoError(t, inst.Validate()) // well-paired, square, zero-diagonal matrix
}

func TestInstance_Validate_RejectsDimensionMismatch(t *testing.T) {
	t.Parallel()

	inst := twoPairInstance()
	inst.Dist = inst.Dist[:len(inst.Dist)-1] // drop a row
	require.ErrorIs(t, inst.Validate(), model.ErrDimensionMismatch)
}

func TestInstance_Validate_RejectsUnpairedNode(t *testing.T) {
	t.Parallel()

	inst := twoPairInstance()
	inst.Nodes[1].Pair = 3 // point pickup 1 at the wrong delivery
	require.ErrorIs(t, inst.Validate(), model.ErrUnpairedNode)
}

func TestInstance_Pairs_OrderedByPickupIndex(t *testing.T) {
	t.Parallel()

	inst := twoPairInstance()
	pairs := inst.Pairs()
	require.Equal(t, [][2]int{{1, 2}, {3, 4}}, pairs)
}

func TestScore_Less_VehiclesDominateDistance(t *testing.T) {
	t.Parallel()

	fewerVehicles := model.Score{Vehicles: 2, Distance: 1000}
	moreVehicles := model.Score{Vehicles: 3, Distance: 1}
	require.True(t, fewerVehicles.Less(moreVehicles))
	require.False(t, moreVehicles.Less(fewerVehicles))
}

func TestScore_Less_TiesBreakOnDistance(t *testing.T) {
	t.Parallel()

	a := model.Score{Vehicles: 2, Distance: 10}
	b := model.Score{Vehicles: 2, Distance: 20}
	require.True(t, a.Less(b))
	require.True(t, a.LessOrEqual(b))
	require.True(t, a.LessOrEqual(a))
}

func TestSolution_Clone_IsIndependent(t *testing.T) {
	t.Parallel()

	sol := model.NewSolution("x")
	sol.Routes = []model.Route{{1, 2}, {3, 4}}
	clone := sol.Clone()
	clone.Routes[0][0] = 99

	require.Equal(t, 1, sol.Routes[0][0]) // mutation on the clone must not leak back
	require.Equal(t, 2, sol.NumVehicles())
}

func TestSolution_Compact_DropsEmptyRoutes(t *testing.T) {
	t.Parallel()

	sol := model.NewSolution("x")
	sol.Routes = []model.Route{{1, 2}, {}, {3, 4}}
	sol.Compact()
	require.Len(t, sol.Routes, 2)
}
