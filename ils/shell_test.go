package ils_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/ils"
	"github.com/nodewise/pdptw/model"
	"github.com/stretchr/testify/require"
)

// scenarioSixInstance is the synthetic two-pair conflict case: both pickups
// have tight [0,10] windows that cannot both be honored on a single route
// once the second pickup's travel time is added, so any feasible solution
// must keep the two requests on separate vehicles.
func scenarioSixInstance() *model.Instance {
	nodes := []model.Node{
		{Idx: 0, X: 0, Y: 0, Demand: 0, ETW: 0, LTW: 1000},
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
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			dist[i][j] = int64(math.Round(math.Sqrt(dx*dx + dy*dy)))
		}
	}
	return &model.Instance{Name: "scenario-six", N: n, Capacity: 1, Nodes: nodes, Dist: dist}
}

func TestShell_Run_SeparatesConflictingPairsIntoTwoFeasibleRoutes(t *testing.T) {
	t.Parallel()
	inst := scenarioSixInstance()

	// Start from a naive single infeasible route combining both pairs.
	initial := &model.Solution{InstanceName: inst.Name, Routes: []model.Route{{1, 3, 2, 4}}}

	opts := ils.DefaultOptions()
	opts.MaxIterations = 40
	opts.NoImprovementLimit = 20
	opts.AGESTimeBudget = 50 * time.Millisecond
	opts.EliminationTimeBudget = 50 * time.Millisecond
	opts.LocalSearchBudget = 50 * time.Millisecond
	opts.LNS.MaxIterations = 100
	opts.LNS.KMin, opts.LNS.KMax = 1, 2

	shell := ils.NewShell(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result := shell.Run(ctx, inst, initial, rand.New(rand.NewSource(1)))

	require.True(t, result.Feasible)
	require.Equal(t, 2, result.Vehicles)

	ok, violations := feasibility.Check(inst, result.Solution)
	require.True(t, ok, violations)
}
