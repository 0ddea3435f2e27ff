package lns_test

import (
	"math/rand"
	"testing"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/lns"
	"github.com/nodewise/pdptw/routeops"
	"github.com/stretchr/testify/require"
)

func TestGreedyRepair_ReinsertsEveryRemovedPairFeasibly(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.RandomRemoval(inst, sol, 2, rand.New(rand.NewSource(1)))
	repaired := lns.GreedyRepair(inst, working, removed, rand.New(rand.NewSource(1)))

	ok, violations := feasibility.Check(inst, repaired)
	require.True(t, ok, violations)
	require.Len(t, flatten(repaired), 8)
}

func TestRegretRepair_ReinsertsEveryRemovedPairFeasibly(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.RandomRemoval(inst, sol, 3, rand.New(rand.NewSource(7)))
	repaired := lns.RegretRepair(inst, working, removed, 2, rand.New(rand.NewSource(7)))

	ok, violations := feasibility.Check(inst, repaired)
	require.True(t, ok, violations)
	require.Len(t, flatten(repaired), 8)
}

func TestRegretRepair_SinglePairRegretFallsBackToCheapest(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.RandomRemoval(inst, sol, 1, rand.New(rand.NewSource(9)))
	repaired := lns.RegretRepair(inst, working, removed, 3, rand.New(rand.NewSource(9)))

	ok, _ := feasibility.Check(inst, repaired)
	require.True(t, ok)
	// All nodes lie on one line, so the cheapest reinsertion costs nothing
	// and restores the original distance.
	require.Equal(t, routeops.SolutionDistance(inst, sol), routeops.SolutionDistance(inst, repaired))
}
