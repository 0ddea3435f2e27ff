package lns_test

import (
	"math/rand"
	"testing"

	"github.com/nodewise/pdptw/lns"
	"github.com/nodewise/pdptw/model"
	"github.com/stretchr/testify/require"
)

func fourPairInstance() *model.Instance {
	nodes := []model.Node{{Idx: 0, X: 0, Demand: 0, ETW: 0, LTW: 1000}}
	for k := 0; k < 4; k++ {
		p := 2*k + 1
		d := p + 1
		base := float64(10 * (k + 1))
		nodes = append(nodes,
			model.Node{Idx: p, X: base, Demand: 1, ETW: 0, LTW: 1000, Pair: d},
			model.Node{Idx: d, X: base + 3, Demand: -1, ETW: 0, LTW: 1000, Pair: p},
		)
	}
	n := len(nodes)
	dist := make([][]int64, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		for j := range dist[i] {
			dd := nodes[i].X - nodes[j].X
			if dd < 0 {
				dd = -dd
			}
			dist[i][j] = int64(dd)
		}
	}
	return &model.Instance{Name: "four-pair", N: n, Capacity: 4, Nodes: nodes, Dist: dist}
}

func fullSolution(inst *model.Instance) *model.Solution {
	route := model.Route{}
	for _, pr := range inst.Pairs() {
		route = append(route, pr[0], pr[1])
	}
	return &model.Solution{InstanceName: inst.Name, Routes: []model.Route{route}}
}

func TestRandomRemoval_RemovesExactlyKPairs(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.RandomRemoval(inst, sol, 2, rand.New(rand.NewSource(1)))
	require.Len(t, removed, 2)
	for _, pr := range removed {
		require.NotContains(t, flatten(working), pr[0])
		require.NotContains(t, flatten(working), pr[1])
	}
	require.Len(t, flatten(working), 4) // 4 pairs - 2 removed = 2 pairs left = 4 nodes
}

func TestShawRemoval_RemovesExactlyKRelatedPairs(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.ShawRemoval(inst, sol, 3, rand.New(rand.NewSource(2)))
	require.Len(t, removed, 3)
	require.Len(t, flatten(working), 2)
}

func TestWorstRemoval_RemovesHighestSavingPairsFirst(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.WorstRemoval(inst, sol, 1)
	require.Len(t, removed, 1)
	// On the single collinear route only the last pair (7, 8) saves distance
	// when removed (86 -> 66); every interior pair saves 0.
	require.Equal(t, lns.Pair{7, 8}, removed[0])
	require.Len(t, flatten(working), 6)
}

func TestRandomRemoval_ClampsKToPairCount(t *testing.T) {
	t.Parallel()
	inst := fourPairInstance()
	sol := fullSolution(inst)

	working, removed := lns.RandomRemoval(inst, sol, 999, rand.New(rand.NewSource(3)))
	require.Len(t, removed, 4)
	require.Len(t, flatten(working), 0)
}

func flatten(sol *model.Solution) []int {
	var out []int
	for _, r := range sol.Routes {
		out = append(out, r...)
	}
	return out
}
