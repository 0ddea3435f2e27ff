// Package construct_test checks that both constructive heuristics return
// feasible, request-complete solutions on small instances.
package construct_test

import (
	"math/rand"
	"testing"

	"github.com/nodewise/pdptw/construct"
	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/model"
	"github.com/stretchr/testify/require"
)

func lineInstance(pairs int) *model.Instance {
	nodes := []model.Node{{Idx: 0, X: 0, Demand: 0, ETW: 0, LTW: 100000}}
	for k := 0; k < pairs; k++ {
		p := 2*k + 1
		d := p + 1
		base := float64(10 * (k + 1))
		nodes = append(nodes,
			model.Node{Idx: p, X: base, Demand: 1, ETW: 0, LTW: 100000, Pair: d},
			model.Node{Idx: d, X: base + 5, Demand: -1, ETW: 0, LTW: 100000, Pair: p},
		)
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
	return &model.Instance{Name: "line", N: n, Capacity: 3, Nodes: nodes, Dist: dist}
}

func TestClarkeWright_CoversEveryPairFeasibly(t *testing.T) {
	t.Parallel()
	inst := lineInstance(6)
	sol := construct.ClarkeWright(inst)

	ok, violations := feasibility.Check(inst, sol)
	require.True(t, ok, violations)
}

func TestGreedyInsertion_CoversEveryPairFeasibly(t *testing.T) {
	t.Parallel()
	inst := lineInstance(6)
	sol := construct.GreedyInsertion(inst, rand.New(rand.NewSource(1)))

	ok, violations := feasibility.Check(inst, sol)
	require.True(t, ok, violations)
}

func TestConstruct_ReturnsFeasibleResult(t *testing.T) {
	t.Parallel()
	inst := lineInstance(10)
	result := construct.Construct(inst, rand.New(rand.NewSource(42)))

	require.True(t, result.Feasible)
	ok, _ := feasibility.Check(inst, result.Solution)
	require.True(t, ok)
}

func TestConstruct_SinglePairYieldsOneRoute(t *testing.T) {
	t.Parallel()
	inst := lineInstance(1)
	result := construct.Construct(inst, rand.New(rand.NewSource(1)))

	require.True(t, result.Feasible)
	require.Equal(t, 1, result.Solution.NumVehicles())
}
