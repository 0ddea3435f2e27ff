package ils_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/nodewise/pdptw/feasibility"
	"github.com/nodewise/pdptw/ils"
	"github.com/nodewise/pdptw/model"
	"github.com/stretchr/testify/require"
)

func TestEliminateRoutes_ShedsAVehicleWhenReinsertionFits(t *testing.T) {
	t.Parallel()
	inst := mergeableInstance()
	sol := &model.Solution{InstanceName: inst.Name, Routes: []model.Route{{1, 2}, {3, 4}}}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	reduced := ils.EliminateRoutes(ctx, inst, sol, rand.New(rand.NewSource(1)))

	require.Equal(t, 1, reduced.NumVehicles())
	ok, violations := feasibility.Check(inst, reduced)
	require.True(t, ok, violations)
}

func TestEliminateRoutes_StopsAtOneRouteRemaining(t *testing.T) {
	t.Parallel()
	inst := mergeableInstance()
	sol := &model.Solution{InstanceName: inst.Name, Routes: []model.Route{{1, 2, 3, 4}}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	reduced := ils.EliminateRoutes(ctx, inst, sol, rand.New(rand.NewSource(1)))

	require.Equal(t, 1, reduced.NumVehicles())
}
