package config_test

import (
	"testing"
	"time"

	"github.com/nodewise/pdptw/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_FallsBackToDocumentedDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, int64(1), cfg.Solver.Seed)
	require.Equal(t, 30*time.Second, cfg.Solver.TimeBudget)
	require.Equal(t, 500, cfg.Solver.MaxIterations)
	require.Equal(t, 1, cfg.Solver.Trials)

	require.Equal(t, 10, cfg.LNS.KMin)
	require.Equal(t, 60, cfg.LNS.KMax)
	require.False(t, cfg.LNS.Adaptive)
}
