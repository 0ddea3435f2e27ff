package ioformat_test

import (
	"testing"

	"github.com/nodewise/pdptw/ioformat"
	"github.com/stretchr/testify/require"
)

func TestBestKnown_LooksUpNamedScenarios(t *testing.T) {
	t.Parallel()

	score, ok := ioformat.BestKnown("lc101")
	require.True(t, ok)
	require.Equal(t, 10, score.Vehicles)
	require.InDelta(t, 828.94, score.Distance, 0.001)

	_, ok = ioformat.BestKnown("not-a-real-instance")
	require.False(t, ok)
}
