package ioformat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nodewise/pdptw/ioformat"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []ioformat.ResultRecord {
	return []ioformat.ResultRecord{
		{Instance: "lc101", Vehicles: 10, Distance: 828.94, Feasible: true, GapVsBKS: 0, Runtime: 1500 * time.Millisecond, Iterations: 500},
		{Instance: "lr204", Vehicles: 3, Distance: 900.0, Feasible: false, GapVsBKS: 0.09, Runtime: 2 * time.Second, Iterations: 200},
	}
}

func TestWriteJSON_EncodesEveryRecord(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	require.NoError(t, ioformat.WriteJSON(&buf, sampleRecords()))

	out := buf.String()
	require.Contains(t, out, `"instance": "lc101"`)
	require.Contains(t, out, `"instance": "lr204"`)
	require.Contains(t, out, `"feasible": false`)
}

func TestWriteCSV_EmitsHeaderAndOneRowPerRecord(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	require.NoError(t, ioformat.WriteCSV(&buf, sampleRecords()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3) // header + 2 records
	require.Equal(t, "instance,vehicles,distance,feasible,gap_vs_bks,runtime_ms,iterations", lines[0])
	require.Contains(t, lines[1], "lc101")
	require.Contains(t, lines[2], "lr204")
}
