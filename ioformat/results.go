package ioformat

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// ResultRecord is one row of batch output: a single trial's outcome
// against one instance, suitable for JSON or CSV reporting (§6).
type ResultRecord struct {
	Instance   string        `json:"instance"`
	Vehicles   int           `json:"vehicles"`
	Distance   float64       `json:"distance"`
	Feasible   bool          `json:"feasible"`
	GapVsBKS   float64       `json:"gap_vs_bks"`
	Runtime    time.Duration `json:"runtime_ms"`
	Iterations int           `json:"iterations"`
}

// MarshalJSON encodes Runtime as whole milliseconds under "runtime_ms",
// matching the CSV column of the same name.
func (r ResultRecord) MarshalJSON() ([]byte, error) {
	type plain ResultRecord
	return json.Marshal(struct {
		plain
		Runtime int64 `json:"runtime_ms"`
	}{plain(r), r.Runtime.Milliseconds()})
}

// WriteJSON writes records as a JSON array.
func WriteJSON(w io.Writer, records []ResultRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

var csvHeader = []string{"instance", "vehicles", "distance", "feasible", "gap_vs_bks", "runtime_ms", "iterations"}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []ResultRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Instance,
			strconv.Itoa(r.Vehicles),
			strconv.FormatFloat(r.Distance, 'f', 2, 64),
			strconv.FormatBool(r.Feasible),
			strconv.FormatFloat(r.GapVsBKS, 'f', 4, 64),
			strconv.FormatInt(r.Runtime.Milliseconds(), 10),
			strconv.Itoa(r.Iterations),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
