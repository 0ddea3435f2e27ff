package ioformat

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nodewise/pdptw/model"
)

// ParseInstance reads a PDPTW instance from path, auto-detecting whether
// it is in Li&Lim format (header "n capacity speed") or Sartori&Buriol
// format (header fields followed by a NODES marker), matching the
// detection rule of the original is_li_lim_format check. The resulting
// Instance is validated before being returned.
func ParseInstance(path string) (*model.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := readAllLines(f)
	if err != nil {
		return nil, &ParseError{File: path, Msg: err.Error()}
	}
	if len(lines) == 0 {
		return nil, &ParseError{File: path, Msg: "empty file"}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var inst *model.Instance
	if isLiLimFormat(lines[0]) {
		inst, err = parseLiLim(path, name, lines)
	} else {
		inst, err = parseSartoriBuriol(path, name, lines)
	}
	if err != nil {
		return nil, err
	}

	if err := inst.Validate(); err != nil {
		return nil, &ParseError{File: path, Msg: err.Error()}
	}
	return inst, nil
}

func readAllLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// ParseSolution reads back the text format written by WriteSolution: the
// five header lines (Instance name, Authors, Date, Reference, Solution
// marker), then one "Route k : v1 v2 … vn" line per non-empty route,
// matching the original Solution.read_from_file field-splitting on " : ".
// This is the inverse of WriteSolution, so parse(write(sol)) reproduces
// sol's InstanceName and Routes (§8's round-trip law).
func ParseSolution(r io.Reader) (*model.Solution, SolutionHeader, error) {
	lines, err := readAllLines(r)
	if err != nil {
		return nil, SolutionHeader{}, &ParseError{Msg: err.Error()}
	}
	if len(lines) == 0 {
		return nil, SolutionHeader{}, &ParseError{Msg: "empty solution file"}
	}

	sol := &model.Solution{}
	var header SolutionHeader

	ln := 0
	for ; ln < len(lines) && ln < 5; ln++ {
		line := lines[ln]
		if strings.TrimSpace(line) == "Solution" {
			ln++
			break
		}
		parts := strings.SplitN(line, " : ", 2)
		if len(parts) < 2 {
			continue
		}
		field := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch field {
		case "Instance name":
			sol.InstanceName = value
		case "Authors":
			header.Authors = value
		case "Date":
			header.Date = value
		case "Reference":
			header.Reference = value
		}
	}

	for ; ln < len(lines); ln++ {
		line := lines[ln]
		if !strings.Contains(line, "Route") || !strings.Contains(line, ":") {
			continue
		}
		sequencePart := strings.SplitN(line, ":", 2)[1]
		var route model.Route
		for _, tok := range strings.Fields(sequencePart) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, SolutionHeader{}, &ParseError{Line: ln + 1, Msg: "malformed route entry: " + tok}
			}
			route = append(route, v)
		}
		sol.Routes = append(sol.Routes, route)
	}

	return sol, header, nil
}

// isLiLimFormat mirrors is_li_lim_format: a Sartori&Buriol header carries
// "SIZE" or "CAPACITY" keywords; a Li&Lim header is two leading integers.
func isLiLimFormat(firstLine string) bool {
	upper := strings.ToUpper(firstLine)
	if strings.Contains(upper, "SIZE") || strings.Contains(upper, "CAPACITY") {
		return false
	}
	fields := strings.Fields(firstLine)
	if len(fields) < 2 {
		return false
	}
	_, err1 := strconv.Atoi(fields[0])
	_, err2 := strconv.Atoi(fields[1])
	return err1 == nil && err2 == nil
}

// parseLiLim reads "node x y demand ready due service pickup delivery"
// rows; the pickup/delivery columns are mutually exclusive flags (one of
// them is the partner index, the other is zero), exactly as in
// li_lim_parser.py. Euclidean distance is rounded to the nearest integer.
func parseLiLim(path, name string, lines []string) (*model.Instance, error) {
	header := strings.Fields(lines[0])
	if len(header) < 2 {
		return nil, &ParseError{File: path, Line: 1, Msg: "malformed Li&Lim header"}
	}
	capacity, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, &ParseError{File: path, Line: 1, Msg: "bad capacity: " + err.Error()}
	}

	var nodes []model.Node
	for ln := 1; ln < len(lines); ln++ {
		raw := strings.TrimSpace(lines[ln])
		if raw == "" {
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) < 9 {
			continue
		}
		idx, e1 := strconv.Atoi(fields[0])
		x, e2 := strconv.ParseFloat(fields[1], 64)
		y, e3 := strconv.ParseFloat(fields[2], 64)
		demand, e4 := strconv.Atoi(fields[3])
		etw, e5 := strconv.Atoi(fields[4])
		ltw, e6 := strconv.Atoi(fields[5])
		dur, e7 := strconv.Atoi(fields[6])
		pickupCol, e8 := strconv.Atoi(fields[7])
		deliveryCol, e9 := strconv.Atoi(fields[8])
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil || e5 != nil || e6 != nil || e7 != nil || e8 != nil || e9 != nil {
			return nil, &ParseError{File: path, Line: ln + 1, Msg: "malformed node row"}
		}

		pair := 0
		switch {
		case pickupCol != 0:
			pair = pickupCol
		case deliveryCol != 0:
			pair = deliveryCol
		}

		nodes = append(nodes, model.Node{
			Idx: idx, X: x, Y: y, Demand: demand, ETW: etw, LTW: ltw, Dur: dur, Pair: pair,
		})
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

	return &model.Instance{Name: name, N: n, Capacity: capacity, Nodes: nodes, Dist: dist}, nil
}

// parseSartoriBuriol reads the NAME/SIZE/CAPACITY/... header block up to
// the NODES marker, then SIZE node rows, then the EDGES marker and an
// explicit N×N travel-time matrix, matching data_loader.py's
// read_from_file.
func parseSartoriBuriol(path, name string, lines []string) (*model.Instance, error) {
	size := 0
	capacity := 0
	instanceName := name

	ln := 0
	for ; ln < len(lines); ln++ {
		stripped := strings.TrimSpace(lines[ln])
		if stripped == "NODES" {
			ln++
			break
		}
		fields := strings.Fields(stripped)
		if len(fields) < 2 {
			continue
		}
		key := strings.ToUpper(strings.TrimSuffix(fields[0], ":"))
		value := strings.Join(fields[1:], " ")
		switch key {
		case "NAME":
			instanceName = value
		case "SIZE":
			if v, err := strconv.Atoi(value); err == nil {
				size = v
			}
		case "CAPACITY":
			if v, err := strconv.Atoi(value); err == nil {
				capacity = v
			}
		}
	}
	if size == 0 {
		return nil, &ParseError{File: path, Msg: "missing SIZE header"}
	}

	nodes := make([]model.Node, 0, size)
	for ; ln < len(lines) && len(nodes) < size; ln++ {
		fields := strings.Fields(lines[ln])
		if len(fields) < 7 {
			continue
		}
		idx, _ := strconv.Atoi(fields[0])
		lat, _ := strconv.ParseFloat(fields[1], 64)
		long, _ := strconv.ParseFloat(fields[2], 64)
		demand, _ := strconv.Atoi(fields[3])
		etw, _ := strconv.Atoi(fields[4])
		ltw, _ := strconv.Atoi(fields[5])
		dur, _ := strconv.Atoi(fields[6])

		pair := 0
		switch {
		case demand > 0:
			if len(fields) > 7 {
				pair, _ = strconv.Atoi(fields[7])
			}
			if pair <= 0 {
				pair = idx + size/2
			}
		case demand < 0:
			if len(fields) > 8 {
				pair, _ = strconv.Atoi(fields[8])
			}
			if pair <= 0 {
				pair = idx - size/2
			}
		}

		nodes = append(nodes, model.Node{
			Idx: idx, X: lat, Y: long, Demand: demand, ETW: etw, LTW: ltw, Dur: dur, Pair: pair,
		})
	}

	for ; ln < len(lines); ln++ {
		if strings.TrimSpace(lines[ln]) == "EDGES" {
			ln++
			break
		}
	}

	dist := make([][]int64, size)
	for i := 0; i < size && ln < len(lines); i, ln = i+1, ln+1 {
		fields := strings.Fields(lines[ln])
		row := make([]int64, size)
		for j := 0; j < size && j < len(fields); j++ {
			v, err := strconv.ParseInt(fields[j], 10, 64)
			if err != nil {
				return nil, &ParseError{File: path, Line: ln + 1, Msg: "malformed travel-time entry"}
			}
			row[j] = v
		}
		dist[i] = row
	}

	return &model.Instance{Name: instanceName, N: size, Capacity: capacity, Nodes: nodes, Dist: dist}, nil
}
