package ioformat

import (
	"fmt"
	"io"

	"github.com/nodewise/pdptw/model"
)

// SolutionHeader carries the metadata fields written ahead of the route
// lines (spec.md §6); any field left empty is still written as an empty
// value so the line count read back by ParseSolution stays fixed.
type SolutionHeader struct {
	Authors   string
	Date      string
	Reference string
}

// WriteSolution writes sol in the header-plus-"Route N : seq" text format
// read back by ParseSolution, one route per line, 1-indexed route numbers.
func WriteSolution(w io.Writer, sol *model.Solution, header SolutionHeader) error {
	lines := []string{
		fmt.Sprintf("Instance name : %s", sol.InstanceName),
		fmt.Sprintf("Authors : %s", header.Authors),
		fmt.Sprintf("Date : %s", header.Date),
		fmt.Sprintf("Reference : %s", header.Reference),
		"Solution",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for i, route := range sol.Routes {
		if len(route) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "Route %d :", i+1); err != nil {
			return err
		}
		for _, v := range route {
			if _, err := fmt.Fprintf(w, " %d", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
