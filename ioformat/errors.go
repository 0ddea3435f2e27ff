// Package ioformat parses PDPTW benchmark instances (auto-detecting the
// Li&Lim and Sartori&Buriol text formats), writes solutions back out in
// the matching route-listing format, and reports batch results as JSON or
// CSV records (§6).
package ioformat

import "fmt"

// ParseError reports a malformed instance or solution file, naming the
// source file and the 1-indexed line at which parsing failed.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}
