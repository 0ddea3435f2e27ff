// Package model defines the central Node, Instance, Route, and Solution
// types for the Pickup-and-Delivery Problem with Time Windows, together
// with the sentinel errors used to report shape and invariant violations
// at load time.
//
// The depot always occupies index 0. A pickup node has positive demand,
// its paired delivery has the negated demand, and Pair links the two in
// both directions. Instances are immutable once constructed; Solutions
// are produced and replaced wholesale by the optimization layer.
package model

import "errors"

// Sentinel errors for instance and solution construction.
var (
	// ErrDimensionMismatch indicates the travel-time matrix is not N×N.
	ErrDimensionMismatch = errors.New("model: travel-time matrix dimension mismatch")

	// ErrBadDiagonal indicates T[i][i] != 0 for some node i.
	ErrBadDiagonal = errors.New("model: non-zero self-distance")

	// ErrUnpairedNode indicates a pickup or delivery without a valid partner.
	ErrUnpairedNode = errors.New("model: pickup/delivery node is not correctly paired")

	// ErrDuplicateNode indicates a non-depot node appears in more than one route.
	ErrDuplicateNode = errors.New("model: node appears in more than one route")

	// ErrMissingNode indicates a non-depot node appears in no route.
	ErrMissingNode = errors.New("model: node is missing from the solution")

	// ErrUnknownNode indicates a route references an index outside [0, N).
	ErrUnknownNode = errors.New("model: route references an unknown node index")
)

// Node is an immutable record describing one location in an Instance.
// The depot is Idx==0 with Demand==0 and Pair==0.
type Node struct {
	Idx    int     // position in Instance.Nodes and in the travel-time matrix
	X, Y   float64 // planar coordinates, used by the Li&Lim distance rule
	Demand int     // positive: pickup, negative: delivery, zero: depot
	ETW    int     // earliest service start
	LTW    int     // latest service start
	Dur    int     // service duration
	Pair   int     // paired node index; 0 for the depot
}

// IsDepot reports whether n is the depot.
func (n Node) IsDepot() bool { return n.Idx == 0 }

// IsPickup reports whether n is a pickup node.
func (n Node) IsPickup() bool { return n.Demand > 0 }

// IsDelivery reports whether n is a delivery node.
func (n Node) IsDelivery() bool { return n.Demand < 0 }

// Instance holds the nodes and integer travel-time matrix of one PDPTW
// benchmark. Nodes is indexed 0..N-1 with the depot at index 0. Dist is
// N×N; the solver never assumes symmetry even though benchmark instances
// are symmetric in practice.
type Instance struct {
	Name     string
	N        int
	Capacity int
	Nodes    []Node
	Dist     [][]int64
}

// Travel returns the integer travel time from node i to node j.
func (ins *Instance) Travel(i, j int) int64 {
	return ins.Dist[i][j]
}

// Depot returns the depot node (index 0).
func (ins *Instance) Depot() Node { return ins.Nodes[0] }

// Pairs returns all (pickup, delivery) index pairs ordered by pickup
// index, matching the processing order used by the greedy construction
// heuristic (pairs ordered by pickup ETW is applied by the caller; this
// just enumerates the pairing).
func (ins *Instance) Pairs() [][2]int {
	pairs := make([][2]int, 0, (ins.N-1)/2)
	for _, n := range ins.Nodes {
		if n.IsPickup() {
			pairs = append(pairs, [2]int{n.Idx, n.Pair})
		}
	}
	return pairs
}

// Validate checks the structural invariants from §3: a square matrix with
// zero diagonal, and a consistent pickup/delivery bijection. It is called
// once by ioformat.ParseInstance and is otherwise unnecessary since
// Instance is immutable thereafter.
func (ins *Instance) Validate() error {
	if ins.N <= 0 || len(ins.Nodes) != ins.N {
		return ErrDimensionMismatch
	}
	if len(ins.Dist) != ins.N {
		return ErrDimensionMismatch
	}
	for i := 0; i < ins.N; i++ {
		if len(ins.Dist[i]) != ins.N {
			return ErrDimensionMismatch
		}
		if ins.Dist[i][i] != 0 {
			return ErrBadDiagonal
		}
	}
	for _, n := range ins.Nodes {
		if n.IsDepot() {
			continue
		}
		if n.Pair <= 0 || n.Pair >= ins.N {
			return ErrUnpairedNode
		}
		partner := ins.Nodes[n.Pair]
		if partner.Pair != n.Idx {
			return ErrUnpairedNode
		}
		if n.IsPickup() && n.Demand != -partner.Demand {
			return ErrUnpairedNode
		}
		if n.IsDelivery() && !partner.IsPickup() {
			return ErrUnpairedNode
		}
	}
	return nil
}

// Route is an ordered sequence of non-depot node indices served by one
// vehicle; the depot is implicit at both ends.
type Route []int

// Clone returns an independent copy of r.
func (r Route) Clone() Route {
	c := make(Route, len(r))
	copy(c, r)
	return c
}

// Solution is a set of routes together with the instance name it serves.
type Solution struct {
	InstanceName string
	Routes       []Route
}

// NewSolution returns an empty Solution for the given instance name.
func NewSolution(instanceName string) *Solution {
	return &Solution{InstanceName: instanceName}
}

// Clone returns a deep, independent copy of s, suitable for the
// copy-on-accept pattern used throughout the optimization layer: a
// candidate is built by mutating a clone of the incumbent, and only
// replaces the incumbent on acceptance.
func (s *Solution) Clone() *Solution {
	c := &Solution{InstanceName: s.InstanceName, Routes: make([]Route, len(s.Routes))}
	for i, r := range s.Routes {
		c.Routes[i] = r.Clone()
	}
	return c
}

// Compact removes empty routes in place, preserving relative order.
func (s *Solution) Compact() {
	kept := s.Routes[:0]
	for _, r := range s.Routes {
		if len(r) > 0 {
			kept = append(kept, r)
		}
	}
	s.Routes = kept
}

// NumVehicles returns the number of non-empty routes.
func (s *Solution) NumVehicles() int {
	n := 0
	for _, r := range s.Routes {
		if len(r) > 0 {
			n++
		}
	}
	return n
}

// Score is the lexicographic objective pair (#routes, total distance).
type Score struct {
	Vehicles int
	Distance float64
}

// Less reports whether a strictly precedes b in the lexicographic order
// required by §3: fewer vehicles always wins; ties break on distance.
func (a Score) Less(b Score) bool {
	if a.Vehicles != b.Vehicles {
		return a.Vehicles < b.Vehicles
	}
	return a.Distance < b.Distance
}

// LessOrEqual reports a <= b lexicographically.
func (a Score) LessOrEqual(b Score) bool {
	if a.Vehicles != b.Vehicles {
		return a.Vehicles < b.Vehicles
	}
	return a.Distance <= b.Distance
}
