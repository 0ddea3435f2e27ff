package lns

import (
	"math"
	"math/rand"
	"time"

	"github.com/nodewise/pdptw/model"
)

// Acceptance decides whether a feasible candidate replaces the current
// incumbent inside the LNS loop (§4.5 step 5). Implementations are
// plain structs rather than a class hierarchy with virtual dispatch: the
// engine holds one Acceptance value and calls it directly.
type Acceptance interface {
	// Init seeds the criterion with the starting score, called once
	// before the first iteration.
	Init(initial model.Score)
	// ShouldAccept reports whether candidate replaces current, and
	// records whatever bookkeeping the criterion needs for next time.
	ShouldAccept(candidate, current model.Score) bool
}

// LAHC is the non-parametric Late Acceptance Hill Climbing criterion: a
// circular buffer of length L holds past current-solution scores; a
// candidate is accepted if it beats the current solution outright, or if
// it is no worse than the score recorded L iterations ago.
type LAHC struct {
	length int
	buffer []model.Score
	index  int
}

// DefaultLAHCLength is the L parameter default from §4.5.
const DefaultLAHCLength = 1000

// NewLAHC returns an LAHC criterion with the given history length.
func NewLAHC(length int) *LAHC {
	if length <= 0 {
		length = DefaultLAHCLength
	}
	return &LAHC{length: length}
}

func (l *LAHC) Init(initial model.Score) {
	l.buffer = make([]model.Score, l.length)
	for i := range l.buffer {
		l.buffer[i] = initial
	}
	l.index = 0
}

func (l *LAHC) ShouldAccept(candidate, current model.Score) bool {
	comparison := l.buffer[l.index]
	accept := candidate.Less(current) || candidate.LessOrEqual(comparison)

	// The key LAHC mechanism: the slot is overwritten with the CURRENT
	// score (not the candidate), so future iterations compare against
	// what was actually standing L steps ago.
	l.buffer[l.index] = current
	l.index = (l.index + 1) % l.length

	return accept
}

// SAVehiclesFirst is the simulated-annealing alternative: vehicle-count
// changes dominate acceptance (fewer vehicles always wins, more vehicles
// is rejected bar a negligible escape probability); ties on vehicle count
// fall back to a standard Metropolis criterion on the distance delta with
// a temperature cooling geometrically from T0 to Tmin over the run's
// wall-clock budget.
type SAVehiclesFirst struct {
	alpha  float64
	t0     float64
	tmin   float64
	start  time.Time
	budget time.Duration
	rng    *rand.Rand
	escape float64
}

// DefaultSAAlpha is the T0 = alpha * initial_distance default from §4.5.
const DefaultSAAlpha = 0.01

// DefaultSATMin is the temperature floor from §4.5.
const DefaultSATMin = 1e-4

// defaultSAEscape is the "negligible" probability of accepting a
// vehicle-count increase, matching the 1e-6 figure named in §4.5.
const defaultSAEscape = 1e-6

// NewSAVehiclesFirst returns a vehicles-first SA criterion cooling over
// budget wall-clock time, seeded from r.
func NewSAVehiclesFirst(alpha float64, budget time.Duration, r *rand.Rand) *SAVehiclesFirst {
	if alpha <= 0 {
		alpha = DefaultSAAlpha
	}
	return &SAVehiclesFirst{alpha: alpha, tmin: DefaultSATMin, budget: budget, rng: r, escape: defaultSAEscape}
}

func (s *SAVehiclesFirst) Init(initial model.Score) {
	s.t0 = s.alpha * initial.Distance
	if s.t0 <= s.tmin {
		s.t0 = s.tmin * 10
	}
	s.start = time.Now()
}

func (s *SAVehiclesFirst) temperature() float64 {
	if s.budget <= 0 {
		return s.t0
	}
	frac := float64(time.Since(s.start)) / float64(s.budget)
	if frac > 1 {
		frac = 1
	}
	// Geometric cooling from T0 to Tmin over the budget.
	return s.t0 * math.Pow(s.tmin/s.t0, frac)
}

func (s *SAVehiclesFirst) ShouldAccept(candidate, current model.Score) bool {
	if candidate.Vehicles < current.Vehicles {
		return true
	}
	if candidate.Vehicles > current.Vehicles {
		return s.rng.Float64() < s.escape
	}

	delta := candidate.Distance - current.Distance
	if delta <= 0 {
		return true
	}
	t := s.temperature()
	if t <= 0 {
		return false
	}
	return s.rng.Float64() < math.Exp(-delta/t)
}
