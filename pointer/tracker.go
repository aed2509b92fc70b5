package pointer

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind classifies a raw pointer sample
type Kind uint8

const (
	KindMove Kind = iota
	KindDown
	KindLeave
	KindCancel
)

// String returns the sample kind name
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindDown:
		return "down"
	case KindLeave:
		return "leave"
	case KindCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Sample is one raw input event in simulation coordinates
type Sample struct {
	X, Y float64
	Kind Kind
}

// State is the tracker output consumed by the integrator once per tick
type State struct {
	Pos     r2.Vec
	Prev    r2.Vec
	Vel     r2.Vec
	Active  bool
	HasPrev bool
}

// Tracker turns raw samples into a position, a per-second velocity estimate and an activity flag
// Samples are written between ticks and read at the next tick boundary
type Tracker struct {
	state State
	decay float64
}

// NewTracker creates an inactive tracker, decay is the idle per-tick velocity factor
func NewTracker(decay float64) *Tracker {
	return &Tracker{decay: decay}
}

// Handle dispatches a sample by kind
func (t *Tracker) Handle(s Sample) {
	switch s.Kind {
	case KindMove, KindDown:
		t.Sample(s.X, s.Y)
	case KindLeave, KindCancel:
		t.Leave()
	}
}

// Sample records a new pointer position
// The first sample after activation seeds the previous position so initial velocity is zero
func (t *Tracker) Sample(x, y float64) {
	pos := r2.Vec{X: x, Y: y}
	if !t.state.Active || !t.state.HasPrev {
		t.state.Prev = pos
		t.state.HasPrev = true
	}
	t.state.Pos = pos
	t.state.Active = true
}

// Leave deactivates the pointer, velocity then decays on subsequent ticks
func (t *Tracker) Leave() {
	t.state.Active = false
}

// Tick estimates velocity over delta seconds and advances the previous position
func (t *Tracker) Tick(delta float64) {
	s := &t.state
	if s.Active && s.HasPrev && delta > 0 {
		s.Vel = r2.Scale(1/delta, r2.Sub(s.Pos, s.Prev))
	} else {
		s.Vel = r2.Scale(t.decay, s.Vel)
	}
	s.Prev = s.Pos
}

// State returns a snapshot of the tracker
func (t *Tracker) State() State {
	return t.state
}

// Active reports whether the pointer is over the surface
func (t *Tracker) Active() bool {
	return t.state.Active
}
