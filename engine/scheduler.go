package engine

import (
	"log"
	"math"
	"time"
)

// State is the scheduler run state
type State uint8

const (
	StateStopped State = iota
	StateRunning
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Scheduler drives the frame loop as a two-state machine
// Running holds exactly when enabled, visible and not torn down
// Not safe for concurrent use, the owning goroutine calls every method
type Scheduler struct {
	name   string
	clock  Clock
	frames FrameSource

	frame func(delta float64)
	clear func()

	maxDelta     float64
	defaultDelta float64

	enabled  bool
	visible  bool
	tornDown bool

	state State
	last  time.Time

	ticks  uint64
	clears uint64
}

// SchedulerConfig wires a scheduler to its host and the frame it drives
type SchedulerConfig struct {
	// Name prefixes log lines
	Name   string
	Clock  Clock
	Frames FrameSource
	// Frame advances and paints one frame of delta seconds
	Frame func(delta float64)
	// Clear erases the surface when the loop stops
	Clear func()

	MaxDelta     float64
	DefaultDelta float64

	Enabled bool
	Visible bool
}

// NewScheduler creates a scheduler and enters Running if the initial flags allow it
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		name:         cfg.Name,
		clock:        cfg.Clock,
		frames:       cfg.Frames,
		frame:        cfg.Frame,
		clear:        cfg.Clear,
		maxDelta:     cfg.MaxDelta,
		defaultDelta: cfg.DefaultDelta,
		enabled:      cfg.Enabled,
		visible:      cfg.Visible,
	}
	if s.clock == nil {
		s.clock = NewTimeProvider()
	}
	if s.frames == nil {
		s.frames = &ManualFrames{}
	}
	s.sync()
	return s
}

// SetEnabled applies the user preference
func (s *Scheduler) SetEnabled(enabled bool) {
	s.enabled = enabled
	s.sync()
}

// SetVisible applies host visibility
func (s *Scheduler) SetVisible(visible bool) {
	s.visible = visible
	s.sync()
}

// Teardown stops the loop permanently
func (s *Scheduler) Teardown() {
	s.tornDown = true
	s.sync()
}

// State returns the current run state
func (s *Scheduler) State() State {
	return s.state
}

// Running reports whether frames are being produced
func (s *Scheduler) Running() bool {
	return s.state == StateRunning
}

// Enabled returns the applied preference
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Visible returns the applied visibility
func (s *Scheduler) Visible() bool {
	return s.visible
}

// Ticks returns frames run so far
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Clears returns how many times stopping erased the surface
func (s *Scheduler) Clears() uint64 {
	return s.clears
}

// ClampDelta bounds a raw elapsed time: non-positive becomes the default, large jumps are capped
func (s *Scheduler) ClampDelta(delta float64) float64 {
	if delta <= 0 || math.IsNaN(delta) {
		return s.defaultDelta
	}
	return math.Min(delta, s.maxDelta)
}

// Tick runs one frame of delta seconds and requests the next
// Returns false without side effects when stopped
func (s *Scheduler) Tick(delta float64) bool {
	if s.state != StateRunning {
		return false
	}
	s.ticks++
	if s.frame != nil {
		s.frame(s.ClampDelta(delta))
	}
	// Frame callback may have torn the loop down
	if s.state == StateRunning {
		s.frames.Request()
	}
	return true
}

// Frame is the host refresh callback, delta is derived from the clock
func (s *Scheduler) Frame(now time.Time) bool {
	if s.state != StateRunning {
		return false
	}
	delta := now.Sub(s.last).Seconds()
	s.last = now
	return s.Tick(delta)
}

// sync moves to the state implied by the flags, acting only on transitions
func (s *Scheduler) sync() {
	want := StateStopped
	if s.enabled && s.visible && !s.tornDown {
		want = StateRunning
	}
	if want == s.state {
		return
	}

	prev := s.state
	s.state = want
	log.Printf("[%s] scheduler %s -> %s (enabled=%t visible=%t torn_down=%t)",
		s.name, prev, want, s.enabled, s.visible, s.tornDown)

	switch want {
	case StateRunning:
		s.last = s.clock.Now()
		s.frames.Request()
	case StateStopped:
		s.frames.Cancel()
		if s.clear != nil {
			s.clear()
		}
		s.clears++
	}
}
