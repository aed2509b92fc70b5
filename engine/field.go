package engine

import (
	"errors"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/particle"
	"github.com/lixenwraith/ambient/physics"
	"github.com/lixenwraith/ambient/pointer"
	"github.com/lixenwraith/ambient/render"
	"github.com/lixenwraith/ambient/spark"
	"github.com/lixenwraith/ambient/spatial"
	"github.com/lixenwraith/ambient/status"
)

// ErrNoSurface reports a field constructed without a drawing surface
var ErrNoSurface = errors.New("engine: no drawing surface")

// Chime is an optional sound hook fired once per spark burst
type Chime interface {
	Play(colorIndex int, intensity float64)
}

// Options configures a Field, zero values select defaults
type Options struct {
	// Config is the tuning, nil uses parameter.Default
	Config  *parameter.Config
	Surface render.Surface
	Frames  FrameSource
	Clock   Clock
	// Rand seeds every random draw, nil seeds from the clock
	Rand  *rand.Rand
	Chime Chime
	// Status receives frame metrics, nil creates a private registry
	Status *status.Registry

	// Disabled starts with the effect preference off
	Disabled bool
	// Hidden starts with the host not visible
	Hidden bool
}

// Field is one self-contained particle field bound to one surface
// Not safe for concurrent use: the host goroutine owns it and calls every method
type Field struct {
	id    uuid.UUID
	cfg   *parameter.Config
	err   error
	clock Clock

	surface    render.Surface
	store      *particle.Store
	tracker    *pointer.Tracker
	integrator *physics.Integrator
	grid       *spatial.Grid
	renderer   *render.Renderer
	sparks     *spark.System
	chime      Chime
	scheduler  *Scheduler

	// Debounced viewport, applied at the next tick boundary
	pendingW, pendingH float64
	pending            bool
	sized              bool

	stats  render.FrameStats
	closed bool

	metrics fieldMetrics
}

// fieldMetrics caches registry cells written every frame
type fieldMetrics struct {
	registry  *status.Registry
	ticks     *atomic.Int64
	particles *atomic.Int64
	lines     *atomic.Int64
	bursts    *atomic.Int64
	deltaMs   *status.AtomicFloat
	state     *status.AtomicString
}

func newFieldMetrics(r *status.Registry) fieldMetrics {
	if r == nil {
		r = status.NewRegistry()
	}
	return fieldMetrics{
		registry:  r,
		ticks:     r.Ints.Get("field.ticks"),
		particles: r.Ints.Get("field.particles"),
		lines:     r.Ints.Get("field.lines"),
		bursts:    r.Ints.Get("field.bursts"),
		deltaMs:   r.Floats.Get("field.delta_ms"),
		state:     r.Strings.Get("field.state"),
	}
}

// NewField builds a field; a nil surface yields a permanently inert field
func NewField(opts Options) *Field {
	f := &Field{
		id:      uuid.New(),
		cfg:     opts.Config,
		clock:   opts.Clock,
		metrics: newFieldMetrics(opts.Status),
	}
	if f.cfg == nil {
		f.cfg = parameter.Default()
	}
	if f.clock == nil {
		f.clock = NewTimeProvider()
	}

	if opts.Surface == nil {
		f.err = ErrNoSurface
		f.metrics.state.Store("inert")
		log.Printf("[%s] field inert: %v", f.id, f.err)
		return f
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(f.clock.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	f.surface = opts.Surface
	f.store = particle.NewStore(f.cfg, rng)
	f.tracker = pointer.NewTracker(f.cfg.PointerVelocityDecay)
	f.integrator = physics.NewIntegrator(f.cfg, rng)
	f.grid = spatial.NewGrid(f.cfg.ConnectionDistance)
	f.renderer = render.NewRenderer(f.cfg, f.surface)
	f.sparks = spark.NewSystem(f.cfg.Palette, rng)
	f.chime = opts.Chime

	f.scheduler = NewScheduler(SchedulerConfig{
		Name:         f.id.String(),
		Clock:        f.clock,
		Frames:       opts.Frames,
		Frame:        f.step,
		Clear:        f.clear,
		MaxDelta:     f.cfg.MaxDelta,
		DefaultDelta: f.cfg.DefaultDelta,
		Enabled:      !opts.Disabled,
		Visible:      !opts.Hidden,
	})

	f.publishState()
	log.Printf("[%s] field created (state=%s)", f.id, f.scheduler.State())
	return f
}

// ID returns the instance id used in logs
func (f *Field) ID() uuid.UUID {
	return f.id
}

// Ready reports whether the field has a surface and is not closed
func (f *Field) Ready() bool {
	return f.err == nil && !f.closed
}

// Err returns the construction error, if any
func (f *Field) Err() error {
	return f.err
}

// Config returns the tuning in effect
func (f *Field) Config() *parameter.Config {
	return f.cfg
}

// Resize records the latest viewport size, applied at the next tick
func (f *Field) Resize(width, height float64) {
	if !f.Ready() {
		return
	}
	f.pendingW, f.pendingH = width, height
	f.pending = true
}

// HandlePointer feeds one input sample; Down spawns a spark burst while running
func (f *Field) HandlePointer(s pointer.Sample) {
	if !f.Ready() {
		return
	}
	f.tracker.Handle(s)

	if s.Kind != pointer.KindDown || !f.scheduler.Running() {
		return
	}
	b := f.sparks.Spawn(r2.Vec{X: s.X, Y: s.Y}, f.clock.Now())
	if f.chime != nil {
		f.chime.Play(b.ColorIndex, float64(len(b.Sparks))/float64(parameter.SparkCountMax))
	}
}

// SetVisible applies host visibility, hiding releases the pointer
func (f *Field) SetVisible(visible bool) {
	if !f.Ready() {
		return
	}
	if !visible {
		f.tracker.Leave()
	}
	f.scheduler.SetVisible(visible)
	f.publishState()
}

// SetEnabled applies the effect preference, disabling releases the pointer
func (f *Field) SetEnabled(enabled bool) {
	if !f.Ready() {
		return
	}
	if !enabled {
		f.tracker.Leave()
	}
	f.scheduler.SetEnabled(enabled)
	f.publishState()
}

// Tick runs one frame of delta seconds, false when the field is not running
func (f *Field) Tick(delta float64) bool {
	if !f.Ready() {
		return false
	}
	return f.scheduler.Tick(delta)
}

// Frame runs one frame timed by the clock, false when the field is not running
func (f *Field) Frame(now time.Time) bool {
	if !f.Ready() {
		return false
	}
	return f.scheduler.Frame(now)
}

// Close stops the loop, drops live bursts and turns every later call into a no-op
func (f *Field) Close() {
	if !f.Ready() {
		return
	}
	f.scheduler.Teardown()
	f.sparks.Clear()
	f.closed = true
	f.metrics.state.Store("closed")
	f.metrics.bursts.Store(0)
	log.Printf("[%s] field closed after %d ticks", f.id, f.scheduler.Ticks())
}

// State returns the scheduler state, stopped for an inert field
func (f *Field) State() State {
	if f.scheduler == nil {
		return StateStopped
	}
	return f.scheduler.State()
}

// Scheduler exposes the loop driver, nil for an inert field
func (f *Field) Scheduler() *Scheduler {
	return f.scheduler
}

// Store exposes the particle population, nil for an inert field
func (f *Field) Store() *particle.Store {
	return f.store
}

// Sparks exposes the burst layer, nil for an inert field
func (f *Field) Sparks() *spark.System {
	return f.sparks
}

// Pointer returns the tracked pointer state
func (f *Field) Pointer() pointer.State {
	if f.tracker == nil {
		return pointer.State{}
	}
	return f.tracker.State()
}

// Status returns the registry the field publishes metrics into
func (f *Field) Status() *status.Registry {
	return f.metrics.registry
}

// Stats returns the summary of the last painted frame
func (f *Field) Stats() render.FrameStats {
	return f.stats
}

// step is one frame: input, physics, index, paint, effects
func (f *Field) step(delta float64) {
	f.applyResize()

	f.tracker.Tick(delta)
	width, height := f.store.Bounds()
	f.integrator.Step(f.store.Particles(), f.tracker.State(), delta, width, height)
	f.grid.Rebuild(f.store)
	f.stats = f.renderer.DrawFrame(f.store, f.grid)

	f.sparks.Update(delta)
	f.sparks.Draw(f.surface)

	m := &f.metrics
	m.ticks.Add(1)
	m.particles.Store(int64(f.stats.Particles))
	m.lines.Store(int64(f.stats.Lines))
	m.bursts.Store(int64(f.sparks.Len()))
	m.deltaMs.Set(delta * 1000)
}

// clear wipes the surface on every stop, live bursts are dropped with it
func (f *Field) clear() {
	f.sparks.Clear()
	f.metrics.bursts.Store(0)
	f.renderer.Clear()
}

func (f *Field) publishState() {
	f.metrics.state.Store(f.scheduler.State().String())
}

// applyResize adopts the pending viewport
// The first usable size seeds a full population, later sizes only add or retire particles
func (f *Field) applyResize() {
	if !f.pending {
		return
	}
	f.pending = false

	width, height := f.pendingW, f.pendingH
	target := f.cfg.TargetCount(width, height)
	f.store.SetBounds(max(width, 0), max(height, 0))

	if !f.sized && target > 0 {
		f.store.Reset(target)
		f.sized = true
	} else {
		f.store.Resize(target)
	}
	log.Printf("[%s] viewport %.0fx%.0f, %d particles", f.id, width, height, f.store.Len())
}
