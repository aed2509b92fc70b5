package particle

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(parameter.Default(), rand.New(rand.NewPCG(1, 2)))
	s.SetBounds(800, 600)
	return s
}

func TestSeedRanges(t *testing.T) {
	cfg := parameter.Default()
	rng := rand.New(rand.NewPCG(7, 7))

	minSpeed := cfg.SpeedFraction[0] * cfg.SpeedLimit * cfg.BaseSpeedDamping
	maxSpeed := cfg.SpeedFraction[1] * cfg.SpeedLimit * cfg.BaseSpeedDamping

	for i := 0; i < 500; i++ {
		var p Particle
		Seed(&p, cfg, rng, 800, 600)

		require.GreaterOrEqual(t, p.Pos.X, 0.0)
		require.Less(t, p.Pos.X, 800.0)
		require.GreaterOrEqual(t, p.Pos.Y, 0.0)
		require.Less(t, p.Pos.Y, 600.0)

		require.GreaterOrEqual(t, p.BaseSpeed, minSpeed)
		require.LessOrEqual(t, p.BaseSpeed, maxSpeed)
		require.InDelta(t, p.BaseSpeed, r2.Norm(p.Vel), 1e-9, "initial speed is the free-flight speed")
		require.LessOrEqual(t, p.BaseSpeed, cfg.SpeedLimit)

		require.GreaterOrEqual(t, p.Size, cfg.SizeRange[0])
		require.LessOrEqual(t, p.Size, cfg.SizeRange[1])
		require.Equal(t, p.BaseAlpha, p.Alpha)
		require.Equal(t, cfg.Palette[p.ColorIndex], p.Color)
		require.GreaterOrEqual(t, p.TwinklePhase, 0.0)
		require.Less(t, p.TwinklePhase, 2*math.Pi)
	}
}

func TestResizeGrowShrink(t *testing.T) {
	s := newTestStore(t)

	s.Resize(100)
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, 100, s.Allocated())
	assert.Equal(t, 0, s.Pooled())

	survivor := s.Particles()[10]
	pos := survivor.Pos

	s.Resize(40)
	assert.Equal(t, 40, s.Len())
	assert.Equal(t, 60, s.Pooled())
	assert.Same(t, survivor, s.Particles()[10])
	assert.Equal(t, pos, survivor.Pos, "shrinking leaves survivors untouched")

	s.Resize(120)
	assert.Equal(t, 120, s.Len())
	assert.Equal(t, 0, s.Pooled())
	assert.Equal(t, 120, s.Allocated(), "regrowth drains the pool before allocating")
}

func TestResizeStableTarget(t *testing.T) {
	s := newTestStore(t)
	s.Resize(150)
	allocated := s.Allocated()

	allocs := testing.AllocsPerRun(100, func() {
		s.Resize(150)
	})
	assert.Zero(t, allocs)
	assert.Equal(t, allocated, s.Allocated())
}

func TestResizeOscillationReusesPool(t *testing.T) {
	s := newTestStore(t)
	s.Resize(150)

	for i := 0; i < 20; i++ {
		s.Resize(90)
		s.Resize(150)
	}
	assert.Equal(t, 150, s.Allocated())

	allocs := testing.AllocsPerRun(50, func() {
		s.Resize(90)
		s.Resize(150)
	})
	assert.Zero(t, allocs)
}

func TestResetReseeds(t *testing.T) {
	s := newTestStore(t)
	s.Resize(50)
	s.SetBounds(100, 100)

	s.Reset(50)
	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 50, s.Allocated())
	for _, p := range s.Particles() {
		assert.LessOrEqual(t, p.Pos.X, 100.0)
		assert.LessOrEqual(t, p.Pos.Y, 100.0)
	}
}

func TestReleaseNil(t *testing.T) {
	s := newTestStore(t)
	s.Release(nil)
	assert.Equal(t, 0, s.Pooled())
}
