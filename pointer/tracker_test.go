package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFirstSampleHasZeroVelocity(t *testing.T) {
	tr := NewTracker(0.85)
	tr.Sample(100, 50)
	tr.Tick(0.016)

	s := tr.State()
	assert.True(t, s.Active)
	assert.Equal(t, r2.Vec{X: 100, Y: 50}, s.Pos)
	assert.Equal(t, r2.Vec{}, s.Vel)
}

func TestVelocityEstimate(t *testing.T) {
	tr := NewTracker(0.85)
	tr.Sample(0, 0)
	tr.Tick(0.02)

	tr.Sample(10, -4)
	tr.Tick(0.02)

	assert.InDelta(t, 500, tr.State().Vel.X, 1e-9)
	assert.InDelta(t, -200, tr.State().Vel.Y, 1e-9)

	// A stationary pointer reports zero velocity on the next tick
	tr.Tick(0.02)
	assert.Equal(t, r2.Vec{}, tr.State().Vel)
}

func TestVelocityIsFrameRateIndependent(t *testing.T) {
	fast := NewTracker(0.85)
	slow := NewTracker(0.85)
	fast.Sample(0, 0)
	slow.Sample(0, 0)
	fast.Tick(0.01)
	slow.Tick(0.04)

	// Same pointer speed (300 px/s) observed at different frame rates
	fast.Sample(3, 0)
	slow.Sample(12, 0)
	fast.Tick(0.01)
	slow.Tick(0.04)

	assert.InDelta(t, fast.State().Vel.X, slow.State().Vel.X, 1e-9)
}

func TestLeaveDecaysVelocity(t *testing.T) {
	tr := NewTracker(0.85)
	tr.Sample(0, 0)
	tr.Tick(0.1)
	tr.Sample(10, 0)
	tr.Tick(0.1)
	assert.InDelta(t, 100, tr.State().Vel.X, 1e-9)

	tr.Handle(Sample{Kind: KindLeave})
	assert.False(t, tr.Active())

	tr.Tick(0.1)
	assert.InDelta(t, 85, tr.State().Vel.X, 1e-9)
	tr.Tick(0.1)
	assert.InDelta(t, 72.25, tr.State().Vel.X, 1e-9)
}

func TestZeroDeltaDecays(t *testing.T) {
	tr := NewTracker(0.5)
	tr.Sample(0, 0)
	tr.Tick(0.1)
	tr.Sample(10, 0)
	tr.Tick(0.1)

	tr.Sample(20, 0)
	tr.Tick(0)
	assert.InDelta(t, 50, tr.State().Vel.X, 1e-9)
}

func TestReactivationReseeds(t *testing.T) {
	tr := NewTracker(0.85)
	tr.Sample(0, 0)
	tr.Tick(0.02)
	tr.Leave()
	tr.Tick(0.02)

	// Re-entering far away must not register as a huge jump
	tr.Handle(Sample{X: 500, Y: 500, Kind: KindDown})
	tr.Tick(0.02)
	assert.Equal(t, r2.Vec{}, tr.State().Vel)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindMove, "move"},
		{KindDown, "down"},
		{KindLeave, "leave"},
		{KindCancel, "cancel"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}
