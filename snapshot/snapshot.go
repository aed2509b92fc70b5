package snapshot

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/engine"
	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/pointer"
)

// ErrSize reports a non-positive snapshot size
var ErrSize = errors.New("snapshot: width and height must be positive")

// Options describes one headless render
type Options struct {
	Width, Height int
	// Frames to simulate before capture
	Frames int
	// Delta is seconds per frame
	Delta float64
	Seed  uint64
	// Pointer, if set, hovers at this position for every frame
	Pointer *r2.Vec
	// Click spawns a spark burst at Pointer on the first frame
	Click bool
}

// DefaultOptions returns a 1280x720 capture after two simulated seconds
func DefaultOptions() Options {
	return Options{
		Width:  1280,
		Height: 720,
		Frames: 120,
		Delta:  parameter.DefaultDelta,
		Seed:   1,
	}
}

// Render simulates a field per opts and returns the surface holding the final frame
func Render(cfg *parameter.Config, opts Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, opts.Width, opts.Height)
	}

	surface := NewSurface(opts.Width, opts.Height)
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	field := engine.NewField(engine.Options{
		Config:  cfg,
		Surface: surface,
		Clock:   clock,
		Rand:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5bd1e995)),
	})

	field.Resize(float64(opts.Width), float64(opts.Height))
	step := time.Duration(opts.Delta * float64(time.Second))
	for i := 0; i < max(opts.Frames, 1); i++ {
		if opts.Pointer != nil {
			kind := pointer.KindMove
			if opts.Click && i == 0 {
				kind = pointer.KindDown
			}
			field.HandlePointer(pointer.Sample{X: opts.Pointer.X, Y: opts.Pointer.Y, Kind: kind})
		}
		field.Frame(clock.Advance(step))
	}
	return surface, nil
}

// WritePNG renders per opts and writes the final frame to w
func WritePNG(w io.Writer, cfg *parameter.Config, opts Options) error {
	surface, err := Render(cfg, opts)
	if err != nil {
		return err
	}
	return surface.WritePNG(w)
}
