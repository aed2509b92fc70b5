package render

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a stateful 2D drawing target in simulation units
// Drawing state (blend, color, line width) persists across calls until changed,
// so callers batch primitives that share state
type Surface interface {
	// Clear erases the whole surface to transparent black
	Clear()
	SetBlend(mode BlendMode)
	SetColor(c RGB)
	SetLineWidth(width float64)
	// Line strokes a segment in the current color at alpha
	Line(a, b r2.Vec, alpha float64)
	// Glow fills a disc of radius with a soft halo of extent glow around it
	Glow(center r2.Vec, radius, glow, alpha float64)
}
