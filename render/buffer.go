package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter/visual"
)

// Cell is one terminal character cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Glyphs used by the cell rasterizer
const (
	runeEmpty = ' '
	runeLine  = '·'
	runeSmall = '•'
	runeLarge = '●'

	// largeRadius is the disc radius (px) from which the large glyph is used
	largeRadius = 3.0
	// haloStrength scales halo background intensity relative to the disc
	haloStrength = 0.35
)

// CellBuffer is a Surface rasterizing into terminal cells
// Simulation units are pixels; each cell covers cellW x cellH pixels
type CellBuffer struct {
	cells  []Cell
	width  int
	height int

	cellW, cellH float64

	blend BlendMode
	color RGB
}

// NewCellBuffer creates a buffer of width x height cells, each covering cellW x cellH pixels
func NewCellBuffer(width, height int, cellW, cellH float64) *CellBuffer {
	b := &CellBuffer{cellW: cellW, cellH: cellH}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions in cells
func (b *CellBuffer) Size() (width, height int) {
	return b.width, b.height
}

// PixelSize returns the buffer dimensions in simulation units
func (b *CellBuffer) PixelSize() (width, height float64) {
	return float64(b.width) * b.cellW, float64(b.height) * b.cellH
}

// ToPixels maps a cell coordinate to the pixel position of its center
func (b *CellBuffer) ToPixels(x, y int) r2.Vec {
	return r2.Vec{X: (float64(x) + 0.5) * b.cellW, Y: (float64(y) + 0.5) * b.cellH}
}

// Cells returns the row-major cell slice, valid until the next Resize
func (b *CellBuffer) Cells() []Cell {
	return b.cells
}

// Cell returns the cell at x, y
func (b *CellBuffer) Cell(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Clear resets all cells to empty using exponential copy
func (b *CellBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: runeEmpty, Fg: visual.Black, Bg: visual.Black}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *CellBuffer) SetBlend(mode BlendMode) { b.blend = mode }
func (b *CellBuffer) SetColor(c RGB)          { b.color = c }

// SetLineWidth is a no-op: a cell is the thinnest stroke a terminal can draw
func (b *CellBuffer) SetLineWidth(float64) {}

// inBounds returns true if in screen bounds
func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// toCell maps a pixel position to its cell
func (b *CellBuffer) toCell(p r2.Vec) (int, int) {
	return int(math.Floor(p.X / b.cellW)), int(math.Floor(p.Y / b.cellH))
}

// Line walks the segment cell by cell (DDA), dotting empty cells and tinting foregrounds
func (b *CellBuffer) Line(a, c r2.Vec, alpha float64) {
	x0, y0 := b.toCell(a)
	x1, y1 := b.toCell(c)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		return
	}

	dx := float64(x1-x0) / float64(steps)
	dy := float64(y1-y0) / float64(steps)
	// Endpoints belong to the particles, only the interior is stroked
	for i := 1; i < steps; i++ {
		x := x0 + int(math.Round(dx*float64(i)))
		y := y0 + int(math.Round(dy*float64(i)))
		if !b.inBounds(x, y) {
			continue
		}
		dst := &b.cells[y*b.width+x]
		if dst.Rune == runeEmpty {
			dst.Rune = runeLine
		}
		dst.Fg = b.blend.Compose(dst.Fg, b.color, alpha)
	}
}

// Glow plots the disc glyph in the center cell and composites a halo into neighboring backgrounds
func (b *CellBuffer) Glow(center r2.Vec, radius, glow, alpha float64) {
	cx, cy := b.toCell(center)
	if b.inBounds(cx, cy) {
		dst := &b.cells[cy*b.width+cx]
		if radius >= largeRadius {
			dst.Rune = runeLarge
		} else if dst.Rune != runeLarge {
			dst.Rune = runeSmall
		}
		dst.Fg = b.blend.Compose(dst.Fg, b.color, alpha)
	}

	if glow <= 0 {
		return
	}
	rx := int(math.Ceil(glow / b.cellW))
	ry := int(math.Ceil(glow / b.cellH))
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !b.inBounds(x, y) {
				continue
			}
			d := r2.Norm(r2.Sub(b.ToPixels(x, y), center))
			if d >= glow {
				continue
			}
			falloff := 1 - d/glow
			dst := &b.cells[y*b.width+x]
			dst.Bg = b.blend.Compose(dst.Bg, b.color, alpha*haloStrength*falloff*falloff)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
