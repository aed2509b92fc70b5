// Package snapshot renders a particle field headlessly to PNG
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/lixenwraith/ambient/render"
)

const (
	// dpi of 72 makes one vg point one pixel
	dpi = 72
	// haloRings approximates the radial glow falloff with stacked discs
	haloRings = 4
	haloAlpha = 0.5
)

// Surface draws onto a vgimg raster canvas
// The canvas has no additive mode, so additive draws composite source-over at their alpha
type Surface struct {
	canvas *vgimg.Canvas
	width  float64
	height float64

	blend render.BlendMode
	color render.RGB
}

// NewSurface creates a black canvas of width x height pixels
func NewSurface(width, height int) *Surface {
	s := &Surface{
		canvas: vgimg.NewWith(
			vgimg.UseWH(vg.Length(width), vg.Length(height)),
			vgimg.UseDPI(dpi),
			vgimg.UseBackgroundColor(color.Black),
		),
		width:  float64(width),
		height: float64(height),
	}
	return s
}

// point converts simulation coordinates (y down) to canvas coordinates (y up)
func (s *Surface) point(p r2.Vec) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(s.height - p.Y)}
}

func (s *Surface) Clear() {
	var rect vg.Path
	rect.Move(vg.Point{})
	rect.Line(vg.Point{X: vg.Length(s.width)})
	rect.Line(vg.Point{X: vg.Length(s.width), Y: vg.Length(s.height)})
	rect.Line(vg.Point{Y: vg.Length(s.height)})
	rect.Close()
	s.canvas.SetColor(color.Black)
	s.canvas.Fill(rect)
}

func (s *Surface) SetBlend(mode render.BlendMode) { s.blend = mode }
func (s *Surface) SetColor(c render.RGB)          { s.color = c }

func (s *Surface) SetLineWidth(width float64) {
	s.canvas.SetLineWidth(vg.Length(width))
}

func (s *Surface) Line(a, b r2.Vec, alpha float64) {
	var path vg.Path
	path.Move(s.point(a))
	path.Line(s.point(b))
	s.canvas.SetColor(s.rgba(alpha))
	s.canvas.Stroke(path)
}

func (s *Surface) Glow(center r2.Vec, radius, glow, alpha float64) {
	if glow > radius {
		ring := alpha * haloAlpha / haloRings
		for i := 0; i < haloRings; i++ {
			r := glow * (1 - float64(i)/haloRings)
			if r <= radius {
				break
			}
			s.disc(center, r, ring)
		}
	}
	s.disc(center, radius, alpha)
}

func (s *Surface) disc(center r2.Vec, radius, alpha float64) {
	var path vg.Path
	path.Arc(s.point(center), vg.Length(radius), 0, 2*math.Pi)
	path.Close()
	s.canvas.SetColor(s.rgba(alpha))
	s.canvas.Fill(path)
}

func (s *Surface) rgba(alpha float64) color.NRGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: s.color.R, G: s.color.G, B: s.color.B, A: uint8(255 * a)}
}

// Image returns the rendered raster
func (s *Surface) Image() image.Image {
	return s.canvas.Image()
}

// WritePNG encodes the canvas as PNG
func (s *Surface) WritePNG(w io.Writer) error {
	if _, err := (vgimg.PngCanvas{Canvas: s.canvas}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
