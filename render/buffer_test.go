package render

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter/visual"
)

func TestCellBufferClear(t *testing.T) {
	b := NewCellBuffer(7, 3, 8, 16)
	b.SetColor(visual.Amber)
	b.SetBlend(BlendAdd)
	b.Glow(b.ToPixels(3, 1), 2, 20, 1)

	b.Clear()
	for i, c := range b.Cells() {
		if c.Rune != ' ' || c.Fg != visual.Black || c.Bg != visual.Black {
			t.Fatalf("cell %d not cleared: %+v", i, c)
		}
	}
}

func TestCellBufferResize(t *testing.T) {
	b := NewCellBuffer(10, 10, 8, 16)
	if w, h := b.PixelSize(); w != 80 || h != 160 {
		t.Errorf("pixel size = %vx%v, want 80x160", w, h)
	}

	b.Resize(4, 5)
	if w, h := b.Size(); w != 4 || h != 5 {
		t.Errorf("size = %dx%d, want 4x5", w, h)
	}
	if len(b.Cells()) != 20 {
		t.Errorf("expected 20 cells, got %d", len(b.Cells()))
	}
	if cap(b.Cells()) != 100 {
		t.Errorf("shrinking must keep capacity, got %d", cap(b.Cells()))
	}

	b.Resize(-1, 3)
	if len(b.Cells()) != 0 {
		t.Errorf("negative size must leave an empty buffer")
	}
	b.Clear()
}

func TestCellBufferGlowGlyph(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   rune
	}{
		{"small disc", 1.5, '•'},
		{"large disc", 4.5, '●'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCellBuffer(5, 5, 8, 16)
			b.SetBlend(BlendAdd)
			b.SetColor(visual.SkyBlue)
			b.Glow(b.ToPixels(2, 2), tt.radius, 0, 1)

			c, _ := b.Cell(2, 2)
			if c.Rune != tt.want {
				t.Errorf("rune = %q, want %q", c.Rune, tt.want)
			}
			if c.Fg != visual.SkyBlue {
				t.Errorf("fg = %+v, want %+v", c.Fg, visual.SkyBlue)
			}
			if n, _ := b.Cell(1, 2); n.Bg != visual.Black {
				t.Errorf("zero glow must not tint neighbors, got %+v", n.Bg)
			}
		})
	}
}

func TestCellBufferSmallGlowKeepsLarge(t *testing.T) {
	b := NewCellBuffer(3, 3, 8, 16)
	b.SetBlend(BlendAdd)
	b.Glow(b.ToPixels(1, 1), 4, 0, 1)
	b.Glow(b.ToPixels(1, 1), 1, 0, 1)

	if c, _ := b.Cell(1, 1); c.Rune != '●' {
		t.Errorf("large glyph overwritten by small one: %q", c.Rune)
	}
}

func TestCellBufferGlowHalo(t *testing.T) {
	b := NewCellBuffer(9, 9, 8, 8)
	b.SetBlend(BlendAdd)
	b.SetColor(visual.White)
	b.Glow(b.ToPixels(4, 4), 2, 20, 1)

	center, _ := b.Cell(4, 4)
	near, _ := b.Cell(5, 4)
	far, _ := b.Cell(0, 0)

	if center.Bg.R <= near.Bg.R {
		t.Errorf("halo must fade outward: center %d, neighbor %d", center.Bg.R, near.Bg.R)
	}
	if near.Bg == visual.Black {
		t.Errorf("neighbor inside glow extent not tinted")
	}
	if far.Bg != visual.Black {
		t.Errorf("cell beyond glow extent tinted: %+v", far.Bg)
	}
}

func TestCellBufferGlowOffscreen(t *testing.T) {
	b := NewCellBuffer(4, 4, 8, 16)
	b.SetBlend(BlendAdd)
	b.SetColor(visual.Rose)
	b.Glow(r2.Vec{X: -100, Y: -100}, 2, 10, 1)

	for i, c := range b.Cells() {
		if c.Rune != ' ' {
			t.Fatalf("offscreen glow touched cell %d", i)
		}
	}
}

func TestCellBufferLine(t *testing.T) {
	b := NewCellBuffer(8, 3, 8, 16)
	b.SetBlend(BlendAlpha)
	b.SetColor(visual.ConnectionLine)
	b.Line(b.ToPixels(0, 1), b.ToPixels(5, 1), 1)

	for x := 0; x < 8; x++ {
		c, _ := b.Cell(x, 1)
		interior := x > 0 && x < 5
		if interior && (c.Rune != '·' || c.Fg != visual.ConnectionLine) {
			t.Errorf("cell %d not stroked: %+v", x, c)
		}
		if !interior && c.Rune != ' ' {
			t.Errorf("cell %d outside line interior stroked: %q", x, c.Rune)
		}
	}
}

func TestCellBufferLineKeepsGlyphs(t *testing.T) {
	b := NewCellBuffer(5, 1, 8, 16)
	b.SetBlend(BlendAdd)
	b.SetColor(visual.Mint)
	b.Glow(b.ToPixels(2, 0), 1, 0, 1)

	b.SetBlend(BlendAlpha)
	b.SetColor(visual.ConnectionLine)
	b.Line(b.ToPixels(0, 0), b.ToPixels(4, 0), 0.5)

	if c, _ := b.Cell(2, 0); c.Rune != '•' {
		t.Errorf("line replaced particle glyph: %q", c.Rune)
	}
}

func TestCellBufferLineSameCell(t *testing.T) {
	b := NewCellBuffer(3, 3, 8, 16)
	b.Line(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 6, Y: 14}, 1)
	for i, c := range b.Cells() {
		if c.Rune != ' ' {
			t.Fatalf("degenerate line touched cell %d", i)
		}
	}
}

func TestCellBufferImplementsSurface(t *testing.T) {
	var _ Surface = (*CellBuffer)(nil)
	var _ Surface = (*Recorder)(nil)
}
