package snapshot

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/parameter/visual"
	"github.com/lixenwraith/ambient/render"
)

func litPixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r|g|bl != 0 {
				n++
			}
		}
	}
	return n
}

func TestRenderProducesImage(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Frames = 320, 200, 10

	s, err := Render(parameter.Default(), opts)
	require.NoError(t, err)

	img := s.Image()
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
	assert.Positive(t, litPixels(img))
}

func TestRenderIsDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Frames = 160, 120, 5

	var a, b bytes.Buffer
	require.NoError(t, WritePNG(&a, parameter.Default(), opts))
	require.NoError(t, WritePNG(&b, parameter.Default(), opts))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWritePNGDecodes(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Frames = 64, 48, 2
	opts.Pointer = &r2.Vec{X: 32, Y: 24}
	opts.Click = true

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, parameter.Default(), opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
}

func TestRenderRejectsEmptySize(t *testing.T) {
	_, err := Render(parameter.Default(), Options{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrSize)
}

func TestSurfaceFlipsY(t *testing.T) {
	s := NewSurface(40, 40)
	s.SetBlend(render.BlendAdd)
	s.SetColor(visual.White)
	s.Glow(r2.Vec{X: 10, Y: 5}, 3, 0, 1)

	img := s.Image()
	r, _, _, _ := img.At(10, 5).RGBA()
	assert.NotZero(t, r, "disc drawn at top-left in simulation coordinates")
	r, _, _, _ = img.At(10, 34).RGBA()
	assert.Zero(t, r, "mirror position stays dark")

	s.Clear()
	assert.Zero(t, litPixels(s.Image()))
}
