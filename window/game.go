// Package window hosts a particle field in an ebiten window
package window

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/ambient/engine"
	"github.com/lixenwraith/ambient/pointer"
	"github.com/lixenwraith/ambient/prefs"
)

// Input is the per-tick view of window input
type Input interface {
	CursorPosition() (x, y int)
	// Pressed reports a primary button press that started this tick
	Pressed() bool
	Focused() bool
	// Toggle reports the enable/disable key pressed this tick
	Toggle() bool
	Quit() bool
}

// EbitenInput reads input from the running ebiten game
type EbitenInput struct{}

func (EbitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (EbitenInput) Pressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
func (EbitenInput) Focused() bool { return ebiten.IsFocused() }
func (EbitenInput) Toggle() bool  { return inpututil.IsKeyJustPressed(ebiten.KeyB) }
func (EbitenInput) Quit() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// Game adapts a field to ebiten's Update/Draw/Layout loop
// Input is sampled in Update; the field steps and paints in Draw
type Game struct {
	field   *engine.Field
	frames  *engine.ManualFrames
	clock   engine.Clock
	surface *Surface
	input   Input
	prefs   *prefs.Store

	width, height int
	inside        bool
	visible       bool
}

// NewGame builds the field with an ebiten surface unless opts supplies one
func NewGame(store *prefs.Store, opts engine.Options) *Game {
	g := &Game{
		frames:  &engine.ManualFrames{},
		clock:   opts.Clock,
		input:   EbitenInput{},
		prefs:   store,
		visible: !opts.Hidden,
	}
	if g.clock == nil {
		g.clock = engine.NewTimeProvider()
	}
	g.surface = NewSurface()
	if opts.Surface == nil {
		opts.Surface = g.surface
	}
	opts.Frames = g.frames
	opts.Clock = g.clock
	if store != nil {
		opts.Disabled = !store.Enabled()
	}
	g.field = engine.NewField(opts)
	return g
}

// SetInput replaces the input source
func (g *Game) SetInput(in Input) {
	g.input = in
}

// Field returns the hosted field
func (g *Game) Field() *engine.Field {
	return g.field
}

func (g *Game) Update() error {
	in := g.input
	if in.Quit() {
		g.field.Close()
		return ebiten.Termination
	}

	if focused := in.Focused(); focused != g.visible {
		g.visible = focused
		g.field.SetVisible(focused)
	}

	if in.Toggle() {
		g.toggleEnabled()
	}

	x, y := in.CursorPosition()
	inside := x >= 0 && y >= 0 && x < g.width && y < g.height
	switch {
	case inside && in.Pressed():
		g.field.HandlePointer(pointer.Sample{X: float64(x), Y: float64(y), Kind: pointer.KindDown})
	case inside:
		g.field.HandlePointer(pointer.Sample{X: float64(x), Y: float64(y), Kind: pointer.KindMove})
	case g.inside:
		g.field.HandlePointer(pointer.Sample{Kind: pointer.KindLeave})
	}
	g.inside = inside
	return nil
}

func (g *Game) toggleEnabled() {
	enabled := !g.field.Scheduler().Enabled()
	if g.prefs != nil {
		var err error
		if enabled, err = g.prefs.Toggle(); err != nil {
			log.Printf("[%s] preference not saved: %v", g.field.ID(), err)
		}
	}
	g.field.SetEnabled(enabled)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	if g.frames.Take() {
		g.field.Frame(g.clock.Now())
	}
}

// Layout tracks the window size in device-independent pixels, which are simulation units
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
