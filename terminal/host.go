// Package terminal hosts a particle field in a tcell screen
// Cells are mapped to a virtual pixel grid so field tuning stays in pixels
package terminal

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambient/core"
	"github.com/lixenwraith/ambient/engine"
	"github.com/lixenwraith/ambient/pointer"
	"github.com/lixenwraith/ambient/prefs"
	"github.com/lixenwraith/ambient/render"
)

const (
	// CellWidth and CellHeight are the virtual pixel size of one terminal cell
	CellWidth  = 8.0
	CellHeight = 16.0

	// FrameInterval is the refresh period, ~60 FPS
	FrameInterval = 16 * time.Millisecond

	eventBuffer = 100
)

// Host owns a screen, its cell buffer and the field painting into it
// All methods run on the goroutine that calls Run
type Host struct {
	screen tcell.Screen
	buffer *render.CellBuffer
	field  *engine.Field
	frames *engine.ManualFrames
	prefs  *prefs.Store

	buttons tcell.ButtonMask
	// dirty marks the buffer changed since the last flush
	dirty bool
}

// NewHost binds a field to screen, opts.Surface and opts.Frames are supplied by the host
func NewHost(screen tcell.Screen, store *prefs.Store, opts engine.Options) *Host {
	width, height := screen.Size()
	h := &Host{
		screen: screen,
		buffer: render.NewCellBuffer(width, height, CellWidth, CellHeight),
		frames: &engine.ManualFrames{},
		prefs:  store,
	}

	opts.Surface = h.buffer
	opts.Frames = h.frames
	if store != nil {
		opts.Disabled = !store.Enabled()
	}
	h.field = engine.NewField(opts)
	h.field.Resize(h.buffer.PixelSize())
	h.dirty = true
	return h
}

// Field returns the hosted field
func (h *Host) Field() *engine.Field {
	return h.field
}

// Buffer returns the cell buffer the field paints into
func (h *Host) Buffer() *render.CellBuffer {
	return h.buffer
}

// Run pumps screen events and frames until quit is requested
func (h *Host) Run() {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { h.pollEvents(eventChan, done) })

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !h.HandleEvent(ev) {
				h.field.Close()
				return
			}
			h.Flush()

		case now := <-ticker.C:
			h.Step(now)
		}
	}
}

// pollEvents forwards screen events until the screen finalizes or done closes
func (h *Host) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Step delivers a pending frame request and flushes the result
func (h *Host) Step(now time.Time) {
	if h.frames.Take() {
		h.field.Frame(now)
		h.dirty = true
	}
	h.Flush()
}

// HandleEvent translates one screen event, false means quit
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventFocus:
		h.field.SetVisible(ev.Focused)
		h.dirty = true

	case *tcell.EventResize:
		width, height := ev.Size()
		h.buffer.Resize(width, height)
		h.field.Resize(h.buffer.PixelSize())
		h.screen.Sync()
		h.dirty = true
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'b', 'B':
			h.toggleEnabled()
		}
	}
	return true
}

// toggleEnabled flips the persisted preference and applies it
func (h *Host) toggleEnabled() {
	enabled := !h.field.Scheduler().Enabled()
	if h.prefs != nil {
		var err error
		if enabled, err = h.prefs.Toggle(); err != nil {
			log.Printf("[%s] preference not saved: %v", h.field.ID(), err)
		}
	}
	h.field.SetEnabled(enabled)
	h.dirty = true
}

// handleMouse maps motion to Move and a fresh primary press to Down
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := h.buffer.ToPixels(x, y)
	buttons := ev.Buttons()

	kind := pointer.KindMove
	if buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0 {
		kind = pointer.KindDown
	}
	h.buttons = buttons

	h.field.HandlePointer(pointer.Sample{X: p.X, Y: p.Y, Kind: kind})
}

// Flush copies the cell buffer to the screen when it changed
func (h *Host) Flush() {
	if !h.dirty {
		return
	}
	h.dirty = false

	width, _ := h.buffer.Size()
	for i, c := range h.buffer.Cells() {
		style := tcell.StyleDefault.
			Foreground(toColor(c.Fg)).
			Background(toColor(c.Bg))
		h.screen.SetContent(i%width, i/width, c.Rune, nil, style)
	}
	h.screen.Show()
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
