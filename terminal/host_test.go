package terminal

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ambient/engine"
	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/prefs"
)

// MockScreen is a minimal mock for tcell.Screen
type MockScreen struct {
	tcell.Screen
	width, height int

	contents map[[2]int]rune
	styles   map[[2]int]tcell.Style
	shows    int
	syncs    int
}

func newMockScreen(width, height int) *MockScreen {
	return &MockScreen{
		width:    width,
		height:   height,
		contents: make(map[[2]int]rune),
		styles:   make(map[[2]int]tcell.Style),
	}
}

func (m *MockScreen) Size() (int, int) {
	return m.width, m.height
}

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.contents[[2]int{x, y}] = mainc
	m.styles[[2]int{x, y}] = style
}

func (m *MockScreen) Show() {
	m.shows++
}

func (m *MockScreen) Sync() {
	m.syncs++
}

func newTestHost(t *testing.T, screen *MockScreen, store *prefs.Store) *Host {
	t.Helper()
	return NewHost(screen, store, engine.Options{
		Rand:  rand.New(rand.NewPCG(11, 13)),
		Clock: engine.NewMockTimeProvider(time.Unix(0, 0)),
	})
}

func TestHostSizesFieldInPixels(t *testing.T) {
	screen := newMockScreen(240, 68)
	h := newTestHost(t, screen, nil)

	w, ht := h.Buffer().PixelSize()
	assert.Equal(t, 1920.0, w)
	assert.Equal(t, 1088.0, ht)

	h.Step(time.Unix(0, int64(16*time.Millisecond)))
	assert.Equal(t, parameter.MaxParticles, h.Field().Store().Len())
}

func TestHostFlushWritesEveryCell(t *testing.T) {
	screen := newMockScreen(20, 10)
	h := newTestHost(t, screen, nil)

	h.Step(time.Unix(0, int64(16*time.Millisecond)))
	assert.Len(t, screen.contents, 200)
	assert.Equal(t, 1, screen.shows)

	// Nothing pending and nothing changed
	h.Flush()
	assert.Equal(t, 1, screen.shows)
}

func TestHostQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, newMockScreen(10, 5), nil)
			assert.False(t, h.HandleEvent(tt.ev))
		})
	}

	h := newTestHost(t, newMockScreen(10, 5), nil)
	assert.True(t, h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestHostToggleEnabledPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefs.FileName)
	store, err := prefs.Open(path)
	require.NoError(t, err)

	h := newTestHost(t, newMockScreen(20, 10), store)
	require.True(t, h.Field().Scheduler().Running())

	h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	assert.False(t, h.Field().Scheduler().Running())

	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	assert.False(t, reopened.Enabled())

	// A disabled preference is honored on the next start
	h2 := newTestHost(t, newMockScreen(20, 10), reopened)
	assert.False(t, h2.Field().Scheduler().Running())

	h2.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	assert.True(t, h2.Field().Scheduler().Running())
}

func TestHostToggleWithoutPrefs(t *testing.T) {
	h := newTestHost(t, newMockScreen(20, 10), nil)
	h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	assert.False(t, h.Field().Scheduler().Enabled())
}

func TestHostMouseMapsToPixels(t *testing.T) {
	h := newTestHost(t, newMockScreen(40, 20), nil)

	h.HandleEvent(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone))
	ptr := h.Field().Pointer()
	require.True(t, ptr.Active)
	assert.Equal(t, 5.5*CellWidth, ptr.Pos.X)
	assert.Equal(t, 3.5*CellHeight, ptr.Pos.Y)
	assert.Zero(t, h.Field().Sparks().Len())
}

func TestHostPressSpawnsOnce(t *testing.T) {
	h := newTestHost(t, newMockScreen(40, 20), nil)

	h.HandleEvent(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, h.Field().Sparks().Len())

	// Dragging with the button held is motion, not a new press
	h.HandleEvent(tcell.NewEventMouse(6, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, h.Field().Sparks().Len())

	h.HandleEvent(tcell.NewEventMouse(6, 3, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(6, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 2, h.Field().Sparks().Len())
}

func TestHostFocusControlsVisibility(t *testing.T) {
	screen := newMockScreen(20, 10)
	h := newTestHost(t, screen, nil)
	h.Step(time.Unix(0, int64(16*time.Millisecond)))
	shows := screen.shows

	h.HandleEvent(tcell.NewEventFocus(false))
	assert.Equal(t, engine.StateStopped, h.Field().State())
	h.Flush()
	assert.Equal(t, shows+1, screen.shows, "cleared buffer is flushed")
	for pos, r := range screen.contents {
		require.Equal(t, ' ', r, "cell %v not cleared", pos)
	}

	h.HandleEvent(tcell.NewEventFocus(true))
	assert.Equal(t, engine.StateRunning, h.Field().State())
}

func TestHostResize(t *testing.T) {
	screen := newMockScreen(20, 10)
	h := newTestHost(t, screen, nil)

	h.HandleEvent(tcell.NewEventResize(240, 68))
	assert.Equal(t, 1, screen.syncs)
	w, ht := h.Buffer().Size()
	assert.Equal(t, 240, w)
	assert.Equal(t, 68, ht)

	h.Step(time.Unix(0, int64(16*time.Millisecond)))
	assert.Equal(t, parameter.MaxParticles, h.Field().Store().Len())
}

func TestHostStepWithoutRequest(t *testing.T) {
	screen := newMockScreen(20, 10)
	h := newTestHost(t, screen, nil)
	h.HandleEvent(tcell.NewEventFocus(false))
	h.Flush()
	shows := screen.shows

	h.Step(time.Unix(1, 0))
	assert.Equal(t, shows, screen.shows, "stopped field produces no frames")
	assert.Equal(t, uint64(0), h.Field().Scheduler().Ticks())
}

// pollingScreen feeds PollEvent from a script, then repeats the last event
type pollingScreen struct {
	*MockScreen
	script []tcell.Event
	polled int
}

func (p *pollingScreen) PollEvent() tcell.Event {
	p.polled++
	if len(p.script) == 0 {
		return nil
	}
	ev := p.script[0]
	if len(p.script) > 1 {
		p.script = p.script[1:]
	}
	return ev
}

func drainUntilClosed(t *testing.T, events <-chan tcell.Event) int {
	t.Helper()
	n := 0
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return n
			}
			n++
		case <-timeout:
			t.Fatal("event poller did not stop")
			return n
		}
	}
}

func TestPollEventsStopsWhenScreenFinalizes(t *testing.T) {
	screen := &pollingScreen{MockScreen: newMockScreen(10, 5), script: []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		nil,
	}}
	h := NewHost(screen, nil, engine.Options{Rand: rand.New(rand.NewPCG(1, 2))})

	events := make(chan tcell.Event, 4)
	go h.pollEvents(events, make(chan struct{}))

	assert.Equal(t, 1, drainUntilClosed(t, events))
}

func TestPollEventsStopsWhenReaderLeaves(t *testing.T) {
	key := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen := &pollingScreen{MockScreen: newMockScreen(10, 5), script: []tcell.Event{key}}
	h := NewHost(screen, nil, engine.Options{Rand: rand.New(rand.NewPCG(1, 2))})

	// Unbuffered and unread: the poller blocks on send until done closes
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		h.pollEvents(events, done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("poller blocked after the reader left")
	}
	_, ok := <-events
	assert.False(t, ok, "events channel closed on exit")
}
