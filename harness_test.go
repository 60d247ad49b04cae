package spread

import (
	"time"

	"github.com/tanema/gween/ease"
)

// fakeWindow implements Window for tests. hidden stands in for the host
// hiding a minimized window from enumeration.
type fakeWindow struct {
	id       uint64
	geo      Rect
	parent   *fakeWindow
	children []*fakeWindow
	hidden   bool
}

func newWindow(id uint64, x, y, w, h float64) *fakeWindow {
	return &fakeWindow{id: id, geo: Rect{X: x, Y: y, Width: w, Height: h}}
}

func addChild(parent *fakeWindow, id uint64, x, y, w, h float64) *fakeWindow {
	c := newWindow(id, x, y, w, h)
	c.parent = parent
	parent.children = append(parent.children, c)
	return c
}

func (w *fakeWindow) ID() uint64     { return w.id }
func (w *fakeWindow) Geometry() Rect { return w.geo }

// Parent returns an untyped nil for roots so Window comparisons behave.
func (w *fakeWindow) Parent() Window {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

func (w *fakeWindow) Children() []Window {
	out := make([]Window, len(w.children))
	for i, c := range w.children {
		out[i] = c
	}
	return out
}

// fakeHost implements Host over a plain window slice. A window counts as
// on the current workspace when its untransformed center lies inside the
// output rectangle.
type fakeHost struct {
	windows  []*fakeWindow
	workarea Rect
	output   Rect
	current  Point
	active   *fakeWindow

	transforms map[uint64]*Transform

	grabOK  bool
	grabbed bool
	claimOK bool
	claimed bool

	claims     int
	grabs      int
	releases   int
	focused    []uint64 // 0 records a cleared focus
	closed     []uint64
	requested  []Point
	frames     int
	damages    int
	damageAlls int
}

func newFakeHost(ws ...*fakeWindow) *fakeHost {
	return &fakeHost{
		windows:    ws,
		workarea:   Rect{Width: 1000, Height: 600},
		output:     Rect{Width: 1000, Height: 600},
		transforms: make(map[uint64]*Transform),
		grabOK:     true,
		claimOK:    true,
	}
}

func (h *fakeHost) removeWindow(w *fakeWindow) {
	for i, v := range h.windows {
		if v == w {
			h.windows = append(h.windows[:i], h.windows[i+1:]...)
			return
		}
	}
}

func (h *fakeHost) Windows(scope Scope) []Window {
	out := make([]Window, 0, len(h.windows))
	for _, w := range h.windows {
		if w.hidden {
			continue
		}
		if scope == ScopeWorkspace {
			cx, cy := w.geo.Center()
			if !h.output.Contains(cx, cy) {
				continue
			}
		}
		out = append(out, w)
	}
	return out
}

func (h *fakeHost) Workarea() Rect          { return h.workarea }
func (h *fakeHost) OutputGeometry() Rect    { return h.output }
func (h *fakeHost) CurrentWorkspace() Point { return h.current }

func (h *fakeHost) RequestWorkspace(ws Point) {
	h.requested = append(h.requested, ws)
	h.current = ws
}

func (h *fakeHost) ActiveWindow() Window {
	if h.active == nil {
		return nil
	}
	return h.active
}

func (h *fakeHost) FocusWindow(w Window) {
	if w == nil {
		h.active = nil
		h.focused = append(h.focused, 0)
		return
	}
	h.active = w.(*fakeWindow)
	h.focused = append(h.focused, w.ID())
}

func (h *fakeHost) visualRect(w *fakeWindow) Rect {
	if t, ok := h.transforms[w.id]; ok {
		return t.Apply(w.geo)
	}
	return w.geo
}

// WindowAt checks children before their parents, like a stacking order
// would.
func (h *fakeHost) WindowAt(x, y float64) Window {
	for _, w := range h.windows {
		for _, c := range w.children {
			if h.visualRect(c).Contains(x, y) {
				return c
			}
		}
	}
	for _, w := range h.windows {
		if h.visualRect(w).Contains(x, y) {
			return w
		}
	}
	return nil
}

func (h *fakeHost) CloseWindow(w Window) {
	h.closed = append(h.closed, w.ID())
}

func (h *fakeHost) InstallTransform(w Window, t *Transform) {
	h.transforms[w.ID()] = t
}

func (h *fakeHost) RemoveTransform(w Window) {
	delete(h.transforms, w.ID())
}

func (h *fakeHost) Damage(Window)  { h.damages++ }
func (h *fakeHost) DamageAll()     { h.damageAlls++ }
func (h *fakeHost) ScheduleFrame() { h.frames++ }

func (h *fakeHost) AcquireExclusive() bool {
	if !h.claimOK || h.claimed {
		return false
	}
	h.claimed = true
	h.claims++
	return true
}

func (h *fakeHost) ReleaseExclusive() { h.claimed = false }

func (h *fakeHost) GrabInput() bool {
	if !h.grabOK {
		return false
	}
	h.grabbed = true
	h.grabs++
	return true
}

func (h *fakeHost) ReleaseInput() {
	h.grabbed = false
	h.releases++
}

// testConfig uses linear easing and one-second durations so assertions can
// advance animations with exact halves.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Spacing = 10
	cfg.Duration = time.Second
	cfg.FadeDuration = time.Second
	cfg.Easing = ease.Linear
	return cfg
}

func newTestEngine(h *fakeHost) (*Engine, *Events) {
	events := NewEvents()
	return New(h, events, testConfig()), events
}

// pump runs whole frames of dt seconds each.
func pump(e *Engine, frames int, dt float32) {
	for i := 0; i < frames; i++ {
		e.BeginFrame(dt)
		e.EndFrame()
	}
}

// settle pumps exactly past the test durations: one second of animation in
// half-second steps, then a final frame for the post-tick check.
func settle(e *Engine) {
	pump(e, 2, 0.5)
	pump(e, 1, 0.1)
}
