package spread

import "testing"

func TestStepRaggedGridRemap(t *testing.T) {
	// 5 windows: a full row of 3 over a short row of 2. Vertical moves
	// remap the column onto the visually nearest slot.
	g := grid{rows: 2, cols: 3, lastRowCols: 2}

	tests := []struct {
		row, col int
		key      Key
		wantRow  int
		wantCol  int
	}{
		{0, 0, KeyDown, 1, 0},
		{0, 1, KeyDown, 1, 0},
		{0, 2, KeyDown, 1, 1},
		{1, 0, KeyUp, 0, 0},
		{1, 1, KeyUp, 0, 2},

		// Vertical wrap-around passes through the remap too.
		{0, 0, KeyUp, 1, 0},
		{0, 2, KeyUp, 1, 1},
		{1, 0, KeyDown, 0, 0},
		{1, 1, KeyDown, 0, 2},

		// Horizontal wrap respects each row's own width.
		{0, 0, KeyLeft, 0, 2},
		{0, 2, KeyRight, 0, 0},
		{1, 0, KeyLeft, 1, 1},
		{1, 1, KeyRight, 1, 0},
	}
	for _, tt := range tests {
		r, c := g.step(tt.row, tt.col, tt.key)
		if r != tt.wantRow || c != tt.wantCol {
			t.Errorf("step(%d, %d, %v) = (%d, %d), want (%d, %d)",
				tt.row, tt.col, tt.key, r, c, tt.wantRow, tt.wantCol)
		}
	}
}

func TestStepSingleSlotRow(t *testing.T) {
	// 3 windows: the short row has a single slot, so no remap applies and
	// vertical moves collapse onto column 0.
	g := grid{rows: 2, cols: 2, lastRowCols: 1}

	if r, c := g.step(0, 1, KeyDown); r != 1 || c != 0 {
		t.Errorf("step(0, 1, down) = (%d, %d), want (1, 0)", r, c)
	}
	if r, c := g.step(1, 0, KeyUp); r != 0 || c != 0 {
		t.Errorf("step(1, 0, up) = (%d, %d), want (0, 0)", r, c)
	}
}

func TestStepSingleRowWrapsOntoItself(t *testing.T) {
	g := grid{rows: 1, cols: 2, lastRowCols: 2}

	if r, c := g.step(0, 0, KeyUp); r != 0 || c != 0 {
		t.Errorf("step(0, 0, up) = (%d, %d), want (0, 0)", r, c)
	}
	if r, c := g.step(0, 1, KeyDown); r != 0 || c != 1 {
		t.Errorf("step(0, 1, down) = (%d, %d), want (0, 1)", r, c)
	}
}

func TestStepAlwaysLandsOnOccupiedSlot(t *testing.T) {
	keys := []Key{KeyUp, KeyDown, KeyLeft, KeyRight}
	for n := 1; n <= 20; n++ {
		g := gridFor(n)
		for row := 0; row < g.rows; row++ {
			for col := 0; col < g.rowCols(row); col++ {
				for _, key := range keys {
					r, c := g.step(row, col, key)
					if r < 0 || r >= g.rows || c < 0 || c >= g.rowCols(r) {
						t.Errorf("n=%d: step(%d, %d, %v) = (%d, %d), unoccupied",
							n, row, col, key, r, c)
					}
				}
			}
		}
	}
}

func TestStepOppositeMovesInvertOnFullGrid(t *testing.T) {
	// With every row the same width the remap is the identity, so each
	// move is undone by its opposite.
	g := gridFor(9) // 3x3
	pairs := [][2]Key{{KeyUp, KeyDown}, {KeyLeft, KeyRight}}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.rowCols(row); col++ {
			for _, p := range pairs {
				r, c := g.step(row, col, p[0])
				r, c = g.step(r, c, p[1])
				if r != row || c != col {
					t.Errorf("(%d, %d): %v then %v = (%d, %d), want start",
						row, col, p[0], p[1], r, c)
				}
			}
		}
	}
}

func TestFindWindowExactAndFallback(t *testing.T) {
	parent := newWindow(1, 0, 0, 400, 400)
	addChild(parent, 4, 50, 50, 100, 100)
	h := newFakeHost(
		parent,
		newWindow(2, 500, 100, 400, 400),
		newWindow(3, 100, 300, 400, 400),
	)
	e, _ := newTestEngine(h)

	if !e.ToggleCurrentWorkspace() {
		t.Fatal("toggle failed")
	}

	// Three top-levels form a {2, 2, 1} grid in ID order.
	if got := e.findWindow(0, 1); !sameWindow(got, h.windows[1]) {
		t.Errorf("findWindow(0, 1) = %v, want window 2", got)
	}
	if got := e.findWindow(1, 0); !sameWindow(got, h.windows[2]) {
		t.Errorf("findWindow(1, 0) = %v, want window 3", got)
	}

	// The child shares slot (0, 0) but never wins the lookup.
	if got := e.findWindow(0, 0); !sameWindow(got, parent) {
		t.Errorf("findWindow(0, 0) = %v, want the parent", got)
	}

	// A miss falls back to the lowest tracked ID.
	if got := e.findWindow(7, 7); !sameWindow(got, parent) {
		t.Errorf("findWindow(7, 7) = %v, want lowest-ID window", got)
	}
}

func TestFindWindowEmptyRegistry(t *testing.T) {
	h := newFakeHost(newWindow(1, 0, 0, 400, 400))
	e, _ := newTestEngine(h)

	if e.findWindow(0, 0) != nil {
		t.Error("findWindow on empty registry returned a window")
	}
}

func TestKeyArrowMovesFocus(t *testing.T) {
	h := newFakeHost(
		newWindow(1, 0, 0, 400, 400),
		newWindow(2, 500, 100, 400, 400),
		newWindow(3, 100, 300, 400, 400),
	)
	h.active = h.windows[0]
	e, _ := newTestEngine(h)

	if !e.ToggleCurrentWorkspace() {
		t.Fatal("toggle failed")
	}

	e.Key(KeyRight, true, 0)

	if !sameWindow(e.currentFocus, h.windows[1]) {
		t.Errorf("currentFocus = %v, want window 2", e.currentFocus)
	}
	if h.active != h.windows[1] {
		t.Errorf("host focus = %v, want window 2", h.active)
	}
	// The newly focused window fades in, the rest fade out.
	if got := e.states[2].fade.targets[0]; got != 1 {
		t.Errorf("focused fade target = %f, want 1", got)
	}
	if got := e.states[1].fade.targets[0]; got != e.cfg.InactiveAlpha {
		t.Errorf("unfocused fade target = %f, want %f", got, e.cfg.InactiveAlpha)
	}
}

func TestKeyIgnoresModifiersAndReleases(t *testing.T) {
	h := newFakeHost(
		newWindow(1, 0, 0, 400, 400),
		newWindow(2, 500, 100, 400, 400),
	)
	h.active = h.windows[0]
	e, _ := newTestEngine(h)

	if !e.ToggleCurrentWorkspace() {
		t.Fatal("toggle failed")
	}

	e.Key(KeyRight, true, ModCtrl)
	e.Key(KeyRight, false, 0)
	e.Key(KeyOther, true, 0)

	if !sameWindow(e.currentFocus, h.windows[0]) {
		t.Errorf("focus moved to %v, want it unchanged", e.currentFocus)
	}
}

func TestKeyReassertsFocusWhenHostLostIt(t *testing.T) {
	h := newFakeHost(
		newWindow(1, 0, 0, 400, 400),
		newWindow(2, 500, 100, 400, 400),
	)
	h.active = h.windows[0]
	e, _ := newTestEngine(h)

	if !e.ToggleCurrentWorkspace() {
		t.Fatal("toggle failed")
	}

	h.active = nil
	e.Key(KeyRight, true, 0)

	// The stray key re-establishes the navigation focus instead of moving.
	if h.active != h.windows[0] {
		t.Errorf("host focus = %v, want window 1 restored", h.active)
	}
	if !sameWindow(e.currentFocus, h.windows[0]) {
		t.Errorf("currentFocus = %v, want window 1", e.currentFocus)
	}
}

func TestKeyIgnoresUntrackedActiveWindow(t *testing.T) {
	h := newFakeHost(newWindow(1, 0, 0, 400, 400))
	h.active = h.windows[0]
	e, _ := newTestEngine(h)

	if !e.ToggleCurrentWorkspace() {
		t.Fatal("toggle failed")
	}

	h.active = newWindow(9, 5000, 0, 400, 400)
	e.Key(KeyRight, true, 0) // must not panic or move anything

	if !sameWindow(e.currentFocus, h.windows[0]) {
		t.Errorf("currentFocus = %v, want window 1", e.currentFocus)
	}
}
