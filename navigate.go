package spread

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// step resolves a directional move from (row, col) to the next occupied
// cell, wrapping at the grid edges.
//
// When the last row is shorter than the others, a vertical move into or out
// of it remaps the column proportionally so focus lands on the visually
// nearest window rather than on a raw index.
func (g grid) step(row, col int, key Key) (int, int) {
	switch key {
	case KeyUp:
		row--
	case KeyDown:
		row++
	case KeyLeft:
		col--
	case KeyRight:
		col++
	default:
		return row, col
	}

	if g.rows > 1 && g.cols > 1 && g.lastRowCols > 1 {
		intoLast := (key == KeyDown && row == g.rows-1) ||
			(key == KeyUp && row == -1)
		outOfLast := (key == KeyUp && row == g.rows-2) ||
			(key == KeyDown && row == g.rows)
		if intoLast {
			p := float64(col) / float64(g.cols-1)
			col = clampInt(int(p*float64(g.lastRowCols-1)), 0, g.lastRowCols-1)
		} else if outOfLast {
			p := (float64(col) + 0.5) / float64(g.lastRowCols)
			col = clampInt(int(p*float64(g.cols)), 0, g.cols-1)
		}
	}

	if row < 0 {
		row = g.rows - 1
	}
	if row >= g.rows {
		row = 0
	}

	n := g.rowCols(row)
	if col < 0 {
		col = n - 1
	}
	if col >= n {
		col = 0
	}

	return row, col
}

// findWindow returns the tracked top-level window slotted at (row, col).
// On a miss it falls back to the tracked top-level with the lowest ID, or
// nil when nothing is tracked. Scanning in ID order keeps the answer
// independent of map iteration.
func (e *Engine) findWindow(row, col int) Window {
	var fallback Window
	for _, st := range e.sortedStates() {
		if st.win.Parent() != nil {
			continue
		}
		if fallback == nil {
			fallback = st.win
		}
		if st.row == row && st.col == col {
			return st.win
		}
	}
	return fallback
}

// Key feeds one keyboard event into the engine. Hosts forward every key
// they receive while the engine holds the input grab.
//
// Arrows move focus through the grid. Enter confirms the focused window:
// the engine winds down and the host is asked to show that window's home
// workspace. Escape aborts: the workspace and focus recorded at activation
// are restored. Anything else is ignored.
func (e *Engine) Key(key Key, pressed bool, mods KeyModifiers) {
	if !e.active {
		e.finishInput()
		return
	}

	view := e.host.ActiveWindow()
	if view == nil {
		view = e.currentFocus
		e.fadeOutOthers(view)
		e.fadeIn(view)
		e.host.FocusWindow(view)
		return
	}

	st := e.stateOf(view)
	if st == nil {
		return
	}
	row, col := st.row, st.col

	if !pressed && (key == KeyEnter || key == KeyEscape) {
		e.inputReleasePending = false
	}
	if !pressed || mods != 0 {
		return
	}

	switch key {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		row, col = e.grid.step(row, col, key)

	case KeyEnter:
		e.inputReleasePending = true
		e.deactivate()
		e.selectWindow(e.currentFocus)
		return

	case KeyEscape:
		restore := e.initialFocus
		e.inputReleasePending = true
		e.initialFocus = nil
		e.deactivate()
		e.host.FocusWindow(restore)
		e.host.RequestWorkspace(e.initialWorkspace)
		return

	default:
		return
	}

	next := e.findWindow(row, col)
	if next == nil {
		return
	}
	if !sameWindow(next, e.currentFocus) {
		e.fadeOutOthers(next)
	}
	e.currentFocus = next
	e.host.FocusWindow(next)
	e.fadeIn(next)
}
