package spread

import (
	"math"
	"sort"
)

// Windows never grow past their natural size unless zoom is allowed.
const maxScaleFactor = 1.0

// grid describes the slot arrangement of the most recent layout pass.
// The last row may hold fewer slots than the others.
type grid struct {
	rows        int
	cols        int
	lastRowCols int
}

// gridFor computes the arrangement for n windows: rows = floor(sqrt(n+1)),
// cols = ceil(n/rows), and whatever remains lands in the last row.
func gridFor(n int) grid {
	rows := int(math.Sqrt(float64(n + 1)))
	cols := int(math.Ceil(float64(n) / float64(rows)))
	last := n - (rows-1)*cols
	if last > cols {
		last = cols
	}
	return grid{rows: rows, cols: cols, lastRowCols: last}
}

// rowCols returns the number of occupied slots in the given row.
func (g grid) rowCols(row int) int {
	if row == g.rows-1 {
		return g.lastRowCols
	}
	return g.cols
}

func windowInSet(ws []Window, w Window) bool {
	for _, v := range ws {
		if sameWindow(v, w) {
			return true
		}
	}
	return false
}

// relayout recomputes the grid for the currently eligible windows.
func (e *Engine) relayout() {
	e.layoutWindows(e.host.Windows(e.scope()))
}

// layoutWindows assigns every window in ws (and its children) a grid slot
// and starts animating it there. Slot order follows ascending window ID so
// repeated passes over the same set land every window in the same place.
//
// While the engine is inactive (winding down), targets collapse to the
// identity transform instead, so the same code path animates the exit.
func (e *Engine) layoutWindows(ws []Window) {
	if len(ws) == 0 {
		if !e.allWorkspaces && e.active {
			e.deactivate()
		}
		return
	}

	workarea := e.host.Workarea()

	focus := e.host.ActiveWindow()
	if focus != nil && !windowInSet(ws, focus) {
		focus = nil
	}
	if focus == nil {
		focus = ws[0]
	}
	e.currentFocus = focus
	if e.initialFocus == nil {
		e.initialFocus = focus
	}
	if e.allWorkspaces {
		e.host.FocusWindow(focus)
	}
	e.fadeIn(focus)
	e.fadeOutOthers(focus)

	sorted := make([]Window, len(ws))
	copy(sorted, ws)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID() < sorted[j].ID()
	})

	g := gridFor(len(sorted))
	e.grid = g

	spacing := float64(e.cfg.Spacing)
	rowH := (workarea.Height - float64(g.rows+1)*spacing) / float64(g.rows)

	slot := 0
	y := workarea.Y + spacing
	for row := 0; row < g.rows; row++ {
		n := g.rowCols(row)
		x := workarea.X + spacing
		slotW := (workarea.Width - float64(n+1)*spacing) / float64(n)

		for col := 0; col < n; col++ {
			w := sorted[slot]
			e.track(w)
			st := e.stateOf(w)

			vg := w.Geometry()
			scale := math.Min(slotW/vg.Width, rowH/vg.Height)
			if !e.cfg.AllowZoom {
				scale = math.Min(scale, maxScaleFactor)
			}
			tx := x - vg.X + (slotW-vg.Width*scale)/2
			ty := y - vg.Y + (rowH-vg.Height*scale)/2

			alpha := 1.0
			if e.active {
				if !sameWindow(w, focus) {
					alpha = e.cfg.InactiveAlpha
				}
				e.setTarget(st, scale, scale, tx, ty, alpha)
			} else {
				e.setTarget(st, 1, 1, 0, 0, 1)
			}
			st.row = row
			st.col = col

			for _, child := range w.Children() {
				cg := child.Geometry()
				childScale := math.Min(slotW/cg.Width, rowH/cg.Height)
				if !e.cfg.AllowZoom {
					childScale = math.Min(childScale, maxScaleFactor)
					if e.cfg.MaxChildScale > 0 && childScale > e.cfg.MaxChildScale*scale {
						childScale = e.cfg.MaxChildScale * scale
					}
				}

				// A child tracked for the first time starts from its
				// parent's current offset so the pair moves as one.
				fresh := e.track(child)
				cst := e.stateOf(child)
				if fresh {
					cst.transform.TranslationX = st.transform.TranslationX
					cst.transform.TranslationY = st.transform.TranslationY
				}

				childTx := x - cg.X + (slotW-cg.Width*childScale)/2
				childTy := y - cg.Y + (rowH-cg.Height*childScale)/2

				if e.active {
					e.setTarget(cst, childScale, childScale, childTx, childTy, alpha)
				} else {
					e.setTarget(cst, 1, 1, 0, 0, 1)
				}
				cst.row = row
				cst.col = col
			}

			x += slotW + spacing
			slot++
		}
		y += rowH + spacing
	}

	e.armHook()
	e.damageTracked()
}
