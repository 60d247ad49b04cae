package spread

import "sort"

// windowState is the engine-owned side state of one tracked window: its
// grid slot, the live render transform installed on the host, and the
// animations currently driving that transform.
//
// A windowState exists exactly while the window has a transform installed.
// row and col are -1 until the layout pass assigns a slot (children share
// their parent's slot).
type windowState struct {
	win       Window
	row, col  int
	transform *Transform
	motion    *tweenGroup
	fade      *tweenGroup
}

// track attaches engine state to w and installs its render transform.
// Returns false if w is nil or already tracked.
func (e *Engine) track(w Window) bool {
	if w == nil || e.isTracked(w) {
		return false
	}
	t := identityTransform()
	st := &windowState{win: w, row: -1, col: -1, transform: &t}
	e.states[w.ID()] = st
	e.host.InstallTransform(w, st.transform)
	return true
}

// untrack removes the engine state attached to w and its descendants,
// clearing any focus pointer that referenced them. Windows that were never
// tracked are left alone.
func (e *Engine) untrack(w Window) {
	if w == nil {
		return
	}
	for _, child := range w.Children() {
		e.untrack(child)
	}
	e.forgetFocus(w)
	if _, ok := e.states[w.ID()]; ok {
		e.host.RemoveTransform(w)
		delete(e.states, w.ID())
	}
}

// isTracked reports whether w currently has engine state attached.
func (e *Engine) isTracked(w Window) bool {
	if w == nil {
		return false
	}
	_, ok := e.states[w.ID()]
	return ok
}

// stateOf returns w's state, or nil if w is nil or untracked. It never
// creates an entry.
func (e *Engine) stateOf(w Window) *windowState {
	if w == nil {
		return nil
	}
	return e.states[w.ID()]
}

// forgetFocus repairs the focus pointers before w goes away: the current
// focus falls back to whatever the host considers active, the initial
// focus is simply dropped.
func (e *Engine) forgetFocus(w Window) {
	if sameWindow(e.currentFocus, w) {
		e.currentFocus = e.host.ActiveWindow()
	}
	if sameWindow(e.initialFocus, w) {
		e.initialFocus = nil
	}
}

// sortedStates returns every tracked state ordered by window ID, children
// included. The stable order keeps navigation and layout deterministic.
func (e *Engine) sortedStates() []*windowState {
	out := make([]*windowState, 0, len(e.states))
	for _, st := range e.states {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].win.ID() < out[j].win.ID()
	})
	return out
}
