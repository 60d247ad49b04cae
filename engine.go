package spread

import (
	"log/slog"
	"math"
)

// Engine arranges a host's windows into an animated overview grid and owns
// focus navigation across it while active. Create one per output with New,
// wire the host's notifications into the Events hub, and forward input and
// frame ticks as described on the respective methods.
//
// The engine is single-threaded: every method must be called from the
// host's frame/event thread. See the package documentation.
type Engine struct {
	host   Host
	events *Events
	cfg    Config
	log    *slog.Logger

	states map[uint64]*windowState
	grid   grid

	active              bool
	hookSet             bool
	inputReleasePending bool
	allWorkspaces       bool
	grabbed             bool
	claimed             bool
	buttonConnected     bool

	initialWorkspace Point
	initialFocus     Window
	currentFocus     Window

	subs subscriptions
}

// subscriptions holds the engine's removable event registrations. Zero
// handles are inert, so a field that was never subscribed needs no
// special casing on teardown.
type subscriptions struct {
	attached  CallbackHandle
	detached  CallbackHandle
	geometry  CallbackHandle
	minimized CallbackHandle
	unmapped  CallbackHandle
	focused   CallbackHandle
	workspace CallbackHandle
	button    CallbackHandle
}

func release(h *CallbackHandle) {
	h.Remove()
	*h = CallbackHandle{}
}

// New creates an engine for the given host. cfg is normalized: zero or
// invalid fields fall back to DefaultConfig values. Panics if host or
// events is nil, since the engine cannot function without either.
func New(host Host, events *Events, cfg Config) *Engine {
	if host == nil {
		panic("spread: New requires a non-nil Host")
	}
	if events == nil {
		panic("spread: New requires a non-nil Events")
	}
	cfg = cfg.normalize()
	return &Engine{
		host:   host,
		events: events,
		cfg:    cfg,
		log:    cfg.Logger,
		states: make(map[uint64]*windowState),
	}
}

// Active reports whether the engine currently owns the overview.
func (e *Engine) Active() bool {
	return e.active
}

func (e *Engine) scope() Scope {
	if e.allWorkspaces {
		return ScopeAll
	}
	return ScopeWorkspace
}

// allOnCurrentWorkspace reports whether every window on the output already
// sits on the current workspace, which makes the two scopes equivalent.
func (e *Engine) allOnCurrentWorkspace() bool {
	return len(e.host.Windows(ScopeAll)) == len(e.host.Windows(ScopeWorkspace))
}

// ToggleCurrentWorkspace activates the overview for the current workspace,
// or deactivates it when already showing that scope. Returns false if the
// engine could not claim the output.
func (e *Engine) ToggleCurrentWorkspace() bool {
	if !e.handleToggle(false) {
		return false
	}
	e.host.ScheduleFrame()
	return true
}

// ToggleAllWorkspaces is ToggleCurrentWorkspace for every workspace of the
// output. Toggling the mode while active switches scope in place.
func (e *Engine) ToggleAllWorkspaces() bool {
	if !e.handleToggle(true) {
		return false
	}
	e.host.ScheduleFrame()
	return true
}

func (e *Engine) handleToggle(wantAll bool) bool {
	if e.active && (e.allOnCurrentWorkspace() || wantAll == e.allWorkspaces) {
		e.deactivate()
		return true
	}
	e.allWorkspaces = wantAll
	if e.active {
		e.switchModes()
		return true
	}
	return e.activate()
}

// activate claims the output and lays out the eligible windows. Returns
// false (fully rolled back) when already active, when the claim or input
// grab is refused, or when there is nothing to arrange.
func (e *Engine) activate() bool {
	if e.active {
		return false
	}
	if !e.claimed {
		if !e.host.AcquireExclusive() {
			e.log.Debug("activation refused, output claimed elsewhere")
			return false
		}
		e.claimed = true
	}

	ws := e.host.Windows(e.scope())
	if len(ws) == 0 {
		e.releaseClaim()
		return false
	}

	e.initialWorkspace = e.host.CurrentWorkspace()
	e.initialFocus = e.host.ActiveWindow()

	if !e.cfg.Interactive {
		if !e.grabInput() {
			e.deactivate()
			return false
		}
		if e.initialFocus != nil {
			e.host.FocusWindow(e.initialFocus)
		}
	}

	e.active = true
	e.layoutWindows(ws)
	if e.cfg.Interactive {
		e.connectButton()
	}
	e.connectSignals()
	e.log.Debug("activated",
		"windows", len(ws), "allWorkspaces", e.allWorkspaces)
	return true
}

// deactivate begins the wind-down: every tracked window animates back to
// its natural place and the finalize happens from EndFrame once the
// animations settle. The window-detached subscription stays live so
// windows closing mid-exit still get untracked.
func (e *Engine) deactivate() {
	e.active = false
	e.armHook()
	e.disconnectMost()
	if !e.inputReleasePending {
		e.releaseGrab()
		e.releaseClaim()
	}
	for _, st := range e.states {
		e.setTarget(st, 1, 1, 0, 0, 1)
	}
	e.refocus()
	e.log.Debug("deactivated")
}

// finalize drops every piece of engine state unconditionally: transforms,
// registry, grab, claim, subscriptions, focus pointers. Runs from EndFrame
// once a deactivated engine has settled, or directly via Dispose.
func (e *Engine) finalize() {
	e.active = false
	e.inputReleasePending = false
	e.disarmHook()
	for id, st := range e.states {
		e.host.RemoveTransform(st.win)
		delete(e.states, id)
	}
	e.releaseGrab()
	e.disconnectButton()
	e.disconnectMost()
	release(&e.subs.detached)
	e.releaseClaim()
	e.initialFocus = nil
	e.currentFocus = nil
	e.grid = grid{}
	e.log.Debug("finalized")
}

// Dispose tears the engine down immediately, abandoning any running exit
// animation. Hosts call it when shutting down.
func (e *Engine) Dispose() {
	e.finalize()
}

// finishOrDefer ends the overview because nothing is left to show. With
// animations still in flight it only deactivates; the post-frame check
// finalizes after the last animated frame has been presented.
func (e *Engine) finishOrDefer() {
	if e.isAnyRunning() {
		e.deactivate()
		return
	}
	e.finalize()
}

// finishInput tears down a grab that outlived the overview. Input arriving
// while inactive means the host still routes to us, so drop the pending
// flag, release, and finalize if the exit animation is done.
func (e *Engine) finishInput() {
	e.inputReleasePending = false
	e.releaseGrab()
	if !e.isAnyRunning() {
		e.finalize()
	}
}

// refocus restores input focus while winding down: the navigated-to window
// wins, else the first eligible window, else focus is cleared. Skipped
// entirely when activation never recorded a focus to restore.
func (e *Engine) refocus() {
	if e.initialFocus == nil {
		return
	}
	if e.currentFocus != nil {
		e.host.FocusWindow(e.currentFocus)
		e.selectWindow(e.currentFocus)
		return
	}
	var next Window
	if ws := e.host.Windows(ScopeWorkspace); len(ws) > 0 {
		next = ws[0]
	}
	e.host.FocusWindow(next)
}

// selectWindow switches the host to w's home workspace.
func (e *Engine) selectWindow(w Window) {
	if w == nil {
		return
	}
	e.host.RequestWorkspace(e.homeWorkspace(w))
}

// homeWorkspace derives the workspace w's group belongs to from the
// position of the group root's center relative to the visible output.
func (e *Engine) homeWorkspace(w Window) Point {
	root := rootOf(w)
	ws := e.host.CurrentWorkspace()
	og := e.host.OutputGeometry()
	cx, cy := root.Geometry().Center()
	return Point{
		X: ws.X + int(math.Floor((cx-og.X)/og.Width)),
		Y: ws.Y + int(math.Floor((cy-og.Y)/og.Height)),
	}
}

// switchModes re-arranges after the scope flipped while active. Windows no
// longer eligible glide back to their natural place and lose their grid
// slot; the rest get a fresh layout.
func (e *Engine) switchModes() {
	if !e.claimed {
		return
	}
	if e.allWorkspaces {
		e.relayout()
		return
	}

	eligible := e.host.Windows(ScopeWorkspace)
	rearrange := false
	for _, st := range e.sortedStates() {
		if st.win.Parent() != nil || windowInSet(eligible, st.win) {
			continue
		}
		e.setTarget(st, 1, 1, 0, 0, 1)
		st.row, st.col = -1, -1
		for _, child := range st.win.Children() {
			if cst := e.stateOf(child); cst != nil {
				e.setTarget(cst, 1, 1, 0, 0, 1)
				cst.row, cst.col = -1, -1
			}
		}
		rearrange = true
	}
	if rearrange {
		e.relayout()
	}
	e.log.Debug("scope switched", "allWorkspaces", e.allWorkspaces)
}

// PointerButton feeds one pointer event into the engine, either forwarded
// from the host's grab or delivered by the button observer in passthrough
// mode.
//
// A left press on a tracked window confirms it like Enter does; in
// passthrough mode it only moves the emphasis. A middle press closes the
// window when MiddleClickClose is set. Events while inactive tear down a
// stale grab instead.
func (e *Engine) PointerButton(x, y float64, btn MouseButton, pressed bool) {
	if !e.active {
		e.finishInput()
		return
	}

	if btn == MouseButtonLeft || !pressed {
		e.inputReleasePending = false
	}
	if !pressed {
		return
	}
	switch btn {
	case MouseButtonLeft:
	case MouseButtonMiddle:
		if !e.cfg.MiddleClickClose {
			return
		}
	default:
		return
	}

	w := e.host.WindowAt(x, y)
	if !e.isTracked(w) {
		return
	}
	if btn == MouseButtonMiddle {
		e.host.CloseWindow(w)
		return
	}

	e.currentFocus = w
	e.host.FocusWindow(w)
	e.fadeOutOthers(w)
	e.fadeIn(w)

	if e.cfg.Interactive {
		return
	}
	e.inputReleasePending = true
	e.initialFocus = nil
	e.deactivate()
	e.selectWindow(w)
}

// SetInteractive switches between grab mode and passthrough mode. While
// the engine holds its claim the switch applies immediately: passthrough
// subscribes the button observer and lets go of the input grab, grab mode
// takes both back.
func (e *Engine) SetInteractive(interactive bool) {
	if e.cfg.Interactive == interactive {
		return
	}
	e.cfg.Interactive = interactive
	if !e.claimed {
		return
	}
	if interactive {
		e.connectButton()
		e.releaseGrab()
		return
	}
	e.grabInput()
	e.disconnectButton()
}

// SetAllowZoom controls whether windows may scale past their natural size
// to fill their slot. Re-layouts immediately while active.
func (e *Engine) SetAllowZoom(allow bool) {
	if e.cfg.AllowZoom == allow {
		return
	}
	e.cfg.AllowZoom = allow
	if !e.claimed {
		return
	}
	e.relayout()
}

// SetSpacing changes the gap between grid slots, in output pixels.
// Re-layouts immediately while active.
func (e *Engine) SetSpacing(px int) {
	if e.cfg.Spacing == px {
		return
	}
	e.cfg.Spacing = px
	if !e.claimed {
		return
	}
	e.relayout()
}

func (e *Engine) grabInput() bool {
	if e.grabbed {
		return true
	}
	if !e.host.GrabInput() {
		e.log.Debug("input grab unavailable")
		return false
	}
	e.grabbed = true
	return true
}

func (e *Engine) releaseGrab() {
	if !e.grabbed {
		return
	}
	e.host.ReleaseInput()
	e.grabbed = false
}

func (e *Engine) releaseClaim() {
	if !e.claimed {
		return
	}
	e.host.ReleaseExclusive()
	e.claimed = false
}

func (e *Engine) connectButton() {
	if e.buttonConnected {
		return
	}
	e.subs.button = e.events.OnPointerButton(e.PointerButton)
	e.buttonConnected = true
}

func (e *Engine) disconnectButton() {
	if !e.buttonConnected {
		return
	}
	release(&e.subs.button)
	e.buttonConnected = false
}

// connectSignals (re)subscribes every engine event handler. Existing
// registrations are removed first so a re-activation never doubles up.
func (e *Engine) connectSignals() {
	e.disconnectMost()
	release(&e.subs.detached)

	e.subs.attached = e.events.OnWindowAttached(e.onWindowAttached)
	e.subs.detached = e.events.OnWindowDetached(e.onWindowDetached)
	e.subs.geometry = e.events.OnWindowGeometryChanged(e.onWindowGeometryChanged)
	e.subs.minimized = e.events.OnWindowMinimized(e.onWindowMinimized)
	e.subs.unmapped = e.events.OnWindowUnmapped(e.onWindowUnmapped)
	e.subs.focused = e.events.OnWindowFocused(e.onWindowFocused)
	e.subs.workspace = e.events.OnWorkspaceChanged(e.onWorkspaceChanged)
}

// disconnectMost removes every subscription except window-detached, which
// must stay live through the exit animation so closing windows still get
// untracked.
func (e *Engine) disconnectMost() {
	release(&e.subs.attached)
	release(&e.subs.geometry)
	release(&e.subs.minimized)
	release(&e.subs.unmapped)
	release(&e.subs.focused)
	release(&e.subs.workspace)
}

func (e *Engine) onWindowAttached(w Window) {
	if w == nil {
		return
	}
	if e.isTracked(w.Parent()) {
		e.relayout()
		return
	}
	if !windowInSet(e.host.Windows(e.scope()), w) {
		return
	}
	root := rootOf(w)
	e.currentFocus = root
	e.host.FocusWindow(root)
	if e.isTracked(w) {
		return
	}
	e.relayout()
}

func (e *Engine) onWindowDetached(w Window) {
	if w == nil {
		return
	}
	if w.Parent() != nil && e.isTracked(w.Parent()) {
		e.untrack(w)
		if len(e.host.Windows(e.scope())) == 0 {
			e.finishOrDefer()
		}
		return
	}
	if !e.isTracked(w) {
		return
	}
	e.untrack(w)
	if len(e.host.Windows(e.scope())) == 0 {
		e.finishOrDefer()
		return
	}
	e.relayout()
}

func (e *Engine) onWindowGeometryChanged(Window) {
	ws := e.host.Windows(e.scope())
	if len(ws) == 0 {
		e.deactivate()
		return
	}
	e.layoutWindows(ws)
}

func (e *Engine) onWindowMinimized(w Window, minimized bool) {
	if minimized {
		e.untrack(w)
		if len(e.states) == 0 {
			e.deactivate()
			return
		}
	} else if !windowInSet(e.host.Windows(e.scope()), w) {
		return
	}
	e.relayout()
}

func (e *Engine) onWindowUnmapped(w Window) {
	e.forgetFocus(w)
}

// onWindowFocused keeps the grid's emphasis in step with host-side focus
// changes. A tracked window is adopted as the navigation focus; focus
// escaping to an untracked window is pulled back.
func (e *Engine) onWindowFocused(w Window) {
	if e.isTracked(w) {
		root := rootOf(w)
		if sameWindow(root, e.currentFocus) {
			return
		}
		e.currentFocus = root
		e.fadeOutOthers(root)
		e.fadeIn(root)
		return
	}
	if e.currentFocus == nil {
		return
	}
	if e.allWorkspaces {
		e.host.FocusWindow(e.currentFocus)
	}
	e.relayout()
}

func (e *Engine) onWorkspaceChanged(Point) {
	if e.currentFocus != nil {
		e.host.FocusWindow(e.currentFocus)
	}
}
