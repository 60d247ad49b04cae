package spread

// The frame hook is the engine's tie into the host's render loop. While
// armed, the host must call BeginFrame before compositing and EndFrame
// after. Layout passes, fades, and deactivation arm it; it disarms itself
// once every animation has settled.

func (e *Engine) armHook() {
	if e.hookSet {
		return
	}
	e.hookSet = true
	e.host.ScheduleFrame()
}

func (e *Engine) disarmHook() {
	e.hookSet = false
}

// BeginFrame advances every animation by dt seconds and damages the
// windows it touched. Call at the top of the frame, before compositing,
// so the frame presents the values written here. No-op while the hook is
// not armed.
func (e *Engine) BeginFrame(dt float32) {
	if !e.hookSet {
		return
	}
	e.advance(dt)
}

// EndFrame runs the post-composite bookkeeping: it keeps frames coming
// while animations run and, once everything has settled, disarms the hook
// and finalizes a deactivated engine. Splitting the check off from
// BeginFrame guarantees the frame completing an exit animation is
// presented before teardown. No-op while the hook is not armed.
func (e *Engine) EndFrame() {
	if !e.hookSet {
		return
	}
	e.host.ScheduleFrame()
	if e.isAnyRunning() {
		return
	}
	e.disarmHook()
	if e.active {
		return
	}
	e.finalize()
}

// damageTracked marks every tracked window and then the whole output as
// needing redraw.
func (e *Engine) damageTracked() {
	for _, st := range e.states {
		e.host.Damage(st.win)
	}
	e.host.DamageAll()
}
