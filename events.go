package spread

// Events is the notification hub between a host and the engine. The host
// creates one, feeds it through the Emit methods, and hands it to New; the
// engine subscribes and unsubscribes as its lifecycle demands.
//
// Registration returns a CallbackHandle for deterministic removal. Handlers
// run in registration order on the caller's goroutine.
type Events struct {
	attached  []windowHandler
	detached  []windowHandler
	geometry  []windowHandler
	unmapped  []windowHandler
	focused   []windowHandler
	minimized []minimizeHandler
	workspace []workspaceHandler
	button    []buttonHandler
	nextID    uint32
}

// NewEvents creates an empty notification hub.
func NewEvents() *Events {
	return &Events{}
}

type windowHandler struct {
	id uint32
	fn func(Window)
}

type minimizeHandler struct {
	id uint32
	fn func(Window, bool)
}

type workspaceHandler struct {
	id uint32
	fn func(Point)
}

type buttonHandler struct {
	id uint32
	fn func(x, y float64, btn MouseButton, pressed bool)
}

// CallbackHandle allows removing a registered callback. The zero value is
// inert: Remove on it does nothing.
type CallbackHandle struct {
	id   uint32
	bus  *Events
	kind EventKind
}

// Remove unregisters this callback so it no longer fires. The entry is
// tombstoned in place rather than shifted out, so a handler may remove
// itself (or a neighbor) mid-dispatch without the emit loop skipping
// anyone; registration compacts the tombstones away.
func (h CallbackHandle) Remove() {
	if h.bus == nil {
		return
	}
	switch h.kind {
	case EventWindowAttached:
		tombstoneWindowHandler(h.bus.attached, h.id)
	case EventWindowDetached:
		tombstoneWindowHandler(h.bus.detached, h.id)
	case EventWindowGeometryChanged:
		tombstoneWindowHandler(h.bus.geometry, h.id)
	case EventWindowUnmapped:
		tombstoneWindowHandler(h.bus.unmapped, h.id)
	case EventWindowFocused:
		tombstoneWindowHandler(h.bus.focused, h.id)
	case EventWindowMinimized:
		for i := range h.bus.minimized {
			if h.bus.minimized[i].id == h.id {
				h.bus.minimized[i].fn = nil
				return
			}
		}
	case EventWorkspaceChanged:
		for i := range h.bus.workspace {
			if h.bus.workspace[i].id == h.id {
				h.bus.workspace[i].fn = nil
				return
			}
		}
	case EventPointerButton:
		for i := range h.bus.button {
			if h.bus.button[i].id == h.id {
				h.bus.button[i].fn = nil
				return
			}
		}
	}
}

func tombstoneWindowHandler(s []windowHandler, id uint32) {
	for i := range s {
		if s[i].id == id {
			s[i].fn = nil
			return
		}
	}
}

// The compact helpers never reuse the backing array: an Emit loop may still
// be ranging over it, so surviving entries go into a fresh slice instead of
// being shifted under the loop.

func compactWindowHandlers(s []windowHandler) []windowHandler {
	live := 0
	for _, h := range s {
		if h.fn != nil {
			live++
		}
	}
	if live == len(s) {
		return s
	}
	out := make([]windowHandler, 0, live+1)
	for _, h := range s {
		if h.fn != nil {
			out = append(out, h)
		}
	}
	return out
}

func compactMinimizeHandlers(s []minimizeHandler) []minimizeHandler {
	live := 0
	for _, h := range s {
		if h.fn != nil {
			live++
		}
	}
	if live == len(s) {
		return s
	}
	out := make([]minimizeHandler, 0, live+1)
	for _, h := range s {
		if h.fn != nil {
			out = append(out, h)
		}
	}
	return out
}

func compactWorkspaceHandlers(s []workspaceHandler) []workspaceHandler {
	live := 0
	for _, h := range s {
		if h.fn != nil {
			live++
		}
	}
	if live == len(s) {
		return s
	}
	out := make([]workspaceHandler, 0, live+1)
	for _, h := range s {
		if h.fn != nil {
			out = append(out, h)
		}
	}
	return out
}

func compactButtonHandlers(s []buttonHandler) []buttonHandler {
	live := 0
	for _, h := range s {
		if h.fn != nil {
			live++
		}
	}
	if live == len(s) {
		return s
	}
	out := make([]buttonHandler, 0, live+1)
	for _, h := range s {
		if h.fn != nil {
			out = append(out, h)
		}
	}
	return out
}

// OnWindowAttached registers a callback for windows appearing on the output.
func (e *Events) OnWindowAttached(fn func(Window)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.attached = append(compactWindowHandlers(e.attached), windowHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowAttached}
}

// OnWindowDetached registers a callback for windows leaving the output.
func (e *Events) OnWindowDetached(fn func(Window)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.detached = append(compactWindowHandlers(e.detached), windowHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowDetached}
}

// OnWindowGeometryChanged registers a callback for window move/resize.
func (e *Events) OnWindowGeometryChanged(fn func(Window)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.geometry = append(compactWindowHandlers(e.geometry), windowHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowGeometryChanged}
}

// OnWindowUnmapped registers a callback for windows losing their surface.
func (e *Events) OnWindowUnmapped(fn func(Window)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.unmapped = append(compactWindowHandlers(e.unmapped), windowHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowUnmapped}
}

// OnWindowFocused registers a callback for host-side focus changes.
func (e *Events) OnWindowFocused(fn func(Window)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.focused = append(compactWindowHandlers(e.focused), windowHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowFocused}
}

// OnWindowMinimized registers a callback for minimize state changes.
// The bool argument is true when the window was minimized, false when
// it was restored.
func (e *Events) OnWindowMinimized(fn func(Window, bool)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.minimized = append(compactMinimizeHandlers(e.minimized), minimizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWindowMinimized}
}

// OnWorkspaceChanged registers a callback for visible-workspace switches.
func (e *Events) OnWorkspaceChanged(fn func(Point)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.workspace = append(compactWorkspaceHandlers(e.workspace), workspaceHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventWorkspaceChanged}
}

// OnPointerButton registers a callback for pointer button presses and
// releases delivered outside an input grab.
func (e *Events) OnPointerButton(fn func(x, y float64, btn MouseButton, pressed bool)) CallbackHandle {
	e.nextID++
	id := e.nextID
	e.button = append(compactButtonHandlers(e.button), buttonHandler{id: id, fn: fn})
	return CallbackHandle{id: id, bus: e, kind: EventPointerButton}
}

// Handlers may unregister themselves mid-dispatch; removal only nils the
// fn, so every emit loop skips tombstones.

// EmitWindowAttached notifies subscribers that w appeared.
func (e *Events) EmitWindowAttached(w Window) {
	for _, h := range e.attached {
		if h.fn != nil {
			h.fn(w)
		}
	}
}

// EmitWindowDetached notifies subscribers that w left the output.
func (e *Events) EmitWindowDetached(w Window) {
	for _, h := range e.detached {
		if h.fn != nil {
			h.fn(w)
		}
	}
}

// EmitWindowGeometryChanged notifies subscribers that w moved or resized.
func (e *Events) EmitWindowGeometryChanged(w Window) {
	for _, h := range e.geometry {
		if h.fn != nil {
			h.fn(w)
		}
	}
}

// EmitWindowUnmapped notifies subscribers that w's surface went away.
func (e *Events) EmitWindowUnmapped(w Window) {
	for _, h := range e.unmapped {
		if h.fn != nil {
			h.fn(w)
		}
	}
}

// EmitWindowFocused notifies subscribers that the host focused w.
func (e *Events) EmitWindowFocused(w Window) {
	for _, h := range e.focused {
		if h.fn != nil {
			h.fn(w)
		}
	}
}

// EmitWindowMinimized notifies subscribers that w was minimized (true) or
// restored (false).
func (e *Events) EmitWindowMinimized(w Window, minimized bool) {
	for _, h := range e.minimized {
		if h.fn != nil {
			h.fn(w, minimized)
		}
	}
}

// EmitWorkspaceChanged notifies subscribers that the visible workspace is
// now ws.
func (e *Events) EmitWorkspaceChanged(ws Point) {
	for _, h := range e.workspace {
		if h.fn != nil {
			h.fn(ws)
		}
	}
}

// EmitPointerButton notifies subscribers of an ungrabbed button event.
func (e *Events) EmitPointerButton(x, y float64, btn MouseButton, pressed bool) {
	for _, h := range e.button {
		if h.fn != nil {
			h.fn(x, y, btn, pressed)
		}
	}
}
