package spread

// Transform is the live render state the engine animates for one window.
// The host composes it when drawing: a window point p is displayed at
// (p - origin) * scale + origin + translation, where origin is the window's
// untransformed top-left corner. Alpha multiplies the window's opacity.
//
// The engine installs exactly one Transform per tracked window via
// Host.InstallTransform and writes to it on every animated frame. Hosts must
// treat it as read-only.
type Transform struct {
	ScaleX       float64
	ScaleY       float64
	TranslationX float64
	TranslationY float64
	Alpha        float64
}

// identityTransform returns a Transform that leaves the window untouched.
func identityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Alpha: 1}
}

// Apply returns the on-screen rectangle of a window with geometry g under
// the transform.
func (t *Transform) Apply(g Rect) Rect {
	return Rect{
		X:      g.X + t.TranslationX,
		Y:      g.Y + t.TranslationY,
		Width:  g.Width * t.ScaleX,
		Height: g.Height * t.ScaleY,
	}
}

// Host is the compositor-side surface the engine drives. Implementations
// own the windows, the render pipeline, and input routing; the engine only
// calls in. All methods are invoked from the host's own thread (see the
// package documentation for the threading model).
type Host interface {
	// Windows enumerates the mapped top-level windows in the given scope.
	// Order does not matter; the engine sorts by ID.
	Windows(scope Scope) []Window

	// Workarea is the usable display region the grid is laid out into,
	// excluding panels and other reserved areas.
	Workarea() Rect

	// OutputGeometry is the full display rectangle, used to derive which
	// workspace a window calls home.
	OutputGeometry() Rect

	// CurrentWorkspace returns the workspace the output currently shows.
	CurrentWorkspace() Point

	// RequestWorkspace asks the host to switch the visible workspace.
	RequestWorkspace(ws Point)

	// ActiveWindow returns the window holding input focus, or nil.
	ActiveWindow() Window

	// FocusWindow gives w input focus. A nil w clears focus.
	FocusWindow(w Window)

	// WindowAt returns the topmost window containing the point, or nil.
	WindowAt(x, y float64) Window

	// CloseWindow asks the host to close w.
	CloseWindow(w Window)

	// InstallTransform attaches t to w's render path. The host keeps the
	// pointer and reads it when drawing until RemoveTransform.
	InstallTransform(w Window, t *Transform)

	// RemoveTransform detaches the transform installed on w, if any.
	RemoveTransform(w Window)

	// Damage marks w's current region as needing redraw.
	Damage(w Window)

	// DamageAll marks the whole output as needing redraw.
	DamageAll()

	// ScheduleFrame requests that the host run another frame even if
	// nothing else is dirty. The engine calls it while animating.
	ScheduleFrame()

	// AcquireExclusive claims the output for the engine, refusing if
	// another exclusive client holds it. Paired with ReleaseExclusive.
	AcquireExclusive() bool

	// ReleaseExclusive gives up the claim taken by AcquireExclusive.
	ReleaseExclusive()

	// GrabInput routes all keyboard and pointer input to the engine
	// until ReleaseInput. Returns false if the grab is unavailable.
	GrabInput() bool

	// ReleaseInput ends the input grab.
	ReleaseInput()
}
