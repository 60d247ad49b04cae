package spread

// Point is an integer coordinate pair. It identifies a workspace on the
// host's workspace plane (column, row).
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Scope selects which windows the engine arranges.
type Scope uint8

const (
	ScopeWorkspace Scope = iota // windows centered on the current workspace
	ScopeAll                    // windows on every workspace of the output
)

// Key identifies a keyboard key the engine reacts to while it holds the
// input grab. Hosts translate their own key representation into these.
type Key uint8

const (
	KeyUp     Key = iota // move focus one row up
	KeyDown              // move focus one row down
	KeyLeft              // move focus one column left
	KeyRight             // move focus one column right
	KeyEnter             // confirm the focused window and exit
	KeyEscape            // abort, restoring the pre-activation state
	KeyOther             // any key the engine does not handle
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventKind identifies a kind of host notification.
type EventKind uint8

const (
	EventWindowAttached        EventKind = iota // a window appeared on the output
	EventWindowDetached                         // a window left the output
	EventWindowGeometryChanged                  // a window was moved or resized
	EventWindowMinimized                        // a window was minimized or restored
	EventWindowUnmapped                         // a window's surface went away
	EventWindowFocused                          // the host gave a window input focus
	EventWorkspaceChanged                       // the visible workspace changed
	EventPointerButton                          // a pointer button was pressed or released
)
