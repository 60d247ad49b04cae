package spread

// Window is a host-owned on-screen item. The engine never creates or
// destroys windows; it only attaches its own layout and animation state to
// them, keyed by ID.
//
// ID must be stable and unique for the window's lifetime. It doubles as the
// tiebreaker that keeps grid slotting and navigation deterministic.
//
// Geometry is the window's untransformed position and size in output
// coordinates, ignoring any transform the engine has installed.
//
// Parent is nil for a top-level window. Children returns direct children
// (dialogs, menus) that are laid out into their parent's slot.
type Window interface {
	ID() uint64
	Geometry() Rect
	Parent() Window
	Children() []Window
}

// sameWindow reports whether a and b identify the same window. Either side
// may be nil.
func sameWindow(a, b Window) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// parentOf returns w's parent, or nil. Tolerates a nil w so callers can
// chain it on possibly-absent windows.
func parentOf(w Window) Window {
	if w == nil {
		return nil
	}
	return w.Parent()
}

// rootOf walks up the parent chain to the top-level window of w's group.
func rootOf(w Window) Window {
	for w != nil && w.Parent() != nil {
		w = w.Parent()
	}
	return w
}

// inGroup reports whether w belongs to member's window group: w is member
// itself, member's parent, or a direct child of member. Used to keep fades
// from touching the emphasized group.
func inGroup(member, w Window) bool {
	if member == nil {
		return false
	}
	if sameWindow(w, member) {
		return true
	}
	if sameWindow(w, parentOf(member)) {
		return true
	}
	return sameWindow(parentOf(w), member)
}
