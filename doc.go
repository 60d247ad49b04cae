// Package spread is an overview engine for window compositors: it arranges
// the windows of an output into an animated grid, dims everything but the
// focused one, and drives keyboard and pointer navigation across the grid
// until a window is picked.
//
// The package is compositor-agnostic. A host implements [Host] (window
// enumeration, focus, transforms, damage, input grab) and feeds its
// notifications into an [Events] hub; the engine does the rest. Animations
// are tweened (via [gween]) into a per-window [Transform] the host composes
// with when drawing.
//
// # Quick start
//
//	events := spread.NewEvents()
//	engine := spread.New(host, events, spread.DefaultConfig())
//
//	// Bind a key in the host:
//	engine.ToggleCurrentWorkspace()
//
//	// In the host's frame loop:
//	engine.BeginFrame(dt) // before compositing
//	// ... draw windows, applying their Transforms ...
//	engine.EndFrame() // after compositing
//
// While the engine holds the input grab, the host forwards input to
// [Engine.Key] and [Engine.PointerButton]. Arrow keys move focus, Enter
// picks the focused window, Escape restores the state from before
// activation.
//
// Two complete hosts live under examples/: a windowed desktop simulation
// on [Ebitengine] and a terminal desktop on [Bubble Tea].
//
// # Threading
//
// The engine is deliberately single-threaded: every method must be called
// from the host's frame/event thread, and handlers registered on [Events]
// run synchronously on the emitter's goroutine. The one exception is
// [WatchConfig], whose callback runs on the file watcher's goroutine;
// hosts hand the new Config to their frame loop before applying it.
//
// [gween]: https://github.com/tanema/gween
// [Ebitengine]: https://ebitengine.org
// [Bubble Tea]: https://github.com/charmbracelet/bubbletea
package spread
