package spread

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenGroup animates up to 4 float64 fields of a Transform simultaneously.
// Create one via newMotionTween or newFadeTween and call update(dt) each
// frame. Values are written through the field pointers, so the host sees
// them on its next draw without any copying.
//
// A nil group is a finished group: update and running are nil-safe so
// windows that were never animated need no special casing.
type tweenGroup struct {
	tweens  [4]*gween.Tween
	count   int
	fields  [4]*float64
	targets [4]float64
	done    bool
}

// update advances all tweens by dt seconds and writes the interpolated
// values to the target fields. Each tween clamps to its final value on
// completion, so no overshoot escapes to the host.
func (g *tweenGroup) update(dt float32) {
	if g == nil || g.done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.done = allDone
}

// running reports whether the group still has work to do.
func (g *tweenGroup) running() bool {
	return g != nil && !g.done
}

// newMotionTween creates a tweenGroup that animates a transform's scale and
// translation from their current values to the given targets.
func newMotionTween(t *Transform, sx, sy, tx, ty float64, duration float32, fn ease.TweenFunc) *tweenGroup {
	g := &tweenGroup{count: 4, targets: [4]float64{sx, sy, tx, ty}}
	g.tweens[0] = gween.New(float32(t.ScaleX), float32(sx), duration, fn)
	g.tweens[1] = gween.New(float32(t.ScaleY), float32(sy), duration, fn)
	g.tweens[2] = gween.New(float32(t.TranslationX), float32(tx), duration, fn)
	g.tweens[3] = gween.New(float32(t.TranslationY), float32(ty), duration, fn)
	g.fields[0] = &t.ScaleX
	g.fields[1] = &t.ScaleY
	g.fields[2] = &t.TranslationX
	g.fields[3] = &t.TranslationY
	return g
}

// newFadeTween creates a tweenGroup that animates a transform's alpha from
// its current value to the given target.
func newFadeTween(t *Transform, alpha float64, duration float32, fn ease.TweenFunc) *tweenGroup {
	g := &tweenGroup{count: 1, targets: [4]float64{alpha}}
	g.tweens[0] = gween.New(float32(t.Alpha), float32(alpha), duration, fn)
	g.fields[0] = &t.Alpha
	return g
}

// setTarget starts or retargets st's motion and fade animations. Motion and
// fade run on independent durations; both restart from the transform's
// current values, so retargeting mid-flight never jumps.
func (e *Engine) setTarget(st *windowState, sx, sy, tx, ty, alpha float64) {
	st.motion = newMotionTween(st.transform, sx, sy, tx, ty,
		float32(e.cfg.Duration.Seconds()), e.cfg.Easing)
	st.fade = newFadeTween(st.transform, alpha,
		float32(e.cfg.FadeDuration.Seconds()), e.cfg.Easing)
}

// fadeTo retargets the opacity of w and its descendants toward alpha and
// arms the frame hook. Untracked windows in the group are skipped.
func (e *Engine) fadeTo(w Window, alpha float64) {
	if w == nil {
		return
	}
	if st := e.stateOf(w); st != nil {
		e.armHook()
		st.fade = newFadeTween(st.transform, alpha,
			float32(e.cfg.FadeDuration.Seconds()), e.cfg.Easing)
	}
	for _, child := range w.Children() {
		e.fadeTo(child, alpha)
	}
}

// fadeIn fades w's group to full opacity.
func (e *Engine) fadeIn(w Window) {
	e.fadeTo(w, 1)
}

// fadeOutOthers fades every tracked window outside w's group toward the
// configured inactive opacity.
func (e *Engine) fadeOutOthers(w Window) {
	for _, st := range e.states {
		if inGroup(w, st.win) {
			continue
		}
		e.armHook()
		st.fade = newFadeTween(st.transform, e.cfg.InactiveAlpha,
			float32(e.cfg.FadeDuration.Seconds()), e.cfg.Easing)
	}
}

// isAnyRunning reports whether any tracked window still has a motion or
// fade animation in flight.
func (e *Engine) isAnyRunning() bool {
	for _, st := range e.states {
		if st.motion.running() || st.fade.running() {
			return true
		}
	}
	return false
}

// advance steps every animation by dt seconds and damages the windows it
// touched. Called once per frame from BeginFrame while the hook is armed.
func (e *Engine) advance(dt float32) {
	for _, st := range e.states {
		st.motion.update(dt)
		st.fade.update(dt)
		e.host.Damage(st.win)
	}
	e.host.DamageAll()
}
