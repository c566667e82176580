package anim

// Animator moves a Value toward a target over time. Starting a new animation
// on an animator supersedes whatever it was running; the superseded
// Animation never settles.
type Animator interface {
	Animate(v *Value, to float64) Animation
}

// Animation is the handle of one started animation.
type Animation interface {
	// OnSettle registers fn to run once the value has reached its target.
	// If the animation already settled, fn runs immediately.
	OnSettle(fn func())
	// Stop halts the animation where it is. It will not settle.
	Stop()
}

// run is the shared Animation implementation.
type run struct {
	v       *Value
	to      float64
	vel     float64
	settled bool
	dropped bool
	onDone  []func()
}

func (r *run) OnSettle(fn func()) {
	if fn == nil || r.dropped {
		return
	}
	if r.settled {
		fn()
		return
	}
	r.onDone = append(r.onDone, fn)
}

func (r *run) settle() {
	r.settled = true
	fns := r.onDone
	r.onDone = nil
	for _, fn := range fns {
		fn()
	}
}

func (r *run) Stop() {
	if !r.settled {
		r.drop()
	}
}

// drop marks a superseded run: pending and future settle callbacks are discarded.
func (r *run) drop() {
	r.dropped = true
	r.onDone = nil
}

// Instant jumps straight to the target and settles synchronously.
type Instant struct{}

func (Instant) Animate(v *Value, to float64) Animation {
	r := &run{v: v, to: to}
	v.Set(to)
	r.settled = true
	return r
}
