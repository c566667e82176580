package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	DefaultFPS       = 60
	DefaultFrequency = 7.0
	DefaultDamping   = 0.75

	// restDelta is how close (in offset units and units/frame) the spring
	// must be to its target before it is considered settled.
	restDelta = 0.5
	// maxFrames bounds a single run; the value snaps to target afterwards.
	maxFrames = 600
)

// SpringOptions tunes the spring. Zero fields fall back to the defaults.
type SpringOptions struct {
	FPS       int
	Frequency float64
	Damping   float64
}

// Spring is a frame-stepped damped spring. It owns at most one running
// animation; the caller advances it with Step, once per frame.
type Spring struct {
	spring harmonica.Spring
	fps    int
	cur    *run
	frames int
}

func NewSpring(o SpringOptions) *Spring {
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Frequency <= 0 {
		o.Frequency = DefaultFrequency
	}
	if o.Damping <= 0 {
		o.Damping = DefaultDamping
	}
	return &Spring{
		spring: harmonica.NewSpring(harmonica.FPS(o.FPS), o.Frequency, o.Damping),
		fps:    o.FPS,
	}
}

// FPS is the frame rate the spring was tuned for.
func (s *Spring) FPS() int { return s.fps }

// Animate starts moving v toward to from its current value. A running
// animation is dropped and its settle callbacks never fire. The velocity of
// the dropped run carries over when it drives the same value.
func (s *Spring) Animate(v *Value, to float64) Animation {
	r := &run{v: v, to: to}
	if s.Active() {
		if s.cur.v == v {
			r.vel = s.cur.vel
		}
		s.cur.drop()
	}
	s.cur = r
	s.frames = 0
	return r
}

// Active reports whether an animation is still running.
func (s *Spring) Active() bool {
	return s.cur != nil && !s.cur.settled && !s.cur.dropped
}

// Step advances the running animation by one frame and reports whether it
// is still running afterwards.
func (s *Spring) Step() bool {
	if !s.Active() {
		return false
	}
	r := s.cur
	s.frames++
	pos, vel := s.spring.Update(r.v.Get(), r.vel, r.to)
	r.vel = vel
	if s.frames >= maxFrames || (math.Abs(pos-r.to) < restDelta && math.Abs(vel) < restDelta) {
		r.vel = 0
		r.v.Set(r.to)
		r.settle()
		return s.cur != r && s.Active()
	}
	r.v.Set(pos)
	return true
}

// Finish snaps the running animation to its target and settles it.
func (s *Spring) Finish() {
	if !s.Active() {
		return
	}
	r := s.cur
	r.vel = 0
	r.v.Set(r.to)
	r.settle()
}
