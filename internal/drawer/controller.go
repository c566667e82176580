// Package drawer holds the gesture-to-offset state machine of a swipeable
// side drawer: viewport geometry, gesture claiming, drag translation,
// release resolution and the open/close settle path.
//
// A Controller is not safe for concurrent use. All calls are expected to
// come from one event loop.
package drawer

import (
	"math"

	"sidedrawer/internal/anim"
)

// Geometry is derived from the viewport and the configured percentages.
type Geometry struct {
	Width            float64
	Height           float64
	OpenMenuOffset   float64
	HiddenMenuOffset float64
}

// Controller owns the drawer session state.
type Controller struct {
	cfg      Config
	geom     Geometry
	offset   *anim.Value
	animator anim.Animator

	isOpen      bool
	isAnimating bool
	prevLeft    float64
	dragging    bool
	gen         uint64
	running     anim.Animation

	unsubscribe func()
}

// New creates a controller for cfg sized to width x height. A nil animator
// settles instantly.
func New(cfg Config, animator anim.Animator, width, height float64) *Controller {
	if animator == nil {
		animator = anim.Instant{}
	}
	c := &Controller{
		cfg:      cfg,
		animator: animator,
		isOpen:   cfg.IsOpen,
	}
	c.SetViewport(width, height)
	start := c.geom.HiddenMenuOffset
	if c.isOpen {
		start = c.geom.OpenMenuOffset
	}
	c.prevLeft = c.multiplier() * start
	c.offset = anim.NewValue(c.prevLeft)
	c.unsubscribe = c.offset.Subscribe(func(v float64) {
		c.cfg.onSliding(c.progressAt(v))
	})
	return c
}

// Close detaches the slide-progress listener. The controller must not be
// used afterwards.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// SetViewport recomputes both offsets from the same width sample.
func (c *Controller) SetViewport(width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.geom = Geometry{
		Width:            width,
		Height:           height,
		OpenMenuOffset:   width * c.cfg.OpenMenuOffsetPercentage,
		HiddenMenuOffset: width * c.cfg.HiddenMenuOffsetPercentage,
	}
}

// SetConfig replaces the configuration and recomputes geometry for the
// current viewport. Session state (open, offset, animation) is kept; use
// RequestOpen to change it.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
	c.SetViewport(c.geom.Width, c.geom.Height)
}

// RequestOpen is the external open/close request. It is honored only when
// the state actually changes, nothing is animating, and either AutoClosing
// is set or the drawer is closed. It reports whether an animation started.
func (c *Controller) RequestOpen(open bool) bool {
	if open == c.isOpen || c.isAnimating {
		return false
	}
	if !c.cfg.AutoClosing && c.isOpen {
		return false
	}
	c.setOpen(open)
	return true
}

// Toggle requests the opposite of the current state.
func (c *Controller) Toggle() bool { return c.RequestOpen(!c.isOpen) }

// Dismiss closes an open drawer the way a tap on the content overlay does:
// not subject to AutoClosing or an in-flight animation.
func (c *Controller) Dismiss() bool {
	if !c.isOpen {
		return false
	}
	c.dragging = false
	c.setOpen(false)
	return true
}

func (c *Controller) setOpen(open bool) {
	target := c.geom.HiddenMenuOffset
	if open {
		target = c.geom.OpenMenuOffset
	}
	signed := c.multiplier() * target

	c.gen++
	gen := c.gen
	c.isAnimating = true
	a := c.animator.Animate(c.offset, signed)
	c.running = a
	c.prevLeft = signed
	c.isOpen = open
	c.cfg.onChange(open)

	// attached last so a synchronous settle reports the new state
	a.OnSettle(func() {
		if gen != c.gen {
			return
		}
		c.isAnimating = false
		c.running = nil
		c.cfg.onAnimationComplete(c.isOpen)
	})
}

// interrupt halts an in-flight settle so a drag can take over the offset.
// The interrupted animation still counts as complete.
func (c *Controller) interrupt() {
	if !c.isAnimating {
		return
	}
	c.gen++
	if c.running != nil {
		c.running.Stop()
		c.running = nil
	}
	c.isAnimating = false
	c.cfg.onAnimationComplete(c.isOpen)
}

func (c *Controller) multiplier() float64 { return c.cfg.Position.Multiplier() }

func (c *Controller) screenWidth() float64 {
	if c.cfg.ScreenWidth > 0 {
		return c.cfg.ScreenWidth
	}
	return c.geom.Width
}

func (c *Controller) progressAt(v float64) float64 {
	span := c.geom.OpenMenuOffset - c.geom.HiddenMenuOffset
	if span == 0 {
		return 0
	}
	p := math.Abs((v - c.geom.HiddenMenuOffset) / span)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

func (c *Controller) IsOpen() bool { return c.isOpen }
func (c *Controller) IsAnimating() bool { return c.isAnimating }
func (c *Controller) Dragging() bool { return c.dragging }
func (c *Controller) Offset() float64 { return c.offset.Get() }
func (c *Controller) OffsetValue() *anim.Value { return c.offset }
func (c *Controller) Geometry() Geometry { return c.geom }
func (c *Controller) OpenMenuOffset() float64 { return c.geom.OpenMenuOffset }
func (c *Controller) HiddenMenuOffset() float64 { return c.geom.HiddenMenuOffset }
func (c *Controller) PositionMultiplier() float64 { return c.multiplier() }
func (c *Controller) Config() Config { return c.cfg }

// Progress is the current slide progress, as last reported to OnSliding.
func (c *Controller) Progress() float64 { return c.progressAt(c.offset.Get()) }

// Barrier is the release distance beyond which a drag resolves to open.
func (c *Controller) Barrier() float64 { return c.screenWidth() / 4 }

// MenuBounds returns the horizontal extent of the menu panel: a left menu
// spans [0, open), a right menu spans [width-open, width).
func (c *Controller) MenuBounds() (left, right float64) {
	w, open := c.geom.Width, c.geom.OpenMenuOffset
	if c.cfg.Position == Right {
		return w - open, w
	}
	return 0, open
}
