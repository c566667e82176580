package drawer

import "math"

// ShouldCaptureStart is asked on press, before any movement.
func (c *Controller) ShouldCaptureStart(x, y float64) bool {
	if c.cfg.CaptureStart == nil {
		return false
	}
	return c.cfg.CaptureStart(x, y)
}

// ShouldClaim decides whether a drag with cumulative deltas dx, dy, currently
// at moveX, belongs to the drawer. While closed, only a mostly horizontal
// swipe starting in the edge band and pointing inward qualifies; while open,
// any mostly horizontal swipe does.
func (c *Controller) ShouldClaim(dx, dy, moveX float64) bool {
	if c.cfg.DisableGestures.Active() {
		return false
	}
	x := math.Round(math.Abs(dx))
	y := math.Round(math.Abs(dy))
	touchMoved := x > c.cfg.ToleranceX && y < c.cfg.ToleranceY

	if c.isOpen {
		return touchMoved
	}

	var withinEdge bool
	if c.cfg.Position == Right {
		withinEdge = moveX > c.screenWidth()-c.cfg.EdgeHitWidth
	} else {
		withinEdge = moveX < c.cfg.EdgeHitWidth
	}
	swipingToOpen := c.multiplier()*dx > 0
	return touchMoved && withinEdge && swipingToOpen
}

// Grant establishes the drag baseline once a gesture has been claimed. A
// settle still in flight is stopped where it is; the baseline stays at its
// target.
func (c *Controller) Grant() {
	c.interrupt()
	c.dragging = true
}

// DragMove tracks the pointer 1:1; dx is cumulative since the gesture start.
func (c *Controller) DragMove(dx float64) {
	if !c.dragging {
		return
	}
	if c.offset.Get()*c.multiplier() < 0 {
		return
	}
	left := c.prevLeft + dx
	if !c.cfg.BounceBackOnOverdraw && math.Abs(left) > c.geom.OpenMenuOffset {
		left = c.multiplier() * c.geom.OpenMenuOffset
	}
	c.cfg.onMove(left)
	c.offset.Set(left)
}

// DragEnd resolves a released gesture to open or closed.
func (c *Controller) DragEnd(dx float64) {
	if !c.dragging {
		return
	}
	c.dragging = false
	end := c.multiplier() * (c.offset.Get() + dx)
	c.setOpen(end > c.Barrier())
}

// DragTerminate resolves a gesture taken away by someone else.
func (c *Controller) DragTerminate(dx float64) { c.DragEnd(dx) }
