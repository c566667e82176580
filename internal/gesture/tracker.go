// Package gesture turns raw single-pointer samples into the claim/move/end
// protocol a drag responder understands.
package gesture

// Responder is the side that decides whether to own a drag and then
// follows it. Deltas are cumulative from the press position.
type Responder interface {
	ShouldCaptureStart(x, y float64) bool
	ShouldClaim(dx, dy, moveX float64) bool
	Grant()
	DragMove(dx float64)
	DragEnd(dx float64)
	DragTerminate(dx float64)
}

// Phase of the tracked pointer.
type Phase int

const (
	Idle Phase = iota
	Pending  // pressed, not claimed yet
	Claimed  // responder owns the drag
	Rejected // released to someone else; ignored until the next press
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Claimed:
		return "claimed"
	case Rejected:
		return "rejected"
	}
	return "idle"
}

// Tracker follows one pointer from press to release.
type Tracker struct {
	r              Responder
	phase          Phase
	startX, startY float64
	dx, dy         float64
	// OnReject, if set, is called when a pending gesture ends unclaimed,
	// i.e. a plain tap or a drag nobody wanted.
	OnReject func(x, y float64)
}

func NewTracker(r Responder) *Tracker {
	return &Tracker{r: r}
}

func (t *Tracker) Phase() Phase { return t.phase }

// Delta returns the cumulative movement since the press.
func (t *Tracker) Delta() (dx, dy float64) { return t.dx, t.dy }

// Press starts a gesture at x, y. A press while another gesture is still
// claimed terminates the old one first.
func (t *Tracker) Press(x, y float64) {
	if t.phase == Claimed {
		t.r.DragTerminate(t.dx)
	}
	t.startX, t.startY = x, y
	t.dx, t.dy = 0, 0
	t.phase = Pending
	if t.r.ShouldCaptureStart(x, y) {
		t.phase = Claimed
		t.r.Grant()
	}
}

// Move feeds a pointer position while pressed. Moves without a press are
// ignored.
func (t *Tracker) Move(x, y float64) {
	switch t.phase {
	case Pending:
		t.dx, t.dy = x-t.startX, y-t.startY
		if !t.r.ShouldClaim(t.dx, t.dy, x) {
			return
		}
		t.phase = Claimed
		t.r.Grant()
		t.r.DragMove(t.dx)
	case Claimed:
		t.dx, t.dy = x-t.startX, y-t.startY
		t.r.DragMove(t.dx)
	}
}

// Release ends the gesture at x, y.
func (t *Tracker) Release(x, y float64) {
	switch t.phase {
	case Claimed:
		t.dx, t.dy = x-t.startX, y-t.startY
		t.r.DragEnd(t.dx)
	case Pending:
		if t.OnReject != nil {
			t.OnReject(x, y)
		}
	}
	t.phase = Idle
}

// Cancel ends the gesture without a release position, e.g. when the
// pointer leaves the surface or focus is lost.
func (t *Tracker) Cancel() {
	if t.phase == Claimed {
		t.r.DragTerminate(t.dx)
	}
	t.phase = Idle
}

// Reject hands a pending gesture to someone else; the rest of it is ignored.
func (t *Tracker) Reject() {
	if t.phase == Pending {
		t.phase = Rejected
	}
}
