package drawer

import (
	"math"
	"testing"

	"sidedrawer/internal/anim"
)

// heldAnimator records every animation and only settles on demand.
type heldAnimator struct {
	runs []*heldRun
}

type heldRun struct {
	v       *anim.Value
	to      float64
	fns     []func()
	stopped bool
}

func (h *heldAnimator) Animate(v *anim.Value, to float64) anim.Animation {
	r := &heldRun{v: v, to: to}
	h.runs = append(h.runs, r)
	return r
}

func (r *heldRun) OnSettle(fn func()) { r.fns = append(r.fns, fn) }
func (r *heldRun) Stop() { r.stopped = true }

func (r *heldRun) settle() {
	r.v.Set(r.to)
	for _, fn := range r.fns {
		fn()
	}
}

func (h *heldAnimator) last() *heldRun {
	if len(h.runs) == 0 {
		return nil
	}
	return h.runs[len(h.runs)-1]
}

func newTest(t *testing.T, mutate func(*Config)) (*Controller, *heldAnimator) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	h := &heldAnimator{}
	c := New(cfg, h, 300, 600)
	t.Cleanup(c.Close)
	return c, h
}

func TestGeometryFromPercentages(t *testing.T) {
	c, _ := newTest(t, func(cfg *Config) { cfg.HiddenMenuOffsetPercentage = 0.1 })
	if c.OpenMenuOffset() != 200 || c.HiddenMenuOffset() != 30 {
		t.Fatalf("got open=%v hidden=%v", c.OpenMenuOffset(), c.HiddenMenuOffset())
	}
	c.SetViewport(600, 800)
	g := c.Geometry()
	if g.Width != 600 || g.Height != 800 || g.OpenMenuOffset != 400 || g.HiddenMenuOffset != 60 {
		t.Fatalf("unexpected geometry %+v", g)
	}
}

func TestZeroWidthIsInert(t *testing.T) {
	var slides []float64
	c, _ := newTest(t, func(cfg *Config) {
		cfg.OnSliding = func(p float64) { slides = append(slides, p) }
	})
	c.SetViewport(0, 0)
	if c.OpenMenuOffset() != 0 || c.HiddenMenuOffset() != 0 {
		t.Fatalf("expected collapsed offsets")
	}
	c.SetViewport(-10, 5)
	if c.Geometry().Width != 0 {
		t.Fatalf("negative width should clamp to 0")
	}
	c.OffsetValue().Set(12)
	if len(slides) != 1 || slides[0] != 0 || math.IsNaN(c.Progress()) {
		t.Fatalf("expected defined zero progress, got %v", slides)
	}
}

func TestEdgeGatingWhenClosed(t *testing.T) {
	c, _ := newTest(t, nil)
	if c.ShouldClaim(20, 0, 100) {
		t.Fatalf("move outside the edge band must not be claimed")
	}
	if !c.ShouldClaim(20, 0, 30) {
		t.Fatalf("move inside the edge band must be claimed")
	}
	if c.ShouldClaim(-20, 0, 30) {
		t.Fatalf("swipe away from the edge must not be claimed")
	}
	if c.ShouldClaim(20, 12, 30) {
		t.Fatalf("too much vertical motion must not be claimed")
	}
	if c.ShouldClaim(10.4, 0, 30) {
		t.Fatalf("rounded dx equal to tolerance must not be claimed")
	}
}

func TestEdgeGatingRightMenu(t *testing.T) {
	c, _ := newTest(t, func(cfg *Config) { cfg.Position = Right })
	if !c.ShouldClaim(-20, 0, 290) {
		t.Fatalf("inward swipe from right edge should be claimed")
	}
	if c.ShouldClaim(-20, 0, 200) {
		t.Fatalf("swipe outside right edge band should not be claimed")
	}
	if c.ShouldClaim(20, 0, 290) {
		t.Fatalf("outward swipe should not be claimed")
	}
}

func TestScreenWidthOverridesViewportForEdge(t *testing.T) {
	c, _ := newTest(t, func(cfg *Config) {
		cfg.Position = Right
		cfg.ScreenWidth = 1000
	})
	if c.ShouldClaim(-20, 0, 290) {
		t.Fatalf("edge band should follow the configured screen width")
	}
	if !c.ShouldClaim(-20, 0, 950) {
		t.Fatalf("expected claim near configured screen edge")
	}
	if c.Barrier() != 250 {
		t.Fatalf("expected barrier 250, got %v", c.Barrier())
	}
}

func TestOpenStateUngated(t *testing.T) {
	c, _ := newTest(t, func(cfg *Config) { cfg.IsOpen = true })
	for _, x := range []float64{5, 150, 295} {
		if !c.ShouldClaim(15, 0, x) {
			t.Fatalf("open drawer should claim at moveX=%v", x)
		}
		if !c.ShouldClaim(-15, 0, x) {
			t.Fatalf("open drawer should claim either direction at moveX=%v", x)
		}
	}
}

func TestDisableGestures(t *testing.T) {
	disabled := true
	c, _ := newTest(t, func(cfg *Config) { cfg.DisableGestures = When(func() bool { return disabled }) })
	if c.ShouldClaim(20, 0, 30) {
		t.Fatalf("disabled predicate must block claims")
	}
	disabled = false
	if !c.ShouldClaim(20, 0, 30) {
		t.Fatalf("predicate is evaluated per call")
	}
	cfg := c.Config()
	cfg.DisableGestures = Always(true)
	c.SetConfig(cfg)
	if c.ShouldClaim(20, 0, 30) {
		t.Fatalf("constant gate must block claims")
	}
}

func TestReleaseThreshold(t *testing.T) {
	cases := []struct {
		dx   float64
		open bool
	}{
		{76, true},
		{75, false},
		{40, false},
	}
	for _, tc := range cases {
		c, h := newTest(t, nil)
		if !c.ShouldClaim(tc.dx, 0, 10) {
			t.Fatalf("dx=%v: expected claim", tc.dx)
		}
		c.Grant()
		c.DragEnd(tc.dx)
		if c.IsOpen() != tc.open {
			t.Fatalf("dx=%v: expected open=%v", tc.dx, tc.open)
		}
		want := 0.0
		if tc.open {
			want = 200
		}
		if h.last() == nil || h.last().to != want {
			t.Fatalf("dx=%v: expected settle toward %v", tc.dx, want)
		}
	}
}

func TestOverdrawClamp(t *testing.T) {
	var moves []float64
	c, _ := newTest(t, func(cfg *Config) {
		cfg.BounceBackOnOverdraw = false
		cfg.OnMove = func(v float64) { moves = append(moves, v) }
	})
	c.ShouldClaim(20, 0, 10)
	c.Grant()
	c.DragMove(350)
	if c.Offset() != 200 || len(moves) != 1 || moves[0] != 200 {
		t.Fatalf("expected clamp to 200, offset=%v moves=%v", c.Offset(), moves)
	}

	r, _ := newTest(t, func(cfg *Config) {
		cfg.BounceBackOnOverdraw = false
		cfg.Position = Right
	})
	if !r.ShouldClaim(-350, 0, 290) {
		t.Fatalf("expected claim")
	}
	r.Grant()
	r.DragMove(-350)
	if r.Offset() != -200 {
		t.Fatalf("expected clamp to -200, got %v", r.Offset())
	}
}

func TestOverdrawAllowedWithBounceBack(t *testing.T) {
	c, _ := newTest(t, nil)
	c.Grant()
	c.DragMove(350)
	if c.Offset() != 350 {
		t.Fatalf("expected overdraw to 350, got %v", c.Offset())
	}
}

func TestDragMoveUsesCumulativeDelta(t *testing.T) {
	c, _ := newTest(t, nil)
	c.Grant()
	c.DragMove(20)
	c.DragMove(50)
	if c.Offset() != 50 {
		t.Fatalf("expected 50, got %v", c.Offset())
	}
}

func TestDragMoveGuardOnWrongSide(t *testing.T) {
	c, _ := newTest(t, nil)
	c.OffsetValue().Set(-5)
	c.Grant()
	c.DragMove(40)
	if c.Offset() != -5 {
		t.Fatalf("expected no change on the wrong side, got %v", c.Offset())
	}
}

func TestGestureWithoutClaimIsNoop(t *testing.T) {
	calls := 0
	c, h := newTest(t, func(cfg *Config) { cfg.OnChange = func(bool) { calls++ } })
	c.DragMove(100)
	c.DragEnd(100)
	c.DragTerminate(100)
	if c.Offset() != 0 || calls != 0 || len(h.runs) != 0 {
		t.Fatalf("expected no-ops, offset=%v changes=%d runs=%d", c.Offset(), calls, len(h.runs))
	}
}

func TestAutoClosingGate(t *testing.T) {
	c, h := newTest(t, func(cfg *Config) {
		cfg.AutoClosing = false
		cfg.IsOpen = true
	})
	if c.RequestOpen(true) || c.RequestOpen(true) {
		t.Fatalf("re-open while open must be ignored")
	}
	if c.RequestOpen(false) {
		t.Fatalf("without autoClosing an open drawer ignores external requests")
	}
	if len(h.runs) != 0 {
		t.Fatalf("expected no animation, got %d", len(h.runs))
	}
	if !c.Dismiss() || c.IsOpen() {
		t.Fatalf("overlay dismiss should close regardless of autoClosing")
	}
}

func TestRequestOpenBlockedWhileAnimating(t *testing.T) {
	c, h := newTest(t, nil)
	if !c.RequestOpen(true) {
		t.Fatalf("expected open request to be honored")
	}
	if !c.IsAnimating() {
		t.Fatalf("expected animating")
	}
	if c.RequestOpen(false) {
		t.Fatalf("request during animation must be ignored")
	}
	h.last().settle()
	if c.IsAnimating() {
		t.Fatalf("expected settle to clear animating")
	}
	if !c.RequestOpen(false) || c.IsOpen() {
		t.Fatalf("expected close after settle")
	}
}

func TestSetOpenNotifiesSynchronously(t *testing.T) {
	var events []string
	c, h := newTest(t, func(cfg *Config) {
		cfg.OnChange = func(open bool) {
			if open {
				events = append(events, "change:open")
			} else {
				events = append(events, "change:closed")
			}
		}
		cfg.OnAnimationComplete = func(open bool) {
			if open {
				events = append(events, "done:open")
			} else {
				events = append(events, "done:closed")
			}
		}
	})
	c.RequestOpen(true)
	if len(events) != 1 || events[0] != "change:open" {
		t.Fatalf("expected immediate change, got %v", events)
	}
	if c.Offset() != 0 {
		t.Fatalf("offset should not move before the animation runs")
	}
	h.last().settle()
	if len(events) != 2 || events[1] != "done:open" {
		t.Fatalf("expected completion after settle, got %v", events)
	}
}

func TestSupersededSettleIgnored(t *testing.T) {
	completions := 0
	c, h := newTest(t, func(cfg *Config) { cfg.OnAnimationComplete = func(bool) { completions++ } })
	c.RequestOpen(true)
	first := h.last()
	c.Dismiss()
	second := h.last()
	first.settle()
	if !c.IsAnimating() || completions != 0 {
		t.Fatalf("stale settle must not clear animating (completions=%d)", completions)
	}
	second.settle()
	if c.IsAnimating() || completions != 1 || c.IsOpen() {
		t.Fatalf("expected closed and settled, completions=%d", completions)
	}
}

func TestBaselineIsTargetMidAnimation(t *testing.T) {
	c, h := newTest(t, nil)
	c.RequestOpen(true)
	run := h.last()
	c.OffsetValue().Set(120)
	c.Grant()
	if !run.stopped || c.IsAnimating() {
		t.Fatalf("grant should stop the in-flight settle")
	}
	c.DragMove(-30)
	if c.Offset() != 170 {
		t.Fatalf("drag should be based on the settle target 200, got %v", c.Offset())
	}
}

func TestSlideProgressLinear(t *testing.T) {
	var got []float64
	c, _ := newTest(t, func(cfg *Config) { cfg.OnSliding = func(p float64) { got = append(got, p) } })
	for _, v := range []float64{0, 50, 100, 200} {
		c.OffsetValue().Set(v)
	}
	want := []float64{0, 0.25, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 || got[i] < 0 || got[i] > 1 {
			t.Fatalf("progress[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	h, _ := newTest(t, func(cfg *Config) { cfg.HiddenMenuOffsetPercentage = 0.1 })
	h.OffsetValue().Set(115)
	if math.Abs(h.Progress()-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 with hidden offset, got %v", h.Progress())
	}
}

func TestCloseDetachesProgressListener(t *testing.T) {
	calls := 0
	cfg := DefaultConfig()
	cfg.OnSliding = func(float64) { calls++ }
	c := New(cfg, nil, 300, 600)
	c.Close()
	c.Close()
	c.OffsetValue().Set(10)
	if calls != 0 || c.OffsetValue().Listeners() != 0 {
		t.Fatalf("expected listener removed, calls=%d", calls)
	}
}

func TestScenarioQuarterScreenOpen(t *testing.T) {
	var changes []bool
	cfg := DefaultConfig()
	cfg.OnChange = func(open bool) { changes = append(changes, open) }
	spring := anim.NewSpring(anim.SpringOptions{})
	c := New(cfg, spring, 300, 600)
	defer c.Close()
	if c.OpenMenuOffset() != 200 {
		t.Fatalf("expected open offset 200, got %v", c.OpenMenuOffset())
	}
	if !c.ShouldClaim(80, 2, 10) {
		t.Fatalf("expected claim")
	}
	c.Grant()
	c.DragEnd(80)
	if !c.IsOpen() || len(changes) != 1 || !changes[0] {
		t.Fatalf("expected resolve to open, changes=%v", changes)
	}
	for spring.Step() {
	}
	if c.Offset() != 200 || c.IsAnimating() {
		t.Fatalf("expected settled at 200, got %v animating=%v", c.Offset(), c.IsAnimating())
	}
}

func TestInitialOpenOffset(t *testing.T) {
	c, _ := newTest(t, func(cfg *Config) {
		cfg.IsOpen = true
		cfg.Position = Right
	})
	if c.Offset() != -200 {
		t.Fatalf("expected -200, got %v", c.Offset())
	}
	if got := c.Offset() * c.PositionMultiplier(); got != c.OpenMenuOffset() {
		t.Fatalf("signed offset should map back to the open offset, got %v", got)
	}
	l, r := c.MenuBounds()
	if l != 100 || r != 300 {
		t.Fatalf("expected right menu bounds [100,300), got [%v,%v)", l, r)
	}
}

func TestCaptureStart(t *testing.T) {
	c, _ := newTest(t, nil)
	if c.ShouldCaptureStart(1, 1) {
		t.Fatalf("default capture should be false")
	}
	cfg := c.Config()
	cfg.CaptureStart = func(x, y float64) bool { return x < 5 }
	c.SetConfig(cfg)
	if !c.ShouldCaptureStart(1, 1) || c.ShouldCaptureStart(10, 1) {
		t.Fatalf("capture hook not consulted")
	}
}

func TestParsePosition(t *testing.T) {
	if p, err := ParsePosition("right"); err != nil || p != Right {
		t.Fatalf("expected right")
	}
	if _, err := ParsePosition("top"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}
