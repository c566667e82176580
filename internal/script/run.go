package script

import (
	"fmt"
	"math"
	"strings"

	"sidedrawer/internal/anim"
	"sidedrawer/internal/drawer"
	"sidedrawer/internal/gesture"
)

// Event is one notification the drawer emitted during a run.
type Event struct {
	Step  int // 1-based
	Kind  string
	Value float64
	Open  bool
}

func (e Event) String() string {
	switch e.Kind {
	case "change", "complete":
		state := "closed"
		if e.Open {
			state = "open"
		}
		return fmt.Sprintf("#%d %s %s", e.Step, e.Kind, state)
	case "sliding":
		return fmt.Sprintf("#%d %s %.3f", e.Step, e.Kind, e.Value)
	}
	return fmt.Sprintf("#%d %s %g", e.Step, e.Kind, e.Value)
}

// Options for Run.
type Options struct {
	// Instant settles every animation synchronously instead of springing.
	Instant bool
	// Base is the configuration the script preset is layered on. Nil means
	// the defaults.
	Base *drawer.Config
	// Slides includes every slide-progress notification in the result.
	Slides bool
}

// Result of a run.
type Result struct {
	Events []Event
	Open   bool
	Offset float64
	Frames int
}

// Lines formats the events one per line.
func (r *Result) Lines() []string {
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.String())
	}
	return out
}

func (r *Result) String() string { return strings.Join(r.Lines(), "\n") }

// Run replays s. It stops at the first failed expectation and returns the
// events recorded so far along with the error.
func Run(s *Script, o Options) (*Result, error) {
	res := &Result{}
	step := 0
	record := func(kind string, v float64, open bool) {
		res.Events = append(res.Events, Event{Step: step, Kind: kind, Value: v, Open: open})
	}

	base := drawer.DefaultConfig()
	if o.Base != nil {
		base = *o.Base
	}
	cfg := s.Preset.Apply(base)
	cfg.OnChange = func(open bool) { record("change", 0, open) }
	cfg.OnMove = func(v float64) { record("move", v, false) }
	cfg.OnAnimationComplete = func(open bool) { record("complete", 0, open) }
	if o.Slides {
		cfg.OnSliding = func(p float64) { record("sliding", p, false) }
	}

	var spring *anim.Spring
	var animator anim.Animator = anim.Instant{}
	if !o.Instant {
		spring = anim.NewSpring(s.Preset.SpringOptions())
		animator = spring
	}
	c := drawer.New(cfg, animator, s.Viewport.Width, s.Viewport.Height)
	defer c.Close()
	tr := gesture.NewTracker(c)

	for i, st := range s.Steps {
		step = i + 1
		switch st.Kind() {
		case "press":
			tr.Press(st.Press[0], st.Press[1])
		case "move":
			tr.Move(st.Move[0], st.Move[1])
		case "release":
			tr.Release(st.Release[0], st.Release[1])
		case "cancel":
			tr.Cancel()
		case "request":
			switch st.Request {
			case "open":
				c.RequestOpen(true)
			case "close":
				c.RequestOpen(false)
			case "toggle":
				c.Toggle()
			}
		case "dismiss":
			c.Dismiss()
		case "resize":
			c.SetViewport(st.Resize[0], st.Resize[1])
			record("resize", st.Resize[0], c.IsOpen())
		case "frames":
			if spring != nil {
				for n := 0; n < st.Frames && spring.Step(); n++ {
					res.Frames++
				}
			}
		case "settle":
			if spring != nil {
				for spring.Step() {
					res.Frames++
				}
			}
		case "expect":
			if err := check(c, st.Expect); err != nil {
				res.Open, res.Offset = c.IsOpen(), c.Offset()
				return res, fmt.Errorf("step %d: %w", step, err)
			}
		default:
			return res, fmt.Errorf("step %d: need exactly one action", step)
		}
	}
	res.Open, res.Offset = c.IsOpen(), c.Offset()
	return res, nil
}

func check(c *drawer.Controller, e *Expect) error {
	if e.Open != nil && c.IsOpen() != *e.Open {
		return fmt.Errorf("expected open=%v, got %v", *e.Open, c.IsOpen())
	}
	if e.Offset != nil && math.Abs(c.Offset()-*e.Offset) > 1e-6 {
		return fmt.Errorf("expected offset %g, got %g", *e.Offset, c.Offset())
	}
	if e.Animating != nil && c.IsAnimating() != *e.Animating {
		return fmt.Errorf("expected animating=%v, got %v", *e.Animating, c.IsAnimating())
	}
	return nil
}
