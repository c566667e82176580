package drawer

import "fmt"

// Position is the screen edge the menu is anchored to.
type Position int

const (
	Left Position = iota
	Right
)

func (p Position) String() string {
	if p == Right {
		return "right"
	}
	return "left"
}

// ParsePosition accepts "left" or "right".
func ParsePosition(s string) (Position, error) {
	switch s {
	case "left", "":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown menu position %q (want left|right)", s)
}

// Multiplier is +1 for Left and -1 for Right.
func (p Position) Multiplier() float64 {
	if p == Right {
		return -1
	}
	return 1
}

// Gate is either a constant or a predicate evaluated on every call.
// The zero Gate is never active.
type Gate struct {
	on bool
	fn func() bool
}

func Always(on bool) Gate { return Gate{on: on} }
func When(fn func() bool) Gate { return Gate{fn: fn} }

func (g Gate) Active() bool {
	if g.fn != nil {
		return g.fn()
	}
	return g.on
}

// Config is the per-session drawer configuration.
type Config struct {
	EdgeHitWidth float64
	ToleranceX   float64
	ToleranceY   float64
	Position     Position

	OpenMenuOffsetPercentage   float64
	HiddenMenuOffsetPercentage float64

	BounceBackOnOverdraw bool
	AutoClosing          bool
	DisableGestures      Gate

	// IsOpen is the initial logical state.
	IsOpen bool

	// ScreenWidth feeds the right-edge hit band and the quarter-screen
	// release barrier. Zero follows the current viewport width.
	ScreenWidth float64

	OnChange            func(isOpen bool)
	OnMove              func(offset float64)
	OnSliding           func(progress float64)
	OnAnimationComplete func(isOpen bool)
	// CaptureStart lets the owner grab a gesture on press, before any move.
	CaptureStart func(x, y float64) bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		EdgeHitWidth:             60,
		ToleranceX:               10,
		ToleranceY:               10,
		Position:                 Left,
		OpenMenuOffsetPercentage: 2.0 / 3.0,
		BounceBackOnOverdraw:     true,
		AutoClosing:              true,
	}
}

func (c Config) onChange(open bool) {
	if c.OnChange != nil {
		c.OnChange(open)
	}
}

func (c Config) onMove(offset float64) {
	if c.OnMove != nil {
		c.OnMove(offset)
	}
}

func (c Config) onSliding(p float64) {
	if c.OnSliding != nil {
		c.OnSliding(p)
	}
}

func (c Config) onAnimationComplete(open bool) {
	if c.OnAnimationComplete != nil {
		c.OnAnimationComplete(open)
	}
}
