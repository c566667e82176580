package state

// FlagKind enumerates the drawer settings shown as chips.
type FlagKind int

const (
	// Stable ordering for display: Position, Bounce, AutoClose, Gestures
	POSITION FlagKind = iota
	BOUNCE
	AUTO_CLOSE
	GESTURES
)

// Flag is a single settings chip. On carries boolean settings; for POSITION
// it means "right".
type Flag struct {
	Kind FlagKind
	On   bool
}

// DrawerView is the slice of drawer state the widgets render.
type DrawerView struct {
	Open      bool
	Animating bool
	Dragging  bool
	Offset    float64
	Progress  float64
	OpenAt    float64 // open offset in cells
	Phase     string  // gesture tracker phase
}

// UIState holds cross-widget UI state used by status bar, help and diff.
type UIState struct {
	// Layout
	Width  int
	Height int

	// Overlays
	ShowHelp bool
	ShowDiff bool

	Drawer DrawerView
	Flags  []Flag

	// Recent drawer notifications, oldest first.
	Events    []string
	MaxEvents int // default 8 at runtime if zero

	// Notices and ephemeral messages
	Notice string
}
