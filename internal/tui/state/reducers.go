package state

const defaultMaxEvents = 8

// ToggleHelp flips the help overlay and hides the diff.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	if s.ShowHelp {
		s.ShowDiff = false
	}
	return s
}

// ToggleDiff flips the config diff overlay and hides help.
func ToggleDiff(s UIState) UIState {
	s.ShowDiff = !s.ShowDiff
	if s.ShowDiff {
		s.ShowHelp = false
	}
	return s
}

// Resize stores the terminal size and warns when there is no room for a menu.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	if width < 20 {
		s.Notice = "Narrow terminal: drawer may be unusable"
	}
	return s
}

// PushEvent appends a drawer notification, keeping at most MaxEvents.
func PushEvent(s UIState, ev string) UIState {
	limit := s.MaxEvents
	if limit <= 0 {
		limit = defaultMaxEvents
	}
	events := append(append([]string(nil), s.Events...), ev)
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	s.Events = events
	return s
}

// SetNotice sets a one-line message for the status bar.
func SetNotice(s UIState, msg string) UIState {
	s.Notice = msg
	return s
}

// Sync copies the latest drawer snapshot.
func Sync(s UIState, d DrawerView, flags []Flag) UIState {
	s.Drawer = d
	s.Flags = flags
	return s
}
