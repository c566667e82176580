package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Dismiss   key.Binding
	Position  key.Binding
	Overdraw  key.Binding
	AutoClose key.Binding
	Gestures  key.Binding
	Diff      key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys("o", " "), key.WithHelp("o/space", "open/close drawer")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss drawer")),
		Position:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "menu left/right")),
		Overdraw:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bounce back on overdraw")),
		AutoClose: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-closing")),
		Gestures:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "enable/disable gestures")),
		Diff:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "config vs defaults")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy state")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Position, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Dismiss},
		{k.Position, k.Overdraw, k.AutoClose, k.Gestures},
		{k.Diff, k.Copy, k.Help, k.Quit},
	}
}
