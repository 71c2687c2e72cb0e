package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the interactive converter.
type KeyMap struct {
	Quit    key.Binding
	Clear   key.Binding
	Up      key.Binding
	Down    key.Binding
	Verbose key.Binding
}

// DefaultKeyMap returns the default key bindings. Plain letters stay free
// for literal input, so commands use control keys and arrows.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous literal"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next literal"),
		),
		Verbose: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "toggle verbose"),
		),
	}
}
