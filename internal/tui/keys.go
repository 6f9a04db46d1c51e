package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings that close a screen.
// Scrolling and field navigation are handled by the components themselves.
type KeyMap struct {
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ViewerHelpText returns help text for the result viewer.
func (k KeyMap) ViewerHelpText() string {
	return "↑/↓ scroll • pgup/pgdn page • " + k.Quit.Help().Key + " quit"
}
