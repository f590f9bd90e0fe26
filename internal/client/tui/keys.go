package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the share code screen.
type KeyMap struct {
	Copy       key.Binding
	Regenerate key.Binding
	Quit       key.Binding
}

var DefaultKeyMap = KeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "new code"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "back"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Regenerate, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
