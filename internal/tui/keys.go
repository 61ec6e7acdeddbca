package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for prompts.
type KeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// HelpText returns a one-line summary of the bindings.
func (k KeyMap) HelpText() string {
	confirm, cancel := k.Confirm.Help(), k.Cancel.Help()
	return confirm.Key + " " + confirm.Desc + " • " + cancel.Key + " " + cancel.Desc
}
