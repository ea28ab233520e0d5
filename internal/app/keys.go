package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit key.Binding
	Copy key.Binding
	Help key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy chart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Help, k.Copy, k.Quit}
}
