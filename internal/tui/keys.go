package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Work      key.Binding
	Break     key.Binding
	LongBreak key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Work: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "work"),
		),
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "long break"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
