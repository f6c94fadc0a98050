package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceCtrl key.Binding
	Disable   key.Binding
	Clear     key.Binding
	History   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ForceCtrl: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle mode"),
		),
		Disable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "disable/enable"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c", "clear"),
		),
		History: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "history"),
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

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ForceCtrl, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ForceCtrl, k.Disable, k.Clear},
		{k.History, k.Help, k.Quit},
	}
}
