package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open    key.Binding
	Clip    key.Binding
	Toggle  key.Binding
	Recent  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Clip:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clip")),
		Toggle:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "negative ts")),
		Recent:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reopen last")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) mainBindings() []key.Binding {
	return []key.Binding{k.Open, k.Clip, k.Toggle, k.Recent, k.Quit}
}

func (k keyMap) promptBindings() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
