package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	pgUp    key.Binding
	pgDown  key.Binding
	enter   key.Binding
	back    key.Binding
	browser key.Binding
	copy    key.Binding
	theme   key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		pgUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		pgDown:  key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		browser: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.pgUp, k.pgDown, k.enter, k.back},
		{k.browser, k.copy, k.theme, k.quit},
	}
}
