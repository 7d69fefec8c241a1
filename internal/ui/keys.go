package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for navigation.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding
	NewSearch  key.Binding
	Favorites  key.Binding
	Exclusions key.Binding
	History    key.Binding
	Favorite   key.Binding
	Exclude    key.Binding
	Reserve    key.Binding
	Notify     key.Binding
	Delete     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "new search"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites"),
		),
		Exclusions: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "exclusions"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Exclude: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exclude"),
		),
		Reserve: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reserve"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}
