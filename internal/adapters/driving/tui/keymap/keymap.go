// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// PageJump is the number of pages moved by the fast page bindings.
const PageJump = 10

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back leaves the results or the current view.
	Back key.Binding

	// Search runs the typed term.
	Search key.Binding

	// Focus switches between the input and the results.
	Focus key.Binding

	// FocusInput jumps to the input from the results.
	FocusInput key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// PrevPage loads the previous page.
	PrevPage key.Binding

	// NextPage loads the next page.
	NextPage key.Binding

	// PrevPages jumps PageJump pages back.
	PrevPages key.Binding

	// NextPages jumps PageJump pages forward.
	NextPages key.Binding

	// FirstPage loads the first page.
	FirstPage key.Binding

	// LastPage loads the last page.
	LastPage key.Binding

	// CycleSort switches to the next sort order.
	CycleSort key.Binding

	// CycleScope switches to the next scope.
	CycleScope key.Binding

	// Readme shows the README of the selected crate.
	Readme key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "focus"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "new search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next page"),
		),
		PrevPages: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "10 pages back"),
		),
		NextPages: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "10 pages forward"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last page"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sort"),
		),
		CycleScope: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "scope"),
		),
		Readme: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "readme"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleSort, k.CycleScope, k.Help}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.PrevPage, k.NextPage, k.Readme, k.FocusInput}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Focus, k.FocusInput, k.Back},
		{k.Up, k.Down, k.Readme},
		{k.PrevPage, k.NextPage, k.PrevPages, k.NextPages, k.FirstPage, k.LastPage},
		{k.CycleSort, k.CycleScope},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
