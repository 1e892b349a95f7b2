// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Up selects the previous page.
	Up key.Binding

	// Down selects the next page.
	Down key.Binding

	// MoveUp moves the selected page before its predecessor.
	MoveUp key.Binding

	// MoveDown moves the selected page after its successor.
	MoveDown key.Binding

	// Rotate turns the selected page 90 degrees clockwise.
	Rotate key.Binding

	// Exclude toggles whether the selected page is exported.
	Exclude key.Binding

	// Annotate opens annotate mode on the selected page.
	Annotate key.Binding

	// Export writes the merged document.
	Export key.Binding

	// Reset clears the whole collection.
	Reset key.Binding

	// Confirm places the annotation.
	Confirm key.Binding

	// Cancel leaves annotate mode or the help view.
	Cancel key.Binding

	// NextColumn and PrevColumn move the annotation anchor horizontally.
	NextColumn key.Binding
	PrevColumn key.Binding
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
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate"),
		),
		Exclude: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete/restore"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "annotate"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Reset: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "place"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "anchor right"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "anchor left"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar on the page list.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rotate, k.Exclude, k.Annotate, k.Export, k.Help, k.Quit}
}

// AnnotateHelp returns the bindings shown while placing an annotation.
func (k *KeyMap) AnnotateHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextColumn, k.Confirm, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Rotate, k.Exclude, k.Annotate},
		{k.Export, k.Reset},
		{k.Help, k.Quit},
	}
}

// Mutating returns true for bindings that change the collection.
// They are ignored while an ingest or export is running.
func (k *KeyMap) Mutating(keyStr string) bool {
	for _, b := range []key.Binding{k.MoveUp, k.MoveDown, k.Rotate, k.Exclude, k.Annotate, k.Export, k.Reset} {
		if Matches(keyStr, b) {
			return true
		}
	}
	return false
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
