// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/styles"
)

// maxTextLength bounds annotation text; it is drawn on a single line.
const maxTextLength = 200

// TextField wraps a bubbles textinput with a label.
type TextField struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTextField creates a focused single-line text field.
func NewTextField(s *styles.Styles, label, placeholder string) *TextField {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = maxTextLength
	ti.Width = 40

	return &TextField{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
}

// Init initialises the field.
func (f *TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *TextField) Update(msg tea.Msg) (*TextField, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the field.
func (f *TextField) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (f *TextField) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *TextField) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *TextField) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *TextField) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *TextField) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the field, leaving room for the label.
func (f *TextField) SetWidth(width int) {
	f.width = width
	f.textinput.Width = max(width-len(f.label)-6, 20)
}

// Width returns the current width.
func (f *TextField) Width() int {
	return f.width
}

// Reset clears the input.
func (f *TextField) Reset() {
	f.textinput.Reset()
}
