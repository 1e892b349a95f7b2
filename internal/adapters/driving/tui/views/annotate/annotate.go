// Package annotate provides the annotation placement view for the TUI.
//
// The user types the text and picks one of nine anchor positions on the
// page's preview surface; the text's top-left corner is placed at the anchor.
package annotate

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// fractions are the anchor offsets along each axis of the surface.
var fractions = [3]float64{0.1, 0.45, 0.8}

var rowNames = [3]string{"top", "middle", "bottom"}
var colNames = [3]string{"left", "centre", "right"}

// View is the annotate mode view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	field  *input.TextField

	pageID  string
	label   string
	surface domain.Size
	row     int
	col     int
	width   int
}

// NewView creates a new annotate view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		field:  input.NewTextField(s, "Text", "annotation text"),
		row:    1,
		col:    1,
	}
}

// Start prepares the view for a page whose preview surface has the given size.
// The anchor starts in the middle of the page.
func (v *View) Start(page domain.PageRecord, surface domain.Size) tea.Cmd {
	v.pageID = page.ID
	v.label = page.Label()
	v.surface = surface
	v.row, v.col = 1, 1
	v.field.Reset()
	return v.field.Focus()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.field.Init()
}

// Update handles key presses in annotate mode.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return v, cmd
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Cancel):
		return v, func() tea.Msg { return messages.AnnotationCancelled{} }
	case keymap.Matches(k, v.keymap.Confirm):
		if v.field.Value() == "" {
			return v, nil
		}
		submitted := messages.AnnotationSubmitted{
			PageID:  v.pageID,
			At:      v.Position(),
			Surface: v.surface,
			Text:    v.field.Value(),
		}
		return v, func() tea.Msg { return submitted }
	case k == "up":
		v.row = max(v.row-1, 0)
		return v, nil
	case k == "down":
		v.row = min(v.row+1, 2)
		return v, nil
	case keymap.Matches(k, v.keymap.NextColumn):
		v.col = (v.col + 1) % 3
		return v, nil
	case keymap.Matches(k, v.keymap.PrevColumn):
		v.col = (v.col + 2) % 3
		return v, nil
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// Position returns the anchor in pixels on the preview surface.
func (v *View) Position() domain.Point {
	return domain.Point{
		X: fractions[v.col] * v.surface.Width,
		Y: fractions[v.row] * v.surface.Height,
	}
}

// Anchor returns the selected grid cell.
func (v *View) Anchor() (row, col int) {
	return v.row, v.col
}

// PageID returns the page being annotated.
func (v *View) PageID() string {
	return v.pageID
}

// Text returns the typed annotation text.
func (v *View) Text() string {
	return v.field.Value()
}

// View renders the view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Annotate " + v.label))
	b.WriteString("\n\n")
	b.WriteString(v.field.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderGrid())
	b.WriteString("\n")

	at := v.Position()
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Anchor: %s %s (%.0f, %.0f px on %.0fx%.0f)",
		rowNames[v.row], colNames[v.col], at.X, at.Y, v.surface.Width, v.surface.Height)))
	return b.String()
}

func (v *View) renderGrid() string {
	rows := make([]string, 0, 3)
	for r := range 3 {
		cells := make([]string, 0, 3)
		for c := range 3 {
			if r == v.row && c == v.col {
				cells = append(cells, v.styles.ActiveCell.Render("◆"))
			} else {
				cells = append(cells, v.styles.Cell.Render("·"))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return v.styles.Thumbnail.Render(strings.Join(rows, "\n"))
}

// SetWidth sets the available width.
func (v *View) SetWidth(width int) {
	v.width = width
	v.field.SetWidth(width)
}
