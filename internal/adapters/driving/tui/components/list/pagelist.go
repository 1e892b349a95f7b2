// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// PageList displays the working set of pages in a navigable list.
type PageList struct {
	pages    []domain.PageRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewPageList creates a new page list component.
func NewPageList(s *styles.Styles) *PageList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PageList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the page list.
func (l *PageList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *PageList) Update(msg tea.Msg) (*PageList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.pages) > 0 {
				l.selected = len(l.pages) - 1
			}
		}
	}
	return l, nil
}

// View renders the page list.
func (l *PageList) View() string {
	if len(l.pages) == 0 {
		return l.styles.Muted.Render("No pages. Pass PDF files on the command line or drop them in the watched folder.")
	}

	lines := make([]string, 0, len(l.pages)+2)
	lines = append(lines, l.styles.Title.Render(fmt.Sprintf("Pages (%d)", len(l.pages))), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.pages))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderPage(i, &l.pages[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *PageList) renderPage(index int, page *domain.PageRecord) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	line := fmt.Sprintf("%s%3d. %s", indicator, index+1, page.Label())
	if n := len(page.Annotations); n > 0 {
		line += fmt.Sprintf("  [%d text]", n)
	}

	switch {
	case index == l.selected:
		return l.styles.Selected.Render(line)
	case page.Excluded:
		return l.styles.Excluded.Render(line)
	default:
		return l.styles.Normal.Render(line)
	}
}

// SetPages replaces the listed pages. The selection index is kept
// and clamped to the new length.
func (l *PageList) SetPages(pages []domain.PageRecord) {
	l.pages = pages
	if l.selected >= len(pages) {
		l.selected = len(pages) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Pages returns the listed pages.
func (l *PageList) Pages() []domain.PageRecord {
	return l.pages
}

// Selected returns the index of the selected page.
func (l *PageList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *PageList) SetSelected(index int) {
	if index >= 0 && index < len(l.pages) {
		l.selected = index
	}
}

// SelectedPage returns the currently selected page, or nil if the list is empty.
func (l *PageList) SelectedPage() *domain.PageRecord {
	if l.selected < 0 || l.selected >= len(l.pages) {
		return nil
	}
	return &l.pages[l.selected]
}

// Neighbour returns the page offset positions away from the selection, or nil.
func (l *PageList) Neighbour(offset int) *domain.PageRecord {
	i := l.selected + offset
	if i < 0 || i >= len(l.pages) {
		return nil
	}
	return &l.pages[i]
}

// MoveUp moves selection up.
func (l *PageList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *PageList) MoveDown() {
	if l.selected < len(l.pages)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *PageList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of pages.
func (l *PageList) Count() int {
	return len(l.pages)
}
