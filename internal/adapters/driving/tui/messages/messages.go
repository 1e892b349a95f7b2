// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPages is the page list.
	ViewPages ViewType = iota
	// ViewAnnotate places a text annotation on the selected page.
	ViewAnnotate
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns a string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPages:
		return "pages"
	case ViewAnnotate:
		return "annotate"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FilesDropped is sent when new files should be ingested,
// from the command line or from a watched folder.
type FilesDropped struct {
	Paths []string
}

// PagesIngested carries the outcome of a batch ingestion.
type PagesIngested struct {
	Results []driving.IngestResult
	Err     error
}

// PreviewRendered carries a freshly rendered page preview.
type PreviewRendered struct {
	PageID  string
	Preview *domain.Preview
	Err     error
}

// AnnotationSubmitted is sent when the user confirms an annotation.
// At is in pixels on a surface of the given size.
type AnnotationSubmitted struct {
	PageID  string
	At      domain.Point
	Surface domain.Size
	Text    string
}

// AnnotationCancelled is sent when the user leaves annotate mode without placing text.
type AnnotationCancelled struct{}

// ExportFinished carries the outcome of an export and where it was written.
type ExportFinished struct {
	Path   string
	Result *domain.ExportResult
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
