package driven

import (
	"context"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// Authoring creates output documents and opens sources to copy from.
type Authoring interface {
	// CreateDocument starts an empty output document.
	CreateDocument(ctx context.Context) (OutputDocument, error)

	// OpenDocument decodes a source for page copying.
	OpenDocument(ctx context.Context, data []byte) (SourceHandle, error)
}

// SourceHandle is a source document opened for copying.
type SourceHandle interface {
	// PageCount returns the number of pages in the source.
	PageCount() int
}

// FontRef identifies a font embedded in an output document.
type FontRef interface {
	// Name returns the font family name.
	Name() string
}

// OutputDocument is the document being assembled.
type OutputDocument interface {
	// EmbedFont makes a standard font available for DrawText.
	EmbedFont(ctx context.Context, name string) (FontRef, error)

	// CopyPage appends a copy of the 0-based page of src to the end of
	// the output and returns it.
	CopyPage(ctx context.Context, src SourceHandle, pageIndex int) (OutputPage, error)

	// Serialize writes the finished document.
	Serialize(ctx context.Context) ([]byte, error)
}

// OutputPage is a page of the output document.
// Coordinates are points with a bottom-left origin.
type OutputPage interface {
	// SetRotation sets the absolute rotation of the page.
	SetRotation(r domain.Rotation) error

	// Size returns the page size as seen after rotation.
	Size() domain.Size

	// DrawText draws text with its baseline starting at the given point.
	DrawText(text string, at domain.Point, size float64, color domain.Color, font FontRef) error
}
