package driven

import (
	"context"
	"image"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// Renderer decodes source documents for inspection and preview.
type Renderer interface {
	// Open decodes a document.
	// Returns an error if the bytes are not a readable PDF.
	Open(ctx context.Context, data []byte) (RenderDocument, error)
}

// RenderDocument is a decoded source document.
// Handles are reused across renders of the same source.
type RenderDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the unrotated size of a 1-based page in points.
	PageSize(page int) (domain.Size, error)

	// RenderPage rasterises a 1-based page at the given rotation, scaled so
	// the rotated page is targetWidth pixels wide.
	RenderPage(ctx context.Context, page int, rotation domain.Rotation, targetWidth int) (Surface, error)
}

// Surface is a raster preview of one page.
// Coordinates are pixels with a top-left origin.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() domain.Size

	// DrawText draws text with its top edge at the given point.
	DrawText(text string, at domain.Point, size float64, color domain.Color)

	// Image returns the rendered pixels.
	Image() image.Image
}
