package driving

import (
	"context"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// PreviewService renders pages as they currently look.
type PreviewService interface {
	// Render draws the page at its current rotation with its annotations.
	// A width of zero uses the configured preview width.
	Render(ctx context.Context, id string, width int) (*domain.Preview, error)

	// Size returns the preview surface size without rendering annotations.
	Size(ctx context.Context, id string, width int) (domain.Size, error)
}
