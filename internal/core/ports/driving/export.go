package driving

import (
	"context"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// ExportService assembles the merged output document.
type ExportService interface {
	// Export writes every active page, in order, into one document.
	// Returns domain.ErrNothingToExport if no page is active.
	Export(ctx context.Context) (*domain.ExportResult, error)
}
