package driving

import (
	"context"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// IngestResult reports the outcome of ingesting one file of a batch.
type IngestResult struct {
	// Name is the file name from the batch.
	Name string

	// PageIDs are the new page IDs, in source page order.
	PageIDs []string

	// Err is set when the file could not be ingested.
	// The collection is unchanged by a failed file.
	Err error
}

// CollectionService manages the ordered working set of pages.
type CollectionService interface {
	// Ingest decodes a document and appends one page per source page.
	// Returns a *domain.DecodeError if the bytes cannot be read.
	Ingest(ctx context.Context, name string, data []byte) ([]string, error)

	// IngestFiles ingests several documents in order.
	// A failure on one file does not stop the others.
	IngestFiles(ctx context.Context, files []domain.SourceFile) []IngestResult

	// Reorder moves a page to immediately before another.
	// Returns false and changes nothing if either ID is unknown or they are equal.
	Reorder(movedID, beforeID string) bool

	// Rotate advances the page's rotation by 90 degrees.
	Rotate(id string) (domain.Rotation, error)

	// ToggleExclude flips whether the page is left out of the export.
	ToggleExclude(id string) (bool, error)

	// Annotate places text at a pixel position on the page's current preview surface.
	Annotate(id string, at domain.Point, surface domain.Size, input domain.AnnotationInput) (domain.Annotation, error)

	// Reset removes all pages and sources and restarts ID numbering.
	Reset()

	// Pages returns a copy of all records in order.
	Pages() []domain.PageRecord

	// Page returns a copy of one record.
	Page(id string) (domain.PageRecord, error)

	// Active returns copies of the non-excluded records in order.
	Active() []domain.PageRecord

	// Sources returns the ingested source documents in ingestion order.
	Sources() []domain.SourceDocument

	// Len returns the number of records.
	Len() int
}
