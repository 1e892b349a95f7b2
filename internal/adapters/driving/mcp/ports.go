package mcp

import (
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collection holds the working set of pages.
	Collection driving.CollectionService

	// Preview converts fractional positions to preview pixels and renders pages.
	Preview driving.PreviewService

	// Export builds the merged document.
	Export driving.ExportService

	// Settings supplies annotation defaults and the export file name.
	// Optional: built-in defaults are used when nil.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Collection == nil {
		return ErrMissingCollectionService
	}
	if p.Preview == nil {
		return ErrMissingPreviewService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
