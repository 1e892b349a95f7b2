// Package tui provides an interactive terminal page editor for pagedeck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collection holds the working set of pages.
	Collection driving.CollectionService

	// Preview renders pages as they currently look.
	Preview driving.PreviewService

	// Export builds the merged document.
	Export driving.ExportService

	// Settings supplies annotation defaults and the export file name.
	// Optional: built-in defaults are used when nil.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	collection driving.CollectionService,
	preview driving.PreviewService,
	export driving.ExportService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Collection: collection,
		Preview:    preview,
		Export:     export,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
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
