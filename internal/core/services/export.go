package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService merges the active pages of the collection into one document.
type ExportService struct {
	collection driving.CollectionService
	authoring  driven.Authoring
	settings   driving.SettingsService
}

// NewExportService creates an export service.
// settings may be nil, in which case defaults are used for file name and font.
func NewExportService(
	collection driving.CollectionService,
	authoring driven.Authoring,
	settings driving.SettingsService,
) *ExportService {
	return &ExportService{
		collection: collection,
		authoring:  authoring,
		settings:   settings,
	}
}

// Export builds the output document from the active pages in collection order.
//
// Each source document is opened at most once per call. The cache is keyed
// by source index and dropped when Export returns. The context is checked
// before the export starts; once started, it runs to completion or failure.
func (s *ExportService) Export(ctx context.Context) (*domain.ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.authoring == nil {
		return nil, domain.ErrNotImplemented
	}

	pages := s.collection.Active()
	if len(pages) == 0 {
		return nil, domain.ErrNothingToExport
	}

	logger.Section("Export")
	defer logger.Timed("export")()

	opts := s.options()

	out, err := s.authoring.CreateDocument(ctx)
	if err != nil {
		return nil, &domain.ExportError{Op: "CreateDocument", Err: err}
	}
	font, err := out.EmbedFont(ctx, opts.Font)
	if err != nil {
		return nil, &domain.ExportError{Op: "EmbedFont", Err: err}
	}

	cache := make(map[int]driven.SourceHandle)
	for _, p := range pages {
		src, ok := cache[p.SourceIndex]
		if !ok {
			logger.Debug("opening source PDF %d", p.SourceIndex+1)
			src, err = s.authoring.OpenDocument(ctx, p.SourceBytes)
			if err != nil {
				return nil, &domain.ExportError{Op: "OpenDocument", PageID: p.ID, Err: err}
			}
			cache[p.SourceIndex] = src
		}

		if err := s.writePage(ctx, out, src, p, font); err != nil {
			return nil, err
		}
	}

	data, err := out.Serialize(ctx)
	if err != nil {
		return nil, &domain.ExportError{Op: "Serialize", Err: err}
	}

	logger.Info("exported %d pages from %d sources (%d bytes)", len(pages), len(cache), len(data))
	return &domain.ExportResult{
		ID:            uuid.NewString(),
		FileName:      opts.FileName,
		Data:          data,
		PageCount:     len(pages),
		SourcesOpened: len(cache),
	}, nil
}

func (s *ExportService) writePage(
	ctx context.Context,
	out driven.OutputDocument,
	src driven.SourceHandle,
	p domain.PageRecord,
	font driven.FontRef,
) error {
	page, err := out.CopyPage(ctx, src, p.PageNumber-1)
	if err != nil {
		return &domain.ExportError{Op: "CopyPage", PageID: p.ID, Err: err}
	}

	// The user's rotation replaces whatever rotation the source page had.
	if p.Rotation != domain.Rotate0 {
		if err := page.SetRotation(p.Rotation); err != nil {
			return &domain.ExportError{Op: "SetRotation", PageID: p.ID, Err: err}
		}
	}

	size := page.Size()
	for _, a := range p.Annotations {
		at := transform.ToOutput(domain.Point{X: a.X, Y: a.Y}, size, a.Size)
		if err := page.DrawText(a.Text, at, a.Size, a.Color, font); err != nil {
			return &domain.ExportError{Op: "DrawText", PageID: p.ID, Err: err}
		}
	}
	return nil
}

func (s *ExportService) options() domain.ExportSettings {
	defaults := domain.DefaultAppSettings().Export
	if s.settings == nil {
		return defaults
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("using default export settings: %v", err)
		return defaults
	}
	return settings.Export
}
