package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// PreviewService renders pages of a collection with their annotations.
// It reuses the render handles opened when each source was ingested.
type PreviewService struct {
	collection *CollectionService
	settings   driving.SettingsService
}

// NewPreviewService creates a preview service for the given collection.
// settings may be nil, in which case the default preview width is used.
func NewPreviewService(collection *CollectionService, settings driving.SettingsService) *PreviewService {
	return &PreviewService{
		collection: collection,
		settings:   settings,
	}
}

// Render draws the page at its current rotation, then its annotations
// top-aligned at their preview positions.
func (s *PreviewService) Render(ctx context.Context, id string, width int) (*domain.Preview, error) {
	page, doc, err := s.collection.renderHandle(id)
	if err != nil {
		return nil, err
	}
	width = s.width(width)

	surface, err := doc.RenderPage(ctx, page.PageNumber, page.Rotation, width)
	if err != nil {
		return nil, fmt.Errorf("render page %s: %w", id, err)
	}

	size := surface.Size()
	for _, a := range page.Annotations {
		at := transform.ToPreview(domain.Point{X: a.X, Y: a.Y}, size)
		surface.DrawText(a.Text, at, a.Size, a.Color)
	}

	logger.Debug("rendered page %s at %.0fx%.0f with %d annotations", id, size.Width, size.Height, len(page.Annotations))
	return &domain.Preview{
		PageID: id,
		Size:   size,
		Image:  surface.Image(),
	}, nil
}

// Size returns the preview surface size for the page at its current rotation.
// Shells use it to turn a position into pixels before calling Annotate.
func (s *PreviewService) Size(_ context.Context, id string, width int) (domain.Size, error) {
	page, doc, err := s.collection.renderHandle(id)
	if err != nil {
		return domain.Size{}, err
	}

	pageSize, err := doc.PageSize(page.PageNumber)
	if err != nil {
		return domain.Size{}, fmt.Errorf("page %s size: %w", id, err)
	}

	w, h := transform.FitWidth(transform.Rotate(pageSize, page.Rotation), s.width(width))
	return domain.Size{Width: float64(w), Height: float64(h)}, nil
}

func (s *PreviewService) width(requested int) int {
	if requested > 0 {
		return requested
	}
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Preview.Width > 0 {
			return settings.Preview.Width
		}
	}
	return domain.DefaultAppSettings().Preview.Width
}
