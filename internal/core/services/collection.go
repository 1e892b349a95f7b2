package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

var errNoPages = errors.New("document has no pages")

// source is an ingested document together with its decoded render handle,
// which previews reuse instead of decoding the bytes again.
type source struct {
	doc    domain.SourceDocument
	render driven.RenderDocument
}

// CollectionService holds the ordered working set of pages.
type CollectionService struct {
	renderer driven.Renderer

	pages   []*domain.PageRecord
	sources []source
	nextID  int
}

// NewCollectionService creates an empty collection backed by the given renderer.
func NewCollectionService(renderer driven.Renderer) *CollectionService {
	return &CollectionService{
		renderer: renderer,
		nextID:   1,
	}
}

// Ingest decodes a document and appends one record per page.
// Nothing is appended unless the whole document decodes.
func (s *CollectionService) Ingest(ctx context.Context, name string, data []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.renderer == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.renderer.Open(ctx, data)
	if err != nil {
		return nil, &domain.DecodeError{Source: name, Err: err}
	}
	count := doc.PageCount()
	if count <= 0 {
		return nil, &domain.DecodeError{Source: name, Err: errNoPages}
	}

	index := len(s.sources)
	s.sources = append(s.sources, source{
		doc: domain.SourceDocument{
			Index:     index,
			Name:      name,
			Data:      data,
			PageCount: count,
		},
		render: doc,
	})

	ids := make([]string, 0, count)
	for n := 1; n <= count; n++ {
		id := strconv.Itoa(s.nextID)
		s.nextID++
		s.pages = append(s.pages, &domain.PageRecord{
			ID:          id,
			SourceIndex: index,
			SourceBytes: data,
			PageNumber:  n,
			Rotation:    domain.Rotate0,
		})
		ids = append(ids, id)
	}

	logger.Info("ingested %q as PDF %d with %d pages", name, index+1, count)
	return ids, nil
}

// IngestFiles ingests files in order. Each file succeeds or fails on its own.
func (s *CollectionService) IngestFiles(ctx context.Context, files []domain.SourceFile) []driving.IngestResult {
	results := make([]driving.IngestResult, 0, len(files))
	for _, f := range files {
		ids, err := s.Ingest(ctx, f.Name, f.Data)
		if err != nil {
			logger.Warn("skipping %s: %v", f.Name, err)
		}
		results = append(results, driving.IngestResult{Name: f.Name, PageIDs: ids, Err: err})
	}
	return results
}

// Reorder moves movedID so it sits immediately before beforeID.
func (s *CollectionService) Reorder(movedID, beforeID string) bool {
	if movedID == beforeID {
		return false
	}
	from := s.indexOf(movedID)
	if from < 0 || s.indexOf(beforeID) < 0 {
		return false
	}

	moved := s.pages[from]
	s.pages = append(s.pages[:from], s.pages[from+1:]...)

	// beforeID's position shifts once moved is removed, so look it up again.
	to := s.indexOf(beforeID)
	s.pages = append(s.pages, nil)
	copy(s.pages[to+1:], s.pages[to:])
	s.pages[to] = moved

	logger.Debug("moved page %s before page %s", movedID, beforeID)
	return true
}

// Rotate advances the page's rotation by 90 degrees modulo 360.
func (s *CollectionService) Rotate(id string) (domain.Rotation, error) {
	p, err := s.find(id)
	if err != nil {
		return 0, err
	}
	p.Rotation = p.Rotation.Next()
	return p.Rotation, nil
}

// ToggleExclude flips the page's excluded flag and returns the new value.
func (s *CollectionService) ToggleExclude(id string) (bool, error) {
	p, err := s.find(id)
	if err != nil {
		return false, err
	}
	p.Excluded = !p.Excluded
	return p.Excluded, nil
}

// Annotate appends a text annotation placed at a pixel position on the
// page's preview surface. The surface must be the one rendered for the
// page's current rotation. An empty color means black.
func (s *CollectionService) Annotate(
	id string,
	at domain.Point,
	surface domain.Size,
	input domain.AnnotationInput,
) (domain.Annotation, error) {
	p, err := s.find(id)
	if err != nil {
		return domain.Annotation{}, err
	}
	if input.Text == "" {
		return domain.Annotation{}, domain.ErrEmptyText
	}
	if input.Size <= 0 {
		return domain.Annotation{}, fmt.Errorf("%w: annotation size must be positive", domain.ErrInvalidInput)
	}

	color := domain.Black
	if input.Color != "" {
		if color, err = domain.ParseColor(input.Color); err != nil {
			return domain.Annotation{}, err
		}
	}

	n, err := transform.Normalize(at, surface)
	if err != nil {
		return domain.Annotation{}, err
	}

	a := domain.Annotation{
		X:     n.X,
		Y:     n.Y,
		Text:  input.Text,
		Size:  input.Size,
		Color: color,
	}
	p.Annotations = append(p.Annotations, a)
	return a, nil
}

// Reset clears the collection and restarts ID numbering at 1.
func (s *CollectionService) Reset() {
	s.pages = nil
	s.sources = nil
	s.nextID = 1
	logger.Debug("collection reset")
}

// Pages returns copies of all records in order.
func (s *CollectionService) Pages() []domain.PageRecord {
	out := make([]domain.PageRecord, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.Clone()
	}
	return out
}

// Page returns a copy of one record.
func (s *CollectionService) Page(id string) (domain.PageRecord, error) {
	p, err := s.find(id)
	if err != nil {
		return domain.PageRecord{}, err
	}
	return p.Clone(), nil
}

// Active returns copies of the non-excluded records in order.
func (s *CollectionService) Active() []domain.PageRecord {
	var out []domain.PageRecord
	for _, p := range s.pages {
		if p.Active() {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Sources returns the ingested documents in ingestion order.
func (s *CollectionService) Sources() []domain.SourceDocument {
	out := make([]domain.SourceDocument, len(s.sources))
	for i, src := range s.sources {
		out[i] = src.doc
	}
	return out
}

// Len returns the number of records.
func (s *CollectionService) Len() int {
	return len(s.pages)
}

// renderHandle returns a page copy and the render handle of its source.
func (s *CollectionService) renderHandle(id string) (domain.PageRecord, driven.RenderDocument, error) {
	p, err := s.find(id)
	if err != nil {
		return domain.PageRecord{}, nil, err
	}
	return p.Clone(), s.sources[p.SourceIndex].render, nil
}

func (s *CollectionService) find(id string) (*domain.PageRecord, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.pages[i], nil
	}
	return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func (s *CollectionService) indexOf(id string) int {
	for i, p := range s.pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}
