package pdfrender

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfpages"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

var disableConfigDir sync.Once

// Renderer decodes PDFs with pdfcpu and draws preview surfaces.
// It is safe for concurrent use.
type Renderer struct {
	conf  *model.Configuration
	faces *faceCache
}

// NewRenderer creates a renderer. Validation is relaxed so that the
// slightly broken files real scanners produce still open.
func NewRenderer() (*Renderer, error) {
	// pdfcpu otherwise writes a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Renderer{conf: conf, faces: faces}, nil
}

// Open decodes and validates a document and reads its page boxes.
// A page's own /Rotate entry is ignored: the preview shows the page at
// the rotation the user picked, as the exported page will be.
func (r *Renderer) Open(ctx context.Context, data []byte) (driven.RenderDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, pages, err := pdfpages.Read(data, r.conf)
	if err != nil {
		return nil, err
	}

	sizes := make([]domain.Size, len(pages))
	for i, p := range pages {
		sizes[i] = p.Size()
	}

	logger.Debug("pdfcpu decoded %d pages", len(sizes))
	return &document{faces: r.faces, sizes: sizes}, nil
}

// document is a decoded source. It keeps only the page boxes.
type document struct {
	faces *faceCache
	sizes []domain.Size
}

func (d *document) PageCount() int {
	return len(d.sizes)
}

func (d *document) PageSize(page int) (domain.Size, error) {
	if page < 1 || page > len(d.sizes) {
		return domain.Size{}, fmt.Errorf("%w: page %d of %d", domain.ErrInvalidInput, page, len(d.sizes))
	}
	return d.sizes[page-1], nil
}

func (d *document) RenderPage(
	ctx context.Context,
	page int,
	rotation domain.Rotation,
	targetWidth int,
) (driven.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size, err := d.PageSize(page)
	if err != nil {
		return nil, err
	}
	w, h := transform.FitWidth(transform.Rotate(size, rotation), targetWidth)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: cannot fit page %d to width %d", domain.ErrInvalidInput, page, targetWidth)
	}

	s := newSurface(w, h, d.faces)
	s.drawFrame(page, rotation)
	return s, nil
}
