// Package pdfpages reads a PDF with pdfcpu and resolves the geometry of
// each page: the visible box and the page's own /Rotate entry, with
// MediaBox, CropBox and Rotate inherited from the page tree.
package pdfpages

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// Page is the resolved geometry of one page.
type Page struct {
	// Box is the CropBox clipped to the MediaBox, or the MediaBox when
	// the page has no CropBox. It is in unrotated user space.
	Box types.Rectangle

	// Rotate is the page's /Rotate entry.
	Rotate domain.Rotation
}

// Size returns the unrotated size of the visible box.
func (p Page) Size() domain.Size {
	return domain.Size{Width: p.Box.Width(), Height: p.Box.Height()}
}

// Read parses and validates data and resolves every page.
// The returned context can be used as a pdfcpu page source.
func Read(data []byte, conf *model.Configuration) (_ *model.Context, _ []Page, err error) {
	if len(data) == 0 {
		return nil, nil, errors.New("empty input")
	}

	// pdfcpu can panic on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdfcpu: %v", p)
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("validate: %w", err)
	}

	pages, err := Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ctx, pages, nil
}

// Resolve walks the page tree of a validated context.
func Resolve(ctx *model.Context) ([]Page, error) {
	pages := make([]Page, ctx.PageCount)
	for i := range pages {
		d, _, inh, err := ctx.PageDict(i+1, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if d == nil || inh == nil || inh.MediaBox == nil {
			return nil, fmt.Errorf("page %d: no media box", i+1)
		}

		r, err := domain.ParseRotation(inh.Rotate)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		pages[i] = Page{Box: VisibleBox(*inh.MediaBox, inh.CropBox), Rotate: r}
	}
	return pages, nil
}

// VisibleBox clips crop to media. A missing or disjoint crop box
// leaves the media box.
func VisibleBox(media types.Rectangle, crop *types.Rectangle) types.Rectangle {
	media = normalize(media)
	if crop == nil {
		return media
	}
	c := normalize(*crop)
	box := types.Rectangle{
		LL: types.Point{X: math.Max(media.LL.X, c.LL.X), Y: math.Max(media.LL.Y, c.LL.Y)},
		UR: types.Point{X: math.Min(media.UR.X, c.UR.X), Y: math.Min(media.UR.Y, c.UR.Y)},
	}
	if box.Width() <= 0 || box.Height() <= 0 {
		return media
	}
	return box
}

// normalize orders the corners so LL is the lower left.
func normalize(r types.Rectangle) types.Rectangle {
	return types.Rectangle{
		LL: types.Point{X: math.Min(r.LL.X, r.UR.X), Y: math.Min(r.LL.Y, r.UR.Y)},
		UR: types.Point{X: math.Max(r.LL.X, r.UR.X), Y: math.Max(r.LL.Y, r.UR.Y)},
	}
}
