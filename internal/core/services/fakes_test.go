package services

import (
	"context"
	"errors"
	"image"
	"strconv"
	"strings"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
)

// Fake documents are the bytes "pages:N". Anything else fails to decode.
var letter = domain.Size{Width: 612, Height: 792}

func fakePDF(pages int) []byte {
	return []byte("pages:" + strconv.Itoa(pages))
}

func parseFakePDF(data []byte) (int, error) {
	n, ok := strings.CutPrefix(string(data), "pages:")
	if !ok {
		return 0, errors.New("not a PDF")
	}
	return strconv.Atoi(n)
}

// Renderer fakes.

type fakeRenderer struct {
	opens int
}

func (r *fakeRenderer) Open(_ context.Context, data []byte) (driven.RenderDocument, error) {
	r.opens++
	n, err := parseFakePDF(data)
	if err != nil {
		return nil, err
	}
	return &fakeRenderDoc{pages: n}, nil
}

type renderCall struct {
	page     int
	rotation domain.Rotation
	width    int
}

type fakeRenderDoc struct {
	pages   int
	renders []renderCall
	surface *fakeSurface
}

func (d *fakeRenderDoc) PageCount() int { return d.pages }

func (d *fakeRenderDoc) PageSize(page int) (domain.Size, error) {
	if page < 1 || page > d.pages {
		return domain.Size{}, errors.New("page out of range")
	}
	return letter, nil
}

func (d *fakeRenderDoc) RenderPage(_ context.Context, page int, r domain.Rotation, width int) (driven.Surface, error) {
	d.renders = append(d.renders, renderCall{page: page, rotation: r, width: width})
	w, h := transform.FitWidth(transform.Rotate(letter, r), width)
	d.surface = &fakeSurface{size: domain.Size{Width: float64(w), Height: float64(h)}}
	return d.surface, nil
}

type surfaceDraw struct {
	text  string
	at    domain.Point
	size  float64
	color domain.Color
}

type fakeSurface struct {
	size  domain.Size
	draws []surfaceDraw
}

func (s *fakeSurface) Size() domain.Size { return s.size }

func (s *fakeSurface) DrawText(text string, at domain.Point, size float64, color domain.Color) {
	s.draws = append(s.draws, surfaceDraw{text, at, size, color})
}

func (s *fakeSurface) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, int(s.size.Width), int(s.size.Height)))
}

// Authoring fakes.

type fakeAuthoring struct {
	opens  map[string]int
	doc    *fakeOutput
	failOn string
}

func newFakeAuthoring() *fakeAuthoring {
	return &fakeAuthoring{opens: make(map[string]int)}
}

func (a *fakeAuthoring) totalOpens() int {
	total := 0
	for _, n := range a.opens {
		total += n
	}
	return total
}

func (a *fakeAuthoring) CreateDocument(context.Context) (driven.OutputDocument, error) {
	if a.failOn == "CreateDocument" {
		return nil, errors.New("boom")
	}
	a.doc = &fakeOutput{failOn: a.failOn}
	return a.doc, nil
}

func (a *fakeAuthoring) OpenDocument(_ context.Context, data []byte) (driven.SourceHandle, error) {
	a.opens[string(data)]++
	if a.failOn == "OpenDocument" {
		return nil, errors.New("boom")
	}
	n, err := parseFakePDF(data)
	if err != nil {
		return nil, err
	}
	return &fakeSource{data: string(data), pages: n}, nil
}

type fakeSource struct {
	data  string
	pages int
}

func (s *fakeSource) PageCount() int { return s.pages }

type fakeFont string

func (f fakeFont) Name() string { return string(f) }

type fakeOutput struct {
	failOn     string
	fonts      []string
	pages      []*fakeOutPage
	serialized bool
}

func (o *fakeOutput) EmbedFont(_ context.Context, name string) (driven.FontRef, error) {
	if o.failOn == "EmbedFont" {
		return nil, errors.New("boom")
	}
	o.fonts = append(o.fonts, name)
	return fakeFont(name), nil
}

func (o *fakeOutput) CopyPage(_ context.Context, src driven.SourceHandle, pageIndex int) (driven.OutputPage, error) {
	if o.failOn == "CopyPage" {
		return nil, errors.New("boom")
	}
	fs := src.(*fakeSource)
	if pageIndex < 0 || pageIndex >= fs.pages {
		return nil, errors.New("page index out of range")
	}
	p := &fakeOutPage{source: fs.data, index: pageIndex, size: letter, failOn: o.failOn}
	o.pages = append(o.pages, p)
	return p, nil
}

func (o *fakeOutput) Serialize(context.Context) ([]byte, error) {
	if o.failOn == "Serialize" {
		return nil, errors.New("boom")
	}
	o.serialized = true
	return []byte("%PDF-fake " + strconv.Itoa(len(o.pages))), nil
}

type outDraw struct {
	text  string
	at    domain.Point
	size  float64
	color domain.Color
	font  string
}

type fakeOutPage struct {
	source   string
	index    int
	size     domain.Size
	rotation domain.Rotation
	rotated  bool
	draws    []outDraw
	failOn   string
}

func (p *fakeOutPage) SetRotation(r domain.Rotation) error {
	if p.failOn == "SetRotation" {
		return errors.New("boom")
	}
	p.rotation = r
	p.rotated = true
	p.size = transform.Rotate(letter, r)
	return nil
}

func (p *fakeOutPage) Size() domain.Size { return p.size }

func (p *fakeOutPage) DrawText(text string, at domain.Point, size float64, color domain.Color, font driven.FontRef) error {
	if p.failOn == "DrawText" {
		return errors.New("boom")
	}
	p.draws = append(p.draws, outDraw{text, at, size, color, font.Name()})
	return nil
}
