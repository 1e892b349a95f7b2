package pdfrender

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Ensure surface implements the interface.
var _ driven.Surface = (*surface)(nil)

var (
	paper  = color.White
	border = color.Gray{Y: 0xb0}
	marker = color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff}
	label  = color.Gray{Y: 0x90}
)

type surface struct {
	img   *image.RGBA
	faces *faceCache
}

func newSurface(w, h int, faces *faceCache) *surface {
	return &surface{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		faces: faces,
	}
}

func (s *surface) Size() domain.Size {
	b := s.img.Bounds()
	return domain.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (s *surface) Image() image.Image {
	return s.img
}

// DrawText draws text with the top of its ascent at the given point.
func (s *surface) DrawText(text string, at domain.Point, size float64, c domain.Color) {
	face, err := s.faces.face(size)
	if err != nil {
		logger.Warn("no face for size %g: %v", size, err)
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(at.X * 64), Y: fixed.Int26_6(at.Y*64) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}

// drawFrame paints a blank page, its border, a marker along the edge that
// was the top of the source page, and the page number in the centre.
func (s *surface) drawFrame(page int, rotation domain.Rotation) {
	b := s.img.Bounds()
	draw.Draw(s.img, b, image.NewUniform(paper), image.Point{}, draw.Src)

	edge := func(r image.Rectangle, c color.Color) {
		draw.Draw(s.img, r.Intersect(b), image.NewUniform(c), image.Point{}, draw.Src)
	}
	edge(image.Rect(0, 0, b.Dx(), 1), border)
	edge(image.Rect(0, b.Dy()-1, b.Dx(), b.Dy()), border)
	edge(image.Rect(0, 0, 1, b.Dy()), border)
	edge(image.Rect(b.Dx()-1, 0, b.Dx(), b.Dy()), border)

	const t = 3
	switch rotation {
	case domain.Rotate90:
		edge(image.Rect(b.Dx()-t, 0, b.Dx(), b.Dy()), marker)
	case domain.Rotate180:
		edge(image.Rect(0, b.Dy()-t, b.Dx(), b.Dy()), marker)
	case domain.Rotate270:
		edge(image.Rect(0, 0, t, b.Dy()), marker)
	default:
		edge(image.Rect(0, 0, b.Dx(), t), marker)
	}

	text := "p. " + strconv.Itoa(page)
	face := basicfont.Face7x13
	d := font.Drawer{Dst: s.img, Src: image.NewUniform(label), Face: face}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(b.Dx()/2) - width/2,
		Y: fixed.I(b.Dy()/2 + face.Ascent/2),
	}
	d.DrawString(text)
}
