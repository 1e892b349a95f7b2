package pdfrender

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceCache hands out Go Regular faces by pixel size.
type faceCache struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

func newFaceCache() (*faceCache, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	return &faceCache{font: f, faces: make(map[float64]font.Face)}, nil
}

// face returns a face whose em is size pixels (72 DPI makes points equal pixels).
func (c *faceCache) face(size float64) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}
