package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

func TestNormalize_CentreIsHalfRegardlessOfSize(t *testing.T) {
	sizes := []domain.Size{
		{Width: 220, Height: 311},
		{Width: 311, Height: 220},
		{Width: 1, Height: 1},
		{Width: 1920, Height: 1080},
	}

	for _, s := range sizes {
		n, err := Normalize(domain.Point{X: s.Width / 2, Y: s.Height / 2}, s)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, n.X, 1e-12)
		assert.InDelta(t, 0.5, n.Y, 1e-12)
	}
}

func TestNormalize_Corners(t *testing.T) {
	s := domain.Size{Width: 200, Height: 100}

	n, err := Normalize(domain.Point{}, s)
	require.NoError(t, err)
	assert.Equal(t, domain.Point{}, n)

	n, err = Normalize(domain.Point{X: 200, Y: 100}, s)
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 1, Y: 1}, n)
}

func TestNormalize_InvalidSurface(t *testing.T) {
	_, err := Normalize(domain.Point{X: 1, Y: 1}, domain.Size{Width: 0, Height: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Normalize(domain.Point{X: 1, Y: 1}, domain.Size{Width: 10, Height: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToPreview_InvertsNormalize(t *testing.T) {
	s := domain.Size{Width: 220, Height: 285}
	p := domain.Point{X: 37, Y: 101}

	n, err := Normalize(p, s)
	require.NoError(t, err)

	back := ToPreview(n, s)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestToOutput_Centre(t *testing.T) {
	page := domain.Size{Width: 612, Height: 792}

	out := ToOutput(domain.Point{X: 0.5, Y: 0.5}, page, 18)

	assert.Equal(t, 0.5*612, out.X)
	assert.Equal(t, 0.5*792-18, out.Y)
}

func TestToOutput_TopLeftAnchorsBaselineBelowTopEdge(t *testing.T) {
	page := domain.Size{Width: 595, Height: 842}

	out := ToOutput(domain.Point{X: 0, Y: 0}, page, 12)

	assert.Equal(t, 0.0, out.X)
	assert.Equal(t, 842.0-12, out.Y)
}

// The font size is reused as a point size with no DPI scaling. A preview
// drawn 220px wide of a 612pt page shows the text about 2.8 times smaller
// relative to the page than the exported file does. This test pins the
// current behaviour so any change to it is deliberate.
func TestToOutput_FontSizeIsNotScaled(t *testing.T) {
	small := ToOutput(domain.Point{X: 0.5, Y: 0.5}, domain.Size{Width: 100, Height: 100}, 18)
	large := ToOutput(domain.Point{X: 0.5, Y: 0.5}, domain.Size{Width: 1000, Height: 1000}, 18)

	assert.Equal(t, 50.0-18, small.Y)
	assert.Equal(t, 500.0-18, large.Y)
}

func TestRotate(t *testing.T) {
	s := domain.Size{Width: 612, Height: 792}

	assert.Equal(t, s, Rotate(s, domain.Rotate0))
	assert.Equal(t, domain.Size{Width: 792, Height: 612}, Rotate(s, domain.Rotate90))
	assert.Equal(t, s, Rotate(s, domain.Rotate180))
	assert.Equal(t, domain.Size{Width: 792, Height: 612}, Rotate(s, domain.Rotate270))
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name   string
		size   domain.Size
		target int
		wantW  int
		wantH  int
	}{
		{"letter portrait", domain.Size{Width: 612, Height: 792}, 220, 220, 285},
		{"letter landscape", domain.Size{Width: 792, Height: 612}, 220, 220, 170},
		{"square", domain.Size{Width: 100, Height: 100}, 50, 50, 50},
		{"zero size", domain.Size{}, 220, 0, 0},
		{"zero target", domain.Size{Width: 10, Height: 10}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitWidth(tt.size, tt.target)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
