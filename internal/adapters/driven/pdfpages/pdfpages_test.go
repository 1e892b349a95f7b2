package pdfpages

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdffixture"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

func testConf() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func TestRead_InheritedMediaBox(t *testing.T) {
	// Letter pages take their MediaBox from the page tree root.
	data := pdffixture.Sizes(t, pdffixture.Letter, pdffixture.LetterLandscape, pdffixture.Letter)

	_, pages, err := Read(data, testConf())
	require.NoError(t, err)
	require.Len(t, pages, 3)

	want := []domain.Size{pdffixture.Letter, pdffixture.LetterLandscape, pdffixture.Letter}
	for i, p := range pages {
		assert.InDelta(t, want[i].Width, p.Size().Width, 0.5, "page %d", i+1)
		assert.InDelta(t, want[i].Height, p.Size().Height, 0.5, "page %d", i+1)
		assert.Equal(t, domain.Rotate0, p.Rotate, "page %d", i+1)
	}
}

func TestRead_XRefStream(t *testing.T) {
	data := pdffixture.XRefStream(t, pdffixture.Sizes(t, pdffixture.LetterLandscape, pdffixture.Letter))

	_, pages, err := Read(data, testConf())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.InDelta(t, 792, pages[0].Size().Width, 0.5)
	assert.InDelta(t, 612, pages[1].Size().Width, 0.5)
}

func TestRead_PageRotate(t *testing.T) {
	data := pdffixture.Rotated(t, pdffixture.Pages(t, 2), 90)

	_, pages, err := Read(data, testConf())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.Equal(t, domain.Rotate90, p.Rotate)
		// The box stays unrotated.
		assert.InDelta(t, 612, p.Size().Width, 0.5)
	}
}

func TestRead_Rejects(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     nil,
		"text":      []byte("this is not a pdf"),
		"truncated": pdffixture.Pages(t, 1)[:64],
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Read(data, testConf())
			assert.Error(t, err)
		})
	}
}

func TestVisibleBox(t *testing.T) {
	media := *types.RectForDim(612, 792)

	tests := []struct {
		name string
		crop *types.Rectangle
		want types.Rectangle
	}{
		{"no crop box", nil, media},
		{"inside", types.NewRectangle(36, 36, 576, 756), *types.NewRectangle(36, 36, 576, 756)},
		{"overhanging", types.NewRectangle(-10, 100, 700, 900), *types.NewRectangle(0, 100, 612, 792)},
		{"reversed corners", types.NewRectangle(576, 756, 36, 36), *types.NewRectangle(36, 36, 576, 756)},
		{"disjoint", types.NewRectangle(700, 800, 900, 1000), media},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleBox(media, tt.crop))
		})
	}
}
