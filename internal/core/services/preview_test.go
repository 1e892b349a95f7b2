package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

func TestPreviewService_RenderDrawsAnnotations(t *testing.T) {
	c := newCollection(t, 1)
	svc := NewPreviewService(c, nil)
	_, err := c.Annotate("1", domain.Point{X: 55, Y: 71.25}, domain.Size{Width: 220, Height: 285},
		domain.AnnotationInput{Text: "hi", Size: 18, Color: "#00f"})
	require.NoError(t, err)

	preview, err := svc.Render(context.Background(), "1", 440)
	require.NoError(t, err)

	assert.Equal(t, "1", preview.PageID)
	assert.Equal(t, domain.Size{Width: 440, Height: 570}, preview.Size)
	require.NotNil(t, preview.Image)
	assert.Equal(t, 440, preview.Image.Bounds().Dx())

	doc := c.sources[0].render.(*fakeRenderDoc)
	require.Len(t, doc.surface.draws, 1)
	draw := doc.surface.draws[0]
	assert.Equal(t, "hi", draw.text)
	assert.InDelta(t, 110, draw.at.X, 1e-9)
	assert.InDelta(t, 142.5, draw.at.Y, 1e-9)
	assert.Equal(t, domain.Color{B: 255}, draw.color)
}

func TestPreviewService_RenderUsesCurrentRotation(t *testing.T) {
	c := newCollection(t, 2)
	svc := NewPreviewService(c, nil)
	_, err := c.Rotate("2")
	require.NoError(t, err)

	preview, err := svc.Render(context.Background(), "2", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.Size{Width: 220, Height: 170}, preview.Size)
	doc := c.sources[0].render.(*fakeRenderDoc)
	assert.Equal(t, []renderCall{{page: 2, rotation: domain.Rotate90, width: 220}}, doc.renders)
}

func TestPreviewService_ReusesIngestHandle(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollectionService(r)
	_, err := c.Ingest(context.Background(), "a.pdf", fakePDF(3))
	require.NoError(t, err)
	svc := NewPreviewService(c, nil)

	for _, id := range []string{"1", "2", "3", "1"} {
		_, err := svc.Render(context.Background(), id, 100)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, r.opens)
}

func TestPreviewService_WidthFromSettings(t *testing.T) {
	settings := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.Set(domain.SettingPreviewWidth, "306"))
	c := newCollection(t, 1)
	svc := NewPreviewService(c, settings)

	size, err := svc.Size(context.Background(), "1", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.Size{Width: 306, Height: 396}, size)
}

func TestPreviewService_SizeMatchesRender(t *testing.T) {
	c := newCollection(t, 1)
	svc := NewPreviewService(c, nil)
	_, _ = c.Rotate("1")

	size, err := svc.Size(context.Background(), "1", 220)
	require.NoError(t, err)
	preview, err := svc.Render(context.Background(), "1", 220)
	require.NoError(t, err)

	assert.Equal(t, preview.Size, size)
}

func TestPreviewService_UnknownPage(t *testing.T) {
	svc := NewPreviewService(newCollection(t, 1), nil)

	_, err := svc.Render(context.Background(), "9", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Size(context.Background(), "9", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Placing at the centre of a rendered preview and exporting must land at the
// centre of the output page, whatever the preview width was.
func TestPreviewService_PlacementRoundTripsThroughExport(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, 1)
	preview := NewPreviewService(c, nil)
	authoring := newFakeAuthoring()

	size, err := preview.Size(ctx, "1", 333)
	require.NoError(t, err)
	_, err = c.Annotate("1", domain.Point{X: size.Width / 2, Y: size.Height / 2}, size,
		domain.AnnotationInput{Text: "mid", Size: 12})
	require.NoError(t, err)

	_, err = NewExportService(c, authoring, nil).Export(ctx)
	require.NoError(t, err)

	draw := authoring.doc.pages[0].draws[0]
	assert.InDelta(t, letter.Width/2, draw.at.X, 1)
	assert.InDelta(t, letter.Height/2-12, draw.at.Y, 1)
}
