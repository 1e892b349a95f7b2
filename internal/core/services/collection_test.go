package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

func ids(pages []domain.PageRecord) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.ID
	}
	return out
}

func newCollection(t *testing.T, docs ...int) *CollectionService {
	t.Helper()
	c := NewCollectionService(&fakeRenderer{})
	for _, n := range docs {
		_, err := c.Ingest(context.Background(), "doc.pdf", fakePDF(n))
		require.NoError(t, err)
	}
	return c
}

func TestCollectionService_Ingest(t *testing.T) {
	c := NewCollectionService(&fakeRenderer{})

	got, err := c.Ingest(context.Background(), "a.pdf", fakePDF(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, got)

	pages := c.Pages()
	require.Len(t, pages, 3)
	for i, p := range pages {
		assert.Equal(t, i+1, p.PageNumber)
		assert.Equal(t, 0, p.SourceIndex)
		assert.Equal(t, domain.Rotate0, p.Rotation)
		assert.False(t, p.Excluded)
		assert.Empty(t, p.Annotations)
		assert.Equal(t, fakePDF(3), p.SourceBytes)
	}
}

func TestCollectionService_IngestAppendsWithNextSourceIndex(t *testing.T) {
	c := newCollection(t, 2)

	got, err := c.Ingest(context.Background(), "b.pdf", fakePDF(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, got)

	pages := c.Pages()
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[2].SourceIndex)
	assert.Equal(t, 1, pages[2].PageNumber)

	sources := c.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "b.pdf", sources[1].Name)
	assert.Equal(t, 1, sources[1].PageCount)
}

func TestCollectionService_IngestDecodeErrorLeavesCollectionUnchanged(t *testing.T) {
	c := newCollection(t, 2)
	before := c.Pages()

	got, err := c.Ingest(context.Background(), "notes.txt", []byte("hello"))

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrDecode)
	var de *domain.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "notes.txt", de.Source)
	assert.Equal(t, before, c.Pages())
	assert.Len(t, c.Sources(), 1)

	// IDs keep counting from where they were.
	next, err := c.Ingest(context.Background(), "c.pdf", fakePDF(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, next)
	assert.Equal(t, 1, c.Pages()[2].SourceIndex)
}

func TestCollectionService_IngestZeroPagesIsDecodeError(t *testing.T) {
	c := NewCollectionService(&fakeRenderer{})

	_, err := c.Ingest(context.Background(), "empty.pdf", fakePDF(0))

	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.Zero(t, c.Len())
}

func TestCollectionService_IngestCancelledContext(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollectionService(r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Ingest(ctx, "a.pdf", fakePDF(1))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, r.opens)
}

func TestCollectionService_IngestWithoutRenderer(t *testing.T) {
	c := NewCollectionService(nil)

	_, err := c.Ingest(context.Background(), "a.pdf", fakePDF(1))

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Zero(t, c.Len())
}

func TestCollectionService_IngestFiles(t *testing.T) {
	c := NewCollectionService(&fakeRenderer{})

	results := c.IngestFiles(context.Background(), []domain.SourceFile{
		{Name: "a.pdf", Data: fakePDF(2)},
		{Name: "broken.pdf", Data: []byte("garbage")},
		{Name: "b.pdf", Data: fakePDF(1)},
	})

	require.Len(t, results, 3)
	assert.Equal(t, []string{"1", "2"}, results[0].PageIDs)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrDecode)
	assert.Empty(t, results[1].PageIDs)
	assert.Equal(t, []string{"3"}, results[2].PageIDs)

	// The failed file takes no source index.
	assert.Equal(t, 1, c.Pages()[2].SourceIndex)
}

func TestCollectionService_Reorder(t *testing.T) {
	tests := []struct {
		name   string
		moved  string
		before string
		want   []string
		ok     bool
	}{
		{"last to front", "4", "1", []string{"4", "1", "2", "3"}, true},
		{"first to before last", "1", "4", []string{"2", "3", "1", "4"}, true},
		{"forward by one", "2", "4", []string{"1", "3", "2", "4"}, true},
		{"already in place", "1", "2", []string{"1", "2", "3", "4"}, true},
		{"same id", "2", "2", []string{"1", "2", "3", "4"}, false},
		{"unknown moved", "9", "1", []string{"1", "2", "3", "4"}, false},
		{"unknown before", "1", "9", []string{"1", "2", "3", "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollection(t, 4)

			ok := c.Reorder(tt.moved, tt.before)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, ids(c.Pages()))
		})
	}
}

func TestCollectionService_ReorderKeepsIdentity(t *testing.T) {
	c := newCollection(t, 2, 2)
	before, err := c.Page("4")
	require.NoError(t, err)

	require.True(t, c.Reorder("4", "1"))

	after, err := c.Page("4")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "4", c.Pages()[0].ID)
}

func TestCollectionService_Rotate(t *testing.T) {
	c := newCollection(t, 1)

	want := []domain.Rotation{domain.Rotate90, domain.Rotate180, domain.Rotate270, domain.Rotate0}
	for _, w := range want {
		got, err := c.Rotate("1")
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	p, err := c.Page("1")
	require.NoError(t, err)
	assert.Equal(t, domain.Rotate0, p.Rotation)
}

func TestCollectionService_RotateUnknown(t *testing.T) {
	c := newCollection(t, 1)

	_, err := c.Rotate("42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionService_ToggleExclude(t *testing.T) {
	c := newCollection(t, 3)

	excluded, err := c.ToggleExclude("2")
	require.NoError(t, err)
	assert.True(t, excluded)
	assert.Equal(t, []string{"1", "3"}, ids(c.Active()))
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Pages()))

	excluded, err = c.ToggleExclude("2")
	require.NoError(t, err)
	assert.False(t, excluded)
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Active()))

	_, err = c.ToggleExclude("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionService_ExcludedPageKeepsState(t *testing.T) {
	c := newCollection(t, 2)
	_, err := c.Rotate("1")
	require.NoError(t, err)
	_, err = c.Annotate("1", domain.Point{X: 10, Y: 10}, domain.Size{Width: 100, Height: 100},
		domain.AnnotationInput{Text: "keep", Size: 12})
	require.NoError(t, err)

	_, err = c.ToggleExclude("1")
	require.NoError(t, err)
	_, err = c.ToggleExclude("1")
	require.NoError(t, err)

	p, err := c.Page("1")
	require.NoError(t, err)
	assert.Equal(t, domain.Rotate90, p.Rotation)
	require.Len(t, p.Annotations, 1)
	assert.Equal(t, "keep", p.Annotations[0].Text)
}

func TestCollectionService_Annotate(t *testing.T) {
	c := newCollection(t, 1)

	a, err := c.Annotate("1",
		domain.Point{X: 110, Y: 142.5},
		domain.Size{Width: 220, Height: 285},
		domain.AnnotationInput{Text: "X", Size: 18, Color: "#ff0000"},
	)

	require.NoError(t, err)
	assert.InDelta(t, 0.5, a.X, 1e-12)
	assert.InDelta(t, 0.5, a.Y, 1e-12)
	assert.Equal(t, domain.Color{R: 0xff}, a.Color)

	p, err := c.Page("1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Annotation{a}, p.Annotations)
}

func TestCollectionService_AnnotateKeepsInsertionOrder(t *testing.T) {
	c := newCollection(t, 1)
	surface := domain.Size{Width: 100, Height: 100}

	for _, text := range []string{"first", "second", "third"} {
		_, err := c.Annotate("1", domain.Point{}, surface, domain.AnnotationInput{Text: text, Size: 10})
		require.NoError(t, err)
	}

	p, err := c.Page("1")
	require.NoError(t, err)
	require.Len(t, p.Annotations, 3)
	assert.Equal(t, "first", p.Annotations[0].Text)
	assert.Equal(t, "third", p.Annotations[2].Text)
	assert.Equal(t, domain.Black, p.Annotations[0].Color)
}

func TestCollectionService_AnnotateRejects(t *testing.T) {
	surface := domain.Size{Width: 100, Height: 100}
	tests := []struct {
		name    string
		id      string
		surface domain.Size
		input   domain.AnnotationInput
		wantErr error
	}{
		{"empty text", "1", surface, domain.AnnotationInput{Size: 18}, domain.ErrEmptyText},
		{"zero size", "1", surface, domain.AnnotationInput{Text: "a"}, domain.ErrInvalidInput},
		{"bad color", "1", surface, domain.AnnotationInput{Text: "a", Size: 18, Color: "#zzz"}, domain.ErrInvalidInput},
		{"empty surface", "1", domain.Size{}, domain.AnnotationInput{Text: "a", Size: 18}, domain.ErrInvalidInput},
		{"unknown page", "7", surface, domain.AnnotationInput{Text: "a", Size: 18}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollection(t, 1)

			_, err := c.Annotate(tt.id, domain.Point{X: 1, Y: 1}, tt.surface, tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			p, err := c.Page("1")
			require.NoError(t, err)
			assert.Empty(t, p.Annotations)
		})
	}
}

func TestCollectionService_ReadsAreCopies(t *testing.T) {
	c := newCollection(t, 1)
	_, err := c.Annotate("1", domain.Point{}, domain.Size{Width: 1, Height: 1},
		domain.AnnotationInput{Text: "a", Size: 1})
	require.NoError(t, err)

	pages := c.Pages()
	pages[0].Rotation = domain.Rotate180
	pages[0].Annotations[0].Text = "changed"

	p, err := c.Page("1")
	require.NoError(t, err)
	assert.Equal(t, domain.Rotate0, p.Rotation)
	assert.Equal(t, "a", p.Annotations[0].Text)
}

func TestCollectionService_Reset(t *testing.T) {
	c := newCollection(t, 3, 2)

	c.Reset()

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Pages())
	assert.Empty(t, c.Sources())

	got, err := c.Ingest(context.Background(), "again.pdf", fakePDF(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)
	assert.Equal(t, 0, c.Pages()[0].SourceIndex)
}

func TestCollectionService_Len(t *testing.T) {
	c := newCollection(t, 2, 3)
	assert.Equal(t, 5, c.Len())
}
