package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfauthor"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdffixture"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfrender"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/services"
)

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	result *domain.ExportResult
	err    error
}

func (m *mockExportService) Export(_ context.Context) (*domain.ExportResult, error) {
	return m.result, m.err
}

// mockPreviewService is a mock implementation of driving.PreviewService.
type mockPreviewService struct {
	size domain.Size
	err  error
}

func (m *mockPreviewService) Render(_ context.Context, id string, _ int) (*domain.Preview, error) {
	return &domain.Preview{PageID: id, Size: m.size}, m.err
}

func (m *mockPreviewService) Size(_ context.Context, _ string, _ int) (domain.Size, error) {
	return m.size, m.err
}

// newTestServer returns a server over a real session and a directory for files.
func newTestServer(t *testing.T, settings map[string]any) (*Server, string) {
	t.Helper()

	renderer, err := pdfrender.NewRenderer()
	require.NoError(t, err)

	settingsSvc := services.NewSettingsService(memory.NewConfigStoreWith(settings))
	collection := services.NewCollectionService(renderer)
	server, err := NewServer(&Ports{
		Collection: collection,
		Preview:    services.NewPreviewService(collection, settingsSvc),
		Export:     services.NewExportService(collection, pdfauthor.NewAuthoring("pagedeck test"), settingsSvc),
		Settings:   settingsSvc,
	})
	require.NoError(t, err)
	return server, t.TempDir()
}

// ingest writes a fixture with n pages and ingests it through the tool handler.
func ingest(t *testing.T, s *Server, dir, name string, n int) []string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pdffixture.Pages(t, n), 0o600))

	_, out, err := s.handleIngestFile(context.Background(), nil, IngestFileInput{Path: path})
	require.NoError(t, err)
	return out.PageIDs
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
