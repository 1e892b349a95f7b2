package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfauthor"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdffixture"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfrender"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
	"github.com/custodia-labs/pagedeck/internal/core/services"
)

// testServices builds the real page stack over an in-memory config store.
func testServices(t *testing.T, store driven.ConfigStore) (driving.SettingsService, SessionFactory) {
	t.Helper()

	renderer, err := pdfrender.NewRenderer()
	require.NoError(t, err)

	settings := services.NewSettingsService(store)
	authoring := pdfauthor.NewAuthoring("pagedeck test")
	return settings, func() *Session {
		collection := services.NewCollectionService(renderer)
		return &Session{
			Collection: collection,
			Preview:    services.NewPreviewService(collection, settings),
			Export:     services.NewExportService(collection, authoring, settings),
		}
	}
}

// run executes the root command with a fresh in-memory configuration.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	settings, sessions := testServices(t, memory.NewConfigStore())
	return runWith(t, settings, sessions, args...)
}

// runWith executes the root command against the given services and
// returns everything it printed.
func runWith(t *testing.T, settings driving.SettingsService, sessions SessionFactory, args ...string) (string, error) {
	t.Helper()

	prevSettings, prevSessions := settingsService, newSession
	SetServices(settings, sessions)
	defer SetServices(prevSettings, prevSessions)

	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores flag variables between executions of the shared
// command tree.
func resetFlags() {
	verbose = false
	mergeOutput = ""
	mergeExclude = nil
	mergeRotate = nil
	buildOutput = ""
	previewPage = 1
	previewRotate = 0
	previewWidth = 0
	previewOutput = "preview.png"
	tuiWatch = ""
	tuiOutput = ""
}

// writePDF stores an n-page fixture in dir and returns its path.
func writePDF(t *testing.T, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pdffixture.Pages(t, n), 0o600))
	return path
}

// pageCount decodes a written PDF and returns its number of pages.
func pageCount(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	src, err := pdfauthor.NewAuthoring("pagedeck test").OpenDocument(context.Background(), data)
	require.NoError(t, err)
	return src.PageCount()
}
