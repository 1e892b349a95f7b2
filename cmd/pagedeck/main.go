// Command pagedeck assembles a new PDF from pages of other PDFs.
//
// # Usage
//
//	pagedeck merge a.pdf b.pdf -o out.pdf
//	pagedeck build plan.toml
//	pagedeck tui scans/*.pdf --watch ~/Downloads
//	pagedeck mcp serve
//
// Settings are read from ~/.pagedeck/config.toml.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfauthor"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfrender"
	"github.com/custodia-labs/pagedeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/cli"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/services"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	renderer, err := pdfrender.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagedeck: %v\n", err)
		os.Exit(1)
	}
	authoring := pdfauthor.NewAuthoring("pagedeck " + version)

	var store driven.ConfigStore
	store, err = file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	}
	settings := services.NewSettingsService(store)

	cli.SetVersion(version)
	cli.SetServices(settings, func() *cli.Session {
		collection := services.NewCollectionService(renderer)
		return &cli.Session{
			Collection: collection,
			Preview:    services.NewPreviewService(collection, settings),
			Export:     services.NewExportService(collection, authoring, settings),
		}
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pagedeck: %v\n", err)
		os.Exit(1)
	}
}
