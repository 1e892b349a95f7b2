// Package mcp provides an MCP (Model Context Protocol) server adapter for pagedeck.
// It lets AI assistants assemble a document: ingest PDFs, reorder, rotate,
// exclude and annotate pages, then export the merged result.
package mcp

import "errors"

// ErrMissingCollectionService is returned when the collection service is not provided.
var ErrMissingCollectionService = errors.New("mcp: collection service is required")

// ErrMissingPreviewService is returned when the preview service is not provided.
var ErrMissingPreviewService = errors.New("mcp: preview service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("mcp: export service is required")
