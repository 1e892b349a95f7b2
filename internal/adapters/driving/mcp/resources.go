package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pagedeck resources.
	uriScheme = "pagedeck://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "pages",
		Name:        "pages",
		Description: "The pages of the working document in order",
		MIMEType:    "application/json",
	}, s.handlePagesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}/preview",
		Name:        "page-preview",
		Description: "Preview image of a page as it will be exported, with annotations",
		MIMEType:    "image/png",
	}, s.handlePreviewResource)
}

// handlePagesResource returns the page listing as JSON.
func (s *Server) handlePagesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	pages := s.pages()
	s.mu.Unlock()

	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pages: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePreviewResource renders a page and returns it as PNG.
func (s *Server) handlePreviewResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	pageID := extractPageID(req.Params.URI)
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	preview, err := s.ports.Preview.Render(ctx, pageID, 0)
	s.mu.Unlock()
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering page %s: %w", pageID, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview.Image); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "image/png",
			Blob:     buf.Bytes(),
		}},
	}, nil
}

// extractPageID extracts the page ID from a URI like pagedeck://pages/{pageId}/preview.
func extractPageID(uri string) string {
	const prefix = uriScheme + "pages/"
	const suffix = "/preview"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(rest, suffix) {
		return ""
	}
	id := strings.TrimSuffix(rest, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
