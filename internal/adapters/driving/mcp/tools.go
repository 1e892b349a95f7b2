package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// PageOutput describes one page of the working set.
type PageOutput struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	Source      int    `json:"source"`
	PageNumber  int    `json:"page_number"`
	Rotation    int    `json:"rotation"`
	Excluded    bool   `json:"excluded"`
	Label       string `json:"label"`
	Annotations int    `json:"annotations"`
}

// PagesOutput is the output schema for list_pages and the pages resource.
type PagesOutput struct {
	Pages  []PageOutput `json:"pages"`
	Count  int          `json:"count"`
	Active int          `json:"active"`
}

// IngestFileInput is the input schema for the ingest_file tool.
type IngestFileInput struct {
	Path string `json:"path" jsonschema:"path of a PDF file readable by the server"`
}

// IngestFileOutput is the output schema for the ingest_file tool.
type IngestFileOutput struct {
	PageIDs []string `json:"page_ids"`
	Count   int      `json:"count"`
}

// ListPagesInput is the input schema for the list_pages tool.
type ListPagesInput struct{}

// ReorderPageInput is the input schema for the reorder_page tool.
type ReorderPageInput struct {
	PageID   string `json:"page_id" jsonschema:"the page to move"`
	BeforeID string `json:"before_id" jsonschema:"the page it should end up immediately before"`
}

// ReorderPageOutput is the output schema for the reorder_page tool.
type ReorderPageOutput struct {
	Moved bool     `json:"moved"`
	Order []string `json:"order"`
}

// PageInput selects a single page.
type PageInput struct {
	PageID string `json:"page_id" jsonschema:"the page ID as shown by list_pages"`
}

// RotatePageOutput is the output schema for the rotate_page tool.
type RotatePageOutput struct {
	Rotation int `json:"rotation"`
}

// ToggleExcludeOutput is the output schema for the toggle_exclude tool.
type ToggleExcludeOutput struct {
	Excluded bool `json:"excluded"`
}

// AnnotatePageInput is the input schema for the annotate_page tool.
type AnnotatePageInput struct {
	PageID string  `json:"page_id" jsonschema:"the page to annotate"`
	X      float64 `json:"x" jsonschema:"horizontal position of the text's top-left corner, 0 (left) to 1 (right), as the page currently looks"`
	Y      float64 `json:"y" jsonschema:"vertical position of the text's top-left corner, 0 (top) to 1 (bottom)"`
	Text   string  `json:"text" jsonschema:"single line of text to stamp"`
	Size   float64 `json:"size,omitempty" jsonschema:"font size (default from settings, usually 18)"`
	Color  string  `json:"color,omitempty" jsonschema:"CSS hex colour such as #ff0000 (default from settings)"`
}

// AnnotationOutput is the output schema for the annotate_page tool.
type AnnotationOutput struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// ExportPDFInput is the input schema for the export_pdf tool.
type ExportPDFInput struct {
	Path string `json:"path,omitempty" jsonschema:"where to write the merged PDF (default: the configured file name in the working directory)"`
}

// ExportPDFOutput is the output schema for the export_pdf tool.
type ExportPDFOutput struct {
	ID            string `json:"id"`
	Path          string `json:"path"`
	PageCount     int    `json:"page_count"`
	SourcesOpened int    `json:"sources_opened"`
	Bytes         int    `json:"bytes"`
}

// ResetInput is the input schema for the reset tool.
type ResetInput struct{}

// ResetOutput is the output schema for the reset tool.
type ResetOutput struct {
	Removed int `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_file",
		Description: "Add every page of a PDF file to the end of the working document",
	}, s.handleIngestFile)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pages",
		Description: "List the pages of the working document in order",
	}, s.handleListPages)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reorder_page",
		Description: "Move a page to immediately before another page",
	}, s.handleReorderPage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rotate_page",
		Description: "Rotate a page 90 degrees clockwise",
	}, s.handleRotatePage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_exclude",
		Description: "Delete a page from the export, or restore a deleted one",
	}, s.handleToggleExclude)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "annotate_page",
		Description: "Stamp a line of text on a page at a fractional position",
	}, s.handleAnnotatePage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_pdf",
		Description: "Write the merged PDF of all non-deleted pages",
	}, s.handleExportPDF)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset",
		Description: "Remove all pages and start over",
	}, s.handleReset)
}

func (s *Server) handleIngestFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestFileInput,
) (*mcp.CallToolResult, IngestFileOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, IngestFileOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ports.Collection.Ingest(ctx, filepath.Base(input.Path), data)
	if err != nil {
		return nil, IngestFileOutput{}, err
	}
	return nil, IngestFileOutput{PageIDs: ids, Count: len(ids)}, nil
}

func (s *Server) handleListPages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListPagesInput,
) (*mcp.CallToolResult, PagesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, s.pages(), nil
}

func (s *Server) handleReorderPage(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ReorderPageInput,
) (*mcp.CallToolResult, ReorderPageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := s.ports.Collection.Reorder(input.PageID, input.BeforeID)
	pages := s.ports.Collection.Pages()
	order := make([]string, len(pages))
	for i := range pages {
		order[i] = pages[i].ID
	}
	return nil, ReorderPageOutput{Moved: moved, Order: order}, nil
}

func (s *Server) handleRotatePage(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, RotatePageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ports.Collection.Rotate(input.PageID)
	if err != nil {
		return nil, RotatePageOutput{}, err
	}
	return nil, RotatePageOutput{Rotation: r.Degrees()}, nil
}

func (s *Server) handleToggleExclude(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, ToggleExcludeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded, err := s.ports.Collection.ToggleExclude(input.PageID)
	if err != nil {
		return nil, ToggleExcludeOutput{}, err
	}
	return nil, ToggleExcludeOutput{Excluded: excluded}, nil
}

func (s *Server) handleAnnotatePage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotatePageInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	if input.X < 0 || input.X > 1 || input.Y < 0 || input.Y > 1 {
		return nil, AnnotationOutput{}, fmt.Errorf("%w: x and y must be between 0 and 1", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	surface, err := s.ports.Preview.Size(ctx, input.PageID, 0)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}

	defaults := s.settings().Annotation
	in := domain.AnnotationInput{Text: input.Text, Size: input.Size, Color: input.Color}
	if in.Size == 0 {
		in.Size = defaults.Size
	}
	if in.Color == "" {
		in.Color = defaults.Color
	}

	at := domain.Point{X: input.X * surface.Width, Y: input.Y * surface.Height}
	ann, err := s.ports.Collection.Annotate(input.PageID, at, surface, in)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}
	return nil, AnnotationOutput{
		X:     ann.X,
		Y:     ann.Y,
		Text:  ann.Text,
		Size:  ann.Size,
		Color: ann.Color.Hex(),
	}, nil
}

func (s *Server) handleExportPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportPDFInput,
) (*mcp.CallToolResult, ExportPDFOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.ports.Export.Export(ctx)
	if err != nil {
		return nil, ExportPDFOutput{}, err
	}

	path := input.Path
	if path == "" {
		path = result.FileName
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return nil, ExportPDFOutput{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return nil, ExportPDFOutput{
		ID:            result.ID,
		Path:          path,
		PageCount:     result.PageCount,
		SourcesOpened: result.SourcesOpened,
		Bytes:         len(result.Data),
	}, nil
}

func (s *Server) handleReset(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ResetInput,
) (*mcp.CallToolResult, ResetOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.ports.Collection.Len()
	s.ports.Collection.Reset()
	return nil, ResetOutput{Removed: removed}, nil
}

// pages builds the page listing. Callers hold s.mu.
func (s *Server) pages() PagesOutput {
	pages := s.ports.Collection.Pages()
	out := PagesOutput{
		Pages: make([]PageOutput, len(pages)),
		Count: len(pages),
	}
	for i := range pages {
		p := &pages[i]
		out.Pages[i] = PageOutput{
			ID:          p.ID,
			Position:    i + 1,
			Source:      p.SourceIndex + 1,
			PageNumber:  p.PageNumber,
			Rotation:    p.Rotation.Degrees(),
			Excluded:    p.Excluded,
			Label:       p.Label(),
			Annotations: len(p.Annotations),
		}
		if p.Active() {
			out.Active++
		}
	}
	return out
}

func (s *Server) settings() domain.AppSettings {
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			return *settings
		}
	}
	return domain.DefaultAppSettings()
}
