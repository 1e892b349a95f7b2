package pdfauthor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/pagedeck/internal/adapters/driven/pdfpages"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
)

// Ensure Authoring implements the interface.
var _ driven.Authoring = (*Authoring)(nil)

var disableConfigDir sync.Once

// Authoring builds output documents with pdfcpu.
type Authoring struct {
	conf    *model.Configuration
	creator string
}

// NewAuthoring creates an authoring service. creator is recorded in the
// output document's metadata.
func NewAuthoring(creator string) *Authoring {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Authoring{conf: conf, creator: creator}
}

// CreateDocument starts an empty output document.
func (a *Authoring) CreateDocument(ctx context.Context) (driven.OutputDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Every copied page carries its own MediaBox, so the root default
	// never shows.
	pctx, err := pdfcpu.CreateContextWithXRefTable(a.conf, types.PaperSize["Letter"])
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	return &outputDocument{
		ctx:     pctx,
		creator: a.creator,
		fonts:   make(map[string]*types.IndirectRef),
	}, nil
}

// OpenDocument parses and validates a source once. The parsed document
// is the page source for every later CopyPage.
func (a *Authoring) OpenDocument(ctx context.Context, data []byte) (driven.SourceHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pctx, pages, err := pdfpages.Read(data, a.conf)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return &sourceDocument{ctx: pctx, pages: pages}, nil
}

// sourceDocument is a parsed and validated source.
type sourceDocument struct {
	ctx   *model.Context
	pages []pdfpages.Page
}

func (s *sourceDocument) PageCount() int {
	return len(s.pages)
}

// fontRef is one of the standard 14 font families. No font program is
// embedded; viewers supply the glyphs.
type fontRef struct {
	family string
}

func (f fontRef) Name() string {
	return f.family
}

type coreFont struct {
	family   string
	baseFont string
	// Symbolic fonts use their built-in encoding.
	symbolic bool
}

var coreFonts = map[string]coreFont{
	"helvetica":    {family: "Helvetica", baseFont: "Helvetica"},
	"arial":        {family: "Arial", baseFont: "Helvetica"},
	"times":        {family: "Times", baseFont: "Times-Roman"},
	"courier":      {family: "Courier", baseFont: "Courier"},
	"symbol":       {family: "Symbol", baseFont: "Symbol", symbolic: true},
	"zapfdingbats": {family: "ZapfDingbats", baseFont: "ZapfDingbats", symbolic: true},
}

func lookupCoreFont(name string) (coreFont, error) {
	f, ok := coreFonts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return coreFont{}, fmt.Errorf("%w: %q is not a standard PDF font", domain.ErrInvalidInput, name)
	}
	return f, nil
}

// fontDict is the simple font dictionary for f.
func fontDict(f coreFont) types.Dict {
	d := types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(f.baseFont),
	}
	if !f.symbolic {
		d["Encoding"] = types.Name("WinAnsiEncoding")
	}
	return d
}
