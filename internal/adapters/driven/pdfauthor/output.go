package pdfauthor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/transform"
)

// Ensure the output types implement the interfaces.
var (
	_ driven.OutputDocument = (*outputDocument)(nil)
	_ driven.OutputPage     = (*outputPage)(nil)
)

var errSerialized = errors.New("document was already serialized")

// outputDocument is a pdfcpu document under construction.
//
// Text is kept on its page until Serialize, which appends one content
// stream per annotated page. Rotation can therefore change at any time
// before then.
type outputDocument struct {
	ctx     *model.Context
	creator string

	// Font dictionaries by family, shared by every page.
	fonts map[string]*types.IndirectRef

	pages []*outputPage
	data  []byte
}

// EmbedFont adds a standard font to the document once, however many
// pages use it.
func (d *outputDocument) EmbedFont(_ context.Context, name string) (driven.FontRef, error) {
	f, err := lookupCoreFont(name)
	if err != nil {
		return nil, err
	}
	if _, ok := d.fonts[f.family]; !ok {
		ir, err := d.ctx.IndRefForNewObject(fontDict(f))
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", f.family, err)
		}
		d.fonts[f.family] = ir
	}
	return fontRef{family: f.family}, nil
}

// CopyPage appends page pageIndex of src with its content and resources.
// The source page's /Rotate entry is dropped; the copy is upright until
// SetRotation.
func (d *outputDocument) CopyPage(ctx context.Context, src driven.SourceHandle, pageIndex int) (_ driven.OutputPage, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.data != nil {
		return nil, errSerialized
	}
	s, ok := src.(*sourceDocument)
	if !ok {
		return nil, fmt.Errorf("%w: source was not opened by this authoring service", domain.ErrInvalidInput)
	}
	if pageIndex < 0 || pageIndex >= len(s.pages) {
		return nil, fmt.Errorf("%w: page index %d of %d", domain.ErrInvalidInput, pageIndex, len(s.pages))
	}

	defer recoverPdfcpu(&err)

	pageno := pageIndex + 1
	if err := pdfcpu.AddPages(s.ctx, d.ctx, []int{pageno}, false); err != nil {
		return nil, fmt.Errorf("copy page %d: %w", pageno, err)
	}
	d.ctx.PageCount++

	dict, err := d.lastPage()
	if err != nil {
		return nil, fmt.Errorf("copy page %d: %w", pageno, err)
	}

	box := s.pages[pageIndex].Box
	dict.Delete("Rotate")
	dict["CropBox"] = box.Array()

	p := &outputPage{doc: d, dict: dict, box: box}
	d.pages = append(d.pages, p)
	return p, nil
}

// lastPage returns the page dict most recently appended to the page tree.
func (d *outputDocument) lastPage() (types.Dict, error) {
	root, err := d.ctx.Pages()
	if err != nil {
		return nil, err
	}
	pages, err := d.ctx.DereferenceDict(*root)
	if err != nil {
		return nil, err
	}
	kids := pages.ArrayEntry("Kids")
	if len(kids) == 0 {
		return nil, errors.New("page tree is empty")
	}
	return d.ctx.DereferenceDict(kids[len(kids)-1])
}

// Serialize writes the document. Later calls return the same bytes.
func (d *outputDocument) Serialize(ctx context.Context) (_ []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.data != nil {
		return d.data, nil
	}
	if len(d.pages) == 0 {
		return nil, errors.New("document has no pages")
	}

	defer recoverPdfcpu(&err)

	for i, p := range d.pages {
		if err := p.flush(); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	if d.creator != "" {
		info := types.Dict{"Creator": types.StringLiteral(d.creator)}
		if d.ctx.Info, err = d.ctx.IndRefForNewObject(info); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	d.data = buf.Bytes()
	return d.data, nil
}

// outputPage is a copied page. Coordinates passed to DrawText have a
// bottom-left origin in the page as rotated.
type outputPage struct {
	doc      *outputDocument
	dict     types.Dict
	box      types.Rectangle
	rotation domain.Rotation
	texts    []textRun
}

type textRun struct {
	text   string
	at     domain.Point
	size   float64
	color  domain.Color
	family string
}

// SetRotation sets the page's absolute rotation.
// The rotation of the source page is not composed with it.
func (p *outputPage) SetRotation(r domain.Rotation) error {
	if p.doc.data != nil {
		return errSerialized
	}
	p.rotation = r
	if r == domain.Rotate0 {
		p.dict.Delete("Rotate")
		return nil
	}
	p.dict["Rotate"] = types.Integer(r.Degrees())
	return nil
}

func (p *outputPage) Size() domain.Size {
	return transform.Rotate(domain.Size{Width: p.box.Width(), Height: p.box.Height()}, p.rotation)
}

// DrawText draws text with its baseline starting at the given point.
func (p *outputPage) DrawText(text string, at domain.Point, size float64, c domain.Color, f driven.FontRef) error {
	if p.doc.data != nil {
		return errSerialized
	}
	font, ok := f.(fontRef)
	if !ok {
		return fmt.Errorf("%w: font was not embedded in this document", domain.ErrInvalidInput)
	}
	if _, ok := p.doc.fonts[font.family]; !ok {
		return fmt.Errorf("%w: font was not embedded in this document", domain.ErrInvalidInput)
	}
	if size <= 0 {
		return fmt.Errorf("%w: font size %g", domain.ErrInvalidInput, size)
	}
	p.texts = append(p.texts, textRun{text: text, at: at, size: size, color: c, family: font.family})
	return nil
}

// flush writes the page's text runs. The existing content is wrapped in
// q/Q so its graphics state does not leak into the text.
func (p *outputPage) flush() error {
	if len(p.texts) == 0 {
		return nil
	}
	x := p.doc.ctx

	fonts, err := p.fontResources()
	if err != nil {
		return err
	}

	contents, err := p.contents()
	if err != nil {
		return err
	}
	head, err := newContentStream(x, []byte("q\n"))
	if err != nil {
		return err
	}
	tail, err := newContentStream(x, p.textContent(fonts))
	if err != nil {
		return err
	}

	a := types.Array{*head}
	a = append(a, contents...)
	p.dict["Contents"] = append(a, *tail)
	p.texts = nil
	return nil
}

// fontResources adds the used fonts to a copy of the page's font
// resources and returns the resource name chosen for each family.
func (p *outputPage) fontResources() (map[string]string, error) {
	x := p.doc.ctx

	res, err := x.DereferenceDict(p.dict["Resources"])
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	if res == nil {
		res = types.NewDict()
	} else {
		res = res.Clone().(types.Dict)
	}

	fonts, err := x.DereferenceDict(res["Font"])
	if err != nil {
		return nil, fmt.Errorf("font resources: %w", err)
	}
	if fonts == nil {
		fonts = types.NewDict()
	} else {
		fonts = fonts.Clone().(types.Dict)
	}

	names := make(map[string]string)
	n := 0
	for _, t := range p.texts {
		if _, ok := names[t.family]; ok {
			continue
		}
		name := ""
		for {
			n++
			name = "PD" + strconv.Itoa(n)
			if _, taken := fonts[name]; !taken {
				break
			}
		}
		fonts[name] = *p.doc.fonts[t.family]
		names[t.family] = name
	}

	res["Font"] = fonts
	p.dict["Resources"] = res
	return names, nil
}

// contents returns the page's current content streams.
func (p *outputPage) contents() (types.Array, error) {
	o, found := p.dict.Find("Contents")
	if !found || o == nil {
		return nil, nil
	}
	switch o := o.(type) {
	case types.Array:
		return o, nil
	case types.IndirectRef:
		obj, err := p.doc.ctx.Dereference(o)
		if err != nil {
			return nil, fmt.Errorf("contents: %w", err)
		}
		if a, ok := obj.(types.Array); ok {
			return a, nil
		}
		return types.Array{o}, nil
	default:
		return nil, fmt.Errorf("contents: unexpected %T", o)
	}
}

// textContent renders the text runs. Each run is positioned in the
// unrotated user space and turned with the page so it reads upright
// in a viewer.
func (p *outputPage) textContent(fonts map[string]string) []byte {
	a, b, c, d := textMatrix(p.rotation)

	var buf bytes.Buffer
	buf.WriteString("Q\n")
	for _, t := range p.texts {
		x, y := p.userSpace(t.at)
		buf.WriteString("BT\n")
		fmt.Fprintf(&buf, "/%s %g Tf\n", fonts[t.family], t.size)
		fmt.Fprintf(&buf, "%.3f %.3f %.3f rg\n",
			float64(t.color.R)/255, float64(t.color.G)/255, float64(t.color.B)/255)
		fmt.Fprintf(&buf, "%g %g %g %g %.2f %.2f Tm\n", a, b, c, d, x, y)
		buf.WriteString("(")
		buf.Write(escapeText(t.text))
		buf.WriteString(") Tj\nET\n")
	}
	return buf.Bytes()
}

// userSpace maps a point of the rotated page to unrotated user space.
// Page rotation is clockwise.
func (p *outputPage) userSpace(at domain.Point) (float64, float64) {
	w, h := p.box.Width(), p.box.Height()
	x, y := at.X, at.Y
	switch p.rotation {
	case domain.Rotate90:
		x, y = w-at.Y, at.X
	case domain.Rotate180:
		x, y = w-at.X, h-at.Y
	case domain.Rotate270:
		x, y = at.Y, h-at.X
	}
	return p.box.LL.X + x, p.box.LL.Y + y
}

// textMatrix turns text counter-clockwise in user space by the page
// rotation, which cancels the clockwise page rotation on display.
func textMatrix(r domain.Rotation) (a, b, c, d float64) {
	switch r {
	case domain.Rotate90:
		return 0, 1, -1, 0
	case domain.Rotate180:
		return -1, 0, 0, -1
	case domain.Rotate270:
		return 0, -1, 1, 0
	default:
		return 1, 0, 0, 1
	}
}

// escapeText encodes s as WinAnsi for a literal string. Runes outside
// the encoding become '?'.
func escapeText(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		ch, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			ch = '?'
		}
		switch ch {
		case '(', ')', '\\':
			out = append(out, '\\', ch)
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, ch)
		}
	}
	return out
}

func newContentStream(x *model.Context, b []byte) (*types.IndirectRef, error) {
	sd, err := x.NewStreamDictForBuf(b)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return x.IndRefForNewObject(*sd)
}

// recoverPdfcpu turns a panic inside pdfcpu into an error.
func recoverPdfcpu(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdfcpu: %v", r)
	}
}
