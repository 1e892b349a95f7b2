// Package pdffixture generates small PDFs for adapter and shell tests.
package pdffixture

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// Common page sizes in points.
var (
	Letter          = domain.Size{Width: 612, Height: 792}
	LetterLandscape = domain.Size{Width: 792, Height: 612}
)

var disableConfigDir sync.Once

// Pages returns a PDF with n Letter pages, each stamped "page N".
func Pages(tb testing.TB, n int) []byte {
	tb.Helper()
	sizes := make([]domain.Size, n)
	for i := range sizes {
		sizes[i] = Letter
	}
	return Sizes(tb, sizes...)
}

// Sizes returns a PDF with one page per size, each stamped "page N".
func Sizes(tb testing.TB, sizes ...domain.Size) []byte {
	tb.Helper()

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 24)
	for i, s := range sizes {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: s.Width, Ht: s.Height})
		pdf.Text(72, 72, fmt.Sprintf("page %d", i+1))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		tb.Fatalf("generate fixture: %v", err)
	}
	return buf.Bytes()
}

// XRefStream rewrites data with pdfcpu, which stores objects in object
// streams behind a cross-reference stream.
func XRefStream(tb testing.TB, data []byte) []byte {
	tb.Helper()

	conf := pdfcpuConf()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, conf); err != nil {
		tb.Fatalf("rewrite fixture: %v", err)
	}
	return buf.Bytes()
}

// Rotated sets a /Rotate entry of degrees on every page of data.
func Rotated(tb testing.TB, data []byte, degrees int) []byte {
	tb.Helper()

	var buf bytes.Buffer
	if err := api.Rotate(bytes.NewReader(data), &buf, degrees, nil, pdfcpuConf()); err != nil {
		tb.Fatalf("rotate fixture: %v", err)
	}
	return buf.Bytes()
}

func pdfcpuConf() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
