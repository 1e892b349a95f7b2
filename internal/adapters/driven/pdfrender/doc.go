// Package pdfrender implements driven.Renderer.
//
// Documents are decoded and validated with pdfcpu, which also supplies the
// page count and page boxes. Preview surfaces are drawn with x/image: a
// page frame at the rotated, width-fitted size with a marker on the edge
// that was the top of the source page, plus annotation text in Go Regular.
// Page content itself is not rasterised.
package pdfrender
