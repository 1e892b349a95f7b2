package domain

// DefaultExportFileName is the file name offered for the merged document.
const DefaultExportFileName = "merged.pdf"

// ExportResult is the outcome of a successful export.
type ExportResult struct {
	// ID uniquely identifies this export run.
	ID string

	// FileName is the suggested name for the output file.
	FileName string

	// Data is the serialised output document.
	Data []byte

	// PageCount is the number of pages written.
	PageCount int

	// SourcesOpened is the number of distinct source documents decoded.
	SourcesOpened int
}
