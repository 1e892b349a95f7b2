package domain

// SourceDocument is an ingested PDF.
type SourceDocument struct {
	// Index is the 0-based ingestion index, shared by all pages of the document.
	Index int

	// Name is the file name when known, used in messages only.
	Name string

	// Data is the immutable document content.
	Data []byte

	// PageCount is the number of pages reported by the renderer.
	PageCount int
}

// SourceFile is one input of a batch ingestion.
type SourceFile struct {
	// Name is the file name, used for error reporting.
	Name string

	// Data is the raw document content.
	Data []byte
}
