package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested page does not exist in the collection.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyText indicates an annotation was requested without text.
	// Annotations with empty text are never created.
	ErrEmptyText = fmt.Errorf("%w: annotation text is empty", ErrInvalidInput)

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Pipeline Errors.

	// ErrDecode indicates a source document could not be opened by the renderer.
	// Reported per file at ingestion time; other files in the batch still ingest.
	ErrDecode = errors.New("cannot decode document")

	// ErrNothingToExport indicates an export was attempted with no active pages.
	ErrNothingToExport = errors.New("no pages to export")

	// ErrExport indicates the authoring service failed while building the output.
	// The export is aborted as a whole and no bytes are produced.
	ErrExport = errors.New("export failed")
)

// DecodeError reports a source document the rendering service could not open.
type DecodeError struct {
	Source string // file name or other label of the rejected input
	Err    error  // underlying cause
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v %s: %v", ErrDecode, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDecode, so callers can match on the sentinel.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ExportError reports a failed step of the export sequence.
type ExportError struct {
	Op     string // failing step, e.g. "CopyPage", "DrawText", "Serialize"
	PageID string // page being processed, empty for document-level steps
	Err    error  // underlying cause
}

func (e *ExportError) Error() string {
	if e.PageID != "" {
		return fmt.Sprintf("%v: %s page %s: %v", ErrExport, e.Op, e.PageID, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrExport, e.Op, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExport, so callers can match on the sentinel.
func (e *ExportError) Is(target error) bool {
	return target == ErrExport
}
