package domain

import "fmt"

// Rotation is a clockwise page rotation in degrees: 0, 90, 180 or 270.
type Rotation int

// Supported rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation validates a rotation given in degrees.
// Multiples of 90 are reduced modulo 360, so -90 becomes 270.
func ParseRotation(degrees int) (Rotation, error) {
	if degrees%90 != 0 {
		return 0, fmt.Errorf("%w: rotation must be a multiple of 90, got %d", ErrInvalidInput, degrees)
	}
	r := degrees % 360
	if r < 0 {
		r += 360
	}
	return Rotation(r), nil
}

// Next returns the rotation advanced by 90 degrees modulo 360.
func (r Rotation) Next() Rotation {
	return (r + 90) % 360
}

// Degrees returns the rotation as an int.
func (r Rotation) Degrees() int {
	return int(r)
}

// IsQuarterTurn returns true for 90 and 270, where width and height swap.
func (r Rotation) IsQuarterTurn() bool {
	return r == Rotate90 || r == Rotate270
}

// Annotation is one text stamp on a page.
type Annotation struct {
	// X and Y are normalised to [0,1] against the preview surface
	// as rendered at the rotation in effect when the annotation was placed.
	X float64
	Y float64

	// Text is the stamped text. Never empty.
	Text string

	// Size is the font size in preview pixels.
	// Export reuses it unscaled as a point size.
	Size float64

	// Color is the text colour.
	Color Color
}

// AnnotationInput carries the user-chosen attributes of a new annotation.
type AnnotationInput struct {
	Text  string
	Size  float64
	Color string
}

// PageRecord is one page slot in the working document.
type PageRecord struct {
	// ID is unique within the collection and never changes.
	ID string

	// SourceIndex identifies the ingested source document (0-based).
	SourceIndex int

	// SourceBytes is the whole source document.
	// Shared by every record of the same source and never mutated.
	SourceBytes []byte

	// PageNumber is the 1-based page index within the source.
	PageNumber int

	// Rotation is the user's rotation for this page.
	Rotation Rotation

	// Excluded marks the page as left out of the export.
	// Excluded records keep their position and all other state.
	Excluded bool

	// Annotations are drawn in order; later entries are on top.
	Annotations []Annotation
}

// Active returns true when the page takes part in the export.
func (p *PageRecord) Active() bool {
	return !p.Excluded
}

// Status returns "Active" or "Deleted" for display.
func (p *PageRecord) Status() string {
	if p.Excluded {
		return "Deleted"
	}
	return "Active"
}

// Label returns a one-line description, e.g. "PDF 1 • Page 3 • Rot 90° • Active".
func (p *PageRecord) Label() string {
	return fmt.Sprintf("PDF %d • Page %d • Rot %d° • %s",
		p.SourceIndex+1, p.PageNumber, p.Rotation.Degrees(), p.Status())
}

// Clone returns a copy whose annotation slice is independent of p.
// SourceBytes is shared on purpose: it is immutable.
func (p *PageRecord) Clone() PageRecord {
	c := *p
	if p.Annotations != nil {
		c.Annotations = make([]Annotation, len(p.Annotations))
		copy(c.Annotations, p.Annotations)
	}
	return c
}
