// Package domain defines the core business entities for pagedeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PageRecord: One page slot in the working document
//   - Annotation: A single-line text stamp placed on a page
//   - SourceDocument: An ingested PDF, identified by its ingestion index
//   - Rotation, Color, Size, Point: Value types shared by the core and its ports
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
