// Package transform maps points between preview pixel space, normalised
// page space and output document space.
//
// Preview space has a top-left origin with Y growing downward. Output space
// has a bottom-left origin with Y growing upward. Normalised space stores
// fractions of the preview surface, which keeps annotation positions
// independent of preview resolution.
//
// Rotation needs no matrix here: a normalised point is always taken against
// the surface as rendered at the page's rotation, and the output page is
// rotated the same way, so preview and output agree.
package transform

import (
	"fmt"
	"math"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

// Normalize converts a pixel position on a preview surface to fractions
// of the surface size. The surface must be the one currently rendered for
// the page, at its current rotation.
func Normalize(p domain.Point, surface domain.Size) (domain.Point, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return domain.Point{}, fmt.Errorf("%w: preview surface %gx%g", domain.ErrInvalidInput, surface.Width, surface.Height)
	}
	return domain.Point{X: p.X / surface.Width, Y: p.Y / surface.Height}, nil
}

// ToPreview converts a normalised position back to pixels on a surface.
func ToPreview(n domain.Point, surface domain.Size) domain.Point {
	return domain.Point{X: n.X * surface.Width, Y: n.Y * surface.Height}
}

// ToOutput converts a normalised position to output document coordinates
// for text of the given size.
//
// Text is top-aligned in the preview and baseline-aligned in the output,
// hence the size offset. The size is reused as a point size without DPI
// scaling, matching what the preview shows at its default zoom only.
func ToOutput(n domain.Point, page domain.Size, size float64) domain.Point {
	return domain.Point{
		X: n.X * page.Width,
		Y: page.Height - n.Y*page.Height - size,
	}
}

// Rotate returns the size of a page after applying r.
func Rotate(s domain.Size, r domain.Rotation) domain.Size {
	if r.IsQuarterTurn() {
		return domain.Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// FitWidth scales s to the target width keeping its aspect ratio.
// The height is rounded up to a whole pixel.
func FitWidth(s domain.Size, targetWidth int) (width, height int) {
	if s.Width <= 0 || s.Height <= 0 || targetWidth <= 0 {
		return 0, 0
	}
	return targetWidth, int(math.Ceil(s.Height * float64(targetWidth) / s.Width))
}
