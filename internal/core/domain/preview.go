package domain

import "image"

// Preview is a rendered page with its annotations drawn on top.
type Preview struct {
	// PageID is the record that was rendered.
	PageID string

	// Size is the surface size in pixels at the page's current rotation.
	Size Size

	// Image holds the rendered pixels.
	Image image.Image
}
