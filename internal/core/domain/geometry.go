package domain

// Size is a width and height in the units of the space it belongs to:
// preview pixels or output document points.
type Size struct {
	Width  float64
	Height float64
}

// Point is a position in a preview, normalised or output space.
type Point struct {
	X float64
	Y float64
}
