package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB text colour.
// It implements image/color.Color so preview surfaces can paint with it directly.
type Color struct {
	R, G, B uint8
}

// Black is the default annotation colour.
var Black = Color{}

// ParseColor parses a CSS hex colour: "#rrggbb" or the "#rgb" shorthand.
// The leading '#' is optional.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: colour %q is not #rgb or #rrggbb", ErrInvalidInput, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidInput, hex, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements image/color.Color. The colour is fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}
