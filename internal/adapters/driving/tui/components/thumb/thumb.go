// Package thumb renders page previews as character thumbnails.
package thumb

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// ramp runs from light to dark; paper is blank and ink is dense.
const ramp = " .:-=+*#%@"

// Render scales img to cols characters wide and returns one line per row.
// Terminal cells are about twice as tall as wide, so each row covers two pixel rows.
func Render(img image.Image, cols int) string {
	if img == nil || cols <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	rows := max(b.Dy()*cols/(b.Dx()*2), 1)

	small := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for y := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range cols {
			sb.WriteByte(shade(small.GrayAt(x, y)))
		}
	}
	return sb.String()
}

func shade(g color.Gray) byte {
	darkness := 255 - int(g.Y)
	return ramp[darkness*(len(ramp)-1)/255]
}
