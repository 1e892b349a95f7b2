package domain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"full hex", "#ff0000", Color{R: 255}, false},
		{"no hash", "00ff00", Color{G: 255}, false},
		{"shorthand", "#00f", Color{B: 255}, false},
		{"shorthand mixed", "#abc", Color{R: 0xaa, G: 0xbb, B: 0xcc}, false},
		{"upper case", "#FFFFFF", Color{R: 255, G: 255, B: 255}, false},
		{"black", "#000000", Black, false},
		{"empty", "", Color{}, true},
		{"bad length", "#ff00", Color{}, true},
		{"not hex", "#gggggg", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#ff0000", Color{R: 255}.Hex())
	assert.Equal(t, "#0a0b0c", Color{R: 10, G: 11, B: 12}.String())
}

func TestColor_ImplementsImageColor(t *testing.T) {
	var c color.Color = Color{R: 255, G: 128}
	got := color.RGBAModel.Convert(c).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, got)
}
