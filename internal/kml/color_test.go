package kml

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorToHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"opaque red", "ff0000ff", "#ff0000"},
		{"half green", "7f00ff00", "#00ff00"},
		{"blue", "ffff0000", "#0000ff"},
		{"mixed", "80123456", "#563412"},
		{"uppercase kept", "FFAABBCC", "#CCBBAA"},
		{"surrounding space", "  ff0000ff\n", "#ff0000"},
		{"empty", "", "#000000"},
		{"short", "ff00ff", "#000000"},
		{"not hex", "zz0000ff", "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorToHex(tt.in))
		})
	}
}

func TestHexToColor(t *testing.T) {
	c, err := HexToColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0, G: 0xff, B: 0, A: 0xff}, c)

	c, err = HexToColor("#504d75ff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x50, G: 0x4d, B: 0x75, A: 0xff}, c)

	_, err = HexToColor("#12")
	assert.Error(t, err)
	_, err = HexToColor("#gggggg")
	assert.Error(t, err)
}
