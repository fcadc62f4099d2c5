package kml

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultColor is returned when a KML color cannot be converted.
const DefaultColor = "#000000"

// ColorToHex converts a KML aabbggrr color into a CSS #rrggbb string.
// The alpha pair is dropped. Empty or malformed input yields DefaultColor.
func ColorToHex(abgr string) string {
	abgr = strings.TrimSpace(abgr)
	if len(abgr) != 8 || !isHex(abgr) {
		return DefaultColor
	}
	bb := abgr[2:4]
	gg := abgr[4:6]
	rr := abgr[6:8]
	return "#" + rr + gg + bb
}

// HexToColor parses a CSS #rrggbb or #rrggbbaa string. Missing alpha is
// treated as fully opaque.
func HexToColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if (len(s) != 6 && len(s) != 8) || !isHex(s) {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
