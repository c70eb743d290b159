package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to
// a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on
// error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// BlendHex mixes two hex colors in RGB space, t=0 giving from and t=1 giving
// to. The renderer uses it to fade the win/lose LED over its flash
// countdown. Broken inputs fall back to the from color, or white.
func BlendHex(from, to string, t float64) tcell.Color {
	a, err := colorful.Hex(normalizeHex(from))
	if err != nil {
		return tcell.ColorWhite
	}
	b, err := colorful.Hex(normalizeHex(to))
	if err != nil {
		return colorOr(from, tcell.ColorWhite)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	r, g, bl := a.BlendRgb(b, t).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

// normalizeHex ensures the leading # that colorful.Hex requires.
func normalizeHex(hex string) string {
	if strings.HasPrefix(hex, "#") {
		return hex
	}
	return "#" + hex
}
