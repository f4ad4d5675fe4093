package markup

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// brush color names accepted from shells alongside hex notation
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseHexColor parses #rgb, #rgba, #rrggbb, #rrggbbaa or a basic color name.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if hexs, ok := namedColors[strings.ToLower(s)]; ok {
		s = hexs
	}
	if s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("unsupported color format: %s", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		// expand shorthand digits
		var full strings.Builder
		for _, c := range hex {
			full.WriteRune(c)
			full.WriteRune(c)
		}
		hex = full.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("unsupported hex color length: %d", len(hex))
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
