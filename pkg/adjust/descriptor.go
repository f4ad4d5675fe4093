package adjust

import (
	"strconv"
	"strings"
)

// Descriptor renders the adjustments as a CSS-style filter string. The terms
// always appear in the fixed order brightness, contrast, saturate, sepia,
// grayscale, blur, hue-rotate; the operators do not commute, so consumers
// must not reorder them. Identity terms are omitted and the identity record
// yields an empty string.
func (a Adjustments) Descriptor() string {
	var parts []string
	add := func(name, val, unit string) {
		parts = append(parts, name+"("+val+unit+")")
	}
	if a.Brightness != 100 {
		add("brightness", fmtNum(a.Brightness), "%")
	}
	if a.Contrast != 100 {
		add("contrast", fmtNum(a.Contrast), "%")
	}
	if a.Saturation != 100 {
		add("saturate", fmtNum(a.Saturation), "%")
	}
	if a.Sepia != 0 {
		add("sepia", fmtNum(a.Sepia), "%")
	}
	if a.Grayscale != 0 {
		add("grayscale", fmtNum(a.Grayscale), "%")
	}
	if a.Blur != 0 {
		add("blur", fmtNum(a.Blur), "px")
	}
	if a.HueRotate != 0 {
		add("hue-rotate", fmtNum(a.HueRotate), "deg")
	}
	return strings.Join(parts, " ")
}

// fmtNum formats a float with no trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
