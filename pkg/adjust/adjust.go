// Package adjust holds the slider-style adjustment parameters and the
// compositor that renders them onto a raster.
package adjust

// Adjustments is the fixed record of named adjustment sliders. Brightness,
// Contrast, Saturation, Sepia and Grayscale are percentages where 100 (or 0
// for Sepia/Grayscale) means unchanged. Blur is a pixel radius, HueRotate is
// in degrees.
type Adjustments struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Blur       float64
	HueRotate  float64
	Sepia      float64
	Grayscale  float64
}

// Defaults returns the identity adjustments: applying them to a raster is a
// no-op.
func Defaults() Adjustments {
	return Adjustments{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
	}
}

// IsDefault reports whether a equals the identity adjustments.
func (a Adjustments) IsDefault() bool {
	return a == Defaults()
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
