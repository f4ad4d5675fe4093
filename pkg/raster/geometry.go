package raster

import "math"

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// RotatedBounds computes the axis-aligned bounding box of a w x h rectangle
// rotated by deg degrees about its center. deg may be any real number.
func RotatedBounds(w, h, deg float64) (bw, bh float64) {
	rad := deg * (math.Pi / 180.0)
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	bw = cos*w + sin*h
	bh = sin*w + cos*h
	return bw, bh
}

// NormalizeDegrees maps any rotation to [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// MapToSource translates a point given in display pixels into source-raster
// pixels. The axes are scaled independently; display and source aspect
// ratios need not match.
func MapToSource(p Point, display, source Size) Point {
	if display.W == 0 || display.H == 0 {
		return Point{}
	}
	return Point{
		X: p.X * (source.W / display.W),
		Y: p.Y * (source.H / display.H),
	}
}
