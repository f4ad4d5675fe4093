// Package retouch implements the localized pixel repair operators. The
// operators mutate the given raster in place — callers own the buffer and
// commit a copy to history when the repair gesture completes.
package retouch

import (
	"image"
	"image/color"
	"math"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

// DefaultKernelRadius is the neighborhood half-width used by BoxBlurRegion
// when the caller passes a non-positive kernel radius.
const DefaultKernelRadius = 2

// pixels darker than this red level never count as red-eye
const redEyeThreshold = 50

// BoxBlurRegion replaces the RGB of every pixel within a disc of radius
// around (cx, cy) with the mean of its (2k+1)^2 neighborhood, where k is
// kernelRadius. Neighbors outside the raster are excluded from both sum and
// count. Alpha is untouched. A non-positive radius is a no-op. Returns dst.
func BoxBlurRegion(dst *image.NRGBA, cx, cy, radius, kernelRadius int) *image.NRGBA {
	if dst == nil || radius <= 0 {
		return dst
	}
	if kernelRadius <= 0 {
		kernelRadius = DefaultKernelRadius
	}
	src := raster.Clone(dst)
	b := dst.Bounds()
	y0 := clampInt(cy-radius, b.Min.Y, b.Max.Y)
	y1 := clampInt(cy+radius+1, b.Min.Y, b.Max.Y)
	x0 := clampInt(cx-radius, b.Min.X, b.Max.X)
	x1 := clampInt(cx+radius+1, b.Min.X, b.Max.X)
	rr := radius * radius
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy > rr {
				continue
			}
			var sr, sg, sb, n int
			for ky := y - kernelRadius; ky <= y+kernelRadius; ky++ {
				if ky < b.Min.Y || ky >= b.Max.Y {
					continue
				}
				for kx := x - kernelRadius; kx <= x+kernelRadius; kx++ {
					if kx < b.Min.X || kx >= b.Max.X {
						continue
					}
					i := src.PixOffset(kx, ky)
					sr += int(src.Pix[i+0])
					sg += int(src.Pix[i+1])
					sb += int(src.Pix[i+2])
					n++
				}
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8(sr / n)
			dst.Pix[i+1] = uint8(sg / n)
			dst.Pix[i+2] = uint8(sb / n)
		}
	}
	return dst
}

// DesaturateRedEye removes the red cast within a disc of radius around
// (cx, cy): every pixel whose red exceeds green+blue and the red-eye
// threshold gets R, G and B replaced by the average of G and B. Pixels
// failing the predicate and the alpha channel are untouched. Returns dst.
func DesaturateRedEye(dst *image.NRGBA, cx, cy, radius int) *image.NRGBA {
	if dst == nil || radius <= 0 {
		return dst
	}
	b := dst.Bounds()
	y0 := clampInt(cy-radius, b.Min.Y, b.Max.Y)
	y1 := clampInt(cy+radius+1, b.Min.Y, b.Max.Y)
	x0 := clampInt(cx-radius, b.Min.X, b.Max.X)
	x1 := clampInt(cx+radius+1, b.Min.X, b.Max.X)
	rr := radius * radius
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy > rr {
				continue
			}
			i := dst.PixOffset(x, y)
			r := int(dst.Pix[i+0])
			g := int(dst.Pix[i+1])
			bl := int(dst.Pix[i+2])
			if r > g+bl && r > redEyeThreshold {
				avg := uint8((g + bl) / 2)
				dst.Pix[i+0] = avg
				dst.Pix[i+1] = avg
				dst.Pix[i+2] = avg
			}
		}
	}
	return dst
}

// ChromaKeyRemove zeroes the alpha of every pixel whose RGB Euclidean
// distance to target is below tolerance. Whole-raster operation, in place.
// Returns dst.
func ChromaKeyRemove(dst *image.NRGBA, target color.NRGBA, tolerance float64) *image.NRGBA {
	if dst == nil {
		return dst
	}
	for i := 0; i < len(dst.Pix); i += 4 {
		dr := float64(dst.Pix[i+0]) - float64(target.R)
		dg := float64(dst.Pix[i+1]) - float64(target.G)
		db := float64(dst.Pix[i+2]) - float64(target.B)
		if math.Sqrt(dr*dr+dg*dg+db*db) < tolerance {
			dst.Pix[i+3] = 0
		}
	}
	return dst
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
