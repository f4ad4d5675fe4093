// Package transform renders a raster through a rotate/flip/crop
// specification into a fresh raster.
package transform

import (
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

// ErrInvalidCropRegion reports an extraction rectangle lying partially or
// fully outside the transformed working raster. Callers are expected to
// clamp the rectangle to the rotated bounding box before calling.
var ErrInvalidCropRegion = errors.New("transform: crop region outside transformed bounds")

// CropSpec describes one crop/transform operation. X, Y, Width and Height
// are in source-pixel space of the transformed (rotated and flipped) image;
// a zero Width and Height means no extraction, i.e. a rotate/flip-only
// operation. Rotation may be any real number of degrees.
type CropSpec struct {
	X, Y          int
	Width, Height int
	Rotation      float64
	FlipH, FlipV  bool
}

// HasRect reports whether the spec carries an extraction rectangle.
func (s CropSpec) HasRect() bool {
	return s.Width != 0 || s.Height != 0
}

// Clamp returns a copy of the spec whose rectangle is clipped to the rotated
// bounding box of a srcW x srcH raster. The box matches the dimensions
// Render produces for the same rotation, so a clamped rectangle always
// survives Crop.
func (s CropSpec) Clamp(srcW, srcH int) CropSpec {
	if !s.HasRect() {
		return s
	}
	bw, bh := transformedDims(srcW, srcH, s.Rotation)
	r := image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height).Intersect(image.Rect(0, 0, bw, bh))
	s.X, s.Y = r.Min.X, r.Min.Y
	s.Width, s.Height = r.Dx(), r.Dy()
	return s
}

// transformedDims returns the pixel dimensions of the working raster Render
// builds for the given rotation. Right angles take the exact swapped or
// unchanged sizes; cos(90°) carries float noise that would make the ceil'd
// bounding box overshoot by a pixel.
func transformedDims(w, h int, rotation float64) (int, int) {
	deg := raster.NormalizeDegrees(rotation)
	if exact, ok := rightAngle(deg); ok {
		if exact == 90 || exact == 270 {
			return h, w
		}
		return w, h
	}
	bwf, bhf := raster.RotatedBounds(float64(w), float64(h), deg)
	return int(math.Ceil(bwf)), int(math.Ceil(bhf))
}

// Crop renders src rotated by spec.Rotation about its center and flipped per
// the flags into a working raster sized to the rotated bounding box, then
// extracts the spec rectangle from it. The source is never modified and the
// result never aliases it. With no rectangle the whole transformed raster is
// returned.
func Crop(src *image.NRGBA, spec CropSpec) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("transform: nil source raster")
	}
	work := Render(src, spec.Rotation, spec.FlipH, spec.FlipV)
	if !spec.HasRect() {
		return work, nil
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, ErrInvalidCropRegion
	}
	r := image.Rect(spec.X, spec.Y, spec.X+spec.Width, spec.Y+spec.Height)
	if !r.In(work.Bounds()) {
		return nil, ErrInvalidCropRegion
	}
	out := image.NewNRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	stddraw.Draw(out, out.Bounds(), work, r.Min, stddraw.Src)
	return out, nil
}

// Render rotates src by rotation degrees about its center and applies the
// flips, composed as translate-rotate-scale-translate. Rotations that are
// multiples of 90 degrees take exact pixel paths; anything else is resampled
// bilinearly into the rotated bounding box.
func Render(src *image.NRGBA, rotation float64, flipH, flipV bool) *image.NRGBA {
	deg := raster.NormalizeDegrees(rotation)
	if exact, ok := rightAngle(deg); ok {
		out := src
		// flips run before the rotation, matching the affine order
		if flipH {
			out = flipHorizontal(out)
		}
		if flipV {
			out = flipVertical(out)
		}
		switch exact {
		case 90:
			return rotate90(out)
		case 180:
			return rotate180(out)
		case 270:
			return rotate270(out)
		}
		if out == src {
			return raster.Clone(src)
		}
		return out
	}

	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	bwf, bhf := raster.RotatedBounds(w, h, deg)
	rad := deg * (math.Pi / 180.0)
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	fh := 1.0
	if flipH {
		fh = -1
	}
	fv := 1.0
	if flipV {
		fv = -1
	}
	m := f64.Aff3{
		cos * fh, -sin * fv, bwf/2 - cos*fh*w/2 + sin*fv*h/2,
		sin * fh, cos * fv, bhf/2 - sin*fh*w/2 - cos*fv*h/2,
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(math.Ceil(bwf)), int(math.Ceil(bhf))))
	xdraw.BiLinear.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// rightAngle reports whether deg (already normalized) is a multiple of 90.
func rightAngle(deg float64) (int, bool) {
	for _, a := range []int{0, 90, 180, 270} {
		if math.Abs(deg-float64(a)) < 1e-9 {
			return a, true
		}
	}
	if math.Abs(deg-360) < 1e-9 {
		return 0, true
	}
	return 0, false
}

func flipVertical(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	w := b.Dx()
	h := b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dstIdx := out.PixOffset(x, h-1-y)
			copy(out.Pix[dstIdx:dstIdx+4], src.Pix[srcIdx:srcIdx+4])
		}
	}
	return out
}

func flipHorizontal(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	w := b.Dx()
	h := b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dstIdx := out.PixOffset(w-1-x, y)
			copy(out.Pix[dstIdx:dstIdx+4], src.Pix[srcIdx:srcIdx+4])
		}
	}
	return out
}

func rotate180(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	w := b.Dx()
	h := b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dstIdx := out.PixOffset(w-1-x, h-1-y)
			copy(out.Pix[dstIdx:dstIdx+4], src.Pix[srcIdx:srcIdx+4])
		}
	}
	return out
}

// rotate90 rotates a quarter turn clockwise.
func rotate90(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dstIdx := out.PixOffset(h-1-y, x)
			copy(out.Pix[dstIdx:dstIdx+4], src.Pix[srcIdx:srcIdx+4])
		}
	}
	return out
}

// rotate270 rotates a quarter turn counter-clockwise.
func rotate270(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dstIdx := out.PixOffset(y, w-1-x)
			copy(out.Pix[dstIdx:dstIdx+4], src.Pix[srcIdx:srcIdx+4])
		}
	}
	return out
}
