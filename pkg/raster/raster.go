package raster

import (
	"bytes"
	"image"
	"image/color"
)

// FromImage converts any image.Image to a *image.NRGBA (non-premultiplied RGBA)
// whose bounds start at the origin. The result never aliases the source pixels.
func FromImage(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		// a sub-image keeps its parent's stride, so the whole-buffer copy
		// needs an origin rect and a tightly packed buffer; anything else
		// copies row by row, which also keeps straight alpha exact
		if b.Min == image.Pt(0, 0) && n.Stride == 4*b.Dx() {
			copy(out.Pix, n.Pix)
			return out
		}
		rowLen := 4 * b.Dx()
		for y := 0; y < b.Dy(); y++ {
			si := n.PixOffset(b.Min.X, b.Min.Y+y)
			di := out.PixOffset(0, y)
			copy(out.Pix[di:di+rowLen], n.Pix[si:si+rowLen])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b_, a := src.At(x, y).RGBA()
			// r,g,b,a are 16-bit [0, 65535]; convert to 8-bit
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b_ >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// Clone returns an independent copy of the provided raster.
func Clone(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// Equal reports whether two rasters have identical dimensions and bytes.
func Equal(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return false
	}
	return bytes.Equal(a.Pix, b.Pix)
}

// NewSolid returns a w x h raster filled with c.
func NewSolid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}
