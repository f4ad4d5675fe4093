package adjust

import (
	"fmt"
	"image"

	"github.com/gohugoio/gift"
)

// pipeline builds the gift filter chain for a. The chain order matches the
// Descriptor term order exactly; an identity record yields an empty chain.
func pipeline(a Adjustments) *gift.GIFT {
	var fs []gift.Filter
	if a.Brightness != 100 {
		fs = append(fs, gift.Brightness(float32(clampFloat(a.Brightness, 0, 200)-100)))
	}
	if a.Contrast != 100 {
		fs = append(fs, gift.Contrast(float32(clampFloat(a.Contrast, 0, 200)-100)))
	}
	if a.Saturation != 100 {
		fs = append(fs, gift.Saturation(float32(clampFloat(a.Saturation, 0, 600)-100)))
	}
	if a.Sepia != 0 {
		fs = append(fs, gift.Sepia(float32(clampFloat(a.Sepia, 0, 100))))
	}
	if a.Grayscale != 0 {
		// full grayscale drops chroma entirely; partial desaturates toward it
		if a.Grayscale >= 100 {
			fs = append(fs, gift.Grayscale())
		} else {
			fs = append(fs, gift.Saturation(float32(-clampFloat(a.Grayscale, 0, 100))))
		}
	}
	if a.Blur > 0 {
		fs = append(fs, gift.GaussianBlur(float32(a.Blur)))
	}
	if a.HueRotate != 0 {
		fs = append(fs, gift.Hue(float32(hueShift(a.HueRotate))))
	}
	return gift.New(fs...)
}

// hueShift maps an arbitrary rotation in degrees onto (-180, 180].
func hueShift(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// Apply renders src through the ordered filter chain onto a fresh raster of
// identical dimensions. The source is never modified. Applying the identity
// adjustments returns a byte-identical copy.
func Apply(src *image.NRGBA, a Adjustments) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("adjust: nil source raster")
	}
	g := pipeline(a)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	if err := g.Draw(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
