package codec

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

// Comparison summarizes a lossy re-encode of a raster against its lossless
// baseline, for before/after compression previews.
type Comparison struct {
	Format        Format
	Quality       int
	OriginalBytes int     // lossless PNG size of the source
	EncodedBytes  int     // size at the requested format/quality
	Ratio         float64 // EncodedBytes / OriginalBytes
	MSE           float64 // mean squared RGB error after decode round-trip
	PSNR          float64 // dB; +Inf when the round-trip is lossless
}

// Compare encodes src at the requested format and quality, decodes the
// result back, and reports size and quality metrics.
func Compare(src *image.NRGBA, f Format, quality int) (Comparison, error) {
	orig, err := Encode(src, FormatPNG, 0)
	if err != nil {
		return Comparison{}, err
	}
	enc, err := Encode(src, f, quality)
	if err != nil {
		return Comparison{}, err
	}
	dec, _, err := Decode(enc)
	if err != nil {
		return Comparison{}, err
	}
	if dec.Bounds().Dx() != src.Bounds().Dx() || dec.Bounds().Dy() != src.Bounds().Dy() {
		return Comparison{}, fmt.Errorf("%w: round-trip changed dimensions", ErrEncode)
	}
	norm := raster.FromImage(src)
	diffs := make([]float64, 0, len(norm.Pix)/4*3)
	for i := 0; i < len(norm.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(norm.Pix[i+c]) - float64(dec.Pix[i+c])
			diffs = append(diffs, d*d)
		}
	}
	mse := stat.Mean(diffs, nil)
	psnr := math.Inf(1)
	if mse > 0 {
		psnr = 10 * math.Log10(255*255/mse)
	}
	return Comparison{
		Format:        f,
		Quality:       quality,
		OriginalBytes: len(orig),
		EncodedBytes:  len(enc),
		Ratio:         float64(len(enc)) / float64(len(orig)),
		MSE:           mse,
		PSNR:          psnr,
	}, nil
}
