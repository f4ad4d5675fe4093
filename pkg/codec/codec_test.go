package codec

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(x * 255 / w)
			img.Pix[i+1] = uint8(y * 255 / h)
			img.Pix[i+2] = uint8((x + y) * 255 / (w + h))
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestPNGRoundTripLossless(t *testing.T) {
	src := gradient(16, 16)
	data, err := Encode(src, FormatPNG, 0)
	if err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	dec, format, err := Decode(data)
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	if format != "png" {
		t.Fatalf("sniffed format %q; want png", format)
	}
	if !raster.Equal(src, dec) {
		t.Fatalf("png round trip is not lossless")
	}
}

func TestJPEGEncodeDecodes(t *testing.T) {
	src := gradient(20, 20)
	data, err := Encode(src, FormatJPEG, 80)
	if err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	dec, format, err := Decode(data)
	if err != nil {
		t.Fatalf("jpeg decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("sniffed format %q; want jpeg", format)
	}
	if dec.Bounds().Dx() != 20 || dec.Bounds().Dy() != 20 {
		t.Fatalf("jpeg round trip changed dimensions: %v", dec.Bounds())
	}
}

func TestTIFFRoundTrip(t *testing.T) {
	src := gradient(8, 8)
	data, err := Encode(src, FormatTIFF, 0)
	if err != nil {
		t.Fatalf("tiff encode failed: %v", err)
	}
	dec, format, err := Decode(data)
	if err != nil {
		t.Fatalf("tiff decode failed: %v", err)
	}
	if format != "tiff" {
		t.Fatalf("sniffed format %q; want tiff", format)
	}
	if !raster.Equal(src, dec) {
		t.Fatalf("tiff round trip is not lossless")
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	_, _, err = Decode(nil)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for empty input, got %v", err)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := Encode(gradient(2, 2), Format("heic"), 90)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
}

func TestSniffFormat(t *testing.T) {
	cases := map[string]string{
		"\xFF\xD8\xFFxxxxxxxxx":   "jpeg",
		"\x89PNG\r\n\x1a\nxxxx":   "png",
		"GIF89axxxx":              "gif",
		"RIFFxxxxWEBPxxxx":        "webp",
		"BMxxxxxxxx":              "bmp",
		"II*\x00xxxx":             "tiff",
		"MM\x00*xxxx":             "tiff",
		"plain text, no marker..": "",
	}
	for in, want := range cases {
		if got := sniffFormat([]byte(in)); got != want {
			t.Fatalf("sniffFormat(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestWebPEncodeUnavailableWithoutMagick(t *testing.T) {
	_, err := Encode(gradient(2, 2), FormatWebP, 80)
	if err != nil && !errors.Is(err, ErrEncode) {
		t.Fatalf("webp encode error should wrap ErrEncode, got %v", err)
	}
}

func TestCompareLosslessBaseline(t *testing.T) {
	src := gradient(16, 16)
	c, err := Compare(src, FormatPNG, 0)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if c.MSE != 0 {
		t.Fatalf("png comparison MSE = %v; want 0", c.MSE)
	}
	if !math.IsInf(c.PSNR, 1) {
		t.Fatalf("lossless PSNR should be +Inf, got %v", c.PSNR)
	}
	if c.OriginalBytes == 0 || c.EncodedBytes == 0 {
		t.Fatalf("sizes not reported: %+v", c)
	}
}

func TestCompareLossyJPEG(t *testing.T) {
	src := gradient(32, 32)
	c, err := Compare(src, FormatJPEG, 40)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if c.MSE <= 0 {
		t.Fatalf("lossy comparison should report error, MSE = %v", c.MSE)
	}
	if math.IsInf(c.PSNR, 1) || c.PSNR <= 0 {
		t.Fatalf("unexpected PSNR: %v", c.PSNR)
	}
	if c.Ratio <= 0 {
		t.Fatalf("unexpected ratio: %v", c.Ratio)
	}
}

func TestClampQuality(t *testing.T) {
	if clampQuality(0) != 1 || clampQuality(-5) != 1 || clampQuality(150) != 100 || clampQuality(80) != 80 {
		t.Fatalf("clampQuality misbehaves")
	}
}

func TestDecodeSolidColorPNG(t *testing.T) {
	src := raster.NewSolid(4, 4, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	data, err := Encode(src, FormatPNG, 0)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	dec, _, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !raster.Equal(src, dec) {
		t.Fatalf("solid color round trip mismatch")
	}
}
