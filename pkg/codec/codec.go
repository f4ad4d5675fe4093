// Package codec is the byte-stream glue between rasters and host image
// formats: sniffing decode on load, parameterized encode on export.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/tiff"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

// Format selects an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatTIFF Format = "tiff"
)

// ErrDecode reports unreadable or corrupt input image bytes.
var ErrDecode = errors.New("codec: cannot decode image")

// ErrEncode reports a failed export re-encode.
var ErrEncode = errors.New("codec: cannot encode image")

// Decode reads an uploaded image byte stream into a raster. JPEG, PNG, GIF,
// WebP, BMP and TIFF are accepted. The second return is the sniffed format
// name.
func Decode(data []byte) (*image.NRGBA, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", ErrDecode)
	}
	format := sniffFormat(data)
	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if format == "" {
		format = decoded
	}
	return raster.FromImage(img), format, nil
}

// sniffFormat detects the container via magic bytes.
func sniffFormat(b []byte) string {
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		return "gif"
	case len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "webp"
	case len(b) >= 2 && bytes.Equal(b[:2], []byte("BM")):
		return "bmp"
	case len(b) >= 4 && (bytes.Equal(b[:4], []byte("II*\x00")) || bytes.Equal(b[:4], []byte("MM\x00*"))):
		return "tiff"
	}
	return ""
}

// Encode re-encodes img in the requested format. quality applies to the
// lossy formats (0-100); PNG and TIFF are lossless. WebP needs the
// ImageMagick-backed encoder selected with the magick build tag.
func Encode(img image.Image, f Format, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}
	var buf bytes.Buffer
	switch f {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	case FormatTIFF:
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	case FormatWebP:
		return encodeWebP(img, clampQuality(quality))
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrEncode, f)
	}
	return buf.Bytes(), nil
}

// clampQuality maps the 0-100 slider onto the encoder range.
func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
