//go:build magick

package codec

import (
	"fmt"
	"image"
	"sync"

	"gopkg.in/gographics/imagick.v3/imagick"
)

var magickInit sync.Once

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	magickInit.Do(imagick.Initialize)
	pngBytes, err := Encode(img, FormatPNG, 0)
	if err != nil {
		return nil, err
	}
	mw := imagick.NewMagickWand()
	defer mw.Destroy()
	if err := mw.ReadImageBlob(pngBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := mw.SetImageFormat("WEBP"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := mw.SetImageCompressionQuality(uint(quality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	blob := mw.GetImageBlob()
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: empty webp blob", ErrEncode)
	}
	return blob, nil
}
