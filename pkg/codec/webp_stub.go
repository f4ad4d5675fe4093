//go:build !magick

package codec

import (
	"fmt"
	"image"
)

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	return nil, fmt.Errorf("%w: webp encoder not built in (use -tags magick)", ErrEncode)
}
