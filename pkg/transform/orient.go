package transform

import "image"

// AutoOrient bakes an EXIF orientation (1..8) into the pixels so every
// later operation can treat the raster as upright. Orientation 1 and
// out-of-range values return src unchanged.
func AutoOrient(src *image.NRGBA, orientation int) *image.NRGBA {
	if src == nil || orientation <= 1 || orientation > 8 {
		return src
	}
	switch orientation {
	case 2:
		return flipHorizontal(src)
	case 3:
		return rotate180(src)
	case 4:
		return flipVertical(src)
	case 5:
		return flipHorizontal(rotate90(src))
	case 6:
		return rotate90(src)
	case 7:
		return flipHorizontal(rotate270(src))
	case 8:
		return rotate270(src)
	}
	return src
}
