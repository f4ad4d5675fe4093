package codec

import "encoding/binary"

// Orientation returns the EXIF orientation (1..8) of a JPEG byte stream, or
// 1 when the stream is not a JPEG or carries no orientation tag. Only IFD0
// is scanned; the full metadata block is ignored.
func Orientation(data []byte) int {
	tiff, ok := exifSegment(data)
	if !ok {
		return 1
	}
	if o, ok := readOrientation(tiff); ok {
		return o
	}
	return 1
}

// exifSegment walks the JPEG marker stream and returns the TIFF payload of
// the first APP1 Exif segment.
func exifSegment(data []byte) ([]byte, bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, false
	}
	i := 2
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan, no metadata past here
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			end := i + 2 + segLen
			if end > len(data) {
				end = len(data)
			}
			return data[i+10 : end], true
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return nil, false
}

// readOrientation scans IFD0 of a TIFF block for the orientation tag
// (0x0112, SHORT).
func readOrientation(tiff []byte) (int, bool) {
	if len(tiff) < 8 {
		return 0, false
	}
	var order binary.ByteOrder
	switch {
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	default:
		return 0, false
	}
	if order.Uint16(tiff[2:4]) != 0x002A {
		return 0, false
	}
	ifd := int(order.Uint32(tiff[4:8]))
	if ifd+2 > len(tiff) {
		return 0, false
	}
	n := int(order.Uint16(tiff[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(tiff) {
			break
		}
		tag := order.Uint16(tiff[ent : ent+2])
		typ := order.Uint16(tiff[ent+2 : ent+4])
		if tag != 0x0112 || typ != 3 {
			continue
		}
		o := int(order.Uint16(tiff[ent+8 : ent+10]))
		if o >= 1 && o <= 8 {
			return o, true
		}
		return 0, false
	}
	return 0, false
}
