package transform

import (
	"image"
	"image/color"
	"testing"
)

// marked returns a 2x1 raster with a red pixel on the left.
func marked() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	return img
}

func TestAutoOrientUpright(t *testing.T) {
	src := marked()
	if out := AutoOrient(src, 1); out != src {
		t.Fatalf("orientation 1 should return the source unchanged")
	}
	if out := AutoOrient(src, 0); out != src {
		t.Fatalf("out-of-range orientation should return the source unchanged")
	}
	if out := AutoOrient(src, 9); out != src {
		t.Fatalf("out-of-range orientation should return the source unchanged")
	}
}

func TestAutoOrientMirror(t *testing.T) {
	out := AutoOrient(marked(), 2)
	if out.NRGBAAt(1, 0).R != 255 {
		t.Fatalf("orientation 2 should mirror horizontally")
	}
}

func TestAutoOrientRotations(t *testing.T) {
	// orientation 6: 90 degrees clockwise; red pixel moves to the top right
	out := AutoOrient(marked(), 6)
	if b := out.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Fatalf("orientation 6 bounds = %v; want 1x2", b)
	}
	if out.NRGBAAt(0, 0).R != 255 {
		t.Fatalf("orientation 6 misplaced the marker pixel")
	}

	// orientation 8: 90 degrees counter-clockwise
	out = AutoOrient(marked(), 8)
	if out.NRGBAAt(0, 1).R != 255 {
		t.Fatalf("orientation 8 misplaced the marker pixel")
	}

	// orientation 3: half turn
	out = AutoOrient(marked(), 3)
	if out.NRGBAAt(1, 0).R != 255 {
		t.Fatalf("orientation 3 misplaced the marker pixel")
	}
}
